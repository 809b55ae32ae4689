// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package eval implements the dual-mode expression evaluator: every
// archive.Expr reduces to either a compile-time constant or a wired
// circuit signal, dispatching on the node's concrete type over the small,
// closed archive.Expr grammar.
package eval

import (
	"fmt"
	"math/big"

	"github.com/namnc/circom-2-arithc/field"
	"github.com/namnc/circom-2-arithc/internal/bigint"
	"github.com/namnc/circom-2-arithc/pkg/archive"
	"github.com/namnc/circom-2-arithc/pkg/circuitval"
	"github.com/namnc/circom-2-arithc/pkg/ctx"
	"github.com/namnc/circom-2-arithc/pkg/value"
)

// UnsupportedError reports an expression form this evaluator does not
// implement (inline-switch, uniform-array, array-inline, parallel
// operators).
type UnsupportedError struct {
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported construct: %s", e.Construct)
}

// BadIndexError reports an out-of-range or otherwise invalid array index.
type BadIndexError struct {
	Reason string
}

func (e *BadIndexError) Error() string {
	return fmt.Sprintf("bad index: %s", e.Reason)
}

// NonConstArgError reports a generic argument to a template or function
// call that didn't fold to a constant.
type NonConstArgError struct {
	Context string
}

func (e *NonConstArgError) Error() string {
	return fmt.Sprintf("non-constant argument in %s", e.Context)
}

// CallFunc resolves and invokes a named pure function. Owned by
// pkg/elaborate, which traverses the function body; Evaluator only needs
// the hook so that pkg/eval need not import pkg/elaborate (which itself
// depends on pkg/eval).
type CallFunc func(name string, args []value.Value) (value.Value, error)

// InstantiateAnon resolves and wires an anonymous component instantiation —
// equivalent to declaring a fresh unnamed component and immediately wiring
// its inputs. Also owned by pkg/elaborate.
type InstantiateAnon func(template string, generics []value.Value, inputs []value.Value) (value.Value, error)

// Evaluator evaluates archive.Expr trees over a live Runtime Context and
// Circuit Builder. Zero value is not usable; construct with New.
type Evaluator struct {
	Ctx     *ctx.Context
	Builder *circuitval.Builder
	Field   field.Divider
	Call    CallFunc
	Anon    InstantiateAnon
}

// New constructs an Evaluator. call and anon may be nil until
// pkg/elaborate has itself been constructed and can close over the
// Evaluator to supply them (see pkg/elaborate's wiring).
func New(c *ctx.Context, b *circuitval.Builder, f field.Divider, call CallFunc, anon InstantiateAnon) *Evaluator {
	return &Evaluator{Ctx: c, Builder: b, Field: f, Call: call, Anon: anon}
}

// Eval dispatches on e's concrete type.
func (ev *Evaluator) Eval(e archive.Expr) (value.Value, error) {
	switch n := e.(type) {
	case *archive.Lit:
		return value.Const(n.Value), nil
	case *archive.VarRef:
		return ev.evalVarRef(n)
	case *archive.Index:
		return ev.evalIndex(n)
	case *archive.Member:
		return ev.evalMember(n)
	case *archive.Infix:
		return ev.evalInfix(n)
	case *archive.Prefix:
		return ev.evalPrefix(n)
	case *archive.Tuple:
		return ev.evalTuple(n)
	case *archive.Call:
		return ev.evalCall(n)
	case *archive.AnonComponent:
		return ev.evalAnonComponent(n)
	default:
		return value.Value{}, &UnsupportedError{Construct: fmt.Sprintf("%T", e)}
	}
}

// EvalConst evaluates e and requires the result to be a Const, failing with
// NonConstArgError (tagged with context) otherwise — used wherever a
// compile-time constant is required: generic arguments, array dimensions,
// indices.
func (ev *Evaluator) EvalConst(e archive.Expr, context string) (*big.Int, error) {
	v, err := ev.Eval(e)
	if err != nil {
		return nil, err
	}

	c, ok := v.AsConst()
	if !ok {
		return nil, &NonConstArgError{Context: context}
	}

	return c, nil
}

func (ev *Evaluator) evalVarRef(n *archive.VarRef) (value.Value, error) {
	kind, ok := ev.Ctx.Kind(n.Name)
	if !ok {
		return value.Value{}, &UnsupportedError{Construct: "reference to undeclared name " + n.Name}
	}

	switch kind {
	case "variable":
		return ev.Ctx.ReadVariable(n.Name, nil)
	case "signal":
		// A bare reference to a signal array (no index chain) reassembles
		// every leaf into a nested Value; evalIndex handles the indexed case
		// directly against a single leaf instead of going through here.
		return ev.Ctx.ReadSignalValue(n.Name)
	default:
		// A bare reference to a component handle has no Value; callers
		// needing the handle itself (DeclComponent wiring, Member access)
		// go through pkg/elaborate directly rather than through Eval.
		return value.Value{}, &UnsupportedError{Construct: "component handle used as a value"}
	}
}

func (ev *Evaluator) resolveIndices(indices []archive.Expr) ([]int, error) {
	out := make([]int, len(indices))

	for i, idxExpr := range indices {
		c, err := ev.EvalConst(idxExpr, "array index")
		if err != nil {
			return nil, err
		}

		if !c.IsInt64() || c.Sign() < 0 {
			return nil, &BadIndexError{Reason: "index must be a non-negative integer"}
		}

		out[i] = int(c.Int64())
	}

	return out, nil
}

func (ev *Evaluator) evalIndex(n *archive.Index) (value.Value, error) {
	// A bare `name[i]...` chain reads straight from the context so that a
	// signal array's lazy-allocation-on-read rule (pkg/ctx.ReadSignal)
	// applies; any other base is evaluated structurally and indexed via
	// pkg/value.
	if ref, ok := n.Base.(*archive.VarRef); ok {
		kind, ok := ev.Ctx.Kind(ref.Name)
		if ok && kind == "signal" {
			idxPath, err := ev.resolveIndices(n.Indices)
			if err != nil {
				return value.Value{}, err
			}

			id, err := ev.Ctx.ReadSignal(ref.Name, idxPath)
			if err != nil {
				return value.Value{}, err
			}

			return value.Signal(id), nil
		}
	}

	base, err := ev.Eval(n.Base)
	if err != nil {
		return value.Value{}, err
	}

	idxPath, err := ev.resolveIndices(n.Indices)
	if err != nil {
		return value.Value{}, err
	}

	out, err := value.Get(base, idxPath)
	if err != nil {
		return value.Value{}, &BadIndexError{Reason: err.Error()}
	}

	return out, nil
}

func (ev *Evaluator) evalTuple(n *archive.Tuple) (value.Value, error) {
	elems := make([]value.Value, len(n.Elems))

	for i, e := range n.Elems {
		v, err := ev.Eval(e)
		if err != nil {
			return value.Value{}, err
		}

		elems[i] = v
	}

	return value.Array(elems), nil
}

func (ev *Evaluator) evalPrefix(n *archive.Prefix) (value.Value, error) {
	x, err := ev.Eval(n.X)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Op {
	case "-":
		// `−x` maps to `(0 − x)` with the same mode rules
		return ev.evalInfixValues("-", value.Const(big.NewInt(0)), x)
	case "!":
		return ev.evalUnary(circuitval.ALogicNot, x, bigint.LogicNot)
	case "~":
		return ev.evalUnary(circuitval.ABitNot, x, bigint.BitNot)
	default:
		return value.Value{}, &UnsupportedError{Construct: "prefix operator " + n.Op}
	}
}

func (ev *Evaluator) evalUnary(op circuitval.Op, x value.Value, fold func(*big.Int) *big.Int) (value.Value, error) {
	if c, ok := x.AsConst(); ok {
		return value.Const(fold(c)), nil
	}

	if sig, ok := x.AsSignal(); ok {
		zero := ev.Builder.ConstSignal(big.NewInt(0))
		out := ev.Builder.AddGate(op, zero, sig)
		//
		return value.Signal(out), nil
	}

	return ev.elementwise1(x, func(e value.Value) (value.Value, error) { return ev.evalUnary(op, e, fold) })
}

func (ev *Evaluator) elementwise1(x value.Value, f func(value.Value) (value.Value, error)) (value.Value, error) {
	elems, ok := x.AsArray()
	if !ok {
		return value.Value{}, &value.ShapeMismatchError{Reason: "unary operator applied to non-array, non-scalar value"}
	}

	out := make([]value.Value, len(elems))

	for i, e := range elems {
		v, err := f(e)
		if err != nil {
			return value.Value{}, err
		}

		out[i] = v
	}

	return value.Array(out), nil
}

func (ev *Evaluator) evalInfix(n *archive.Infix) (value.Value, error) {
	l, err := ev.Eval(n.L)
	if err != nil {
		return value.Value{}, err
	}

	r, err := ev.Eval(n.R)
	if err != nil {
		return value.Value{}, err
	}

	return ev.evalInfixValues(n.Op, l, r)
}

func (ev *Evaluator) evalInfixValues(op string, l, r value.Value) (value.Value, error) {
	if l.IsConst() && r.IsConst() {
		lc, _ := l.AsConst()
		rc, _ := r.AsConst()

		folded, err := ev.foldConst(op, lc, rc)
		if err != nil {
			return value.Value{}, err
		}

		return value.Const(folded), nil
	}

	if l.IsArray() || r.IsArray() {
		if !value.ShapesEqual(l, r) {
			return value.Value{}, &value.ShapeMismatchError{Reason: "elementwise operands have different shapes"}
		}

		le, _ := l.AsArray()
		re, _ := r.AsArray()
		out := make([]value.Value, len(le))

		for i := range le {
			v, err := ev.evalInfixValues(op, le[i], re[i])
			if err != nil {
				return value.Value{}, err
			}

			out[i] = v
		}

		return value.Array(out), nil
	}

	// At least one side is a Signal: materialize the other if it's a Const,
	// then emit a gate
	lSig, err := ev.materialize(l)
	if err != nil {
		return value.Value{}, err
	}

	rSig, err := ev.materialize(r)
	if err != nil {
		return value.Value{}, err
	}

	gop, ok := infixGateOps[op]
	if !ok {
		return value.Value{}, &UnsupportedError{Construct: "operator " + op}
	}

	out := ev.Builder.AddGate(gop, lSig, rSig)
	//
	return value.Signal(out), nil
}

func (ev *Evaluator) materialize(v value.Value) (uint, error) {
	if sig, ok := v.AsSignal(); ok {
		return sig, nil
	}

	c, ok := v.AsConst()
	if !ok {
		return 0, &value.ShapeMismatchError{Reason: "expected a scalar operand"}
	}

	return ev.Builder.ConstSignal(c), nil
}

// infixGateOps maps every infix operator symbol to the gate op it emits
// when at least one operand is a Signal.
var infixGateOps = map[string]circuitval.Op{
	"+": circuitval.AAdd, "-": circuitval.ASub, "*": circuitval.AMul,
	"\\": circuitval.AIDiv, "/": circuitval.ADiv, "**": circuitval.APow, "%": circuitval.AMod,
	"<<": circuitval.AShiftL, ">>": circuitval.AShiftR,
	"|": circuitval.ABitOr, "&": circuitval.ABitAnd, "^": circuitval.ABitXor,
	"<=": circuitval.ALeq, "<": circuitval.ALt, ">=": circuitval.AGeq, ">": circuitval.AGt,
	"==": circuitval.AEqualB, "!=": circuitval.ANeq,
	"&&": circuitval.ALogicAnd, "||": circuitval.ALogicOr,
}

// foldConst computes the constant-mode result of an infix operator when
// both operands are Const.
func (ev *Evaluator) foldConst(op string, l, r *big.Int) (*big.Int, error) {
	switch op {
	case "+":
		return bigint.Add(l, r), nil
	case "-":
		return bigint.Sub(l, r), nil
	case "*":
		return bigint.Mul(l, r), nil
	case "\\":
		return bigint.TruncDiv(l, r)
	case "/":
		return bigint.FieldDiv(l, r, ev.Field)
	case "**":
		return bigint.Pow(l, r)
	case "%":
		return bigint.Mod(l, r)
	case "<<":
		return bigint.ShiftL(l, r)
	case ">>":
		return bigint.ShiftR(l, r)
	case "|":
		return bigint.BitOr(l, r), nil
	case "&":
		return bigint.BitAnd(l, r), nil
	case "^":
		return bigint.BitXor(l, r), nil
	case "<=":
		return bigint.Leq(l, r), nil
	case "<":
		return bigint.Lt(l, r), nil
	case ">=":
		return bigint.Geq(l, r), nil
	case ">":
		return bigint.Gt(l, r), nil
	case "==":
		return bigint.Eq(l, r), nil
	case "!=":
		return bigint.Neq(l, r), nil
	case "&&":
		return bigint.LogicAnd(l, r), nil
	case "||":
		return bigint.LogicOr(l, r), nil
	default:
		return nil, &UnsupportedError{Construct: "operator " + op}
	}
}

func (ev *Evaluator) evalMember(n *archive.Member) (value.Value, error) {
	ref, ok := n.Base.(*archive.VarRef)
	if !ok {
		return value.Value{}, &UnsupportedError{Construct: "member access on a non-identifier base"}
	}

	handle, err := ev.Ctx.Component(ref.Name)
	if err != nil {
		return value.Value{}, err
	}

	port, ok := handle.(interface {
		ReadPort(field string) (value.Value, error)
	})
	if !ok {
		return value.Value{}, &UnsupportedError{Construct: "component handle does not support port access"}
	}

	return port.ReadPort(n.Field)
}

func (ev *Evaluator) evalCall(n *archive.Call) (value.Value, error) {
	if ev.Call == nil {
		return value.Value{}, &UnsupportedError{Construct: "function call (no call hook configured)"}
	}

	args := make([]value.Value, len(n.Args))

	for i, a := range n.Args {
		v, err := ev.Eval(a)
		if err != nil {
			return value.Value{}, err
		}

		args[i] = v
	}

	return ev.Call(n.Name, args)
}

func (ev *Evaluator) evalAnonComponent(n *archive.AnonComponent) (value.Value, error) {
	if ev.Anon == nil {
		return value.Value{}, &UnsupportedError{Construct: "anonymous component (no instantiation hook configured)"}
	}

	generics := make([]value.Value, len(n.Generics))

	for i, g := range n.Generics {
		v, err := ev.Eval(g)
		if err != nil {
			return value.Value{}, err
		}

		generics[i] = v
	}

	inputs := make([]value.Value, len(n.Inputs))

	for i, in := range n.Inputs {
		v, err := ev.Eval(in)
		if err != nil {
			return value.Value{}, err
		}

		inputs[i] = v
	}

	return ev.Anon(n.Template, generics, inputs)
}
