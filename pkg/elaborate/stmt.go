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
package elaborate

import (
	"fmt"

	"github.com/namnc/circom-2-arithc/internal/bigint"
	"github.com/namnc/circom-2-arithc/pkg/archive"
	"github.com/namnc/circom-2-arithc/pkg/circuitval"
	"github.com/namnc/circom-2-arithc/pkg/ctx"
	"github.com/namnc/circom-2-arithc/pkg/eval"
	"github.com/namnc/circom-2-arithc/pkg/value"
)

// env is the live traversal environment for one template, component or
// function body: the evaluator bound to its scope, and (nil inside a
// function body, which may declare neither) the handle being elaborated.
type env struct {
	ev           *eval.Evaluator
	handle       *ComponentHandle
	templateName string
}

// traverseStmts runs stmts in order against e, stopping early (and
// propagating the return value) the moment one of them returns.
func (el *Elaborator) traverseStmts(e *env, stmts []archive.Stmt) (value.Value, bool, error) {
	for i, s := range stmts {
		if err := el.tickBudget(); err != nil {
			return value.Value{}, false, wrapFrame(err, e.templateName, i)
		}

		rv, returned, err := el.traverseStmt(e, s)
		if err != nil {
			return value.Value{}, false, wrapFrame(err, e.templateName, i)
		}

		if returned {
			return rv, true, nil
		}
	}

	return value.Value{}, false, nil
}

func (el *Elaborator) traverseStmt(e *env, s archive.Stmt) (value.Value, bool, error) {
	switch n := s.(type) {
	case *archive.InitBlock:
		// Declarations made within are hoisted into the enclosing scope, so
		// this traverses inline rather than pushing a new scope.
		return el.traverseStmts(e, n.Stmts)

	case *archive.DeclVar:
		return value.Unit(), false, e.ev.Ctx.DeclareVariable(n.Name)

	case *archive.DeclSignal:
		return value.Unit(), false, el.declBodySignal(e, n)

	case *archive.DeclComponent:
		if e.handle == nil {
			return value.Value{}, false, fmt.Errorf("component %q declared inside a function body", n.Name)
		}

		return value.Unit(), false, el.instantiateComponent(e, n)

	case *archive.WireSubst:
		return value.Unit(), false, el.assign(e, n.LHS, n.RHS)

	case *archive.VarAssign:
		return value.Unit(), false, el.assign(e, n.LHS, n.RHS)

	case *archive.MultSubst:
		_, err := e.ev.Eval(n.RHS)
		return value.Unit(), false, err

	case *archive.UnderscoreSubst:
		_, err := e.ev.Eval(n.RHS)
		return value.Unit(), false, err

	case *archive.ConstraintEquality:
		if _, err := e.ev.Eval(n.LHS); err != nil {
			return value.Value{}, false, err
		}

		_, err := e.ev.Eval(n.RHS)
		return value.Unit(), false, err

	case *archive.If:
		return el.traverseIf(e, n)

	case *archive.While:
		return el.traverseWhile(e, n)

	case *archive.Return:
		if !e.ev.Ctx.InScopeKind(ctx.ScopeFunction) {
			return value.Value{}, false, &ReturnOutsideFunctionError{}
		}

		rv, err := e.ev.Eval(n.Value)
		return rv, true, err

	case *archive.Assert:
		return value.Unit(), false, el.assert(e, n)

	case *archive.Log:
		return value.Unit(), false, el.logStmt(e, n)

	case *archive.Block:
		var rv value.Value
		var returned bool

		err := e.ev.Ctx.WithChild(ctx.ScopeBlock, func() error {
			var err error
			rv, returned, err = el.traverseStmts(e, n.Stmts)
			return err
		})

		return rv, returned, err

	default:
		return value.Value{}, false, fmt.Errorf("elaborate: unhandled statement type %T", s)
	}
}

func (el *Elaborator) declBodySignal(e *env, n *archive.DeclSignal) error {
	if n.Role != archive.SignalIntermediate {
		return fmt.Errorf("signal %q declared mid-body must be an intermediate signal", n.Name)
	}

	dims, err := resolveDims(e.ev, n.Dims)
	if err != nil {
		return err
	}

	return e.ev.Ctx.DeclareSignal(n.Name, dims, true)
}

func (el *Elaborator) traverseIf(e *env, n *archive.If) (value.Value, bool, error) {
	cond, err := e.ev.Eval(n.Cond)
	if err != nil {
		return value.Value{}, false, err
	}

	c, ok := cond.AsConst()
	if !ok {
		return value.Value{}, false, &SymbolicBranchError{}
	}

	branch := n.Else
	if bigint.IsTruthy(c) {
		branch = n.Then
	}

	var rv value.Value
	var returned bool

	err = e.ev.Ctx.WithChild(ctx.ScopeBlock, func() error {
		var err error
		rv, returned, err = el.traverseStmts(e, branch)
		return err
	})

	return rv, returned, err
}

func (el *Elaborator) traverseWhile(e *env, n *archive.While) (value.Value, bool, error) {
	for {
		cond, err := e.ev.Eval(n.Cond)
		if err != nil {
			return value.Value{}, false, err
		}

		c, ok := cond.AsConst()
		if !ok {
			return value.Value{}, false, &SymbolicBranchError{}
		}

		if !bigint.IsTruthy(c) {
			return value.Value{}, false, nil
		}

		var rv value.Value
		var returned bool

		err = e.ev.Ctx.WithChild(ctx.ScopeLoop, func() error {
			var err error
			rv, returned, err = el.traverseStmts(e, n.Body)
			return err
		})
		if err != nil {
			return value.Value{}, false, err
		}

		if returned {
			return rv, true, nil
		}
	}
}

// assert evaluates Cond; a zero Const fails hard, a non-zero Const passes
// silently. A signal-valued condition has no compile-time truth value to
// check, so it is accepted — retained as an AId marker gate when Config.Debug
// is set, otherwise a pure no-op.
func (el *Elaborator) assert(e *env, n *archive.Assert) error {
	cond, err := e.ev.Eval(n.Cond)
	if err != nil {
		return err
	}

	if c, ok := cond.AsConst(); ok {
		if !bigint.IsTruthy(c) {
			return &AssertError{Template: e.templateName}
		}

		return nil
	}

	if sig, ok := cond.AsSignal(); ok {
		if el.Config.Debug {
			el.Builder.AddGate(circuitval.AId, sig, sig)
		}

		return nil
	}

	return &ShapeError{Reason: "assert condition must be a scalar"}
}

func (el *Elaborator) logStmt(e *env, n *archive.Log) error {
	args := make([]value.Value, len(n.Args))

	for i, a := range n.Args {
		v, err := e.ev.Eval(a)
		if err != nil {
			return err
		}

		args[i] = v
	}

	if el.Config.Debug {
		el.log.WithField("template", e.templateName).Debugf("log: %v", args)
	}

	return nil
}

// lvKind distinguishes the three things a substitution or assignment
// statement's left-hand side can resolve to.
type lvKind uint8

const (
	lvVariable lvKind = iota
	lvSignal
	lvPort
)

type lvalue struct {
	kind  lvKind
	name  string
	field string // only for lvPort
	idx   []int
}

// assign handles both `lhs <== rhs` and `lhs = rhs`: resolve the
// left-hand side's target, evaluate the right-hand side, then either bind
// (variable), connect (signal), or queue/connect through the owning
// component handle (port).
func (el *Elaborator) assign(e *env, lhs, rhs archive.Expr) error {
	lv, err := resolveLValue(e, lhs)
	if err != nil {
		return err
	}

	rv, err := e.ev.Eval(rhs)
	if err != nil {
		return err
	}

	switch lv.kind {
	case lvVariable:
		if err := requireAllConst(rv); err != nil {
			return err
		}

		return e.ev.Ctx.BindVariable(lv.name, lv.idx, rv)

	case lvSignal:
		return el.wireSignal(e, lv.name, lv.idx, rv)

	case lvPort:
		handle, err := e.ev.Ctx.Component(lv.name)
		if err != nil {
			return err
		}

		ch, ok := handle.(*ComponentHandle)
		if !ok {
			return fmt.Errorf("component %q has an unrecognized handle type", lv.name)
		}

		for _, leaf := range value.Flatten(rv) {
			full := append(append([]int{}, lv.idx...), leaf.Path...)
			if err := ch.WritePort(el.Builder, lv.field, full, leaf.Value); err != nil {
				return err
			}
		}

		return nil

	default:
		return fmt.Errorf("elaborate: unhandled lvalue kind")
	}
}

func (el *Elaborator) wireSignal(e *env, name string, idxPath []int, rv value.Value) error {
	for _, leaf := range value.Flatten(rv) {
		full := append(append([]int{}, idxPath...), leaf.Path...)

		lhsID, err := e.ev.Ctx.ReadSignal(name, full)
		if err != nil {
			return err
		}

		rhsID, err := materializeScalar(el.Builder, leaf.Value)
		if err != nil {
			return &ShapeError{Reason: err.Error()}
		}

		if err := el.Builder.Connect(lhsID, rhsID); err != nil {
			return err
		}
	}

	return nil
}

func resolveLValue(e *env, expr archive.Expr) (*lvalue, error) {
	switch n := expr.(type) {
	case *archive.VarRef:
		return lvalueForName(e, n.Name, nil)

	case *archive.Member:
		ref, ok := n.Base.(*archive.VarRef)
		if !ok {
			return nil, fmt.Errorf("elaborate: unsupported lvalue member base %T", n.Base)
		}

		return &lvalue{kind: lvPort, name: ref.Name, field: n.Field}, nil

	case *archive.Index:
		idx, err := resolveLValueIndices(e, n.Indices)
		if err != nil {
			return nil, err
		}

		switch base := n.Base.(type) {
		case *archive.VarRef:
			return lvalueForName(e, base.Name, idx)

		case *archive.Member:
			ref, ok := base.Base.(*archive.VarRef)
			if !ok {
				return nil, fmt.Errorf("elaborate: unsupported lvalue member base %T", base.Base)
			}

			return &lvalue{kind: lvPort, name: ref.Name, field: base.Field, idx: idx}, nil

		default:
			return nil, fmt.Errorf("elaborate: unsupported indexed lvalue base %T", n.Base)
		}

	default:
		return nil, fmt.Errorf("elaborate: unsupported lvalue expression %T", expr)
	}
}

func lvalueForName(e *env, name string, idx []int) (*lvalue, error) {
	kind, ok := e.ev.Ctx.Kind(name)
	if !ok {
		return nil, fmt.Errorf("elaborate: assignment to undeclared name %q", name)
	}

	switch kind {
	case "variable":
		return &lvalue{kind: lvVariable, name: name, idx: idx}, nil
	case "signal":
		return &lvalue{kind: lvSignal, name: name, idx: idx}, nil
	default:
		return nil, fmt.Errorf("elaborate: cannot assign directly to component %q", name)
	}
}

func resolveLValueIndices(e *env, indices []archive.Expr) ([]int, error) {
	out := make([]int, len(indices))

	for i, idxExpr := range indices {
		c, err := e.ev.EvalConst(idxExpr, "assignment index")
		if err != nil {
			return nil, err
		}

		if !c.IsInt64() || c.Sign() < 0 {
			return nil, &ShapeError{Reason: "index must be a non-negative integer"}
		}

		out[i] = int(c.Int64())
	}

	return out, nil
}

// requireAllConst fails if any leaf of v is a Signal: a plain compile-time
// variable cannot hold a wired value.
func requireAllConst(v value.Value) error {
	for _, leaf := range value.Flatten(v) {
		if !leaf.Value.IsConst() {
			return &NonConstAssignError{}
		}
	}

	return nil
}
