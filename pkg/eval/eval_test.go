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
package eval

import (
	"math/big"
	"testing"

	bls12377 "github.com/namnc/circom-2-arithc/field/bls12-377"
	"github.com/namnc/circom-2-arithc/pkg/archive"
	"github.com/namnc/circom-2-arithc/pkg/circuitval"
	"github.com/namnc/circom-2-arithc/pkg/ctx"
	"github.com/namnc/circom-2-arithc/pkg/value"
)

func newEvaluator() *Evaluator {
	b := circuitval.NewBuilder()
	c := ctx.New(b, ctx.ScopeTemplate)
	//
	return New(c, b, bls12377.Field{}, nil, nil)
}

func lit(v int64) archive.Expr { return &archive.Lit{Value: big.NewInt(v)} }

func TestEvalLitAndVarRef(t *testing.T) {
	ev := newEvaluator()

	got, err := ev.Eval(lit(7))
	if err != nil {
		t.Fatalf("Eval(lit): %v", err)
	}

	c, ok := got.AsConst()
	if !ok || c.Int64() != 7 {
		t.Fatalf("Eval(lit(7)) = %v, want Const(7)", got)
	}

	if err := ev.Ctx.DeclareVariable("x"); err != nil {
		t.Fatalf("DeclareVariable: %v", err)
	}

	if err := ev.Ctx.BindVariable("x", nil, value.Const(big.NewInt(9))); err != nil {
		t.Fatalf("BindVariable: %v", err)
	}

	got, err = ev.Eval(&archive.VarRef{Name: "x"})
	if err != nil {
		t.Fatalf("Eval(VarRef): %v", err)
	}

	c, ok = got.AsConst()
	if !ok || c.Int64() != 9 {
		t.Fatalf("Eval(VarRef(x)) = %v, want Const(9)", got)
	}
}

func TestEvalInfixConstFolds(t *testing.T) {
	ev := newEvaluator()

	got, err := ev.Eval(&archive.Infix{Op: "+", L: lit(2), R: lit(3)})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	c, ok := got.AsConst()
	if !ok || c.Int64() != 5 {
		t.Fatalf("2+3 = %v, want Const(5)", got)
	}

	circuit, err := ev.Builder.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if len(circuit.Gates) != 0 {
		t.Fatalf("folding a constant expression emitted %d gate(s), want 0", len(circuit.Gates))
	}
}

func TestEvalInfixWithSignalEmitsGate(t *testing.T) {
	ev := newEvaluator()

	if err := ev.Ctx.DeclareSignal("a", nil, false); err != nil {
		t.Fatalf("DeclareSignal: %v", err)
	}

	inID := ev.Builder.NewInput("a")
	if err := ev.Ctx.BindSignal("a", nil, inID); err != nil {
		t.Fatalf("BindSignal: %v", err)
	}

	got, err := ev.Eval(&archive.Infix{Op: "+", L: &archive.VarRef{Name: "a"}, R: lit(0)})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if !got.IsSignal() {
		t.Fatalf("a+0 = %v, want a Signal (mixed const/signal operands stay in signal mode)", got)
	}
}

func TestEvalPrefixNeg(t *testing.T) {
	ev := newEvaluator()

	got, err := ev.Eval(&archive.Prefix{Op: "-", X: lit(5)})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	c, ok := got.AsConst()
	if !ok || c.Int64() != -5 {
		t.Fatalf("-5 = %v, want Const(-5)", got)
	}
}

func TestEvalTupleAndIndex(t *testing.T) {
	ev := newEvaluator()

	tuple := &archive.Tuple{Elems: []archive.Expr{lit(10), lit(20), lit(30)}}

	got, err := ev.Eval(&archive.Index{Base: tuple, Indices: []archive.Expr{lit(1)}})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	c, ok := got.AsConst()
	if !ok || c.Int64() != 20 {
		t.Fatalf("[10,20,30][1] = %v, want Const(20)", got)
	}
}

func TestEvalIndexOnSignalArray(t *testing.T) {
	ev := newEvaluator()

	if err := ev.Ctx.DeclareSignal("arr", []int{2}, true); err != nil {
		t.Fatalf("DeclareSignal: %v", err)
	}

	got, err := ev.Eval(&archive.Index{Base: &archive.VarRef{Name: "arr"}, Indices: []archive.Expr{lit(0)}})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if !got.IsSignal() {
		t.Fatalf("arr[0] = %v, want a lazily allocated Signal", got)
	}
}

func TestEvalConstRequiresConst(t *testing.T) {
	ev := newEvaluator()

	if err := ev.Ctx.DeclareSignal("a", nil, false); err != nil {
		t.Fatalf("DeclareSignal: %v", err)
	}

	inID := ev.Builder.NewInput("a")
	if err := ev.Ctx.BindSignal("a", nil, inID); err != nil {
		t.Fatalf("BindSignal: %v", err)
	}

	if _, err := ev.EvalConst(&archive.VarRef{Name: "a"}, "test context"); err == nil {
		t.Fatalf("EvalConst on a signal-valued expression succeeded, want NonConstArgError")
	}
}

func TestEvalDivisionByZeroFails(t *testing.T) {
	ev := newEvaluator()

	if _, err := ev.Eval(&archive.Infix{Op: "\\", L: lit(1), R: lit(0)}); err == nil {
		t.Fatalf("1 \\ 0 succeeded, want a division-by-zero error")
	}
}

func TestEvalElementwiseInfixOnArrays(t *testing.T) {
	ev := newEvaluator()

	l := &archive.Tuple{Elems: []archive.Expr{lit(1), lit(2)}}
	r := &archive.Tuple{Elems: []archive.Expr{lit(10), lit(20)}}

	got, err := ev.Eval(&archive.Infix{Op: "+", L: l, R: r})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	elems, ok := got.AsArray()
	if !ok || len(elems) != 2 {
		t.Fatalf("[1,2]+[10,20] = %v, want a 2-element array", got)
	}

	c0, _ := elems[0].AsConst()
	c1, _ := elems[1].AsConst()

	if c0.Int64() != 11 || c1.Int64() != 22 {
		t.Fatalf("[1,2]+[10,20] = [%s, %s], want [11, 22]", c0, c1)
	}
}

func TestEvalCallWithoutHookFails(t *testing.T) {
	ev := newEvaluator()

	if _, err := ev.Eval(&archive.Call{Name: "f", Args: nil}); err == nil {
		t.Fatalf("Eval(Call) with no Call hook configured succeeded")
	}
}

func TestEvalAnonComponentWithoutHookFails(t *testing.T) {
	ev := newEvaluator()

	if _, err := ev.Eval(&archive.AnonComponent{Template: "T"}); err == nil {
		t.Fatalf("Eval(AnonComponent) with no Anon hook configured succeeded")
	}
}
