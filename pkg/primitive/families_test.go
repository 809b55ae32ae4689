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
package primitive

import (
	"math/big"
	"testing"

	bls12377 "github.com/namnc/circom-2-arithc/field/bls12-377"
	"github.com/namnc/circom-2-arithc/pkg/circuitval"
)

func TestLookupResolvesByNameAndArity(t *testing.T) {
	if _, ok := Lookup("IsZero", 0); !ok {
		t.Fatalf("Lookup(IsZero, 0) not found")
	}

	if _, ok := Lookup("InRange", 1); !ok {
		t.Fatalf("Lookup(InRange, 1) not found")
	}

	if _, ok := Lookup("InRange", 0); ok {
		t.Fatalf("Lookup(InRange, 0) found, want arity mismatch to miss")
	}

	if _, ok := Lookup("NotARealTemplate", 0); ok {
		t.Fatalf("Lookup found an unregistered template")
	}
}

func TestIsZeroFamily(t *testing.T) {
	fam, _ := Lookup("IsZero", 0)
	b := circuitval.NewBuilder()

	in := b.NewInput("in")
	outs, err := fam.Build(BuildCtx{Builder: b, Field: bls12377.Field{}}, nil, []uint{in})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(outs) != 1 {
		t.Fatalf("IsZero produced %d output(s), want 1", len(outs))
	}
}

func TestComparisonFamiliesEmitExpectedOp(t *testing.T) {
	cases := []struct {
		name string
		op   circuitval.Op
	}{
		{"LessThan", circuitval.ALt},
		{"LessEqThan", circuitval.ALeq},
		{"GreaterThan", circuitval.AGt},
		{"GreaterEqThan", circuitval.AGeq},
		{"NotEqual", circuitval.ANeq},
	}

	for _, c := range cases {
		fam, ok := Lookup(c.name, 0)
		if !ok {
			t.Fatalf("Lookup(%s, 0) not found", c.name)
		}

		b := circuitval.NewBuilder()
		a, bb := b.NewInput("a"), b.NewInput("b")

		outs, err := fam.Build(BuildCtx{Builder: b, Field: bls12377.Field{}}, nil, []uint{a, bb})
		if err != nil {
			t.Fatalf("%s Build: %v", c.name, err)
		}

		if len(outs) != 1 {
			t.Fatalf("%s produced %d output(s), want 1", c.name, len(outs))
		}

		b.MarkRootOutput(outs[0])
		circuit, err := b.Finalize()
		if err != nil {
			t.Fatalf("%s Finalize: %v", c.name, err)
		}

		if len(circuit.Gates) != 1 || circuit.Gates[0].Op != c.op {
			t.Fatalf("%s emitted gates %v, want a single %s gate", c.name, circuit.Gates, c.op)
		}
	}
}

func TestRangeCheckFamily(t *testing.T) {
	fam, ok := Lookup("InRange", 1)
	if !ok {
		t.Fatalf("Lookup(InRange, 1) not found")
	}

	b := circuitval.NewBuilder()
	in := b.NewInput("in")

	outs, err := fam.Build(BuildCtx{Builder: b, Field: bls12377.Field{}}, []*big.Int{big.NewInt(8)}, []uint{in})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(outs) != 1 {
		t.Fatalf("InRange(8) produced %d output(s), want 1", len(outs))
	}
}

func TestNum2BitsFamilyProducesNOutputs(t *testing.T) {
	fam, ok := Lookup("Num2Bits", 1)
	if !ok {
		t.Fatalf("Lookup(Num2Bits, 1) not found")
	}

	b := circuitval.NewBuilder()
	in := b.NewInput("in")

	outs, err := fam.Build(BuildCtx{Builder: b, Field: bls12377.Field{}}, []*big.Int{big.NewInt(8)}, []uint{in})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(outs) != 8 {
		t.Fatalf("Num2Bits(8) produced %d output(s), want 8", len(outs))
	}
}

func TestSignFamilyRequiresField(t *testing.T) {
	fam, ok := Lookup("Sign", 0)
	if !ok {
		t.Fatalf("Lookup(Sign, 0) not found")
	}

	b := circuitval.NewBuilder()
	in := b.NewInput("in")

	if _, err := fam.Build(BuildCtx{Builder: b, Field: nil}, nil, []uint{in}); err != ErrNoFieldModulus {
		t.Fatalf("Sign.Build with no field: got %v, want ErrNoFieldModulus", err)
	}

	outs, err := fam.Build(BuildCtx{Builder: b, Field: bls12377.Field{}}, nil, []uint{in})
	if err != nil {
		t.Fatalf("Sign.Build with a field: %v", err)
	}

	if len(outs) != 1 {
		t.Fatalf("Sign produced %d output(s), want 1", len(outs))
	}
}
