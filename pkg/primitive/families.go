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
	"errors"
	"math/big"

	"github.com/namnc/circom-2-arithc/pkg/circuitval"
)

// ErrNoFieldModulus is returned by families whose semantics (e.g. sign
// extraction) depend on a field modulus when BuildCtx.Field is nil.
var ErrNoFieldModulus = errors.New("primitive: no field modulus in scope")

// registerBuiltins installs the fixed set of primitive gate families:
// integer sign extraction, zero-equality, comparison, range-check, and
// bit-slicing.
func registerBuiltins() {
	registerZeroEquality()
	registerComparisons()
	registerSignExtraction()
	registerRangeCheck()
	registerBitSlicing()
}

func registerZeroEquality() {
	Register(Family{
		Name: "IsZero", Arity: 0, NumInputs: 1, NumOutputs: 1,
		Build: func(bc BuildCtx, _ []*big.Int, in []uint) ([]uint, error) {
			zero := bc.Builder.ConstSignal(big.NewInt(0))
			out := bc.Builder.AddGate(circuitval.AEqualB, in[0], zero)
			//
			return []uint{out}, nil
		},
	})
	Register(Family{
		Name: "IsEqual", Arity: 0, NumInputs: 2, NumOutputs: 1,
		Build: func(bc BuildCtx, _ []*big.Int, in []uint) ([]uint, error) {
			out := bc.Builder.AddGate(circuitval.AEqualB, in[0], in[1])
			//
			return []uint{out}, nil
		},
	})
}

func registerComparisons() {
	table := []struct {
		name string
		op   circuitval.Op
	}{
		{"LessThan", circuitval.ALt},
		{"LessEqThan", circuitval.ALeq},
		{"GreaterThan", circuitval.AGt},
		{"GreaterEqThan", circuitval.AGeq},
		{"NotEqual", circuitval.ANeq},
	}

	for _, row := range table {
		op := row.op
		Register(Family{
			Name: row.name, Arity: 0, NumInputs: 2, NumOutputs: 1,
			Build: func(bc BuildCtx, _ []*big.Int, in []uint) ([]uint, error) {
				out := bc.Builder.AddGate(op, in[0], in[1])
				//
				return []uint{out}, nil
			},
		})
	}
}

// registerSignExtraction installs the "Sign" family: whether a field element
// represents a negative integer under the usual half-modulus convention,
// i.e. `in > (modulus-1)/2`.
func registerSignExtraction() {
	Register(Family{
		Name: "Sign", Arity: 0, NumInputs: 1, NumOutputs: 1,
		Build: func(bc BuildCtx, _ []*big.Int, in []uint) ([]uint, error) {
			if bc.Field == nil {
				return nil, ErrNoFieldModulus
			}

			half := new(big.Int).Sub(bc.Field.Modulus(), big.NewInt(1))
			half.Rsh(half, 1)
			halfSig := bc.Builder.ConstSignal(half)
			out := bc.Builder.AddGate(circuitval.AGt, in[0], halfSig)
			//
			return []uint{out}, nil
		},
	})
}

// registerRangeCheck installs "InRange(n)": whether `in` fits in n bits,
// i.e. `in < 2^n`.
func registerRangeCheck() {
	Register(Family{
		Name: "InRange", Arity: 1, NumInputs: 1, NumOutputs: 1,
		Build: func(bc BuildCtx, args []*big.Int, in []uint) ([]uint, error) {
			n := uint(args[0].Uint64())
			bound := new(big.Int).Lsh(big.NewInt(1), n)
			boundSig := bc.Builder.ConstSignal(bound)
			out := bc.Builder.AddGate(circuitval.ALt, in[0], boundSig)
			//
			return []uint{out}, nil
		},
	})
}

// registerBitSlicing installs "Num2Bits(n)": decomposes `in` into n
// little-endian bits, one output per bit. Each bit is extracted by shifting
// right then masking, composing two fixed gate ops rather than needing a
// dedicated op of its own.
func registerBitSlicing() {
	Register(Family{
		Name: "Num2Bits", Arity: 1, NumInputs: 1, NumOutputs: -1, // NumOutputs resolved from args[0]
		Build: func(bc BuildCtx, args []*big.Int, in []uint) ([]uint, error) {
			n := uint(args[0].Uint64())
			one := bc.Builder.ConstSignal(big.NewInt(1))
			outs := make([]uint, n)

			for i := uint(0); i < n; i++ {
				shiftAmt := bc.Builder.ConstSignal(new(big.Int).SetUint64(uint64(i)))
				shifted := bc.Builder.AddGate(circuitval.AShiftR, in[0], shiftAmt)
				outs[i] = bc.Builder.AddGate(circuitval.ABitAnd, shifted, one)
			}

			return outs, nil
		},
	})
}
