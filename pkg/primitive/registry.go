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

// Package primitive implements the primitive gate family registry:
// templates recognized by name and generic arity whose body is never
// elaborated, because their whole effect is to allocate a fixed set of
// input/output signals and emit specialized gates directly — the
// circuit-level equivalent of circom's built-in comparators, bit
// decomposers and the like. The registry is an extension point; Register
// lets a host program add families beyond the builtin set.
package primitive

import (
	"fmt"
	"math/big"

	"github.com/namnc/circom-2-arithc/field"
	"github.com/namnc/circom-2-arithc/pkg/circuitval"
)

// BuildCtx is the environment a Family's Build function runs in: the circuit
// builder to emit gates into, and the field divider in effect (the
// elaborator always supplies one, BLS12-377 when no modulus is configured or
// declared), needed by families whose semantics depend on the field's size
// (e.g. sign extraction).
type BuildCtx struct {
	Builder *circuitval.Builder
	Field   field.Divider
}

// Family is one recognized primitive template: its declared port counts and
// the function that allocates its gates given resolved generic arguments
// and already-allocated input signal ids. Build returns the newly allocated
// output signal ids, in declaration order. NumOutputs is -1 for a family
// whose output count depends on its generic arguments (e.g. a bit
// decomposition sized by its arity argument) — callers must use the length
// of Build's result, not NumOutputs, to wire up such a family's outputs.
type Family struct {
	Name       string
	Arity      int
	NumInputs  int
	NumOutputs int
	Build      func(bc BuildCtx, args []*big.Int, inputs []uint) ([]uint, error)
}

var registry = map[string]Family{}

func key(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}

// Register adds (or replaces) a recognized primitive family.
func Register(f Family) {
	registry[key(f.Name, f.Arity)] = f
}

// Lookup resolves a template name and generic arity to its primitive
// family by the registry's name-and-arity matching rule.
func Lookup(name string, arity int) (Family, bool) {
	f, ok := registry[key(name, arity)]
	//
	return f, ok
}

func init() {
	registerBuiltins()
}
