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
package circuitval

import "math/big"

// NamedSignal pairs a canonical signal id with its diagnostic name, used for
// the inputs/outputs/intermediates lists of a finalized Circuit.
type NamedSignal struct {
	ID   uint
	Name string
}

// NamedConstant pairs a canonical signal id with the constant value bound to
// it]`).
type NamedConstant struct {
	ID    uint
	Value *big.Int
}

// Circuit is the immutable output artifact of elaboration: ordered lists of
// input, output and intermediate signals, constants, and gates, plus a
// name→id map for diagnostics. Once returned by Builder.Finalize, a Circuit
// is never mutated.
type Circuit struct {
	Inputs        []NamedSignal
	Outputs       []NamedSignal
	Intermediates []NamedSignal
	Constants     []NamedConstant
	Gates         []Gate
	// NameToID supports diagnostic lookup of a signal's canonical id by its
	// fully qualified dotted name.
	NameToID map[string]uint
}
