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

// Package elaborate implements the Statement Traverser and Component
// Instantiator: it walks a Program Archive's templates and functions,
// driving the Runtime Context and Circuit Builder to produce a finished
// Circuit.
package elaborate

import "math/big"

// Config carries the knobs an elaboration run is parameterized by.
type Config struct {
	// FieldModulus is the field used for `/` (field division); when set it
	// overrides any modulus the archive declares. Nil falls back to the
	// archive's own modulus, else the BLS12-377 scalar field.
	FieldModulus *big.Int
	// Budget caps the total number of statements traversed across the
	// whole run, guarding against a non-terminating while loop or an
	// unbounded component-instantiation cycle. Zero means unbounded.
	Budget uint64
	// Debug enables logrus debug-level breadcrumbs for component
	// instantiation and function calls, turns `log` statements into actual log
	// output, and retains `assert`-on-signal statements as AId marker
	// connections instead of silently discarding them.
	Debug bool
}

// DefaultConfig returns a Config with no field modulus override, no budget
// cap, and debug output disabled.
func DefaultConfig() Config {
	return Config{}
}
