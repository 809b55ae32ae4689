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

// Package circuitval implements the Circuit Builder and the output Circuit
// value: an append-only store of signals, constants and gates with
// monotonic id allocation, plus a union-find based implementation of the
// `connect` signal-equivalence wiring primitive.
package circuitval

import "math/big"

// Role identifies what a Signal is for.
type Role uint8

const (
	// RoleInput identifies a signal bound by the caller (a root circuit
	// input, or a component's input before it is wired).
	RoleInput Role = iota
	// RoleOutput identifies a declared output signal.
	RoleOutput
	// RoleIntermediate identifies every other signal, including the fresh
	// signal a gate allocates for its result.
	RoleIntermediate
)

// Signal is an abstract wire with a stable integer id Once
// created, a Signal's Role and Name never change; only its position in the
// union-find equivalence classes evolves as `connect` calls are issued.
type Signal struct {
	// ID is this signal's identifier at allocation time. After Finalize,
	// the Circuit's lists report the *canonical* id of each signal's
	// equivalence class rather than this raw allocation-time id.
	ID uint
	// Role this signal plays.
	Role Role
	// Name is the fully qualified dotted diagnostic name, e.g. "b.a.out".
	Name string
	// Const, if set, is the numeric literal this signal was introduced to
	// inject.
	Const *big.Int
}

// IsConstant reports whether this signal carries a constant tag.
func (s Signal) IsConstant() bool {
	return s.Const != nil
}
