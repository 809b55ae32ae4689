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
package ctx

import "github.com/namnc/circom-2-arithc/pkg/value"

// ScopeKind classifies the region of code a scope covers.
type ScopeKind uint8

// The four scope kinds PushScope accepts.
const (
	ScopeTemplate ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeLoop
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeTemplate:
		return "template"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	default:
		return "scope"
	}
}

type entryKind uint8

const (
	entryVariable entryKind = iota
	entrySignal
	entryComponent
)

// signalSlot tracks a declared signal or signal array's shape and the
// signal ids bound (or not yet bound) to each of its leaves.
type signalSlot struct {
	dims []int
	// lazy controls ReadSignal's behaviour on an unbound leaf: true lazily
	// allocates a fresh intermediate (declared-but-not-yet-wired
	// intermediates/outputs); false fails with UnwiredInputError (declared
	// inputs, which must be wired by the caller before they're read).
	lazy bool
	ids  map[string]uint
}

type entry struct {
	kind entryKind
	v    value.Value // entryVariable
	sig  *signalSlot // entrySignal
	comp any         // entryComponent; concrete type owned by pkg/elaborate
}

// scope is one stack frame: a scope kind and its own flat namespace. Lookups
// that miss walk outward to the parent frame, giving templates, functions,
// blocks and loops ordinary lexical nesting.
type scope struct {
	kind    ScopeKind
	entries map[string]*entry
}

func newScope(kind ScopeKind) *scope {
	return &scope{kind: kind, entries: make(map[string]*entry)}
}
