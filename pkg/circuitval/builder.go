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

// Builder is an append-only store of signals, constants and gates.
// Allocation is monotonic: ids are never reused, and emission order is
// preserved. The Builder owns a union-find over signal ids so that
// `connect` unions the two ids rather than emitting an identity gate —
// downstream references to either side of a connection resolve to one
// canonical id once Finalize runs.
type Builder struct {
	signals []Signal
	gates   []Gate
	// parent implements union-find over raw allocation-time ids. A root
	// signal (parent[i] == i) is its own canonical representative until
	// unioned with something else.
	parent []uint
	// definedBy records, for each canonical root, the raw id that first
	// gave it a concrete origin (an input binding, a constant, or a gate's
	// out) — used to detect a DoubleAssignError when two distinct origins
	// are connected together.
	definedBy map[uint]uint
	// constCache allows two constants with the same value to share one
	// constant signal within this builder.
	constCache map[string]uint
	// rootOutputs lists the raw ids of signals declared as outputs of the
	// root template; Finalize checks these (and only these) for
	// boundedness.
	rootOutputs []uint
}

// NewBuilder constructs an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		definedBy:  make(map[uint]uint),
		constCache: make(map[string]uint),
	}
}

func (b *Builder) alloc(role Role, name string, constVal *big.Int) uint {
	id := uint(len(b.signals))
	b.signals = append(b.signals, Signal{ID: id, Role: role, Name: name, Const: constVal})
	b.parent = append(b.parent, id)
	//
	return id
}

// NewInput allocates and registers an input signal.
func (b *Builder) NewInput(name string) uint {
	id := b.alloc(RoleInput, name, nil)
	b.definedBy[id] = id
	//
	return id
}

// NewOutput allocates and registers an (initially unbound) output signal.
func (b *Builder) NewOutput(name string) uint {
	return b.alloc(RoleOutput, name, nil)
}

// NewIntermediate allocates and registers an (initially unbound) intermediate
// signal.
func (b *Builder) NewIntermediate(name string) uint {
	return b.alloc(RoleIntermediate, name, nil)
}

// MarkRootOutput records that id is a declared output of the root template,
// so Finalize checks it for boundedness.
func (b *Builder) MarkRootOutput(id uint) {
	b.rootOutputs = append(b.rootOutputs, id)
}

// ConstSignal allocates (or reuses) an intermediate signal pre-bound to a
// numeric constant.
func (b *Builder) ConstSignal(value *big.Int) uint {
	key := value.String()
	if id, ok := b.constCache[key]; ok {
		return id
	}
	//
	id := b.alloc(RoleIntermediate, "", new(big.Int).Set(value))
	b.definedBy[id] = id
	b.constCache[key] = id
	//
	return id
}

// AddGate allocates a fresh output signal, appends (op, l, r, out), and
// returns out.
func (b *Builder) AddGate(op Op, l, r uint) uint {
	out := b.alloc(RoleIntermediate, "", nil)
	b.gates = append(b.gates, Gate{Op: op, Left: l, Right: r, Out: out})
	b.definedBy[out] = out
	//
	return out
}

// find returns the canonical representative of id's equivalence class, with
// path compression.
func (b *Builder) find(id uint) uint {
	root := id
	for b.parent[root] != root {
		root = b.parent[root]
	}
	// path compression
	for b.parent[id] != root {
		next := b.parent[id]
		b.parent[id] = root
		id = next
	}
	//
	return root
}

// Connect unifies two existing signal ids. Connecting the same pair (or any
// pair already in the same class) twice is a no-op. Connecting two signals
// which each already have a distinct concrete origin (an input, a constant,
// or a gate's result) fails with a DoubleAssignError.
//
// The canonical root is always the numerically lower (earlier-allocated) of
// the two ids, never the origin-bearing side specifically: a later-read,
// not-yet-defined signal (e.g. a lazily allocated intermediate already
// consumed by a gate) can be connected to an origin allocated afterwards
// (e.g. a constant materialized by a later statement), and canonicalizing
// to the origin side in that case would remap the gate's operand to an id
// greater than the gate's own output — breaking the invariant that every
// gate's operands reference signals allocated before it.
func (b *Builder) Connect(a, c uint) error {
	ra, rc := b.find(a), b.find(c)
	if ra == rc {
		return nil
	}

	defA, okA := b.definedBy[ra]
	defC, okC := b.definedBy[rc]

	if okA && okC {
		return &DoubleAssignError{Name: b.signals[rc].Name}
	}

	lo, hi := ra, rc
	if hi < lo {
		lo, hi = hi, lo
	}

	b.parent[hi] = lo

	// Propagate the definition marker (if either side had one) onto the
	// now-canonical lower id.
	if okA {
		b.definedBy[lo] = defA
	} else if okC {
		b.definedBy[lo] = defC
	}
	//
	return nil
}

// Finalize returns the immutable Circuit. It fails with an
// UnboundOutputError if any signal marked via MarkRootOutput has no
// incoming connection (i.e. its equivalence class has no concrete origin).
func (b *Builder) Finalize() (*Circuit, error) {
	for _, id := range b.rootOutputs {
		root := b.find(id)
		if _, ok := b.definedBy[root]; !ok {
			return nil, &UnboundOutputError{Name: b.signals[id].Name}
		}
	}

	circuit := &Circuit{NameToID: make(map[string]uint)}
	// claimed tracks which canonical ids have already been placed into
	// Inputs or Outputs, so an anonymous gate-output wire that a `connect`
	// merged into a named input/output isn't also reported a second time
	// as an unnamed intermediate (the two Signal records describe the same
	// underlying wire once union-find resolves them to one id).
	claimed := make(map[uint]bool)

	for _, s := range b.signals {
		canon := b.find(s.ID)
		if s.Name != "" {
			circuit.NameToID[s.Name] = canon
		}

		switch {
		case s.Role == RoleInput:
			circuit.Inputs = append(circuit.Inputs, NamedSignal{ID: canon, Name: s.Name})
			claimed[canon] = true
		case s.Role == RoleOutput:
			circuit.Outputs = append(circuit.Outputs, NamedSignal{ID: canon, Name: s.Name})
			claimed[canon] = true
		}

		if s.IsConstant() {
			circuit.Constants = append(circuit.Constants, NamedConstant{ID: canon, Value: s.Const})
		}
	}

	for _, s := range b.signals {
		canon := b.find(s.ID)
		if s.Role == RoleIntermediate && !s.IsConstant() && !claimed[canon] {
			circuit.Intermediates = append(circuit.Intermediates, NamedSignal{ID: canon, Name: s.Name})
			claimed[canon] = true
		}
	}

	for _, g := range b.gates {
		circuit.Gates = append(circuit.Gates, Gate{
			Op:    g.Op,
			Left:  b.find(g.Left),
			Right: b.find(g.Right),
			Out:   b.find(g.Out),
		})
	}
	//
	return circuit, nil
}
