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

	"github.com/namnc/circom-2-arithc/pkg/circuitval"
	"github.com/namnc/circom-2-arithc/pkg/ctx"
	"github.com/namnc/circom-2-arithc/pkg/util"
	"github.com/namnc/circom-2-arithc/pkg/value"
)

// Status tracks a ComponentHandle's progress through instantiation.
type Status uint8

const (
	// Pending: the handle exists and its ports are declared, but its
	// body has not yet been traversed.
	Pending Status = iota
	// Elaborated: the body has been traversed (or, for a primitive
	// family, its gates already emitted) and outward wiring may be
	// applied immediately rather than queued.
	Elaborated
)

// pendingWrite records a caller-side write to a component input that
// arrived before the handle reached Elaborated.
type pendingWrite struct {
	Field   string
	IdxPath []int
	Value   value.Value
}

// ComponentHandle is a concrete instantiation of a template: its own scope
// (so its output ports remain readable by the caller long after its body
// has finished traversing), its dotted signal-naming path, and a pending
// list for wiring that arrives before the body is traversed.
//
// A ComponentHandle satisfies the small ReadPort/WritePort interface that
// pkg/eval and the statement traverser duck-type against, so neither needs
// to import this package directly.
type ComponentHandle struct {
	Template string
	Path     util.Path
	Ctx      *ctx.Context
	Status   Status
	pending  []pendingWrite
}

// ReadPort reads a component's output (or input) port by name, returning a
// single Signal for a scalar port or a nested Array of Signals for an
// array-shaped one. Indexed access (`c.out[i][j]`) is layered on top by
// pkg/eval.evalIndex once it has the bare Value this returns.
func (h *ComponentHandle) ReadPort(field string) (value.Value, error) {
	kind, ok := h.Ctx.Kind(field)
	if !ok || kind != "signal" {
		return value.Value{}, fmt.Errorf("component %s has no port %q", h.Path, field)
	}

	return h.Ctx.ReadSignalValue(field)
}

// WritePort writes val into the leaf at idxPath within input port field.
// If the handle has not yet been elaborated, the write is queued onto the
// pending list and replayed once it is; otherwise it connects immediately.
func (h *ComponentHandle) WritePort(builder *circuitval.Builder, field string, idxPath []int, val value.Value) error {
	if h.Status != Elaborated {
		h.pending = append(h.pending, pendingWrite{Field: field, IdxPath: idxPath, Value: val})
		return nil
	}

	return connectPort(builder, h.Ctx, field, idxPath, val)
}

// replayPending applies every queued write against the now-Elaborated
// handle, in the order they were recorded, and clears the list.
func (h *ComponentHandle) replayPending(builder *circuitval.Builder) error {
	for _, w := range h.pending {
		if err := connectPort(builder, h.Ctx, w.Field, w.IdxPath, w.Value); err != nil {
			return err
		}
	}

	h.pending = nil
	//
	return nil
}

// materializeScalar turns a Const or Signal Value into a concrete signal
// id, allocating a constant signal for a Const. Any other kind is a
// defect in the caller (array-shaped wiring is handled leaf by leaf before
// this is reached).
func materializeScalar(builder *circuitval.Builder, v value.Value) (uint, error) {
	if sig, ok := v.AsSignal(); ok {
		return sig, nil
	}

	if c, ok := v.AsConst(); ok {
		return builder.ConstSignal(c), nil
	}

	return 0, fmt.Errorf("expected a scalar Const or Signal value, got kind %d", v.Kind())
}

func connectPort(builder *circuitval.Builder, c *ctx.Context, field string, idxPath []int, val value.Value) error {
	portID, err := c.ReadSignal(field, idxPath)
	if err != nil {
		return err
	}

	id, err := materializeScalar(builder, val)
	if err != nil {
		return fmt.Errorf("port %s: %w", field, err)
	}

	return builder.Connect(portID, id)
}
