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

// Package ctx implements the Runtime Context: a stack of lexical scopes
// holding variables, signals and component handles, on top of which the
// expression evaluator and statement traverser are built.
package ctx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/namnc/circom-2-arithc/pkg/value"
)

// Allocator is the subset of the circuit builder the context needs to
// satisfy a lazy read of an unbound intermediate signal.
type Allocator interface {
	NewIntermediate(name string) uint
}

// Context is the Runtime Context: a scope stack plus the allocator used for
// lazy intermediate allocation on read.
type Context struct {
	scopes []*scope
	alloc  Allocator
}

// New constructs a Context with a single root scope of the given kind. A
// top-level (main template) or component instantiation starts a fresh
// Context rooted at ScopeTemplate; a pure function call gets its own rooted
// at ScopeFunction — each owned independently so that a component handle's
// bindings, in particular its output ports, remain readable by the caller
// long after elaboration of that component's body has returned.
func New(alloc Allocator, kind ScopeKind) *Context {
	return &Context{scopes: []*scope{newScope(kind)}, alloc: alloc}
}

// PushScope enters a new scope of the given kind.
func (c *Context) PushScope(kind ScopeKind) {
	c.scopes = append(c.scopes, newScope(kind))
}

// PopScope leaves the innermost scope. Popping the root scope is a
// programming error and panics, mirroring an unbalanced push/pop being a
// defect in the caller.
func (c *Context) PopScope() {
	if len(c.scopes) <= 1 {
		panic("ctx: PopScope called with no matching PushScope")
	}

	c.scopes = c.scopes[:len(c.scopes)-1]
}

// ScopeKind returns the innermost scope's kind.
func (c *Context) ScopeKind() ScopeKind {
	return c.top().kind
}

// InScopeKind reports whether any enclosing scope (innermost first) has the
// given kind, stopping at the nearest Template or Function boundary — used
// e.g. to check whether a `return` sits inside a function.
func (c *Context) InScopeKind(kind ScopeKind) bool {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		k := c.scopes[i].kind
		if k == kind {
			return true
		}

		if k == ScopeTemplate || k == ScopeFunction {
			return false
		}
	}

	return false
}

// WithChild runs f with a fresh scope of the given kind pushed, for
// transient same-Context nesting (Block/Loop/If branches) rather than
// cross-component scoping. The scope is popped on every exit path,
// including when f returns an error. Passing ScopeTemplate or ScopeFunction
// here would shadow the enclosing function boundary InScopeKind relies on
// for `return`; callers nesting a Block/If/While use ScopeBlock/ScopeLoop.
func (c *Context) WithChild(kind ScopeKind, f func() error) error {
	c.PushScope(kind)
	defer c.PopScope()
	//
	return f()
}

func (c *Context) top() *scope {
	return c.scopes[len(c.scopes)-1]
}

// lookup finds name's entry by walking outward from the innermost scope.
func (c *Context) lookup(name string) (*entry, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if e, ok := c.scopes[i].entries[name]; ok {
			return e, true
		}
	}

	return nil, false
}

func pathKey(idxPath []int) string {
	if len(idxPath) == 0 {
		return ""
	}

	parts := make([]string, len(idxPath))
	for i, v := range idxPath {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ",")
}

// DeclareVariable declares an (initially Unit) variable cell in the
// innermost scope.
func (c *Context) DeclareVariable(name string) error {
	if _, exists := c.top().entries[name]; exists {
		return &RedeclaredError{Name: name}
	}

	c.top().entries[name] = &entry{kind: entryVariable, v: value.Unit()}
	//
	return nil
}

// DeclareSignal declares a signal or signal array of the given shape in the
// innermost scope. dims is empty for a scalar signal. lazy selects
// ReadSignal's behaviour for an unbound leaf (see signalSlot).
func (c *Context) DeclareSignal(name string, dims []int, lazy bool) error {
	if _, exists := c.top().entries[name]; exists {
		return &RedeclaredError{Name: name}
	}

	c.top().entries[name] = &entry{
		kind: entrySignal,
		sig:  &signalSlot{dims: dims, lazy: lazy, ids: make(map[string]uint)},
	}
	//
	return nil
}

// DeclareComponent declares a component handle in the innermost scope.
// handle's concrete type is owned by pkg/elaborate.
func (c *Context) DeclareComponent(name string, handle any) error {
	if _, exists := c.top().entries[name]; exists {
		return &RedeclaredError{Name: name}
	}

	c.top().entries[name] = &entry{kind: entryComponent, comp: handle}
	//
	return nil
}

// BindVariable sets the cell at idxPath within name's variable to v.
func (c *Context) BindVariable(name string, idxPath []int, v value.Value) error {
	e, ok := c.lookup(name)
	if !ok {
		return &UndeclaredError{Name: name}
	}

	if e.kind != entryVariable {
		return &WrongEntryError{Name: name, Want: "variable", Got: kindString(e.kind)}
	}

	updated, err := value.Set(e.v, idxPath, v)
	if err != nil {
		return err
	}

	e.v = updated
	//
	return nil
}

// ReadVariable reads the cell at idxPath within name's variable.
func (c *Context) ReadVariable(name string, idxPath []int) (value.Value, error) {
	e, ok := c.lookup(name)
	if !ok {
		return value.Value{}, &UndeclaredError{Name: name}
	}

	if e.kind != entryVariable {
		return value.Value{}, &WrongEntryError{Name: name, Want: "variable", Got: kindString(e.kind)}
	}

	return value.Get(e.v, idxPath)
}

// BindSignal binds the leaf at idxPath within name's signal (array) to id.
func (c *Context) BindSignal(name string, idxPath []int, id uint) error {
	e, ok := c.lookup(name)
	if !ok {
		return &UndeclaredError{Name: name}
	}

	if e.kind != entrySignal {
		return &WrongEntryError{Name: name, Want: "signal", Got: kindString(e.kind)}
	}

	e.sig.ids[pathKey(idxPath)] = id
	//
	return nil
}

// ReadSignal resolves the signal id bound at idxPath within name. An unbound
// leaf of a lazy (intermediate/output) slot is allocated on demand; an
// unbound leaf of a non-lazy (input) slot fails with UnwiredInputError.
func (c *Context) ReadSignal(name string, idxPath []int) (uint, error) {
	e, ok := c.lookup(name)
	if !ok {
		return 0, &UndeclaredError{Name: name}
	}

	if e.kind != entrySignal {
		return 0, &WrongEntryError{Name: name, Want: "signal", Got: kindString(e.kind)}
	}

	key := pathKey(idxPath)
	if id, ok := e.sig.ids[key]; ok {
		return id, nil
	}

	if !e.sig.lazy {
		return 0, &UnwiredInputError{Name: name}
	}

	id := c.alloc.NewIntermediate(name)
	e.sig.ids[key] = id
	//
	return id, nil
}

// ReadSignalValue resolves every leaf of name's declared shape (scalar or
// nested array) into a single value.Value, preserving ReadSignal's
// lazy-allocation-on-read behaviour at each leaf. Used wherever a signal (or
// signal array) is referenced as a whole, rather than through an explicit
// index chain.
func (c *Context) ReadSignalValue(name string) (value.Value, error) {
	e, ok := c.lookup(name)
	if !ok {
		return value.Value{}, &UndeclaredError{Name: name}
	}

	if e.kind != entrySignal {
		return value.Value{}, &WrongEntryError{Name: name, Want: "signal", Got: kindString(e.kind)}
	}

	return c.readSignalLeaves(name, e.sig.dims, nil)
}

func (c *Context) readSignalLeaves(name string, dims []int, idxPath []int) (value.Value, error) {
	if len(dims) == 0 {
		id, err := c.ReadSignal(name, idxPath)
		if err != nil {
			return value.Value{}, err
		}

		return value.Signal(id), nil
	}

	elems := make([]value.Value, dims[0])

	for i := 0; i < dims[0]; i++ {
		child := make([]int, len(idxPath)+1)
		copy(child, idxPath)
		child[len(idxPath)] = i

		v, err := c.readSignalLeaves(name, dims[1:], child)
		if err != nil {
			return value.Value{}, err
		}

		elems[i] = v
	}

	return value.Array(elems), nil
}

// Component resolves a previously declared component handle.
func (c *Context) Component(name string) (any, error) {
	e, ok := c.lookup(name)
	if !ok {
		return nil, &UndeclaredError{Name: name}
	}

	if e.kind != entryComponent {
		return nil, &WrongEntryError{Name: name, Want: "component", Got: kindString(e.kind)}
	}

	return e.comp, nil
}

// Kind reports which sort of binding name resolves to, so callers (the
// evaluator) can dispatch `VarRef` and `Member` without a failed type
// assertion.
func (c *Context) Kind(name string) (string, bool) {
	e, ok := c.lookup(name)
	if !ok {
		return "", false
	}

	return kindString(e.kind), true
}

func kindString(k entryKind) string {
	switch k {
	case entryVariable:
		return "variable"
	case entrySignal:
		return "signal"
	case entryComponent:
		return "component"
	default:
		return fmt.Sprintf("entry(%d)", k)
	}
}
