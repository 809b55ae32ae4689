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
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/sirupsen/logrus"

	"github.com/namnc/circom-2-arithc/field"
	bls12377 "github.com/namnc/circom-2-arithc/field/bls12-377"
	"github.com/namnc/circom-2-arithc/field/genprime"
	"github.com/namnc/circom-2-arithc/pkg/archive"
	"github.com/namnc/circom-2-arithc/pkg/circuitval"
	"github.com/namnc/circom-2-arithc/pkg/ctx"
	"github.com/namnc/circom-2-arithc/pkg/eval"
	"github.com/namnc/circom-2-arithc/pkg/primitive"
	"github.com/namnc/circom-2-arithc/pkg/util"
	"github.com/namnc/circom-2-arithc/pkg/value"
)

// Elaborator drives a single archive.Archive through to a finished Circuit:
// the Statement Traverser and Component Instantiator bound together over a
// live Runtime Context stack and Circuit Builder.
type Elaborator struct {
	Archive *archive.Archive
	Builder *circuitval.Builder
	Field   field.Divider
	Config  Config

	log         *logrus.Entry
	templateIdx map[string]int
	active      *bitset.BitSet
	steps       uint64
	anonCounter int
}

// Elaborate is the package-level entrypoint: it constructs an Elaborator for
// a under cfg and drives its main template to a finished Circuit.
func Elaborate(a *archive.Archive, cfg Config) (*circuitval.Circuit, error) {
	return New(a, cfg).Elaborate()
}

// New constructs an Elaborator for archive a under cfg.
func New(a *archive.Archive, cfg Config) *Elaborator {
	idx := make(map[string]int, len(a.Templates()))
	for i, t := range a.Templates() {
		idx[t.Name] = i
	}

	return &Elaborator{
		Archive:     a,
		Builder:     circuitval.NewBuilder(),
		Field:       resolveField(a, cfg),
		Config:      cfg,
		log:         logrus.WithField("component", "elaborate"),
		templateIdx: idx,
		active:      bitset.New(uint(len(a.Templates()))),
	}
}

// resolveField picks the field division backend: an explicit Config
// override, else the archive's own declared modulus, else the BLS12-377
// scalar field.
func resolveField(a *archive.Archive, cfg Config) field.Divider {
	if cfg.FieldModulus != nil {
		return genprime.New(cfg.FieldModulus)
	}

	if m := a.FieldModulus(); m != nil {
		return genprime.New(m)
	}

	return bls12377.Field{}
}

// Elaborate resolves the archive's main template and drives it to a
// finished Circuit.
func (el *Elaborator) Elaborate() (*circuitval.Circuit, error) {
	tmpl, err := el.Archive.MainTemplate()
	if err != nil {
		return nil, err
	}

	args := el.Archive.MainArgs()
	if len(args) != len(tmpl.Params) {
		return nil, fmt.Errorf("main template %s expects %d generic argument(s), got %d", tmpl.Name, len(tmpl.Params), len(args))
	}

	root := ctx.New(prefixedAllocator{b: el.Builder, path: util.RootPath()}, ctx.ScopeTemplate)

	for i, p := range tmpl.Params {
		if err := root.DeclareVariable(p); err != nil {
			return nil, err
		}

		if err := root.BindVariable(p, nil, value.Const(args[i])); err != nil {
			return nil, err
		}
	}

	handle := &ComponentHandle{Template: tmpl.Name, Path: util.RootPath(), Ctx: root, Status: Pending}
	childEv := el.newEvaluator(handle)

	ralloc := rootPortAllocator(el.Builder)
	if err := el.declareHandlePorts(handle, childEv, util.RootPath(), tmpl, ralloc); err != nil {
		return nil, err
	}

	if el.Config.Debug {
		el.log.Debugf("instantiating root template %s", tmpl.Name)
	}

	childEnv := &env{ev: childEv, handle: handle, templateName: tmpl.Name}

	if _, _, err := el.traverseStmts(childEnv, tmpl.Body); err != nil {
		return nil, err
	}

	handle.Status = Elaborated
	if err := handle.replayPending(el.Builder); err != nil {
		return nil, err
	}

	return el.Builder.Finalize()
}

func (el *Elaborator) newEvaluator(handle *ComponentHandle) *eval.Evaluator {
	ev := eval.New(handle.Ctx, el.Builder, el.Field, nil, nil)

	ev.Call = func(name string, args []value.Value) (value.Value, error) {
		return el.callFunction(name, args)
	}

	ev.Anon = func(tmplName string, generics, inputs []value.Value) (value.Value, error) {
		return el.instantiateAnon(handle, tmplName, generics, inputs)
	}

	return ev
}

func (el *Elaborator) tickBudget() error {
	if el.Config.Budget == 0 {
		return nil
	}

	el.steps++
	if el.steps > el.Config.Budget {
		return &BudgetExceededError{Budget: el.Config.Budget}
	}

	return nil
}

// enterInstantiation guards against a template recursing into its own
// instantiation before any statement budget check would catch it, using a
// bitset of template indices currently on the active instantiation path.
func (el *Elaborator) enterInstantiation(name string) error {
	i, ok := el.templateIdx[name]
	if !ok {
		return nil
	}

	if el.active.Test(uint(i)) {
		return &CyclicInstantiationError{Template: name}
	}

	el.active.Set(uint(i))
	//
	return nil
}

func (el *Elaborator) exitInstantiation(name string) {
	if i, ok := el.templateIdx[name]; ok {
		el.active.Clear(uint(i))
	}
}

// declareHandlePorts declares and eagerly allocates tmpl's inputs and
// outputs against handle's own context. Each port's shape lives in the
// Context's own signal slot (set by DeclareSignal) and is recovered later by
// ReadPort via Context.ReadSignalValue, so there is nothing further to
// record on the handle itself.
func (el *Elaborator) declareHandlePorts(handle *ComponentHandle, ev *eval.Evaluator, path util.Path, tmpl *archive.Template, alloc portAllocator) error {
	if _, err := declarePorts(ev, handle.Ctx, path, tmpl.Inputs, alloc.allocInput); err != nil {
		return err
	}

	if _, err := declarePorts(ev, handle.Ctx, path, tmpl.Outputs, alloc.allocOutput); err != nil {
		return err
	}

	return nil
}

// instantiateComponent declares a named component in the caller's scope,
// resolving Template to either a primitive family's direct gate emission or
// a full recursive template instantiation.
func (el *Elaborator) instantiateComponent(caller *env, decl *archive.DeclComponent) error {
	tmpl, err := el.Archive.FindTemplate(decl.Template)
	if err != nil {
		return err
	}

	args := make([]*big.Int, len(decl.Args))

	for i, a := range decl.Args {
		c, err := caller.ev.EvalConst(a, "component generic argument")
		if err != nil {
			return err
		}

		args[i] = c
	}

	path := caller.handle.Path.Extend(decl.Name)

	var handle *ComponentHandle
	if fam, ok := primitive.Lookup(decl.Template, len(args)); ok {
		handle, err = el.instantiatePrimitive(fam, tmpl, path, args)
	} else {
		handle, err = el.instantiateTemplate(tmpl, path, args)
	}

	if err != nil {
		return err
	}

	return caller.ev.Ctx.DeclareComponent(decl.Name, handle)
}

// instantiateTemplate runs the full Component Instantiator algorithm: bind
// generics, eagerly declare ports, traverse the body, mark Elaborated, then
// apply any outward wiring queued before the body finished.
func (el *Elaborator) instantiateTemplate(tmpl *archive.Template, path util.Path, args []*big.Int) (*ComponentHandle, error) {
	if len(args) != len(tmpl.Params) {
		return nil, fmt.Errorf("template %s expects %d generic argument(s), got %d", tmpl.Name, len(tmpl.Params), len(args))
	}

	if err := el.enterInstantiation(tmpl.Name); err != nil {
		return nil, err
	}
	defer el.exitInstantiation(tmpl.Name)

	c := ctx.New(prefixedAllocator{b: el.Builder, path: path}, ctx.ScopeTemplate)

	for i, p := range tmpl.Params {
		if err := c.DeclareVariable(p); err != nil {
			return nil, err
		}

		if err := c.BindVariable(p, nil, value.Const(args[i])); err != nil {
			return nil, err
		}
	}

	handle := &ComponentHandle{Template: tmpl.Name, Path: path, Ctx: c, Status: Pending}
	ev := el.newEvaluator(handle)

	if err := el.declareHandlePorts(handle, ev, path, tmpl, childPortAllocator(el.Builder)); err != nil {
		return nil, err
	}

	if el.Config.Debug {
		el.log.Debugf("instantiating %s as %s", tmpl.Name, path.String())
	}

	childEnv := &env{ev: ev, handle: handle, templateName: tmpl.Name}
	if _, _, err := el.traverseStmts(childEnv, tmpl.Body); err != nil {
		return nil, err
	}

	handle.Status = Elaborated
	if err := handle.replayPending(el.Builder); err != nil {
		return nil, err
	}

	return handle, nil
}

// instantiatePrimitive allocates a primitive family's input ports, calls its
// Build to emit gates directly, and binds the results onto its single
// declared output. There is no body to traverse, so the handle is marked
// Elaborated the instant its gates exist — any wiring to its inputs (which,
// by program order, can only arrive afterward) connects immediately rather
// than queuing.
func (el *Elaborator) instantiatePrimitive(fam primitive.Family, tmpl *archive.Template, path util.Path, args []*big.Int) (*ComponentHandle, error) {
	c := ctx.New(prefixedAllocator{b: el.Builder, path: path}, ctx.ScopeTemplate)
	handle := &ComponentHandle{Template: tmpl.Name, Path: path, Ctx: c, Status: Elaborated}
	ev := el.newEvaluator(handle)

	ins, err := declarePorts(ev, c, path, tmpl.Inputs, childPortAllocator(el.Builder).allocInput)
	if err != nil {
		return nil, err
	}

	var inputIDs []uint
	for _, p := range ins {
		inputIDs = append(inputIDs, p.IDs...)
	}

	if len(tmpl.Outputs) != 1 {
		return nil, fmt.Errorf("primitive family %s: expected exactly one declared output signal, got %d", fam.Name, len(tmpl.Outputs))
	}

	outs, err := fam.Build(primitive.BuildCtx{Builder: el.Builder, Field: el.Field}, args, inputIDs)
	if err != nil {
		return nil, err
	}

	outSig := tmpl.Outputs[0]
	dims, err := resolveDims(ev, outSig.Dims)
	if err != nil {
		return nil, err
	}

	if err := c.DeclareSignal(outSig.Name, dims, false); err != nil {
		return nil, err
	}

	if err := bindFlat(c, outSig.Name, dims, outs); err != nil {
		return nil, err
	}
	//
	return handle, nil
}

// instantiateAnon instantiates an unnamed component of the given template,
// wiring inputs into its declared input ports by position, and returns its
// single output port's Value.
func (el *Elaborator) instantiateAnon(caller *ComponentHandle, tmplName string, generics []value.Value, inputs []value.Value) (value.Value, error) {
	tmpl, err := el.Archive.FindTemplate(tmplName)
	if err != nil {
		return value.Value{}, err
	}

	args := make([]*big.Int, len(generics))

	for i, g := range generics {
		c, ok := g.AsConst()
		if !ok {
			return value.Value{}, &eval.NonConstArgError{Context: "anonymous component generic argument"}
		}

		args[i] = c
	}

	el.anonCounter++
	path := caller.Path.Extend(fmt.Sprintf("_anon%d", el.anonCounter))

	var handle *ComponentHandle
	if fam, ok := primitive.Lookup(tmplName, len(args)); ok {
		handle, err = el.instantiatePrimitive(fam, tmpl, path, args)
	} else {
		handle, err = el.instantiateTemplate(tmpl, path, args)
	}

	if err != nil {
		return value.Value{}, err
	}

	if err := el.wireAnonInputs(handle, tmpl.Inputs, inputs); err != nil {
		return value.Value{}, err
	}

	if len(tmpl.Outputs) != 1 {
		return value.Value{}, fmt.Errorf("anonymous instantiation of %s: expected exactly one output, got %d", tmplName, len(tmpl.Outputs))
	}

	return handle.ReadPort(tmpl.Outputs[0].Name)
}

func (el *Elaborator) wireAnonInputs(handle *ComponentHandle, sigs []archive.SignalSig, inputs []value.Value) error {
	if len(inputs) != len(sigs) {
		return &ShapeError{Reason: fmt.Sprintf("anonymous instantiation supplies %d input(s), template declares %d", len(inputs), len(sigs))}
	}

	for i, sig := range sigs {
		for _, leaf := range value.Flatten(inputs[i]) {
			if err := handle.WritePort(el.Builder, sig.Name, leaf.Path, leaf.Value); err != nil {
				return err
			}
		}
	}

	return nil
}

// callFunction resolves name in the archive and runs its body in a fresh,
// independent Context rooted at ScopeFunction — a function cannot declare
// signals or sub-components, and (being pure) sees nothing of the caller's
// scope beyond the arguments it was given.
func (el *Elaborator) callFunction(name string, args []value.Value) (value.Value, error) {
	fn, err := el.Archive.FindFunction(name)
	if err != nil {
		return value.Value{}, err
	}

	if len(args) != len(fn.Params) {
		return value.Value{}, fmt.Errorf("function %s expects %d argument(s), got %d", name, len(fn.Params), len(args))
	}

	c := ctx.New(el.Builder, ctx.ScopeFunction)

	for i, p := range fn.Params {
		if err := c.DeclareVariable(p); err != nil {
			return value.Value{}, err
		}

		if err := c.BindVariable(p, nil, args[i]); err != nil {
			return value.Value{}, err
		}
	}

	handle := &ComponentHandle{Template: name, Path: util.RootPath(), Ctx: c, Status: Elaborated}
	ev := el.newEvaluator(handle)
	funcEnv := &env{ev: ev, handle: nil, templateName: name}

	if el.Config.Debug {
		el.log.Debugf("calling function %s", name)
	}

	rv, returned, err := el.traverseStmts(funcEnv, fn.Body)
	if err != nil {
		return value.Value{}, err
	}

	if !returned {
		return value.Unit(), nil
	}

	return rv, nil
}
