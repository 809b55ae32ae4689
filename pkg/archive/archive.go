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
package archive

import (
	"fmt"
	"math/big"
)

// Template is a reusable circuit schema parameterized by integer arguments.
// Input and output signal declarations are kept separate from Body,
// matching the archive's read-only accessor surface; Body holds the
// template's own statements, not including its own I/O declarations, which
// belong to Inputs/Outputs instead.
type Template struct {
	Name         string
	Params       []string
	Inputs       []SignalSig
	Outputs      []SignalSig
	Body         []Stmt
	IsCustomGate bool
}

// SignalSig is an input or output signal's declared name and shape. Dims is
// empty for a scalar signal; each dimension may reference the template's
// own generic parameters and so is only resolved to concrete integers when
// the template is instantiated.
type SignalSig struct {
	Name string
	Dims []Expr
}

// Function is a pure compile-time subroutine over variables. Its body must
// not declare signals or sub-components (enforced by the statement
// traverser, not here).
type Function struct {
	Name   string
	Params []string
	Body   []Stmt
}

// Archive is the read-only, fully resolved input view: the typed AST of
// every template and function, plus the chosen main template and its
// compile-time arguments. DSL parsing and type analysis happen upstream —
// an Archive always arrives already built.
type Archive struct {
	templateList []Template
	functionList []Function
	templateIdx  map[string]int
	functionIdx  map[string]int
	main         string
	mainArgsList []*big.Int
	modulus      *big.Int
}

// New constructs an Archive from its constituent templates and functions.
// mainArgs are the compile-time arguments applied to the main template.
// modulus may be nil, meaning the archive declares no field modulus (see
// DESIGN.md for what that means for field division).
func New(templates []Template, functions []Function, main string, mainArgs []*big.Int, modulus *big.Int) *Archive {
	a := &Archive{
		templateList: templates,
		functionList: functions,
		templateIdx:  make(map[string]int, len(templates)),
		functionIdx:  make(map[string]int, len(functions)),
		main:         main,
		mainArgsList: mainArgs,
		modulus:      modulus,
	}

	for i, t := range templates {
		a.templateIdx[t.Name] = i
	}

	for i, f := range functions {
		a.functionIdx[f.Name] = i
	}

	return a
}

// Templates returns every template definition in the archive.
func (a *Archive) Templates() []Template {
	return a.templateList
}

// Functions returns every function definition in the archive.
func (a *Archive) Functions() []Function {
	return a.functionList
}

// FindTemplate resolves a template by name. Fails with a NotFoundError when
// name is unknown.
func (a *Archive) FindTemplate(name string) (*Template, error) {
	i, ok := a.templateIdx[name]
	if !ok {
		return nil, &NotFoundError{Kind: "template", Name: name}
	}
	//
	return &a.templateList[i], nil
}

// FindFunction resolves a function by name. Fails with a NotFoundError when
// name is unknown.
func (a *Archive) FindFunction(name string) (*Function, error) {
	i, ok := a.functionIdx[name]
	if !ok {
		return nil, &NotFoundError{Kind: "function", Name: name}
	}
	//
	return &a.functionList[i], nil
}

// MainTemplate resolves the archive's chosen main template.
func (a *Archive) MainTemplate() (*Template, error) {
	return a.FindTemplate(a.main)
}

// MainArgs returns the compile-time arguments bound to the main template's
// generic parameters.
func (a *Archive) MainArgs() []*big.Int {
	return a.mainArgsList
}

// FieldModulus returns the archive's declared field modulus, or nil if none
// was declared.
func (a *Archive) FieldModulus() *big.Int {
	return a.modulus
}

// NotFoundError is returned by FindTemplate/FindFunction for an unknown
// name.
type NotFoundError struct {
	Kind string // "template" or "function"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in archive", e.Kind, e.Name)
}
