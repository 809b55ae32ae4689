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

// Package archive implements the Program Archive: the fully resolved,
// type-checked AST of every template and function, plus the chosen main
// template and its compile-time arguments. DSL lexing, parsing and
// name/type resolution happen upstream of this package — it only defines
// the shape an already-resolved program takes once it reaches the
// elaborator.
package archive

import "math/big"

// Expr is the sum type of DSL expression forms the evaluator (pkg/eval)
// consumes, one struct per node kind, pared back to the grammar this
// elaborator actually evaluates; a marker method keeps the set closed to
// this package's types.
type Expr interface {
	isExpr()
}

// Lit is an integer literal, e.g. `42`.
type Lit struct {
	Value *big.Int
}

// VarRef is a reference to a variable, signal, signal array, or component
// handle bound in the current scope.
type VarRef struct {
	Name string
}

// Index is an array (or signal-array) access `e[i0][i1]...`. Every index
// must reduce to a constant.
type Index struct {
	Base    Expr
	Indices []Expr
}

// Member is a dotted access into a component's port, e.g. `c.in` or `c.out`.
type Member struct {
	Base  Expr
	Field string
}

// Infix is a binary operator application. Op is one of the symbols:
// "+ - * \\ / ** % << >> | & ^ <= < >= > == != && ||".
type Infix struct {
	Op   string
	L, R Expr
}

// Prefix is a unary operator application. Op is one of "-", "!", "~".
type Prefix struct {
	Op string
	X  Expr
}

// Tuple is a 1-D array literal, e.g. `[a, b, c]`.
type Tuple struct {
	Elems []Expr
}

// Call invokes a pure compile-time function by name with the given
// arguments. A function's body must not declare signals or sub-components;
// its return value is a plain Value.
type Call struct {
	Name string
	Args []Expr
}

// AnonComponent is an anonymous component instantiation with positional
// input wiring: equivalent to declaring a fresh unnamed component of the
// named template, wiring Inputs into its declared inputs in order, and
// yielding its single output.
type AnonComponent struct {
	Template string
	Generics []Expr
	Inputs   []Expr
}

func (*Lit) isExpr()           {}
func (*VarRef) isExpr()        {}
func (*Index) isExpr()         {}
func (*Member) isExpr()        {}
func (*Infix) isExpr()         {}
func (*Prefix) isExpr()        {}
func (*Tuple) isExpr()         {}
func (*Call) isExpr()          {}
func (*AnonComponent) isExpr() {}
