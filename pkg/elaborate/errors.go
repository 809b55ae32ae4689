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
	"strings"
)

// frame is one entry in an ElaborationError's breadcrumb chain: the
// template or function being traversed, and the index of the statement
// within its body that triggered the failure.
type frame struct {
	Scope string
	Stmt  int
}

func (f frame) String() string {
	return fmt.Sprintf("%s.stmt[%d]", f.Scope, f.Stmt)
}

// ElaborationError wraps an underlying failure with the chain of
// (template/function, statement index) frames active when it occurred,
// innermost first.
type ElaborationError struct {
	Err    error
	frames []frame
}

func (e *ElaborationError) Error() string {
	if len(e.frames) == 0 {
		return e.Err.Error()
	}

	parts := make([]string, len(e.frames))
	for i, f := range e.frames {
		parts[i] = f.String()
	}

	return fmt.Sprintf("%s: %s", strings.Join(parts, " -> "), e.Err.Error())
}

func (e *ElaborationError) Unwrap() error {
	return e.Err
}

// wrapFrame attaches a breadcrumb frame to err, building a fresh
// ElaborationError the first time and appending to an existing one's chain
// on the way further up the call stack.
func wrapFrame(err error, scope string, stmt int) error {
	if err == nil {
		return nil
	}

	f := frame{Scope: scope, Stmt: stmt}

	if ee, ok := err.(*ElaborationError); ok {
		ee.frames = append(ee.frames, f)
		return ee
	}

	return &ElaborationError{Err: err, frames: []frame{f}}
}

// AssertError reports a compile-time assertion that folded to zero.
type AssertError struct {
	Template string
}

func (e *AssertError) Error() string {
	return fmt.Sprintf("assertion failed in %s", e.Template)
}

// SymbolicBranchError reports an `if` or `while` condition that evaluated
// to a Signal instead of folding to a Const.
type SymbolicBranchError struct{}

func (e *SymbolicBranchError) Error() string {
	return "condition must fold to a constant, got a signal"
}

// ReturnOutsideFunctionError reports a `return` statement reached while
// traversing a template body rather than a function body.
type ReturnOutsideFunctionError struct{}

func (e *ReturnOutsideFunctionError) Error() string {
	return "return statement is only valid inside a function"
}

// ShapeError reports a wiring statement whose left- and right-hand shapes
// disagree.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("wiring shape mismatch: %s", e.Reason)
}

// BudgetExceededError reports that Config.Budget statements were traversed
// without the elaboration completing.
type BudgetExceededError struct {
	Budget uint64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("elaboration budget of %d statements exceeded", e.Budget)
}

// NonConstAssignError reports a plain-variable assignment whose right-hand
// side contains a Signal, which a compile-time variable cannot hold.
type NonConstAssignError struct{}

func (e *NonConstAssignError) Error() string {
	return "cannot assign a signal-valued expression to a variable"
}

// CyclicInstantiationError reports a template instantiated again while an
// instantiation of the same template, with any arguments, is still active.
type CyclicInstantiationError struct {
	Template string
}

func (e *CyclicInstantiationError) Error() string {
	return fmt.Sprintf("cyclic instantiation of template %q", e.Template)
}
