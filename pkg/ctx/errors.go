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

import "fmt"

// RedeclaredError reports a name declared twice in the same scope.
type RedeclaredError struct {
	Name string
}

func (e *RedeclaredError) Error() string {
	return fmt.Sprintf("%q already declared in this scope", e.Name)
}

// UndeclaredError reports a name referenced but never declared in any
// enclosing scope.
type UndeclaredError struct {
	Name string
}

func (e *UndeclaredError) Error() string {
	return fmt.Sprintf("%q is not declared", e.Name)
}

// WrongEntryError reports a name resolving to the wrong kind of binding, e.g.
// reading a component handle as a variable.
type WrongEntryError struct {
	Name string
	Want string
	Got  string
}

func (e *WrongEntryError) Error() string {
	return fmt.Sprintf("%q is a %s, not a %s", e.Name, e.Got, e.Want)
}

// UnwiredInputError is raised by ReadSignal when a declared input signal (or
// a leaf of a declared input array) is demanded before the caller has wired
// it.
type UnwiredInputError struct {
	Name string
}

func (e *UnwiredInputError) Error() string {
	return fmt.Sprintf("input signal %q read before being wired", e.Name)
}
