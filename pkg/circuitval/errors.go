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

import "fmt"

// UnboundOutputError is returned by Finalize when a root template output has
// no incoming connection.
type UnboundOutputError struct {
	// Name is the diagnostic name of the unbound output.
	Name string
}

func (e *UnboundOutputError) Error() string {
	return fmt.Sprintf("unbound output signal %q", e.Name)
}

// DoubleAssignError is returned by Connect when the two signals being
// connected already have distinct, concrete origins — the same signal
// would otherwise appear as a gate's out twice.
type DoubleAssignError struct {
	// Name is the diagnostic name of the offending signal.
	Name string
}

func (e *DoubleAssignError) Error() string {
	return fmt.Sprintf("signal %q assigned from two distinct sources", e.Name)
}
