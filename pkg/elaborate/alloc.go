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
	"github.com/namnc/circom-2-arithc/pkg/circuitval"
	"github.com/namnc/circom-2-arithc/pkg/util"
)

// prefixedAllocator satisfies ctx.Allocator, qualifying every lazily
// allocated intermediate's diagnostic name (a body-local `signal x;`) with
// the owning component's dotted path. The root template's path is empty, so
// its local intermediates keep their bare name.
type prefixedAllocator struct {
	b    *circuitval.Builder
	path util.Path
}

func (p prefixedAllocator) NewIntermediate(name string) uint {
	if p.path.Depth() == 0 {
		return p.b.NewIntermediate(name)
	}

	return p.b.NewIntermediate(p.path.Extend(name).String())
}
