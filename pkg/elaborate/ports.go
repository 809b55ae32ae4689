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

	"github.com/namnc/circom-2-arithc/pkg/archive"
	"github.com/namnc/circom-2-arithc/pkg/circuitval"
	"github.com/namnc/circom-2-arithc/pkg/ctx"
	"github.com/namnc/circom-2-arithc/pkg/eval"
	"github.com/namnc/circom-2-arithc/pkg/util"
)

// portAllocator supplies the two ways a port's signal ids get allocated:
// true circuit inputs/outputs for the main template, or plain intermediates
// (both directions) for a nested component's ports.
type portAllocator struct {
	allocInput  func(name string) uint
	allocOutput func(name string) uint
}

func rootPortAllocator(b *circuitval.Builder) portAllocator {
	return portAllocator{
		allocInput: b.NewInput,
		allocOutput: func(name string) uint {
			id := b.NewOutput(name)
			b.MarkRootOutput(id)
			//
			return id
		},
	}
}

func childPortAllocator(b *circuitval.Builder) portAllocator {
	return portAllocator{allocInput: b.NewIntermediate, allocOutput: b.NewIntermediate}
}

// portInfo records a declared port's shape and the ids bound to each of its
// leaves, in row-major order — ids feed a primitive family's Build call;
// dims lets ReadPort reassemble an array-shaped port into a single Value.
type portInfo struct {
	Name string
	Dims []int
	IDs  []uint
}

// declarePorts declares and eagerly allocates every signal in sigs (a
// template's Inputs or Outputs) against c, qualifying each leaf's
// diagnostic name with path.
func declarePorts(ev *eval.Evaluator, c *ctx.Context, path util.Path, sigs []archive.SignalSig, alloc func(string) uint) ([]portInfo, error) {
	infos := make([]portInfo, len(sigs))

	for si, sig := range sigs {
		dims, err := resolveDims(ev, sig.Dims)
		if err != nil {
			return nil, err
		}

		if err := c.DeclareSignal(sig.Name, dims, false); err != nil {
			return nil, err
		}

		var ids []uint
		recording := func(label string) uint {
			id := alloc(label)
			ids = append(ids, id)
			//
			return id
		}

		qualified := path.Extend(sig.Name).String()
		if err := bindEagerLeaves(c, sig.Name, dims, nil, qualified, recording); err != nil {
			return nil, err
		}

		infos[si] = portInfo{Name: sig.Name, Dims: dims, IDs: ids}
	}

	return infos, nil
}

func resolveDims(ev *eval.Evaluator, dimExprs []archive.Expr) ([]int, error) {
	dims := make([]int, len(dimExprs))

	for i, e := range dimExprs {
		c, err := ev.EvalConst(e, "signal dimension")
		if err != nil {
			return nil, err
		}

		if !c.IsInt64() || c.Sign() < 0 {
			return nil, fmt.Errorf("signal dimension must be a non-negative integer, got %s", c.String())
		}

		dims[i] = int(c.Int64())
	}

	return dims, nil
}

func bindEagerLeaves(c *ctx.Context, name string, dims []int, idxPath []int, qualified string, alloc func(string) uint) error {
	if len(dims) == 0 {
		label := qualified
		if len(idxPath) > 0 {
			label = qualified + indexSuffix(idxPath)
		}

		return c.BindSignal(name, idxPath, alloc(label))
	}

	for i := 0; i < dims[0]; i++ {
		child := make([]int, len(idxPath)+1)
		copy(child, idxPath)
		child[len(idxPath)] = i

		if err := bindEagerLeaves(c, name, dims[1:], child, qualified, alloc); err != nil {
			return err
		}
	}

	return nil
}

func indexSuffix(idxPath []int) string {
	s := ""
	for _, i := range idxPath {
		s += fmt.Sprintf("[%d]", i)
	}

	return s
}

// flatLeafPaths returns every index path for a shape in row-major order — a
// single nil path for a scalar.
func flatLeafPaths(dims []int) [][]int {
	if len(dims) == 0 {
		return [][]int{nil}
	}

	var out [][]int

	for i := 0; i < dims[0]; i++ {
		for _, rest := range flatLeafPaths(dims[1:]) {
			path := make([]int, 0, len(rest)+1)
			path = append(path, i)
			path = append(path, rest...)
			out = append(out, path)
		}
	}

	return out
}

// bindFlat binds a flat, row-major list of ids (as returned by a primitive
// family's Build) onto the leaves of an already-declared signal of the
// given shape.
func bindFlat(c *ctx.Context, name string, dims []int, ids []uint) error {
	paths := flatLeafPaths(dims)
	if len(paths) != len(ids) {
		return &ShapeError{Reason: fmt.Sprintf("primitive produced %d output signal(s), declared shape %v expects %d", len(ids), dims, len(paths))}
	}

	for i, p := range paths {
		if err := c.BindSignal(name, p, ids[i]); err != nil {
			return err
		}
	}

	return nil
}
