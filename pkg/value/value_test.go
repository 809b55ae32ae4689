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
package value

import (
	"math/big"
	"testing"
)

func TestValueKinds(t *testing.T) {
	u := Unit()
	if !u.IsUnit() {
		t.Fatalf("Unit() is not IsUnit")
	}

	c := Const(big.NewInt(42))
	if !c.IsConst() {
		t.Fatalf("Const() is not IsConst")
	}

	if v, ok := c.AsConst(); !ok || v.Int64() != 42 {
		t.Fatalf("AsConst() = %v, %v; want 42, true", v, ok)
	}

	s := Signal(7)
	if !s.IsSignal() {
		t.Fatalf("Signal() is not IsSignal")
	}

	if id, ok := s.AsSignal(); !ok || id != 7 {
		t.Fatalf("AsSignal() = %v, %v; want 7, true", id, ok)
	}

	arr := Array([]Value{c, s})
	if !arr.IsArray() {
		t.Fatalf("Array() is not IsArray")
	}

	if _, ok := arr.AsConst(); ok {
		t.Fatalf("AsConst() on an Array returned ok=true")
	}
}

func TestShape(t *testing.T) {
	flat := Const(big.NewInt(1))
	if shape, ok := flat.Shape(); !ok || len(shape) != 0 {
		t.Fatalf("Shape() of a scalar = %v, %v; want [], true", shape, ok)
	}

	matrix := Array([]Value{
		Array([]Value{Const(big.NewInt(1)), Const(big.NewInt(2))}),
		Array([]Value{Const(big.NewInt(3)), Const(big.NewInt(4))}),
	})

	shape, ok := matrix.Shape()
	if !ok || len(shape) != 2 || shape[0] != 2 || shape[1] != 2 {
		t.Fatalf("Shape() of a 2x2 matrix = %v, %v; want [2 2], true", shape, ok)
	}

	ragged := Array([]Value{
		Const(big.NewInt(1)),
		Array([]Value{Const(big.NewInt(2))}),
	})

	if _, ok := ragged.Shape(); ok {
		t.Fatalf("Shape() of a ragged array reported ok=true")
	}
}

func TestShapesEqual(t *testing.T) {
	a := Array([]Value{Const(big.NewInt(1)), Const(big.NewInt(2))})
	b := Array([]Value{Signal(0), Signal(1)})
	c := Array([]Value{Const(big.NewInt(1))})

	if !ShapesEqual(a, b) {
		t.Fatalf("ShapesEqual(a, b) = false, want true")
	}

	if ShapesEqual(a, c) {
		t.Fatalf("ShapesEqual(a, c) = true, want false")
	}
}

func TestNewShapedThenSetThenGet(t *testing.T) {
	v := NewShaped([]int{2, 3})

	shape, ok := v.Shape()
	if !ok || len(shape) != 2 || shape[0] != 2 || shape[1] != 3 {
		t.Fatalf("NewShaped([2,3]).Shape() = %v, %v", shape, ok)
	}

	v, err := Set(v, []int{1, 2}, Signal(99))
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := Get(v, []int{1, 2})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if id, ok := got.AsSignal(); !ok || id != 99 {
		t.Fatalf("Get(v, [1,2]) = %v, want Signal(99)", got)
	}

	// Set must not mutate the original value's other leaves.
	other, err := Get(v, []int{0, 0})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if !other.IsUnit() {
		t.Fatalf("Get(v, [0,0]) = %v, want still Unit", other)
	}
}

func TestGetOutOfBounds(t *testing.T) {
	v := NewShaped([]int{2})

	if _, err := Get(v, []int{5}); err == nil {
		t.Fatalf("Get with out-of-bounds index succeeded, want ShapeMismatchError")
	}

	if _, err := Get(v, []int{0, 0}); err == nil {
		t.Fatalf("Get descending past array rank succeeded, want ShapeMismatchError")
	}
}

func TestFlattenRowMajor(t *testing.T) {
	matrix := Array([]Value{
		Array([]Value{Const(big.NewInt(0)), Const(big.NewInt(1))}),
		Array([]Value{Const(big.NewInt(2)), Const(big.NewInt(3))}),
	})

	leaves := Flatten(matrix)
	if len(leaves) != 4 {
		t.Fatalf("Flatten produced %d leaves, want 4", len(leaves))
	}

	wantPaths := [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

	for i, leaf := range leaves {
		if len(leaf.Path) != 2 || leaf.Path[0] != wantPaths[i][0] || leaf.Path[1] != wantPaths[i][1] {
			t.Fatalf("leaf %d path = %v, want %v", i, leaf.Path, wantPaths[i])
		}

		c, ok := leaf.Value.AsConst()
		if !ok || c.Int64() != int64(i) {
			t.Fatalf("leaf %d value = %v, want Const(%d)", i, leaf.Value, i)
		}
	}
}

func TestFlattenScalar(t *testing.T) {
	leaves := Flatten(Const(big.NewInt(5)))
	if len(leaves) != 1 {
		t.Fatalf("Flatten(scalar) produced %d leaves, want 1", len(leaves))
	}

	if len(leaves[0].Path) != 0 {
		t.Fatalf("Flatten(scalar) leaf path = %v, want empty", leaves[0].Path)
	}
}
