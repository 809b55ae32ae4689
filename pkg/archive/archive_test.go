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
	"math/big"
	"testing"
)

func TestFindTemplateAndFunction(t *testing.T) {
	main := Template{Name: "Main"}
	helper := Template{Name: "Helper"}
	double := Function{Name: "Double", Params: []string{"x"}}

	a := New([]Template{main, helper}, []Function{double}, "Main", nil, nil)

	got, err := a.FindTemplate("Helper")
	if err != nil {
		t.Fatalf("FindTemplate: %v", err)
	}

	if got.Name != "Helper" {
		t.Fatalf("FindTemplate(Helper).Name = %q, want Helper", got.Name)
	}

	if _, err := a.FindTemplate("Missing"); err == nil {
		t.Fatalf("FindTemplate(Missing) succeeded, want NotFoundError")
	}

	fn, err := a.FindFunction("Double")
	if err != nil {
		t.Fatalf("FindFunction: %v", err)
	}

	if fn.Name != "Double" {
		t.Fatalf("FindFunction(Double).Name = %q, want Double", fn.Name)
	}

	if _, err := a.FindFunction("Missing"); err == nil {
		t.Fatalf("FindFunction(Missing) succeeded, want NotFoundError")
	}
}

func TestMainTemplateAndArgs(t *testing.T) {
	main := Template{Name: "Main", Params: []string{"n"}}
	args := []*big.Int{big.NewInt(3)}
	modulus := big.NewInt(101)

	a := New([]Template{main}, nil, "Main", args, modulus)

	got, err := a.MainTemplate()
	if err != nil {
		t.Fatalf("MainTemplate: %v", err)
	}

	if got.Name != "Main" {
		t.Fatalf("MainTemplate().Name = %q, want Main", got.Name)
	}

	if len(a.MainArgs()) != 1 || a.MainArgs()[0].Int64() != 3 {
		t.Fatalf("MainArgs() = %v, want [3]", a.MainArgs())
	}

	if a.FieldModulus().Cmp(modulus) != 0 {
		t.Fatalf("FieldModulus() = %v, want %v", a.FieldModulus(), modulus)
	}
}

func TestMainTemplateMissingFails(t *testing.T) {
	a := New(nil, nil, "Main", nil, nil)

	if _, err := a.MainTemplate(); err == nil {
		t.Fatalf("MainTemplate() with no templates succeeded, want NotFoundError")
	}
}

func TestFieldModulusDefaultsToNil(t *testing.T) {
	a := New([]Template{{Name: "Main"}}, nil, "Main", nil, nil)

	if a.FieldModulus() != nil {
		t.Fatalf("FieldModulus() = %v, want nil", a.FieldModulus())
	}
}
