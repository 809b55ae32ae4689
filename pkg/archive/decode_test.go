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

import "testing"

func TestFromJSONTwoElementSum(t *testing.T) {
	doc := `{
		"main": "Main",
		"mainArgs": [],
		"modulus": null,
		"templates": [{
			"name": "Main",
			"inputs": [
				{"name": "a", "dims": []},
				{"name": "b", "dims": []}
			],
			"outputs": [
				{"name": "out", "dims": []}
			],
			"body": [
				{"WireSubst": {
					"lhs": {"VarRef": {"name": "out"}},
					"rhs": {"Infix": {
						"op": "+",
						"l": {"VarRef": {"name": "a"}},
						"r": {"VarRef": {"name": "b"}}
					}}
				}}
			]
		}]
	}`

	a, err := FromJSON([]byte(doc))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	tmpl, err := a.MainTemplate()
	if err != nil {
		t.Fatalf("MainTemplate: %v", err)
	}

	if len(tmpl.Inputs) != 2 || len(tmpl.Outputs) != 1 {
		t.Fatalf("Main has %d inputs / %d outputs, want 2/1", len(tmpl.Inputs), len(tmpl.Outputs))
	}

	if len(tmpl.Body) != 1 {
		t.Fatalf("Main body has %d statements, want 1", len(tmpl.Body))
	}

	ws, ok := tmpl.Body[0].(*WireSubst)
	if !ok {
		t.Fatalf("Main body[0] is %T, want *WireSubst", tmpl.Body[0])
	}

	infix, ok := ws.RHS.(*Infix)
	if !ok || infix.Op != "+" {
		t.Fatalf("WireSubst.RHS = %#v, want an Infix(+)", ws.RHS)
	}
}

func TestFromJSONLiteralAndModulus(t *testing.T) {
	doc := `{
		"main": "Main",
		"mainArgs": ["3"],
		"modulus": "21888242871839275222246405745257275088548364400416034343698204186575808495617",
		"templates": [{"name": "Main", "params": ["n"], "body": [
			{"Assert": {"cond": {"Lit": {"value": "1"}}}}
		]}]
	}`

	a, err := FromJSON([]byte(doc))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if len(a.MainArgs()) != 1 || a.MainArgs()[0].Int64() != 3 {
		t.Fatalf("MainArgs() = %v, want [3]", a.MainArgs())
	}

	if a.FieldModulus() == nil || a.FieldModulus().Sign() <= 0 {
		t.Fatalf("FieldModulus() = %v, want the declared modulus", a.FieldModulus())
	}
}

func TestFromJSONUnknownStmtVariantFails(t *testing.T) {
	doc := `{"main":"Main","templates":[{"name":"Main","body":[{"Bogus":{}}]}]}`

	if _, err := FromJSON([]byte(doc)); err == nil {
		t.Fatalf("FromJSON with an unrecognized statement variant succeeded")
	}
}

func TestFromJSONUnknownExprVariantFails(t *testing.T) {
	doc := `{"main":"Main","templates":[{"name":"Main","body":[
		{"Assert": {"cond": {"Bogus": {}}}}
	]}]}`

	if _, err := FromJSON([]byte(doc)); err == nil {
		t.Fatalf("FromJSON with an unrecognized expression variant succeeded")
	}
}
