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
	"encoding/json"
	"fmt"
	"math/big"
)

// FromJSON decodes an Archive from its JSON wire form: a tagged-enum
// encoding of Stmt/Expr (one key per variant, e.g. {"Lit":{"value":"42"}}),
// decoded through loose map[string]interface{} values. An Archive always
// arrives already parsed and
// type-checked; this is only concerned with deserializing that finished
// shape, not with lexing or resolving a DSL source file.
func FromJSON(data []byte) (*Archive, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}

	templates, err := decodeTemplateList(raw["templates"])
	if err != nil {
		return nil, err
	}

	functions, err := decodeFunctionList(raw["functions"])
	if err != nil {
		return nil, err
	}

	main, _ := raw["main"].(string)

	mainArgs, err := decodeBigIntList(raw["mainArgs"])
	if err != nil {
		return nil, err
	}

	modulus, err := decodeOptionalBigInt(raw["modulus"])
	if err != nil {
		return nil, err
	}

	return New(templates, functions, main, mainArgs, modulus), nil
}

func decodeTemplateList(raw interface{}) ([]Template, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, nil
	}

	out := make([]Template, len(items))

	for i, item := range items {
		t, err := decodeTemplate(item)
		if err != nil {
			return nil, err
		}

		out[i] = t
	}

	return out, nil
}

func decodeTemplate(raw interface{}) (Template, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return Template{}, fmt.Errorf("decode template: expected an object")
	}

	inputs, err := decodeSignalSigList(m["inputs"])
	if err != nil {
		return Template{}, err
	}

	outputs, err := decodeSignalSigList(m["outputs"])
	if err != nil {
		return Template{}, err
	}

	body, err := decodeStmtList(m["body"])
	if err != nil {
		return Template{}, err
	}

	isCustomGate, _ := m["isCustomGate"].(bool)

	return Template{
		Name:         stringField(m, "name"),
		Params:       stringSliceField(m, "params"),
		Inputs:       inputs,
		Outputs:      outputs,
		Body:         body,
		IsCustomGate: isCustomGate,
	}, nil
}

func decodeSignalSigList(raw interface{}) ([]SignalSig, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, nil
	}

	out := make([]SignalSig, len(items))

	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("decode signal signature: expected an object")
		}

		dims, err := decodeExprList(m["dims"])
		if err != nil {
			return nil, err
		}

		out[i] = SignalSig{Name: stringField(m, "name"), Dims: dims}
	}

	return out, nil
}

func decodeFunctionList(raw interface{}) ([]Function, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, nil
	}

	out := make([]Function, len(items))

	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("decode function: expected an object")
		}

		body, err := decodeStmtList(m["body"])
		if err != nil {
			return nil, err
		}

		out[i] = Function{
			Name:   stringField(m, "name"),
			Params: stringSliceField(m, "params"),
			Body:   body,
		}
	}

	return out, nil
}

func decodeStmtList(raw interface{}) ([]Stmt, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, nil
	}

	out := make([]Stmt, len(items))

	for i, item := range items {
		s, err := decodeStmt(item)
		if err != nil {
			return nil, err
		}

		out[i] = s
	}

	return out, nil
}

// decodeStmt dispatches on the single key of a tagged-enum object: one
// variant name maps to one payload object.
func decodeStmt(raw interface{}) (Stmt, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("decode statement: expected an object")
	}

	for tag, payload := range m {
		p, _ := payload.(map[string]interface{})

		switch tag {
		case "InitBlock":
			stmts, err := decodeStmtList(p["stmts"])
			return &InitBlock{Stmts: stmts}, err
		case "DeclVar":
			return &DeclVar{Name: stringField(p, "name")}, nil
		case "DeclSignal":
			dims, err := decodeExprList(p["dims"])
			if err != nil {
				return nil, err
			}

			return &DeclSignal{
				Name: stringField(p, "name"),
				Role: decodeSignalRole(p["role"]),
				Dims: dims,
			}, nil
		case "DeclComponent":
			args, err := decodeExprList(p["args"])
			if err != nil {
				return nil, err
			}

			return &DeclComponent{
				Name:     stringField(p, "name"),
				Template: stringField(p, "template"),
				Args:     args,
			}, nil
		case "WireSubst":
			return decodeLHSRHS(p, func(lhs, rhs Expr) Stmt { return &WireSubst{LHS: lhs, RHS: rhs} })
		case "VarAssign":
			return decodeLHSRHS(p, func(lhs, rhs Expr) Stmt { return &VarAssign{LHS: lhs, RHS: rhs} })
		case "MultSubst":
			return decodeLHSRHS(p, func(lhs, rhs Expr) Stmt { return &MultSubst{LHS: lhs, RHS: rhs} })
		case "UnderscoreSubst":
			rhs, err := decodeExpr(p["rhs"])
			return &UnderscoreSubst{RHS: rhs}, err
		case "ConstraintEquality":
			return decodeLHSRHS(p, func(lhs, rhs Expr) Stmt { return &ConstraintEquality{LHS: lhs, RHS: rhs} })
		case "If":
			return decodeIf(p)
		case "While":
			return decodeWhile(p)
		case "Return":
			v, err := decodeExpr(p["value"])
			return &Return{Value: v}, err
		case "Assert":
			c, err := decodeExpr(p["cond"])
			return &Assert{Cond: c}, err
		case "Log":
			args, err := decodeExprList(p["args"])
			return &Log{Args: args}, err
		case "Block":
			stmts, err := decodeStmtList(p["stmts"])
			return &Block{Stmts: stmts}, err
		default:
			return nil, fmt.Errorf("decode statement: unrecognized variant %q", tag)
		}
	}

	return nil, fmt.Errorf("decode statement: empty tagged object")
}

func decodeLHSRHS(p map[string]interface{}, build func(lhs, rhs Expr) Stmt) (Stmt, error) {
	lhs, err := decodeExpr(p["lhs"])
	if err != nil {
		return nil, err
	}

	rhs, err := decodeExpr(p["rhs"])
	if err != nil {
		return nil, err
	}

	return build(lhs, rhs), nil
}

func decodeIf(p map[string]interface{}) (Stmt, error) {
	cond, err := decodeExpr(p["cond"])
	if err != nil {
		return nil, err
	}

	then, err := decodeStmtList(p["then"])
	if err != nil {
		return nil, err
	}

	els, err := decodeStmtList(p["else"])
	if err != nil {
		return nil, err
	}

	return &If{Cond: cond, Then: then, Else: els}, nil
}

func decodeWhile(p map[string]interface{}) (Stmt, error) {
	cond, err := decodeExpr(p["cond"])
	if err != nil {
		return nil, err
	}

	body, err := decodeStmtList(p["body"])
	if err != nil {
		return nil, err
	}

	return &While{Cond: cond, Body: body}, nil
}

func decodeSignalRole(raw interface{}) SignalRole {
	switch s, _ := raw.(string); s {
	case "input":
		return SignalInput
	case "output":
		return SignalOutput
	default:
		return SignalIntermediate
	}
}

func decodeExprList(raw interface{}) ([]Expr, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, nil
	}

	out := make([]Expr, len(items))

	for i, item := range items {
		e, err := decodeExpr(item)
		if err != nil {
			return nil, err
		}

		out[i] = e
	}

	return out, nil
}

func decodeExpr(raw interface{}) (Expr, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("decode expression: expected an object")
	}

	for tag, payload := range m {
		p, _ := payload.(map[string]interface{})

		switch tag {
		case "Lit":
			v, err := decodeBigInt(p["value"])
			return &Lit{Value: v}, err
		case "VarRef":
			return &VarRef{Name: stringField(p, "name")}, nil
		case "Index":
			base, err := decodeExpr(p["base"])
			if err != nil {
				return nil, err
			}

			indices, err := decodeExprList(p["indices"])
			return &Index{Base: base, Indices: indices}, err
		case "Member":
			base, err := decodeExpr(p["base"])
			if err != nil {
				return nil, err
			}

			return &Member{Base: base, Field: stringField(p, "field")}, nil
		case "Infix":
			l, err := decodeExpr(p["l"])
			if err != nil {
				return nil, err
			}

			r, err := decodeExpr(p["r"])
			if err != nil {
				return nil, err
			}

			return &Infix{Op: stringField(p, "op"), L: l, R: r}, nil
		case "Prefix":
			x, err := decodeExpr(p["x"])
			if err != nil {
				return nil, err
			}

			return &Prefix{Op: stringField(p, "op"), X: x}, nil
		case "Tuple":
			elems, err := decodeExprList(p["elems"])
			return &Tuple{Elems: elems}, err
		case "Call":
			args, err := decodeExprList(p["args"])
			if err != nil {
				return nil, err
			}

			return &Call{Name: stringField(p, "name"), Args: args}, nil
		case "AnonComponent":
			generics, err := decodeExprList(p["generics"])
			if err != nil {
				return nil, err
			}

			inputs, err := decodeExprList(p["inputs"])
			if err != nil {
				return nil, err
			}

			return &AnonComponent{Template: stringField(p, "template"), Generics: generics, Inputs: inputs}, nil
		default:
			return nil, fmt.Errorf("decode expression: unrecognized variant %q", tag)
		}
	}

	return nil, fmt.Errorf("decode expression: empty tagged object")
}

func decodeBigIntList(raw interface{}) ([]*big.Int, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, nil
	}

	out := make([]*big.Int, len(items))

	for i, item := range items {
		v, err := decodeBigInt(item)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

func decodeOptionalBigInt(raw interface{}) (*big.Int, error) {
	if raw == nil {
		return nil, nil
	}

	return decodeBigInt(raw)
}

// decodeBigInt accepts either a JSON string or number for an integer
// literal, since large field elements don't round-trip through a JSON
// number without a string encoding.
func decodeBigInt(raw interface{}) (*big.Int, error) {
	switch v := raw.(type) {
	case string:
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, fmt.Errorf("decode integer: malformed value %q", v)
		}

		return n, nil
	case float64:
		return big.NewInt(int64(v)), nil
	default:
		return nil, fmt.Errorf("decode integer: expected a string or number")
	}
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringSliceField(m map[string]interface{}, key string) []string {
	items, ok := m[key].([]interface{})
	if !ok {
		return nil
	}

	out := make([]string, len(items))

	for i, item := range items {
		out[i], _ = item.(string)
	}

	return out
}
