// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package expr

// Equal returns whether a and b are
// structurally identical: the same variants
// with the same operators, column names
// and literal values, in the same order.
//
// No algebraic identities are applied,
// so AND(a, b) is not equal to AND(b, a).
// Two nil expressions are equal.
func Equal(a, b Expression) bool {
	type pair struct{ a, b Expression }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		n := len(stack) - 1
		p := stack[n]
		stack = stack[:n]
		if an, bn := isNil(p.a), isNil(p.b); an || bn {
			if an != bn {
				return false
			}
			continue
		}
		if p.a == p.b {
			continue
		}
		switch a := p.a.(type) {
		case *Literal:
			b, ok := p.b.(*Literal)
			if !ok || !ScalarEqual(a.value, b.value) {
				return false
			}
		case *Column:
			b, ok := p.b.(*Column)
			if !ok || !a.name.Equal(b.name) {
				return false
			}
		case *Struct:
			b, ok := p.b.(*Struct)
			if !ok || len(a.exprs) != len(b.exprs) {
				return false
			}
			for i := range a.exprs {
				stack = append(stack, pair{a.exprs[i], b.exprs[i]})
			}
		case *UnaryOperation:
			b, ok := p.b.(*UnaryOperation)
			if !ok || a.op != b.op {
				return false
			}
			stack = append(stack, pair{a.expr, b.expr})
		case *BinaryOperation:
			b, ok := p.b.(*BinaryOperation)
			if !ok || a.op != b.op {
				return false
			}
			stack = append(stack, pair{a.left, b.left}, pair{a.right, b.right})
		case *VariadicOperation:
			b, ok := p.b.(*VariadicOperation)
			if !ok || a.op != b.op || len(a.exprs) != len(b.exprs) {
				return false
			}
			for i := range a.exprs {
				stack = append(stack, pair{a.exprs[i], b.exprs[i]})
			}
		default:
			return false
		}
	}
	return true
}
