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

import (
	"strings"
)

// ToString returns the text of e:
//
//	Column(a.b)              column reference
//	Struct(x, y)             struct expression
//	x + y                    binary operation
//	DISTINCT(x, y)           x IS DISTINCT FROM y
//	NOT x                    negation
//	x IS NULL                null test
//	AND(x, y, z), OR(x, y)   variadic operations
//
// Literals use the text of their Scalar.
// No parentheses are added, so the text is
// meant for diagnostics rather than parsing.
func ToString(e Expression) string {
	var dst strings.Builder
	writeText(&dst, e, false)
	return dst.String()
}

// ToRedacted returns the same text as ToString,
// but with every constant replaced with a
// random (deterministic) value. Column names
// are left alone.
func ToRedacted(e Expression) string {
	var dst strings.Builder
	writeText(&dst, e, true)
	return dst.String()
}

// textItem is either a node
// to render or a literal string
type textItem struct {
	node Expression
	str  string
}

// pushList pushes 'open e0, e1, ... close'
// in reverse order
func pushList(stack []textItem, open string, lst []Expression, close string) []textItem {
	stack = append(stack, textItem{str: close})
	for i := len(lst) - 1; i >= 0; i-- {
		stack = append(stack, textItem{node: lst[i]})
		if i != 0 {
			stack = append(stack, textItem{str: ", "})
		}
	}
	return append(stack, textItem{str: open})
}

func writeText(dst *strings.Builder, root Expression, redact bool) {
	stack := []textItem{{node: root}}
	for len(stack) > 0 {
		n := len(stack) - 1
		it := stack[n]
		stack = stack[:n]
		if it.node == nil && it.str != "" {
			dst.WriteString(it.str)
			continue
		}
		if isNil(it.node) {
			dst.WriteString("<nil>")
			continue
		}
		switch e := it.node.(type) {
		case *Literal:
			if isNilScalar(e.value) {
				dst.WriteString("<nil>")
			} else {
				e.value.text(dst, redact)
			}
		case *Column:
			dst.WriteString("Column(")
			e.name.text(dst)
			dst.WriteByte(')')
		case *Struct:
			stack = pushList(stack, "Struct(", e.exprs, ")")
		case *VariadicOperation:
			stack = pushList(stack, e.op.String()+"(", e.exprs, ")")
		case *BinaryOperation:
			if e.op == OpDistinct {
				stack = pushList(stack, "DISTINCT(", []Expression{e.left, e.right}, ")")
				continue
			}
			stack = append(stack,
				textItem{node: e.right},
				textItem{str: " " + e.op.String() + " "},
				textItem{node: e.left})
		case *UnaryOperation:
			switch e.op {
			case OpIsNull:
				stack = append(stack, textItem{str: " IS NULL"}, textItem{node: e.expr})
			default:
				stack = append(stack, textItem{node: e.expr}, textItem{str: e.op.String() + " "})
			}
		}
	}
}
