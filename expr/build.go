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

// Col produces a reference to the column
// with the given path segments, i.e.
//
//	Col("a", "b")
//
// references a.b
func Col(segments ...string) *Column {
	return &Column{name: NewColumnName(segments...)}
}

// ColOf produces a reference to name.
func ColOf(name ColumnName) *Column {
	return &Column{name: name}
}

func exprs(lst []Operand) []Expression {
	out := make([]Expression, len(lst))
	for i := range lst {
		out[i] = toExpr(lst[i])
	}
	return out
}

// StructFrom produces a struct whose
// fields are the given expressions, in order.
func StructFrom(fields ...Operand) *Struct {
	return &Struct{exprs: exprs(fields)}
}

// Unary yields 'op x'
func Unary(op UnaryOperator, x Operand) *UnaryOperation {
	return &UnaryOperation{op: op, expr: toExpr(x)}
}

// Binary yields 'left op right'
func Binary(op BinaryOperator, left, right Operand) *BinaryOperation {
	return &BinaryOperation{op: op, left: toExpr(left), right: toExpr(right)}
}

// Variadic yields 'op(args...)'
func Variadic(op VariadicOperator, args ...Operand) *VariadicOperation {
	return &VariadicOperation{op: op, exprs: exprs(args)}
}

// AndFrom yields 'AND(args...)'.
// Nested conjunctions in args are
// kept as they are.
func AndFrom(args ...Operand) *VariadicOperation { return Variadic(OpAnd, args...) }

// OrFrom yields 'OR(args...)'.
// Nested disjunctions in args are
// kept as they are.
func OrFrom(args ...Operand) *VariadicOperation { return Variadic(OpOr, args...) }

// And yields 'AND(left, right)'
func And(left, right Operand) *VariadicOperation { return AndFrom(left, right) }

// Or yields 'OR(left, right)'
func Or(left, right Operand) *VariadicOperation { return OrFrom(left, right) }

// Not yields 'NOT x'
func Not(x Operand) *UnaryOperation { return Unary(OpNot, x) }

// IsNull yields 'x IS NULL'
func IsNull(x Operand) *UnaryOperation { return Unary(OpIsNull, x) }

// IsNotNull yields 'NOT x IS NULL'
func IsNotNull(x Operand) *UnaryOperation { return Not(IsNull(x)) }

func Add(left, right Operand) *BinaryOperation { return Binary(OpPlus, left, right) }
func Sub(left, right Operand) *BinaryOperation { return Binary(OpMinus, left, right) }
func Mul(left, right Operand) *BinaryOperation { return Binary(OpMultiply, left, right) }
func Div(left, right Operand) *BinaryOperation { return Binary(OpDivide, left, right) }

func Eq(left, right Operand) *BinaryOperation { return Binary(OpEqual, left, right) }
func Ne(left, right Operand) *BinaryOperation { return Binary(OpNotEqual, left, right) }
func Lt(left, right Operand) *BinaryOperation { return Binary(OpLessThan, left, right) }
func Le(left, right Operand) *BinaryOperation { return Binary(OpLessThanOrEqual, left, right) }
func Gt(left, right Operand) *BinaryOperation { return Binary(OpGreaterThan, left, right) }
func Ge(left, right Operand) *BinaryOperation { return Binary(OpGreaterThanOrEqual, left, right) }

// GtEq is the same as Ge
func GtEq(left, right Operand) *BinaryOperation { return Ge(left, right) }

// LtEq is the same as Le
func LtEq(left, right Operand) *BinaryOperation { return Le(left, right) }

// Distinct yields 'left IS DISTINCT FROM right',
// which is rendered as DISTINCT(left, right)
func Distinct(left, right Operand) *BinaryOperation { return Binary(OpDistinct, left, right) }

// In yields 'left IN right'; right
// is usually an array literal.
func In(left, right Operand) *BinaryOperation { return Binary(OpIn, left, right) }

// NotIn yields 'left NOT IN right'
func NotIn(left, right Operand) *BinaryOperation { return Binary(OpNotIn, left, right) }

// Commute returns 'right op2 left', where op2 is
// the commuted form of b's operator, so that the
// result is equivalent to b. It returns (nil, false)
// when the operator does not commute.
//
// Pruning code uses this to move a column
// reference to the left-hand side, i.e.
//
//	3 < x  =>  x > 3
func Commute(b *BinaryOperation) (*BinaryOperation, bool) {
	op, ok := b.op.Commute()
	if !ok {
		return nil, false
	}
	return &BinaryOperation{op: op, left: b.right, right: b.left}, true
}
