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
	"fmt"
)

// BinaryOperator is the operator
// of a BinaryOperation
type BinaryOperator int

const (
	OpPlus BinaryOperator = iota
	OpMinus
	OpMultiply
	OpDivide

	// note: keep the comparisons together
	// so that IsComparison stays a range check

	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpEqual
	OpNotEqual

	// OpDistinct is the null-aware inequality
	// test, i.e. SQL's IS DISTINCT FROM
	OpDistinct
	OpIn
	OpNotIn
)

func (b BinaryOperator) String() string {
	switch b {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpLessThan:
		return "<"
	case OpLessThanOrEqual:
		return "<="
	case OpGreaterThan:
		return ">"
	case OpGreaterThanOrEqual:
		return ">="
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpDistinct:
		// there is no common infix symbol for
		// IS DISTINCT FROM; expression text uses
		// DISTINCT(a, b) instead of this
		return "DISTINCT"
	case OpIn:
		return "IN"
	case OpNotIn:
		return "NOT IN"
	default:
		return fmt.Sprintf("<BinaryOperator=%d>", int(b))
	}
}

// IsComparison returns true for the operators
// that produce a boolean from two comparable values.
func (b BinaryOperator) IsComparison() bool {
	return b >= OpLessThan && b <= OpDistinct
}

// IsArithmetic returns true for + - * /
func (b BinaryOperator) IsArithmetic() bool {
	return b >= OpPlus && b <= OpDivide
}

// Commute returns the operator op2 such that
//
//	B op2 A
//
// is equivalent to
//
//	A b B
//
// The second return value is false
// for IN, NOT IN, - and /, which have
// no such operator.
func (b BinaryOperator) Commute() (BinaryOperator, bool) {
	switch b {
	case OpGreaterThan:
		return OpLessThan, true
	case OpGreaterThanOrEqual:
		return OpLessThanOrEqual, true
	case OpLessThan:
		return OpGreaterThan, true
	case OpLessThanOrEqual:
		return OpGreaterThanOrEqual, true
	case OpEqual, OpNotEqual, OpDistinct, OpPlus, OpMultiply:
		return b, true
	default:
		return b, false
	}
}

// UnaryOperator is the operator
// of a UnaryOperation
type UnaryOperator int

const (
	OpNot UnaryOperator = iota
	OpIsNull
)

func (u UnaryOperator) String() string {
	switch u {
	case OpNot:
		return "NOT"
	case OpIsNull:
		return "IS NULL"
	default:
		return fmt.Sprintf("<UnaryOperator=%d>", int(u))
	}
}

// VariadicOperator is the operator
// of a VariadicOperation
type VariadicOperator int

const (
	OpAnd VariadicOperator = iota
	OpOr
)

func (v VariadicOperator) String() string {
	switch v {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return fmt.Sprintf("<VariadicOperator=%d>", int(v))
	}
}

// Invert returns the De Morgan dual of v.
// Only the operator changes; callers pushing
// NOT through the operands do that themselves.
func (v VariadicOperator) Invert() VariadicOperator {
	if v == OpAnd {
		return OpOr
	}
	return OpAnd
}
