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
	"golang.org/x/exp/slices"
)

// Operand is anything that can appear
// as the argument of an expression builder:
// an Expression, a Scalar (which becomes a
// Literal), a ColumnName (which becomes a
// Column) or a *Ref.
//
// The conversion is a convenience only;
// nothing is type-checked.
type Operand interface {
	operand() Expression
}

func toExpr(o Operand) Expression {
	if o == nil {
		return nil
	}
	e := o.operand()
	if isNil(e) {
		return nil
	}
	return e
}

// isNil returns true for a nil Expression
// and for a nil pointer to any of the variants
func isNil(e Expression) bool {
	switch e := e.(type) {
	case nil:
		return true
	case *Literal:
		return e == nil
	case *Column:
		return e == nil
	case *Struct:
		return e == nil
	case *UnaryOperation:
		return e == nil
	case *BinaryOperation:
		return e == nil
	case *VariadicOperation:
		return e == nil
	}
	return false
}

// Expression is an immutable expression tree node.
// It is one of *Literal, *Column, *Struct,
// *UnaryOperation, *BinaryOperation or *VariadicOperation.
//
// Expressions carry no type information other
// than the types of their literals; checking types
// against a schema is up to the evaluator.
type Expression interface {
	Operand
	// String returns the text of the expression;
	// see ToString.
	String() string
	// Equals returns whether this expression is
	// structurally identical to x; see Equal.
	Equals(x Expression) bool

	exprNode()
}

// Literal is a constant value.
type Literal struct {
	value Scalar
}

// Value returns the literal value.
func (l *Literal) Value() Scalar { return l.value }

// Column is a reference to a (possibly nested) column.
type Column struct {
	name ColumnName
}

// Name returns the referenced column.
func (c *Column) Name() ColumnName { return c.name }

// Struct computes a struct value; its
// fields are positional and match the
// order of Exprs.
type Struct struct {
	exprs []Expression
}

// Exprs returns a copy of the field expressions.
func (s *Struct) Exprs() []Expression { return slices.Clone(s.exprs) }

// Len returns the number of fields.
func (s *Struct) Len() int { return len(s.exprs) }

// UnaryOperation is 'op expr'.
type UnaryOperation struct {
	op   UnaryOperator
	expr Expression
}

func (u *UnaryOperation) Op() UnaryOperator { return u.op }
func (u *UnaryOperation) Expr() Expression  { return u.expr }

// BinaryOperation is 'left op right'.
type BinaryOperation struct {
	op          BinaryOperator
	left, right Expression
}

func (b *BinaryOperation) Op() BinaryOperator { return b.op }
func (b *BinaryOperation) Left() Expression   { return b.left }
func (b *BinaryOperation) Right() Expression  { return b.right }

// VariadicOperation is 'op(exprs...)'.
type VariadicOperation struct {
	op    VariadicOperator
	exprs []Expression
}

func (v *VariadicOperation) Op() VariadicOperator { return v.op }

// Exprs returns a copy of the operands.
func (v *VariadicOperation) Exprs() []Expression { return slices.Clone(v.exprs) }

// Len returns the number of operands.
func (v *VariadicOperation) Len() int { return len(v.exprs) }

func (l *Literal) operand() Expression           { return l }
func (c *Column) operand() Expression            { return c }
func (s *Struct) operand() Expression            { return s }
func (u *UnaryOperation) operand() Expression    { return u }
func (b *BinaryOperation) operand() Expression   { return b }
func (v *VariadicOperation) operand() Expression { return v }

func (l *Literal) exprNode()           {}
func (c *Column) exprNode()            {}
func (s *Struct) exprNode()            {}
func (u *UnaryOperation) exprNode()    {}
func (b *BinaryOperation) exprNode()   {}
func (v *VariadicOperation) exprNode() {}

func (l *Literal) String() string           { return ToString(l) }
func (c *Column) String() string            { return ToString(c) }
func (s *Struct) String() string            { return ToString(s) }
func (u *UnaryOperation) String() string    { return ToString(u) }
func (b *BinaryOperation) String() string   { return ToString(b) }
func (v *VariadicOperation) String() string { return ToString(v) }

func (l *Literal) Equals(x Expression) bool           { return Equal(l, x) }
func (c *Column) Equals(x Expression) bool            { return Equal(c, x) }
func (s *Struct) Equals(x Expression) bool            { return Equal(s, x) }
func (u *UnaryOperation) Equals(x Expression) bool    { return Equal(u, x) }
func (b *BinaryOperation) Equals(x Expression) bool   { return Equal(b, x) }
func (v *VariadicOperation) Equals(x Expression) bool { return Equal(v, x) }
