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

// Walker iterates over every node of
// an expression tree in pre-order, visiting
// children left to right.
//
// Traversal uses an explicit stack rather
// than recursion, so the depth of the tree
// is not limited by the goroutine stack.
type Walker struct {
	stack []Expression
}

// Walk returns a Walker positioned
// before the root e.
func Walk(e Expression) *Walker {
	w := &Walker{}
	if !isNil(e) {
		w.stack = append(w.stack, e)
	}
	return w
}

// pushChildren pushes the children of
// e so that the leftmost one is popped first
func pushChildren(stack []Expression, e Expression) []Expression {
	switch e := e.(type) {
	case *Struct:
		return pushReversed(stack, e.exprs)
	case *VariadicOperation:
		return pushReversed(stack, e.exprs)
	case *UnaryOperation:
		if !isNil(e.expr) {
			stack = append(stack, e.expr)
		}
	case *BinaryOperation:
		if !isNil(e.right) {
			stack = append(stack, e.right)
		}
		if !isNil(e.left) {
			stack = append(stack, e.left)
		}
	}
	return stack
}

func pushReversed(stack, lst []Expression) []Expression {
	for i := len(lst) - 1; i >= 0; i-- {
		if !isNil(lst[i]) {
			stack = append(stack, lst[i])
		}
	}
	return stack
}

// Next returns the next node, or
// (nil, false) when the walk is complete.
func (w *Walker) Next() (Expression, bool) {
	n := len(w.stack)
	if n == 0 {
		return nil, false
	}
	e := w.stack[n-1]
	w.stack[n-1] = nil
	w.stack = pushChildren(w.stack[:n-1], e)
	return e, true
}

// Inspect calls fn on each node of e in the
// same order as Walk. If fn returns false,
// the children of that node are skipped.
func Inspect(e Expression, fn func(Expression) bool) {
	if isNil(e) {
		return
	}
	stack := []Expression{e}
	for len(stack) > 0 {
		n := len(stack) - 1
		e := stack[n]
		stack = stack[:n]
		if fn(e) {
			stack = pushChildren(stack, e)
		}
	}
}

// References returns the set of
// columns referenced anywhere in e.
//
// This is the set of columns that must
// be read in order to evaluate e.
func References(e Expression) ColumnSet {
	var set ColumnSet
	w := Walk(e)
	for n, ok := w.Next(); ok; n, ok = w.Next() {
		if c, ok := n.(*Column); ok {
			set.add(c.name)
		}
	}
	return set
}
