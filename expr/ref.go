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
	"sync"
)

// Ref is a handle to an expression tree
// that is shared by several owners
// (for example, a scan and the pruning
// logic that reads its predicate).
//
// A Ref is safe for concurrent use.
// The text and the column references
// of the tree are computed once, on first use.
type Ref struct {
	root Expression

	textOnce sync.Once
	text     string

	refsOnce sync.Once
	refs     ColumnSet
}

// Share returns a Ref to e.
func Share(e Expression) *Ref {
	return &Ref{root: e}
}

// Expr returns the shared tree.
func (r *Ref) Expr() Expression { return r.root }

// String returns ToString(r.Expr()).
func (r *Ref) String() string {
	r.textOnce.Do(func() {
		r.text = ToString(r.root)
	})
	return r.text
}

// References returns References(r.Expr()).
func (r *Ref) References() ColumnSet {
	r.refsOnce.Do(func() {
		r.refs = References(r.root)
	})
	return r.refs
}

func (r *Ref) operand() Expression {
	if r == nil {
		return nil
	}
	return r.root
}
