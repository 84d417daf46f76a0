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

// Package expr implements an immutable
// expression tree for filters, projections
// and computed columns over tabular data.
//
// Trees are built from literals (see Lit)
// and column references (see Col) with the
// builder functions in this package, i.e.
//
//	expr.And(expr.Ge(expr.Col("x"), expr.Lit(2)), expr.Le(expr.Col("x"), expr.Lit(10)))
//
// Every node is one of the six Expression
// variants. Nodes are never modified after
// construction, so a tree may be read from
// any number of goroutines; Share wraps a
// tree that is handed to several owners.
//
// The critical entry points for this
// package are Walk, References and ToString.
// They are implemented without recursion,
// so arbitrarily deep trees are safe to
// examine. Typing and evaluation are left
// to the caller.
package expr
