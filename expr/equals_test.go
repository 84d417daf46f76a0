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
	"testing"

	"github.com/tablekit/kernel/schema"
)

func TestEquals(t *testing.T) {
	tests := []struct {
		in, out Expression
	}{
		{Lit(1), LitScalar(Long(1))},
		{Lit("foo"), Lit("foo")},
		{NullLit(schema.Long), NullLit(schema.Long)},
		{Col("x", "y"), ColOf(MustParseColumnName("x.y"))},
		{Eq(Col("x"), Lit(2)), Eq(Col("x"), Lit(2))},
		{And(Col("x"), Col("y")), AndFrom(Col("x"), Col("y"))},
		{IsNotNull(Col("x")), Not(IsNull(Col("x")))},
		{GtEq(Col("x"), Lit(1)), Ge(Col("x"), Lit(1))},
		{StructFrom(), StructFrom()},
		{StructFrom(Col("a"), Lit(true)), StructFrom(Col("a"), Lit(true))},
		{Binary(OpPlus, nil, Col("x")), Binary(OpPlus, nil, Col("x"))},
		{Binary(OpPlus, (*Column)(nil), Col("x")), Binary(OpPlus, nil, Col("x"))},
		{Lit([]byte{1, 2}), LitScalar(NewBinaryData([]byte{1, 2}))},
	}

	for i := range tests {
		if !tests[i].in.Equals(tests[i].out) {
			t.Errorf("case %d: %s != %s", i, tests[i].in, tests[i].out)
		}
		// test symmetry
		if !tests[i].out.Equals(tests[i].in) {
			t.Errorf("case %d: %s != %s", i, tests[i].out, tests[i].in)
		}
		// test reflexivity
		if !tests[i].in.Equals(tests[i].in) {
			t.Errorf("case %d: %s not equal to itself", i, tests[i].in)
		}
	}
}

func TestNotEquals(t *testing.T) {
	tests := []struct {
		in, out Expression
	}{
		{Lit(1), Lit(int32(1))},
		{Lit(1), Lit(2)},
		{Col("x"), Col("y")},
		{Col("x", "y"), Col("x.y")},
		{Col("x"), Lit("x")},
		{Lt(Col("x"), Lit(1)), Gt(Col("x"), Lit(1))},
		// no commutation or reordering
		{Lt(Col("x"), Lit(1)), Gt(Lit(1), Col("x"))},
		{And(Col("x"), Col("y")), And(Col("y"), Col("x"))},
		{And(Col("x"), Col("y")), Or(Col("x"), Col("y"))},
		{AndFrom(Col("x")), AndFrom(Col("x"), Col("x"))},
		{StructFrom(Col("x")), AndFrom(Col("x"))},
		{Not(Col("x")), IsNull(Col("x"))},
		{NullLit(schema.Long), NullLit(schema.Integer)},
		{Binary(OpPlus, nil, Col("x")), Binary(OpPlus, Col("x"), Col("x"))},
	}
	for i := range tests {
		if tests[i].in.Equals(tests[i].out) || tests[i].out.Equals(tests[i].in) {
			t.Errorf("case %d: %s should not equal %s", i, tests[i].in, tests[i].out)
		}
	}
	if !Equal(nil, nil) {
		t.Error("nil should equal nil")
	}
	if Equal(Col("x"), nil) || Equal(nil, Col("x")) {
		t.Error("nil should not equal a column")
	}
	if !Equal((*Column)(nil), nil) || !Equal((*Struct)(nil), (*Literal)(nil)) {
		t.Error("nil pointers should equal nil")
	}
	if Equal((*Column)(nil), Col("x")) {
		t.Error("a nil column should not equal a column")
	}
}

func TestEqualsDeep(t *testing.T) {
	const depth = 100000
	a := deep(depth, Col("x"))
	b := deep(depth, Col("x"))
	if !Equal(a, b) {
		t.Fatal("deep trees should be equal")
	}
	c := deep(depth, Col("y"))
	if Equal(a, c) {
		t.Fatal("deep trees with different leaves should differ")
	}
}
