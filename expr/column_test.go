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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestColumnNameString(t *testing.T) {
	testcases := []struct {
		path []string
		want string
	}{
		{[]string{"x"}, "x"},
		{[]string{"a", "b", "c"}, "a.b.c"},
		{[]string{"snake_case", "Field2"}, "snake_case.Field2"},
		{[]string{"żółw"}, "żółw"},
		{[]string{"a.b"}, "`a.b`"},
		{[]string{""}, "``"},
		{[]string{"has space", "x"}, "`has space`.x"},
		{[]string{"back`tick"}, "`back\\`tick`"},
		{[]string{"it's"}, "`it\\'s`"},
		{[]string{"tab\t"}, "`tab\\t`"},
		// bytes that are not UTF-8 are escaped one at a time
		{[]string{"a\xffb"}, "`a\\xffb`"},
		{[]string{"\xe2\x82", "x"}, "`\\xe2\\x82`.x"},
		{nil, ""},
	}
	for i := range testcases {
		c := NewColumnName(testcases[i].path...)
		if got := c.String(); got != testcases[i].want {
			t.Errorf("case %d: got %q, want %q", i, got, testcases[i].want)
			continue
		}
		if len(testcases[i].path) == 0 {
			continue
		}
		back, err := ParseColumnName(testcases[i].want)
		if err != nil {
			t.Errorf("case %d: parsing %q: %s", i, testcases[i].want, err)
			continue
		}
		if !back.Equal(c) {
			t.Errorf("case %d: parsed %q as %q", i, testcases[i].want, back.Path())
		}
	}
}

func TestParseColumnNameErrors(t *testing.T) {
	for _, in := range []string{
		"",
		".",
		"a.",
		".a",
		"a..b",
		"`a",
		"`a`b",
		"a`b`",
		"`\\z`",
		"`\\u00`",
		"a.\xff",
	} {
		_, err := ParseColumnName(in)
		if err == nil {
			t.Errorf("%q: expected an error", in)
			continue
		}
		if !errors.Is(err, ErrInvalidColumnName) {
			t.Errorf("%q: error %q does not wrap ErrInvalidColumnName", in, err)
		}
	}
	require.Panics(t, func() { MustParseColumnName("a..b") })
	require.Equal(t, []string{"a", "b.c"}, MustParseColumnName("a.`b.c`").Path())
}

func TestColumnNamePaths(t *testing.T) {
	a := NewColumnName("a", "b")
	segs := []string{"x", "y"}
	xy := NewColumnName(segs...)
	segs[0] = "changed"
	require.Equal(t, "x.y", xy.String(), "NewColumnName must copy its argument")

	p := a.Path()
	p[0] = "changed"
	require.Equal(t, "a.b", a.String(), "Path must return a copy")

	require.Equal(t, 2, a.Len())
	require.False(t, a.IsEmpty())
	require.True(t, ColumnName{}.IsEmpty())
	require.Equal(t, "b", a.Segment(1))

	joined := a.Join(xy)
	require.Equal(t, "a.b.x.y", joined.String())
	child := a.Child("c")
	require.Equal(t, "a.b.c", child.String())

	parent, ok := child.Parent()
	require.True(t, ok)
	require.True(t, parent.Equal(a))
	// appending to a parent must not alias the child
	other := parent.Child("d")
	require.Equal(t, "a.b.c", child.String())
	require.Equal(t, "a.b.d", other.String())

	_, ok = ColumnName{}.Parent()
	require.False(t, ok)
}

func TestColumnNameCompareHash(t *testing.T) {
	names := []ColumnName{
		NewColumnName("a"),
		NewColumnName("a", "b"),
		NewColumnName("a b"),
		NewColumnName("b"),
	}
	for i := range names {
		for j := range names {
			c := names[i].Compare(names[j])
			switch {
			case i < j && c >= 0, i > j && c <= 0, i == j && c != 0:
				t.Errorf("Compare(%s, %s) = %d", names[i], names[j], c)
			}
			if (i == j) != names[i].Equal(names[j]) {
				t.Errorf("Equal(%s, %s) wrong", names[i], names[j])
			}
		}
	}

	// a.b and `a.b` are different paths
	dotted := NewColumnName("a.b")
	if dotted.Equal(names[1]) || dotted.Hash() == names[1].Hash() {
		t.Error("a.b and `a.b` should differ")
	}
	if NewColumnName("a", "b").Hash() != names[1].Hash() {
		t.Error("equal paths must hash equally")
	}
}

func TestColumnSet(t *testing.T) {
	var s ColumnSet
	require.Equal(t, 0, s.Len())
	require.False(t, s.Contains(NewColumnName("x")))
	require.Equal(t, "{}", s.String())

	for _, c := range []ColumnName{
		NewColumnName("b"),
		NewColumnName("a", "z"),
		NewColumnName("b"),
		NewColumnName("a"),
	} {
		s.add(c)
	}
	require.Equal(t, 3, s.Len())
	got := []string{}
	for _, c := range s.Sorted() {
		got = append(got, c.String())
	}
	if diff := cmp.Diff([]string{"a", "a.z", "b"}, got); diff != "" {
		t.Errorf("sorted (-want +got):\n%s", diff)
	}
	require.Equal(t, "{a, a.z, b}", s.String())

	n := 0
	s.Each(func(ColumnName) bool {
		n++
		return false
	})
	require.Equal(t, 1, n, "Each should stop when fn returns false")
}

func FuzzColumnNameRoundTrip(f *testing.F) {
	f.Add("a", "b")
	f.Add("", "x.y")
	f.Add("`", "\\")
	f.Add("żółw", "\x00\t'\"")
	f.Add("\U0001f600", "�")
	f.Add("a\xffb", "\xe2\x82\xac\xe2")
	f.Fuzz(func(t *testing.T, a, b string) {
		c := NewColumnName(a, b)
		text := c.String()
		back, err := ParseColumnName(text)
		if err != nil {
			t.Fatalf("parsing %q (from %q): %s", text, c.Path(), err)
		}
		if !back.Equal(c) {
			t.Fatalf("%q round-tripped to %q", c.Path(), back.Path())
		}
		if back.Hash() != c.Hash() {
			t.Fatal("hash changed after round trip")
		}
	})
}

func FuzzParseColumnName(f *testing.F) {
	f.Add("a.b")
	f.Add("`a.b`.c")
	f.Add("a..b")
	f.Add("`\\u00e9`")
	f.Fuzz(func(t *testing.T, s string) {
		c, err := ParseColumnName(s)
		if err != nil {
			return
		}
		again, err := ParseColumnName(c.String())
		if err != nil {
			t.Fatalf("%q parsed, but its text %q did not: %s", s, c.String(), err)
		}
		if !again.Equal(c) {
			t.Fatalf("%q: %q != %q", s, c.Path(), again.Path())
		}
	})
}
