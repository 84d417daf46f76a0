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
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dchest/siphash"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrInvalidColumnName is wrapped by
// errors returned from ParseColumnName.
var ErrInvalidColumnName = errors.New("invalid column name")

// ColumnName is the path to a (possibly nested)
// field, i.e. a.b.c is the path
//
//	[]string{"a", "b", "c"}
//
// A ColumnName is immutable; the zero
// value is the empty path.
type ColumnName struct {
	path []string
}

// NewColumnName constructs a ColumnName
// from its path segments.
func NewColumnName(segments ...string) ColumnName {
	return ColumnName{path: slices.Clone(segments)}
}

// Path returns a copy of the path segments.
func (c ColumnName) Path() []string { return slices.Clone(c.path) }

// Len returns the number of path segments.
func (c ColumnName) Len() int { return len(c.path) }

// IsEmpty returns true if the path has no segments.
func (c ColumnName) IsEmpty() bool { return len(c.path) == 0 }

// Segment returns the i'th path segment.
func (c ColumnName) Segment(i int) string { return c.path[i] }

// Join returns the path c followed by other.
func (c ColumnName) Join(other ColumnName) ColumnName {
	out := make([]string, 0, len(c.path)+len(other.path))
	out = append(out, c.path...)
	return ColumnName{path: append(out, other.path...)}
}

// Child returns the path c followed by field.
func (c ColumnName) Child(field string) ColumnName {
	return c.Join(ColumnName{path: []string{field}})
}

// Parent returns c without its last segment,
// or false if c is empty.
func (c ColumnName) Parent() (ColumnName, bool) {
	if len(c.path) == 0 {
		return c, false
	}
	return ColumnName{path: c.path[:len(c.path)-1:len(c.path)-1]}, true
}

// Equal returns whether c and other
// have identical paths.
func (c ColumnName) Equal(other ColumnName) bool {
	return slices.Equal(c.path, other.path)
}

// Compare orders paths segment by segment;
// a path sorts before any path it is a prefix of.
func (c ColumnName) Compare(other ColumnName) int {
	return slices.Compare(c.path, other.path)
}

// key produces a byte string that is unique
// for each distinct path; every segment is
// prefixed with its length so that a.b and
// "a.b" have different keys
func (c ColumnName) key() []byte {
	var buf []byte
	for _, s := range c.path {
		buf = binary.AppendUvarint(buf, uint64(len(s)))
		buf = append(buf, s...)
	}
	return buf
}

// Hash returns a stable 64-bit hash of the path.
// Equal paths hash to equal values.
func (c ColumnName) Hash() uint64 {
	return siphash.Hash(k0, k1, c.key())
}

func (c ColumnName) operand() Expression { return &Column{name: c} }

func simpleSegment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (c ColumnName) text(dst *strings.Builder) {
	for i, s := range c.path {
		if i != 0 {
			dst.WriteByte('.')
		}
		if simpleSegment(s) {
			dst.WriteString(s)
		} else {
			quote(dst, s, '`')
		}
	}
}

// String returns the segments joined by '.';
// segments that are empty or contain characters
// other than letters, digits and '_' are
// quoted with backticks.
func (c ColumnName) String() string {
	var dst strings.Builder
	c.text(&dst)
	return dst.String()
}

// ParseColumnName parses the textual form
// produced by ColumnName.String.
func ParseColumnName(s string) (ColumnName, error) {
	if s == "" {
		return ColumnName{}, fmt.Errorf("%w: empty string", ErrInvalidColumnName)
	}
	if !utf8.ValidString(s) {
		return ColumnName{}, fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidColumnName, s)
	}
	var path []string
	for i := 0; ; {
		var seg string
		if s[i] == '`' {
			end := closingQuote(s, i)
			if end < 0 {
				return ColumnName{}, fmt.Errorf("%w: unterminated quote in %q", ErrInvalidColumnName, s)
			}
			var err error
			seg, err = unquote(s[i:end+1], '`')
			if err != nil {
				return ColumnName{}, fmt.Errorf("%w: %s", ErrInvalidColumnName, err)
			}
			i = end + 1
			if i < len(s) && s[i] != '.' {
				return ColumnName{}, fmt.Errorf("%w: unexpected %q after quoted segment", ErrInvalidColumnName, s[i:])
			}
		} else {
			end := strings.IndexAny(s[i:], ".`")
			if end < 0 {
				end = len(s)
			} else {
				end += i
			}
			if end < len(s) && s[end] == '`' {
				return ColumnName{}, fmt.Errorf("%w: stray quote in %q", ErrInvalidColumnName, s)
			}
			seg = s[i:end]
			if seg == "" {
				return ColumnName{}, fmt.Errorf("%w: empty segment in %q", ErrInvalidColumnName, s)
			}
			i = end
		}
		path = append(path, seg)
		if i == len(s) {
			return ColumnName{path: path}, nil
		}
		// s[i] == '.'
		i++
		if i == len(s) {
			return ColumnName{}, fmt.Errorf("%w: trailing '.' in %q", ErrInvalidColumnName, s)
		}
	}
}

// closingQuote returns the index of the backtick
// that closes the one at s[start], or -1
func closingQuote(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '`':
			return i
		}
	}
	return -1
}

// MustParseColumnName is like ParseColumnName,
// but panics on error. It is meant for
// package-level variables and tests.
func MustParseColumnName(s string) ColumnName {
	c, err := ParseColumnName(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ColumnSet is a set of column names,
// deduplicated by path equality.
// The zero value is an empty set.
type ColumnSet struct {
	m map[string]ColumnName
}

func (s *ColumnSet) add(c ColumnName) {
	if s.m == nil {
		s.m = make(map[string]ColumnName)
	}
	k := string(c.key())
	if _, ok := s.m[k]; !ok {
		s.m[k] = c
	}
}

// Len returns the number of distinct columns.
func (s ColumnSet) Len() int { return len(s.m) }

// Contains returns whether c is in the set.
func (s ColumnSet) Contains(c ColumnName) bool {
	_, ok := s.m[string(c.key())]
	return ok
}

// Sorted returns the members of
// the set in ColumnName.Compare order.
func (s ColumnSet) Sorted() []ColumnName {
	out := maps.Values(s.m)
	slices.SortFunc(out, func(a, b ColumnName) bool {
		return a.Compare(b) < 0
	})
	return out
}

// Each calls fn on every member of the
// set in an unspecified order until fn
// returns false.
func (s ColumnSet) Each(fn func(ColumnName) bool) {
	for _, c := range s.m {
		if !fn(c) {
			return
		}
	}
}

func (s ColumnSet) String() string {
	var dst strings.Builder
	dst.WriteByte('{')
	for i, c := range s.Sorted() {
		if i != 0 {
			dst.WriteString(", ")
		}
		c.text(&dst)
	}
	dst.WriteByte('}')
	return dst.String()
}
