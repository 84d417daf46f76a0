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
	"unicode/utf8"
)

// Unescape converts special sequences \t, \n,
// \uhhhh and \Uhhhhhhhh into plain text.
// \xhh produces the single byte hh, which
// need not be valid UTF-8 on its own.
// It accepts everything quote produces.
func Unescape(buf []byte) (string, error) {
	var tmp []byte
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(buf[i:])
			if r == utf8.RuneError && size == 1 {
				return "", fmt.Errorf("expr.Unescape: invalid rune 0x%x", buf[i:i+size])
			}
			tmp = append(tmp, buf[i:i+size]...)
			i += size - 1
			continue
		} else if c != '\\' {
			tmp = append(tmp, c)
			continue
		}
		i++
		if i >= len(buf) {
			return "", fmt.Errorf("expr.Unescape: cannot unescape trailing \\")
		}
		c = buf[i]
		switch c {
		case '\\', '\'', '/', '`', '"':
			tmp = append(tmp, c)
		case 't':
			tmp = append(tmp, '\t')
		case 'n':
			tmp = append(tmp, '\n')
		case 'r':
			tmp = append(tmp, '\r')
		case 'v':
			tmp = append(tmp, '\v')
		case 'f':
			tmp = append(tmp, '\f')
		case 'a':
			tmp = append(tmp, '\a')
		case 'b':
			tmp = append(tmp, '\b')
		case 'x':
			r, err := unhex(buf[i+1:], 2)
			if err != nil {
				return "", err
			}
			i += 2
			tmp = append(tmp, byte(r))
		case 'u', 'U':
			digits := 4
			if c == 'U' {
				digits = 8
			}
			r, err := unhex(buf[i+1:], digits)
			if err != nil {
				return "", err
			}
			i += digits
			if !utf8.ValidRune(r) {
				return "", fmt.Errorf("expr.Unescape: rune U%x is invalid", r)
			}
			tmp = utf8.AppendRune(tmp, r)
		default:
			return "", fmt.Errorf("expr.Unescape: unexpected backslash escape of %q (0x%[1]x)", c)
		}
	}
	return string(tmp), nil
}

func unhex(buf []byte, digits int) (rune, error) {
	if len(buf) < digits {
		return 0, fmt.Errorf("expr.Unescape: invalid escape sequence: want %d hex digits", digits)
	}
	r := rune(0)
	for _, c := range buf[:digits] {
		add := rune(c)
		switch {
		case add >= '0' && add <= '9':
			add -= '0'
		case add >= 'A' && add <= 'F':
			add = add - 'A' + 10
		case add >= 'a' && add <= 'f':
			add = add - 'a' + 10
		default:
			return 0, fmt.Errorf("expr.Unescape: invalid hex digit %q", string(rune(c)))
		}
		r = (r * 16) + add
	}
	return r, nil
}

// Unquote extracts the quoted and escaped SQL string
//
// See: Quote
func Unquote(s string) (string, error) {
	return unquote(s, '\'')
}

func unquote(s string, q byte) (string, error) {
	n := len(s)
	if n < 2 {
		return "", fmt.Errorf("expr.Unquote: string %q too short", s)
	}
	if s[0] != q {
		return "", fmt.Errorf("expr.Unquote: string does not start with %q", string(q))
	}
	if s[n-1] != q {
		return "", fmt.Errorf("expr.Unquote: string does not end with %q", string(q))
	}
	return Unescape([]byte(s[1 : n-1]))
}
