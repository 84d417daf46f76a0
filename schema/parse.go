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

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"
)

// ParseType decodes a type descriptor in the
// table format's schema notation. The input may
// be either JSON or YAML, e.g.
//
//	"decimal(10,2)"
//
// or
//
//	type: struct
//	fields:
//	  - name: id
//	    type: long
//	    nullable: false
func ParseType(data []byte) (DataType, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, err)
	}
	return decodeType(js)
}

// MustParseType is like ParseType,
// but panics on error.
func MustParseType(text string) DataType {
	t, err := ParseType([]byte(text))
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTypeName parses the name of a primitive
// or decimal type, i.e. "long" or "decimal(5,1)".
func ParseTypeName(name string) (DataType, error) {
	name = strings.TrimSpace(name)
	for i := range primitiveNames {
		if i != 0 && primitiveNames[i] == name {
			return PrimitiveType(i), nil
		}
	}
	rest, ok := strings.CutPrefix(name, "decimal(")
	if !ok {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidType, name)
	}
	rest, ok = strings.CutSuffix(rest, ")")
	if !ok {
		return nil, fmt.Errorf("%w: unterminated decimal type %q", ErrInvalidType, name)
	}
	ps, ss, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: decimal type %q needs precision and scale", ErrInvalidType, name)
	}
	p, err := strconv.ParseUint(strings.TrimSpace(ps), 10, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: decimal precision in %q: %s", ErrInvalidType, name, err)
	}
	s, err := strconv.ParseUint(strings.TrimSpace(ss), 10, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: decimal scale in %q: %s", ErrInvalidType, name, err)
	}
	return NewDecimalType(uint8(p), uint8(s))
}

type fieldJSON struct {
	Name     string          `json:"name"`
	Type     json.RawMessage `json:"type"`
	Nullable *bool           `json:"nullable"`
}

type typeJSON struct {
	Type              string          `json:"type"`
	ElementType       json.RawMessage `json:"elementType"`
	ContainsNull      *bool           `json:"containsNull"`
	Fields            []fieldJSON     `json:"fields"`
	KeyType           json.RawMessage `json:"keyType"`
	ValueType         json.RawMessage `json:"valueType"`
	ValueContainsNull *bool           `json:"valueContainsNull"`
}

// absent nullability flags default to true
func flag(b *bool) bool {
	return b == nil || *b
}

func decodeType(js []byte) (DataType, error) {
	js = bytes.TrimSpace(js)
	if len(js) == 0 || bytes.Equal(js, []byte("null")) {
		return nil, fmt.Errorf("%w: missing type", ErrInvalidType)
	}
	if js[0] == '"' {
		var name string
		if err := json.Unmarshal(js, &name); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidType, err)
		}
		return ParseTypeName(name)
	}
	var t typeJSON
	if err := json.Unmarshal(js, &t); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, err)
	}
	switch t.Type {
	case "array":
		elem, err := decodeType(t.ElementType)
		if err != nil {
			return nil, fmt.Errorf("array element: %w", err)
		}
		return &ArrayType{ElementType: elem, ContainsNull: flag(t.ContainsNull)}, nil
	case "map":
		key, err := decodeType(t.KeyType)
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		val, err := decodeType(t.ValueType)
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		return &MapType{KeyType: key, ValueType: val, ValueContainsNull: flag(t.ValueContainsNull)}, nil
	case "struct":
		st := &StructType{Fields: make([]StructField, 0, len(t.Fields))}
		for i := range t.Fields {
			f := &t.Fields[i]
			if f.Name == "" {
				return nil, fmt.Errorf("%w: struct field %d has no name", ErrInvalidType, i)
			}
			if _, dup := st.Field(f.Name); dup {
				return nil, fmt.Errorf("%w: duplicate struct field %q", ErrInvalidType, f.Name)
			}
			ft, err := decodeType(f.Type)
			if err != nil {
				return nil, fmt.Errorf("struct field %q: %w", f.Name, err)
			}
			st.Fields = append(st.Fields, StructField{Name: f.Name, Type: ft, Nullable: flag(f.Nullable)})
		}
		return st, nil
	case "":
		return nil, fmt.Errorf("%w: object without \"type\"", ErrInvalidType)
	default:
		// {"type": "long"} is accepted as well
		return ParseTypeName(t.Type)
	}
}
