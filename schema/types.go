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

// Package schema describes the data types
// of table columns and literal values.
//
// Types are plain descriptors; they carry
// no behavior beyond rendering and equality.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidType is wrapped by every error
// produced while constructing or decoding
// a DataType.
var ErrInvalidType = errors.New("invalid data type")

// MaxDecimalPrecision is the largest
// precision a DecimalType may have.
const MaxDecimalPrecision = 38

// DataType is one of PrimitiveType, *DecimalType,
// *ArrayType, *StructType or *MapType.
type DataType interface {
	String() string
	dataType()
}

// PrimitiveType is a non-nested, non-parameterized type.
type PrimitiveType int

const (
	String PrimitiveType = iota + 1
	Long
	Integer
	Short
	Byte
	Float
	Double
	Boolean
	Binary
	Date
	Timestamp
	TimestampNtz
)

var primitiveNames = []string{
	String:       "string",
	Long:         "long",
	Integer:      "integer",
	Short:        "short",
	Byte:         "byte",
	Float:        "float",
	Double:       "double",
	Boolean:      "boolean",
	Binary:       "binary",
	Date:         "date",
	Timestamp:    "timestamp",
	TimestampNtz: "timestamp_ntz",
}

func (p PrimitiveType) String() string {
	if p > 0 && int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("<PrimitiveType=%d>", int(p))
}

func (p PrimitiveType) dataType() {}

// DecimalType is a fixed-point decimal
// with Precision total digits, Scale of
// which follow the decimal point.
type DecimalType struct {
	Precision, Scale uint8
}

// NewDecimalType validates precision and scale
// and returns the corresponding DecimalType.
func NewDecimalType(precision, scale uint8) (*DecimalType, error) {
	if precision == 0 || precision > MaxDecimalPrecision {
		return nil, fmt.Errorf("%w: decimal precision %d outside [1, %d]", ErrInvalidType, precision, MaxDecimalPrecision)
	}
	if scale > precision {
		return nil, fmt.Errorf("%w: decimal scale %d exceeds precision %d", ErrInvalidType, scale, precision)
	}
	return &DecimalType{Precision: precision, Scale: scale}, nil
}

func (d *DecimalType) String() string {
	return fmt.Sprintf("decimal(%d,%d)", d.Precision, d.Scale)
}

func (d *DecimalType) dataType() {}

// ArrayType is a list of ElementType values.
type ArrayType struct {
	ElementType  DataType
	ContainsNull bool
}

func (a *ArrayType) String() string {
	return "array<" + typeString(a.ElementType) + ">"
}

func (a *ArrayType) dataType() {}

// StructField is one named member of a StructType.
type StructField struct {
	Name     string
	Type     DataType
	Nullable bool
}

// StructType is an ordered list of fields.
type StructType struct {
	Fields []StructField
}

// Field returns the field with the given
// name, or (nil, false) if there is none.
func (s *StructType) Field(name string) (*StructField, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

func (s *StructType) String() string {
	var dst strings.Builder
	dst.WriteString("struct<")
	for i := range s.Fields {
		if i != 0 {
			dst.WriteString(", ")
		}
		dst.WriteString(s.Fields[i].Name)
		dst.WriteString(": ")
		dst.WriteString(typeString(s.Fields[i].Type))
		if !s.Fields[i].Nullable {
			dst.WriteString(" not null")
		}
	}
	dst.WriteByte('>')
	return dst.String()
}

func (s *StructType) dataType() {}

// MapType maps KeyType values to ValueType values.
type MapType struct {
	KeyType           DataType
	ValueType         DataType
	ValueContainsNull bool
}

func (m *MapType) String() string {
	return "map<" + typeString(m.KeyType) + ", " + typeString(m.ValueType) + ">"
}

func (m *MapType) dataType() {}

func typeString(t DataType) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Equal returns whether a and b describe
// the same type. a or b may be nil.
func Equal(a, b DataType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case PrimitiveType:
		b, ok := b.(PrimitiveType)
		return ok && a == b
	case *DecimalType:
		b, ok := b.(*DecimalType)
		return ok && *a == *b
	case *ArrayType:
		b, ok := b.(*ArrayType)
		return ok && a.ContainsNull == b.ContainsNull && Equal(a.ElementType, b.ElementType)
	case *MapType:
		b, ok := b.(*MapType)
		return ok && a.ValueContainsNull == b.ValueContainsNull &&
			Equal(a.KeyType, b.KeyType) && Equal(a.ValueType, b.ValueType)
	case *StructType:
		b, ok := b.(*StructType)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			fa, fb := &a.Fields[i], &b.Fields[i]
			if fa.Name != fb.Name || fa.Nullable != fb.Nullable || !Equal(fa.Type, fb.Type) {
				return false
			}
		}
		return true
	}
	return false
}
