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
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tablekit/kernel/schema"
)

// ErrUnsupportedValue is returned from ScalarOf
// for Go values that have no Scalar equivalent.
var ErrUnsupportedValue = errors.New("unsupported value")

// Native is the set of Go types that
// Lit converts into scalars.
type Native interface {
	int8 | int16 | int32 | int | int64 |
		float32 | float64 | string | bool | []byte |
		time.Time | decimal.Decimal
}

// Lit produces a literal from a Go value:
//
//	int8            Byte
//	int16           Short
//	int32           Integer
//	int, int64      Long
//	float32         Float
//	float64         Double
//	string          String
//	bool            Boolean
//	[]byte          BinaryData (copied)
//	time.Time       Timestamp
//	decimal.Decimal Decimal (smallest precision and scale holding the value)
//
// A decimal with more than 38 significant digits
// is rounded to 38 digits when it has a fractional
// part. One with more than 38 integer digits keeps
// them, and its type is outside the decimal range;
// use NewDecimal or ScalarOf to reject such values.
func Lit[T Native](v T) *Literal {
	return &Literal{value: nativeScalar(v)}
}

func nativeScalar[T Native](v T) Scalar {
	switch v := any(v).(type) {
	case int8:
		return Byte(v)
	case int16:
		return Short(v)
	case int32:
		return Integer(v)
	case int:
		return Long(v)
	case int64:
		return Long(v)
	case float32:
		return Float(v)
	case float64:
		return Double(v)
	case string:
		return String(v)
	case bool:
		return Boolean(v)
	case []byte:
		return NewBinaryData(v)
	case time.Time:
		return TimestampOf(v)
	case decimal.Decimal:
		return decimalOf(v)
	}
	panic("unreachable")
}

// LitScalar wraps a Scalar in a Literal.
// A nil s (including a nil *ArrayData or
// *StructData) yields a Literal without a
// value, which renders as <nil>.
func LitScalar(s Scalar) *Literal {
	if isNilScalar(s) {
		s = nil
	}
	return &Literal{value: s}
}

// NullLit produces a NULL literal of type t.
func NullLit(t schema.DataType) *Literal {
	return &Literal{value: Null{Type: t}}
}

// ScalarOf converts an arbitrary Go value into a Scalar.
// It accepts Scalars, the Native types and the
// unsigned integers that fit in a Long.
func ScalarOf(v any) (Scalar, error) {
	switch v := v.(type) {
	case Scalar:
		if isNilScalar(v) {
			return nil, fmt.Errorf("%w: nil %T", ErrUnsupportedValue, v)
		}
		return v, nil
	case int8:
		return nativeScalar(v), nil
	case int16:
		return nativeScalar(v), nil
	case int32:
		return nativeScalar(v), nil
	case int:
		return nativeScalar(v), nil
	case int64:
		return nativeScalar(v), nil
	case uint8:
		return Short(v), nil
	case uint16:
		return Integer(v), nil
	case uint32:
		return Long(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows long", ErrUnsupportedValue, v)
		}
		return Long(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows long", ErrUnsupportedValue, v)
		}
		return Long(v), nil
	case float32:
		return nativeScalar(v), nil
	case float64:
		return nativeScalar(v), nil
	case string:
		return nativeScalar(v), nil
	case bool:
		return nativeScalar(v), nil
	case []byte:
		return nativeScalar(v), nil
	case time.Time:
		return nativeScalar(v), nil
	case decimal.Decimal:
		d := decimalOf(v)
		if !d.valid() {
			return nil, fmt.Errorf("%w: %s does not fit in decimal(%d,0)", ErrUnsupportedValue, v, schema.MaxDecimalPrecision)
		}
		return d, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}
