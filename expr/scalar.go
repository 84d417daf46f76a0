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
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tablekit/kernel/schema"
	"golang.org/x/exp/slices"
)

// ErrInvalidScalar is wrapped by errors from
// the validating scalar constructors.
var ErrInvalidScalar = errors.New("invalid scalar")

// Scalar is a typed literal value.
//
// Every Scalar is also an Operand, so
// it can be passed directly to the
// expression builders.
type Scalar interface {
	Operand
	// DataType returns the type of the value.
	DataType() schema.DataType
	// IsNull returns true for Null.
	IsNull() bool

	text(dst *strings.Builder, redact bool)
}

var (
	_ Scalar = Byte(0)
	_ Scalar = Short(0)
	_ Scalar = Integer(0)
	_ Scalar = Long(0)
	_ Scalar = Float(0)
	_ Scalar = Double(0)
	_ Scalar = String("")
	_ Scalar = Boolean(false)
	_ Scalar = BinaryData{}
	_ Scalar = Date(0)
	_ Scalar = Timestamp(0)
	_ Scalar = TimestampNtz(0)
	_ Scalar = Decimal{}
	_ Scalar = Null{}
	_ Scalar = (*ArrayData)(nil)
	_ Scalar = (*StructData)(nil)
)

type Byte int8

func (b Byte) DataType() schema.DataType { return schema.Byte }
func (b Byte) IsNull() bool              { return false }
func (b Byte) operand() Expression       { return &Literal{value: b} }

func (b Byte) text(dst *strings.Builder, redact bool) {
	writeInt(dst, int64(b), redact)
}

type Short int16

func (s Short) DataType() schema.DataType { return schema.Short }
func (s Short) IsNull() bool              { return false }
func (s Short) operand() Expression       { return &Literal{value: s} }

func (s Short) text(dst *strings.Builder, redact bool) {
	writeInt(dst, int64(s), redact)
}

type Integer int32

func (i Integer) DataType() schema.DataType { return schema.Integer }
func (i Integer) IsNull() bool              { return false }
func (i Integer) operand() Expression       { return &Literal{value: i} }

func (i Integer) text(dst *strings.Builder, redact bool) {
	writeInt(dst, int64(i), redact)
}

type Long int64

func (l Long) DataType() schema.DataType { return schema.Long }
func (l Long) IsNull() bool              { return false }
func (l Long) operand() Expression       { return &Literal{value: l} }

func (l Long) text(dst *strings.Builder, redact bool) {
	writeInt(dst, int64(l), redact)
}

func writeInt(dst *strings.Builder, v int64, redact bool) {
	var buf [32]byte
	if redact {
		v = redactInt(v)
	}
	dst.Write(strconv.AppendInt(buf[:0], v, 10))
}

type Float float32

func (f Float) DataType() schema.DataType { return schema.Float }
func (f Float) IsNull() bool              { return false }
func (f Float) operand() Expression       { return &Literal{value: f} }

func (f Float) text(dst *strings.Builder, redact bool) {
	var buf [32]byte
	if redact {
		dst.Write(strconv.AppendFloat(buf[:0], redactFloat(float64(f)), 'g', -1, 64))
		return
	}
	dst.Write(strconv.AppendFloat(buf[:0], float64(f), 'g', -1, 32))
}

type Double float64

func (d Double) DataType() schema.DataType { return schema.Double }
func (d Double) IsNull() bool              { return false }
func (d Double) operand() Expression       { return &Literal{value: d} }

func (d Double) text(dst *strings.Builder, redact bool) {
	var buf [32]byte
	v := float64(d)
	if redact {
		v = redactFloat(v)
	}
	dst.Write(strconv.AppendFloat(buf[:0], v, 'g', -1, 64))
}

type String string

func (s String) DataType() schema.DataType { return schema.String }
func (s String) IsNull() bool              { return false }
func (s String) operand() Expression       { return &Literal{value: s} }

func (s String) text(dst *strings.Builder, redact bool) {
	v := string(s)
	if redact {
		v = redactString(v)
	}
	quote(dst, v, '\'')
}

type Boolean bool

func (b Boolean) DataType() schema.DataType { return schema.Boolean }
func (b Boolean) IsNull() bool              { return false }
func (b Boolean) operand() Expression       { return &Literal{value: b} }

func (b Boolean) text(dst *strings.Builder, redact bool) {
	if b {
		dst.WriteString("true")
	} else {
		dst.WriteString("false")
	}
}

// BinaryData is a byte-string literal.
// It holds its own copy of the bytes.
type BinaryData struct {
	data string
}

// NewBinaryData returns a BinaryData
// holding a copy of b.
func NewBinaryData(b []byte) BinaryData { return BinaryData{data: string(b)} }

// Bytes returns a copy of the bytes.
func (b BinaryData) Bytes() []byte { return []byte(b.data) }

// Len returns the number of bytes.
func (b BinaryData) Len() int { return len(b.data) }

func (b BinaryData) DataType() schema.DataType { return schema.Binary }
func (b BinaryData) IsNull() bool              { return false }
func (b BinaryData) operand() Expression       { return &Literal{value: b} }

func (b BinaryData) text(dst *strings.Builder, redact bool) {
	v := []byte(b.data)
	if redact {
		v = redactBytes(v)
	}
	dst.WriteString("X'")
	dst.WriteString(hex.EncodeToString(v))
	dst.WriteByte('\'')
}

// Date is a calendar date, stored
// as days since 1970-01-01.
type Date int32

// DateOf returns the Date containing t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	return Date(days)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Unix(int64(d)*86400, 0).UTC()
}

func (d Date) DataType() schema.DataType { return schema.Date }
func (d Date) IsNull() bool              { return false }
func (d Date) operand() Expression       { return &Literal{value: d} }

func (d Date) text(dst *strings.Builder, redact bool) {
	if redact {
		d = Date(redactInt(int64(d)) % 100000)
	}
	dst.WriteString("DATE '")
	dst.WriteString(d.Time().Format("2006-01-02"))
	dst.WriteByte('\'')
}

// Timestamp is an instant, stored as
// microseconds since the unix epoch (UTC).
type Timestamp int64

// TimestampOf converts t to a Timestamp,
// truncating to microsecond precision.
func TimestampOf(t time.Time) Timestamp { return Timestamp(t.UnixMicro()) }

// Time returns the instant as a UTC time.Time.
func (t Timestamp) Time() time.Time { return time.UnixMicro(int64(t)).UTC() }

func (t Timestamp) DataType() schema.DataType { return schema.Timestamp }
func (t Timestamp) IsNull() bool              { return false }
func (t Timestamp) operand() Expression       { return &Literal{value: t} }

func (t Timestamp) text(dst *strings.Builder, redact bool) {
	writeTime(dst, "TIMESTAMP '", int64(t), "2006-01-02T15:04:05.999999Z07:00", redact)
}

// TimestampNtz is a wall-clock time without
// a time zone, stored as microseconds since
// 1970-01-01T00:00:00.
type TimestampNtz int64

func (t TimestampNtz) DataType() schema.DataType { return schema.TimestampNtz }
func (t TimestampNtz) IsNull() bool              { return false }
func (t TimestampNtz) operand() Expression       { return &Literal{value: t} }

func (t TimestampNtz) text(dst *strings.Builder, redact bool) {
	writeTime(dst, "TIMESTAMP_NTZ '", int64(t), "2006-01-02T15:04:05.999999", redact)
}

func writeTime(dst *strings.Builder, prefix string, micros int64, layout string, redact bool) {
	if redact {
		// keep the result within a few thousand years of the epoch
		micros = redactInt(micros) % (1 << 56)
	}
	var buf [48]byte
	dst.WriteString(prefix)
	dst.Write(time.UnixMicro(micros).UTC().AppendFormat(buf[:0], layout))
	dst.WriteByte('\'')
}

// Decimal is a fixed-point decimal
// with an explicit precision and scale.
type Decimal struct {
	value            decimal.Decimal
	precision, scale uint8
}

// NewDecimal checks that v fits in decimal(precision, scale)
// and returns the corresponding Decimal.
func NewDecimal(v decimal.Decimal, precision, scale uint8) (Decimal, error) {
	if _, err := schema.NewDecimalType(precision, scale); err != nil {
		return Decimal{}, fmt.Errorf("%w: %w", ErrInvalidScalar, err)
	}
	unscaled := v.Shift(int32(scale))
	if !unscaled.Equal(unscaled.Truncate(0)) {
		return Decimal{}, fmt.Errorf("%w: %s has more than %d fractional digits", ErrInvalidScalar, v, scale)
	}
	if digits(unscaled.BigInt()) > int(precision) {
		return Decimal{}, fmt.Errorf("%w: %s does not fit in decimal(%d,%d)", ErrInvalidScalar, v, precision, scale)
	}
	return Decimal{value: v, precision: precision, scale: scale}, nil
}

// decimalOf picks the smallest precision
// and scale that hold v. Fractional digits
// beyond schema.MaxDecimalPrecision are
// rounded away; an integer part with more
// digits than that is kept as it is
func decimalOf(v decimal.Decimal) Decimal {
	scale := 0
	if exp := v.Exponent(); exp < 0 {
		scale = int(-exp)
	}
	width := func() int {
		return max(digits(v.Shift(int32(scale)).BigInt()), scale, 1)
	}
	precision := width()
	for precision > schema.MaxDecimalPrecision && scale > 0 {
		scale = max(scale-(precision-schema.MaxDecimalPrecision), 0)
		v = v.Round(int32(scale))
		precision = width()
	}
	return Decimal{value: v, precision: uint8(min(precision, 255)), scale: uint8(scale)}
}

// valid returns whether d has a
// representable decimal type
func (d Decimal) valid() bool {
	_, err := schema.NewDecimalType(d.precision, d.scale)
	return err == nil
}

func digits(i *big.Int) int {
	if i.Sign() == 0 {
		return 0
	}
	return len(new(big.Int).Abs(i).String())
}

// Value returns the decimal value.
func (d Decimal) Value() decimal.Decimal { return d.value }

// Precision returns the total number of digits.
func (d Decimal) Precision() uint8 { return d.precision }

// Scale returns the number of fractional digits.
func (d Decimal) Scale() uint8 { return d.scale }

func (d Decimal) DataType() schema.DataType {
	return &schema.DecimalType{Precision: d.precision, Scale: d.scale}
}

func (d Decimal) IsNull() bool        { return false }
func (d Decimal) operand() Expression { return &Literal{value: d} }

func (d Decimal) text(dst *strings.Builder, redact bool) {
	v := d.value
	if redact {
		v = redactDecimal(v, d.precision, d.scale)
	}
	dst.WriteString(v.StringFixed(int32(d.scale)))
}

// Null is a NULL literal of a particular type.
type Null struct {
	Type schema.DataType
}

func (n Null) DataType() schema.DataType { return n.Type }
func (n Null) IsNull() bool              { return true }
func (n Null) operand() Expression       { return &Literal{value: n} }

func (n Null) text(dst *strings.Builder, redact bool) {
	dst.WriteString("null")
}

// ArrayData is an array literal.
type ArrayData struct {
	typ    *schema.ArrayType
	values []Scalar
}

// NewArrayData checks that every value has
// the element type of t (or is a null when
// t.ContainsNull is set) and returns the array.
func NewArrayData(t *schema.ArrayType, values ...Scalar) (*ArrayData, error) {
	for i, v := range values {
		if isNilScalar(v) {
			return nil, fmt.Errorf("%w: array element %d is nil", ErrInvalidScalar, i)
		}
		if v.IsNull() && !t.ContainsNull {
			return nil, fmt.Errorf("%w: null element %d in %s without nulls", ErrInvalidScalar, i, t)
		}
		if !schema.Equal(v.DataType(), t.ElementType) {
			return nil, fmt.Errorf("%w: array element %d has type %s, want %s", ErrInvalidScalar, i, v.DataType(), t.ElementType)
		}
	}
	return &ArrayData{typ: t, values: slices.Clone(values)}, nil
}

// Values returns a copy of the elements.
func (a *ArrayData) Values() []Scalar { return slices.Clone(a.values) }

func (a *ArrayData) DataType() schema.DataType { return a.typ }
func (a *ArrayData) IsNull() bool              { return false }
func (a *ArrayData) operand() Expression       { return LitScalar(a) }

func (a *ArrayData) text(dst *strings.Builder, redact bool) {
	dst.WriteByte('[')
	for i := range a.values {
		if i != 0 {
			dst.WriteString(", ")
		}
		a.values[i].text(dst, redact)
	}
	dst.WriteByte(']')
}

// StructData is a struct literal.
type StructData struct {
	fields []schema.StructField
	values []Scalar
}

// NewStructData checks that values match
// fields one-to-one and returns the struct.
func NewStructData(fields []schema.StructField, values ...Scalar) (*StructData, error) {
	if len(fields) != len(values) {
		return nil, fmt.Errorf("%w: %d fields but %d values", ErrInvalidScalar, len(fields), len(values))
	}
	for i, v := range values {
		f := &fields[i]
		if isNilScalar(v) {
			return nil, fmt.Errorf("%w: value of field %q is nil", ErrInvalidScalar, f.Name)
		}
		if v.IsNull() && !f.Nullable {
			return nil, fmt.Errorf("%w: null value for non-nullable field %q", ErrInvalidScalar, f.Name)
		}
		if !schema.Equal(v.DataType(), f.Type) {
			return nil, fmt.Errorf("%w: field %q has type %s, got %s", ErrInvalidScalar, f.Name, f.Type, v.DataType())
		}
	}
	return &StructData{fields: slices.Clone(fields), values: slices.Clone(values)}, nil
}

// Fields returns a copy of the field descriptors.
func (s *StructData) Fields() []schema.StructField { return slices.Clone(s.fields) }

// Values returns a copy of the field values.
func (s *StructData) Values() []Scalar { return slices.Clone(s.values) }

func (s *StructData) DataType() schema.DataType {
	return &schema.StructType{Fields: slices.Clone(s.fields)}
}

func (s *StructData) IsNull() bool        { return false }
func (s *StructData) operand() Expression { return LitScalar(s) }

func (s *StructData) text(dst *strings.Builder, redact bool) {
	dst.WriteByte('{')
	for i := range s.fields {
		if i != 0 {
			dst.WriteString(", ")
		}
		quote(dst, s.fields[i].Name, '\'')
		dst.WriteString(": ")
		s.values[i].text(dst, redact)
	}
	dst.WriteByte('}')
}

// isNilScalar returns true for a nil Scalar
// and for nil *ArrayData or *StructData
func isNilScalar(s Scalar) bool {
	switch s := s.(type) {
	case nil:
		return true
	case *ArrayData:
		return s == nil
	case *StructData:
		return s == nil
	}
	return false
}

// FormatScalar returns the textual form of s.
func FormatScalar(s Scalar) string {
	if isNilScalar(s) {
		return "<nil>"
	}
	var dst strings.Builder
	s.text(&dst, false)
	return dst.String()
}

// ScalarEqual returns whether a and b have
// the same type and value. Nulls are equal
// when their types are equal.
func ScalarEqual(a, b Scalar) bool {
	if isNilScalar(a) || isNilScalar(b) {
		return isNilScalar(a) && isNilScalar(b)
	}
	switch a := a.(type) {
	case Decimal:
		b, ok := b.(Decimal)
		return ok && a.precision == b.precision && a.scale == b.scale && a.value.Equal(b.value)
	case Null:
		b, ok := b.(Null)
		return ok && schema.Equal(a.Type, b.Type)
	case *ArrayData:
		b, ok := b.(*ArrayData)
		return ok && schema.Equal(a.typ, b.typ) && slices.EqualFunc(a.values, b.values, ScalarEqual)
	case *StructData:
		b, ok := b.(*StructData)
		return ok && schema.Equal(a.DataType(), b.DataType()) && slices.EqualFunc(a.values, b.values, ScalarEqual)
	case Byte, Short, Integer, Long, Float, Double, String, Boolean, BinaryData, Date, Timestamp, TimestampNtz:
		// comparable value types; different
		// dynamic types compare unequal
		return a == b
	}
	return false
}
