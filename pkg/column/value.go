// Package column defines the typed cell model every table is built from:
// data types, tagged values, and per-column storage with primary-key and
// foreign-key metadata.
package column

import (
	"fmt"
	"strconv"
	"strings"
)

// DataType is the declared type of a column.
type DataType int

const (
	Integer DataType = iota
	Float
	Text
)

// String returns the schema token for the data type, as written in schema
// documents and export headers.
func (t DataType) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Text:
		return "Text"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// ParseDataType maps a schema token back to its DataType. The second return
// is false for unknown tokens.
func ParseDataType(s string) (DataType, bool) {
	switch s {
	case "Integer":
		return Integer, true
	case "Float":
		return Float, true
	case "Text":
		return Text, true
	default:
		return 0, false
	}
}

// Kind discriminates the variants of Value. KindNull is the zero value, so
// the zero Value is Null.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
)

// Value is one typed cell. It is a tagged union over int64, float64, string,
// and null. Values are comparable: constructors zero the unused fields, so ==
// is structural equality.
type Value struct {
	kind Kind
	i    int64
	f    float64
	t    string
}

// Null returns the null value.
func Null() Value { return Value{} }

// NewInteger returns an Integer value.
func NewInteger(v int64) Value { return Value{kind: KindInteger, i: v} }

// NewFloat returns a Float value.
func NewFloat(v float64) Value { return Value{kind: KindFloat, f: v} }

// NewText returns a Text value.
func NewText(v string) Value { return Value{kind: KindText, t: v} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer payload. Meaningful only when Kind is KindInteger.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. Meaningful only when Kind is KindFloat.
func (v Value) Float() float64 { return v.f }

// Text returns the text payload. Meaningful only when Kind is KindText.
func (v Value) Text() string { return v.t }

// Equal reports structural equality.
func (v Value) Equal(o Value) bool { return v == o }

// String renders the value the way exports and console output show it:
// null as NULL, floats with two decimal places.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', 2, 64)
	case KindText:
		return v.t
	default:
		return "NULL"
	}
}

// Parse converts a string literal into a Value of the given type. The
// case-insensitive literal "null" parses to Null regardless of the declared
// type. Text literals are taken verbatim.
func Parse(literal string, t DataType) (Value, error) {
	if strings.EqualFold(strings.TrimSpace(literal), "null") {
		return Null(), nil
	}
	switch t {
	case Integer:
		n, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as Integer: %w", literal, err)
		}
		return NewInteger(n), nil
	case Float:
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as Float: %w", literal, err)
		}
		return NewFloat(f), nil
	case Text:
		return NewText(literal), nil
	default:
		return Value{}, fmt.Errorf("unknown data type %v", t)
	}
}
