package ir

import (
	"math"
	"strconv"
	"time"
)

// Value is the payload of a single element. Which field is meaningful
// depends on Type: Int32, Int64 and Date use Int64 (dates as milliseconds
// since the Unix epoch), Double uses Float64 and String uses Str.
// Container values carry only their Type; their contents live in the
// Document.
type Value struct {
	Type    Type
	Bool    bool
	Int64   int64
	Float64 float64
	Str     string
}

func Null() Value {
	return Value{Type: NullType}
}

func FromBool(v bool) Value {
	return Value{Type: BoolType, Bool: v}
}

func FromInt32(v int32) Value {
	return Value{Type: Int32Type, Int64: int64(v)}
}

func FromInt64(v int64) Value {
	return Value{Type: Int64Type, Int64: v}
}

func FromFloat(f float64) Value {
	return Value{Type: DoubleType, Float64: f}
}

func FromString(v string) Value {
	return Value{Type: StringType, Str: v}
}

func FromTime(t time.Time) Value {
	return Value{Type: DateType, Int64: t.UnixMilli()}
}

// FromInt picks Int32 when v fits in 32 bits and Int64 otherwise.
func FromInt(v int64) Value {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return FromInt32(int32(v))
	}
	return FromInt64(v)
}

func EmptyObject() Value {
	return Value{Type: ObjectType}
}

func EmptyArray() Value {
	return Value{Type: ArrayType}
}

func (v Value) IsNumber() bool {
	return v.Type.IsNumber()
}

// Float returns the numeric value as a float64.
func (v Value) Float() float64 {
	if v.Type == DoubleType {
		return v.Float64
	}
	return float64(v.Int64)
}

func (v Value) Time() time.Time {
	return time.UnixMilli(v.Int64).UTC()
}

// Size returns the encoded size of the value in bytes. Containers report
// the size of an empty container.
func (v Value) Size() int {
	switch v.Type {
	case NullType:
		return 0
	case BoolType:
		return 1
	case Int32Type:
		return 4
	case Int64Type, DoubleType, DateType:
		return 8
	case StringType:
		return 4 + len(v.Str) + 1
	case ObjectType, ArrayType:
		return 5
	}
	panic(errInternal)
}

// Identical reports whether a and b have the same type and the same
// payload. Doubles are compared bit for bit, so -0 and 0 differ and a NaN
// is identical to the same NaN.
func Identical(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType, ObjectType, ArrayType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case Int32Type, Int64Type, DateType:
		return a.Int64 == b.Int64
	case DoubleType:
		return math.Float64bits(a.Float64) == math.Float64bits(b.Float64)
	case StringType:
		return a.Str == b.Str
	}
	return false
}

func (v Value) String() string {
	switch v.Type {
	case NullType:
		return "null"
	case BoolType:
		return strconv.FormatBool(v.Bool)
	case Int32Type, Int64Type:
		return strconv.FormatInt(v.Int64, 10)
	case DoubleType:
		return FormatFloat(v.Float64)
	case DateType:
		return v.Time().Format(time.RFC3339Nano)
	case StringType:
		return strconv.Quote(v.Str)
	case ObjectType:
		return "{}"
	case ArrayType:
		return "[]"
	}
	return "<unknown value>"
}

// Text is like String but leaves strings unquoted.
func (v Value) Text() string {
	if v.Type == StringType {
		return v.Str
	}
	return v.String()
}

// FormatFloat formats f so that it reads back as a double: integral values
// keep a trailing ".0".
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E':
			return s
		}
	}
	return s + ".0"
}
