package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	DateType
	Int32Type
	Int64Type
	DoubleType
	StringType
	ObjectType
	ArrayType
)

var typeNames = map[Type]string{
	NullType:   "Null",
	BoolType:   "Bool",
	DateType:   "Date",
	Int32Type:  "Int32",
	Int64Type:  "Int64",
	DoubleType: "Double",
	StringType: "String",
	ObjectType: "Object",
	ArrayType:  "Array",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for tt, s := range typeNames {
		if s == string(d) {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		DateType,
		Int32Type,
		Int64Type,
		DoubleType,
		StringType,
		ObjectType,
		ArrayType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType:
		return false
	default:
		return true
	}
}

func (t Type) IsContainer() bool {
	return !t.IsLeaf()
}

// IsNumber reports whether t is on the numeric promotion lattice.
func (t Type) IsNumber() bool {
	switch t {
	case Int32Type, Int64Type, DoubleType:
		return true
	default:
		return false
	}
}
