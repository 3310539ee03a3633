package ir

import (
	"fmt"
	"math"
)

// Promoted returns the wider of two numeric types on the lattice
// Int32 < Int64 < Double.
func Promoted(a, b Type) Type {
	if a == DoubleType || b == DoubleType {
		return DoubleType
	}
	if a == Int64Type || b == Int64Type {
		return Int64Type
	}
	return Int32Type
}

// Add returns a+b. The result takes the promoted type of the operands,
// except that an Int32 sum outside the 32-bit range becomes Int64. An
// Int64 sum outside the 64-bit range is an error.
func Add(a, b Value) (Value, error) {
	if !a.IsNumber() {
		return Value{}, fmt.Errorf("%w: %s", ErrNotNumber, a.Type)
	}
	if !b.IsNumber() {
		return Value{}, fmt.Errorf("%w: %s", ErrNotNumber, b.Type)
	}
	switch Promoted(a.Type, b.Type) {
	case DoubleType:
		return FromFloat(a.Float() + b.Float()), nil
	case Int32Type:
		// both operands are in 32-bit range, so the sum fits in 64 bits
		return FromInt(a.Int64 + b.Int64), nil
	default:
		sum, ok := addInt64(a.Int64, b.Int64)
		if !ok {
			return Value{}, fmt.Errorf("%w: %d + %d", ErrOverflow, a.Int64, b.Int64)
		}
		return FromInt64(sum), nil
	}
}

func addInt64(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}
