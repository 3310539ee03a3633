package ir

import (
	"errors"
	"math"
	"testing"
)

type addTest struct {
	a, b Value
	res  Value
	err  error
}

// tenth and fifth are variables so their sum is computed at run time in
// float64 rather than folded exactly by the compiler.
var tenth, fifth = 0.1, 0.2

var addTests = []addTest{
	{a: FromInt32(1), b: FromInt32(2), res: FromInt32(3)},
	{a: FromInt32(math.MaxInt32), b: FromInt32(1), res: FromInt64(math.MaxInt32 + 1)},
	{a: FromInt32(math.MinInt32), b: FromInt32(-1), res: FromInt64(math.MinInt32 - 1)},
	{a: FromInt32(1), b: FromInt64(0), res: FromInt64(1)},
	{a: FromInt64(1), b: FromInt32(2), res: FromInt64(3)},
	{a: FromInt64(1), b: FromInt64(2), res: FromInt64(3)},
	{a: FromInt32(1), b: FromFloat(0), res: FromFloat(1)},
	{a: FromInt64(1), b: FromFloat(0.5), res: FromFloat(1.5)},
	{a: FromFloat(1), b: FromInt32(1), res: FromFloat(2)},
	{a: FromFloat(1), b: FromInt64(1), res: FromFloat(2)},
	{a: FromFloat(tenth), b: FromFloat(fifth), res: FromFloat(tenth + fifth)},
	{a: FromFloat(tenth), b: FromFloat(fifth), res: FromFloat(0.30000000000000004)},
	{a: FromInt64(math.MaxInt64), b: FromInt32(1), err: ErrOverflow},
	{a: FromInt64(math.MinInt64), b: FromInt64(-1), err: ErrOverflow},
	{a: FromString("x"), b: FromInt32(1), err: ErrNotNumber},
	{a: FromInt32(1), b: Null(), err: ErrNotNumber},
}

func TestAdd(t *testing.T) {
	for i, tc := range addTests {
		res, err := Add(tc.a, tc.b)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("%d: %s + %s: expected %v, got %v", i, tc.a, tc.b, tc.err, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%d: %s + %s: %v", i, tc.a, tc.b, err)
			continue
		}
		if !Identical(res, tc.res) {
			t.Errorf("%d: %s(%s) + %s(%s) = %s(%s), want %s(%s)", i,
				tc.a, tc.a.Type, tc.b, tc.b.Type, res, res.Type, tc.res, tc.res.Type)
		}
	}
}

func TestIdentical(t *testing.T) {
	if Identical(FromInt32(1), FromInt64(1)) {
		t.Errorf("int32 1 and int64 1 differ in type")
	}
	if !Identical(FromFloat(math.NaN()), FromFloat(math.NaN())) {
		t.Errorf("NaN should be identical to itself")
	}
	if Identical(FromFloat(0), FromFloat(math.Copysign(0, -1))) {
		t.Errorf("0 and -0 should differ")
	}
}

func TestValueSize(t *testing.T) {
	sizes := map[Value]int{
		Null():           0,
		FromBool(true):   1,
		FromInt32(7):     4,
		FromInt64(7):     8,
		FromFloat(7):     8,
		FromString("ab"): 7,
		EmptyObject():    5,
	}
	for v, want := range sizes {
		if got := v.Size(); got != want {
			t.Errorf("%s: size %d want %d", v.Type, got, want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	for f, want := range map[float64]string{
		1:      "1.0",
		1.5:    "1.5",
		-2:     "-2.0",
		1e21:   "1e+21",
		0.0001: "0.0001",
	} {
		if got := FormatFloat(f); got != want {
			t.Errorf("%v: got %q want %q", f, got, want)
		}
	}
}
