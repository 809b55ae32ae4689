package bigint

import (
	"math/big"
	"testing"

	bls12377 "github.com/namnc/circom-2-arithc/field/bls12-377"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func TestArithmeticOps(t *testing.T) {
	if got := Add(bi(2), bi(3)); got.Cmp(bi(5)) != 0 {
		t.Fatalf("Add(2,3) = %s, want 5", got)
	}

	if got := Sub(bi(2), bi(3)); got.Cmp(bi(-1)) != 0 {
		t.Fatalf("Sub(2,3) = %s, want -1", got)
	}

	if got := Mul(bi(4), bi(5)); got.Cmp(bi(20)) != 0 {
		t.Fatalf("Mul(4,5) = %s, want 20", got)
	}

	got, err := TruncDiv(bi(-7), bi(2))
	if err != nil {
		t.Fatalf("TruncDiv: %v", err)
	}

	if got.Cmp(bi(-3)) != 0 {
		t.Fatalf("TruncDiv(-7,2) = %s, want -3 (truncation towards zero)", got)
	}

	if _, err := TruncDiv(bi(1), bi(0)); err != ErrDivByZero {
		t.Fatalf("TruncDiv by zero: got %v, want ErrDivByZero", err)
	}
}

func TestFieldDiv(t *testing.T) {
	f := bls12377.Field{}

	x, y := bi(10), bi(2)

	got, err := FieldDiv(x, y, f)
	if err != nil {
		t.Fatalf("FieldDiv: %v", err)
	}

	if got.Cmp(bi(5)) != 0 {
		t.Fatalf("FieldDiv(10,2) = %s, want 5", got)
	}

	if _, err := FieldDiv(x, y, nil); err != ErrNoFieldModulus {
		t.Fatalf("FieldDiv with nil field: got %v, want ErrNoFieldModulus", err)
	}

	if _, err := FieldDiv(x, bi(0), f); err != ErrDivByZero {
		t.Fatalf("FieldDiv by zero: got %v, want ErrDivByZero", err)
	}
}

func TestPow(t *testing.T) {
	got, err := Pow(bi(2), bi(10))
	if err != nil {
		t.Fatalf("Pow: %v", err)
	}

	if got.Cmp(bi(1024)) != 0 {
		t.Fatalf("Pow(2,10) = %s, want 1024", got)
	}

	if _, err := Pow(bi(2), bi(-1)); err != ErrNegativeExponent {
		t.Fatalf("Pow with negative exponent: got %v, want ErrNegativeExponent", err)
	}
}

func TestModNonNegative(t *testing.T) {
	got, err := Mod(bi(-1), bi(5))
	if err != nil {
		t.Fatalf("Mod: %v", err)
	}

	if got.Cmp(bi(4)) != 0 {
		t.Fatalf("Mod(-1,5) = %s, want 4 (non-negative remainder)", got)
	}

	if _, err := Mod(bi(1), bi(0)); err != ErrDivByZero {
		t.Fatalf("Mod by zero: got %v, want ErrDivByZero", err)
	}
}

func TestShifts(t *testing.T) {
	l, err := ShiftL(bi(1), bi(4))
	if err != nil {
		t.Fatalf("ShiftL: %v", err)
	}

	if l.Cmp(bi(16)) != 0 {
		t.Fatalf("ShiftL(1,4) = %s, want 16", l)
	}

	r, err := ShiftR(bi(16), bi(4))
	if err != nil {
		t.Fatalf("ShiftR: %v", err)
	}

	if r.Cmp(bi(1)) != 0 {
		t.Fatalf("ShiftR(16,4) = %s, want 1", r)
	}

	if _, err := ShiftL(bi(1), bi(-1)); err != ErrBadShift {
		t.Fatalf("ShiftL with negative amount: got %v, want ErrBadShift", err)
	}

	if _, err := ShiftL(bi(1), bi(maxShift+1)); err != ErrBadShift {
		t.Fatalf("ShiftL past maxShift: got %v, want ErrBadShift", err)
	}
}

func TestBitwiseOps(t *testing.T) {
	if got := BitAnd(bi(0b1100), bi(0b1010)); got.Cmp(bi(0b1000)) != 0 {
		t.Fatalf("BitAnd = %s, want 8", got)
	}

	if got := BitOr(bi(0b1100), bi(0b1010)); got.Cmp(bi(0b1110)) != 0 {
		t.Fatalf("BitOr = %s, want 14", got)
	}

	if got := BitXor(bi(0b1100), bi(0b1010)); got.Cmp(bi(0b0110)) != 0 {
		t.Fatalf("BitXor = %s, want 6", got)
	}

	if got := BitNot(bi(0)); got.Cmp(bi(-1)) != 0 {
		t.Fatalf("BitNot(0) = %s, want -1", got)
	}
}

func TestComparisonOps(t *testing.T) {
	cases := []struct {
		name     string
		fn       func(x, y *big.Int) *big.Int
		x, y     int64
		wantTrue bool
	}{
		{"Lt true", Lt, 1, 2, true},
		{"Lt false", Lt, 2, 1, false},
		{"Leq equal", Leq, 2, 2, true},
		{"Gt true", Gt, 3, 2, true},
		{"Geq equal", Geq, 2, 2, true},
		{"Eq true", Eq, 5, 5, true},
		{"Neq true", Neq, 5, 6, true},
	}

	for _, c := range cases {
		got := c.fn(bi(c.x), bi(c.y))
		want := int64(0)
		if c.wantTrue {
			want = 1
		}

		if got.Cmp(bi(want)) != 0 {
			t.Errorf("%s: got %s, want %d", c.name, got, want)
		}
	}
}

func TestLogicOps(t *testing.T) {
	if got := LogicAnd(bi(1), bi(0)); got.Cmp(bi(0)) != 0 {
		t.Fatalf("LogicAnd(1,0) = %s, want 0", got)
	}

	if got := LogicOr(bi(0), bi(7)); got.Cmp(bi(1)) != 0 {
		t.Fatalf("LogicOr(0,7) = %s, want 1", got)
	}

	if got := LogicNot(bi(0)); got.Cmp(bi(1)) != 0 {
		t.Fatalf("LogicNot(0) = %s, want 1", got)
	}

	if !IsTruthy(bi(-3)) {
		t.Fatalf("IsTruthy(-3) = false, want true")
	}

	if IsTruthy(bi(0)) {
		t.Fatalf("IsTruthy(0) = true, want false")
	}
}

func TestNeg(t *testing.T) {
	if got := Neg(bi(5)); got.Cmp(bi(-5)) != 0 {
		t.Fatalf("Neg(5) = %s, want -5", got)
	}
}
