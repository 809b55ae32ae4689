// Package bigint implements the constant-folding arithmetic the expression
// evaluator applies when both operands are Const: host big-integer
// computation over arbitrary-precision integers, independent of any field
// modulus except for the one operator — field division — that needs one.
//
// Every exported function here is a pure function of its operands; none of
// them touch the Runtime Context or Circuit Builder. This mirrors a clean
// separation of host-level field arithmetic from the code that decides
// *when* to apply it.
package bigint

import (
	"errors"
	"math/big"

	"github.com/namnc/circom-2-arithc/field"
)

// Sentinel errors distinguishing the constant-fold failure modes. The
// statement/expression layers wrap these with source breadcrumbs.
var (
	ErrDivByZero        = errors.New("division by zero")
	ErrNoFieldModulus   = errors.New("field division requires a field modulus")
	ErrNegativeExponent = errors.New("negative exponent")
	ErrBadShift         = errors.New("shift amount out of range")
)

// maxShift bounds a constant shift amount. Corset-family DSLs never need a
// shift anywhere near this large; it exists purely so a malformed program
// can't force an unbounded allocation inside math/big.Int.Lsh.
const maxShift = 1 << 20

// Add returns x + y.
func Add(x, y *big.Int) *big.Int {
	return new(big.Int).Add(x, y)
}

// Sub returns x - y.
func Sub(x, y *big.Int) *big.Int {
	return new(big.Int).Sub(x, y)
}

// Mul returns x * y.
func Mul(x, y *big.Int) *big.Int {
	return new(big.Int).Mul(x, y)
}

// TruncDiv returns the truncating (towards zero) integer division x \ y.
func TruncDiv(x, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, ErrDivByZero
	}
	//
	return new(big.Int).Quo(x, y), nil
}

// FieldDiv returns x * y⁻¹ modulo the given field's modulus. Returns
// ErrNoFieldModulus if f is nil — the default field (BLS12-377) is always
// available rather than requiring a program to declare one explicitly;
// callers that truly have no field configured pass nil and surface the error.
func FieldDiv(x, y *big.Int, f field.Divider) (*big.Int, error) {
	if f == nil {
		return nil, ErrNoFieldModulus
	}

	if new(big.Int).Mod(y, f.Modulus()).Sign() == 0 {
		return nil, ErrDivByZero
	}

	inv := f.Inverse(y)
	product := new(big.Int).Mul(x, inv)

	return product.Mod(product, f.Modulus()), nil
}

// Pow returns x ** y for y >= 0. A negative exponent is rejected rather
// than silently coerced into field inversion, since plain (non-field)
// integer power has no sensible meaning for negative exponents.
func Pow(x, y *big.Int) (*big.Int, error) {
	if y.Sign() < 0 {
		return nil, ErrNegativeExponent
	}
	//
	return new(big.Int).Exp(x, y, nil), nil
}

// Mod returns the non-negative remainder of x divided by y.
func Mod(x, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, ErrDivByZero
	}

	m := new(big.Int).Mod(x, y)
	if m.Sign() < 0 {
		m.Add(m, new(big.Int).Abs(y))
	}

	return m, nil
}

// ShiftL returns x << y.
func ShiftL(x, y *big.Int) (*big.Int, error) {
	n, err := shiftAmount(y)
	if err != nil {
		return nil, err
	}
	//
	return new(big.Int).Lsh(x, n), nil
}

// ShiftR returns x >> y.
func ShiftR(x, y *big.Int) (*big.Int, error) {
	n, err := shiftAmount(y)
	if err != nil {
		return nil, err
	}
	//
	return new(big.Int).Rsh(x, n), nil
}

func shiftAmount(y *big.Int) (uint, error) {
	if y.Sign() < 0 || !y.IsUint64() || y.Uint64() > maxShift {
		return 0, ErrBadShift
	}
	//
	return uint(y.Uint64()), nil
}

// BitAnd returns x & y.
func BitAnd(x, y *big.Int) *big.Int {
	return new(big.Int).And(x, y)
}

// BitOr returns x | y.
func BitOr(x, y *big.Int) *big.Int {
	return new(big.Int).Or(x, y)
}

// BitXor returns x ^ y.
func BitXor(x, y *big.Int) *big.Int {
	return new(big.Int).Xor(x, y)
}

// BitNot returns ~x (two's-complement bitwise negation).
func BitNot(x *big.Int) *big.Int {
	return new(big.Int).Not(x)
}

// boolInt converts a Go bool into the Const(0)/Const(1) the DSL's boolean
// operators return.
func boolInt(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	//
	return big.NewInt(0)
}

// Lt returns 1 if x < y, else 0.
func Lt(x, y *big.Int) *big.Int { return boolInt(x.Cmp(y) < 0) }

// Leq returns 1 if x <= y, else 0.
func Leq(x, y *big.Int) *big.Int { return boolInt(x.Cmp(y) <= 0) }

// Gt returns 1 if x > y, else 0.
func Gt(x, y *big.Int) *big.Int { return boolInt(x.Cmp(y) > 0) }

// Geq returns 1 if x >= y, else 0.
func Geq(x, y *big.Int) *big.Int { return boolInt(x.Cmp(y) >= 0) }

// Eq returns 1 if x == y, else 0.
func Eq(x, y *big.Int) *big.Int { return boolInt(x.Cmp(y) == 0) }

// Neq returns 1 if x != y, else 0.
func Neq(x, y *big.Int) *big.Int { return boolInt(x.Cmp(y) != 0) }

// IsTruthy treats 0 as false and any non-zero value as true, the convention
// `&&` and `||` use for their operands.
func IsTruthy(x *big.Int) bool {
	return x.Sign() != 0
}

// LogicAnd returns 1 if both x and y are truthy, else 0.
func LogicAnd(x, y *big.Int) *big.Int { return boolInt(IsTruthy(x) && IsTruthy(y)) }

// LogicOr returns 1 if either x or y is truthy, else 0.
func LogicOr(x, y *big.Int) *big.Int { return boolInt(IsTruthy(x) || IsTruthy(y)) }

// LogicNot returns 1 if x is not truthy (i.e. zero), else 0.
func LogicNot(x *big.Int) *big.Int { return boolInt(!IsTruthy(x)) }

// Neg returns -x, used for the prefix `-` operator.
func Neg(x *big.Int) *big.Int {
	return new(big.Int).Neg(x)
}
