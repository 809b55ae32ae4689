package field

import "math/big"

// Divider is the narrower capability the constant-folding layer actually
// needs from a field backend: its modulus (to reduce a big.Int operand into
// range) and a multiplicative inverse (to turn field division into a
// multiplication, the usual way a finite field implements `/`). Both the
// gnark-crypto-backed bls12-377 backend and the math/big-backed
// arbitrary-prime backend satisfy this.
type Divider interface {
	// Modulus returns the field's prime modulus.
	Modulus() *big.Int
	// Inverse returns x⁻¹ mod the field's modulus, or panics if x is
	// congruent to 0.
	Inverse(x *big.Int) *big.Int
}
