// Package genprime provides a field.Divider backed by plain math/big
// arithmetic for an arbitrary declared prime modulus, i.e. any field_modulus
// the program archive supplies that is not the BLS12-377 scalar field (see
// field/bls12-377 for that fast path).
package genprime

import "math/big"

// Field is a prime field of arbitrary modulus, implemented directly over
// math/big since gnark-crypto only ships fixed-curve scalar fields.
type Field struct {
	modulus *big.Int
}

// New constructs a field with the given prime modulus.
func New(modulus *big.Int) Field {
	return Field{new(big.Int).Set(modulus)}
}

// Modulus returns this field's prime modulus.
func (f Field) Modulus() *big.Int {
	return f.modulus
}

// Inverse returns x⁻¹ modulo this field's modulus, via the extended
// Euclidean algorithm (big.Int.ModInverse). Panics if x is congruent to 0.
func (f Field) Inverse(x *big.Int) *big.Int {
	reduced := new(big.Int).Mod(x, f.modulus)

	inv := new(big.Int).ModInverse(reduced, f.modulus)
	if inv == nil {
		panic("cannot invert zero field element")
	}

	return inv
}
