package bls12_377

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Field is the BLS12-377 scalar field, used as the default field division
// backend when an archive declares no field modulus.
type Field struct{}

// Modulus returns the BLS12-377 scalar field's prime modulus.
func (Field) Modulus() *big.Int {
	return fr.Modulus()
}

// Inverse returns x⁻¹ modulo the BLS12-377 scalar field's modulus.  Panics if
// x is congruent to 0, since the caller (the constant-folding layer) is
// expected to have already rejected division by zero.
func (Field) Inverse(x *big.Int) *big.Int {
	var elem fr.Element

	elem.SetBigInt(x)

	if elem.IsZero() {
		panic("cannot invert zero field element")
	}

	elem.Inverse(&elem)

	var out big.Int

	return elem.BigInt(&out)
}
