package bn254

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element wraps the gnark-crypto bn254 scalar field element
// so it satisfies field.Element.
type Element struct {
	fr.Element
}

// Add implements the field.Element interface.
func (x Element) Add(y Element) Element {
	var res fr.Element
	res.Add(&x.Element, &y.Element)
	return Element{res}
}

// Mul implements the field.Element interface.
func (x Element) Mul(y Element) Element {
	var res fr.Element
	res.Mul(&x.Element, &y.Element)
	return Element{res}
}

// IsZero implements the field.Element interface.
func (x Element) IsZero() bool {
	return x.Element.IsZero()
}

// IsOne implements the field.Element interface.
func (x Element) IsOne() bool {
	return x.Element.IsOne()
}

// SetUint64 implements the field.Element interface.
func (x Element) SetUint64(val uint64) Element {
	x.Element.SetUint64(val)
	return x
}

// Equal implements the field.Element interface.
func (x Element) Equal(y Element) bool {
	return x.Element.Equal(&y.Element)
}

// String implements the field.Element interface.
func (x Element) String() string {
	return x.Element.String()
}
