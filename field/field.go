package field

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import "fmt"

// Element is an element of the prime field used by a proving backend.
// Trace rows are built from these so the trace log does not depend on a
// concrete field.
type Element[F any] interface {
	fmt.Stringer

	// Add returns x + y.
	Add(y F) F

	// Mul returns x * y.
	Mul(y F) F

	// IsZero checks if x is 0.
	IsZero() bool

	// IsOne checks if x is 1.
	IsOne() bool

	// SetUint64 returns the element representing val (reduced).
	SetUint64(val uint64) F

	// Equal checks if x == y.
	Equal(y F) bool
}

// Zero returns the additive identity.
func Zero[F Element[F]]() F {
	var element F
	return element
}

// One returns the multiplicative identity.
func One[F Element[F]]() F {
	var element F
	return element.SetUint64(1)
}

// Uint64 returns the element representing val.
func Uint64[F Element[F]](val uint64) F {
	var element F
	return element.SetUint64(val)
}

// Bool returns One for true and Zero for false.
func Bool[F Element[F]](val bool) F {
	if val {
		return One[F]()
	}
	return Zero[F]()
}
