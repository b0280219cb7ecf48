package field_test

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wcgcyx/tracegen/field"
	"github.com/wcgcyx/tracegen/field/bn254"
	"github.com/wcgcyx/tracegen/field/goldilocks"
)

func init() {
	// make sure the interface is adhered to.
	_ = field.Element[goldilocks.Element](goldilocks.Element{})
	_ = field.Element[bn254.Element](bn254.Element{})
}

func TestGoldilocksIdentities(t *testing.T) {
	checkIdentities[goldilocks.Element](t)
}

func TestBn254Identities(t *testing.T) {
	checkIdentities[bn254.Element](t)
}

func TestGoldilocksReduction(t *testing.T) {
	// p = 2^64 - 2^32 + 1, so 2^32 * 2^32 = 2^32 - 1 (mod p).
	x := field.Uint64[goldilocks.Element](1 << 32)
	assert.True(t, x.Mul(x).Equal(field.Uint64[goldilocks.Element]((1<<32)-1)))
}

func checkIdentities[F field.Element[F]](t *testing.T) {
	zero := field.Zero[F]()
	one := field.One[F]()
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsOne())
	assert.True(t, one.IsOne())
	assert.False(t, one.IsZero())

	seven := field.Uint64[F](7)
	six := field.Uint64[F](6)
	assert.True(t, seven.Add(zero).Equal(seven))
	assert.True(t, seven.Mul(one).Equal(seven))
	assert.True(t, seven.Mul(zero).IsZero())
	assert.True(t, six.Add(one).Equal(seven))
	assert.True(t, seven.Mul(six).Equal(field.Uint64[F](42)))
	assert.Equal(t, "42", seven.Mul(six).String())

	assert.True(t, field.Bool[F](true).IsOne())
	assert.True(t, field.Bool[F](false).IsZero())
}
