package types

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
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestStoredWitnessRoundTrip(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	original := StoredWitness{
		Digest:   common.HexToHash("0xf48be2fbf5a8e6b02b456703b044fe0f3d3bdb45f6bd317c42278955edb27b55"),
		StoredAt: 1700000000,
		Witness: Witness{
			MptProverInputs: []uint256.Int{*uint256.NewInt(4), *uint256.NewInt(0), *max},
			RlpProverInputs: []uint256.Int{*uint256.NewInt(2), *uint256.NewInt(0xc0), *uint256.NewInt(0x80)},
		},
	}
	assert.Equal(t, 6, original.Witness.Len())

	bs := EncodeStoredWitness(original)
	decoded, err := DecodeStoredWitness(bs)
	assert.Nil(t, err)
	assert.Equal(t, original.Digest, decoded.Digest)
	assert.Equal(t, original.StoredAt, decoded.StoredAt)
	assert.Equal(t, original.Witness, decoded.Witness)

	_, err = DecodeStoredWitness(append(bs, 0))
	assert.True(t, errors.Is(err, ErrTrailingBytes))
	_, err = DecodeStoredWitness(bs[:len(bs)-1])
	assert.NotNil(t, err)
}

func TestEmptyWitness(t *testing.T) {
	bs := EncodeStoredWitness(StoredWitness{})
	decoded, err := DecodeStoredWitness(bs)
	assert.Nil(t, err)
	assert.Equal(t, 0, decoded.Witness.Len())
}
