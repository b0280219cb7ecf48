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
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MarshalHash implements the mus.Marshaller interface.
func MarshalHash(v common.Hash, bs []byte) (n int) {
	sl := v.Bytes()
	m := mus.MarshallerFn[byte](varint.MarshalByte)
	n = ord.MarshalSlice[byte](sl, m, bs)
	return
}

// UnmarshalHash implements the mus.Unmarshaller interface.
func UnmarshalHash(bs []byte) (v common.Hash, n int, err error) {
	var sl []byte
	u := mus.UnmarshallerFn[byte](varint.UnmarshalByte)
	sl, n, err = ord.UnmarshalSlice[byte](u, bs)
	if err != nil {
		return
	}
	v.SetBytes(sl)
	return
}

// SizeHash implements the mus.Sizer interface.
func SizeHash(v common.Hash) (size int) {
	sl := v.Bytes()
	s := mus.SizerFn[byte](varint.SizeByte)
	size = ord.SizeSlice[byte](sl, s)
	return
}

// MarshalWord implements the mus.Marshaller interface.
// Words are stored as their minimal big-endian bytes.
func MarshalWord(v uint256.Int, bs []byte) (n int) {
	sl := v.Bytes()
	m := mus.MarshallerFn[byte](varint.MarshalByte)
	n = ord.MarshalSlice[byte](sl, m, bs)
	return
}

// UnmarshalWord implements the mus.Unmarshaller interface.
func UnmarshalWord(bs []byte) (v uint256.Int, n int, err error) {
	var sl []byte
	u := mus.UnmarshallerFn[byte](varint.UnmarshalByte)
	sl, n, err = ord.UnmarshalSlice[byte](u, bs)
	if err != nil {
		return
	}
	if len(sl) > 32 {
		err = ErrWordTooLong
		return
	}
	v.SetBytes(sl)
	return
}

// SizeWord implements the mus.Sizer interface.
func SizeWord(v uint256.Int) (size int) {
	sl := v.Bytes()
	s := mus.SizerFn[byte](varint.SizeByte)
	size = ord.SizeSlice[byte](sl, s)
	return
}

// MarshalWords implements the mus.Marshaller interface.
func MarshalWords(v []uint256.Int, bs []byte) (n int) {
	m := mus.MarshallerFn[uint256.Int](MarshalWord)
	n = ord.MarshalSlice[uint256.Int](v, m, bs)
	return
}

// UnmarshalWords implements the mus.Unmarshaller interface.
func UnmarshalWords(bs []byte) (v []uint256.Int, n int, err error) {
	u := mus.UnmarshallerFn[uint256.Int](UnmarshalWord)
	v, n, err = ord.UnmarshalSlice[uint256.Int](u, bs)
	return
}

// SizeWords implements the mus.Sizer interface.
func SizeWords(v []uint256.Int) (size int) {
	s := mus.SizerFn[uint256.Int](SizeWord)
	size = ord.SizeSlice[uint256.Int](v, s)
	return
}

// MarshalWitness implements the mus.Marshaller interface.
func MarshalWitness(v Witness, bs []byte) (n int) {
	n = MarshalWords(v.MptProverInputs, bs)
	n += MarshalWords(v.RlpProverInputs, bs[n:])
	return
}

// UnmarshalWitness implements the mus.Unmarshaller interface.
func UnmarshalWitness(bs []byte) (v Witness, n int, err error) {
	v.MptProverInputs, n, err = UnmarshalWords(bs)
	if err != nil {
		return
	}
	var n1 int
	v.RlpProverInputs, n1, err = UnmarshalWords(bs[n:])
	n += n1
	return
}

// SizeWitness implements the mus.Sizer interface.
func SizeWitness(v Witness) (size int) {
	size = SizeWords(v.MptProverInputs)
	size += SizeWords(v.RlpProverInputs)
	return
}

// MarshalStoredWitness implements the mus.Marshaller interface.
func MarshalStoredWitness(v StoredWitness, bs []byte) (n int) {
	n = MarshalHash(v.Digest, bs)
	n += varint.MarshalInt64(v.StoredAt, bs[n:])
	n += MarshalWitness(v.Witness, bs[n:])
	return
}

// UnmarshalStoredWitness implements the mus.Unmarshaller interface.
func UnmarshalStoredWitness(bs []byte) (v StoredWitness, n int, err error) {
	v.Digest, n, err = UnmarshalHash(bs)
	if err != nil {
		return
	}
	var n1 int
	v.StoredAt, n1, err = varint.UnmarshalInt64(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Witness, n1, err = UnmarshalWitness(bs[n:])
	n += n1
	return
}

// SizeStoredWitness implements the mus.Sizer interface.
func SizeStoredWitness(v StoredWitness) (size int) {
	size = SizeHash(v.Digest)
	size += varint.SizeInt64(v.StoredAt)
	size += SizeWitness(v.Witness)
	return
}

// EncodeStoredWitness encodes a stored witness into bytes.
func EncodeStoredWitness(v StoredWitness) []byte {
	bs := make([]byte, SizeStoredWitness(v))
	MarshalStoredWitness(v, bs)
	return bs
}

// DecodeStoredWitness decodes a stored witness, rejecting trailing bytes.
func DecodeStoredWitness(bs []byte) (StoredWitness, error) {
	v, n, err := UnmarshalStoredWitness(bs)
	if err != nil {
		return StoredWitness{}, err
	}
	if n != len(bs) {
		return StoredWitness{}, ErrTrailingBytes
	}
	return v, nil
}
