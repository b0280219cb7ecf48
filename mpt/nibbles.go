package mpt

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
	"github.com/holiman/uint256"
)

// MaxNibbles is the largest key length that still packs into one word.
const MaxNibbles = 64

// Nibbles is a path in the trie, one 4-bit value per byte.
type Nibbles []byte

// FromBytes expands a byte key into nibbles, high nibble first.
func FromBytes(key []byte) Nibbles {
	res := make(Nibbles, 2*len(key))
	for i, b := range key {
		res[2*i] = b >> 4
		res[2*i+1] = b & 0x0f
	}
	return res
}

// ToBytes folds an even number of nibbles back into bytes.
func (n Nibbles) ToBytes() []byte {
	if len(n)%2 != 0 {
		log.Panicf("odd nibble count %v can not be folded into bytes", len(n))
	}
	res := make([]byte, len(n)/2)
	for i := range res {
		res[i] = n[2*i]<<4 | n[2*i+1]
	}
	return res
}

// Packed packs the nibbles big-endian into one word, so [1, 2, 3] is 0x123.
func (n Nibbles) Packed() uint256.Int {
	if len(n) > MaxNibbles {
		log.Panicf("%v nibbles do not fit into a word", len(n))
	}
	var res uint256.Int
	for _, nib := range n {
		res.Lsh(&res, 4)
		res.Or(&res, uint256.NewInt(uint64(nib)))
	}
	return res
}

// HexPrefix returns the compact encoding of the nibbles used in leaf and
// extension node keys.
func (n Nibbles) HexPrefix(leaf bool) []byte {
	flag := byte(0)
	if leaf {
		flag = 2
	}
	rest := n
	res := make([]byte, len(n)/2+1)
	if len(n)%2 == 1 {
		res[0] = (flag|1)<<4 | n[0]
		rest = n[1:]
	} else {
		res[0] = flag << 4
	}
	for i := 0; i < len(rest); i += 2 {
		res[1+i/2] = rest[i]<<4 | rest[i+1]
	}
	return res
}

// commonPrefix gets the length of the shared prefix of a and b.
func commonPrefix(a, b Nibbles) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

// concat joins nibble paths into a fresh slice.
func concat(parts ...Nibbles) Nibbles {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	res := make(Nibbles, 0, size)
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}
