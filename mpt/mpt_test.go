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
	"bytes"
	"errors"
	"math/big"
	"sort"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/stretchr/testify/assert"
)

func TestNibbles(t *testing.T) {
	n := FromBytes([]byte{0x12, 0xab})
	assert.Equal(t, Nibbles{1, 2, 0xa, 0xb}, n)
	assert.Equal(t, []byte{0x12, 0xab}, n.ToBytes())

	packed := Nibbles{1, 2, 3}.Packed()
	assert.Equal(t, uint64(0x123), packed.Uint64())
	packed = Nibbles{}.Packed()
	assert.True(t, packed.IsZero())

	full := FromBytes(bytes.Repeat([]byte{0xff}, 32))
	packed = full.Packed()
	assert.Equal(t, "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", packed.Hex())
	assert.Panics(t, func() { append(full, 1).Packed() })
	assert.Panics(t, func() { Nibbles{1}.ToBytes() })
}

func TestHexPrefix(t *testing.T) {
	assert.Equal(t, []byte{0x31, 0x23}, Nibbles{1, 2, 3}.HexPrefix(true))
	assert.Equal(t, []byte{0x20, 0x12}, Nibbles{1, 2}.HexPrefix(true))
	assert.Equal(t, []byte{0x20}, Nibbles{}.HexPrefix(true))
	assert.Equal(t, []byte{0x00, 0x12}, Nibbles{1, 2}.HexPrefix(false))
	assert.Equal(t, []byte{0x11}, Nibbles{1}.HexPrefix(false))
}

func TestEmptyTrie(t *testing.T) {
	assert.Equal(t, types.EmptyRootHash, Hash(nil))
	assert.Equal(t, types.EmptyRootHash, Hash(EmptyNode{}))
	v, err := Get(nil, Nibbles{1})
	assert.Nil(t, err)
	assert.Nil(t, v)
}

func TestShortRootIsHashed(t *testing.T) {
	root, err := Insert(nil, FromBytes([]byte{0x01}), []byte{0x02})
	assert.Nil(t, err)
	expected := crypto.Keccak256Hash([]byte{0xc4, 0x82, 0x20, 0x01, 0x02})
	assert.Equal(t, expected, Hash(root))
}

func TestInsertGet(t *testing.T) {
	var root Node
	keys := []Nibbles{{1, 2, 3, 4}, {1, 2, 3, 5}, {1, 2}, {7}, {1, 2, 9, 9}}
	var err error
	for i, k := range keys {
		root, err = Insert(root, k, []byte{byte(i + 1)})
		assert.Nil(t, err)
	}
	for i, k := range keys {
		v, err := Get(root, k)
		assert.Nil(t, err)
		assert.Equal(t, []byte{byte(i + 1)}, v)
	}
	v, err := Get(root, Nibbles{1, 2, 3})
	assert.Nil(t, err)
	assert.Nil(t, v)
	v, err = Get(root, Nibbles{8})
	assert.Nil(t, err)
	assert.Nil(t, v)

	// Overwrite leaves the old version untouched.
	updated, err := Insert(root, Nibbles{1, 2, 3, 4}, []byte{0xaa})
	assert.Nil(t, err)
	v, _ = Get(updated, Nibbles{1, 2, 3, 4})
	assert.Equal(t, []byte{0xaa}, v)
	v, _ = Get(root, Nibbles{1, 2, 3, 4})
	assert.Equal(t, []byte{1}, v)
	assert.NotEqual(t, Hash(root), Hash(updated))

	_, err = Insert(root, Nibbles{1}, nil)
	assert.True(t, errors.Is(err, ErrEmptyValue))
}

func TestHashNode(t *testing.T) {
	root := &BranchNode{}
	root.Children[3] = &HashNode{Hash: common.HexToHash("0x01")}
	_, err := Insert(root, Nibbles{3, 1}, []byte{1})
	assert.True(t, errors.Is(err, ErrHashNodeInsert))
	_, err = Get(root, Nibbles{3, 1})
	assert.True(t, errors.Is(err, ErrHashNodeLookup))

	// Other branches are still usable.
	updated, err := Insert(root, Nibbles{4, 1}, []byte{1})
	assert.Nil(t, err)
	v, err := Get(updated, Nibbles{4, 1})
	assert.Nil(t, err)
	assert.Equal(t, []byte{1}, v)

	h := common.HexToHash("0xabcdef")
	assert.Equal(t, h, Hash(&HashNode{Hash: h}))
}

func TestHashAgainstStackTrie(t *testing.T) {
	type kv struct {
		key   []byte
		value []byte
	}
	var kvs []kv
	for i := 0; i < 200; i++ {
		key := crypto.Keccak256([]byte{byte(i), byte(i >> 8)})
		value := bytes.Repeat([]byte{byte(i + 1)}, 1+i%40)
		kvs = append(kvs, kv{key, value})
	}
	sort.Slice(kvs, func(i, j int) bool { return bytes.Compare(kvs[i].key, kvs[j].key) < 0 })

	st := trie.NewStackTrie(nil)
	var root Node
	var err error
	// Insert into the partial trie in reverse to show order does not matter.
	for i := range kvs {
		assert.Nil(t, st.Update(kvs[i].key, kvs[i].value))
		e := kvs[len(kvs)-1-i]
		root, err = Insert(root, FromBytes(e.key), e.value)
		assert.Nil(t, err)
	}
	assert.Equal(t, st.Hash(), Hash(root))
}

func TestHashAgainstDeriveSha(t *testing.T) {
	signer := types.LatestSignerForChainID(big.NewInt(1))
	key, err := crypto.GenerateKey()
	assert.Nil(t, err)
	var txs types.Transactions
	for i := 0; i < 130; i++ {
		tx, err := types.SignNewTx(key, signer, &types.DynamicFeeTx{
			ChainID:   big.NewInt(1),
			Nonce:     uint64(i),
			GasTipCap: big.NewInt(1),
			GasFeeCap: big.NewInt(10),
			Gas:       21000,
			To:        &common.Address{0x01},
			Value:     big.NewInt(int64(i)),
		})
		assert.Nil(t, err)
		txs = append(txs, tx)
	}
	var root Node
	for i, tx := range txs {
		enc, err := tx.MarshalBinary()
		assert.Nil(t, err)
		root, err = Insert(root, FromBytes(rlp.AppendUint64(nil, uint64(i))), enc)
		assert.Nil(t, err)
	}
	assert.Equal(t, types.DeriveSha(txs, trie.NewStackTrie(nil)), Hash(root))
}
