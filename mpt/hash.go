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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// emptyString is the RLP encoding of an empty string.
var emptyString = rlp.RawValue{0x80}

// Hash gets the root hash of the trie. The root is hashed even when its
// encoding is shorter than a hash.
func Hash(n Node) common.Hash {
	if IsEmpty(n) {
		return types.EmptyRootHash
	}
	if h, ok := n.(*HashNode); ok {
		return h.Hash
	}
	return crypto.Keccak256Hash(encode(n))
}

// encode gets the RLP encoding of a non empty, non hash node.
func encode(n Node) []byte {
	var item interface{}
	switch node := n.(type) {
	case *LeafNode:
		item = []interface{}{node.Nibbles.HexPrefix(true), node.Value}
	case *ExtensionNode:
		item = []interface{}{node.Nibbles.HexPrefix(false), ref(node.Child)}
	case *BranchNode:
		list := make([]interface{}, 17)
		for i, child := range node.Children {
			list[i] = ref(child)
		}
		value := node.Value
		if value == nil {
			value = []byte{}
		}
		list[16] = value
		item = list
	default:
		log.Panicf("node type %T has no encoding", n)
	}
	enc, err := rlp.EncodeToBytes(item)
	if err != nil {
		log.Panicf("error encoding node: %v", err)
	}
	return enc
}

// ref gets how a child is referenced by its parent, either inline or by hash.
func ref(n Node) rlp.RawValue {
	if IsEmpty(n) {
		return emptyString
	}
	var hash common.Hash
	if h, ok := n.(*HashNode); ok {
		hash = h.Hash
	} else {
		enc := encode(n)
		if len(enc) < 32 {
			return enc
		}
		hash = crypto.Keccak256Hash(enc)
	}
	enc, err := rlp.EncodeToBytes(hash)
	if err != nil {
		log.Panicf("error encoding hash: %v", err)
	}
	return enc
}
