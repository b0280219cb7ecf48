package generation

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
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/wcgcyx/tracegen/mpt"
)

// leafFn appends the witness of the value stored at key.
type leafFn func(out []uint256.Int, key mpt.Nibbles, value []byte) ([]uint256.Int, error)

// AllMptProverInputs flattens the state, transactions and receipts tries, in
// that order, into the words the kernel reads back when loading them.
func AllMptProverInputs(tries TrieInputs) ([]uint256.Int, error) {
	storageByStateKey := make(map[common.Hash]mpt.Node, len(tries.StorageTries))
	for addr, storage := range tries.StorageTries {
		storageByStateKey[crypto.Keccak256Hash(addr.Bytes())] = storage
	}

	stateLeaf := func(out []uint256.Int, key mpt.Nibbles, value []byte) ([]uint256.Int, error) {
		return appendAccount(out, key, value, storageByStateKey)
	}

	out, err := appendTrie(nil, tries.StateTrie, nil, stateLeaf, false)
	if err != nil {
		return nil, fmt.Errorf("error flattening state trie: %w", err)
	}
	out, err = appendTrie(out, tries.TransactionsTrie, nil, appendRawValue, true)
	if err != nil {
		return nil, fmt.Errorf("error flattening transactions trie: %w", err)
	}
	out, err = appendTrie(out, tries.ReceiptsTrie, nil, appendRawValue, true)
	if err != nil {
		return nil, fmt.Errorf("error flattening receipts trie: %w", err)
	}
	return out, nil
}

// appendTrie appends the witness of a trie in pre-order. path is the key of n.
func appendTrie(out []uint256.Int, n mpt.Node, path mpt.Nibbles, leaf leafFn, branchValues bool) ([]uint256.Int, error) {
	if mpt.IsEmpty(n) {
		return append(out, word(uint64(mpt.NodeTypeEmpty))), nil
	}
	out = append(out, word(uint64(n.Type())))
	var err error
	switch node := n.(type) {
	case *mpt.HashNode:
		out = append(out, *new(uint256.Int).SetBytes32(node.Hash[:]))
	case *mpt.BranchNode:
		if len(node.Value) == 0 {
			out = append(out, word(0))
		} else {
			if !branchValues {
				return nil, fmt.Errorf("at path %x: %w", []byte(path), ErrBranchValue)
			}
			out = append(out, word(1))
			out, err = leaf(out, path, node.Value)
			if err != nil {
				return nil, err
			}
		}
		for i, child := range node.Children {
			out, err = appendTrie(out, child, append(path[:len(path):len(path)], byte(i)), leaf, branchValues)
			if err != nil {
				return nil, err
			}
		}
	case *mpt.ExtensionNode:
		out = append(out, word(uint64(len(node.Nibbles))), node.Nibbles.Packed())
		out, err = appendTrie(out, node.Child, append(path[:len(path):len(path)], node.Nibbles...), leaf, branchValues)
		if err != nil {
			return nil, err
		}
	case *mpt.LeafNode:
		out = append(out, word(uint64(len(node.Nibbles))), node.Nibbles.Packed())
		out, err = leaf(out, append(path[:len(path):len(path)], node.Nibbles...), node.Value)
		if err != nil {
			return nil, err
		}
	default:
		log.Panicf("unknown node type %T", n)
	}
	return out, nil
}

// appendAccount appends nonce, balance, storage trie and code hash of an
// account leaf.
func appendAccount(out []uint256.Int, key mpt.Nibbles, value []byte, storageByStateKey map[common.Hash]mpt.Node) ([]uint256.Int, error) {
	if len(key) != 2*common.HashLength {
		return nil, fmt.Errorf("leaf at %x has %v nibbles: %w", []byte(key), len(key), ErrInvalidStateKey)
	}
	stateKey := common.BytesToHash(key.ToBytes())
	var account types.StateAccount
	if err := rlp.DecodeBytes(value, &account); err != nil {
		return nil, fmt.Errorf("error decoding account at %v: %w", stateKey, err)
	}
	balance := account.Balance
	if balance == nil {
		balance = new(uint256.Int)
	}
	out = append(out, word(account.Nonce), *balance)

	storage, ok := storageByStateKey[stateKey]
	if !ok {
		if account.Root == types.EmptyRootHash {
			storage = mpt.EmptyNode{}
		} else {
			storage = &mpt.HashNode{Hash: account.Root}
		}
	}
	if root := mpt.Hash(storage); root != account.Root {
		return nil, fmt.Errorf("account at %v has storage root %v but storage trie hashes to %v: %w", stateKey, account.Root, root, ErrStorageRootMismatch)
	}
	out, err := appendTrie(out, storage, nil, appendStorageValue, true)
	if err != nil {
		return nil, fmt.Errorf("error flattening storage trie of %v: %w", stateKey, err)
	}
	return append(out, *new(uint256.Int).SetBytes(account.CodeHash)), nil
}

// appendStorageValue appends an rlp encoded storage word.
func appendStorageValue(out []uint256.Int, key mpt.Nibbles, value []byte) ([]uint256.Int, error) {
	var v *big.Int
	if err := rlp.DecodeBytes(value, &v); err != nil {
		return nil, fmt.Errorf("error decoding storage value at %x: %w", []byte(key), err)
	}
	w, overflow := uint256.FromBig(v)
	if overflow {
		return nil, fmt.Errorf("storage value at %x overflows a word", []byte(key))
	}
	return append(out, *w), nil
}

// appendRawValue appends the byte length then one word per byte.
func appendRawValue(out []uint256.Int, _ mpt.Nibbles, value []byte) ([]uint256.Int, error) {
	return appendBytes(out, value), nil
}

func appendBytes(out []uint256.Int, b []byte) []uint256.Int {
	out = append(out, word(uint64(len(b))))
	for _, v := range b {
		out = append(out, word(uint64(v)))
	}
	return out
}

func word(v uint64) uint256.Int {
	return *uint256.NewInt(v)
}
