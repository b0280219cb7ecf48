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
	"bytes"
	"encoding/binary"
	"maps"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/wcgcyx/tracegen/mpt"
)

// TrieInputs are the partial tries the batch runs against.
type TrieInputs struct {
	// State trie, keyed by keccak256(address)
	StateTrie mpt.Node

	// Transactions trie, keyed by rlp(index)
	TransactionsTrie mpt.Node

	// Receipts trie, keyed by rlp(index)
	ReceiptsTrie mpt.Node

	// Storage tries, keyed by keccak256(slot)
	StorageTries map[common.Address]mpt.Node
}

// TrieRoots are the expected roots after the batch.
type TrieRoots struct {
	StateRoot        common.Hash
	TransactionsRoot common.Hash
	ReceiptsRoot     common.Hash
}

// BlockMetadata is the block level context of the batch.
type BlockMetadata struct {
	Beneficiary common.Address
	Timestamp   uint256.Int
	Number      uint256.Int
	Difficulty  uint256.Int
	GasLimit    uint256.Int
	ChainID     uint256.Int
	BaseFee     uint256.Int
}

// GenerationInputs is the immutable description of a batch.
type GenerationInputs struct {
	// Signed txns, in execution order
	SignedTxns [][]byte

	// Partial tries before the batch
	Tries TrieInputs

	// Expected roots after the batch
	TrieRootsAfter TrieRoots

	// Contract code, keyed by code hash
	ContractCode map[common.Hash][]byte

	// Block context
	BlockMetadata BlockMetadata
}

// digestPayload is what Digest hashes.
type digestPayload struct {
	StateTrie        common.Hash
	TransactionsTrie common.Hash
	ReceiptsTrie     common.Hash
	StorageTries     []storageFingerprint
	SignedTxns       [][]byte
	TrieRootsAfter   TrieRoots
	CodeHashes       []common.Hash
	Beneficiary      common.Address
	Metadata         []*uint256.Int
}

type storageFingerprint struct {
	Address     common.Address
	Fingerprint common.Hash
}

// Digest gets a hash identifying the inputs. Two inputs with the same digest
// derive the same witness.
func (in GenerationInputs) Digest() common.Hash {
	p := digestPayload{
		StateTrie:        fingerprint(in.Tries.StateTrie),
		TransactionsTrie: fingerprint(in.Tries.TransactionsTrie),
		ReceiptsTrie:     fingerprint(in.Tries.ReceiptsTrie),
		SignedTxns:       in.SignedTxns,
		TrieRootsAfter:   in.TrieRootsAfter,
		CodeHashes: slices.SortedFunc(maps.Keys(in.ContractCode), func(a, b common.Hash) int {
			return bytes.Compare(a[:], b[:])
		}),
		Beneficiary: in.BlockMetadata.Beneficiary,
	}
	addrs := slices.SortedFunc(maps.Keys(in.Tries.StorageTries), func(a, b common.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	for _, addr := range addrs {
		p.StorageTries = append(p.StorageTries, storageFingerprint{addr, fingerprint(in.Tries.StorageTries[addr])})
	}
	m := &in.BlockMetadata
	p.Metadata = []*uint256.Int{&m.Timestamp, &m.Number, &m.Difficulty, &m.GasLimit, &m.ChainID, &m.BaseFee}
	enc, err := rlp.EncodeToBytes(&p)
	if err != nil {
		log.Panicf("error encoding digest payload: %v", err)
	}
	return crypto.Keccak256Hash(enc)
}

// fingerprint hashes the shape of a partial trie. Unlike the root hash it
// tells apart tries that hash out different subtrees.
func fingerprint(n mpt.Node) common.Hash {
	h := crypto.NewKeccakState()
	writeShape(h, n)
	var res common.Hash
	h.Read(res[:])
	return res
}

func writeShape(h crypto.KeccakState, n mpt.Node) {
	writeBytes := func(b []byte) {
		var l [8]byte
		binary.BigEndian.PutUint64(l[:], uint64(len(b)))
		h.Write(l[:])
		h.Write(b)
	}
	if mpt.IsEmpty(n) {
		h.Write([]byte{byte(mpt.NodeTypeEmpty)})
		return
	}
	h.Write([]byte{byte(n.Type())})
	switch node := n.(type) {
	case *mpt.HashNode:
		h.Write(node.Hash[:])
	case *mpt.BranchNode:
		for _, child := range node.Children {
			writeShape(h, child)
		}
		writeBytes(node.Value)
	case *mpt.ExtensionNode:
		writeBytes(node.Nibbles)
		writeShape(h, node.Child)
	case *mpt.LeafNode:
		writeBytes(node.Nibbles)
		writeBytes(node.Value)
	}
}
