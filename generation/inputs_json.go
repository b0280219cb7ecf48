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
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/wcgcyx/tracegen/mpt"
)

type accountJSON struct {
	Address common.Address              `json:"address"`
	Nonce   hexutil.Uint64              `json:"nonce"`
	Balance *hexutil.Big                `json:"balance"`
	Code    hexutil.Bytes               `json:"code"`
	Storage map[common.Hash]common.Hash `json:"storage"`
}

type trieRootsJSON struct {
	StateRoot        common.Hash `json:"state_root"`
	TransactionsRoot common.Hash `json:"transactions_root"`
	ReceiptsRoot     common.Hash `json:"receipts_root"`
}

type blockMetadataJSON struct {
	Beneficiary common.Address `json:"beneficiary"`
	Timestamp   *hexutil.Big   `json:"timestamp"`
	Number      *hexutil.Big   `json:"number"`
	Difficulty  *hexutil.Big   `json:"difficulty"`
	GasLimit    *hexutil.Big   `json:"gas_limit"`
	ChainID     *hexutil.Big   `json:"chain_id"`
	BaseFee     *hexutil.Big   `json:"base_fee"`
}

type inputsJSON struct {
	Accounts       []accountJSON     `json:"accounts"`
	SignedTxns     []hexutil.Bytes   `json:"signed_txns"`
	Receipts       []hexutil.Bytes   `json:"receipts"`
	TrieRootsAfter trieRootsJSON     `json:"trie_roots_after"`
	BlockMetadata  blockMetadataJSON `json:"block_metadata"`
}

// LoadInputs loads generation inputs from a json file listing the accounts
// touched by the batch, its signed txns and receipts.
func LoadInputs(path string) (GenerationInputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GenerationInputs{}, err
	}
	var f inputsJSON
	if err = json.Unmarshal(data, &f); err != nil {
		return GenerationInputs{}, fmt.Errorf("error decoding inputs file %v: %w", path, err)
	}
	inputs, err := f.toInputs()
	if err != nil {
		return GenerationInputs{}, fmt.Errorf("error building inputs from %v: %w", path, err)
	}
	log.Infof("Loaded inputs %v: %v accounts, %v signed txns", path, len(f.Accounts), len(f.SignedTxns))
	return inputs, nil
}

func (f inputsJSON) toInputs() (GenerationInputs, error) {
	inputs := GenerationInputs{
		Tries: TrieInputs{
			StorageTries: make(map[common.Address]mpt.Node),
		},
		TrieRootsAfter: TrieRoots{
			StateRoot:        f.TrieRootsAfter.StateRoot,
			TransactionsRoot: f.TrieRootsAfter.TransactionsRoot,
			ReceiptsRoot:     f.TrieRootsAfter.ReceiptsRoot,
		},
		ContractCode: make(map[common.Hash][]byte),
	}
	var err error
	for _, acct := range f.Accounts {
		inputs.Tries.StateTrie, err = insertAccount(&inputs, acct)
		if err != nil {
			return GenerationInputs{}, fmt.Errorf("account %v: %w", acct.Address, err)
		}
	}
	for i, txn := range f.SignedTxns {
		inputs.SignedTxns = append(inputs.SignedTxns, txn)
		inputs.Tries.TransactionsTrie, err = mpt.Insert(inputs.Tries.TransactionsTrie, indexKey(i), txn)
		if err != nil {
			return GenerationInputs{}, fmt.Errorf("txn %v: %w", i, err)
		}
	}
	for i, receipt := range f.Receipts {
		inputs.Tries.ReceiptsTrie, err = mpt.Insert(inputs.Tries.ReceiptsTrie, indexKey(i), receipt)
		if err != nil {
			return GenerationInputs{}, fmt.Errorf("receipt %v: %w", i, err)
		}
	}
	m := f.BlockMetadata
	inputs.BlockMetadata.Beneficiary = m.Beneficiary
	for _, pair := range []struct {
		name string
		src  *hexutil.Big
		dst  *uint256.Int
	}{
		{"timestamp", m.Timestamp, &inputs.BlockMetadata.Timestamp},
		{"number", m.Number, &inputs.BlockMetadata.Number},
		{"difficulty", m.Difficulty, &inputs.BlockMetadata.Difficulty},
		{"gas_limit", m.GasLimit, &inputs.BlockMetadata.GasLimit},
		{"chain_id", m.ChainID, &inputs.BlockMetadata.ChainID},
		{"base_fee", m.BaseFee, &inputs.BlockMetadata.BaseFee},
	} {
		v, err := toWord(pair.src)
		if err != nil {
			return GenerationInputs{}, fmt.Errorf("block metadata %v: %w", pair.name, err)
		}
		*pair.dst = v
	}
	return inputs, nil
}

// insertAccount builds the storage trie of an account and inserts the
// account into the state trie.
func insertAccount(inputs *GenerationInputs, acct accountJSON) (mpt.Node, error) {
	var storage mpt.Node
	var err error
	for slot, val := range acct.Storage {
		var v uint256.Int
		v.SetBytes32(val[:])
		if v.IsZero() {
			continue
		}
		enc, err := rlp.EncodeToBytes(&v)
		if err != nil {
			return nil, err
		}
		storage, err = mpt.Insert(storage, mpt.FromBytes(crypto.Keccak256(slot[:])), enc)
		if err != nil {
			return nil, fmt.Errorf("slot %v: %w", slot, err)
		}
	}
	if storage != nil {
		inputs.Tries.StorageTries[acct.Address] = storage
	}
	balance, err := toWord(acct.Balance)
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}
	codeHash := crypto.Keccak256Hash(acct.Code)
	if len(acct.Code) > 0 {
		inputs.ContractCode[codeHash] = acct.Code
	}
	enc, err := rlp.EncodeToBytes(&types.StateAccount{
		Nonce:    uint64(acct.Nonce),
		Balance:  &balance,
		Root:     mpt.Hash(storage),
		CodeHash: codeHash.Bytes(),
	})
	if err != nil {
		return nil, err
	}
	return mpt.Insert(inputs.Tries.StateTrie, mpt.FromBytes(crypto.Keccak256(acct.Address.Bytes())), enc)
}

// indexKey gets the trie key of the i-th txn or receipt.
func indexKey(i int) mpt.Nibbles {
	return mpt.FromBytes(rlp.AppendUint64(nil, uint64(i)))
}

func toWord(v *hexutil.Big) (uint256.Int, error) {
	if v == nil {
		return uint256.Int{}, nil
	}
	w, overflow := uint256.FromBig(v.ToInt())
	if overflow {
		return uint256.Int{}, fmt.Errorf("%v overflows a word", v)
	}
	return *w, nil
}
