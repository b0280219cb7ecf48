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
)

// Witness is the non-deterministic input derived from a batch.
type Witness struct {
	// Flattened tries, in the order they are popped
	MptProverInputs []uint256.Int

	// Signed txn encodings, in the order they are popped
	RlpProverInputs []uint256.Int
}

// Len gets the total number of witness values.
func (w Witness) Len() int {
	return len(w.MptProverInputs) + len(w.RlpProverInputs)
}

// StoredWitness is a witness as persisted, keyed by the digest of its inputs.
type StoredWitness struct {
	// Digest of the generation inputs
	Digest common.Hash

	// Unix time in seconds at which the witness was stored
	StoredAt int64

	// The witness
	Witness Witness
}
