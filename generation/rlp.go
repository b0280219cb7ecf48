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

	"github.com/holiman/uint256"
	"github.com/wcgcyx/tracegen/types"
)

// AllRlpProverInputs flattens the signed txns, each as its byte length
// followed by one word per byte.
func AllRlpProverInputs(signedTxns [][]byte) []uint256.Int {
	var out []uint256.Int
	for _, txn := range signedTxns {
		out = appendBytes(out, txn)
	}
	return out
}

// DeriveWitness derives both witness sequences of the inputs.
func DeriveWitness(inputs GenerationInputs) (types.Witness, error) {
	mptInputs, err := AllMptProverInputs(inputs.Tries)
	if err != nil {
		return types.Witness{}, fmt.Errorf("error deriving mpt prover inputs: %w", err)
	}
	return types.Witness{
		MptProverInputs: mptInputs,
		RlpProverInputs: AllRlpProverInputs(inputs.SignedTxns),
	}, nil
}
