package witnessstore

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
	itypes "github.com/wcgcyx/tracegen/types"
)

//go:generate mockgen -source witnessstore.go -destination mock_witnessstore.go -package witnessstore

// WitnessStore persists derived witnesses keyed by the digest of their inputs.
type WitnessStore interface {
	// HasWitness checks if a witness is stored for the given digest.
	HasWitness(digest common.Hash) (bool, error)

	// GetWitness gets the witness stored for the given digest.
	GetWitness(digest common.Hash) (itypes.Witness, error)

	// PutWitness stores the witness for the given digest.
	PutWitness(digest common.Hash, w itypes.Witness) error

	// DeleteWitness deletes the witness stored for the given digest.
	DeleteWitness(digest common.Hash) error

	// Shutdown safely shuts the witness store down.
	Shutdown()
}
