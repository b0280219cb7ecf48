package session

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
	logging "github.com/ipfs/go-log"
	"github.com/wcgcyx/tracegen/field"
	"github.com/wcgcyx/tracegen/generation"
	"github.com/wcgcyx/tracegen/kernel"
	itypes "github.com/wcgcyx/tracegen/types"
	"github.com/wcgcyx/tracegen/witnessstore"
)

// Logger
var log = logging.Logger("session")

// Open creates a generation state for the inputs, reusing the witness stored
// for them if any. A nil store always derives the witness.
// Failing to read or write the store only costs a derivation.
func Open[F field.Element[F]](store witnessstore.WitnessStore, inputs generation.GenerationInputs, k *kernel.Kernel) (*generation.GenerationState[F], error) {
	if store == nil {
		return generation.NewGenerationState[F](inputs, k)
	}
	digest := inputs.Digest()
	w, ok := lookup(store, digest)
	if !ok {
		var err error
		w, err = generation.DeriveWitness(inputs)
		if err != nil {
			return nil, err
		}
		err = store.PutWitness(digest, w)
		if err != nil {
			log.Warnf("Fail to store witness %v: %v", digest, err.Error())
		} else {
			log.Infof("Derived and stored witness %v with %v values", digest, w.Len())
		}
	}
	return generation.NewGenerationStateFromWitness[F](inputs, k, w)
}

// lookup gets the witness stored under the digest.
func lookup(store witnessstore.WitnessStore, digest common.Hash) (itypes.Witness, bool) {
	exists, err := store.HasWitness(digest)
	if err != nil {
		log.Warnf("Fail to check witness %v: %v", digest, err.Error())
		return itypes.Witness{}, false
	}
	if !exists {
		log.Debugf("Witness %v not found", digest)
		return itypes.Witness{}, false
	}
	w, err := store.GetWitness(digest)
	if err != nil {
		log.Warnf("Fail to get witness %v: %v", digest, err.Error())
		return itypes.Witness{}, false
	}
	log.Infof("Reuse stored witness %v", digest)
	return w, true
}
