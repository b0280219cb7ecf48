package kernel

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
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	logging "github.com/ipfs/go-log"
)

var log = logging.Logger("kernel")

// ObserveNewAddress is the label the kernel jumps to after touching a new
// address.
const ObserveNewAddress = "observe_new_address"

// ErrUnknownLabel is returned when a label is not in the label table.
var ErrUnknownLabel = errors.New("unknown kernel label")

// Kernel is the kernel bootstrap code and its global label table.
// It is immutable once created.
type Kernel struct {
	code     []byte
	labels   map[string]uint64
	codeHash common.Hash
}

// NewKernel creates a new kernel, copying code and labels.
func NewKernel(code []byte, labels map[string]uint64) *Kernel {
	return &Kernel{
		code:     slices.Clone(code),
		labels:   maps.Clone(labels),
		codeHash: crypto.Keccak256Hash(code),
	}
}

// Code gets a copy of the bootstrap code.
func (k *Kernel) Code() []byte {
	return slices.Clone(k.code)
}

// CodeHash gets the keccak256 hash of the bootstrap code.
func (k *Kernel) CodeHash() common.Hash {
	return k.codeHash
}

// Label gets the code offset of a global label.
func (k *Kernel) Label(name string) (uint64, error) {
	offset, ok := k.labels[name]
	if !ok {
		return 0, fmt.Errorf("label %v: %w", name, ErrUnknownLabel)
	}
	return offset, nil
}

// Labels gets the sorted names of all global labels.
func (k *Kernel) Labels() []string {
	return slices.Sorted(maps.Keys(k.labels))
}

// kernelFile is the json layout of a kernel file.
type kernelFile struct {
	Code         hexutil.Bytes     `json:"code"`
	GlobalLabels map[string]uint64 `json:"global_labels"`
}

// LoadKernel loads a kernel from a json file.
func LoadKernel(path string) (*Kernel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f kernelFile
	if err = json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error decoding kernel file %v: %w", path, err)
	}
	k := NewKernel(f.Code, f.GlobalLabels)
	log.Infof("Loaded kernel %v: %v bytes of code, %v labels", k.codeHash.Hex(), len(k.code), len(k.labels))
	return k, nil
}
