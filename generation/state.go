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
	"slices"
	"sort"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	logging "github.com/ipfs/go-log"
	"github.com/wcgcyx/tracegen/field"
	"github.com/wcgcyx/tracegen/kernel"
	"github.com/wcgcyx/tracegen/mpt"
	"github.com/wcgcyx/tracegen/types"
	"github.com/wcgcyx/tracegen/witness"
)

var log = logging.Logger("generation")

// maxStackToShow is the number of words Stack returns at most.
const maxStackToShow = 10

// lastStateID is the id of the most recently created state. Ids start at 1 so
// the zero checkpoint belongs to no state.
var lastStateID atomic.Uint64

// GenerationStateCheckpoint is a restore point of a generation state. It is
// only valid for a single rollback on the state that issued it.
type GenerationStateCheckpoint struct {
	registers witness.RegistersState
	traces    witness.TraceCheckpoint

	stateID uint64
	serial  uint64
}

// serialRange is a revoked range [from, to) of checkpoint serials.
type serialRange struct {
	from uint64
	to   uint64
}

// GenerationState is the state of a trace generation run.
// It is not safe for concurrent use.
type GenerationState[F field.Element[F]] struct {
	Inputs    GenerationInputs
	Registers witness.RegistersState
	Memory    *witness.MemoryState
	Traces    *witness.Traces[F]

	// Index of the next signed txn to run
	NextTxnIndex int

	// Addresses observed so far, keyed by state key. Only used for diagnostics.
	StateKeyToAddress map[common.Hash]common.Address

	mptProverInputs *witnessQueue
	rlpProverInputs *witnessQueue

	observeNewAddress uint64

	id      uint64
	issued  uint64
	revoked []serialRange
}

// NewGenerationState creates a new generation state, deriving the witness
// from the inputs.
func NewGenerationState[F field.Element[F]](inputs GenerationInputs, k *kernel.Kernel) (*GenerationState[F], error) {
	logInputs(inputs)
	w, err := DeriveWitness(inputs)
	if err != nil {
		return nil, err
	}
	return NewGenerationStateFromWitness[F](inputs, k, w)
}

// NewGenerationStateFromWitness creates a new generation state from a witness
// derived earlier from the same inputs.
func NewGenerationStateFromWitness[F field.Element[F]](inputs GenerationInputs, k *kernel.Kernel, w types.Witness) (*GenerationState[F], error) {
	observeNewAddress, err := k.Label(kernel.ObserveNewAddress)
	if err != nil {
		return nil, err
	}
	return &GenerationState[F]{
		Inputs:            inputs,
		Memory:            witness.NewMemoryState(k.Code()),
		Traces:            witness.NewTraces[F](),
		StateKeyToAddress: make(map[common.Hash]common.Address),
		mptProverInputs:   newWitnessQueue("mpt", slices.Clone(w.MptProverInputs)),
		rlpProverInputs:   newWitnessQueue("rlp", slices.Clone(w.RlpProverInputs)),
		observeNewAddress: observeNewAddress,
		id:                lastStateID.Add(1),
	}, nil
}

func logInputs(inputs GenerationInputs) {
	log.Debugf("Input signed_txns: %v", len(inputs.SignedTxns))
	for i, txn := range inputs.SignedTxns {
		log.Debugf("Input signed_txn %v: %x", i, txn)
	}
	log.Debugf("Input state_trie: %v", mpt.Hash(inputs.Tries.StateTrie))
	log.Debugf("Input transactions_trie: %v", mpt.Hash(inputs.Tries.TransactionsTrie))
	log.Debugf("Input receipts_trie: %v", mpt.Hash(inputs.Tries.ReceiptsTrie))
	for addr, storage := range inputs.Tries.StorageTries {
		log.Debugf("Input storage_trie of %v: %v", addr, mpt.Hash(storage))
	}
	for codeHash, code := range inputs.ContractCode {
		log.Debugf("Input contract_code %v: %v bytes", codeHash, len(code))
	}
}

// JumpTo sets the program counter. Jumping to the observe_new_address label
// also observes the address on top of the stack.
func (s *GenerationState[F]) JumpTo(dst uint64) error {
	s.Registers.ProgramCounter = dst
	if dst == s.observeNewAddress {
		tip, err := s.StackPeek(0)
		if err != nil {
			return fmt.Errorf("error jumping to %v: %w", kernel.ObserveNewAddress, err)
		}
		b := tip.Bytes32()
		s.ObserveAddress(common.BytesToAddress(b[12:]))
	}
	return nil
}

// ObserveAddress records the address under its state key.
func (s *GenerationState[F]) ObserveAddress(addr common.Address) {
	stateKey := crypto.Keccak256Hash(addr.Bytes())
	log.Debugf("Observe address %v with state key %v", addr, stateKey)
	s.StateKeyToAddress[stateKey] = addr
}

// Checkpoint takes a restore point of the registers and the trace log.
func (s *GenerationState[F]) Checkpoint() GenerationStateCheckpoint {
	cp := GenerationStateCheckpoint{
		registers: s.Registers,
		traces:    s.Traces.Checkpoint(),
		stateID:   s.id,
		serial:    s.issued,
	}
	s.issued++
	return cp
}

// Rollback restores the registers and truncates the trace log to the
// checkpoint. The checkpoint and every checkpoint taken after it can not be
// rolled back again. Memory and witness queues are left as they are.
func (s *GenerationState[F]) Rollback(cp GenerationStateCheckpoint) error {
	if cp.stateID != s.id {
		return ErrForeignCheckpoint
	}
	if cp.serial >= s.issued || s.isRevoked(cp.serial) {
		return fmt.Errorf("checkpoint %v: %w", cp.serial, ErrCheckpointRevoked)
	}
	if err := s.Traces.Rollback(cp.traces); err != nil {
		return err
	}
	s.Registers = cp.registers
	s.revoke(cp.serial)
	return nil
}

// revoke revokes every serial from the given one up to the last issued.
func (s *GenerationState[F]) revoke(from uint64) {
	for len(s.revoked) > 0 && s.revoked[len(s.revoked)-1].from >= from {
		s.revoked = s.revoked[:len(s.revoked)-1]
	}
	if n := len(s.revoked); n > 0 && s.revoked[n-1].to == from {
		s.revoked[n-1].to = s.issued
		return
	}
	s.revoked = append(s.revoked, serialRange{from: from, to: s.issued})
}

// isRevoked checks if a serial falls in a revoked range.
func (s *GenerationState[F]) isRevoked(serial uint64) bool {
	i := sort.Search(len(s.revoked), func(i int) bool {
		return s.revoked[i].to > serial
	})
	return i < len(s.revoked) && s.revoked[i].from <= serial
}

// Stack gets up to the top 10 stack words, top first.
func (s *GenerationState[F]) Stack() ([]uint256.Int, error) {
	n := min(s.Registers.StackLen, maxStackToShow)
	res := make([]uint256.Int, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := s.StackPeek(i)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// PopMptProverInput gets the next mpt witness value.
func (s *GenerationState[F]) PopMptProverInput() (uint256.Int, error) {
	return s.mptProverInputs.pop()
}

// PopRlpProverInput gets the next rlp witness value.
func (s *GenerationState[F]) PopRlpProverInput() (uint256.Int, error) {
	return s.rlpProverInputs.pop()
}

// RemainingMptProverInputs gets the number of mpt witness values left.
func (s *GenerationState[F]) RemainingMptProverInputs() int {
	return s.mptProverInputs.remaining()
}

// RemainingRlpProverInputs gets the number of rlp witness values left.
func (s *GenerationState[F]) RemainingRlpProverInputs() int {
	return s.rlpProverInputs.remaining()
}

// HasNextTxn checks if there is a signed txn left to run.
func (s *GenerationState[F]) HasNextTxn() bool {
	return s.NextTxnIndex < len(s.Inputs.SignedTxns)
}

// NextTxn gets the next signed txn and advances the txn index.
func (s *GenerationState[F]) NextTxn() ([]byte, error) {
	if !s.HasNextTxn() {
		return nil, fmt.Errorf("txn index %v: %w", s.NextTxnIndex, ErrNoMoreTxns)
	}
	txn := s.Inputs.SignedTxns[s.NextTxnIndex]
	s.NextTxnIndex++
	return txn, nil
}

// CheckDrained checks that both witness queues have been fully consumed.
func (s *GenerationState[F]) CheckDrained() error {
	if err := s.mptProverInputs.checkDrained(); err != nil {
		return err
	}
	return s.rlpProverInputs.checkDrained()
}

// Finish ends the run and hands over the trace log.
func (s *GenerationState[F]) Finish() (*witness.Traces[F], error) {
	if err := s.CheckDrained(); err != nil {
		return nil, err
	}
	log.Infof("Generation finished after %v cycles and %v txns", s.Traces.Clock(), s.NextTxnIndex)
	return s.Traces, nil
}
