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
	"errors"
	"slices"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/wcgcyx/tracegen/field/goldilocks"
	"github.com/wcgcyx/tracegen/kernel"
	"github.com/wcgcyx/tracegen/types"
	"github.com/wcgcyx/tracegen/witness"
)

const testObserveLabel = 7

type testField = goldilocks.Element

type testState = GenerationState[testField]

func testKernel() *kernel.Kernel {
	return kernel.NewKernel([]byte{0x5b, 0x60, 0x00}, map[string]uint64{
		"main":                   0,
		kernel.ObserveNewAddress: testObserveLabel,
	})
}

func newTestState(t *testing.T, w types.Witness) *testState {
	s, err := NewGenerationStateFromWitness[goldilocks.Element](GenerationInputs{
		SignedTxns: [][]byte{{0x01}, {0x02, 0x03}},
	}, testKernel(), w)
	assert.Nil(t, err)
	return s
}

func words(vals ...uint64) []uint256.Int {
	res := make([]uint256.Int, len(vals))
	for i, v := range vals {
		res[i].SetUint64(v)
	}
	return res
}

func pushAll(t *testing.T, s *testState, vals ...uint64) {
	for _, v := range vals {
		assert.Nil(t, s.StackPush(*uint256.NewInt(v)))
	}
}

func TestNewGenerationState(t *testing.T) {
	s, err := NewGenerationState[goldilocks.Element](GenerationInputs{}, testKernel())
	assert.Nil(t, err)
	assert.Equal(t, witness.RegistersState{}, s.Registers)
	assert.Equal(t, witness.TraceCheckpoint{}, s.Traces.Checkpoint())
	assert.Equal(t, 0, s.NextTxnIndex)
	assert.Empty(t, s.StateKeyToAddress)
	code := s.Memory.Get(witness.MemoryAddress{Context: 0, Segment: witness.SegmentCode, Virtual: 1})
	assert.Equal(t, uint64(0x60), code.Uint64())

	// Empty state, transactions and receipts tries.
	assert.Equal(t, 3, s.RemainingMptProverInputs())
	assert.Equal(t, 0, s.RemainingRlpProverInputs())
	for i := 0; i < 3; i++ {
		v, err := s.PopMptProverInput()
		assert.Nil(t, err)
		assert.True(t, v.IsZero())
	}
	assert.Nil(t, s.CheckDrained())

	_, err = NewGenerationState[goldilocks.Element](GenerationInputs{}, kernel.NewKernel(nil, nil))
	assert.True(t, errors.Is(err, kernel.ErrUnknownLabel))
}

func TestCheckpointRollback(t *testing.T) {
	s := newTestState(t, types.Witness{})
	pushAll(t, s, 1, 2)
	s.RecordCpuRow(0x60)
	s.Registers.GasUsed = 21

	before := s.Registers
	rowsBefore := slices.Clone(s.Traces.CpuRows())
	cp := s.Checkpoint()

	s.Registers.ProgramCounter = 99
	s.Registers.IsKernel = true
	s.Registers.GasUsed = 50
	pushAll(t, s, 3)
	s.RecordCpuRow(0x01)
	s.Traces.PushArithmetic(witness.ArithmeticOp{Operator: "ADD"})
	s.Traces.PushLogic(witness.LogicOp{Operator: "XOR"})
	s.Traces.PushKeccakSponge(witness.KeccakSpongeOp{Input: []byte{1, 2}})

	assert.Nil(t, s.Rollback(cp))
	assert.Equal(t, before, s.Registers)
	assert.Equal(t, cp.traces, s.Traces.Checkpoint())
	assert.Equal(t, rowsBefore, s.Traces.CpuRows())
	assert.Empty(t, s.Traces.ArithmeticOps())
	assert.Empty(t, s.Traces.LogicOps())
	assert.Empty(t, s.Traces.KeccakSpongeOps())

	// Memory is not restored.
	v := s.Memory.Get(witness.MemoryAddress{Segment: witness.SegmentStack, Virtual: 2})
	assert.Equal(t, uint64(3), v.Uint64())
}

func TestNestedCheckpoints(t *testing.T) {
	s := newTestState(t, types.Witness{})
	a := s.Checkpoint()

	s.Registers.ProgramCounter = 10
	s.RecordCpuRow(0x01)
	afterX := s.Registers
	b := s.Checkpoint()

	s.Registers.ProgramCounter = 20
	s.RecordCpuRow(0x02)
	s.RecordCpuRow(0x03)

	assert.Nil(t, s.Rollback(b))
	assert.Equal(t, afterX, s.Registers)
	assert.Equal(t, uint64(1), s.Clock())
	assert.Equal(t, "10", s.Traces.CpuRows()[0].ProgramCounter.String())

	assert.Nil(t, s.Rollback(a))
	assert.Equal(t, witness.RegistersState{}, s.Registers)
	assert.Equal(t, uint64(0), s.Clock())
}

func TestCheckpointMisuse(t *testing.T) {
	s := newTestState(t, types.Witness{})
	other := newTestState(t, types.Witness{})

	// Checkpoints of another state, or made up ones, are rejected.
	assert.True(t, errors.Is(s.Rollback(other.Checkpoint()), ErrForeignCheckpoint))
	assert.True(t, errors.Is(s.Rollback(GenerationStateCheckpoint{}), ErrForeignCheckpoint))

	// A checkpoint is single use.
	a := s.Checkpoint()
	s.RecordCpuRow(0x01)
	assert.Nil(t, s.Rollback(a))
	assert.True(t, errors.Is(s.Rollback(a), ErrCheckpointRevoked))

	// Rolling back an outer checkpoint revokes the inner one.
	outer := s.Checkpoint()
	s.RecordCpuRow(0x01)
	inner := s.Checkpoint()
	s.RecordCpuRow(0x02)
	assert.Nil(t, s.Rollback(outer))
	assert.True(t, errors.Is(s.Rollback(inner), ErrCheckpointRevoked))
	assert.Equal(t, uint64(0), s.Clock())

	// A checkpoint that succeeded and was dropped leaves its parent usable.
	parent := s.Checkpoint()
	s.RecordCpuRow(0x01)
	_ = s.Checkpoint()
	s.RecordCpuRow(0x02)
	sibling := s.Checkpoint()
	s.RecordCpuRow(0x03)
	assert.Nil(t, s.Rollback(sibling))
	assert.Equal(t, uint64(2), s.Clock())
	fresh := s.Checkpoint()
	s.RecordCpuRow(0x04)
	assert.Nil(t, s.Rollback(fresh))
	assert.Nil(t, s.Rollback(parent))
	assert.Equal(t, uint64(0), s.Clock())
	assert.True(t, errors.Is(s.Rollback(sibling), ErrCheckpointRevoked))
	assert.True(t, errors.Is(s.Rollback(fresh), ErrCheckpointRevoked))

	// The other state is unaffected.
	assert.Nil(t, other.Rollback(other.Checkpoint()))
}

func TestWitnessQueues(t *testing.T) {
	s := newTestState(t, types.Witness{
		MptProverInputs: words(11, 12, 13),
		RlpProverInputs: words(21),
	})
	assert.True(t, errors.Is(s.CheckDrained(), ErrWitnessQueueNotDrained))

	cp := s.Checkpoint()
	for _, expected := range []uint64{11, 12, 13} {
		v, err := s.PopMptProverInput()
		assert.Nil(t, err)
		assert.Equal(t, expected, v.Uint64())
	}
	// Rollback does not give values back.
	assert.Nil(t, s.Rollback(cp))
	for i := 0; i < 2; i++ {
		_, err := s.PopMptProverInput()
		assert.True(t, errors.Is(err, ErrWitnessQueueExhausted))
	}
	assert.True(t, errors.Is(s.CheckDrained(), ErrWitnessQueueNotDrained))
	_, err := s.Finish()
	assert.True(t, errors.Is(err, ErrWitnessQueueNotDrained))

	v, err := s.PopRlpProverInput()
	assert.Nil(t, err)
	assert.Equal(t, uint64(21), v.Uint64())
	_, err = s.PopRlpProverInput()
	assert.True(t, errors.Is(err, ErrWitnessQueueExhausted))

	traces, err := s.Finish()
	assert.Nil(t, err)
	assert.Equal(t, s.Traces, traces)
}

func TestObserveAddress(t *testing.T) {
	s := newTestState(t, types.Witness{})
	addr := common.HexToAddress("0x976EA74026E726554dB657fA54763abd0C3a0aa9")
	s.ObserveAddress(addr)
	s.ObserveAddress(addr)
	assert.Len(t, s.StateKeyToAddress, 1)
	assert.Equal(t, addr, s.StateKeyToAddress[crypto.Keccak256Hash(addr.Bytes())])
	assert.Equal(t, witness.RegistersState{}, s.Registers)
	assert.Equal(t, witness.TraceCheckpoint{}, s.Traces.Checkpoint())
}

func TestJumpTo(t *testing.T) {
	s := newTestState(t, types.Witness{})

	// Other destinations never peek, even with an empty stack.
	assert.Nil(t, s.JumpTo(3))
	assert.Equal(t, uint64(3), s.Registers.ProgramCounter)
	assert.Empty(t, s.StateKeyToAddress)

	err := s.JumpTo(testObserveLabel)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint64(testObserveLabel), s.Registers.ProgramCounter)
	assert.Empty(t, s.StateKeyToAddress)

	pushAll(t, s, 1)
	memOps := len(s.Traces.MemoryOps())
	assert.Nil(t, s.JumpTo(4))
	assert.Empty(t, s.StateKeyToAddress)
	assert.Nil(t, s.JumpTo(testObserveLabel))
	one := common.HexToAddress("0x01")
	assert.Equal(t, map[common.Hash]common.Address{crypto.Keccak256Hash(one.Bytes()): one}, s.StateKeyToAddress)
	// Peeking leaves the stack and the memory log as they are.
	assert.Equal(t, uint64(1), s.Registers.StackLen)
	assert.Len(t, s.Traces.MemoryOps(), memOps)

	// Only the low 160 bits are kept.
	wide, err := uint256.FromHex("0xffffffffffffffffffffffff976ea74026e726554db657fa54763abd0c3a0aa9")
	assert.Nil(t, err)
	assert.Nil(t, s.StackPush(*wide))
	assert.Nil(t, s.JumpTo(testObserveLabel))
	addr := common.HexToAddress("0x976EA74026E726554dB657fA54763abd0C3a0aa9")
	assert.Equal(t, addr, s.StateKeyToAddress[crypto.Keccak256Hash(addr.Bytes())])
	assert.Len(t, s.StateKeyToAddress, 2)
}

func TestStack(t *testing.T) {
	s := newTestState(t, types.Witness{})
	stack, err := s.Stack()
	assert.Nil(t, err)
	assert.Empty(t, stack)

	pushAll(t, s, 1, 2, 3)
	stack, err = s.Stack()
	assert.Nil(t, err)
	assert.Equal(t, words(3, 2, 1), stack)

	for i := uint64(4); i <= 15; i++ {
		pushAll(t, s, i)
	}
	stack, err = s.Stack()
	assert.Nil(t, err)
	assert.Equal(t, words(15, 14, 13, 12, 11, 10, 9, 8, 7, 6), stack)
	assert.Equal(t, uint64(15), s.Registers.StackLen)
}

func TestStackPushPop(t *testing.T) {
	s := newTestState(t, types.Witness{})
	s.RecordCpuRow(0x00)
	pushAll(t, s, 5, 6)
	ops := s.Traces.MemoryOps()
	assert.Len(t, ops, 2)
	assert.Equal(t, witness.MemoryOpWrite, ops[1].Kind)
	assert.Equal(t, uint64(1*witness.NumChannels+pushChannel), ops[1].Timestamp)
	assert.Equal(t, witness.MemoryAddress{Segment: witness.SegmentStack, Virtual: 1}, ops[1].Address)

	vals, err := s.StackPop(2)
	assert.Nil(t, err)
	assert.Equal(t, words(6, 5), vals)
	assert.Equal(t, uint64(0), s.Registers.StackLen)
	ops = s.Traces.MemoryOps()
	assert.Len(t, ops, 4)
	assert.Equal(t, witness.MemoryOpRead, ops[3].Kind)
	assert.Equal(t, uint64(1*witness.NumChannels+1), ops[3].Timestamp)

	_, err = s.StackPop(1)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	_, err = s.StackPeek(0)
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	v := s.MemReadWithLog(0, witness.MemoryAddress{Segment: witness.SegmentCode, Virtual: 0})
	assert.Equal(t, uint64(0x5b), v.Uint64())

	s.Registers.StackLen = MaxUserStackSize
	err = s.StackPush(uint256.Int{})
	assert.True(t, errors.Is(err, ErrStackOverflow))
	s.Registers.IsKernel = true
	assert.Nil(t, s.StackPush(uint256.Int{}))
}

func TestRecordCpuRow(t *testing.T) {
	s := newTestState(t, types.Witness{})
	s.Registers = witness.RegistersState{ProgramCounter: 12, IsKernel: true, StackLen: 3, Context: 2}
	s.RecordCpuRow(0x56)
	assert.Equal(t, uint64(1), s.Clock())
	row := s.Traces.CpuRows()[0]
	assert.True(t, row.Clock.IsZero())
	assert.Equal(t, "12", row.ProgramCounter.String())
	assert.Equal(t, "3", row.StackLen.String())
	assert.Equal(t, "2", row.Context.String())
	assert.True(t, row.IsKernel.IsOne())
	assert.Equal(t, "86", row.Opcode.String())
}

func TestNextTxn(t *testing.T) {
	s := newTestState(t, types.Witness{})
	assert.True(t, s.HasNextTxn())
	txn, err := s.NextTxn()
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x01}, txn)
	txn, err = s.NextTxn()
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x02, 0x03}, txn)
	assert.False(t, s.HasNextTxn())
	_, err = s.NextTxn()
	assert.True(t, errors.Is(err, ErrNoMoreTxns))
	assert.Equal(t, 2, s.NextTxnIndex)
}
