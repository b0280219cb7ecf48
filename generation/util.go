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
	"github.com/wcgcyx/tracegen/witness"
)

// MaxUserStackSize is the stack limit outside kernel mode.
const MaxUserStackSize = 1024

// pushChannel is the memory channel used for stack pushes.
const pushChannel = witness.NumChannels - 1

// Clock gets the current CPU cycle.
func (s *GenerationState[F]) Clock() uint64 {
	return s.Traces.Clock()
}

// RecordCpuRow appends a CPU row for the current registers and ends the cycle.
func (s *GenerationState[F]) RecordCpuRow(opcode byte) {
	s.Traces.PushCpu(witness.NewCpuRow[F](s.Traces.Clock(), s.Registers, opcode))
}

// MemReadWithLog reads memory and logs the read in the memory table.
func (s *GenerationState[F]) MemReadWithLog(channel int, addr witness.MemoryAddress) uint256.Int {
	val := s.Memory.Get(addr)
	s.Traces.PushMemory(witness.NewMemoryOp(channel, s.Traces.Clock(), addr, witness.MemoryOpRead, val))
	return val
}

// MemWriteWithLog writes memory and logs the write in the memory table.
func (s *GenerationState[F]) MemWriteWithLog(channel int, addr witness.MemoryAddress, val uint256.Int) {
	s.Memory.Set(addr, val)
	s.Traces.PushMemory(witness.NewMemoryOp(channel, s.Traces.Clock(), addr, witness.MemoryOpWrite, val))
}

// stackAddress gets the memory address of the i-th word from the bottom.
func (s *GenerationState[F]) stackAddress(i uint64) witness.MemoryAddress {
	return witness.MemoryAddress{
		Context: s.Registers.Context,
		Segment: witness.SegmentStack,
		Virtual: i,
	}
}

// StackPeek gets the i-th word from the top of the stack without logging.
func (s *GenerationState[F]) StackPeek(i uint64) (uint256.Int, error) {
	if i >= s.Registers.StackLen {
		return uint256.Int{}, fmt.Errorf("peek %v with stack of %v: %w", i, s.Registers.StackLen, ErrStackUnderflow)
	}
	return s.Memory.Get(s.stackAddress(s.Registers.StackLen - 1 - i)), nil
}

// StackPush pushes a word and logs the write.
func (s *GenerationState[F]) StackPush(val uint256.Int) error {
	if !s.Registers.IsKernel && s.Registers.StackLen >= MaxUserStackSize {
		return fmt.Errorf("push with stack of %v: %w", s.Registers.StackLen, ErrStackOverflow)
	}
	s.MemWriteWithLog(pushChannel, s.stackAddress(s.Registers.StackLen), val)
	s.Registers.StackLen++
	return nil
}

// StackPop pops n words, top first, logging one read per channel.
func (s *GenerationState[F]) StackPop(n int) ([]uint256.Int, error) {
	if n < 0 || n > pushChannel {
		log.Panicf("can not pop %v words in one cycle", n)
	}
	if uint64(n) > s.Registers.StackLen {
		return nil, fmt.Errorf("pop %v with stack of %v: %w", n, s.Registers.StackLen, ErrStackUnderflow)
	}
	res := make([]uint256.Int, n)
	for i := 0; i < n; i++ {
		res[i] = s.MemReadWithLog(i, s.stackAddress(s.Registers.StackLen-1-uint64(i)))
	}
	s.Registers.StackLen -= uint64(n)
	return res, nil
}
