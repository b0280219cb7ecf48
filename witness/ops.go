package witness

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
	"github.com/holiman/uint256"
	"github.com/wcgcyx/tracegen/field"
)

// NumChannels is the number of memory channels available to one CPU row.
const NumChannels = 4

// MemoryOpKind is the direction of a memory operation.
type MemoryOpKind uint8

const (
	MemoryOpRead MemoryOpKind = iota
	MemoryOpWrite
)

// String returns the kind name.
func (k MemoryOpKind) String() string {
	if k == MemoryOpWrite {
		return "write"
	}
	return "read"
}

// MemoryOp is one row of the memory table.
type MemoryOp struct {
	// Filter is false for padding rows.
	Filter    bool
	Timestamp uint64
	Address   MemoryAddress
	Kind      MemoryOpKind
	Value     uint256.Int
}

// NewMemoryOp creates a memory op at the timestamp of given channel in given
// clock cycle.
func NewMemoryOp(channel int, clock uint64, addr MemoryAddress, kind MemoryOpKind, val uint256.Int) MemoryOp {
	if channel < 0 || channel >= NumChannels {
		log.Panicf("invalid memory channel %v", channel)
	}
	return MemoryOp{
		Filter:    true,
		Timestamp: clock*NumChannels + uint64(channel),
		Address:   addr,
		Kind:      kind,
		Value:     val,
	}
}

// ArithmeticOp is one row of the arithmetic table.
type ArithmeticOp struct {
	Operator string
	Input0   uint256.Int
	Input1   uint256.Int
	Input2   uint256.Int
	Result   uint256.Int
}

// LogicOp is one row of the logic table.
type LogicOp struct {
	Operator string
	Input0   uint256.Int
	Input1   uint256.Int
	Result   uint256.Int
}

// KeccakSpongeOp is one sponge invocation over a memory range.
type KeccakSpongeOp struct {
	BaseAddress MemoryAddress
	Timestamp   uint64
	Input       []byte
}

// KeccakState is the keccak-f permutation input, as 25 lanes.
type KeccakState [25]uint64

// CpuRow is one row of the CPU table, with every column in the field.
type CpuRow[F field.Element[F]] struct {
	Clock          F
	ProgramCounter F
	StackLen       F
	Context        F
	IsKernel       F
	Opcode         F
}

// NewCpuRow builds a CPU row from the registers at given clock.
func NewCpuRow[F field.Element[F]](clock uint64, regs RegistersState, opcode byte) CpuRow[F] {
	return CpuRow[F]{
		Clock:          field.Uint64[F](clock),
		ProgramCounter: field.Uint64[F](regs.ProgramCounter),
		StackLen:       field.Uint64[F](regs.StackLen),
		Context:        field.Uint64[F](regs.Context),
		IsKernel:       field.Bool[F](regs.IsKernel),
		Opcode:         field.Uint64[F](uint64(opcode)),
	}
}
