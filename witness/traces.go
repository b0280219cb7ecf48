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
	"errors"
	"fmt"

	logging "github.com/ipfs/go-log"
	"github.com/wcgcyx/tracegen/field"
)

var log = logging.Logger("witness")

// ErrTraceCheckpointAhead is returned when rolling back to a marker beyond
// the current end of a table.
var ErrTraceCheckpointAhead = errors.New("trace checkpoint ahead of trace log")

// TraceCheckpoint marks the length of every trace table.
type TraceCheckpoint struct {
	Arithmetic   int
	Cpu          int
	Logic        int
	Memory       int
	Keccak       int
	KeccakSponge int
}

// Traces is the append-only trace log of a generation run.
// The external interpreter fills the arithmetic, logic and keccak tables;
// the generation state records cpu and memory rows itself.
type Traces[F field.Element[F]] struct {
	arithmeticOps   []ArithmeticOp
	cpuRows         []CpuRow[F]
	logicOps        []LogicOp
	memoryOps       []MemoryOp
	keccakInputs    []KeccakState
	keccakSpongeOps []KeccakSpongeOp
}

// NewTraces creates an empty trace log.
func NewTraces[F field.Element[F]]() *Traces[F] {
	return &Traces[F]{}
}

// PushArithmetic appends an arithmetic op.
func (t *Traces[F]) PushArithmetic(op ArithmeticOp) {
	t.arithmeticOps = append(t.arithmeticOps, op)
}

// PushCpu appends a CPU row.
func (t *Traces[F]) PushCpu(row CpuRow[F]) {
	t.cpuRows = append(t.cpuRows, row)
}

// PushLogic appends a logic op.
func (t *Traces[F]) PushLogic(op LogicOp) {
	t.logicOps = append(t.logicOps, op)
}

// PushMemory appends a memory op.
func (t *Traces[F]) PushMemory(op MemoryOp) {
	t.memoryOps = append(t.memoryOps, op)
}

// PushKeccak appends a keccak permutation input.
func (t *Traces[F]) PushKeccak(state KeccakState) {
	t.keccakInputs = append(t.keccakInputs, state)
}

// PushKeccakSponge appends a sponge op.
func (t *Traces[F]) PushKeccakSponge(op KeccakSpongeOp) {
	t.keccakSpongeOps = append(t.keccakSpongeOps, op)
}

// Clock gets the current CPU cycle, which is the number of CPU rows.
func (t *Traces[F]) Clock() uint64 {
	return uint64(len(t.cpuRows))
}

// Checkpoint returns the current length of every table.
func (t *Traces[F]) Checkpoint() TraceCheckpoint {
	return TraceCheckpoint{
		Arithmetic:   len(t.arithmeticOps),
		Cpu:          len(t.cpuRows),
		Logic:        len(t.logicOps),
		Memory:       len(t.memoryOps),
		Keccak:       len(t.keccakInputs),
		KeccakSponge: len(t.keccakSpongeOps),
	}
}

// Rollback truncates every table to the given checkpoint.
// Nothing is truncated if any marker is beyond its table.
func (t *Traces[F]) Rollback(cp TraceCheckpoint) error {
	cur := t.Checkpoint()
	if cp.Arithmetic > cur.Arithmetic || cp.Cpu > cur.Cpu || cp.Logic > cur.Logic ||
		cp.Memory > cur.Memory || cp.Keccak > cur.Keccak || cp.KeccakSponge > cur.KeccakSponge {
		return fmt.Errorf("rollback to %+v with log at %+v: %w", cp, cur, ErrTraceCheckpointAhead)
	}
	if cp.Arithmetic < 0 || cp.Cpu < 0 || cp.Logic < 0 || cp.Memory < 0 || cp.Keccak < 0 || cp.KeccakSponge < 0 {
		return fmt.Errorf("rollback to negative marker %+v: %w", cp, ErrTraceCheckpointAhead)
	}
	t.arithmeticOps = truncate(t.arithmeticOps, cp.Arithmetic)
	t.cpuRows = truncate(t.cpuRows, cp.Cpu)
	t.logicOps = truncate(t.logicOps, cp.Logic)
	t.memoryOps = truncate(t.memoryOps, cp.Memory)
	t.keccakInputs = truncate(t.keccakInputs, cp.Keccak)
	t.keccakSpongeOps = truncate(t.keccakSpongeOps, cp.KeccakSponge)
	return nil
}

// truncate drops the tail of s, zeroing it so discarded rows can be collected.
func truncate[T any](s []T, n int) []T {
	clear(s[n:])
	return s[:n]
}

// ArithmeticOps gets the arithmetic table.
func (t *Traces[F]) ArithmeticOps() []ArithmeticOp {
	return t.arithmeticOps
}

// CpuRows gets the CPU table.
func (t *Traces[F]) CpuRows() []CpuRow[F] {
	return t.cpuRows
}

// LogicOps gets the logic table.
func (t *Traces[F]) LogicOps() []LogicOp {
	return t.logicOps
}

// MemoryOps gets the memory table.
func (t *Traces[F]) MemoryOps() []MemoryOp {
	return t.memoryOps
}

// KeccakInputs gets the keccak permutation inputs.
func (t *Traces[F]) KeccakInputs() []KeccakState {
	return t.keccakInputs
}

// KeccakSpongeOps gets the sponge table.
func (t *Traces[F]) KeccakSpongeOps() []KeccakSpongeOp {
	return t.keccakSpongeOps
}
