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
	"fmt"

	"github.com/holiman/uint256"
)

// Segment identifies a region of a memory context.
type Segment uint8

const (
	SegmentCode Segment = iota
	SegmentStack
	SegmentMainMemory
	SegmentCalldata
	SegmentReturndata
	SegmentMetadata
	SegmentKernelGeneral
	SegmentTxnFields
	SegmentTxnData
	SegmentRlpRaw
	SegmentTrieData
	NumSegments
)

var segmentNames = [NumSegments]string{
	"code",
	"stack",
	"main_memory",
	"calldata",
	"returndata",
	"metadata",
	"kernel_general",
	"txn_fields",
	"txn_data",
	"rlp_raw",
	"trie_data",
}

// String returns the segment name.
func (s Segment) String() string {
	if s >= NumSegments {
		return fmt.Sprintf("segment(%d)", uint8(s))
	}
	return segmentNames[s]
}

// MemoryAddress locates one word of memory.
type MemoryAddress struct {
	Context uint64
	Segment Segment
	Virtual uint64
}

// String returns a human readable address.
func (a MemoryAddress) String() string {
	return fmt.Sprintf("%v/%v/%v", a.Context, a.Segment, a.Virtual)
}

// memoryContext is the memory of a single context.
type memoryContext struct {
	segments [NumSegments][]uint256.Int
}

// MemoryState is the word addressable memory of the running program.
// Cells never written read as zero.
type MemoryState struct {
	contexts []*memoryContext
}

// NewMemoryState creates a new memory with the kernel code loaded into the
// code segment of context 0, one byte per word.
func NewMemoryState(kernelCode []byte) *MemoryState {
	m := &MemoryState{
		contexts: []*memoryContext{{}},
	}
	code := make([]uint256.Int, len(kernelCode))
	for i, b := range kernelCode {
		code[i].SetUint64(uint64(b))
	}
	m.contexts[0].segments[SegmentCode] = code
	return m
}

// Get reads the word at given address.
func (m *MemoryState) Get(addr MemoryAddress) uint256.Int {
	if addr.Context >= uint64(len(m.contexts)) || addr.Segment >= NumSegments {
		return uint256.Int{}
	}
	seg := m.contexts[addr.Context].segments[addr.Segment]
	if addr.Virtual >= uint64(len(seg)) {
		return uint256.Int{}
	}
	return seg[addr.Virtual]
}

// Set writes the word at given address, growing the memory as needed.
func (m *MemoryState) Set(addr MemoryAddress, val uint256.Int) {
	if addr.Segment >= NumSegments {
		log.Panicf("invalid segment %v in address %v", uint8(addr.Segment), addr)
	}
	for addr.Context >= uint64(len(m.contexts)) {
		m.contexts = append(m.contexts, &memoryContext{})
	}
	ctx := m.contexts[addr.Context]
	seg := ctx.segments[addr.Segment]
	if addr.Virtual >= uint64(len(seg)) {
		grown := make([]uint256.Int, addr.Virtual+1)
		copy(grown, seg)
		seg = grown
	}
	seg[addr.Virtual] = val
	ctx.segments[addr.Segment] = seg
}

// NumContexts gets the number of contexts created so far.
func (m *MemoryState) NumContexts() int {
	return len(m.contexts)
}

// SegmentLen gets the number of words allocated in a segment.
func (m *MemoryState) SegmentLen(context uint64, segment Segment) int {
	if context >= uint64(len(m.contexts)) || segment >= NumSegments {
		return 0
	}
	return len(m.contexts[context].segments[segment])
}
