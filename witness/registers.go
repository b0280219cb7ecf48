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

// RegistersState is the interpreter control registers.
// It is copied by value when taking a checkpoint, so it must stay free of
// pointers and slices.
type RegistersState struct {
	// The program counter
	ProgramCounter uint64

	// Flag indicating if the interpreter runs in kernel mode
	IsKernel bool

	// Number of words on the value stack of the current context
	StackLen uint64

	// The current memory context
	Context uint64

	// Gas used so far
	GasUsed uint64
}
