package vm

import (
	"slices"
)

const (
	HEADROOM     = 10000   // Zero cells appended to a program image on load.
	MEMORY_LIMIT = 1 << 28 // Largest tape a write may grow, in cells.
)

// Memory is the growable tape of an Intcode machine.
//
// Cells past the end of the tape read as zero without allocating, and a
// write past the end extends the tape with zero cells up to the written
// address. Both behave as if the tape were infinitely long and zero filled.
type Memory []int64

// NewMemory copies a program image and appends headroom zero cells.
func NewMemory(image []int64, headroom int) (mem Memory) {
	mem = make(Memory, len(image), len(image)+headroom)
	copy(mem, image)
	mem = mem[:len(image)+headroom]

	return
}

// Len returns the current length of the tape.
func (mem Memory) Len() int {
	return len(mem)
}

// Read the cell at address.
func (mem Memory) Read(address int64) (value int64, err error) {
	if address < 0 {
		err = ErrAddress(address)
		return
	}

	if address < int64(len(mem)) {
		value = mem[address]
	}

	return
}

// Write value to the cell at address, growing the tape as needed.
func (mem *Memory) Write(value int64, address int64) (err error) {
	if address < 0 {
		err = ErrAddress(address)
		return
	}

	if address >= MEMORY_LIMIT {
		err = ErrLimit(address)
		return
	}

	if address >= int64(len(*mem)) {
		*mem = append(*mem, make([]int64, int(address)+1-len(*mem))...)
	}

	(*mem)[address] = value

	return
}

// Clone returns an independent copy of the tape.
func (mem Memory) Clone() Memory {
	return slices.Clone(mem)
}
