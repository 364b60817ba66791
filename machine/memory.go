package machine

import (
	"math"
	"slices"
)

// MEMORY_CELLS_MAX is the most cells an unlimited memory can grow to.
const MEMORY_CELLS_MAX = int64(1) << 45

// Memory is the machine's linear, growable store of integers.
//
// Any access to an address beyond the current length grows the memory to
// include it, filling the new cells with zero. This applies to reads as
// well as writes.
type Memory struct {
	Limit int     // Maximum number of cells, or 0 for unlimited.
	Data  []int64 // Memory cells.
}

// Len returns the current number of cells.
func (mem *Memory) Len() int {
	return len(mem.Data)
}

// Verify checks that addr is a valid address, growing the memory to include
// it if necessary, and returns it as an index.
func (mem *Memory) Verify(addr int64) (index int, err error) {
	if addr < 0 {
		err = ErrNegativeAddress
		return
	}

	if mem.Limit > 0 && addr >= int64(mem.Limit) {
		err = ErrMemoryLimit
		return
	}

	if addr >= MEMORY_CELLS_MAX || addr >= math.MaxInt {
		err = ErrMemoryLimit
		return
	}

	index = int(addr)
	if index >= len(mem.Data) {
		grow := index + 1 - len(mem.Data)
		mem.Data = append(slices.Grow(mem.Data, grow), make([]int64, grow)...)
	}

	return
}

// Read returns the value at addr.
func (mem *Memory) Read(addr int64) (value int64, err error) {
	index, err := mem.Verify(addr)
	if err != nil {
		return
	}

	value = mem.Data[index]
	return
}

// Write stores value at addr.
func (mem *Memory) Write(addr int64, value int64) (err error) {
	index, err := mem.Verify(addr)
	if err != nil {
		return
	}

	mem.Data[index] = value
	return
}

// Load replaces the memory contents with a copy of tape.
func (mem *Memory) Load(tape []int64) {
	mem.Data = slices.Clone(tape)
}

// truncate shrinks the memory back to size cells.
func (mem *Memory) truncate(size int) {
	if size < len(mem.Data) {
		mem.Data = mem.Data[:size]
	}
}
