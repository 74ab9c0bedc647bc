package intcode

import (
	"fmt"
)

// maxCells is the largest int64 slice the runtime can allocate on 64-bit
// platforms.
const maxCells = 1 << 45

// Memory is a zero-initialised tape of integers that grows on demand.
// Any access at or beyond the current length resizes it to
// max(addr*2, addr+1) cells, capped at maxCells; existing cells are
// preserved. Addresses at or past maxCells are invalid.
type Memory struct {
	cells  []int64
	onGrow func(addr int64, from, to int)
}

// NewMemory creates a memory holding a copy of image.
func NewMemory(image []int64) *Memory {
	cells := make([]int64, len(image))
	copy(cells, image)
	return &Memory{cells: cells}
}

// Len returns the current tape length.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Cells returns a copy of the tape.
func (m *Memory) Cells() []int64 {
	out := make([]int64, len(m.cells))
	copy(out, m.cells)
	return out
}

// Read returns the value at addr, growing the tape if needed.
func (m *Memory) Read(addr int64) (int64, error) {
	if err := m.ensure(addr); err != nil {
		return 0, err
	}
	return m.cells[addr], nil
}

// Write stores x at addr, growing the tape if needed.
func (m *Memory) Write(addr int64, x int64) error {
	if err := m.ensure(addr); err != nil {
		return err
	}
	m.cells[addr] = x
	return nil
}

// ensure makes addr a valid index.
func (m *Memory) ensure(addr int64) error {
	if addr < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAddress, addr)
	}
	if addr < int64(len(m.cells)) {
		return nil
	}
	if addr >= maxCells {
		return fmt.Errorf("%w: %d exceeds memory limit", ErrInvalidAddress, addr)
	}

	from := len(m.cells)
	size := min(max(addr*2, addr+1), maxCells)
	grown := make([]int64, size)
	copy(grown, m.cells)
	m.cells = grown

	if m.onGrow != nil {
		m.onGrow(addr, from, len(grown))
	}
	return nil
}

// clone returns an independent copy without the growth hook.
func (m *Memory) clone() *Memory {
	return NewMemory(m.cells)
}
