// Package mem implements the flat, integer-addressed store behind
// Tardi's compiler instruction stream (spec §3.3). The stream only ever
// appends at its current end (each Emit) or overwrites a cell it has
// already written (each Patch, backpatching a jump target) -- it never
// leaves an unwritten gap, so growth here is a plain slice append
// rather than gothird's original sparse page-table addressing, which
// existed to serve THIRD's randomly-addressed flat memory and has no
// use in a domain that never writes ahead of its own end.
package mem

import "fmt"

// Ints is a contiguous, append-mostly integer store.
type Ints struct {
	cells []int
}

// HoleError reports a Stor whose address lies past the current end of
// the store, which would leave an unwritten gap behind it.
type HoleError struct {
	Addr uint
	Have uint
}

func (e HoleError) Error() string {
	return fmt.Sprintf("stor @%v would leave a hole: only %v cells written", e.Addr, e.Have)
}

// Size returns one past the highest cell written so far.
func (m *Ints) Size() uint { return uint(len(m.cells)) }

// Load returns the value at addr, or 0 if addr hasn't been written yet.
func (m *Ints) Load(addr uint) (int, error) {
	if addr >= uint(len(m.cells)) {
		return 0, nil
	}
	return m.cells[addr], nil
}

// Stor writes values starting at addr, growing the store if they run
// past its current end. addr may be at most Size() -- Emit's
// append-at-end and Patch's in-place backpatch both satisfy that; any
// other caller trying to skip ahead gets a HoleError instead of a
// silently zero-filled gap.
func (m *Ints) Stor(addr uint, values ...int) error {
	if len(values) == 0 {
		return nil
	}
	if addr > uint(len(m.cells)) {
		return HoleError{Addr: addr, Have: uint(len(m.cells))}
	}
	if end := addr + uint(len(values)); end > uint(len(m.cells)) {
		grown := make([]int, end)
		copy(grown, m.cells)
		m.cells = grown
	}
	copy(m.cells[addr:addr+uint(len(values))], values)
	return nil
}
