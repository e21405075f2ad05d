package code

import "github.com/tardi-lang/tardi/internal/mem"

// Stream is the flat instruction stream (spec §3.3): a sequence of
// word-sized cells, opcodes interleaved with their inline operands. It
// is backed by internal/mem's growable cell store: append during
// compilation (Emit), then Stor at an already-written address once to
// backpatch a jump target (spec §4.4 "Finalizing a compilation frame",
// step 4).
type Stream struct {
	ints mem.Ints
	len  uint
}

// Addr indexes into a Stream (and doubles as spec §3.1's Address value).
type Addr = uint

// Len returns one past the highest cell written so far.
func (s *Stream) Len() Addr { return s.len }

// Emit appends val at the end of the stream, returning its address.
func (s *Stream) Emit(val int) Addr {
	addr := s.len
	if err := s.ints.Stor(addr, val); err != nil {
		panic(err) // addr == s.len, always the store's current end; never a hole
	}
	s.len++
	return addr
}

// EmitOp appends the opcode cell op alone, returning its address; any
// operand is appended separately with Emit.
func (s *Stream) EmitOp(op Op) Addr { return s.Emit(int(op)) }

// Patch overwrites the cell at addr -- used to backpatch jump targets.
// (A UserOp's address lives in the OpTable and is set by SetUser.)
func (s *Stream) Patch(addr Addr, val int) {
	if err := s.ints.Stor(addr, val); err != nil {
		panic(err)
	}
}

// Load reads a single cell.
func (s *Stream) Load(addr Addr) int {
	v, err := s.ints.Load(addr)
	if err != nil {
		panic(err)
	}
	return v
}
