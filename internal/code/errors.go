package code

import (
	"errors"
	"fmt"
)

// ErrBreak and ErrContinue are what the Break/Continue opcodes halt with.
// The nearest enclosing while/loop native word (internal/builtin)
// catches them via errors.Is; anywhere else they surface as a genuine
// VM error at Run's boundary (SPEC_FULL.md's Open Question Resolution
// #2). Defined here, not in internal/vm, so internal/builtin can catch
// them without importing the concrete VM package.
var (
	ErrBreak    = errors.New("break outside while/loop")
	ErrContinue = errors.New("continue outside while/loop")
)

// BadOpcode is VMError::BadOpcode (spec §7): the stream contained an
// opcode value the dispatch loop doesn't recognize.
type BadOpcode int

func (op BadOpcode) Error() string { return fmt.Sprintf("bad opcode %d", int(op)) }

// UnknownWord is CompileError::UnknownWord (spec §7): a word failed to
// resolve by the end of the compile unit (checked by CompileAll).
type UnknownWord string

func (w UnknownWord) Error() string { return fmt.Sprintf("unknown word %q", string(w)) }
