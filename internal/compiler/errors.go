package compiler

import (
	"errors"
	"fmt"
)

// UnexpectedWord is CompileError::UnexpectedWord (spec §7): a structural
// word (`;`, `]`) appeared where no matching `:`/`[` was open, or a word
// scan-value expected to yield a value instead named an ordinary,
// non-immediate word.
type UnexpectedWord string

func (w UnexpectedWord) Error() string { return fmt.Sprintf("unexpected word %q", string(w)) }

// UnterminatedBody is CompileError::UnterminatedDefinition/UnterminatedList
// (spec §7): source ended before the terminator closing a `:`/`[` block.
type UnterminatedBody string

func (t UnterminatedBody) Error() string {
	return fmt.Sprintf("unterminated block, expected %q", string(t))
}

// ErrUnexpectedEOF is raised when a name is expected (after `:`) but the
// source has already ended.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// ErrNoVM is raised when a macro needs to run at compile time but the
// Compiler was built without one (spec §4.6 assumes one is always
// present outside of literal-only test fixtures).
var ErrNoVM = errors.New("no machine available to run macro")

// ErrNoImporter is raised by `uses:` when the Compiler has no Importer
// configured (spec §4.7 -- internal/module.Loader normally supplies one).
var ErrNoImporter = errors.New("uses: requires a module importer")
