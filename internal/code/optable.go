package code

import "github.com/tardi-lang/tardi/internal/value"

// Machine is the surface a native word needs from the VM. It is defined
// here (not in internal/vm) so that native words -- registered from
// internal/builtin -- and the op-table itself do not need to import the
// concrete VM type; *vm.VM implements this interface (spec §9: "the
// native/user union in the op-table maps cleanly to a sum type
// NativeFn(fn) | UserOp(Address). Keep dispatch a single indexed load").
type Machine interface {
	Push(*value.Shared) error
	Pop() (*value.Shared, error)
	Peek(depth int) (*value.Shared, error)
	PopN(n int) ([]*value.Shared, error)
	DataLen() int
	ClearData()

	PushReturn(*value.Shared) error
	PopReturn() (*value.Shared, error)
	PeekReturn(depth int) (*value.Shared, error)

	// Apply runs the lambda's code as a nested call, returning once it
	// returns to the point it was applied from (used by native words such
	// as if/when/while/map/each, and by the compiler to run a macro; the
	// CallStack/Apply opcodes do not go through it, spec §4.5).
	Apply(l *value.LambdaData) error

	IP() Addr
	SetIP(Addr)

	Halt(err error)

	// Scan exposes the scanner currently driving compilation, non-nil
	// only while a macro is executing (spec §4.6). Native scanning-hook
	// words (scan-value, scan-object-list, scan-word, push!) use it.
	Scan() Scanner

	// SetScan is called by the compiler around a macro's execution to
	// install (and later clear) the active Scanner (spec §4.6).
	SetScan(Scanner)
}

// Scanner is the subset of the scanner/compiler's macro-facing API a
// native scanning-hook word needs (spec §4.3, §4.6). Defined here to
// avoid a code<->scanner import cycle; *internal/compiler.Compiler
// satisfies it (internal/scanner.Scanner does not).
type Scanner interface {
	ScanValue() (value.Value, error)
	ScanObjectList(end string) (*value.VectorData, error)
	ScanWord() (string, error)
	PushPending(value.Value)

	// Describe looks up a word's captured `///` docstring by name
	// (SPEC_FULL.md supplement, backing the `see` native word).
	Describe(name string) (doc string, found bool)
}

// NativeFn is a built-in operation: it manipulates m's stacks, ip, and/or
// return stack directly.
type NativeFn func(m Machine) error

// OpEntry is the sum type an op-table slot holds: either a native
// function or a user-defined word's entry address (spec §3.3, §9).
type OpEntry struct {
	Native NativeFn // nil if this is a UserOp
	Addr   Addr
	IsUser bool

	Name      string
	Doc       string // captured `///` docstring, if any (SPEC_FULL.md supplement)
	Immediate bool   // macro: executed at compile time rather than emitted
}

// OpTable is the vector mapping an opcode index to an OpEntry (spec
// §3.3/§3.4). Predeclaration (spec §4.4) reserves a slot with a zero
// OpEntry before a function body is compiled, so recursive calls can
// resolve to it before it is finalized.
type OpTable struct {
	entries []OpEntry
}

// Reserve appends an empty slot (used by predeclaration) and returns its
// index.
func (t *OpTable) Reserve(name string) int {
	t.entries = append(t.entries, OpEntry{Name: name})
	return len(t.entries) - 1
}

// AddNative appends a native word and returns its index.
func (t *OpTable) AddNative(name string, fn NativeFn) int {
	t.entries = append(t.entries, OpEntry{Name: name, Native: fn})
	return len(t.entries) - 1
}

// SetUser finalizes a previously reserved slot to point at addr (spec
// §4.4 step 5).
func (t *OpTable) SetUser(index int, addr Addr) {
	e := t.entries[index]
	e.IsUser = true
	e.Addr = addr
	t.entries[index] = e
}

// SetImmediate marks index as a macro (spec §4.6).
func (t *OpTable) SetImmediate(index int) {
	e := t.entries[index]
	e.Immediate = true
	t.entries[index] = e
}

// SetDoc attaches a captured docstring to a finalized word (SPEC_FULL.md
// supplement to spec §4.6's macro list).
func (t *OpTable) SetDoc(index int, doc string) {
	e := t.entries[index]
	e.Doc = doc
	t.entries[index] = e
}

func (t *OpTable) Get(index int) (OpEntry, bool) {
	if index < 0 || index >= len(t.entries) {
		return OpEntry{}, false
	}
	return t.entries[index], true
}

func (t *OpTable) Len() int { return len(t.entries) }
