// Package compiler turns a stream of scanned tokens into compiled code in
// a shared Env (spec §4.4): literals become constants, plain words become
// Call, `:`/`;` finalize a user word, `[`/`]` compile an anonymous
// quotation, and immediate words (macros, spec §4.6) run right away with
// the compiler itself standing in as their code.Scanner.
package compiler

import (
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/logio"
	"github.com/tardi-lang/tardi/internal/value"
)

// Env is the shared compiled-code state a whole program (potentially many
// files, per internal/module) compiles into: one instruction stream, one
// constant pool, one op-table, and the name -> op-table-index dictionary
// spec §3.3/§4.4 assumes. VM is the machine used to execute immediate
// words at compile time (spec §4.6); it is nil-able so tests can compile
// without a VM as long as no macros run.
type Env struct {
	Stream    *code.Stream
	Constants *code.Constants
	Ops       *code.OpTable
	VM        code.Machine

	// Trace is the macro-expansion trace sink (nil by default); see
	// (*Compiler).runImmediate.
	Trace *logio.Trace

	Names map[string]int

	// pending holds names Predeclare hasn't seen a `:`/`MACRO:` for yet,
	// forward-referenced by ForwardRef (spec §4.4 point 4) at their
	// op-table index; pendingOrder preserves first-reference order for a
	// deterministic UnknownWord report.
	pending      map[string]int
	pendingOrder []string
}

// NewEnv builds an empty Env ready to compile into.
func NewEnv(vm code.Machine) *Env {
	return &Env{
		Stream:    &code.Stream{},
		Constants: &code.Constants{},
		Ops:       &code.OpTable{},
		VM:        vm,
		Names:     make(map[string]int),
	}
}

// Importer resolves a `uses:` module name to the exported names it makes
// visible (spec §4.7); internal/module.Loader implements this.
type Importer interface {
	Import(name string) (map[string]int, error)
}

// Reserve predeclares name at a fresh op-table slot, so a word's own body
// can call itself and forward references within the same file resolve
// (spec §4.4 "Predeclaration").
func (e *Env) Reserve(name string) int {
	idx := e.Ops.Reserve(name)
	e.Names[name] = idx
	return idx
}

// ForwardRef resolves name for a Call site that can't find it yet (spec
// §4.4 point 4): if name is already known (an earlier definition, native,
// or forward reference), its existing index is reused; otherwise a fresh
// op-table slot is reserved and recorded as pending, so a `:`/`MACRO:`
// later in the same file finalizes the very same slot instead of the
// call site landing on an orphaned duplicate. The op-table entry has no
// address yet -- Call reads through it by index, so it becomes callable
// the moment Predeclare's matching definition finalizes.
func (e *Env) ForwardRef(name string) int {
	if idx, ok := e.Names[name]; ok {
		return idx
	}
	idx := e.Reserve(name)
	if e.pending == nil {
		e.pending = make(map[string]int)
	}
	e.pending[name] = idx
	e.pendingOrder = append(e.pendingOrder, name)
	return idx
}

// Predeclare registers name at an op-table slot before its `:`/`MACRO:`
// body compiles. If an earlier ForwardRef already reserved a slot for
// name, that slot is reused (and cleared from pending) so every forward
// call site and the finished definition end up pointing at the same
// op-table entry; otherwise it behaves like Reserve.
func (e *Env) Predeclare(name string) int {
	if idx, ok := e.pending[name]; ok {
		delete(e.pending, name)
		return idx
	}
	return e.Reserve(name)
}

// PendingWords returns the names ForwardRef reserved that no `:`/
// `MACRO:` ever finalized, in first-referenced order -- spec §4.4 point
// 4's "if still unresolved, raise CompileError::UnknownWord", checked
// once a compile unit finishes reading (CompileAll).
func (e *Env) PendingWords() []string {
	var words []string
	for _, name := range e.pendingOrder {
		if _, ok := e.pending[name]; ok {
			words = append(words, name)
		}
	}
	return words
}

// Resolve looks a word up in the dictionary.
func (e *Env) Resolve(name string) (int, code.OpEntry, bool) {
	idx, ok := e.Names[name]
	if !ok {
		return 0, code.OpEntry{}, false
	}
	entry, ok := e.Ops.Get(idx)
	return idx, entry, ok
}

// AddNative registers a built-in, for internal/builtin's setup code.
func (e *Env) AddNative(name string, fn code.NativeFn) int {
	idx := e.Ops.AddNative(name, fn)
	e.Names[name] = idx
	return idx
}

// AddImmediateNative registers a built-in macro (spec §4.6).
func (e *Env) AddImmediateNative(name string, fn code.NativeFn) int {
	idx := e.AddNative(name, fn)
	e.Ops.SetImmediate(idx)
	return idx
}

// addConstLambda allocates a constant slot for a lambda entered at addr.
func (e *Env) addConstLambda(addr code.Addr, name, doc string) int {
	lm := value.NewLambdaData(addr)
	lm.Name = name
	lm.Doc = doc
	return e.Constants.Add(value.NewShared(value.NewLambda(lm)))
}
