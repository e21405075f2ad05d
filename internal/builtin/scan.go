package builtin

import (
	"fmt"

	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/value"
)

// noScannerErr reports a scanning-hook word invoked outside macro
// execution, when Machine.Scan() has nothing installed (spec §4.6:
// these words only make sense while a macro is running).
type noScannerErr string

func (e noScannerErr) Error() string { return string(e) + " called outside a running macro" }

// installScan registers the native scanning hooks macros use to consume
// more input mid-compilation (spec §4.3, §4.6): scan-value,
// scan-object-list, scan-word. push! (the pending-queue half of its
// overload) lives in containers.go next to its vector counterpart.
func installScan(env *compiler.Env) {
	env.AddNative("scan-value", func(m code.Machine) error {
		s := m.Scan()
		if s == nil {
			return noScannerErr("scan-value")
		}
		v, err := s.ScanValue()
		if err != nil {
			return err
		}
		return push(m, v)
	})

	env.AddNative("scan-object-list", func(m code.Machine) error {
		s := m.Scan()
		if s == nil {
			return noScannerErr("scan-object-list")
		}
		endS, err := pop1(m)
		if err != nil {
			return err
		}
		end := endS.Get().String()
		vec, err := s.ScanObjectList(end)
		if err != nil {
			return err
		}
		return push(m, value.NewVector(vec))
	})

	env.AddNative("scan-word", func(m code.Machine) error {
		s := m.Scan()
		if s == nil {
			return noScannerErr("scan-word")
		}
		w, err := s.ScanWord()
		if err != nil {
			return err
		}
		return push(m, value.NewString(w))
	})

	// DEFINED? NAME pushes #t/#f for whether NAME currently resolves,
	// checked at compile time via the compiler's own word resolution
	// (Env.Resolve, reached through Describe).
	env.AddImmediateNative("DEFINED?", func(m code.Machine) error {
		s := m.Scan()
		if s == nil {
			return noScannerErr("DEFINED?")
		}
		name, err := s.ScanWord()
		if err != nil {
			return err
		}
		_, found := s.Describe(name)
		return push(m, value.NewBool(found))
	})

	// see NAME prints NAME's captured `///` docstring (SPEC_FULL.md
	// supplement), reading the word raw the same way `:` reads a
	// definition's name.
	env.AddImmediateNative("see", func(m code.Machine) error {
		s := m.Scan()
		if s == nil {
			return noScannerErr("see")
		}
		name, err := s.ScanWord()
		if err != nil {
			return err
		}
		doc, found := s.Describe(name)
		if !found {
			return code.UnknownWord(name)
		}
		if doc == "" {
			doc = "(no documentation)"
		}
		fmt.Printf("%s: %s\n", name, doc)
		return nil
	})
}
