package builtin

import (
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/value"
)

// installStack registers the VM-provided shuffle primitives (spec §4.5):
// dup swap rot drop clear stack-size >r r> r@. Everything deeper (over,
// nip, pick, tuck, 2dup, ...) is bootstrap-defined in terms of these.
func installStack(env *compiler.Env) {
	env.AddNative("dup", func(m code.Machine) error {
		s, err := m.Peek(0)
		if err != nil {
			return err
		}
		return m.Push(value.NewShared(s.Get()))
	})
	env.AddNative("swap", func(m code.Machine) error {
		a, b, err := pop2(m)
		if err != nil {
			return err
		}
		if err := m.Push(b); err != nil {
			return err
		}
		return m.Push(a)
	})
	env.AddNative("rot", func(m code.Machine) error {
		a, b, c, err := pop3(m)
		if err != nil {
			return err
		}
		if err := m.Push(b); err != nil {
			return err
		}
		if err := m.Push(c); err != nil {
			return err
		}
		return m.Push(a)
	})
	env.AddNative("drop", func(m code.Machine) error {
		_, err := m.Pop()
		return err
	})
	env.AddNative("clear", func(m code.Machine) error {
		m.ClearData()
		return nil
	})
	env.AddNative("stack-size", func(m code.Machine) error {
		return push(m, value.NewInt(int64(m.DataLen())))
	})
	env.AddNative(">r", func(m code.Machine) error {
		s, err := m.Pop()
		if err != nil {
			return err
		}
		return m.PushReturn(s)
	})
	env.AddNative("r>", func(m code.Machine) error {
		s, err := m.PopReturn()
		if err != nil {
			return err
		}
		return m.Push(s)
	})
	env.AddNative("r@", func(m code.Machine) error {
		s, err := m.PeekReturn(0)
		if err != nil {
			return err
		}
		return m.Push(value.NewShared(s.Get()))
	})
}
