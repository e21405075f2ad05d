package builtin

import (
	"errors"

	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
)

// installControl registers if/when/while (spec §4.5's "Conditional and
// loop words"): all three apply Lambda operands via code.Machine.Apply,
// reusing the VM's own dispatch loop rather than compiling branches.
func installControl(env *compiler.Env) {
	env.AddNative("if", func(m code.Machine) error {
		cond, t, f, err := pop3(m)
		if err != nil {
			return err
		}
		b, err := requireBool("if", cond.Get())
		if err != nil {
			return err
		}
		branch := f
		if b {
			branch = t
		}
		lm, err := requireLambda("if", branch.Get())
		if err != nil {
			return err
		}
		return m.Apply(lm)
	})

	env.AddNative("when", func(m code.Machine) error {
		cond, body, err := pop2(m)
		if err != nil {
			return err
		}
		b, err := requireBool("when", cond.Get())
		if err != nil {
			return err
		}
		if !b {
			return nil
		}
		lm, err := requireLambda("when", body.Get())
		if err != nil {
			return err
		}
		return m.Apply(lm)
	})

	env.AddNative("while", func(m code.Machine) error {
		predS, bodyS, err := pop2(m)
		if err != nil {
			return err
		}
		pred, err := requireLambda("while", predS.Get())
		if err != nil {
			return err
		}
		body, err := requireLambda("while", bodyS.Get())
		if err != nil {
			return err
		}
		for {
			if err := m.Apply(pred); err != nil {
				return err
			}
			condS, err := m.Pop()
			if err != nil {
				return err
			}
			cont, err := requireBool("while", condS.Get())
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
			if err := m.Apply(body); err != nil {
				if errors.Is(err, code.ErrBreak) {
					return nil
				}
				if errors.Is(err, code.ErrContinue) {
					continue
				}
				return err
			}
		}
	})
}
