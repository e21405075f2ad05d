package builtin

import (
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/value"
)

func binaryArith(name string, fn func(a, b value.Value) (value.Value, error)) code.NativeFn {
	return func(m code.Machine) error {
		a, b, err := pop2(m)
		if err != nil {
			return err
		}
		res, err := fn(a.Get(), b.Get())
		if err != nil {
			return err
		}
		return push(m, res)
	}
}

func binaryCompare(name string, fn func(a, b value.Value) (bool, error)) code.NativeFn {
	return func(m code.Machine) error {
		a, b, err := pop2(m)
		if err != nil {
			return err
		}
		res, err := fn(a.Get(), b.Get())
		if err != nil {
			return err
		}
		return push(m, value.NewBool(res))
	}
}

// installArith registers +, -, *, /, %, ==, !=, <, >, <=, >=, ! (spec
// §4.1).
func installArith(env *compiler.Env) {
	env.AddNative("+", binaryArith("+", value.Add))
	env.AddNative("-", binaryArith("-", value.Sub))
	env.AddNative("*", binaryArith("*", value.Mul))
	env.AddNative("/", binaryArith("/", value.Div))
	env.AddNative("%", binaryArith("%", value.Mod))

	env.AddNative("<", binaryCompare("<", value.Less))
	env.AddNative(">", binaryCompare(">", value.Greater))
	env.AddNative("<=", binaryCompare("<=", func(a, b value.Value) (bool, error) {
		gt, err := value.Greater(a, b)
		return !gt, err
	}))
	env.AddNative(">=", binaryCompare(">=", func(a, b value.Value) (bool, error) {
		lt, err := value.Less(a, b)
		return !lt, err
	}))
	env.AddNative("==", func(m code.Machine) error {
		a, b, err := pop2(m)
		if err != nil {
			return err
		}
		return push(m, value.NewBool(value.Equal(a.Get(), b.Get())))
	})
	env.AddNative("!=", func(m code.Machine) error {
		a, b, err := pop2(m)
		if err != nil {
			return err
		}
		return push(m, value.NewBool(!value.Equal(a.Get(), b.Get())))
	})
	env.AddNative("!", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		res, err := value.Not(s.Get())
		if err != nil {
			return err
		}
		return push(m, res)
	})
}
