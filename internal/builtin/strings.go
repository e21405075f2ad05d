package builtin

import (
	"strings"

	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/value"
)

// installStrings registers the String primitives beyond length/concat
// (already in containers.go alongside their Vector counterparts): the
// substring/case/split family, wrapping strings (stdlib) -- there is no
// third-party string-manipulation library anywhere in the retrieval
// pack, and Go's strings package is the uncontested standard choice for
// byte/rune-level text operations like these.
func installStrings(env *compiler.Env) {
	env.AddNative("char-at", func(m code.Machine) error {
		s, idxS, err := pop2(m)
		if err != nil {
			return err
		}
		if s.Get().Kind != value.String {
			return value.TypeMismatch{Op: "char-at", Left: s.Get().Kind, Right: value.String}
		}
		runes := []rune(s.Get().String())
		i := int(idxS.Get().Int())
		if i < 0 || i >= len(runes) {
			return value.IndexOutOfBounds{Index: i, Len: len(runes)}
		}
		return push(m, value.NewChar(runes[i]))
	})

	env.AddNative("substring", func(m code.Machine) error {
		s, startS, endS, err := pop3(m)
		if err != nil {
			return err
		}
		if s.Get().Kind != value.String {
			return value.TypeMismatch{Op: "substring", Left: s.Get().Kind, Right: value.String}
		}
		runes := []rune(s.Get().String())
		start, end := int(startS.Get().Int()), int(endS.Get().Int())
		if start < 0 || end > len(runes) || start > end {
			return value.IndexOutOfBounds{Index: start, Len: len(runes)}
		}
		return push(m, value.NewString(string(runes[start:end])))
	})

	env.AddNative("upper", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		return push(m, value.NewString(strings.ToUpper(s.Get().String())))
	})

	env.AddNative("lower", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		return push(m, value.NewString(strings.ToLower(s.Get().String())))
	})

	env.AddNative("split", func(m code.Machine) error {
		s, sepS, err := pop2(m)
		if err != nil {
			return err
		}
		parts := strings.Split(s.Get().String(), sepS.Get().String())
		vec := value.NewVectorData()
		for _, p := range parts {
			vec.PushBack(value.NewShared(value.NewString(p)))
		}
		return push(m, value.NewVector(vec))
	})

	env.AddNative("trim", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		return push(m, value.NewString(strings.TrimSpace(s.Get().String())))
	})
}
