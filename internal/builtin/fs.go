package builtin

import (
	"os"

	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/value"
)

// installFS registers the filesystem primitives (spec §2 item 8): these
// wrap os directly (stdlib) rather than a third-party fs abstraction --
// Stat/Remove/Mkdir/ReadDir are one-shot syscalls with nothing for a
// library like afero to add when there's no test-fake filesystem need
// here, and none of the pack's example repos pull one in.
func installFS(env *compiler.Env) {
	env.AddNative("file-exists?", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		_, statErr := os.Stat(s.Get().String())
		return push(m, value.NewBool(statErr == nil))
	})

	env.AddNative("delete-file!", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		return os.Remove(s.Get().String())
	})

	env.AddNative("make-dir!", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		return os.MkdirAll(s.Get().String(), 0o755)
	})

	env.AddNative("list-dir", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		entries, err := os.ReadDir(s.Get().String())
		if err != nil {
			return err
		}
		vec := value.NewVectorData()
		for _, e := range entries {
			vec.PushBack(value.NewShared(value.NewString(e.Name())))
		}
		return push(m, value.NewVector(vec))
	})

	env.AddNative("file-size", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		info, statErr := os.Stat(s.Get().String())
		if statErr != nil {
			return statErr
		}
		return push(m, value.NewInt(info.Size()))
	})
}
