package builtin

import (
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/value"
)

// installMacros registers the two canonical container-literal macros
// (spec §4.6): `{ ... }` and `H{ ... }`. `[ ... ]` and `: ... ;` are
// compiler special forms (internal/compiler); `///` doc capture happens
// inside the scanner itself and needs no native word.
func installMacros(env *compiler.Env) {
	env.AddImmediateNative("{", func(m code.Machine) error {
		s := m.Scan()
		if s == nil {
			return noScannerErr("{")
		}
		vec, err := s.ScanObjectList("}")
		if err != nil {
			return err
		}
		return push(m, value.NewVector(vec))
	})

	env.AddImmediateNative("H{", func(m code.Machine) error {
		s := m.Scan()
		if s == nil {
			return noScannerErr("H{")
		}
		vec, err := s.ScanObjectList("}")
		if err != nil {
			return err
		}
		hm := value.NewHashmapData()
		for _, item := range vec.Items() {
			pair := item.Get()
			if pair.Kind != value.Vector || pair.VectorData().Len() != 2 {
				return value.TypeMismatch{Op: "H{", Left: pair.Kind, Right: value.Vector}
			}
			k, err := pair.VectorData().At(0)
			if err != nil {
				return err
			}
			v, err := pair.VectorData().At(1)
			if err != nil {
				return err
			}
			if err := hm.Set(k.Get(), v); err != nil {
				return err
			}
		}
		return push(m, value.NewHashmap(hm))
	})
}
