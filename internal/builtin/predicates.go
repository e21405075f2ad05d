package builtin

import (
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/value"
)

// installPredicates registers the Kind-testing words dynamically-typed
// code needs to branch on a value's shape (spec §1's "no static type
// checking" makes these the only way user code narrows a Kind).
func installPredicates(env *compiler.Env) {
	kinds := map[string]value.Kind{
		"int?":     value.Int,
		"float?":   value.Float,
		"bool?":    value.Bool,
		"char?":    value.Char,
		"string?":  value.String,
		"vector?":  value.Vector,
		"hashmap?": value.Hashmap,
		"lambda?":  value.Lambda,
		"writer?":  value.Writer,
		"reader?":  value.Reader,
		"error?":   value.Error,
	}
	for name, k := range kinds {
		kind := k
		env.AddNative(name, func(m code.Machine) error {
			s, err := pop1(m)
			if err != nil {
				return err
			}
			return push(m, value.NewBool(s.Get().Kind == kind))
		})
	}
}
