// Package builtin implements Tardi's native words (spec §4.1, §4.5, §6):
// arithmetic, comparison, stack shuffles, conditional/loop control, I/O,
// filesystem, string/vector/hashmap primitives, and the scanning-hook
// words macros use. Every function here has the shape code.NativeFn --
// it only depends on internal/code and internal/value, never on the
// concrete VM or scanner types, so it can be registered against any
// code.Machine (spec §9's "keep dispatch a single indexed load").
package builtin

import (
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/value"
)

// pop1 pops a single Shared, or the machine's underflow error.
func pop1(m code.Machine) (*value.Shared, error) { return m.Pop() }

// pop2 pops two Sharded values, returning them in push order (a was
// pushed first, b last -- i.e. b is the top of stack).
func pop2(m code.Machine) (a, b *value.Shared, err error) {
	items, err := m.PopN(2)
	if err != nil {
		return nil, nil, err
	}
	return items[0], items[1], nil
}

func pop3(m code.Machine) (a, b, c *value.Shared, err error) {
	items, err := m.PopN(3)
	if err != nil {
		return nil, nil, nil, err
	}
	return items[0], items[1], items[2], nil
}

func push(m code.Machine, v value.Value) error {
	return m.Push(value.NewShared(v))
}

// requireBool implements spec §4.1's strict boolean coercion: only Bool
// may be passed where a condition is expected.
func requireBool(op string, v value.Value) (bool, error) {
	if v.Kind != value.Bool {
		return false, value.TypeMismatch{Op: op, Left: v.Kind, Right: value.Bool}
	}
	return v.Bool(), nil
}

// requireLambda implements the same strict-kind check for the value
// arguments if/when/while and map/each take.
func requireLambda(op string, v value.Value) (*value.LambdaData, error) {
	if v.Kind != value.Lambda {
		return nil, value.TypeMismatch{Op: op, Left: v.Kind, Right: value.Lambda}
	}
	return v.LambdaData(), nil
}
