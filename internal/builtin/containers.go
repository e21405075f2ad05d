package builtin

import (
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/value"
)

// installContainers registers Vector/Hashmap/String primitives (spec
// §3.1, §8.1's testable invariants #5, #6, #7).
func installContainers(env *compiler.Env) {
	env.AddNative("length", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		v := s.Get()
		switch v.Kind {
		case value.Vector:
			return push(m, value.NewInt(int64(v.VectorData().Len())))
		case value.String:
			return push(m, value.NewInt(int64(len([]rune(v.String())))))
		case value.Hashmap:
			return push(m, value.NewInt(int64(v.HashmapData().Len())))
		default:
			return value.TypeMismatch{Op: "length", Left: v.Kind, Right: value.Vector}
		}
	})

	// push! is overloaded (spec §4.6): while a macro is running it takes
	// a single value and feeds it back to the scanner's pending-values
	// queue, so the compiler picks it up as the next token; otherwise it
	// takes (item container -- container), matching spec §8.1's worked invariant
	// `v dup length swap push! length` -- the swap puts the item under
	// the container before the call.
	env.AddNative("push!", func(m code.Machine) error {
		if s := m.Scan(); s != nil {
			item, err := pop1(m)
			if err != nil {
				return err
			}
			s.PushPending(item.Get())
			return nil
		}
		item, container, err := pop2(m)
		if err != nil {
			return err
		}
		v := container.Get()
		if v.Kind != value.Vector {
			return value.TypeMismatch{Op: "push!", Left: v.Kind, Right: value.Vector}
		}
		v.VectorData().PushBack(item)
		return m.Push(container)
	})
	env.AddNative("pop!", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		v := s.Get()
		if v.Kind != value.Vector {
			return value.TypeMismatch{Op: "pop!", Left: v.Kind, Right: value.Vector}
		}
		item, err := v.VectorData().PopBack()
		if err != nil {
			return err
		}
		if err := m.Push(s); err != nil {
			return err
		}
		return m.Push(item)
	})
	env.AddNative("nth", func(m code.Machine) error {
		container, idx, err := pop2(m)
		if err != nil {
			return err
		}
		v := container.Get()
		if v.Kind != value.Vector {
			return value.TypeMismatch{Op: "nth", Left: v.Kind, Right: value.Vector}
		}
		item, err := v.VectorData().At(int(idx.Get().Int()))
		if err != nil {
			return err
		}
		return m.Push(value.NewShared(item.Get()))
	})
	env.AddNative("set-nth!", func(m code.Machine) error {
		container, idx, val, err := pop3(m)
		if err != nil {
			return err
		}
		v := container.Get()
		if v.Kind != value.Vector {
			return value.TypeMismatch{Op: "set-nth!", Left: v.Kind, Right: value.Vector}
		}
		cell, err := v.VectorData().At(int(idx.Get().Int()))
		if err != nil {
			return err
		}
		cell.Set(val.Get())
		return m.Push(container)
	})
	env.AddNative("concat", func(m code.Machine) error {
		a, b, err := pop2(m)
		if err != nil {
			return err
		}
		av, bv := a.Get(), b.Get()
		if av.Kind == value.String && bv.Kind == value.String {
			return push(m, value.NewString(av.String()+bv.String()))
		}
		if av.Kind == value.Vector && bv.Kind == value.Vector {
			out := av.VectorData().Clone()
			for _, it := range bv.VectorData().Items() {
				out.PushBack(value.NewShared(it.Get()))
			}
			return push(m, value.NewVector(out))
		}
		return value.TypeMismatch{Op: "concat", Left: av.Kind, Right: bv.Kind}
	})

	env.AddNative("map", func(m code.Machine) error {
		vecS, fnS, err := pop2(m)
		if err != nil {
			return err
		}
		vv := vecS.Get()
		if vv.Kind != value.Vector {
			return value.TypeMismatch{Op: "map", Left: vv.Kind, Right: value.Vector}
		}
		lm, err := requireLambda("map", fnS.Get())
		if err != nil {
			return err
		}
		out := value.NewVectorData()
		for _, it := range vv.VectorData().Items() {
			if err := m.Push(value.NewShared(it.Get())); err != nil {
				return err
			}
			if err := m.Apply(lm); err != nil {
				return err
			}
			res, err := m.Pop()
			if err != nil {
				return err
			}
			out.PushBack(res)
		}
		return push(m, value.NewVector(out))
	})
	env.AddNative("each", func(m code.Machine) error {
		vecS, fnS, err := pop2(m)
		if err != nil {
			return err
		}
		vv := vecS.Get()
		if vv.Kind != value.Vector {
			return value.TypeMismatch{Op: "each", Left: vv.Kind, Right: value.Vector}
		}
		lm, err := requireLambda("each", fnS.Get())
		if err != nil {
			return err
		}
		for _, it := range vv.VectorData().Items() {
			if err := m.Push(value.NewShared(it.Get())); err != nil {
				return err
			}
			if err := m.Apply(lm); err != nil {
				return err
			}
		}
		return nil
	})

	env.AddNative("set!", func(m code.Machine) error {
		keyS, valS, hmS, err := pop3(m)
		if err != nil {
			return err
		}
		hv := hmS.Get()
		if hv.Kind != value.Hashmap {
			return value.TypeMismatch{Op: "set!", Left: hv.Kind, Right: value.Hashmap}
		}
		if err := hv.HashmapData().Set(keyS.Get(), valS); err != nil {
			return err
		}
		return m.Push(hmS)
	})
	env.AddNative("get", func(m code.Machine) error {
		keyS, hmS, err := pop2(m)
		if err != nil {
			return err
		}
		hv := hmS.Get()
		if hv.Kind != value.Hashmap {
			return value.TypeMismatch{Op: "get", Left: hv.Kind, Right: value.Hashmap}
		}
		cell, ok, err := hv.HashmapData().Get(keyS.Get())
		if err != nil {
			return err
		}
		if !ok {
			if err := push(m, value.NewBool(false)); err != nil {
				return err
			}
			return push(m, value.NewBool(false))
		}
		if err := m.Push(value.NewShared(cell.Get())); err != nil {
			return err
		}
		return push(m, value.NewBool(true))
	})
	env.AddNative("delete!", func(m code.Machine) error {
		keyS, hmS, err := pop2(m)
		if err != nil {
			return err
		}
		hv := hmS.Get()
		if hv.Kind != value.Hashmap {
			return value.TypeMismatch{Op: "delete!", Left: hv.Kind, Right: value.Hashmap}
		}
		_, err = hv.HashmapData().Delete(keyS.Get())
		return err
	})
}
