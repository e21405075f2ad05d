package value

// Equal implements Tardi's `==`: structural equality on the contained
// Value, not identity on the Shared cell (spec §3.1: "Equality on
// SharedValue is by contained value (structural), not by identity").
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		// numeric promotion applies to arithmetic, not equality: an Int
		// and a Float compare unequal even at the same magnitude, since
		// they are different Kinds -- consistent with spec §4.1 scoping
		// promotion to "primitive operations", not comparison identity.
		return false
	}
	switch a.Kind {
	case Int:
		return a.i == b.i
	case Float:
		return a.f == b.f
	case Bool:
		return a.b == b.b
	case Char:
		return a.r == b.r
	case String:
		return a.s == b.s
	case Address:
		return a.i == b.i
	case Vector:
		return equalVectors(a.vec, b.vec)
	case Hashmap:
		return equalHashmaps(a.hm, b.hm)
	case Lambda:
		return a.lm == b.lm
	case Writer:
		return a.wr == b.wr
	case Reader:
		return a.rd == b.rd
	case Error:
		return a.err == b.err
	default:
		return false
	}
}

func equalVectors(a, b *VectorData) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || len(a.items) != len(b.items) {
		return false
	}
	for i, s := range a.items {
		if !Equal(s.Get(), b.items[i].Get()) {
			return false
		}
	}
	return true
}

func equalHashmaps(a, b *HashmapData) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || len(a.m) != len(b.m) {
		return false
	}
	for k, ea := range a.m {
		eb, ok := b.m[k]
		if !ok || !Equal(ea.value.Get(), eb.value.Get()) {
			return false
		}
	}
	return true
}
