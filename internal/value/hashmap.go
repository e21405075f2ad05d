package value

// HashmapData backs a Hashmap value: Value keys (restricted to hashable
// scalar kinds) mapping to Shared values (spec §3.1). Iteration order is
// unspecified, matching spec §3.1 and §6.
type HashmapData struct {
	m map[mapKey]entry
}

type entry struct {
	key   Value
	value *Shared
}

// mapKey is the hashable projection of a Value usable as a map key:
// strings, integers, booleans, and characters (spec §3.1's key set).
type mapKey struct {
	kind Kind
	i    int64
	r    rune
	b    bool
	s    string
}

// Vectors and Hashmaps are rejected as hashmap keys at insertion, raised
// as VMError::TypeMismatch (spec §9's "safest is to reject them at
// insertion" resolution, SPEC_FULL.md Open Question #3).

func keyOf(v Value) (mapKey, error) {
	switch v.Kind {
	case Int:
		return mapKey{kind: Int, i: v.i}, nil
	case Bool:
		return mapKey{kind: Bool, b: v.b}, nil
	case Char:
		return mapKey{kind: Char, r: v.r}, nil
	case String:
		return mapKey{kind: String, s: v.s}, nil
	default:
		// TypeMismatch.Right names one expected kind; String stands in for
		// the whole hashable set (Int, Bool, Char, String).
		return mapKey{}, TypeMismatch{Op: "hashmap key", Left: v.Kind, Right: String}
	}
}

// NewHashmapData builds an empty hashmap.
func NewHashmapData() *HashmapData { return &HashmapData{m: make(map[mapKey]entry)} }

func (h *HashmapData) Len() int { return len(h.m) }

// Set inserts or overwrites key -> val.
func (h *HashmapData) Set(key Value, val *Shared) error {
	k, err := keyOf(key)
	if err != nil {
		return err
	}
	if h.m == nil {
		h.m = make(map[mapKey]entry)
	}
	h.m[k] = entry{key: key, value: val}
	return nil
}

// Get looks up key, reporting found via the second return per spec §8.1
// invariant 7 ("k hm get yields v #t").
func (h *HashmapData) Get(key Value) (*Shared, bool, error) {
	k, err := keyOf(key)
	if err != nil {
		return nil, false, err
	}
	e, ok := h.m[k]
	if !ok {
		return nil, false, nil
	}
	return e.value, true, nil
}

// Delete removes key, reporting whether it was present.
func (h *HashmapData) Delete(key Value) (bool, error) {
	k, err := keyOf(key)
	if err != nil {
		return false, err
	}
	if _, ok := h.m[k]; !ok {
		return false, nil
	}
	delete(h.m, k)
	return true, nil
}

// Each calls fn for every entry, in unspecified order.
func (h *HashmapData) Each(fn func(key Value, val *Shared)) {
	for _, e := range h.m {
		fn(e.key, e.value)
	}
}

// Clone returns a fresh HashmapData with the same value cells aliased.
func (h *HashmapData) Clone() *HashmapData {
	c := NewHashmapData()
	for k, e := range h.m {
		c.m[k] = e
	}
	return c
}
