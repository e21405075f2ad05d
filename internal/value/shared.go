package value

// Shared is a shared, interior-mutable cell holding a Value (spec §3.1's
// "SharedValue"). Every reference to a Value in a running Tardi program
// passes through one: two stack slots holding the same *Shared alias each
// other's mutations (spec §4.5 "Ordering and aliasing semantics").
//
// SPEC_FULL.md's Open Question Resolution #1: this is a plain GC'd pointer,
// not a manually reference-counted cell. Go's garbage collector already
// reclaims cyclic garbage, so spec §3.5/§9's "ref-counted and leaks on
// cycles" behavior is not reproduced -- there is nothing to leak.
type Shared struct {
	v Value
}

// NewShared allocates a fresh cell holding v.
func NewShared(v Value) *Shared { return &Shared{v: v} }

// Get returns the cell's current value.
func (s *Shared) Get() Value { return s.v }

// Set overwrites the cell's value in place; every alias observes it.
func (s *Shared) Set(v Value) { s.v = v }

// Clone returns a new, unaliased cell holding a copy of s's current value.
// Used where a primitive must produce a fresh result rather than mutate
// an operand in place (spec §4.1: "push a fresh SharedValue").
func (s *Shared) Clone() *Shared { return &Shared{v: s.v} }
