// Package stack implements Tardi's two bounded stacks (spec §3.2, §4.2):
// the data stack (the primary operand channel) and the return stack
// (call-return addresses, also user-accessible via >r/r>/r@). Both are
// generalized from gothird's push/pop/bounds-checked-int stack
// (internals.go's push/pop/pushr/popr) to hold *value.Shared instead of
// raw ints.
package stack

import "github.com/tardi-lang/tardi/internal/value"

// Capacity is the bound spec §3.2 fixes for both stacks.
const Capacity = 1024

// Stack is a bounded LIFO of Shared cells shared by DataStack and
// ReturnStack; both stacks are user-visible in Tardi and only differ in
// which errors they raise on over/underflow (spec §4.2).
type Stack struct {
	items []*value.Shared

	overflowErr, underflowErr error
}

func newStack(overflow, underflow error) Stack {
	return Stack{items: make([]*value.Shared, 0, Capacity), overflowErr: overflow, underflowErr: underflow}
}

func (s *Stack) Len() int { return len(s.items) }

// Push pushes s onto the stack, failing with the stack's overflow error
// past Capacity.
func (st *Stack) Push(s *value.Shared) error {
	if len(st.items) >= Capacity {
		return st.overflowErr
	}
	st.items = append(st.items, s)
	return nil
}

// Pop removes and returns the top cell, failing with the stack's
// underflow error if empty.
func (st *Stack) Pop() (*value.Shared, error) {
	i := len(st.items) - 1
	if i < 0 {
		return nil, st.underflowErr
	}
	s := st.items[i]
	st.items = st.items[:i]
	return s, nil
}

// Peek returns the cell at depth n from the top (0 is the top) without
// removing it.
func (st *Stack) Peek(n int) (*value.Shared, error) {
	i := len(st.items) - 1 - n
	if i < 0 {
		return nil, st.underflowErr
	}
	return st.items[i], nil
}

// PopN pops n cells and returns them bottom-to-top (as pushed), failing
// (leaving the stack untouched) if fewer than n are available.
func (st *Stack) PopN(n int) ([]*value.Shared, error) {
	if len(st.items) < n {
		return nil, st.underflowErr
	}
	i := len(st.items) - n
	out := make([]*value.Shared, n)
	copy(out, st.items[i:])
	st.items = st.items[:i]
	return out, nil
}

// Items returns the stack bottom-to-top, non-destructively, for `.s`
// (spec §4.2).
func (st *Stack) Items() []*value.Shared { return st.items }

// Clear empties the stack; it backs the `clear` native word.
func (st *Stack) Clear() { st.items = st.items[:0] }
