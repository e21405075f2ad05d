package code

import "github.com/tardi-lang/tardi/internal/value"

// Constants is the constant pool LitConst indexes into (spec §3.3).
type Constants struct {
	items []*value.Shared
}

// Add allocates a new constant slot holding v, returning its index.
func (c *Constants) Add(v *value.Shared) int {
	c.items = append(c.items, v)
	return len(c.items) - 1
}

// At returns the k-th constant.
func (c *Constants) At(k int) *value.Shared { return c.items[k] }

func (c *Constants) Len() int { return len(c.items) }
