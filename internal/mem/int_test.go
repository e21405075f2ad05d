package mem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tardi-lang/tardi/internal/mem"
)

func TestUnwrittenLoadIsZero(t *testing.T) {
	var m mem.Ints
	assert.Equal(t, uint(0), m.Size())
	val, err := m.Load(0)
	require.NoError(t, err)
	assert.Equal(t, 0, val)

	val, err = m.Load(99)
	require.NoError(t, err)
	assert.Equal(t, 0, val, "reading past the end is not an error, just 0")
}

func TestStorAtEndAppendsAndGrowsSize(t *testing.T) {
	var m mem.Ints
	require.NoError(t, m.Stor(0, 9))
	assert.Equal(t, uint(1), m.Size())

	require.NoError(t, m.Stor(1, 1, 2, 3))
	assert.Equal(t, uint(4), m.Size())

	for addr, want := range []int{9, 1, 2, 3} {
		got, err := m.Load(uint(addr))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestStorOverwritesInPlaceForBackpatching(t *testing.T) {
	var m mem.Ints
	require.NoError(t, m.Stor(0, 10, 20, 30))
	require.NoError(t, m.Stor(1, 99))
	assert.Equal(t, uint(3), m.Size(), "overwriting doesn't grow the store")

	got, err := m.Load(1)
	require.NoError(t, err)
	assert.Equal(t, 99, got)
}

func TestStorPastEndIsAHoleError(t *testing.T) {
	var m mem.Ints
	require.NoError(t, m.Stor(0, 1))
	err := m.Stor(5, 2)
	var hole mem.HoleError
	require.ErrorAs(t, err, &hole)
	assert.Equal(t, uint(5), hole.Addr)
	assert.Equal(t, uint(1), hole.Have)
}

func TestStorEmptyIsANoop(t *testing.T) {
	var m mem.Ints
	require.NoError(t, m.Stor(0))
	assert.Equal(t, uint(0), m.Size())
}

// TestSequentialEmitThenPatch mirrors internal/code.Stream's actual
// access pattern: append a run of cells one at a time, then backpatch
// an earlier one once its jump target is known.
func TestSequentialEmitThenPatch(t *testing.T) {
	var m mem.Ints
	addrs := make([]uint, 0, 4)
	for _, v := range []int{100, 0, 200, 300} {
		addrs = append(addrs, m.Size())
		require.NoError(t, m.Stor(m.Size(), v))
	}

	require.NoError(t, m.Stor(addrs[1], 42))
	got, err := m.Load(addrs[1])
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, uint(4), m.Size())
}
