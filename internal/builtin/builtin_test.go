package builtin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tardi-lang/tardi/internal/builtin"
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/vm"
)

// run compiles and executes src against a freshly built native
// dictionary, the same shape internal/compiler's own tests use, since
// builtin natives are only reachable through compiled words.
func run(t *testing.T, src string) *vm.VM {
	t.Helper()
	stream := &code.Stream{}
	consts := &code.Constants{}
	ops := &code.OpTable{}
	m := vm.New(stream, consts, ops)
	env := &compiler.Env{Stream: stream, Constants: consts, Ops: ops, VM: m, Names: make(map[string]int)}
	builtin.Install(env)

	c := compiler.New(env, src)
	require.NoError(t, c.CompileAll())
	stream.EmitOp(code.Halt)
	m.SetIP(0)
	require.NoError(t, m.Run(context.Background()))
	return m
}

func TestPushPopVector(t *testing.T) {
	m := run(t, "{ 1 2 } dup length swap 3 swap push! length")
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(3), top.Get().Int())
	prevLen, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(2), prevLen.Get().Int())
}

func TestPopBang(t *testing.T) {
	m := run(t, "{ 1 2 3 } pop!")
	last, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(3), last.Get().Int())
	vec, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, 2, vec.Get().VectorData().Len())
}

func TestNthAndSetNth(t *testing.T) {
	m := run(t, "{ 10 20 30 } 1 nth")
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(20), top.Get().Int())

	m = run(t, "{ 10 20 30 } 1 99 set-nth! 1 nth")
	top, err = m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(99), top.Get().Int())
}

func TestNthOutOfBounds(t *testing.T) {
	stream := &code.Stream{}
	consts := &code.Constants{}
	ops := &code.OpTable{}
	m := vm.New(stream, consts, ops)
	env := &compiler.Env{Stream: stream, Constants: consts, Ops: ops, VM: m, Names: make(map[string]int)}
	builtin.Install(env)

	c := compiler.New(env, "{ 1 2 } 5 nth")
	require.NoError(t, c.CompileAll())
	stream.EmitOp(code.Halt)
	m.SetIP(0)
	assert.Error(t, m.Run(context.Background()))
}

func TestConcatStringsAndVectors(t *testing.T) {
	m := run(t, `"foo" "bar" concat`)
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, "foobar", top.Get().String())

	m = run(t, "{ 1 2 } { 3 4 } concat length")
	top, err = m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(4), top.Get().Int())
}

func TestConcatTypeMismatch(t *testing.T) {
	stream := &code.Stream{}
	consts := &code.Constants{}
	ops := &code.OpTable{}
	m := vm.New(stream, consts, ops)
	env := &compiler.Env{Stream: stream, Constants: consts, Ops: ops, VM: m, Names: make(map[string]int)}
	builtin.Install(env)

	c := compiler.New(env, `"foo" { 1 } concat`)
	require.NoError(t, c.CompileAll())
	stream.EmitOp(code.Halt)
	m.SetIP(0)
	assert.Error(t, m.Run(context.Background()))
}

func TestEachAppliesLambdaWithoutResidue(t *testing.T) {
	m := run(t, "0 { 1 2 3 } [ + ] each")
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(6), top.Get().Int())
	assert.Equal(t, 0, m.DataLen())
}

func TestHashmapSetDeleteGet(t *testing.T) {
	m := run(t, `"k" 1 H{ } set! "k" swap get`)
	found, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, true, found.Get().Bool())
	val, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(1), val.Get().Int())

	m = run(t, `"k" 1 H{ } set! dup "k" swap delete! "k" swap get`)
	found, err = m.Pop()
	require.NoError(t, err)
	assert.False(t, found.Get().Bool())
}

func TestGetMissingKeyReportsNotFoundWithoutValue(t *testing.T) {
	m := run(t, `H{ } "missing" swap get`)
	found, err := m.Pop()
	require.NoError(t, err)
	assert.False(t, found.Get().Bool())
	sentinel, err := m.Pop()
	require.NoError(t, err)
	assert.False(t, sentinel.Get().Bool())
}

func TestPredicates(t *testing.T) {
	m := run(t, "1 int?")
	top, err := m.Pop()
	require.NoError(t, err)
	assert.True(t, top.Get().Bool())

	m = run(t, "1.0 int?")
	top, err = m.Pop()
	require.NoError(t, err)
	assert.False(t, top.Get().Bool())

	m = run(t, `{ 1 } vector?`)
	top, err = m.Pop()
	require.NoError(t, err)
	assert.True(t, top.Get().Bool())

	m = run(t, `H{ } hashmap?`)
	top, err = m.Pop()
	require.NoError(t, err)
	assert.True(t, top.Get().Bool())

	m = run(t, `[ ] lambda?`)
	top, err = m.Pop()
	require.NoError(t, err)
	assert.True(t, top.Get().Bool())
}

func TestLengthAcrossKinds(t *testing.T) {
	m := run(t, `"abc" length`)
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(3), top.Get().Int())

	m = run(t, "{ 1 2 3 4 } length")
	top, err = m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(4), top.Get().Int())
}
