package compiler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tardi-lang/tardi/internal/builtin"
	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/value"
	"github.com/tardi-lang/tardi/internal/vm"
)

// newProgram builds an Env with every native word installed (spec §2
// item 8) and a fresh VM, mirroring what internal/tardi.New does before
// bootstrap runs -- enough to compile and run small programs directly
// against internal/compiler without pulling in internal/module.
func newProgram() (*compiler.Env, *vm.VM) {
	stream := &code.Stream{}
	consts := &code.Constants{}
	ops := &code.OpTable{}
	m := vm.New(stream, consts, ops)
	env := &compiler.Env{Stream: stream, Constants: consts, Ops: ops, VM: m, Names: make(map[string]int)}
	builtin.Install(env)
	return env, m
}

func run(t *testing.T, src string) *vm.VM {
	t.Helper()
	env, m := newProgram()
	start := env.Stream.Len()
	c := compiler.New(env, src)
	require.NoError(t, c.CompileAll())
	env.Stream.EmitOp(code.Halt)
	m.SetIP(start)
	require.NoError(t, m.Run(context.Background()))
	return m
}

func TestCompileLiteralAndArithmetic(t *testing.T) {
	m := run(t, "5 3 +")
	require.Equal(t, 1, m.DataLen())
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(8), top.Get().Int())
}

func TestFunctionDefinitionAndCall(t *testing.T) {
	m := run(t, ": sq dup * ; 6 sq")
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(36), top.Get().Int())
	assert.Equal(t, 0, m.DataLen(), "no residue left on the stack")
}

func TestRecursionViaPredeclaration(t *testing.T) {
	m := run(t, ": fact dup 1 <= [ drop 1 ] [ dup 1 - fact * ] if ; 5 fact")
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(120), top.Get().Int())
}

func TestLambdaLiteralLeavesNoResidue(t *testing.T) {
	m := run(t, "41 [ 1 + ] apply")
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(42), top.Get().Int())
	assert.Equal(t, 0, m.DataLen())
}

func TestForwardReferenceResolvesOnceLaterWordDefines(t *testing.T) {
	m := run(t, ": a 1 + b ; : b 10 * ; 4 a")
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(50), top.Get().Int(), "(4+1)*10")
}

func TestMutualRecursionAcrossForwardReference(t *testing.T) {
	// a calls b before b is defined; b calls a back for the base case.
	// even? and odd? mutually recurse down to 0/1.
	m := run(t, `
		: even? dup 0 == [ drop #t ] [ 1 - odd? ] if ;
		: odd? dup 0 == [ drop #f ] [ 1 - even? ] if ;
		4 even?
	`)
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, true, top.Get().Bool())
}

func TestForwardReferenceNeverDefinedFails(t *testing.T) {
	env, _ := newProgram()
	c := compiler.New(env, ": a b ; 1 a")
	err := c.CompileAll()
	var uw code.UnknownWord
	require.ErrorAs(t, err, &uw)
	assert.Equal(t, code.UnknownWord("b"), uw)
}

func TestUnknownWordFails(t *testing.T) {
	env, _ := newProgram()
	c := compiler.New(env, "not-a-real-word")
	err := c.CompileAll()
	var uw code.UnknownWord
	assert.ErrorAs(t, err, &uw)
}

func TestUnterminatedDefinitionFails(t *testing.T) {
	env, _ := newProgram()
	c := compiler.New(env, ": foo dup *")
	err := c.CompileAll()
	assert.Error(t, err)
}

func TestReturnStackBalancedAfterCall(t *testing.T) {
	env, m := newProgram()
	c := compiler.New(env, ": id dup ; 7 id")
	require.NoError(t, c.CompileAll())
	env.Stream.EmitOp(code.Halt)
	m.SetIP(0)
	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, 0, m.Return.Len(), "return stack depth restored after the call returns")
}

func TestMacroRunsAtCompileTimeAndEmitsValue(t *testing.T) {
	m := run(t, "MACRO: SQ scan-value dup * push! ; SQ 7")
	top, err := m.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(49), top.Get().Int())
}

func TestVectorLiteral(t *testing.T) {
	m := run(t, "{ 1 2 3 }")
	top, err := m.Pop()
	require.NoError(t, err)
	require.Equal(t, value.Vector, top.Get().Kind)
	assert.Equal(t, 3, top.Get().VectorData().Len())
	assert.Equal(t, 0, m.DataLen())
}

func TestHashmapLiteral(t *testing.T) {
	m := run(t, `H{ { "a" 1 } { "b" 2 } }`)
	top, err := m.Pop()
	require.NoError(t, err)
	require.Equal(t, value.Hashmap, top.Get().Kind)
	got, found, err := top.Get().HashmapData().Get(value.NewString("a"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(1), got.Get().Int())
}
