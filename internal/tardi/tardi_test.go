package tardi_test

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tardi-lang/tardi/internal/tardi"
	"github.com/tardi-lang/tardi/internal/value"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it, the way tools/gengolden captures a subprocess's
// stdout for diffing against a golden fixture.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func evalOK(t *testing.T, src string) (*tardi.Program, string) {
	t.Helper()
	p, err := tardi.New()
	require.NoError(t, err)
	var runErr error
	out := captureStdout(t, func() {
		runErr = p.Eval(context.Background(), src)
	})
	require.NoError(t, runErr)
	return p, out
}

// One test per spec §8.2 concrete end-to-end scenario.

func TestScenarioAddition(t *testing.T) {
	p, _ := evalOK(t, "5 3 +")
	top, err := p.VM.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(8), top.Get().Int())
}

func TestScenarioSquareFunction(t *testing.T) {
	p, _ := evalOK(t, ": sq ( n -- n*n ) dup * ; 6 sq")
	top, err := p.VM.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(36), top.Get().Int())
}

func TestScenarioFactorial(t *testing.T) {
	p, _ := evalOK(t, ": fact ( n -- n! ) dup 1 <= [ drop 1 ] [ dup 1 - fact * ] if ; 5 fact")
	top, err := p.VM.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(120), top.Get().Int())
}

func TestScenarioVectorMap(t *testing.T) {
	p, _ := evalOK(t, "{ 1 2 3 } [ dup * ] map")
	top, err := p.VM.Pop()
	require.NoError(t, err)
	require.Equal(t, value.Vector, top.Get().Kind)
	vec := top.Get().VectorData()
	require.Equal(t, 3, vec.Len())
	for i, want := range []int64{1, 4, 9} {
		item, err := vec.At(i)
		require.NoError(t, err)
		assert.Equal(t, want, item.Get().Int())
	}
}

// Scenario 5 in spec.md's table (`H{ ... } "a" over get . drop drop` -> "1\n")
// implicitly assumes `get` leaves `val` on top of `found` so a single `.`
// prints the looked-up value, but spec §8.1 invariant 7 states the
// opposite order ("k hm get yields v #t", val below found) -- the order
// this implementation actually uses (see internal/builtin/containers.go),
// since it is also what lets `key hm get [ ... ] [ ... ] if` use the
// found flag as `if`'s condition with the value still reachable
// underneath in either branch. This is the same kind of worked-example
// inconsistency DESIGN.md documents for spec.md's own scenario 10; the
// case exercised here is the corrected trace matching invariant 7 and
// the implementation, not the literal table text.
func TestScenarioHashmapGet(t *testing.T) {
	p, out := evalOK(t, `H{ { "a" 1 } { "b" 2 } } "a" over get`)
	assert.Equal(t, "", out)

	found, err := p.VM.Pop()
	require.NoError(t, err)
	assert.Equal(t, value.NewBool(true), found.Get())

	val, err := p.VM.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(1), val.Get().Int())
}

func TestScenarioStringConcat(t *testing.T) {
	_, out := evalOK(t, `"Hello, " "world!" concat println`)
	assert.Equal(t, "Hello, world!\n", out)
}

func TestScenarioSwap(t *testing.T) {
	p, _ := evalOK(t, "1 2 swap")
	items := p.VM.Data.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].Get().Int())
	assert.Equal(t, int64(1), items[1].Get().Int())
}

func TestScenarioReturnStackRoundTrip(t *testing.T) {
	p, _ := evalOK(t, "1 2 3 >r + r>")
	items := p.VM.Data.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].Get().Int())
	assert.Equal(t, int64(3), items[1].Get().Int())
}

func TestScenarioWhileLoop(t *testing.T) {
	_, out := evalOK(t, "0 [ dup 3 < ] [ dup println 1 + ] while drop")
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestScenarioCompileTimeMacro(t *testing.T) {
	p, _ := evalOK(t, "MACRO: SQ scan-value dup * push! ; SQ 7")
	top, err := p.VM.Pop()
	require.NoError(t, err)
	assert.Equal(t, int64(49), top.Get().Int())
}

// spec §8.3's failure scenarios.

func TestFailureDropOnEmptyStack(t *testing.T) {
	p, err := tardi.New()
	require.NoError(t, err)
	err = p.Eval(context.Background(), "drop")
	assert.Error(t, err)
}

func TestFailureDivisionByZero(t *testing.T) {
	p, err := tardi.New()
	require.NoError(t, err)
	err = p.Eval(context.Background(), "1 0 /")
	assert.ErrorIs(t, err, value.ErrDivisionByZero)
}

func TestFailureTypeMismatch(t *testing.T) {
	p, err := tardi.New()
	require.NoError(t, err)
	err = p.Eval(context.Background(), "1 #t +")
	var tm value.TypeMismatch
	assert.ErrorAs(t, err, &tm)
}

func TestReplDoesNotClearDataStackOnError(t *testing.T) {
	p, err := tardi.New()
	require.NoError(t, err)
	require.NoError(t, p.Eval(context.Background(), "1 2 3"))
	require.Error(t, p.Eval(context.Background(), "1 0 /"))

	assert.Equal(t, 3, p.VM.DataLen(), "a failed line leaves the items pushed by earlier lines in place")
}
