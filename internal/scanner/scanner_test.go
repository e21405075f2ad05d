package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tardi-lang/tardi/internal/scanner"
	"github.com/tardi-lang/tardi/internal/value"
)

func tokens(t *testing.T, src string) []scanner.Token {
	t.Helper()
	s := scanner.New(src)
	var out []scanner.Token
	for {
		tok, ok, err := s.NextToken()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func TestIntegerLiteral(t *testing.T) {
	toks := tokens(t, "42 -7")
	require.Len(t, toks, 2)
	assert.Equal(t, scanner.TokInt, toks[0].Kind)
	assert.Equal(t, int64(42), toks[0].Int)
	assert.Equal(t, int64(-7), toks[1].Int)
}

func TestRadixIntegerLiterals(t *testing.T) {
	toks := tokens(t, "0x1F 0o17 0b101")
	require.Len(t, toks, 3)
	assert.Equal(t, int64(31), toks[0].Int)
	assert.Equal(t, int64(15), toks[1].Int)
	assert.Equal(t, int64(5), toks[2].Int)
}

func TestFloatLiteral(t *testing.T) {
	toks := tokens(t, "5.0 3.25")
	require.Len(t, toks, 2)
	assert.Equal(t, scanner.TokFloat, toks[0].Kind)
	assert.Equal(t, 5.0, toks[0].Float)
	assert.Equal(t, 3.25, toks[1].Float)
}

func TestBooleanLiteral(t *testing.T) {
	toks := tokens(t, "#t #f")
	require.Len(t, toks, 2)
	assert.True(t, toks[0].Bool)
	assert.False(t, toks[1].Bool)
}

func TestCharacterLiteralAndEscapes(t *testing.T) {
	toks := tokens(t, `'a' '\n' '\u41' '\u{1F600}'`)
	require.Len(t, toks, 4)
	assert.Equal(t, 'a', toks[0].Char)
	assert.Equal(t, '\n', toks[1].Char)
	assert.Equal(t, 'A', toks[2].Char)
	assert.Equal(t, rune(0x1F600), toks[3].Char)
}

func TestStringLiteralWithEscapes(t *testing.T) {
	toks := tokens(t, `"hello\nworld"`)
	require.Len(t, toks, 1)
	assert.Equal(t, "hello\nworld", toks[0].String)
}

func TestTripleQuotedStringIsRaw(t *testing.T) {
	toks := tokens(t, "\"\"\"line one\nline two\"\"\"")
	require.Len(t, toks, 1)
	assert.Equal(t, "line one\nline two", toks[0].String)
}

func TestUnterminatedStringErrors(t *testing.T) {
	s := scanner.New(`"unterminated`)
	_, _, err := s.NextToken()
	assert.ErrorIs(t, err, scanner.ErrUnterminatedString)
}

func TestLineCommentStopsAtNewline(t *testing.T) {
	toks := tokens(t, "1 // comment here\n2")
	require.Len(t, toks, 2)
	assert.Equal(t, int64(1), toks[0].Int)
	assert.Equal(t, int64(2), toks[1].Int)
}

func TestStackEffectCommentIsDiscarded(t *testing.T) {
	toks := tokens(t, ": sq ( n -- n*n ) dup * ;")
	var words []string
	for _, tok := range toks {
		if tok.Kind == scanner.TokWord {
			words = append(words, tok.Text)
		}
	}
	assert.Equal(t, []string{":", "sq", "dup", "*", ";"}, words)
}

func TestDocCommentCaptured(t *testing.T) {
	s := scanner.New("/// squares a number\n: sq dup * ;")
	require.False(t, s.AtEnd())
	assert.Equal(t, "squares a number", s.TakeDoc())
}

func TestScanWordSkipsParsing(t *testing.T) {
	s := scanner.New("foo-bar 42")
	w, ok, err := s.NextRawWord()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "foo-bar", w)
}

func TestWordToken(t *testing.T) {
	toks := tokens(t, "dup swap")
	require.Len(t, toks, 2)
	assert.Equal(t, scanner.TokWord, toks[0].Kind)
	assert.Equal(t, "dup", toks[0].Text)
}

func TestPendingValuesQueueDrainsFirst(t *testing.T) {
	s := scanner.New("real-word")
	s.PushPending(value.NewInt(9))
	v, ok := s.TakePending()
	require.True(t, ok)
	assert.Equal(t, int64(9), v.Int())

	_, ok = s.TakePending()
	assert.False(t, ok, "queue drained")
}
