package logio_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tardi-lang/tardi/internal/logio"
)

func TestTraceNilIsANoop(t *testing.T) {
	var tr *logio.Trace
	assert.NotPanics(t, func() {
		tr.Logf("X", "hi %d", 1)
		tr.WithPrefix("  ")()
	})
}

func TestTracePadsMarksToTheWidestSeen(t *testing.T) {
	var lines []string
	tr := logio.NewTrace(func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	})

	tr.Logf("Call", "a")
	tr.Logf("LitConst", "b")
	tr.Logf("Ip", "c")

	// mark-padding repeats the mark's own leading rune, matching
	// gothird's core.go logging.logf -- not space padding.
	assert.Equal(t, "Call a", lines[0])
	assert.Equal(t, "LitConst b", lines[1])
	assert.Equal(t, "IIIIIIIp c", lines[2])
}

func TestTraceWithPrefixNestsUntilPopped(t *testing.T) {
	var lines []string
	tr := logio.NewTrace(func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	})

	tr.Logf("Macro", "outer")
	pop := tr.WithPrefix("  ")
	tr.Logf("Macro", "inner")
	pop()
	tr.Logf("Macro", "outer again")

	assert.Equal(t, "Macro outer", lines[0])
	assert.Equal(t, "  Macro inner", lines[1])
	assert.Equal(t, "Macro outer again", lines[2])
}
