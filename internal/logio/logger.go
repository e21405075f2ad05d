package logio

import (
	"fmt"
	"strings"
)

// Trace is a mark-column-aligned, prefix-stackable trace logger, adapted
// from gothird's core.go `logging` type (mark padding, `logf(mark, mess,
// args...)`) and its `withLogPrefix` nesting (used there around
// vm.exec/scan to indent a call's dynamic extent). A nil *Trace, or one
// built with a nil logf, makes every method a no-op, so callers never
// need to nil-check before tracing.
type Trace struct {
	logf func(mess string, args ...interface{})

	markWidth int
}

// NewTrace wraps a raw printf-style function (e.g. tardi.WithLogf's
// argument) as a Trace.
func NewTrace(logf func(mess string, args ...interface{})) *Trace {
	return &Trace{logf: logf}
}

// WithPrefix nests prefix onto every message logged through t until the
// returned func is called, so a nested dispatch (a macro expanding
// inside a macro, a Call inside a Call) reads indented in trace output.
func (t *Trace) WithPrefix(prefix string) func() {
	if t == nil || t.logf == nil {
		return func() {}
	}
	logf := t.logf
	t.logf = func(mess string, args ...interface{}) { logf(prefix+mess, args...) }
	return func() { t.logf = logf }
}

// Logf logs one line as "mark message", left-padding mark to the widest
// mark this Trace has seen so far so a column of marks stays aligned.
func (t *Trace) Logf(mark, mess string, args ...interface{}) {
	if t == nil || t.logf == nil {
		return
	}
	if n := t.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		t.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	t.logf("%v %v", mark, mess)
}
