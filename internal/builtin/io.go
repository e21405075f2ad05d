package builtin

import (
	"bufio"
	"fmt"
	"os"

	"github.com/tardi-lang/tardi/internal/code"
	"github.com/tardi-lang/tardi/internal/compiler"
	"github.com/tardi-lang/tardi/internal/flushio"
	"github.com/tardi-lang/tardi/internal/value"
)

// stdinReader is shared by read-line/read-char since a fresh bufio.Reader
// per call would drop already-buffered input.
var stdinReader = bufio.NewReader(os.Stdin)

// installIO registers print/println/./"/>string plus file and console
// I/O (spec §6's rendering forms, §5's I/O handle lifecycle).
func installIO(env *compiler.Env) {
	env.AddNative("print", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		fmt.Print(value.Print(s.Get()))
		return nil
	})
	env.AddNative("println", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		fmt.Println(value.Print(s.Get()))
		return nil
	})
	env.AddNative(".", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		fmt.Print(value.Inspect(s.Get()))
		return nil
	})
	env.AddNative(">string", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		return push(m, value.NewString(value.Inspect(s.Get())))
	})
	env.AddNative(".s", func(m code.Machine) error { return dotS(m) })

	env.AddNative("read-line", func(m code.Machine) error {
		line, err := stdinReader.ReadString('\n')
		if err != nil && line == "" {
			return push(m, value.NewError(value.NewErrorData(err)))
		}
		return push(m, value.NewString(trimNewline(line)))
	})

	env.AddNative("open-write", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		path := s.Get().String()
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		return push(m, value.NewWriter(value.NewWriterData(path, f)))
	})
	env.AddNative("open-append", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		path := s.Get().String()
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		return push(m, value.NewWriter(value.NewWriterData(path, f)))
	})
	env.AddNative("open-read", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		path := s.Get().String()
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		return push(m, value.NewReader(value.NewReaderData(path, f)))
	})
	env.AddNative("write", func(m code.Machine) error {
		w, s, err := pop2(m)
		if err != nil {
			return err
		}
		wv := w.Get()
		if wv.Kind != value.Writer {
			return value.TypeMismatch{Op: "write", Left: wv.Kind, Right: value.Writer}
		}
		if wv.WriterData().Closed() {
			return flushio.ErrClosed
		}
		_, err = wv.WriterData().Write([]byte(value.Print(s.Get())))
		return err
	})
	env.AddNative("flush", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		v := s.Get()
		if v.Kind != value.Writer {
			return value.TypeMismatch{Op: "flush", Left: v.Kind, Right: value.Writer}
		}
		return v.WriterData().Flush()
	})
	env.AddNative("close", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		v := s.Get()
		switch v.Kind {
		case value.Writer:
			return v.WriterData().Close()
		case value.Reader:
			return v.ReaderData().Close()
		default:
			return value.TypeMismatch{Op: "close", Left: v.Kind, Right: value.Writer}
		}
	})
	env.AddNative("read-char", func(m code.Machine) error {
		s, err := pop1(m)
		if err != nil {
			return err
		}
		v := s.Get()
		if v.Kind != value.Reader {
			return value.TypeMismatch{Op: "read-char", Left: v.Kind, Right: value.Reader}
		}
		r, _, err := v.ReaderData().ReadRune()
		if err != nil {
			return push(m, value.NewError(value.NewErrorData(err)))
		}
		return push(m, value.NewChar(r))
	})
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}

// dotS implements `.s` (spec §4.2): a non-destructive bottom-to-top dump
// of the data stack, achieved by popping everything and pushing it
// straight back since code.Machine exposes no read-only iteration.
func dotS(m code.Machine) error {
	items, err := m.PopN(m.DataLen())
	if err != nil {
		return err
	}
	fmt.Print("<")
	for i, it := range items {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(value.Inspect(it.Get()))
	}
	fmt.Println(">")
	for _, it := range items {
		if err := m.Push(it); err != nil {
			return err
		}
	}
	return nil
}
