package value

import (
	"io"

	"github.com/tardi-lang/tardi/internal/flushio"
	"github.com/tardi-lang/tardi/internal/runeio"
)

// WriterData backs a Writer value: a buffered, closeable output handle
// with a path captured for diagnostics (spec §3.1, §5).
type WriterData struct {
	*flushio.Handle
}

// NewWriterData wraps w, identified by path for error messages.
func NewWriterData(path string, w io.Writer) *WriterData {
	return &WriterData{Handle: flushio.NewHandle(path, w)}
}

// ReaderData backs a Reader value: a rune-accurate input handle with a
// captured path, closed explicitly or left for the caller to drop
// (spec §5's "Readers hold an OS resource until garbage-collected or
// explicitly closed").
type ReaderData struct {
	Path   string
	r      runeio.Reader
	closer io.Closer
	closed bool
}

// NewReaderData wraps r, identified by path.
func NewReaderData(path string, r io.Reader) *ReaderData {
	rd := &ReaderData{Path: path, r: runeio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	return rd
}

func (r *ReaderData) Closed() bool { return r.closed }

// ReadRune reads the next rune, failing with flushio.ErrClosed if closed.
func (r *ReaderData) ReadRune() (rune, int, error) {
	if r.closed {
		return 0, 0, flushio.ErrClosed
	}
	return r.r.ReadRune()
}

// Close marks the handle closed and releases any OS resource; idempotent.
func (r *ReaderData) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
