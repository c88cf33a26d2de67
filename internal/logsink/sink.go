// Package logsink implements the append-only byte sink that every scanning
// section writes its report text into, plus the value formatters used to
// build that text without routing through fmt's reflection-based
// formatting.
package logsink

import (
	"bytes"
	"os"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// Sink is the single operation every consumer of this package needs:
// append a span of bytes. There is exactly one sink per run; the executor
// and every section handler share it.
type Sink interface {
	Append(p []byte) error
}

// MemorySink is an in-memory growing sink, used for tests and for staging a
// section's output before it is folded into the run's main sink.
type MemorySink struct {
	buf bytes.Buffer
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

func (m *MemorySink) Append(p []byte) error {
	_, err := m.buf.Write(p)
	return err
}

// Bytes returns the accumulated content. The returned slice aliases the
// sink's internal buffer and must not be retained across further Appends.
func (m *MemorySink) Bytes() []byte { return m.buf.Bytes() }

// String returns the accumulated content as a string.
func (m *MemorySink) String() string { return m.buf.String() }

// FileSink opens its destination with create-always/append semantics and
// writes each Append call as exactly one OS write.
type FileSink struct {
	f *os.File
}

// OpenFileSink creates (truncating any existing file) the destination at
// path and returns a FileSink bound to it.
func OpenFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, oserr.Wrap(oserr.Other, "OpenFileSink: "+path, err)
	}
	return &FileSink{f: f}, nil
}

func (fs *FileSink) Append(p []byte) error {
	if _, err := fs.f.Write(p); err != nil {
		return oserr.Wrap(oserr.Other, "FileSink.Append", err)
	}
	return nil
}

// Close releases the underlying file handle.
func (fs *FileSink) Close() error {
	return fs.f.Close()
}
