package mculog

import (
	"io"
	"sync/atomic"
)

// Sink is the output capability every formatted byte goes through.
//
// Both methods are total from the formatter's point of view: a sink that can
// fail (a disconnected UART, a closed pipe) handles the failure itself, for
// example by dropping bytes after a bounded wait.
type Sink interface {
	WriteChar(c byte)
	WriteString(s string)
}

// Serial line limits shared by the UART and TinyGo serial sinks.
const (
	// MaxBaudRate is the fastest supported line speed.
	MaxBaudRate = 115200
	// DefaultBaudRate is used when no baud rate is configured.
	DefaultBaudRate = 115200
)

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) WriteChar(byte)              {}
func (discard) WriteString(string)          {}
func (discard) Write(p []byte) (int, error) { return len(p), nil }

// WriterSink adapts an io.Writer to a Sink. Write errors are counted instead
// of returned.
type WriterSink struct {
	w    io.Writer
	errs atomic.Uint64
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) WriteChar(c byte) {
	var err error
	if bw, ok := s.w.(io.ByteWriter); ok {
		err = bw.WriteByte(c)
	} else {
		_, err = s.w.Write([]byte{c})
	}
	if err != nil {
		s.errs.Add(1)
	}
}

func (s *WriterSink) WriteString(str string) {
	if _, err := io.WriteString(s.w, str); err != nil {
		s.errs.Add(1)
	}
}

// Write implements io.Writer.
func (s *WriterSink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil {
		s.errs.Add(1)
	}
	return n, err
}

// Errors returns how many writes to the underlying writer failed.
func (s *WriterSink) Errors() uint64 {
	return s.errs.Load()
}

// bufferSink fills a fixed byte slice and keeps one byte for the terminator.
type bufferSink struct {
	buf      []byte
	n        int
	overflow bool
}

func (b *bufferSink) WriteChar(c byte) {
	if b.n+1 >= len(b.buf) {
		b.overflow = true
		return
	}
	b.buf[b.n] = c
	b.n++
}

func (b *bufferSink) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		b.WriteChar(s[i])
	}
}

func (b *bufferSink) terminate() {
	if b.n < len(b.buf) {
		b.buf[b.n] = 0
	}
}
