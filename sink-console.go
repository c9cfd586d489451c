//go:build !tinygo

package mculog

import (
	"os"

	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// ConsoleSink writes to a console file such as os.Stdout. Writes go through a
// locked WriteSyncer so that independent loggers sharing the console do not
// tear each other's bytes.
type ConsoleSink struct {
	ws  zapcore.WriteSyncer
	tty bool
}

// NewConsoleSink returns a sink writing to f.
func NewConsoleSink(f *os.File) *ConsoleSink {
	return &ConsoleSink{
		ws:  zapcore.Lock(f),
		tty: term.IsTerminal(int(f.Fd())),
	}
}

func (s *ConsoleSink) WriteChar(c byte) {
	_, _ = s.ws.Write([]byte{c})
}

func (s *ConsoleSink) WriteString(str string) {
	if str == "" {
		return
	}
	_, _ = s.ws.Write([]byte(str))
}

// Write implements io.Writer.
func (s *ConsoleSink) Write(p []byte) (int, error) {
	return s.ws.Write(p)
}

// Sync flushes the underlying file.
func (s *ConsoleSink) Sync() error {
	return s.ws.Sync()
}

// IsTerminal reports whether the console is a terminal. Loggers configured
// with ColorAuto use it to decide on ANSI colours.
func (s *ConsoleSink) IsTerminal() bool {
	return s.tty
}
