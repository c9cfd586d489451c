package mculog

import (
	"fmt"
	"sync"
)

// ColorMode selects whether level labels are wrapped in ANSI colours.
type ColorMode uint8

const (
	// ColorNever writes plain text.
	ColorNever ColorMode = iota
	// ColorAlways writes colour codes regardless of the sink.
	ColorAlways
	// ColorAuto writes colour codes when the sink reports a terminal.
	ColorAuto
)

// Config holds the logger configuration.
type Config struct {
	// Sink receives every formatted byte.
	// Defaults to DefaultSink() if not provided.
	Sink Sink
	// Color controls ANSI colouring of the level label.
	// Defaults to ColorNever.
	Color ColorMode
	// Disabled lists levels that start muted. All levels are enabled
	// otherwise.
	Disabled []Level
	// Halt is called after a failed Assert has been logged.
	// Defaults to blocking the calling goroutine forever.
	Halt func()
}

// Logger writes severity-tagged messages to a Sink:
//
//	> [LEVEL] source: message\r\n
//
// A Logger is safe for concurrent use; each message is written while holding
// the logger's lock so messages never interleave on the wire. The zero Logger
// writes to DefaultSink() with every level enabled and no colour.
type Logger struct {
	mu       sync.Mutex
	sink     Sink
	color    bool
	disabled [numLevels]bool
	halt     func()
}

// New creates a logger from c, applying defaults for unset fields.
func New(c Config) *Logger {
	if c.Sink == nil {
		c.Sink = DefaultSink()
	}
	if c.Halt == nil {
		c.Halt = haltForever
	}

	l := &Logger{
		sink: c.Sink,
		halt: c.Halt,
	}
	switch c.Color {
	case ColorAlways:
		l.color = true
	case ColorAuto:
		if t, ok := c.Sink.(interface{ IsTerminal() bool }); ok {
			l.color = t.IsTerminal()
		}
	}
	for _, lvl := range c.Disabled {
		if lvl.Valid() {
			l.disabled[lvl] = true
		}
	}
	return l
}

// SetLevel enables or disables messages of the given level.
func (l *Logger) SetLevel(level Level, enabled bool) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrPkg, ErrUnknownLevel, level)
	}
	l.mu.Lock()
	l.disabled[level] = !enabled
	l.mu.Unlock()
	return nil
}

// Enabled reports whether messages of the given level are written. Levels
// outside the defined set are always written.
func (l *Logger) Enabled(level Level) bool {
	if !level.Valid() {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.disabled[level]
}

// Log formats a message with Fprintf and writes it with the level and source
// prefix. It returns the number of bytes written, including the prefix and
// line terminator. A disabled level writes nothing and returns (0, nil).
//
// The error is the formatter's error; the message is written regardless.
func (l *Logger) Log(src string, level Level, format string, args ...Arg) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level.Valid() && l.disabled[level] {
		return 0, nil
	}
	l.ensureSink()

	n := 0
	if l.color {
		n += l.put(level.color())
	}
	n += l.put("> [")
	n += l.put(level.String())
	n += l.put("] ")
	n += l.put(src)
	n += l.put(": ")
	m, err := Fprintf(l.sink, format, args...)
	n += m
	if l.color {
		n += l.put(ansiReset)
	}
	n += l.put("\r\n")
	return n, err
}

func (l *Logger) Debug(src, format string, args ...Arg) (int, error) {
	return l.Log(src, LevelDebug, format, args...)
}

func (l *Logger) Info(src, format string, args ...Arg) (int, error) {
	return l.Log(src, LevelInfo, format, args...)
}

func (l *Logger) Warning(src, format string, args ...Arg) (int, error) {
	return l.Log(src, LevelWarning, format, args...)
}

func (l *Logger) Error(src, format string, args ...Arg) (int, error) {
	return l.Log(src, LevelError, format, args...)
}

func (l *Logger) Fatal(src, format string, args ...Arg) (int, error) {
	return l.Log(src, LevelFatal, format, args...)
}

// Printf writes a formatted message without prefix or terminator.
func (l *Logger) Printf(format string, args ...Arg) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureSink()
	return Fprintf(l.sink, format, args...)
}

// ensureSink must be called with l.mu held.
func (l *Logger) ensureSink() {
	if l.sink == nil {
		l.sink = DefaultSink()
	}
}

func (l *Logger) put(s string) int {
	if s == "" {
		return 0
	}
	l.sink.WriteString(s)
	return len(s)
}
