//go:build !tinygo

package mculog

import (
	"sync"

	"go.uber.org/zap"
)

// ZapLineSize is the longest line ZapSink forwards in one entry. Longer
// lines are split.
const ZapLineSize = 256

// ZapSink forwards formatted output to a zap logger, one Info entry per line.
// It lets firmware-style code that logs through this package run inside a
// host service that already logs with zap.
type ZapSink struct {
	mu  sync.Mutex
	log *zap.Logger
	buf [ZapLineSize]byte
	n   int
}

// NewZapSink returns a sink writing lines to l.
func NewZapSink(l *zap.Logger) *ZapSink {
	return &ZapSink{log: l}
}

func (s *ZapSink) WriteChar(c byte) {
	s.mu.Lock()
	s.put(c)
	s.mu.Unlock()
}

func (s *ZapSink) WriteString(str string) {
	s.mu.Lock()
	for i := 0; i < len(str); i++ {
		s.put(str[i])
	}
	s.mu.Unlock()
}

// Write implements io.Writer.
func (s *ZapSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	for _, c := range p {
		s.put(c)
	}
	s.mu.Unlock()
	return len(p), nil
}

// Sync emits any partial line and syncs the zap logger.
func (s *ZapSink) Sync() error {
	s.mu.Lock()
	if s.n > 0 {
		s.flush()
	}
	s.mu.Unlock()
	return s.log.Sync()
}

func (s *ZapSink) put(c byte) {
	if c == '\n' {
		s.flush()
		return
	}
	if s.n == len(s.buf) {
		s.flush()
	}
	s.buf[s.n] = c
	s.n++
}

func (s *ZapSink) flush() {
	n := s.n
	if n > 0 && s.buf[n-1] == '\r' {
		n--
	}
	s.n = 0
	if n == 0 {
		return
	}
	s.log.Info(string(s.buf[:n]))
}
