package mculog

import (
	"io"
	"runtime"
	"sync/atomic"
	"time"
)

// DefaultSerialTimeout bounds how long a single byte may wait for the port.
const DefaultSerialTimeout = time.Second

// SerialSink writes bytes directly to a serial port, without fmt. On TinyGo
// the port is usually machine.Serial.
type SerialSink struct {
	port    io.ByteWriter
	timeout time.Duration
	dropped atomic.Uint32
}

// NewSerialSink returns a sink writing to port. A byte the port keeps
// refusing for longer than timeout is dropped, so a disconnected USB host
// cannot stall the caller. A zero timeout means DefaultSerialTimeout.
func NewSerialSink(port io.ByteWriter, timeout time.Duration) *SerialSink {
	if timeout <= 0 {
		timeout = DefaultSerialTimeout
	}
	return &SerialSink{port: port, timeout: timeout}
}

func (s *SerialSink) WriteChar(c byte) {
	if s.port.WriteByte(c) == nil {
		return
	}
	deadline := time.Now().Add(s.timeout)
	for s.port.WriteByte(c) != nil {
		if time.Now().After(deadline) {
			s.dropped.Add(1)
			return
		}
		runtime.Gosched()
	}
}

func (s *SerialSink) WriteString(str string) {
	for i := 0; i < len(str); i++ {
		s.WriteChar(str[i])
	}
}

// Write implements io.Writer.
func (s *SerialSink) Write(p []byte) (int, error) {
	for _, c := range p {
		s.WriteChar(c)
	}
	return len(p), nil
}

// Dropped returns how many bytes timed out.
func (s *SerialSink) Dropped() uint32 {
	return s.dropped.Load()
}
