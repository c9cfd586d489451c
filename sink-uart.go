//go:build !tinygo

package mculog

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/uart"
	"periph.io/x/conn/v3/uart/uartreg"
	"periph.io/x/host/v3"
)

// DefaultUARTTimeout bounds a single transmit.
const DefaultUARTTimeout = time.Second

// UARTConfig holds the configuration for a UART sink on a Linux host
// (Raspberry Pi and similar boards) driven through periph.io.
type UARTConfig struct {
	// Port is the periph.io UART port name, alias or number.
	// Defaults to the first registered port if not provided.
	Port string
	// BaudRate is the line speed. Must not exceed MaxBaudRate.
	// Defaults to DefaultBaudRate if not provided.
	BaudRate int
	// Timeout bounds each transmit. Bytes that are not accepted in time are
	// dropped.
	// Defaults to DefaultUARTTimeout if not provided.
	Timeout time.Duration
	// Clock drives the transmit timeout.
	// Defaults to the real clock if not provided.
	Clock clockwork.Clock
}

func (c *UARTConfig) applyDefaults() error {
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.BaudRate < 0 || c.BaudRate > MaxBaudRate {
		return fmt.Errorf("%w: %w: %d (max %d)", ErrPkg, ErrInvalidBaudRate, c.BaudRate, MaxBaudRate)
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultUARTTimeout
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return nil
}

// UARTSink transmits formatted output over a UART connection. Every write is
// best effort: a transmit that does not finish within the timeout is
// abandoned, and while it is still pending later writes are dropped instead
// of queued.
type UARTSink struct {
	conn    conn.Conn
	timeout time.Duration
	clock   clockwork.Clock
	busy    chan struct{}
	dropped atomic.Uint64
	closer  io.Closer
}

// OpenUART initializes periph.io, opens the configured port as 8N1 without
// flow control and returns a sink writing to it.
func OpenUART(c UARTConfig) (*UARTSink, error) {
	if err := c.applyDefaults(); err != nil {
		return nil, err
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io host: %w", err)
	}

	p, err := uartreg.Open(c.Port)
	if err != nil {
		return nil, fmt.Errorf("failed to open UART port: %w", err)
	}

	s, err := connectUART(p, c)
	if err != nil {
		p.Close()
		return nil, err
	}
	s.closer = p
	return s, nil
}

func connectUART(p uart.Port, c UARTConfig) (*UARTSink, error) {
	if err := c.applyDefaults(); err != nil {
		return nil, err
	}
	cn, err := p.Connect(physic.Frequency(c.BaudRate)*physic.Hertz, uart.One, uart.NoParity, uart.NoFlow, 8)
	if err != nil {
		return nil, fmt.Errorf("failed to connect UART port %s: %w", p, err)
	}
	return newUARTSink(cn, c), nil
}

// NewUARTSink wraps an already connected conn. Only Timeout and Clock of c
// are used.
func NewUARTSink(cn conn.Conn, c UARTConfig) (*UARTSink, error) {
	if err := c.applyDefaults(); err != nil {
		return nil, err
	}
	return newUARTSink(cn, c), nil
}

func newUARTSink(cn conn.Conn, c UARTConfig) *UARTSink {
	return &UARTSink{
		conn:    cn,
		timeout: c.Timeout,
		clock:   c.Clock,
		busy:    make(chan struct{}, 1),
	}
}

func (s *UARTSink) WriteChar(c byte) {
	s.send([]byte{c})
}

func (s *UARTSink) WriteString(str string) {
	if str == "" {
		return
	}
	s.send([]byte(str))
}

// Write implements io.Writer. It never returns an error; see Dropped.
func (s *UARTSink) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	s.send(append([]byte(nil), p...))
	return len(p), nil
}

// Dropped returns how many bytes were discarded because the transmit failed,
// timed out or could not start while an earlier one was still pending.
func (s *UARTSink) Dropped() uint64 {
	return s.dropped.Load()
}

// Close closes the port opened by OpenUART. It is a no-op for sinks created
// with NewUARTSink.
func (s *UARTSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *UARTSink) String() string {
	return fmt.Sprintf("UARTSink{%s, timeout=%s}", s.conn, s.timeout)
}

// send owns p.
func (s *UARTSink) send(p []byte) {
	select {
	case s.busy <- struct{}{}:
	default:
		s.dropped.Add(uint64(len(p)))
		return
	}

	done := make(chan error, 1)
	go func() {
		err := s.conn.Tx(p, nil)
		<-s.busy
		done <- err
	}()

	t := s.clock.NewTimer(s.timeout)
	defer t.Stop()
	select {
	case err := <-done:
		if err != nil {
			s.dropped.Add(uint64(len(p)))
		}
	case <-t.Chan():
		s.dropped.Add(uint64(len(p)))
	}
}
