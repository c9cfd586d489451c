//go:build tinygo

package mculog

import (
	"machine"
	"sync"
)

var (
	serialOnce sync.Once
	serialSink *SerialSink
)

// DefaultSink returns a sink on machine.Serial, the board's default serial
// port (USB CDC on most boards).
func DefaultSink() Sink {
	serialOnce.Do(func() {
		serialSink = NewSerialSink(machine.Serial, DefaultSerialTimeout)
	})
	return serialSink
}
