//go:build !tinygo

package mculog

import (
	"os"
	"sync"
)

var stdoutSink = sync.OnceValue(func() *ConsoleSink {
	return NewConsoleSink(os.Stdout)
})

// DefaultSink returns the console sink on standard output. Host builds have
// no UART target to detect, so output falls back to the console.
func DefaultSink() Sink {
	return stdoutSink()
}
