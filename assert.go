package mculog

import (
	"path/filepath"
	"runtime"
	"time"
)

// AssertSource is the source tag of the message logged by a failed Assert.
const AssertSource = "ASSERT"

// Assert logs a FATAL message naming the caller's file and line when cond is
// false, then calls the configured Halt function. With the default Halt the
// calling goroutine never returns, leaving the device parked where a debugger
// can inspect it.
func (l *Logger) Assert(cond bool) {
	if cond {
		return
	}
	file, line := "???", 0
	if _, f, ln, ok := runtime.Caller(1); ok {
		file, line = filepath.Base(f), ln
	}
	_, _ = l.Log(AssertSource, LevelFatal, "ASSERTION FAILED:\r\n\t--> File: %s\r\n\t--> Line: %u",
		String(file), Uint(uint32(line)))
	if l.halt == nil {
		haltForever()
	}
	l.halt()
}

func haltForever() {
	for {
		time.Sleep(time.Hour)
	}
}
