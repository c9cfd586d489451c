//go:build linux || darwin

package mculog

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/creack/pty"
)

func TestConsoleSinkColorOnTTY(t *testing.T) {
	master, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, master)
		close(done)
	}()

	s := NewConsoleSink(tty)
	if !s.IsTerminal() {
		t.Errorf("Expected pty slave to be a terminal")
	}
	l := New(Config{Sink: s, Color: ColorAuto})
	l.Error("tty", "code %x", Uint(0xE1))

	_ = tty.Close()
	<-done
	_ = master.Close()

	out := buf.String()
	if !strings.Contains(out, ansiRed) || !strings.Contains(out, ansiReset) {
		t.Errorf("Expected ANSI colours on a terminal, got %q", out)
	}
	if !strings.Contains(out, "> [ERROR] tty: code E1") {
		t.Errorf("Expected the message, got %q", out)
	}
}
