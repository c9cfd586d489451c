package mculog

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"testing"
)

// cstr returns the NUL terminated string held in buf.
func cstr(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

func filled(n int) []byte {
	return bytes.Repeat([]byte{'x'}, n)
}

func TestUtoaRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 9, 10, 35, 36, 255, 256, 65535, 0xDEADBEEF, math.MaxUint32 - 1, math.MaxUint32}
	// A few pseudo random values spread over the range.
	x := uint32(2463534242)
	for i := 0; i < 32; i++ {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		values = append(values, x)
	}

	buf := make([]byte, 33)
	for base := MinBase; base <= MaxBase; base++ {
		for _, v := range values {
			n, err := Utoa(v, buf, base)
			if err != nil {
				t.Fatalf("Utoa(%d, base %d) failed: %v", v, base, err)
			}
			s := cstr(buf)
			if len(s) != n {
				t.Errorf("Utoa(%d, base %d) returned length %d, string is %q", v, base, n, s)
			}
			got, err := strconv.ParseUint(s, base, 32)
			if err != nil {
				t.Fatalf("ParseUint(%q, %d): %v", s, base, err)
			}
			if uint32(got) != v {
				t.Errorf("Round trip in base %d: expected %d, got %d (%q)", base, v, got, s)
			}
		}
	}
}

func TestInvalidBase(t *testing.T) {
	for _, base := range []int{-1, 0, 1, 37, 100} {
		buf := filled(20)
		n, err := Utoa(42, buf, base)
		if !errors.Is(err, ErrInvalidBase) {
			t.Errorf("Utoa base %d: expected ErrInvalidBase, got %v", base, err)
		}
		if n != 0 || buf[0] != 0 {
			t.Errorf("Utoa base %d: expected empty string, got n=%d %q", base, n, cstr(buf))
		}

		buf = filled(20)
		n, err = Itoa(-42, buf, base)
		if !errors.Is(err, ErrInvalidBase) {
			t.Errorf("Itoa base %d: expected ErrInvalidBase, got %v", base, err)
		}
		if n != 0 || buf[0] != 0 {
			t.Errorf("Itoa base %d: expected empty string, got n=%d %q", base, n, cstr(buf))
		}
	}
}

func TestItoa(t *testing.T) {
	tests := []struct {
		v    int32
		base int
		want string
	}{
		{-255, 10, "-255"},
		{255, 16, "FF"},
		{-255, 16, "FF"},
		{0, 10, "0"},
		{7, 2, "111"},
		{-7, 2, "111"},
		{math.MaxInt32, 10, "2147483647"},
		{math.MinInt32, 10, "-2147483648"},
		{math.MinInt32, 16, "80000000"},
		{35, 36, "Z"},
	}
	for _, tt := range tests {
		buf := make([]byte, 20)
		n, err := Itoa(tt.v, buf, tt.base)
		if err != nil {
			t.Fatalf("Itoa(%d, %d) failed: %v", tt.v, tt.base, err)
		}
		if got := cstr(buf); got != tt.want || n != len(tt.want) {
			t.Errorf("Itoa(%d, %d): expected %q (%d), got %q (%d)", tt.v, tt.base, tt.want, len(tt.want), got, n)
		}
	}
}

func TestUtoaZero(t *testing.T) {
	buf := make([]byte, 20)
	n, err := Utoa(0, buf, 10)
	if err != nil {
		t.Fatalf("Utoa failed: %v", err)
	}
	if n != 1 || cstr(buf) != "0" {
		t.Errorf("Expected \"0\" length 1, got %q length %d", cstr(buf), n)
	}
}

func TestFtoa(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   string
	}{
		{101.123456, 4, "101.1234"},
		{-3.5, 0, "-3.50"},
		{-0.5, 2, "-0.50"},
		{0, 0, "0.00"},
		{math.Copysign(0, -1), 2, "0.00"},
		{1.5, 1, "1.5"},
		{2.675, 2, "2.67"},
		{0.999999, 3, "0.999"},
		{42, 6, "42.000000"},
		{-2147483648.25, 2, "-2147483648.25"},
		{math.NaN(), 2, "NaN"},
		{math.Inf(1), 2, "+Inf"},
		{math.Inf(-1), 2, "-Inf"},
	}
	for _, tt := range tests {
		buf := make([]byte, 20)
		n, err := Ftoa(tt.v, buf, tt.places)
		if err != nil {
			t.Fatalf("Ftoa(%g, %d) failed: %v", tt.v, tt.places, err)
		}
		if got := cstr(buf); got != tt.want || n != len(tt.want) {
			t.Errorf("Ftoa(%g, %d): expected %q (%d), got %q (%d)", tt.v, tt.places, tt.want, len(tt.want), got, n)
		}
	}
}

func TestFtoaErrors(t *testing.T) {
	buf := filled(20)
	if _, err := Ftoa(1e20, buf, 2); !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("Expected ErrValueOutOfRange, got %v", err)
	}
	if buf[0] != 0 {
		t.Errorf("Expected empty string, got %q", cstr(buf))
	}

	buf = filled(20)
	if _, err := Ftoa(1, buf, -1); !errors.Is(err, ErrInvalidPrecision) {
		t.Errorf("Expected ErrInvalidPrecision, got %v", err)
	}
	if buf[0] != 0 {
		t.Errorf("Expected empty string, got %q", cstr(buf))
	}
}

func TestBufferTooSmall(t *testing.T) {
	convs := []struct {
		name string
		fn   func(buf []byte) (int, error)
		want string
	}{
		{"Utoa", func(b []byte) (int, error) { return Utoa(12345, b, 10) }, "12345"},
		{"Utoa hex", func(b []byte) (int, error) { return Utoa(0xDEADBEEF, b, 16) }, "DEADBEEF"},
		{"Itoa", func(b []byte) (int, error) { return Itoa(-1234, b, 10) }, "-1234"},
		{"Ftoa", func(b []byte) (int, error) { return Ftoa(-3.5, b, 2) }, "-3.50"},
		{"Ftoa places", func(b []byte) (int, error) { return Ftoa(12.25, b, 6) }, "12.250000"},
		{"Ftoa special", func(b []byte) (int, error) { return Ftoa(math.Inf(-1), b, 2) }, "-Inf"},
	}
	for _, c := range convs {
		// Exactly enough room: the string plus its terminator.
		buf := filled(len(c.want) + 1)
		n, err := c.fn(buf)
		if err != nil || cstr(buf) != c.want || n != len(c.want) {
			t.Errorf("%s with capacity %d: expected %q, got %q (n=%d, err=%v)", c.name, len(buf), c.want, cstr(buf), n, err)
		}

		// Every smaller capacity must fail and leave an empty string.
		for size := len(c.want); size >= 1; size-- {
			buf := filled(size)
			n, err := c.fn(buf)
			if !errors.Is(err, ErrBufferTooSmall) {
				t.Errorf("%s with capacity %d: expected ErrBufferTooSmall, got %v", c.name, size, err)
			}
			if n != 0 || buf[0] != 0 {
				t.Errorf("%s with capacity %d: expected empty string, got %q (n=%d)", c.name, size, cstr(buf), n)
			}
		}

		if _, err := c.fn(nil); !errors.Is(err, ErrBufferTooSmall) {
			t.Errorf("%s with nil buffer: expected ErrBufferTooSmall, got %v", c.name, err)
		}
	}
}

func TestReverse(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"a", "a"},
		{"ab", "ba"},
		{"abc", "cba"},
		{"-123", "321-"},
	}
	for _, tt := range tests {
		b := []byte(tt.in)
		Reverse(b)
		if string(b) != tt.want {
			t.Errorf("Reverse(%q): expected %q, got %q", tt.in, tt.want, b)
		}
	}
	Reverse(nil)
}

func TestConvertersNoAlloc(t *testing.T) {
	buf := make([]byte, ConversionBufferSize)

	allocs := testing.AllocsPerRun(1000, func() {
		if _, err := Utoa(math.MaxUint32, buf, 16); err != nil {
			t.Fatalf("Utoa failed: %v", err)
		}
		if _, err := Itoa(math.MinInt32, buf, 10); err != nil {
			t.Fatalf("Itoa failed: %v", err)
		}
		if _, err := Ftoa(-101.123456, buf, 6); err != nil {
			t.Fatalf("Ftoa failed: %v", err)
		}
		Reverse(buf[:8])
	})
	if allocs != 0 {
		t.Fatalf("Expected 0 allocs per conversion, got %.2f", allocs)
	}
}
