package mculog

import (
	"fmt"
	"math"
)

// digits is the shared alphabet for every base. Lowercase hex is not
// produced; %x and %X both render uppercase.
const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	// MinBase and MaxBase bound the base accepted by Utoa and Itoa.
	MinBase = 2
	MaxBase = 36

	// DefaultPrecision is used by Ftoa when zero decimal places are requested.
	DefaultPrecision = 2
)

// Utoa writes v in the given base into buf followed by a NUL terminator and
// returns the number of digits written.
//
// The digits must fit in len(buf)-1 bytes. On any error buf is left holding
// the empty string (buf[0] == 0) and the returned length is 0.
func Utoa(v uint32, buf []byte, base int) (int, error) {
	if base < MinBase || base > MaxBase {
		clear0(buf)
		return 0, fmt.Errorf("%w: %w: %d", ErrPkg, ErrInvalidBase, base)
	}
	n, ok := appendDigits(buf, uint64(v), uint64(base))
	if !ok {
		clear0(buf)
		return 0, fmt.Errorf("%w: %w", ErrPkg, ErrBufferTooSmall)
	}
	Reverse(buf[:n])
	buf[n] = 0
	return n, nil
}

// Itoa writes v in the given base into buf followed by a NUL terminator and
// returns the length written.
//
// A '-' is prepended only for negative values in base 10. Negative values in
// any other base are rendered as the digits of their magnitude without a sign,
// so Itoa(-255, buf, 16) yields "FF". math.MinInt32 is handled through a
// 64-bit magnitude and renders as "-2147483648".
func Itoa(v int32, buf []byte, base int) (int, error) {
	if base < MinBase || base > MaxBase {
		clear0(buf)
		return 0, fmt.Errorf("%w: %w: %d", ErrPkg, ErrInvalidBase, base)
	}
	mag := int64(v)
	if mag < 0 {
		mag = -mag
	}
	n, ok := appendDigits(buf, uint64(mag), uint64(base))
	if ok && v < 0 && base == 10 {
		if n+1 >= len(buf) {
			ok = false
		} else {
			buf[n] = '-'
			n++
		}
	}
	if !ok {
		clear0(buf)
		return 0, fmt.Errorf("%w: %w", ErrPkg, ErrBufferTooSmall)
	}
	Reverse(buf[:n])
	buf[n] = 0
	return n, nil
}

// Ftoa writes v with a fixed number of decimal places into buf followed by a
// NUL terminator and returns the length written. places == 0 means
// DefaultPrecision.
//
// The result is truncated, not rounded: fractional digits come from
// multiplying the remaining fraction by ten and dropping everything after the
// decimal point, so Ftoa(101.123456, buf, 4) yields "101.1234".
//
// If the output does not fit, buf is reset to the empty string and
// ErrBufferTooSmall is returned; partial output is never left behind.
func Ftoa(v float64, buf []byte, places int) (int, error) {
	if places < 0 {
		clear0(buf)
		return 0, fmt.Errorf("%w: %w: %d", ErrPkg, ErrInvalidPrecision, places)
	}
	if places == 0 {
		places = DefaultPrecision
	}

	switch {
	case math.IsNaN(v):
		return putSpecial(buf, "NaN")
	case math.IsInf(v, 1):
		return putSpecial(buf, "+Inf")
	case math.IsInf(v, -1):
		return putSpecial(buf, "-Inf")
	}

	neg := v < 0
	if neg {
		v = -v
	}
	whole := math.Trunc(v)
	if whole >= 1<<64 {
		clear0(buf)
		return 0, fmt.Errorf("%w: %w: %g", ErrPkg, ErrValueOutOfRange, v)
	}
	frac := v - whole

	n, ok := appendDigits(buf, uint64(whole), 10)
	if !ok {
		return overflow(buf)
	}
	if neg {
		if n+1 >= len(buf) {
			return overflow(buf)
		}
		buf[n] = '-'
		n++
	}
	Reverse(buf[:n])

	if n+1 >= len(buf) {
		return overflow(buf)
	}
	buf[n] = '.'
	n++
	for i := 0; i < places; i++ {
		if n+1 >= len(buf) {
			return overflow(buf)
		}
		frac *= 10
		d := int(frac)
		if d > 9 {
			d = 9
		}
		buf[n] = byte('0' + d)
		n++
		frac -= float64(d)
	}
	buf[n] = 0
	return n, nil
}

// Reverse reverses b in place.
func Reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// appendDigits writes the digits of v into buf least significant first and
// reports false if they would leave no room for the terminator.
func appendDigits(buf []byte, v, base uint64) (int, bool) {
	n := 0
	for {
		if n+1 >= len(buf) {
			return 0, false
		}
		buf[n] = digits[v%base]
		n++
		v /= base
		if v == 0 {
			return n, true
		}
	}
}

func putSpecial(buf []byte, s string) (int, error) {
	if len(s) >= len(buf) {
		return overflow(buf)
	}
	n := copy(buf, s)
	buf[n] = 0
	return n, nil
}

func overflow(buf []byte) (int, error) {
	clear0(buf)
	return 0, fmt.Errorf("%w: %w", ErrPkg, ErrBufferTooSmall)
}

// clear0 leaves buf holding the empty terminated string.
func clear0(buf []byte) {
	if len(buf) > 0 {
		buf[0] = 0
	}
}
