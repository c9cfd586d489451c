// Package mculog is a small logger and printf-style formatter for
// microcontrollers. On a host without a UART target it falls back to the
// console.
//
// The formatter understands %s %c %u %d %i %x %X %f %.Nf (N in 1..6) and %%.
// Anything else is echoed as written.
package mculog

import (
	"fmt"

	"go.uber.org/multierr"
)

const (
	// ConversionBufferSize is the size of the stack buffer that holds one
	// converted number.
	ConversionBufferSize = 20

	// MaxPrecision is the largest N accepted in %.Nf.
	MaxPrecision = 6
)

// Fprintf formats according to format and writes the result to s. It returns
// the number of bytes handed to s.
//
// Formatting never stops early. A token that cannot be rendered is either
// echoed (unknown specifiers) or left out (missing or mismatched arguments,
// numbers that do not fit the conversion buffer), and the returned error
// collects one *FormatError per such token. Use multierr.Errors to list them.
func Fprintf(s Sink, format string, args ...Arg) (int, error) {
	p := printer{sink: s, args: args}
	p.run(format)
	return p.n, p.err
}

// Sprintf formats into buf, keeping the output NUL terminated, and returns
// the number of bytes stored. Output that does not fit is dropped and
// ErrBufferTooSmall is added to the returned error.
func Sprintf(buf []byte, format string, args ...Arg) (int, error) {
	bs := bufferSink{buf: buf}
	p := printer{buf: &bs, args: args}
	p.run(format)
	bs.terminate()
	err := p.err
	if bs.overflow {
		err = multierr.Append(err, fmt.Errorf("%w: %w", ErrPkg, ErrBufferTooSmall))
	}
	return bs.n, err
}

// printer holds one formatting pass. Exactly one of sink and buf is set; buf
// keeps Sprintf off the interface path.
type printer struct {
	sink Sink
	buf  *bufferSink
	args []Arg
	next int
	n    int
	err  error

	scratch [ConversionBufferSize]byte
}

func (p *printer) run(format string) {
	p.scan(format)
	if p.next < len(p.args) {
		p.fail(len(format), 0, fmt.Errorf("%w: %d unused", ErrExtraArguments, len(p.args)-p.next))
	}
}

func (p *printer) scan(format string) {
	i := 0
	for i < len(format) {
		if format[i] != '%' {
			j := i + 1
			for j < len(format) && format[j] != '%' {
				j++
			}
			p.writeString(format[i:j])
			i = j
			continue
		}

		start := i
		i++
		if i >= len(format) {
			return
		}
		verb := format[i]
		i++

		switch verb {
		case 's':
			if a, ok := p.arg(start, verb, KindString); ok {
				p.writeString(a.asString())
			}
		case 'c':
			if a, ok := p.arg(start, verb, KindChar); ok {
				p.writeChar(a.asChar())
			}
		case 'u':
			if a, ok := p.arg(start, verb, KindUint); ok {
				n, err := Utoa(a.asUint(), p.scratch[:], 10)
				p.emit(start, verb, n, err)
			}
		case 'd', 'i':
			if a, ok := p.arg(start, verb, KindInt); ok {
				n, err := Itoa(a.asInt(), p.scratch[:], 10)
				p.emit(start, verb, n, err)
			}
		case 'x', 'X':
			if a, ok := p.arg(start, verb, KindUint); ok {
				n, err := Utoa(a.asUint(), p.scratch[:], 16)
				p.emit(start, verb, n, err)
			}
		case '%':
			p.writeChar('%')
		case 'f':
			p.float(start, DefaultPrecision)
		case '.':
			if i >= len(format) {
				p.writeChar('.')
				p.fail(start, verb, ErrUnrecognizedSpecifier)
				return
			}
			d := format[i]
			i++
			if d < '1' || d > '0'+MaxPrecision {
				p.writeChar('.')
				p.writeChar(d)
				p.fail(start, verb, fmt.Errorf("%w: precision %q", ErrUnrecognizedSpecifier, d))
				continue
			}
			p.float(start, int(d-'0'))
			// Skip the trailing 'f'.
			if i < len(format) {
				i++
			}
		default:
			p.writeChar('%')
			p.writeChar(verb)
			p.fail(start, verb, ErrUnrecognizedSpecifier)
		}
	}
}

func (p *printer) float(start, places int) {
	if a, ok := p.arg(start, 'f', KindFloat); ok {
		n, err := Ftoa(a.asFloat(), p.scratch[:], places)
		p.emit(start, 'f', n, err)
	}
}

// arg consumes the next argument and checks it against kind. A mismatched
// argument is still consumed so later specifiers stay aligned.
func (p *printer) arg(start int, verb byte, kind ArgKind) (Arg, bool) {
	if p.next >= len(p.args) {
		p.fail(start, verb, ErrMissingArgument)
		return Arg{}, false
	}
	a := p.args[p.next]
	p.next++
	if a.kind != kind {
		p.fail(start, verb, fmt.Errorf("%w: have %s, want %s", ErrArgumentTypeMismatch, a.kind, kind))
		return Arg{}, false
	}
	return a, true
}

// emit writes the converted token in p.scratch, or records the conversion
// failure and writes nothing.
func (p *printer) emit(start int, verb byte, n int, err error) {
	if err != nil {
		p.fail(start, verb, fmt.Errorf("%w: %w", ErrConversionFailed, err))
		return
	}
	for i := 0; i < n; i++ {
		p.writeChar(p.scratch[i])
	}
}

func (p *printer) writeChar(c byte) {
	if p.buf != nil {
		p.buf.WriteChar(c)
	} else {
		p.sink.WriteChar(c)
	}
	p.n++
}

func (p *printer) writeString(s string) {
	if p.buf != nil {
		p.buf.WriteString(s)
	} else {
		p.sink.WriteString(s)
	}
	p.n += len(s)
}

func (p *printer) fail(offset int, verb byte, err error) {
	p.err = multierr.Append(p.err, &FormatError{Offset: offset, Verb: verb, Err: err})
}
