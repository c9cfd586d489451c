package mculog

import (
	"errors"
	"fmt"
)

var (
	ErrPkg = errors.New("mculog")

	// Converter errors.
	ErrInvalidBase      = errors.New("base must be between 2 and 36")
	ErrInvalidPrecision = errors.New("decimal places must not be negative")
	ErrBufferTooSmall   = errors.New("buffer too small")
	ErrValueOutOfRange  = errors.New("value out of range")

	// Formatter errors. None of them stop the scan.
	ErrConversionFailed      = errors.New("conversion failed")
	ErrArgumentTypeMismatch  = errors.New("argument type does not match specifier")
	ErrMissingArgument       = errors.New("missing argument")
	ErrExtraArguments        = errors.New("extra arguments")
	ErrUnrecognizedSpecifier = errors.New("unrecognized specifier")

	// Front-end and sink errors.
	ErrUnknownLevel    = errors.New("unknown log level")
	ErrInvalidBaudRate = errors.New("invalid baud rate")
)

// FormatError describes one token of a format string that could not be
// rendered as requested.
type FormatError struct {
	// Offset is the byte offset of the '%' that started the token.
	Offset int
	// Verb is the specifier character, or 0 at end of string.
	Verb byte
	Err  error
}

func (e *FormatError) Error() string {
	if e.Verb == 0 {
		return fmt.Sprintf("%s: offset %d: %s", ErrPkg, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: offset %d: %%%c: %s", ErrPkg, e.Offset, e.Verb, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
