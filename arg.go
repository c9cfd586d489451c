package mculog

// ArgKind tags the value held by an Arg.
type ArgKind uint8

const (
	KindInvalid ArgKind = iota
	KindInt
	KindUint
	KindFloat
	KindChar
	KindString
)

func (k ArgKind) String() string {
	switch k {
	case KindInt:
		return "int32"
	case KindUint:
		return "uint32"
	case KindFloat:
		return "float64"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Arg is one formatting argument. Build it with Int, Uint, Float, Char or
// String; the zero Arg matches no specifier.
//
// Arg is a plain value so that passing arguments does not box them into
// interfaces on targets where every allocation counts.
type Arg struct {
	kind ArgKind
	bits uint64
	f    float64
	s    string
}

// Int returns an argument for %d and %i.
func Int(v int32) Arg { return Arg{kind: KindInt, bits: uint64(uint32(v))} }

// Uint returns an argument for %u, %x and %X.
func Uint(v uint32) Arg { return Arg{kind: KindUint, bits: uint64(v)} }

// Float returns an argument for %f and %.Nf.
func Float(v float64) Arg { return Arg{kind: KindFloat, f: v} }

// Char returns an argument for %c.
func Char(c byte) Arg { return Arg{kind: KindChar, bits: uint64(c)} }

// String returns an argument for %s.
func String(s string) Arg { return Arg{kind: KindString, s: s} }

// Kind reports which constructor built a.
func (a Arg) Kind() ArgKind { return a.kind }

func (a Arg) asInt() int32     { return int32(uint32(a.bits)) }
func (a Arg) asUint() uint32   { return uint32(a.bits) }
func (a Arg) asFloat() float64 { return a.f }
func (a Arg) asChar() byte     { return byte(a.bits) }
func (a Arg) asString() string { return a.s }
