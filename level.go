package mculog

import "strings"

// Level is the severity of a log message.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal

	numLevels
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "Unknown LogLvl?"
	}
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l < numLevels
}

// ParseLevel converts a level name to a Level. WARN is accepted as an alias
// of WARNING.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarning, true
	case "ERROR":
		return LevelError, true
	case "FATAL":
		return LevelFatal, true
	default:
		return 0, false
	}
}

// ANSI colours used for the level label.
const (
	ansiReset   = "\x1b[0m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiCyan    = "\x1b[36m"
	ansiBoldRed = "\x1b[91m"
)

func (l Level) color() string {
	switch l {
	case LevelDebug:
		return ansiCyan
	case LevelInfo:
		return ansiGreen
	case LevelWarning:
		return ansiYellow
	case LevelError:
		return ansiRed
	case LevelFatal:
		return ansiBoldRed
	default:
		return ""
	}
}
