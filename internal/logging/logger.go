package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Logger provides leveled logging to stderr with redaction support
type Logger struct {
	debug   bool
	noColor bool
	out     io.Writer
}

// New creates a logger writing to stderr. Color is only used when stderr is
// a terminal.
func New(debug, noColor bool) *Logger {
	if !noColor && !term.IsTerminal(int(os.Stderr.Fd())) {
		noColor = true
	}
	return &Logger{
		debug:   debug,
		noColor: noColor,
		out:     os.Stderr,
	}
}

// NewWithWriter creates an uncolored logger writing to w.
func NewWithWriter(w io.Writer, debug bool) *Logger {
	return &Logger{
		debug:   debug,
		noColor: true,
		out:     w,
	}
}

// DebugEnabled reports whether Debug messages are emitted.
func (l *Logger) DebugEnabled() bool {
	return l != nil && l.debug
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.print("\033[33m⚠\033[0m", "⚠", format, args...)
}

// Debug logs a debug message if debug mode is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if l == nil || !l.debug {
		return
	}
	l.print("\033[36m[DEBUG]\033[0m", "[DEBUG]", format, args...)
}

func (l *Logger) print(colored, plain, format string, args ...interface{}) {
	if l == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	prefix := colored
	if l.noColor {
		prefix = plain
	}
	fmt.Fprintf(l.out, "%s %s\n", prefix, msg)
}

// Secret represents a value that should be redacted in logs
type Secret string

// String implements the Stringer interface, always returning a redacted value
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements the GoStringer interface for %#v formatting
func (s Secret) GoString() string {
	return "[REDACTED]"
}

// Redact replaces sensitive values in a string with [REDACTED]
func Redact(s string, secrets []string) string {
	result := s
	for _, secret := range secrets {
		if secret != "" && len(secret) > 3 { // Only redact non-trivial secrets
			result = strings.ReplaceAll(result, secret, "[REDACTED]")
		}
	}
	return result
}
