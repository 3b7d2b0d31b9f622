package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ExitUsage is the process exit status for every handled failure (EX_USAGE).
const ExitUsage = 64

// UsageError is the single operator-facing failure class. Its message is
// printed on stderr and the process exits with ExitUsage.
type UsageError struct {
	Message    string
	Suggestion string
	Err        error
}

// Usage builds a UsageError with only a message.
func Usage(format string, args ...interface{}) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "usage error"
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// WithSuggestion returns a copy of e carrying a hint for the operator.
func (e *UsageError) WithSuggestion(s string) *UsageError {
	c := *e
	c.Suggestion = s
	return &c
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// CommandError represents a failed invocation of an external binary.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("Command '%s' failed", e.Command)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code: %d)", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned from the command pipeline to a process
// exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return ExitUsage
}

// Render formats err for stderr, adding the suggestion line of a UsageError.
func Render(err error) string {
	var ue *UsageError
	if errors.As(err, &ue) && ue.Suggestion != "" {
		return ue.Error() + "\n  💡 Try: " + ue.Suggestion
	}
	return err.Error()
}
