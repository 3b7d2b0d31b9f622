package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/cry/internal/errors"
)

func TestUsageErrorMessage(t *testing.T) {
	t.Parallel()

	err := errors.Usage("Selected Folder with id: %d", 3)
	assert.Equal(t, "Selected Folder with id: 3", err.Error())

	wrapped := &errors.UsageError{Err: fmt.Errorf("boom")}
	assert.Equal(t, "boom", wrapped.Error())

	assert.Equal(t, "usage error", (&errors.UsageError{}).Error())
}

func TestUsageErrorUnwrap(t *testing.T) {
	t.Parallel()

	sentinel := stderrors.New("unauthorized")
	err := &errors.UsageError{Message: "Authorization failed", Err: fmt.Errorf("get account: %w", sentinel)}

	assert.True(t, stderrors.Is(err, sentinel))

	var ue *errors.UsageError
	require.True(t, stderrors.As(fmt.Errorf("outer: %w", err), &ue))
	assert.Equal(t, "Authorization failed", ue.Message)
}

func TestRenderAddsSuggestion(t *testing.T) {
	t.Parallel()

	base := errors.Usage("Not logged in")
	withHint := base.WithSuggestion("cry login <credentials>@<url>")

	assert.Equal(t, "Not logged in", errors.Render(base))
	assert.Contains(t, errors.Render(withHint), "Try: cry login <credentials>@<url>")
	assert.Empty(t, base.Suggestion, "WithSuggestion must not mutate the receiver")
	assert.Equal(t, "plain", errors.Render(stderrors.New("plain")))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, errors.ExitCode(nil))
	assert.Equal(t, errors.ExitUsage, errors.ExitCode(errors.Usage("id missing")))
	assert.Equal(t, errors.ExitUsage, errors.ExitCode(stderrors.New("unknown command")))
}

func TestConfigErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.ConfigError{
		Field:      "session_backend",
		Value:      "floppy",
		Message:    "unsupported backend",
		Suggestion: "Use 'file' or 'keyring'",
	}

	msg := err.Error()
	assert.Contains(t, msg, "session_backend")
	assert.Contains(t, msg, "floppy")
	assert.Contains(t, msg, "unsupported backend")
	assert.Contains(t, msg, "Use 'file' or 'keyring'")
}

func TestCommandErrorFormatting(t *testing.T) {
	t.Parallel()

	err := &errors.CommandError{
		Command:  "oc apply -f -",
		ExitCode: 1,
		Stderr:   "error: forbidden\n",
	}
	assert.Equal(t, "Command 'oc apply -f -' failed (exit code: 1): error: forbidden", err.Error())

	cause := stderrors.New("signal: killed")
	err = &errors.CommandError{Command: "oc project -q", Err: cause}
	assert.Equal(t, "Command 'oc project -q' failed: signal: killed", err.Error())
	assert.True(t, stderrors.Is(err, cause))
}
