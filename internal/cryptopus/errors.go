package cryptopus

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	dserrors "github.com/systmms/cry/internal/errors"
)

// Sentinel errors. Match with errors.Is.
var (
	ErrUnauthorized     = errors.New("cryptopus: unauthorized")
	ErrConnectionFailed = errors.New("cryptopus: connection failed")
	ErrNotFound         = errors.New("cryptopus: not found")
)

// APIError is a non-2xx vault response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: vault returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: vault returned status %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap maps the status code onto the sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Usage converts a client error into the operator-facing message. entity
// names what was looked up, as in "<entity> was not found".
func Usage(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnauthorized):
		return &dserrors.UsageError{
			Message:    "Authorization failed",
			Suggestion: "Check the API token, it may have expired. Log in again with 'cry login <credentials>@<url>'",
			Err:        err,
		}
	case errors.Is(err, ErrConnectionFailed):
		return &dserrors.UsageError{
			Message:    "Could not connect",
			Suggestion: "Check the vault URL and your network connection",
			Err:        err,
		}
	case errors.Is(err, ErrNotFound):
		return &dserrors.UsageError{Message: entity + " was not found", Err: err}
	case errors.Is(err, context.Canceled):
		return err
	}
	return &dserrors.UsageError{Message: "Unexpected vault response: " + err.Error(), Err: err}
}
