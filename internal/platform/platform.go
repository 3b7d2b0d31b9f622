// Package platform drives the container platform CLI (oc or kubectl) to
// read and write secrets in the currently selected project.
package platform

import (
	"context"
	"errors"

	"github.com/systmms/cry/pkg/secretstore"
)

// ErrNotFound is returned by GetSecret when the secret does not exist.
var ErrNotFound = errors.New("platform: secret not found")

// Client is the narrow surface the command core uses. Callers must check
// IsToolInstalled, then IsLoggedIn, before GetSecret or ApplySecret.
type Client interface {
	// IsToolInstalled probes for the binary on PATH.
	IsToolInstalled(ctx context.Context) bool
	// IsLoggedIn probes the current platform session and project.
	IsLoggedIn(ctx context.Context) bool
	// GetSecret reads a secret from the current project.
	GetSecret(ctx context.Context, name string) (secretstore.Secret, error)
	// ApplySecret creates or replaces a secret in the current project.
	ApplySecret(ctx context.Context, s secretstore.Secret) error
}

// Tool describes how to talk to one platform binary.
type Tool struct {
	// Name is the operator-facing name used in messages.
	Name string
	// Binary is the executable looked up on PATH.
	Binary string
	// LoginArgs is a read-only command that succeeds only with a valid
	// session and selected project.
	LoginArgs []string
}

// OpenShift returns the descriptor for oc.
func OpenShift(binary string) Tool {
	if binary == "" {
		binary = "oc"
	}
	return Tool{Name: "oc", Binary: binary, LoginArgs: []string{"project", "-q"}}
}

// Kubernetes returns the descriptor for kubectl.
func Kubernetes(binary string) Tool {
	if binary == "" {
		binary = "kubectl"
	}
	return Tool{Name: "kubectl", Binary: binary, LoginArgs: []string{"config", "current-context"}}
}
