// Package secretsync moves secrets between the vault and the container
// platform.
//
// Every precondition is checked in a fixed order and the first one that
// fails decides the reported error: the vault lookup, then the platform
// tool, then the platform session, then the write itself.
package secretsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/systmms/cry/internal/cryptopus"
	dserrors "github.com/systmms/cry/internal/errors"
	"github.com/systmms/cry/internal/logging"
	"github.com/systmms/cry/internal/platform"
	"github.com/systmms/cry/pkg/secretstore"
)

// Vault is the part of the vault client the engine needs.
type Vault interface {
	ListSecrets(ctx context.Context, folderID int) ([]secretstore.Secret, error)
	FindSecretByName(ctx context.Context, folderID int, name string) (secretstore.Secret, error)
	FindAccountByName(ctx context.Context, name string) (cryptopus.Account, error)
}

// Engine runs pull, push and show against one platform tool.
type Engine struct {
	vault    Vault
	platform platform.Client
	tool     string
	logger   *logging.Logger
}

// New returns an engine. tool is the name used in messages ("oc").
func New(vault Vault, client platform.Client, tool string, logger *logging.Logger) *Engine {
	return &Engine{vault: vault, platform: client, tool: tool, logger: logger}
}

// Pull copies vault secrets of the folder into the platform. An empty name
// copies every secret in the folder.
func (e *Engine) Pull(ctx context.Context, folderID int, name string) (string, error) {
	var secrets []secretstore.Secret
	if name != "" {
		s, err := e.vault.FindSecretByName(ctx, folderID, name)
		if err != nil {
			return "", cryptopus.Usage(err, notFoundEntity(name))
		}
		secrets = []secretstore.Secret{s}
	} else {
		list, err := e.vault.ListSecrets(ctx, folderID)
		if err != nil {
			return "", cryptopus.Usage(err, fmt.Sprintf("Folder with id %d", folderID))
		}
		secrets = list
	}
	e.logger.Debug("Resolved %d secret(s) in folder %d", len(secrets), folderID)

	if err := e.ensurePlatform(ctx); err != nil {
		return "", err
	}

	for _, s := range secrets {
		if err := e.apply(ctx, s); err != nil {
			return "", err
		}
	}

	if name != "" {
		return "Saved secret " + name, nil
	}
	return "Saved secrets of current project", nil
}

// Push applies the vault account called name to the platform as a secret.
func (e *Engine) Push(ctx context.Context, name string) (string, error) {
	acc, err := e.vault.FindAccountByName(ctx, name)
	if err != nil {
		return "", cryptopus.Usage(err, notFoundEntity(name))
	}
	s := acc.ToSecret()

	if err := e.ensurePlatform(ctx); err != nil {
		return "", err
	}
	if err := e.apply(ctx, s); err != nil {
		return "", err
	}
	return "Secret was successfully applied", nil
}

// Show reads a secret from the platform.
func (e *Engine) Show(ctx context.Context, name string) (secretstore.Secret, error) {
	if err := e.ensurePlatform(ctx); err != nil {
		return secretstore.Secret{}, err
	}
	s, err := e.platform.GetSecret(ctx, name)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return secretstore.Secret{}, &dserrors.UsageError{Message: notFoundEntity(name) + " was not found", Err: err}
		}
		return secretstore.Secret{}, &dserrors.UsageError{Message: fmt.Sprintf("Failed to read secret %s", name), Err: err}
	}
	return s, nil
}

// ensurePlatform checks the tool before the session; a missing binary
// skips the login probe.
func (e *Engine) ensurePlatform(ctx context.Context) error {
	if !e.platform.IsToolInstalled(ctx) {
		return dserrors.Usage("%s is not installed", e.tool).
			WithSuggestion(fmt.Sprintf("Install the %s client and make sure it is on your PATH", e.tool))
	}
	if !e.platform.IsLoggedIn(ctx) {
		return dserrors.Usage("%s is not logged in", e.tool).
			WithSuggestion(fmt.Sprintf("Log in with '%s login' and select a project", e.tool))
	}
	return nil
}

func (e *Engine) apply(ctx context.Context, s secretstore.Secret) error {
	if err := e.platform.ApplySecret(ctx, s); err != nil {
		var ve secretstore.ValidationError
		if errors.As(err, &ve) {
			return &dserrors.UsageError{Message: ve.Error(), Err: err}
		}
		return &dserrors.UsageError{Message: fmt.Sprintf("Failed to apply secret %s: %v", s.Name, err), Err: err}
	}
	e.logger.Debug("Applied secret %s", s.Name)
	return nil
}

func notFoundEntity(name string) string {
	return "secret with the given name " + name
}
