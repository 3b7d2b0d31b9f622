// Package dispatch runs every cry command through the same pipeline:
// structural validation, then session validation, then collaborator calls.
// The first failing step decides the result and later steps never run.
//
// Dispatch returns the stdout message on success. Every failure is a
// *errors.UsageError; printing and exiting is left to main.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/systmms/cry/internal/cryptopus"
	dserrors "github.com/systmms/cry/internal/errors"
	"github.com/systmms/cry/internal/logging"
	"github.com/systmms/cry/internal/platform"
	"github.com/systmms/cry/internal/secretsync"
	"github.com/systmms/cry/internal/session"
)

// Vault is the vault client surface used by the commands.
type Vault interface {
	secretsync.Vault
	GetAccount(ctx context.Context, id int) (cryptopus.Account, error)
}

// VaultFactory builds a client for an authenticated session. A client that
// implements io.Closer is closed after the command.
type VaultFactory func(s session.Session) Vault

// Options configures a Dispatcher.
type Options struct {
	Store session.Store
	Vault VaultFactory
	// Platforms maps tool names ("oc", "kubectl") to clients.
	Platforms map[string]platform.Client
	Logger    *logging.Logger
}

// Dispatcher executes commands against injected collaborators.
type Dispatcher struct {
	store     session.Store
	vault     VaultFactory
	platforms map[string]platform.Client
	logger    *logging.Logger
}

// New returns a dispatcher.
func New(opts Options) *Dispatcher {
	return &Dispatcher{
		store:     opts.Store,
		vault:     opts.Vault,
		platforms: opts.Platforms,
		logger:    opts.Logger,
	}
}

// Dispatch runs cmd and returns the success message.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (string, error) {
	switch c := cmd.(type) {
	case Login:
		return d.login(c)
	case Logout:
		return d.logout()
	case Account:
		return d.account(ctx, c)
	case Folder:
		return d.folder(c)
	case SecretPull:
		return d.pull(ctx, c)
	case SecretPush:
		return d.push(ctx, c)
	case SecretShow:
		return d.show(ctx, c)
	}
	return "", dserrors.Usage("Unknown command %T", cmd)
}

func (d *Dispatcher) login(c Login) (string, error) {
	creds, err := parseLogin(c.Arg)
	if err != nil {
		return "", err
	}
	d.logger.Debug("Logging in to %s as %q with token %s", creds.URL, creds.Username, logging.Secret(creds.Token))

	if err := d.store.Update(session.Login(creds.Token, creds.Username, creds.URL)); err != nil {
		return "", &dserrors.UsageError{Message: "Could not save session: " + err.Error(), Err: err}
	}
	return "Successfully logged in", nil
}

func (d *Dispatcher) logout() (string, error) {
	if err := d.store.Clear(); err != nil {
		return "", &dserrors.UsageError{Message: "Could not remove session: " + err.Error(), Err: err}
	}
	return "Successfully logged out", nil
}

func (d *Dispatcher) account(ctx context.Context, c Account) (string, error) {
	id, err := parseID(c.ID)
	if err != nil {
		return "", err
	}

	sess, err := d.authenticated()
	if err != nil {
		return "", err
	}

	var acc cryptopus.Account
	err = d.withVault(sess, func(v Vault) error {
		d.logger.Debug("Fetching account %d", id)
		var gerr error
		acc, gerr = v.GetAccount(ctx, id)
		return cryptopus.Usage(gerr, fmt.Sprintf("Account with id %d", id))
	})
	if err != nil {
		return "", err
	}

	switch c.Field {
	case FieldUsername:
		return acc.ClearTextUsername, nil
	case FieldPassword:
		return acc.ClearTextPassword, nil
	}
	return formatAccount(acc), nil
}

func (d *Dispatcher) folder(c Folder) (string, error) {
	id, err := parseID(c.ID)
	if err != nil {
		return "", err
	}

	if err := d.store.Update(session.Folder(id)); err != nil {
		return "", &dserrors.UsageError{Message: "Could not save session: " + err.Error(), Err: err}
	}
	return fmt.Sprintf("Selected Folder with id: %d", id), nil
}

func (d *Dispatcher) pull(ctx context.Context, c SecretPull) (string, error) {
	if len(c.Names) > 1 {
		return "", dserrors.Usage("Only a single or no arguments are allowed")
	}
	sess, err := d.folderSession()
	if err != nil {
		return "", err
	}
	client, err := d.platform(c.Tool)
	if err != nil {
		return "", err
	}

	var name string
	if len(c.Names) == 1 {
		name = c.Names[0]
	}

	var msg string
	err = d.withVault(sess, func(v Vault) error {
		d.logger.Debug("Pulling %q from folder %d with %s", name, *sess.FolderID, c.Tool)
		var perr error
		msg, perr = secretsync.New(v, client, c.Tool, d.logger).Pull(ctx, *sess.FolderID, name)
		return perr
	})
	return msg, err
}

func (d *Dispatcher) push(ctx context.Context, c SecretPush) (string, error) {
	switch {
	case len(c.Names) == 0:
		return "", dserrors.Usage("Secret name is missing")
	case len(c.Names) > 1:
		return "", dserrors.Usage("Only one secret can be pushed")
	}
	sess, err := d.folderSession()
	if err != nil {
		return "", err
	}
	client, err := d.platform(c.Tool)
	if err != nil {
		return "", err
	}

	var msg string
	err = d.withVault(sess, func(v Vault) error {
		d.logger.Debug("Pushing %q with %s", c.Names[0], c.Tool)
		var perr error
		msg, perr = secretsync.New(v, client, c.Tool, d.logger).Push(ctx, c.Names[0])
		return perr
	})
	return msg, err
}

func (d *Dispatcher) show(ctx context.Context, c SecretShow) (string, error) {
	switch {
	case len(c.Names) == 0:
		return "", dserrors.Usage("Secret name is missing")
	case len(c.Names) > 1:
		return "", dserrors.Usage("Only one secret can be shown")
	}
	client, err := d.platform(c.Tool)
	if err != nil {
		return "", err
	}

	s, err := secretsync.New(nil, client, c.Tool, d.logger).Show(ctx, c.Names[0])
	if err != nil {
		return "", err
	}
	out, err := platform.Render(s)
	if err != nil {
		return "", &dserrors.UsageError{Message: err.Error(), Err: err}
	}
	return strings.TrimRight(out, "\n"), nil
}

func (d *Dispatcher) authenticated() (session.Session, error) {
	sess := d.store.Load()
	if !sess.Authenticated() {
		return sess, dserrors.Usage("Not logged in").WithSuggestion(loginSuggestion)
	}
	d.logger.Debug("Using session of %q at %s", sess.Username, sess.URL)
	return sess, nil
}

func (d *Dispatcher) folderSession() (session.Session, error) {
	sess, err := d.authenticated()
	if err != nil {
		return sess, err
	}
	if !sess.HasFolder() {
		return sess, dserrors.Usage("Folder must be selected using cry folder <id>")
	}
	return sess, nil
}

func (d *Dispatcher) platform(tool string) (platform.Client, error) {
	client, ok := d.platforms[tool]
	if !ok || client == nil {
		return nil, dserrors.Usage("Unsupported platform tool %q", tool)
	}
	return client, nil
}

func (d *Dispatcher) withVault(sess session.Session, fn func(Vault) error) error {
	v := d.vault(sess)
	if c, ok := v.(io.Closer); ok {
		defer c.Close()
	}
	return fn(v)
}

func parseID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, dserrors.Usage("id missing")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &dserrors.UsageError{Message: "id invalid", Err: err}
	}
	return id, nil
}

func formatAccount(acc cryptopus.Account) string {
	lines := []string{
		"id: " + strconv.Itoa(acc.ID),
		"account: " + acc.AccountName,
		"username: " + acc.ClearTextUsername,
		"password: " + acc.ClearTextPassword,
		"type: " + acc.Type,
	}
	return strings.Join(lines, "\n")
}
