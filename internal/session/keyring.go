package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/systmms/cry/internal/logging"
)

const (
	keyringService = "cry"
	keyringAccount = "session"
)

// KeyringStore keeps the session document in the OS keyring (Secret
// Service, macOS Keychain or Windows Credential Manager).
type KeyringStore struct {
	service string
	account string
	logger  *logging.Logger
}

// NewKeyringStore returns a store using the default keyring item.
func NewKeyringStore(logger *logging.Logger) *KeyringStore {
	return &KeyringStore{service: keyringService, account: keyringAccount, logger: logger}
}

// Load reads the keyring item.
func (k *KeyringStore) Load() Session {
	data, err := keyring.Get(k.service, k.account)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			k.logger.Debug("Ignoring unreadable keyring session: %v", err)
		}
		return Session{}
	}
	s, err := decode([]byte(data))
	if err != nil {
		k.logger.Debug("Ignoring corrupt keyring session: %v", err)
		return Session{}
	}
	return s
}

// Update merges u into the keyring item. Keyring writes replace the whole
// item, so the update is atomic.
func (k *KeyringStore) Update(u Update) error {
	data, err := encode(u.Apply(k.Load()))
	if err != nil {
		return fmt.Errorf("cannot marshal session: %w", err)
	}
	if err := keyring.Set(k.service, k.account, string(data)); err != nil {
		return fmt.Errorf("cannot store session in keyring: %w", err)
	}
	return nil
}

// Clear deletes the keyring item.
func (k *KeyringStore) Clear() error {
	if err := keyring.Delete(k.service, k.account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("cannot remove session from keyring: %w", err)
	}
	return nil
}

var _ Store = (*KeyringStore)(nil)
