package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/systmms/cry/internal/cryptopus"
	"github.com/systmms/cry/pkg/secretstore"
)

// FakeVault is an in-memory vault.
type FakeVault struct {
	mu sync.Mutex

	// Accounts by id, looked up by GetAccount and FindAccountByName.
	Accounts map[int]cryptopus.Account
	// Secrets by folder id, in listing order.
	Secrets map[int][]secretstore.Secret
	// Err, when set, is returned by every call.
	Err error

	Calls []string
}

// NewFakeVault returns an empty vault.
func NewFakeVault() *FakeVault {
	return &FakeVault{
		Accounts: map[int]cryptopus.Account{},
		Secrets:  map[int][]secretstore.Secret{},
	}
}

func (f *FakeVault) record(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

func (f *FakeVault) GetAccount(_ context.Context, id int) (cryptopus.Account, error) {
	f.record("GetAccount %d", id)
	if f.Err != nil {
		return cryptopus.Account{}, f.Err
	}
	acc, ok := f.Accounts[id]
	if !ok {
		return cryptopus.Account{}, fmt.Errorf("get account %d: %w", id, cryptopus.ErrNotFound)
	}
	return acc, nil
}

func (f *FakeVault) ListSecrets(_ context.Context, folderID int) ([]secretstore.Secret, error) {
	f.record("ListSecrets %d", folderID)
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]secretstore.Secret(nil), f.Secrets[folderID]...), nil
}

func (f *FakeVault) FindSecretByName(_ context.Context, folderID int, name string) (secretstore.Secret, error) {
	f.record("FindSecretByName %d %s", folderID, name)
	if f.Err != nil {
		return secretstore.Secret{}, f.Err
	}
	for _, s := range f.Secrets[folderID] {
		if s.Name == name {
			return s, nil
		}
	}
	return secretstore.Secret{}, fmt.Errorf("find secret %q: %w", name, cryptopus.ErrNotFound)
}

func (f *FakeVault) FindAccountByName(_ context.Context, name string) (cryptopus.Account, error) {
	f.record("FindAccountByName %s", name)
	if f.Err != nil {
		return cryptopus.Account{}, f.Err
	}
	for _, acc := range f.Accounts {
		if acc.AccountName == name {
			return acc, nil
		}
	}
	return cryptopus.Account{}, fmt.Errorf("find account %q: %w", name, cryptopus.ErrNotFound)
}

// CallCount returns the number of recorded calls.
func (f *FakeVault) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
