package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/systmms/cry/internal/platform"
	"github.com/systmms/cry/pkg/secretstore"
)

// FakePlatform is an in-memory platform project.
type FakePlatform struct {
	mu sync.Mutex

	Installed bool
	LoggedIn  bool
	// Store holds applied secrets by name.
	Store map[string]secretstore.Secret
	// ApplyErr maps secret names to apply failures.
	ApplyErr map[string]error

	Calls []string
}

// NewFakePlatform returns an installed, logged-in, empty project.
func NewFakePlatform() *FakePlatform {
	return &FakePlatform{
		Installed: true,
		LoggedIn:  true,
		Store:     map[string]secretstore.Secret{},
		ApplyErr:  map[string]error{},
	}
}

func (f *FakePlatform) record(call string) {
	f.Calls = append(f.Calls, call)
}

func (f *FakePlatform) IsToolInstalled(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("IsToolInstalled")
	return f.Installed
}

func (f *FakePlatform) IsLoggedIn(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("IsLoggedIn")
	return f.LoggedIn
}

func (f *FakePlatform) GetSecret(_ context.Context, name string) (secretstore.Secret, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetSecret " + name)
	s, ok := f.Store[name]
	if !ok {
		return secretstore.Secret{}, fmt.Errorf("get secret %q: %w", name, platform.ErrNotFound)
	}
	return s.Clone(), nil
}

func (f *FakePlatform) ApplySecret(_ context.Context, s secretstore.Secret) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ApplySecret " + s.Name)
	if err := f.ApplyErr[s.Name]; err != nil {
		return err
	}
	f.Store[s.Name] = s.Clone()
	return nil
}

var _ platform.Client = (*FakePlatform)(nil)
