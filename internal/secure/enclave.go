package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrDestroyed is returned by Use after Destroy.
var ErrDestroyed = errors.New("secure: token destroyed")

// Token is a credential sealed in a memguard enclave.
type Token struct {
	mu        sync.RWMutex
	enclave   *memguard.Enclave
	empty     bool
	destroyed bool
}

// NewToken seals data. memguard wipes the source slice, so callers should
// not reuse it.
func NewToken(data []byte) *Token {
	if len(data) == 0 {
		// memguard refuses to build an enclave from zero bytes.
		return &Token{empty: true}
	}
	return &Token{enclave: memguard.NewEnclave(data)}
}

// Empty reports whether the sealed value has zero length.
func (t *Token) Empty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.empty
}

// Use decrypts the token into a locked buffer, passes the plaintext to fn and
// wipes the buffer afterwards. fn must not retain the slice.
func (t *Token) Use(fn func(plain []byte) error) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.destroyed {
		return ErrDestroyed
	}
	if t.empty {
		return fn(nil)
	}

	locked, err := t.enclave.Open()
	if err != nil {
		return err
	}
	defer locked.Destroy()

	return fn(locked.Bytes())
}

// Destroy drops the enclave. Further calls to Use fail. Idempotent.
func (t *Token) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enclave = nil
	t.destroyed = true
}
