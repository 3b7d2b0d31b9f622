package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenUse(t *testing.T) {
	t.Parallel()

	tok := NewToken([]byte("api-token-1234"))
	defer tok.Destroy()

	var got string
	err := tok.Use(func(plain []byte) error {
		got = string(plain)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "api-token-1234", got)
	assert.False(t, tok.Empty())
}

func TestTokenEmpty(t *testing.T) {
	t.Parallel()

	tok := NewToken(nil)
	assert.True(t, tok.Empty())

	called := false
	require.NoError(t, tok.Use(func(plain []byte) error {
		called = true
		assert.Empty(t, plain)
		return nil
	}))
	assert.True(t, called)
}

func TestTokenDestroy(t *testing.T) {
	t.Parallel()

	tok := NewToken([]byte("short-lived"))
	tok.Destroy()
	tok.Destroy()

	err := tok.Use(func([]byte) error {
		t.Fatal("callback must not run after Destroy")
		return nil
	})
	assert.ErrorIs(t, err, ErrDestroyed)
}

func TestTokenUsePropagatesCallbackError(t *testing.T) {
	t.Parallel()

	tok := NewToken([]byte("value"))
	defer tok.Destroy()

	sentinel := assert.AnError
	assert.ErrorIs(t, tok.Use(func([]byte) error { return sentinel }), sentinel)
}
