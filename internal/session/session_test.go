package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func intPtr(i int) *int { return &i }

func TestUpdateApply(t *testing.T) {
	t.Parallel()

	base := Session{Token: "tok", Username: "bob", URL: "https://vault", FolderID: intPtr(3)}

	got := Folder(9).Apply(base)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, "https://vault", got.URL)
	require.NotNil(t, got.FolderID)
	assert.Equal(t, 9, *got.FolderID)
	assert.Equal(t, 3, *base.FolderID, "Apply must not alias the input folder")

	got = Login("new", "alice", "https://other").Apply(base)
	assert.Equal(t, Session{Token: "new", Username: "alice", URL: "https://other", FolderID: intPtr(3)}, got)
}

func TestSessionPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, Session{}.IsZero())
	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{Token: "tok"}.Authenticated())
	assert.True(t, Session{Token: "tok", URL: "https://vault"}.Authenticated())
	assert.False(t, Session{Token: "tok"}.HasFolder())
	assert.True(t, Session{FolderID: intPtr(0)}.HasFolder())
}

func TestFileStoreMissingFile(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "nope", "session"), nil)
	assert.True(t, store.Load().IsZero())
	assert.NoError(t, store.Clear(), "clearing an absent session is not an error")
}

func TestFileStoreCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, os.WriteFile(path, []byte("token: [unterminated\n\t:::"), 0600))

	store := NewFileStore(path, nil)
	assert.True(t, store.Load().IsZero())

	require.NoError(t, store.Update(Folder(2)))
	s := store.Load()
	require.NotNil(t, s.FolderID)
	assert.Equal(t, 2, *s.FolderID)
	assert.Empty(t, s.Token)
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".ccli", "session")
	store := NewFileStore(path, nil)

	require.NoError(t, store.Update(Login("tok", "bob", "https://vault.example.com")))
	assert.Equal(t, Session{Token: "tok", Username: "bob", URL: "https://vault.example.com"}, store.Load())

	require.NoError(t, store.Update(Folder(42)))
	s := store.Load()
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, "bob", s.Username)
	assert.Equal(t, "https://vault.example.com", s.URL)
	require.NotNil(t, s.FolderID)
	assert.Equal(t, 42, *s.FolderID)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	require.NoError(t, store.Clear())
	assert.True(t, store.Load().IsZero())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreFieldsIndependent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Session
	}{
		{name: "folder only", in: Session{FolderID: intPtr(7)}},
		{name: "credentials only", in: Session{Token: "t", Username: "u", URL: "https://h"}},
		{name: "url only", in: Session{URL: "https://h"}},
		{name: "folder zero", in: Session{Token: "t", FolderID: intPtr(0)}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "session")
			data, err := encode(tt.in)
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(path, data, 0600))

			assert.Equal(t, tt.in, NewFileStore(path, nil).Load())
		})
	}
}

func TestFileStoreFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session")
	store := NewFileStore(path, nil)
	require.NoError(t, store.Update(Update{Token: strPtr("tok"), FolderID: intPtr(5)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "token: tok\nfolder: 5\n", string(data))
}

func strPtr(s string) *string { return &s }

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv("CRY_SESSION_FILE", "/tmp/custom-session")

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-session", p)
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()

	store := NewKeyringStore(nil)
	assert.True(t, store.Load().IsZero())

	require.NoError(t, store.Update(Login("tok", "bob", "https://vault")))
	require.NoError(t, store.Update(Folder(11)))

	s := store.Load()
	assert.Equal(t, "tok", s.Token)
	require.NotNil(t, s.FolderID)
	assert.Equal(t, 11, *s.FolderID)

	require.NoError(t, store.Clear())
	assert.True(t, store.Load().IsZero())
	assert.NoError(t, store.Clear())
}

func TestKeyringStoreCorruptItem(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set(keyringService, keyringAccount, "{{{not yaml"))

	assert.True(t, NewKeyringStore(nil).Load().IsZero())
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(Session{Token: "tok", URL: "https://vault"})
	require.NoError(t, store.Update(Folder(1)))

	s := store.Load()
	*s.FolderID = 99
	assert.Equal(t, 1, *store.Load().FolderID, "Load must return a copy")

	require.NoError(t, store.Clear())
	assert.True(t, store.Load().IsZero())
	assert.Equal(t, 2, store.Writes)
}
