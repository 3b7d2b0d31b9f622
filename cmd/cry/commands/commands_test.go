package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/cry/internal/config"
	"github.com/systmms/cry/internal/cryptopus"
	"github.com/systmms/cry/internal/dispatch"
	dserrors "github.com/systmms/cry/internal/errors"
	"github.com/systmms/cry/internal/platform"
	"github.com/systmms/cry/internal/session"
	"github.com/systmms/cry/pkg/secretstore"
	"github.com/systmms/cry/tests/fakes"
)

type fixture struct {
	cfg   *config.Config
	store *session.MemoryStore
	vault *fakes.FakeVault
	oc    *fakes.FakePlatform
	kube  *fakes.FakePlatform
}

func newFixture(initial session.Session) *fixture {
	f := &fixture{
		store: session.NewMemoryStore(initial),
		vault: fakes.NewFakeVault(),
		oc:    fakes.NewFakePlatform(),
		kube:  fakes.NewFakePlatform(),
	}
	f.cfg = &config.Config{
		Dispatcher: dispatch.New(dispatch.Options{
			Store:     f.store,
			Vault:     func(session.Session) dispatch.Vault { return f.vault },
			Platforms: map[string]platform.Client{"oc": f.oc, "kubectl": f.kube},
		}),
	}
	return f
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func folder(id int) *int { return &id }

func TestLoginCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(session.Session{})
	out, err := runCommand(t, NewLoginCommand(f.cfg), "tok@https://vault.example.com")
	require.NoError(t, err)
	assert.Equal(t, "Successfully logged in\n", out)
	assert.Equal(t, session.Session{Token: "tok", URL: "https://vault.example.com"}, f.store.Load())

	_, err = runCommand(t, NewLoginCommand(f.cfg))
	require.Error(t, err)
	assert.Equal(t, "Credentials missing", err.Error())
	assert.Equal(t, dserrors.ExitUsage, dserrors.ExitCode(err))
}

func TestLogoutCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(session.Session{Token: "tok", URL: "https://v", FolderID: folder(1)})
	out, err := runCommand(t, NewLogoutCommand(f.cfg))
	require.NoError(t, err)
	assert.Equal(t, "Successfully logged out\n", out)
	assert.True(t, f.store.Load().IsZero())

	_, err = runCommand(t, NewLogoutCommand(f.cfg), "extra")
	assert.Error(t, err)
}

func TestAccountCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "full", args: []string{"7"}, want: "id: 7\naccount: mail\nusername: alice\npassword: pw\ntype: account_credentials\n"},
		{name: "username", args: []string{"7", "--username"}, want: "alice\n"},
		{name: "password", args: []string{"--password", "7"}, want: "pw\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(session.Session{Token: "tok", URL: "https://v"})
			f.vault.Accounts[7] = cryptopus.Account{ID: 7, AccountName: "mail", ClearTextUsername: "alice", ClearTextPassword: "pw", Type: cryptopus.TypeCredentials}

			out, err := runCommand(t, NewAccountCommand(f.cfg), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestAccountCommand_FlagsAreExclusive(t *testing.T) {
	t.Parallel()

	f := newFixture(session.Session{Token: "tok", URL: "https://v"})
	_, err := runCommand(t, NewAccountCommand(f.cfg), "7", "--username", "--password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
	assert.Zero(t, f.vault.CallCount())
}

func TestAccountCommand_NotLoggedIn(t *testing.T) {
	t.Parallel()

	f := newFixture(session.Session{})
	_, err := runCommand(t, NewAccountCommand(f.cfg), "7")
	require.Error(t, err)
	assert.Equal(t, "Not logged in", err.Error())
	assert.Zero(t, f.vault.CallCount())
}

func TestFolderCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(session.Session{Token: "tok", URL: "https://v"})
	out, err := runCommand(t, NewFolderCommand(f.cfg), "12")
	require.NoError(t, err)
	assert.Equal(t, "Selected Folder with id: 12\n", out)

	_, err = runCommand(t, NewFolderCommand(f.cfg), "twelve")
	assert.EqualError(t, err, "id invalid")

	_, err = runCommand(t, NewFolderCommand(f.cfg))
	assert.EqualError(t, err, "id missing")
}

func findCommand(t *testing.T, cmds []*cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range cmds {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("command %s not registered", name)
	return nil
}

func TestSecretCommands_Registered(t *testing.T) {
	t.Parallel()

	cmds := NewSecretCommands(&config.Config{})
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{
		"ose-secret-pull", "ose-secret-push", "ose-secret-show",
		"k8s-secret-pull", "k8s-secret-push", "k8s-secret-show",
	}, names)
}

func TestSecretPullCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(session.Session{Token: "tok", URL: "https://v", FolderID: folder(3)})
	f.vault.Secrets[3] = []secretstore.Secret{secretstore.New("db", map[string]string{"data": "x"})}

	out, err := runCommand(t, findCommand(t, NewSecretCommands(f.cfg), "ose-secret-pull"))
	require.NoError(t, err)
	assert.Equal(t, "Saved secrets of current project\n", out)
	assert.Contains(t, f.oc.Store, "db")
	assert.Empty(t, f.kube.Calls)

	_, err = runCommand(t, findCommand(t, NewSecretCommands(f.cfg), "ose-secret-pull"), "a", "b")
	assert.EqualError(t, err, "Only a single or no arguments are allowed")
}

func TestSecretPushCommand_Kubernetes(t *testing.T) {
	t.Parallel()

	f := newFixture(session.Session{Token: "tok", URL: "https://v", FolderID: folder(3)})
	f.vault.Accounts[1] = cryptopus.Account{ID: 1, AccountName: "web", ClearTextPassword: "pw"}
	f.kube.Installed = false

	_, err := runCommand(t, findCommand(t, NewSecretCommands(f.cfg), "k8s-secret-push"), "web")
	assert.EqualError(t, err, "kubectl is not installed")
	assert.Equal(t, []string{"IsToolInstalled"}, f.kube.Calls)
	assert.Empty(t, f.oc.Calls)
}

func TestSecretShowCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(session.Session{})
	f.oc.Store["db"] = secretstore.New("db", map[string]string{"user": "app"})

	out, err := runCommand(t, findCommand(t, NewSecretCommands(f.cfg), "ose-secret-show"), "db")
	require.NoError(t, err)
	assert.Equal(t, "name: db\ndata:\n    user: app\n", out)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, NewVersionCommand(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"}))
	require.NoError(t, err)
	assert.Contains(t, out, "cry 1.2.3 (commit: abc, built: today)")
}

func TestCompletionCommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "cry"}
	root.AddCommand(NewCompletionCommand(&config.Config{}))

	out, err := runCommand(t, root, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")

	_, err = runCommand(t, root, "completion", "tcsh")
	assert.Error(t, err)
}
