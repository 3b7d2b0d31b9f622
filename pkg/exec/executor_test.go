package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealCommandExecutor_Execute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		command     string
		args        []string
		wantSuccess bool
		wantOutput  string
	}{
		{name: "echo command", command: "echo", args: []string{"hello"}, wantSuccess: true, wantOutput: "hello\n"},
		{name: "which finds sh", command: "which", args: []string{"sh"}, wantSuccess: true},
		{name: "invalid command", command: "nonexistent_command_xyz123", wantSuccess: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := &RealCommandExecutor{}
			stdout, stderr, err := executor.Execute(context.Background(), tt.command, tt.args...)

			if !tt.wantSuccess {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, stderr)
			if tt.wantOutput != "" {
				assert.Equal(t, tt.wantOutput, string(stdout))
			}
		})
	}
}

func TestRealCommandExecutor_ExecuteWithInput(t *testing.T) {
	t.Parallel()

	executor := &RealCommandExecutor{}
	stdout, _, err := executor.ExecuteWithInput(context.Background(), []byte("kind: Secret\n"), "cat")

	require.NoError(t, err)
	assert.Equal(t, "kind: Secret\n", string(stdout))
}

func TestRealCommandExecutor_ContextCancellation(t *testing.T) {
	t.Parallel()

	executor := &RealCommandExecutor{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := executor.Execute(ctx, "sleep", "10")
	assert.Error(t, err)
}

func TestRealCommandExecutor_StderrCapture(t *testing.T) {
	t.Parallel()

	executor := &RealCommandExecutor{}
	stdout, stderr, err := executor.Execute(context.Background(), "sh", "-c", "echo 'stdout' && echo 'stderr' >&2")

	require.NoError(t, err)
	assert.Equal(t, "stdout\n", string(stdout))
	assert.Equal(t, "stderr\n", string(stderr))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	executor := &RealCommandExecutor{}

	_, _, err := executor.Execute(context.Background(), "sh", "-c", "exit 3")
	assert.Equal(t, 3, ExitCode(err))

	_, _, err = executor.Execute(context.Background(), "nonexistent_command_xyz123")
	assert.Equal(t, -1, ExitCode(err))

	assert.Equal(t, 0, ExitCode(nil))
}

func TestDefaultExecutor(t *testing.T) {
	t.Parallel()

	_, ok := DefaultExecutor().(*RealCommandExecutor)
	assert.True(t, ok, "DefaultExecutor should return a *RealCommandExecutor")

	var _ CommandExecutor = (*RealCommandExecutor)(nil)
}
