// Package exec provides abstractions for command execution.
// Platform clients run their binaries through a CommandExecutor so tests
// can replace the binary with recorded responses.
package exec

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandExecutor defines an interface for executing external commands.
type CommandExecutor interface {
	// Execute runs a command with the given context and arguments.
	// Returns stdout, stderr, and any error that occurred.
	Execute(ctx context.Context, name string, args ...string) (stdout []byte, stderr []byte, err error)

	// ExecuteWithInput is Execute with stdin fed from input.
	ExecuteWithInput(ctx context.Context, input []byte, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// RealCommandExecutor executes actual commands using os/exec.
type RealCommandExecutor struct{}

// Execute runs an actual command.
func (r *RealCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return r.ExecuteWithInput(ctx, nil, name, args...)
}

// ExecuteWithInput runs an actual command with input on stdin.
func (r *RealCommandExecutor) ExecuteWithInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if input != nil {
		cmd.Stdin = bytes.NewReader(input)
	}
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// ExitCode returns the exit status carried by err, or -1 when the command
// did not run to completion.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}

// DefaultExecutor returns the standard production executor.
func DefaultExecutor() CommandExecutor {
	return &RealCommandExecutor{}
}
