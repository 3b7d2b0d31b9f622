// Package testutil provides testing utilities for cry.
package testutil

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"sync"

	cryexec "github.com/systmms/cry/pkg/exec"
)

// MockCommandExecutor provides a configurable mock for testing CLI-based
// platform clients.
type MockCommandExecutor struct {
	mu sync.Mutex

	// Responses maps command patterns to their mock responses.
	// Key format: "command arg1 arg2" (space-separated command and args).
	// A pattern also matches any command line it is a prefix of; the
	// longest matching pattern wins.
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching pattern is found.
	DefaultResponse *MockResponse

	// RecordedCalls stores all calls made to Execute for verification.
	RecordedCalls []RecordedCall

	// StrictMode causes Execute to fail if no matching response is found.
	StrictMode bool
}

// MockResponse defines the expected output for a mocked command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// RecordedCall stores information about a command execution.
type RecordedCall struct {
	Command string
	Args    []string
	Input   []byte
}

// Line returns the call as a space-separated command line.
func (c RecordedCall) Line() string {
	return buildKey(c.Command, c.Args)
}

// NewMockCommandExecutor creates a new mock executor with empty responses.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		Responses:     make(map[string]MockResponse),
		RecordedCalls: make([]RecordedCall, 0),
	}
}

// Execute returns the mocked response for the given command.
func (m *MockCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return m.ExecuteWithInput(ctx, nil, name, args...)
}

// ExecuteWithInput records input and returns the mocked response.
func (m *MockCommandExecutor) ExecuteWithInput(_ context.Context, input []byte, name string, args ...string) ([]byte, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RecordedCalls = append(m.RecordedCalls, RecordedCall{
		Command: name,
		Args:    append([]string(nil), args...),
		Input:   append([]byte(nil), input...),
	})

	key := buildKey(name, args)

	if resp, ok := m.Responses[key]; ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}

	if resp, ok := m.longestPrefix(key); ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}

	if m.DefaultResponse != nil {
		return m.DefaultResponse.Stdout, m.DefaultResponse.Stderr, m.DefaultResponse.Err
	}

	if m.StrictMode {
		return nil, nil, fmt.Errorf("mock: no response configured for command: %s", key)
	}

	return []byte{}, []byte{}, nil
}

func (m *MockCommandExecutor) longestPrefix(key string) (MockResponse, bool) {
	patterns := make([]string, 0, len(m.Responses))
	for p := range m.Responses {
		if strings.HasPrefix(key, p) {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return MockResponse{}, false
	}
	sort.Slice(patterns, func(i, j int) bool { return len(patterns[i]) > len(patterns[j]) })
	return m.Responses[patterns[0]], true
}

func buildKey(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// AddResponse registers a mock response for a specific command pattern.
func (m *MockCommandExecutor) AddResponse(commandPattern string, response MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[commandPattern] = response
}

// AddErrorResponse adds a failing response for a command pattern.
func (m *MockCommandExecutor) AddErrorResponse(commandPattern string, errMsg string, exitCode int) {
	m.AddResponse(commandPattern, MockResponse{
		Stdout: []byte{},
		Stderr: []byte(errMsg),
		Err:    fmt.Errorf("exit status %d", exitCode),
	})
}

// Calls returns the recorded command lines in order.
func (m *MockCommandExecutor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := make([]string, 0, len(m.RecordedCalls))
	for _, c := range m.RecordedCalls {
		lines = append(lines, c.Line())
	}
	return lines
}

// CallsWithPrefix returns recorded calls whose command line starts with prefix.
func (m *MockCommandExecutor) CallsWithPrefix(prefix string) []RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []RecordedCall
	for _, c := range m.RecordedCalls {
		if strings.HasPrefix(c.Line(), prefix) {
			matches = append(matches, c)
		}
	}
	return matches
}

// CallCount returns the number of times Execute was called.
func (m *MockCommandExecutor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.RecordedCalls)
}

// Reset clears all recorded calls and responses.
func (m *MockCommandExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses = make(map[string]MockResponse)
	m.RecordedCalls = make([]RecordedCall, 0)
	m.DefaultResponse = nil
}

var _ cryexec.CommandExecutor = (*MockCommandExecutor)(nil)

// PlatformMockResponses provides canned responses for oc and kubectl.
type PlatformMockResponses struct{}

// Which returns a successful "which" probe for binary.
func (PlatformMockResponses) Which(binary string) MockResponse {
	return MockResponse{Stdout: []byte("/usr/local/bin/" + binary + "\n")}
}

// NotInstalled returns a failed "which" probe.
func (PlatformMockResponses) NotInstalled() MockResponse {
	return MockResponse{Err: fmt.Errorf("exit status 1")}
}

// Project returns "oc project -q" output for a logged-in session.
func (PlatformMockResponses) Project(name string) MockResponse {
	return MockResponse{Stdout: []byte(name + "\n")}
}

// NotLoggedIn returns the failure oc prints without a session.
func (PlatformMockResponses) NotLoggedIn() MockResponse {
	return MockResponse{
		Stderr: []byte("error: You must be logged in to the server (Unauthorized)\n"),
		Err:    fmt.Errorf("exit status 1"),
	}
}

// SecretYAML returns "get secret -o yaml" output with base64 encoded data.
func (PlatformMockResponses) SecretYAML(name string, data map[string]string) MockResponse {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("apiVersion: v1\nkind: Secret\nmetadata:\n  name: " + name + "\n  namespace: demo\ntype: Opaque\ndata:\n")
	for _, k := range keys {
		b.WriteString("  " + k + ": " + base64.StdEncoding.EncodeToString([]byte(data[k])) + "\n")
	}
	return MockResponse{Stdout: []byte(b.String())}
}

// SecretNotFound returns the failure oc prints for a missing secret.
func (PlatformMockResponses) SecretNotFound(name string) MockResponse {
	return MockResponse{
		Stderr: []byte(fmt.Sprintf("Error from server (NotFound): secrets %q not found\n", name)),
		Err:    fmt.Errorf("exit status 1"),
	}
}
