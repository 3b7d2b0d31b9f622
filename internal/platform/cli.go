package platform

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/cry/internal/errors"
	"github.com/systmms/cry/internal/logging"
	cryexec "github.com/systmms/cry/pkg/exec"
	"github.com/systmms/cry/pkg/secretstore"
)

// CLIClient implements Client by running the tool binary.
type CLIClient struct {
	tool     Tool
	executor cryexec.CommandExecutor
	logger   *logging.Logger
}

// NewCLIClient returns a client for tool. A nil executor runs real
// processes.
func NewCLIClient(tool Tool, executor cryexec.CommandExecutor, logger *logging.Logger) *CLIClient {
	if executor == nil {
		executor = cryexec.DefaultExecutor()
	}
	return &CLIClient{tool: tool, executor: executor, logger: logger}
}

// IsToolInstalled runs "which <binary>".
func (c *CLIClient) IsToolInstalled(ctx context.Context) bool {
	_, _, err := c.executor.Execute(ctx, "which", c.tool.Binary)
	if err != nil {
		c.logger.Debug("%s not found on PATH: %v", c.tool.Binary, err)
		return false
	}
	return true
}

// IsLoggedIn runs the tool's login probe.
func (c *CLIClient) IsLoggedIn(ctx context.Context) bool {
	stdout, stderr, err := c.executor.Execute(ctx, c.tool.Binary, c.tool.LoginArgs...)
	if err != nil {
		c.logger.Debug("%s login probe failed: %s", c.tool.Name, strings.TrimSpace(string(stderr)))
		return false
	}
	c.logger.Debug("%s current project: %s", c.tool.Name, strings.TrimSpace(string(stdout)))
	return true
}

// GetSecret runs "get secret <name> -o yaml" and decodes the data values.
func (c *CLIClient) GetSecret(ctx context.Context, name string) (secretstore.Secret, error) {
	args := []string{"get", "secret", name, "-o", "yaml"}
	stdout, stderr, err := c.executor.Execute(ctx, c.tool.Binary, args...)
	if err != nil {
		if isNotFound(stderr) {
			return secretstore.Secret{}, fmt.Errorf("get secret %q: %w", name, ErrNotFound)
		}
		return secretstore.Secret{}, c.commandError(args, stderr, err)
	}

	var m manifest
	if err := yaml.Unmarshal(stdout, &m); err != nil {
		return secretstore.Secret{}, fmt.Errorf("get secret %q: invalid %s output: %w", name, c.tool.Name, err)
	}

	data := make(map[string]string, len(m.Data)+len(m.StringData))
	for k, v := range m.Data {
		plain, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return secretstore.Secret{}, fmt.Errorf("get secret %q: key %q is not base64: %w", name, k, err)
		}
		data[k] = string(plain)
	}
	for k, v := range m.StringData {
		data[k] = v
	}
	return secretstore.New(m.Metadata.Name, data), nil
}

// ApplySecret pipes a v1/Secret manifest into "apply -f -".
func (c *CLIClient) ApplySecret(ctx context.Context, s secretstore.Secret) error {
	if err := s.Validate(); err != nil {
		return err
	}

	doc, err := Manifest(s)
	if err != nil {
		return err
	}

	args := []string{"apply", "-f", "-"}
	c.logger.Debug("Applying secret %s with keys %v", s.Name, s.Keys())
	_, stderr, err := c.executor.ExecuteWithInput(ctx, doc, c.tool.Binary, args...)
	if err != nil {
		return c.commandError(args, stderr, err, dataValues(s)...)
	}
	return nil
}

// commandError wraps a failed invocation. Secret values echoed on stderr
// are masked.
func (c *CLIClient) commandError(args []string, stderr []byte, err error, secrets ...string) error {
	return &dserrors.CommandError{
		Command:  c.tool.Binary + " " + strings.Join(args, " "),
		ExitCode: cryexec.ExitCode(err),
		Stderr:   logging.Redact(string(stderr), secrets),
		Err:      err,
	}
}

func dataValues(s secretstore.Secret) []string {
	values := make([]string, 0, len(s.Data))
	for _, v := range s.Data {
		values = append(values, v)
	}
	return values
}

func isNotFound(stderr []byte) bool {
	s := string(stderr)
	return strings.Contains(s, "NotFound") || strings.Contains(s, "not found")
}

var _ Client = (*CLIClient)(nil)
