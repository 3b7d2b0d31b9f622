package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/systmms/cry/internal/cryptopus"
	"github.com/systmms/cry/internal/dispatch"
	dserrors "github.com/systmms/cry/internal/errors"
	"github.com/systmms/cry/internal/logging"
	"github.com/systmms/cry/internal/platform"
	"github.com/systmms/cry/internal/session"
	cryexec "github.com/systmms/cry/pkg/exec"
)

// EnvConfig overrides the default config file location.
const EnvConfig = "CRY_CONFIG"

// Session backends.
const (
	BackendFile    = "file"
	BackendKeyring = "keyring"
)

//go:embed schema.json
var schema string

// Config holds the runtime configuration
type Config struct {
	Path     string
	Logger   *logging.Logger
	Settings Settings

	// Dispatcher replaces the one built from Settings when set.
	Dispatcher *dispatch.Dispatcher
	// Executor runs platform binaries. Defaults to real processes.
	Executor cryexec.CommandExecutor
}

// Settings is the content of the config file.
type Settings struct {
	SessionBackend     string `yaml:"session_backend"`
	SessionFile        string `yaml:"session_file"`
	Timeout            string `yaml:"timeout"`
	OCBinary           string `yaml:"oc_binary"`
	KubectlBinary      string `yaml:"kubectl_binary"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

// DefaultPath returns $CRY_CONFIG or ~/.ccli/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, session.DirName, "config.yaml"), nil
}

// Load reads and validates the config file. A missing file leaves the
// defaults in place.
func (c *Config) Load() error {
	if c.Path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		c.Path = p
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.Logger.Debug("No config file at %s, using defaults", c.Path)
			return nil
		}
		return dserrors.ConfigError{
			Field:      "path",
			Value:      c.Path,
			Message:    "failed to read configuration file: " + err.Error(),
			Suggestion: "Check file permissions and path",
		}
	}

	settings, err := parse(data)
	if err != nil {
		return err
	}
	c.Settings = settings
	c.Logger.Debug("Loaded config from %s", c.Path)
	return nil
}

func parse(data []byte) (Settings, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Settings{}, dserrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
		}
	}
	if doc == nil {
		return Settings{}, nil
	}

	if err := validate(doc); err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, dserrors.ConfigError{Message: err.Error()}
	}
	if _, err := s.timeout(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func validate(doc interface{}) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return dserrors.ConfigError{Message: "schema validation error: " + err.Error()}
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	messages := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		messages = append(messages, desc.String())
	}
	return dserrors.ConfigError{
		Field:      first.Field(),
		Message:    strings.Join(messages, "; "),
		Suggestion: "Allowed keys: session_backend, session_file, timeout, oc_binary, kubectl_binary, insecure_skip_verify",
	}
}

func (s Settings) timeout() (time.Duration, error) {
	if s.Timeout == "" {
		return cryptopus.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return 0, dserrors.ConfigError{
			Field:      "timeout",
			Value:      s.Timeout,
			Message:    "timeout must be a positive duration",
			Suggestion: "Use a Go duration such as 30s or 2m",
		}
	}
	return d, nil
}

// SessionStore returns the configured session backend.
func (c *Config) SessionStore() (session.Store, error) {
	switch c.Settings.SessionBackend {
	case BackendKeyring:
		return session.NewKeyringStore(c.Logger), nil
	case "", BackendFile:
		path := c.Settings.SessionFile
		if path == "" {
			p, err := session.DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return session.NewFileStore(path, c.Logger), nil
	}
	return nil, dserrors.ConfigError{
		Field:      "session_backend",
		Value:      c.Settings.SessionBackend,
		Message:    "unknown session backend",
		Suggestion: "Use 'file' or 'keyring'",
	}
}

// Platforms returns a client per supported tool.
func (c *Config) Platforms() map[string]platform.Client {
	return map[string]platform.Client{
		"oc":      platform.NewCLIClient(platform.OpenShift(c.Settings.OCBinary), c.Executor, c.Logger),
		"kubectl": platform.NewCLIClient(platform.Kubernetes(c.Settings.KubectlBinary), c.Executor, c.Logger),
	}
}

// VaultFactory returns a constructor for vault clients bound to a session.
func (c *Config) VaultFactory() (dispatch.VaultFactory, error) {
	timeout, err := c.Settings.timeout()
	if err != nil {
		return nil, err
	}
	insecure := c.Settings.InsecureSkipVerify
	logger := c.Logger
	if insecure {
		logger.Warn("TLS certificate verification is disabled for vault requests")
	}
	return func(s session.Session) dispatch.Vault {
		return cryptopus.New(cryptopus.Options{
			BaseURL:            s.URL,
			Username:           s.Username,
			Token:              s.Token,
			Timeout:            timeout,
			InsecureSkipVerify: insecure,
			Logger:             logger,
		})
	}, nil
}

// NewDispatcher wires the dispatcher from the settings.
func (c *Config) NewDispatcher() (*dispatch.Dispatcher, error) {
	if c.Dispatcher != nil {
		return c.Dispatcher, nil
	}
	store, err := c.SessionStore()
	if err != nil {
		return nil, err
	}
	vault, err := c.VaultFactory()
	if err != nil {
		return nil, err
	}
	c.Dispatcher = dispatch.New(dispatch.Options{
		Store:     store,
		Vault:     vault,
		Platforms: c.Platforms(),
		Logger:    c.Logger,
	})
	return c.Dispatcher, nil
}
