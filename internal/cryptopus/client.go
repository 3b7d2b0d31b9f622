package cryptopus

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/systmms/cry/internal/logging"
	"github.com/systmms/cry/internal/secure"
	"github.com/systmms/cry/pkg/secretstore"
)

// DefaultTimeout bounds each request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	BaseURL            string
	Username           string
	Token              string
	Timeout            time.Duration
	InsecureSkipVerify bool
	Logger             *logging.Logger
	// HTTPClient overrides the transport. Timeout and InsecureSkipVerify
	// are ignored when set.
	HTTPClient *http.Client
}

// Client talks to one Cryptopus instance.
type Client struct {
	baseURL    string
	username   string
	token      *secure.Token
	httpClient *http.Client
	logger     *logging.Logger
}

// New creates a client. The token is sealed in memory until a request
// needs it.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
		if opts.InsecureSkipVerify {
			httpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- operator opt-in
			}
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		username:   opts.Username,
		token:      secure.NewToken([]byte(opts.Token)),
		httpClient: httpClient,
		logger:     opts.Logger,
	}
}

// Close wipes the sealed token.
func (c *Client) Close() error {
	c.token.Destroy()
	return nil
}

// GetAccount fetches one account by id.
func (c *Client) GetAccount(ctx context.Context, id int) (Account, error) {
	var doc singleDocument
	if err := c.get(ctx, "/api/accounts/"+strconv.Itoa(id), nil, &doc); err != nil {
		return Account{}, fmt.Errorf("get account %d: %w", id, err)
	}
	acc, err := doc.Data.account()
	if err != nil {
		return Account{}, fmt.Errorf("get account %d: %w", id, err)
	}
	return acc, nil
}

// ListSecrets returns every ose_secret account in the folder as a secret.
func (c *Client) ListSecrets(ctx context.Context, folderID int) ([]secretstore.Secret, error) {
	accounts, err := c.folderSecrets(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list secrets of folder %d: %w", folderID, err)
	}
	secrets := make([]secretstore.Secret, 0, len(accounts))
	for _, acc := range accounts {
		secrets = append(secrets, acc.ToSecret())
	}
	return secrets, nil
}

// FindSecretByName returns the ose_secret account called name in the folder.
func (c *Client) FindSecretByName(ctx context.Context, folderID int, name string) (secretstore.Secret, error) {
	accounts, err := c.folderSecrets(ctx, folderID)
	if err != nil {
		return secretstore.Secret{}, fmt.Errorf("find secret %q: %w", name, err)
	}
	for _, acc := range accounts {
		if acc.AccountName == name {
			return acc.ToSecret(), nil
		}
	}
	return secretstore.Secret{}, fmt.Errorf("find secret %q in folder %d: %w", name, folderID, ErrNotFound)
}

// FindAccountByName searches the vault for an account with exactly this
// name.
func (c *Client) FindAccountByName(ctx context.Context, name string) (Account, error) {
	var doc listDocument
	if err := c.get(ctx, "/api/accounts", url.Values{"q": {name}}, &doc); err != nil {
		return Account{}, fmt.Errorf("find account %q: %w", name, err)
	}
	for _, r := range doc.Data {
		if r.Attributes.AccountName != name {
			continue
		}
		acc, err := r.account()
		if err != nil {
			return Account{}, fmt.Errorf("find account %q: %w", name, err)
		}
		return acc, nil
	}
	return Account{}, fmt.Errorf("find account %q: %w", name, ErrNotFound)
}

func (c *Client) folderSecrets(ctx context.Context, folderID int) ([]Account, error) {
	var doc listDocument
	query := url.Values{"folder_id": {strconv.Itoa(folderID)}}
	if err := c.get(ctx, "/api/accounts", query, &doc); err != nil {
		return nil, err
	}
	var out []Account
	for _, r := range doc.Data {
		acc, err := r.account()
		if err != nil {
			return nil, err
		}
		if acc.IsSecret() {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.api+json, application/json")
	req.Header.Set("Authorization-User", c.username)
	if err := c.token.Use(func(plain []byte) error {
		req.Header.Set("Authorization-Password", base64.StdEncoding.EncodeToString(plain))
		return nil
	}); err != nil {
		return fmt.Errorf("failed to attach credentials: %w", err)
	}

	c.logger.Debug("GET %s as %s", endpoint, c.username)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrConnectionFailed, err)
	}

	c.logger.Debug("GET %s returned %d", path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse vault response: %w", err)
	}
	return nil
}

// errorMessage extracts a message from a JSON:API errors document, or a
// simple {"error": "..."} body.
func errorMessage(body []byte) string {
	var doc struct {
		Errors []struct {
			Detail string `json:"detail"`
			Title  string `json:"title"`
		} `json:"errors"`
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &doc) != nil {
		return ""
	}
	if len(doc.Errors) > 0 {
		if doc.Errors[0].Detail != "" {
			return doc.Errors[0].Detail
		}
		return doc.Errors[0].Title
	}
	return doc.Error
}
