package dispatch

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	dserrors "github.com/systmms/cry/internal/errors"
)

const loginSuggestion = "Use 'cry login <credentials>@<url>' with the token copied from the vault profile page"

type credentials struct {
	Token    string
	Username string
	URL      string
}

// parseLogin splits "<credentials>@<url>" on the first '@'.
func parseLogin(arg string) (credentials, error) {
	left, right, found := strings.Cut(strings.TrimSpace(arg), "@")
	url := strings.TrimRight(right, "/")
	switch {
	case left == "" && right == "":
		return credentials{}, dserrors.Usage("Credentials missing").WithSuggestion(loginSuggestion)
	case !found || url == "":
		return credentials{}, dserrors.Usage("URL missing").WithSuggestion(loginSuggestion)
	case left == "":
		return credentials{}, dserrors.Usage("Token missing").WithSuggestion(loginSuggestion)
	}

	token, username := decodeCredentials(left)
	return credentials{Token: token, Username: username, URL: url}, nil
}

// decodeCredentials accepts the vault's base64 "username:token" export and
// a plain "username:token" pair. Anything else is taken as a bare token.
func decodeCredentials(s string) (token, username string) {
	if raw, err := base64.StdEncoding.DecodeString(s); err == nil && utf8.Valid(raw) {
		if user, tok, ok := strings.Cut(string(raw), ":"); ok && user != "" && tok != "" {
			return tok, user
		}
	}
	if user, tok, ok := strings.Cut(s, ":"); ok && user != "" && tok != "" {
		return tok, user
	}
	return s, ""
}
