// Package session persists the operator's working context: the vault
// credentials written by login and the folder selected with folder.
//
// There is one session per local user. A missing, unreadable or corrupt
// session reads as the zero Session and is never an error.
package session

import (
	"gopkg.in/yaml.v3"
)

// Session is the persisted working context.
type Session struct {
	Token    string `yaml:"token,omitempty"`
	Username string `yaml:"username,omitempty"`
	URL      string `yaml:"url,omitempty"`
	FolderID *int   `yaml:"folder,omitempty"`
}

// Authenticated reports whether login credentials are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.URL != ""
}

// HasFolder reports whether a folder has been selected.
func (s Session) HasFolder() bool {
	return s.FolderID != nil
}

// IsZero reports whether no field is set.
func (s Session) IsZero() bool {
	return s.Token == "" && s.Username == "" && s.URL == "" && s.FolderID == nil
}

// Update lists the fields to merge into the persisted session. Nil fields
// are left as they are.
type Update struct {
	Token    *string
	Username *string
	URL      *string
	FolderID *int
}

// Login returns an Update that sets all credential fields together.
func Login(token, username, url string) Update {
	return Update{Token: &token, Username: &username, URL: &url}
}

// Folder returns an Update that only sets the selected folder.
func Folder(id int) Update {
	return Update{FolderID: &id}
}

// Apply merges u into s.
func (u Update) Apply(s Session) Session {
	if u.Token != nil {
		s.Token = *u.Token
	}
	if u.Username != nil {
		s.Username = *u.Username
	}
	if u.URL != nil {
		s.URL = *u.URL
	}
	if u.FolderID != nil {
		id := *u.FolderID
		s.FolderID = &id
	}
	return s
}

// Store loads and persists the session.
type Store interface {
	// Load returns the persisted session, or the zero Session.
	Load() Session
	// Update merges u into the persisted session and writes it atomically.
	Update(u Update) error
	// Clear removes every persisted field.
	Clear() error
}

func encode(s Session) ([]byte, error) {
	return yaml.Marshal(s)
}

func decode(data []byte) (Session, error) {
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}
