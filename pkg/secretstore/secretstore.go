package secretstore

import (
	"fmt"
	"regexp"
	"sort"
)

// maxNameLength is the Kubernetes limit for object names.
const maxNameLength = 253

var nameRE = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?(\.[a-z0-9]([-a-z0-9]*[a-z0-9])?)*$`)

// Secret is a named key/value payload.
type Secret struct {
	Name string
	Data map[string]string
}

// New returns a secret with a copy of data.
func New(name string, data map[string]string) Secret {
	return Secret{Name: name, Data: cloneData(data)}
}

// Clone returns a deep copy.
func (s Secret) Clone() Secret {
	return New(s.Name, s.Data)
}

// Keys returns the data keys in sorted order.
func (s Secret) Keys() []string {
	keys := make([]string, 0, len(s.Data))
	for k := range s.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidationError reports a secret the platform would reject.
type ValidationError struct {
	Name    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid secret %q: %s", e.Name, e.Message)
}

// Validate checks the name against the platform naming rules.
func (s Secret) Validate() error {
	switch {
	case s.Name == "":
		return ValidationError{Name: s.Name, Message: "name is empty"}
	case len(s.Name) > maxNameLength:
		return ValidationError{Name: s.Name, Message: fmt.Sprintf("name is longer than %d characters", maxNameLength)}
	case !nameRE.MatchString(s.Name):
		return ValidationError{Name: s.Name, Message: "name must consist of lower case alphanumeric characters, '-' or '.'"}
	}
	return nil
}

func cloneData(data map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
