package platform

import (
	"encoding/base64"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/systmms/cry/pkg/secretstore"
)

type manifest struct {
	APIVersion string            `yaml:"apiVersion"`
	Kind       string            `yaml:"kind"`
	Metadata   metadata          `yaml:"metadata"`
	Type       string            `yaml:"type,omitempty"`
	Data       map[string]string `yaml:"data,omitempty"`
	StringData map[string]string `yaml:"stringData,omitempty"`
}

type metadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// ManagedByLabel marks secrets written by cry.
const ManagedByLabel = "app.kubernetes.io/managed-by"

// Manifest renders s as an Opaque v1/Secret with base64 data values.
func Manifest(s secretstore.Secret) ([]byte, error) {
	m := manifest{
		APIVersion: "v1",
		Kind:       "Secret",
		Metadata: metadata{
			Name:   s.Name,
			Labels: map[string]string{ManagedByLabel: "cry"},
		},
		Type: "Opaque",
		Data: make(map[string]string, len(s.Data)),
	}
	for k, v := range s.Data {
		m.Data[k] = base64.StdEncoding.EncodeToString([]byte(v))
	}

	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("render secret %q: %w", s.Name, err)
	}
	return out, nil
}

// Render returns the secret as decoded YAML for display.
func Render(s secretstore.Secret) (string, error) {
	doc := struct {
		Name string            `yaml:"name"`
		Data map[string]string `yaml:"data"`
	}{Name: s.Name, Data: s.Data}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("render secret %q: %w", s.Name, err)
	}
	return string(out), nil
}
