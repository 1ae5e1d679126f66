package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Provider supplies the optional, loosely typed inputs the resolver set reads.
// Lookup returns the raw value and whether the input is present; a present
// value that cannot be interpreted as text yields an error distinct from
// absence.
type Provider interface {
	Lookup(name string) (string, bool, error)
}

// EnvProvider reads inputs from the process environment.
type EnvProvider struct{}

// Lookup returns the named environment variable. A present value holding
// invalid UTF-8 is reported as a non-text error, not as absence.
func (EnvProvider) Lookup(name string) (string, bool, error) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", false, nil
	}
	if !utf8.ValidString(value) {
		return "", true, fmt.Errorf("read %s: %w", name, ErrNotText)
	}
	return value, true, nil
}

// MapProvider serves inputs from a static map. Used for flag overrides and
// for substituting the environment in tests.
type MapProvider map[string]string

// Lookup returns the mapped value, applying the same text check as EnvProvider.
func (m MapProvider) Lookup(name string) (string, bool, error) {
	value, ok := m[name]
	if !ok {
		return "", false, nil
	}
	if !utf8.ValidString(value) {
		return "", true, fmt.Errorf("read %s: %w", name, ErrNotText)
	}
	return value, true, nil
}

// NewFileProvider loads a flat `name: value` YAML document into a MapProvider.
// The file is read once at startup; there is no reloading.
func NewFileProvider(path string) (MapProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return MapProvider(values), nil
}

// Layered chains providers in priority order; the first provider reporting an
// input as present wins. Provider errors propagate immediately.
type Layered []Provider

// Lookup tries each provider in order until one reports the input as present.
func (l Layered) Lookup(name string) (string, bool, error) {
	for _, provider := range l {
		value, ok, err := provider.Lookup(name)
		if err != nil {
			return "", ok, err
		}
		if ok {
			return value, true, nil
		}
	}
	return "", false, nil
}
