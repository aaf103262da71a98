// internal/common/config/secrets.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"

	apperrors "credit-score-client/internal/common/errors"
)

// Setting is one logical secret and the ordered key spellings it may be
// stored under. The first spelling that resolves wins.
type Setting struct {
	Name       string
	Candidates []string
}

var (
	EndpointSetting = Setting{Name: "scoring endpoint", Candidates: []string{"API_ENDPOINT", "API-ENDPOINT"}}
	APIKeySetting   = Setting{Name: "scoring API key", Candidates: []string{"API_KEY", "API-KEY"}}
)

// SecretSource looks up a raw secret by its exact key name.
type SecretSource interface {
	Lookup(key string) (string, bool)
}

// EnvSource reads secrets from the process environment.
type EnvSource struct{}

func (EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapSource serves secrets from memory.
type MapSource map[string]string

func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// FileSource reads a TOML secrets file. Keys are matched case-insensitively
// and keep their separators, so API_KEY and API-KEY stay distinct.
type FileSource struct {
	v *viper.Viper
}

func NewFileSource(path string) (*FileSource, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read secrets file %s: %w", path, err)
	}
	return &FileSource{v: v}, nil
}

func (f *FileSource) Lookup(key string) (string, bool) {
	if !f.v.IsSet(key) {
		return "", false
	}
	return f.v.GetString(key), true
}

// ChainSource asks each source in order.
type ChainSource []SecretSource

func (c ChainSource) Lookup(key string) (string, bool) {
	for _, src := range c {
		if v, ok := src.Lookup(key); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// DefaultSecretSource chains the environment with the secrets file, if the
// file exists. A present but unreadable file is an error.
func DefaultSecretSource(secretsFile string) (SecretSource, error) {
	chain := ChainSource{EnvSource{}}
	if secretsFile == "" {
		return chain, nil
	}
	if _, err := os.Stat(secretsFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return chain, nil
		}
		return nil, fmt.Errorf("stat secrets file: %w", err)
	}
	file, err := NewFileSource(secretsFile)
	if err != nil {
		return nil, err
	}
	return append(chain, file), nil
}

// ResolveSecret returns the value of the first candidate that resolves to a
// non-blank value, or a CONFIGURATION_MISSING error naming the setting.
func ResolveSecret(src SecretSource, setting Setting) (string, error) {
	for _, key := range setting.Candidates {
		if v, ok := src.Lookup(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, nil
			}
		}
	}
	return "", apperrors.NewConfigurationMissingError(setting.Name, setting.Candidates)
}

// Credentials are the endpoint and key of the scoring API. Resolve them once
// at startup and pass the value around; it is never mutated.
type Credentials struct {
	Endpoint string
	APIKey   string
}

// String keeps the key out of logs and panics.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Endpoint: %s, APIKey: [REDACTED]}", c.Endpoint)
}

func (c Credentials) GoString() string {
	return c.String()
}

// LoadCredentials resolves both scoring secrets from src.
func LoadCredentials(src SecretSource) (Credentials, error) {
	endpoint, err := ResolveSecret(src, EndpointSetting)
	if err != nil {
		return Credentials{}, err
	}
	apiKey, err := ResolveSecret(src, APIKeySetting)
	if err != nil {
		return Credentials{}, err
	}

	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return Credentials{}, apperrors.NewConfigurationInvalidError(
			fmt.Sprintf("%s is not an absolute http(s) URL", EndpointSetting.Name))
	}

	return Credentials{Endpoint: endpoint, APIKey: apiKey}, nil
}
