// Package config loads gdvm's config.toml: currently just the optional
// GitHub token used by the self-updater and tool-update check.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
)

// FileName is the name of the config file inside the home directory.
const FileName = "config.toml"

// GithubSection holds GitHub-related settings.
type GithubSection struct {
	Token string `toml:"token"`
}

// Config is the parsed content of config.toml.
type Config struct {
	Github GithubSection `toml:"github"`
}

// knownKeys lists every accepted top-level.nested key, used to reject
// unknown keys the way spec requires ("Unknown keys are rejected").
var knownKeys = map[string]map[string]bool{
	"github": {"token": true},
}

// Load reads config.toml from dir. A missing file yields a zero Config.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, gdvmerrors.NewConfigError("failed to read config file", err).WithFile(path)
	}

	if err := validateKnownKeys(data); err != nil {
		return nil, gdvmerrors.NewConfigError(err.Error(), nil).WithFile(path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, gdvmerrors.NewConfigError("failed to parse config file", err).WithFile(path)
	}

	return &cfg, nil
}

// validateKnownKeys decodes into a generic map and rejects any key (or
// nested key) that isn't in knownKeys.
func validateKnownKeys(data []byte) error {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	for section, value := range raw {
		allowed, ok := knownKeys[section]
		if !ok {
			return fmt.Errorf("unknown config section %q", section)
		}
		nested, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("config section %q must be a table", section)
		}
		for key := range nested {
			if !allowed[key] {
				return fmt.Errorf("unknown config key %q.%q", section, key)
			}
		}
	}
	return nil
}

// Save writes cfg to config.toml in dir, creating the directory if needed.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return gdvmerrors.NewConfigError("failed to create config directory", err).WithFile(dir)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return gdvmerrors.NewConfigError("failed to marshal config", err)
	}

	path := filepath.Join(dir, FileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return gdvmerrors.NewConfigError("failed to write config file", err).WithFile(path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return gdvmerrors.NewConfigError("failed to replace config file", err).WithFile(path)
	}
	return nil
}

// GithubToken returns the configured token, falling back to GITHUB_TOKEN
// then GH_TOKEN environment variables (spec §6 environment variables).
func (c *Config) GithubToken() string {
	if c != nil && c.Github.Token != "" {
		return c.Github.Token
	}
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GH_TOKEN")
}
