package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds client-side settings for reaching the planner backend.
type Config struct {
	// BaseURL is the backend endpoint serving the two collections.
	BaseURL string `yaml:"base_url"`
}

// DefaultConfig matches the backend's default listen address.
func DefaultConfig() Config {
	return Config{BaseURL: "http://localhost:3001"}
}

// DefaultConfigPath returns ~/.rpgplan/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".rpgplan", "config.yaml"), nil
}

// LoadConfig reads the YAML config at path, creating it with defaults on
// first run. The RPGPLAN_API_URL environment variable overrides the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if writeErr := writeDefaultConfig(path, cfg); writeErr != nil {
			return cfg, writeErr
		}
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if v := os.Getenv("RPGPLAN_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	return cfg, nil
}

func writeDefaultConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
