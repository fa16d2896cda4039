package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
)

// Config holds the backend daemon settings, read from the environment.
type Config struct {
	Addr   string `env:"RPGPLAN_ADDR" envDefault:":3001"`
	DBPath string `env:"RPGPLAN_DB"`
}

// LoadConfig parses the environment, defaulting the database path to
// ~/.rpgplan/planner.db when RPGPLAN_DB is unset.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".rpgplan", "planner.db")
	}

	return cfg, nil
}
