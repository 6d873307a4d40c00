// Package config loads the process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/aleksandri0/mathpower/internal/flow"
	"github.com/aleksandri0/mathpower/internal/store"
)

// Calculation sources.
const (
	SourceArithmetic = "arithmetic"
	SourceLLM        = "llm"
	SourceBank       = "bank"
)

// Config is the runtime configuration shared by every command. Flags
// override the values loaded here.
type Config struct {
	// DBPath is the SQLite file, or the connection URL for postgres.
	DBPath   string `env:"MATHPOWER_DB"`
	DBDriver string `env:"MATHPOWER_DB_DRIVER" envDefault:"sqlite"`

	// Count is the number of calculations generated per difficulty.
	Count int `env:"MATHPOWER_COUNT" envDefault:"10"`

	// Seed fixes the arithmetic generator. Zero picks a random seed.
	Seed uint64 `env:"MATHPOWER_SEED"`

	// Source is where calculations come from: arithmetic, llm or bank.
	Source string `env:"MATHPOWER_SOURCE" envDefault:"arithmetic"`

	// ResetPolicy is "choose" or "restart".
	ResetPolicy string `env:"MATHPOWER_RESET_POLICY" envDefault:"choose"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment, applies overrides in order and validates the
// result.
func Load(overrides ...func(*Config)) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	for _, o := range overrides {
		o(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("MATHPOWER_COUNT must not be negative, got %d", c.Count)
	}
	switch c.Source {
	case SourceArithmetic, SourceLLM, SourceBank:
	default:
		return fmt.Errorf("unknown MATHPOWER_SOURCE %q: must be arithmetic, llm or bank", c.Source)
	}
	if _, err := c.Driver(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if d, _ := c.Driver(); d == store.DriverPostgres && c.DBPath == "" {
		return fmt.Errorf("MATHPOWER_DB must hold a connection URL for the postgres driver")
	}
	return nil
}

// Driver returns the configured database driver.
func (c Config) Driver() (store.Driver, error) {
	return store.ParseDriver(c.DBDriver)
}

// Policy returns the configured reset policy.
func (c Config) Policy() (flow.ResetPolicy, error) {
	return flow.ParseResetPolicy(c.ResetPolicy)
}

// DSN resolves the connection string. For SQLite an empty DBPath falls
// back to store.DefaultDBPath and the parent directory is created.
func (c Config) DSN() (string, error) {
	d, err := c.Driver()
	if err != nil {
		return "", err
	}
	if d == store.DriverPostgres {
		return c.DBPath, nil
	}

	path := c.DBPath
	if path == "" {
		if path, err = store.DefaultDBPath(); err != nil {
			return "", err
		}
	}
	if err := store.EnsureDir(path); err != nil {
		return "", fmt.Errorf("create database dir: %w", err)
	}
	return path, nil
}
