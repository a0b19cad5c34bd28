package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process-level settings read from the environment. Command-line
// flags take precedence over these.
type Env struct {
	ConfigPath string `env:"LEVELFORGE_CONFIG"`
	DBPath     string `env:"LEVELFORGE_DB" envDefault:"~/.levelforge/sweeps.db"`
	Workers    int    `env:"LEVELFORGE_WORKERS" envDefault:"4"`
	LogLevel   string `env:"LEVELFORGE_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
