// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr  string `env:"ENCORE_LISTEN_ADDR" envDefault:":8080"`
	BalancePath string `env:"ENCORE_BALANCE_PATH"`
	LogLevel    string `env:"ENCORE_LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
