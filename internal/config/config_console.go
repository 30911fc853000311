package config

import (
	"fmt"
	"time"
)

// ConsoleAdapter holds network settings used by the operator console when
// talking to the opsboard server.
type ConsoleAdapter struct {
	// HTTPAddress is the base URL of the opsboard HTTP API.
	// Env: CONSOLE_SERVER_URL
	HTTPAddress string `env:"SERVER_URL"`

	// RequestTimeout is the default timeout for outbound console requests.
	// Env: CONSOLE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ConsoleConfig is the top-level configuration of the operator console
// binary. The console carries no secrets of its own; it authenticates
// interactively against the server.
type ConsoleConfig struct {
	// Adapter contains the server address and timeouts.
	Adapter ConsoleAdapter `envPrefix:"CONSOLE_"`
}

// GetConsoleConfig builds and validates the console configuration from
// environment variables, applying defaults for anything unset.
func GetConsoleConfig() (*ConsoleConfig, error) {
	cfg := &ConsoleConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("error get console config: %w", err)
	}

	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = "http://localhost:8080"
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = 15 * time.Second
	}

	return cfg, cfg.validate()
}
