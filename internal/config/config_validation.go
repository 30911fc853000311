// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Defaults applied to optional settings after the merge. Bounds are defaults,
// not validation failures: an operator who leaves them unset gets safe values.
const (
	defaultDriver           = DriverSQLite
	defaultDSN              = "opsboard.db"
	defaultHTTPAddress      = "localhost:8080"
	defaultRequestTimeout   = 30 * time.Second
	defaultHistoryLimit     = 8
	defaultSnapshotMaxBytes = 4096
	defaultSessionAskLimit  = 200
	defaultTokenDuration    = 12 * time.Hour
	defaultTokenIssuer      = "opsboard"
)

// applyDefaults fills optional fields that remained zero after merging all
// sources.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = defaultDriver
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultDSN
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = defaultTokenDuration
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = defaultTokenIssuer
	}
	if cfg.Assistant.RequestTimeout == 0 {
		cfg.Assistant.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Assistant.HistoryLimit == 0 {
		cfg.Assistant.HistoryLimit = defaultHistoryLimit
	}
	if cfg.Assistant.SnapshotMaxBytes == 0 {
		cfg.Assistant.SnapshotMaxBytes = defaultSnapshotMaxBytes
	}
	if cfg.Assistant.SessionAskLimit == 0 {
		cfg.Assistant.SessionAskLimit = defaultSessionAskLimit
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.Storage.DB.Driver != DriverSQLite && cfg.Storage.DB.Driver != DriverPostgres {
		return ErrInvalidStorageConfigs
	}

	if cfg.Assistant.Primary.BaseURL == "" {
		return ErrInvalidAssistantConfigs
	}

	return nil
}

func (cfg *ConsoleConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
