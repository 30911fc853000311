// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the opsboard
// server. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds credential and token settings: bcrypt cost, JWT signing
	// parameters, and the bootstrap admin account.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the relational database and the CSV
	// feeds imported into it.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server
	// and the optional gRPC health endpoint.
	Server Server `envPrefix:"SERVER_"`

	// Assistant holds the AI completion provider settings: primary and
	// fallback endpoints plus context bounds.
	Assistant Assistant `envPrefix:"ASSISTANT_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Auth holds credential-store and session-token settings.
type Auth struct {
	// BcryptCost is the bcrypt work factor used when hashing passwords.
	// Zero selects the library default.
	// Env: AUTH_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// BootstrapAdminUsername, when set together with the password, seeds an
	// admin account at startup if the store holds no admin yet.
	// Env: AUTH_BOOTSTRAP_ADMIN_USERNAME
	BootstrapAdminUsername string `env:"BOOTSTRAP_ADMIN_USERNAME"`

	// BootstrapAdminPassword is the plaintext password for the bootstrap
	// admin. Used once at startup, never stored.
	// Env: AUTH_BOOTSTRAP_ADMIN_PASSWORD
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version/ endpoint.
	// Env: AUTH_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all persistence inputs used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// CSV holds paths to the three domain CSV feeds.
	CSV CSV `envPrefix:"CSV_"`
}

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the backend: "sqlite3" (default) or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the Data Source Name: a file path for SQLite
	// (e.g. "opsboard.db") or a PostgreSQL URI for pgx.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// CSV holds file-system paths of the domain data feeds. Empty paths disable
// the corresponding import.
type CSV struct {
	// IncidentsPath is the security incidents feed.
	// Env: STORAGE_CSV_INCIDENTS_PATH
	IncidentsPath string `env:"INCIDENTS_PATH"`

	// TicketsPath is the IT tickets feed.
	// Env: STORAGE_CSV_TICKETS_PATH
	TicketsPath string `env:"TICKETS_PATH"`

	// DatasetsPath is the datasets feed.
	// Env: STORAGE_CSV_DATASETS_PATH
	DatasetsPath string `env:"DATASETS_PATH"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the optional gRPC health endpoint.
	// Empty disables gRPC entirely.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Provider holds the settings of one AI completion endpoint.
type Provider struct {
	// BaseURL is the root URL of an OpenAI-compatible chat-completions API
	// (e.g. "https://openrouter.ai/api/v1").
	BaseURL string `env:"BASE_URL"`

	// APIKey is the bearer token for the provider.
	APIKey string `env:"API_KEY"`

	// Model is the model identifier requested from the provider
	// (e.g. "openai/gpt-4o-mini").
	Model string `env:"MODEL"`
}

// Assistant holds AI assistant settings: the provider pair and the bounds
// applied when assembling conversational context.
type Assistant struct {
	// Primary is the provider tried first for every assistant call.
	Primary Provider `envPrefix:"PRIMARY_"`

	// Fallback is tried once when the primary fails. Leave BaseURL empty to
	// run without a fallback.
	Fallback Provider `envPrefix:"FALLBACK_"`

	// RequestTimeout bounds a single provider call; exceeding it counts as
	// a provider failure and triggers the fallback.
	// Env: ASSISTANT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// HistoryLimit is the number of prior chat turns included in the
	// outgoing context. Zero selects the default of 8.
	// Env: ASSISTANT_HISTORY_LIMIT
	HistoryLimit int `env:"HISTORY_LIMIT"`

	// SnapshotMaxBytes truncates the domain data snapshot before it is
	// attached to a request. Zero selects the default of 4096.
	// Env: ASSISTANT_SNAPSHOT_MAX_BYTES
	SnapshotMaxBytes int `env:"SNAPSHOT_MAX_BYTES"`

	// SessionAskLimit caps assistant calls per session. Zero selects the
	// default of 200.
	// Env: ASSISTANT_SESSION_ASK_LIMIT
	SessionAskLimit int `env:"SESSION_ASK_LIMIT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefreshInterval defines how often the CSV refresh worker re-imports
	// the domain feeds. Zero disables periodic refresh.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
