// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package config

import (
	"time"
)

// Defaults applied by GetStructuredConfig when no source supplies a value.
const (
	DefaultHTTPAddress        = "0.0.0.0:8080"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultTokenIssuer        = "pivault"
	DefaultTokenDuration      = 24 * time.Hour
	DefaultDBDriver           = "sqlite3"
	DefaultDSN                = "pivault.db"
	DefaultMaxLoginAttempts   = 5
	DefaultLoginAttemptWindow = 15 * time.Minute
)

// StructuredConfig is the top-level configuration container for pivault.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters and
	// credential hashing keys.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Security holds brute-force protection settings for the login endpoint.
	Security Security `envPrefix:"SECURITY_"`

	// Adapter holds the endpoint settings the terminal client uses to reach
	// the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Session holds client-side session behavior settings (auto-lock check
	// cadence, clipboard clear timeout).
	Session Session `envPrefix:"SESSION_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security and
// token lifecycle.
type App struct {
	// PasswordHashKey is the secret key used when hashing login passwords
	// with HMAC-SHA256. Must be kept confidential. It never touches vault
	// key derivation, which is a pure client-side concern.
	// Env: APP_PASSWORD_HASH_KEY
	PasswordHashKey string `env:"PASSWORD_HASH_KEY"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "24h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the database backend: "sqlite3" (default, the original
	// deployment target) or "pgx" for PostgreSQL.
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the Data Source Name understood by the selected driver:
	// a file path for sqlite3, a postgres:// URI for pgx.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Security holds brute-force protection settings for the login flow.
type Security struct {
	// MaxLoginAttempts is the number of failed logins per (email, IP) pair
	// tolerated inside LoginAttemptWindow before logins are blocked.
	// Env: SECURITY_MAX_LOGIN_ATTEMPTS
	MaxLoginAttempts int `env:"MAX_LOGIN_ATTEMPTS"`

	// LoginAttemptWindow is the sliding window for counting failed logins.
	// Env: SECURITY_LOGIN_ATTEMPT_WINDOW
	LoginAttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW"`
}

// Adapter holds the settings the terminal client uses to reach the server.
type Adapter struct {
	// HTTPAddress is the base URL of the pivault server
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the default timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Session holds client-side session behavior settings.
type Session struct {
	// AutoLockCheckInterval is how often the auto-lock watcher evaluates the
	// inactivity window.
	// Env: SESSION_AUTO_LOCK_CHECK_INTERVAL
	AutoLockCheckInterval time.Duration `env:"AUTO_LOCK_CHECK_INTERVAL"`

	// ClipboardClearTimeout is how long a copied secret stays on the
	// clipboard before the conditional clear fires.
	// Env: SESSION_CLIPBOARD_CLEAR_TIMEOUT
	ClipboardClearTimeout time.Duration `env:"CLIPBOARD_CLEAR_TIMEOUT"`
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
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DefaultDBDriver
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if cfg.Security.MaxLoginAttempts == 0 {
		cfg.Security.MaxLoginAttempts = DefaultMaxLoginAttempts
	}
	if cfg.Security.LoginAttemptWindow == 0 {
		cfg.Security.LoginAttemptWindow = DefaultLoginAttemptWindow
	}
}
