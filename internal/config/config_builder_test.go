// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenSignKey: "jwt_secret"}},
		&StructuredConfig{App: App{TokenIssuer: "issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
}

// TestBuild_FirstNonZeroWins verifies mergo's non-overwriting merge: an
// earlier config's field is not replaced by a later one.
func TestBuild_FirstNonZeroWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Server: Server{HTTPAddress: "first:8080"}},
		&StructuredConfig{Server: Server{HTTPAddress: "second:9090"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "first:8080", cfg.Server.HTTPAddress)
}

// TestBuild_InvalidDriverRejected verifies that build returns the validation
// error for an unsupported database driver.
func TestBuild_InvalidDriverRejected(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{Driver: "oracle"}}},
	)

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-secret")
	t.Setenv("APP_TOKEN_ISSUER", "env-issuer")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-secret", b.configs[0].App.TokenSignKey)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoPath verifies that withJSON is a no-op when no earlier config
// supplied a JSON file path.
func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder()
	b.withJSON()

	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestWithJSON_LoadsFile verifies that a path from an earlier source causes
// the JSON file to be parsed and appended.
func TestWithJSON_LoadsFile(t *testing.T) {
	p := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{
			"http_address":    "json-host:8080",
			"request_timeout": "30s",
		},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: p})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-host:8080", b.configs[1].Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, b.configs[1].Server.RequestTimeout)
}

// TestWithJSON_BadPathSetsError verifies that a missing JSON file records an
// error on the builder.
func TestWithJSON_BadPathSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "nope.json"})
	b.withJSON()

	assert.Error(t, b.err)
	assert.Len(t, b.configs, 1)
}

// ── applyDefaults ─────────────────────────────────────────────────────────────

// TestApplyDefaults_FillsZeroValues verifies that every documented default is
// applied to an empty config.
func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultDBDriver, cfg.Storage.DB.Driver)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultMaxLoginAttempts, cfg.Security.MaxLoginAttempts)
	assert.Equal(t, DefaultLoginAttemptWindow, cfg.Security.LoginAttemptWindow)
}

// TestApplyDefaults_KeepsExplicitValues verifies that set fields survive.
func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &StructuredConfig{
		Server:   Server{HTTPAddress: "explicit:1234"},
		Storage:  Storage{DB: DB{Driver: "pgx", DSN: "postgres://x"}},
		Security: Security{MaxLoginAttempts: 10},
	}
	cfg.applyDefaults()

	assert.Equal(t, "explicit:1234", cfg.Server.HTTPAddress)
	assert.Equal(t, "pgx", cfg.Storage.DB.Driver)
	assert.Equal(t, "postgres://x", cfg.Storage.DB.DSN)
	assert.Equal(t, 10, cfg.Security.MaxLoginAttempts)
}

// ── ClientConfig ──────────────────────────────────────────────────────────────

// TestClientConfigValidate verifies the adapter requirements.
func TestClientConfigValidate(t *testing.T) {
	valid := &ClientConfig{
		Adapter: ClientAdapter{HTTPAddress: "http://localhost:8080", RequestTimeout: time.Second},
	}
	assert.NoError(t, valid.validate())

	missingAddress := &ClientConfig{
		Adapter: ClientAdapter{RequestTimeout: time.Second},
	}
	assert.ErrorIs(t, missingAddress.validate(), ErrInvalidAdapterConfigs)

	missingTimeout := &ClientConfig{
		Adapter: ClientAdapter{HTTPAddress: "http://localhost:8080"},
	}
	assert.ErrorIs(t, missingTimeout.validate(), ErrInvalidAdapterConfigs)
}
