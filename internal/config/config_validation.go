// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Defaults have not been applied yet at this point, so only values that are
// invalid in any state are rejected here.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case "", "sqlite3", "pgx":
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Security.MaxLoginAttempts < 0 || cfg.Security.LoginAttemptWindow < 0 {
		return ErrInvalidSecurityConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
