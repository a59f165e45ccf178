// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. The mapping is declared
// by the `env` and `envPrefix` tags on the config structs, so this function
// stays oblivious to the actual variable names.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment config: %w", err)
	}

	return nil
}
