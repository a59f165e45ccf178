// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the pivault server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientSession holds local session behavior settings for the client.
type ClientSession struct {
	// AutoLockCheckInterval defines how often the auto-lock watcher runs.
	AutoLockCheckInterval time.Duration
	// ClipboardClearTimeout defines how long copied secrets stay on the
	// clipboard before the conditional clear fires.
	ClipboardClearTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter
	// Session contains auto-lock and clipboard settings.
	Session ClientSession
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, applies client defaults, and validates the
// resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Session: ClientSession{
			AutoLockCheckInterval: cfg.Session.AutoLockCheckInterval,
			ClipboardClearTimeout: cfg.Session.ClipboardClearTimeout,
		},
	}

	if clientCfg.Adapter.HTTPAddress == "" {
		clientCfg.Adapter.HTTPAddress = "http://localhost:8080"
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}

	return clientCfg, clientCfg.validate()
}
