// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

// Package server wires and runs the application's HTTP transport.
//
// It owns the server lifecycle: startup, OS signal handling, and graceful
// shutdown with a bounded drain window.
package server
