// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI, client services, the local session, and the
// background auto-lock watcher into a single process lifecycle.
package client
