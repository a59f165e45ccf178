// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

// Package tui implements the interactive terminal client.
//
// It is organized as Bubble Tea models: a root router that owns cross-page
// navigation and global hotkeys, page models for the authentication flow,
// and a main-loop model that covers the unlocked vault (entry list, detail,
// create/edit form, password generator) plus the lock screen. All slow work
// (server calls, key derivation) runs inside tea commands so the UI never
// blocks.
package tui
