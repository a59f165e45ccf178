// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package server

// Server is the lifecycle contract the composition root runs the API
// through. RunServer blocks until the process receives a stop signal or the
// listener fails; Shutdown drains in-flight requests and may be called more
// than once.
type Server interface {
	RunServer()
	Shutdown()
}
