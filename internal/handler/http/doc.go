// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

// Package http implements the HTTP transport layer of the vault server.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, request tracing, access
// logging, response compression, and client metadata capture are handled in
// this package before requests are delegated to the service layer.
package http
