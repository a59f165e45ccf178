// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init wires the full route table. Middleware order matters: the trace ID
// comes first so that every later log line carries it, then access logging,
// compression, and client metadata capture. Authentication is applied per
// group, not globally.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	router.Use(withClientMeta)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/password/strength", h.passwordStrength)
	})

	// routes behind JWT authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/me", h.me)
		r.Post("/api/auth/logout", h.logout)

		r.Post("/api/totp/setup", h.totpSetup)
		r.Post("/api/totp/verify", h.totpVerify)
		r.Post("/api/totp/disable", h.totpDisable)

		r.Put("/api/settings", h.updateSettings)

		r.Post("/api/categories", h.createCategory)
		r.Get("/api/categories", h.getCategories)
		r.Put("/api/categories/{id}", h.updateCategory)
		r.Delete("/api/categories/{id}", h.deleteCategory)

		r.Post("/api/vault/entries", h.createEntry)
		r.Get("/api/vault/entries", h.getEntries)
		r.Get("/api/vault/entries/{id}", h.getEntry)
		r.Put("/api/vault/entries/{id}", h.updateEntry)
		r.Delete("/api/vault/entries/{id}", h.deleteEntry)

		r.Get("/api/vault/export", h.exportVault)
		r.Post("/api/vault/import", h.importVault)
	})

	return router
}
