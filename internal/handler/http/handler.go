// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/service"
)

// Handler bundles the service layer with the transport-level logger. All
// route handlers and middleware hang off it.
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

// NewHandler builds the HTTP handler over the given services.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
