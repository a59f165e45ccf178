// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"encoding/json"
	"net/http"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/utils"
	"github.com/pivault/pivault/models"
)

func (h *Handler) totpSetup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	setup, err := h.services.TOTPService.Setup(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.totpSetup").Msg("totp setup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, setup, http.StatusOK)
}

func (h *Handler) totpVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var body models.TOTPVerify
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.totpVerify").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.TOTPService.Verify(ctx, userID, body.Code); err != nil {
		log.Err(err).Str("func", "*Handler.totpVerify").Msg("totp verification failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) totpDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var body models.TOTPVerify
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.totpDisable").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.TOTPService.Disable(ctx, userID, body.Code); err != nil {
		log.Err(err).Str("func", "*Handler.totpDisable").Msg("disabling totp failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
