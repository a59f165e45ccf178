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

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var patch models.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Str("func", "*Handler.updateSettings").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.SettingsService.UpdateSettings(ctx, userID, patch)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateSettings").Msg("settings update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}
