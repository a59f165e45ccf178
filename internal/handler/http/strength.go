// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"encoding/json"
	"net/http"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/password"
	"github.com/pivault/pivault/internal/utils"
	"github.com/pivault/pivault/models"
)

// passwordStrength scores a candidate password without authentication. The
// password is scored in memory and never logged, stored, or audited.
func (h *Handler) passwordStrength(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var body models.StrengthRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.passwordStrength").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, password.Score(body.Password), http.StatusOK)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}
