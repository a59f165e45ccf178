// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/utils"
	"github.com/pivault/pivault/models"
)

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var entry models.VaultEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Err(err).Str("func", "*Handler.createEntry").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.VaultService.CreateEntry(ctx, userID, entry)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createEntry").Msg("creating vault entry failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var categoryID *string
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		categoryID = &raw
	}

	entries, err := h.services.VaultService.GetEntries(ctx, userID, categoryID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getEntries").Msg("listing vault entries failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		log.Err(ErrMissingURLParameter).Str("func", "*Handler.getEntry").Send()
		http.Error(w, ErrMissingURLParameter.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.services.VaultService.GetEntry(ctx, userID, entryID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getEntry").Msg("loading vault entry failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		log.Err(ErrMissingURLParameter).Str("func", "*Handler.updateEntry").Send()
		http.Error(w, ErrMissingURLParameter.Error(), http.StatusBadRequest)
		return
	}

	var entry models.VaultEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Err(err).Str("func", "*Handler.updateEntry").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// The URL is authoritative for the entry identity.
	entry.ID = entryID

	updated, err := h.services.VaultService.UpdateEntry(ctx, userID, entry)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateEntry").Msg("updating vault entry failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		log.Err(ErrMissingURLParameter).Str("func", "*Handler.deleteEntry").Send()
		http.Error(w, ErrMissingURLParameter.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.VaultService.DeleteEntry(ctx, userID, entryID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteEntry").Msg("deleting vault entry failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) exportVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	bundle, err := h.services.VaultService.Export(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.exportVault").Msg("vault export failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, bundle, http.StatusOK)
}

func (h *Handler) importVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	replace := false
	if raw := r.URL.Query().Get("replace"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Err(err).Str("func", "*Handler.importVault").Msg("invalid replace query parameter")
			http.Error(w, "invalid replace query parameter", http.StatusBadRequest)
			return
		}
		replace = parsed
	}

	var bundle models.ExportBundle
	if err := json.NewDecoder(r.Body).Decode(&bundle); err != nil {
		log.Err(err).Str("func", "*Handler.importVault").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	imported, err := h.services.VaultService.Import(ctx, userID, bundle, replace)
	if err != nil {
		log.Err(err).Str("func", "*Handler.importVault").Msg("vault import failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]int{"imported": imported}, http.StatusOK)
}
