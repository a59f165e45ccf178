// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/utils"
	"github.com/pivault/pivault/models"
)

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		log.Err(err).Str("func", "*Handler.createCategory").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.CategoryService.CreateCategory(ctx, userID, category)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createCategory").Msg("creating category failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	categories, err := h.services.CategoryService.GetCategories(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getCategories").Msg("listing categories failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, categories, http.StatusOK)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	categoryID := chi.URLParam(r, "id")
	if categoryID == "" {
		log.Err(ErrMissingURLParameter).Str("func", "*Handler.updateCategory").Send()
		http.Error(w, ErrMissingURLParameter.Error(), http.StatusBadRequest)
		return
	}

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		log.Err(err).Str("func", "*Handler.updateCategory").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	// The URL is authoritative for the category identity.
	category.ID = categoryID

	updated, err := h.services.CategoryService.UpdateCategory(ctx, userID, category)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateCategory").Msg("updating category failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	categoryID := chi.URLParam(r, "id")
	if categoryID == "" {
		log.Err(ErrMissingURLParameter).Str("func", "*Handler.deleteCategory").Send()
		http.Error(w, ErrMissingURLParameter.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.CategoryService.DeleteCategory(ctx, userID, categoryID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteCategory").Msg("deleting category failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
