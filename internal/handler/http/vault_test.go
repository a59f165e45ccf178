// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pivault/pivault/internal/store"
	"github.com/pivault/pivault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// withURLParam routes the request through a throwaway chi context so that
// chi.URLParam resolves inside the handler under test.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateEntry_Success(t *testing.T) {
	h, m := newTestHandler(t)

	entry := models.VaultEntry{EncryptedData: "c2VjcmV0", Nonce: "0102030405060708090a0b0c"}
	created := entry
	created.ID = "entry-1"

	m.vault.EXPECT().CreateEntry(gomock.Any(), testUserID, gomock.Any()).Return(created, nil)

	req := asUser(newRequest(http.MethodPost, "/api/vault/entries", jsonBody(t, entry)), testUserID)
	rec := httptest.NewRecorder()

	h.createEntry(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body models.VaultEntry
	decodeJSON(t, rec, &body)
	assert.Equal(t, "entry-1", body.ID)
	assert.Equal(t, entry.EncryptedData, body.EncryptedData)
}

func TestCreateEntry_MissingCiphertext(t *testing.T) {
	h, m := newTestHandler(t)

	m.vault.EXPECT().CreateEntry(gomock.Any(), testUserID, gomock.Any()).
		Return(models.VaultEntry{}, store.ErrEntryNotSaved)

	req := asUser(newRequest(http.MethodPost, "/api/vault/entries", `{"nonce":"aa"}`), testUserID)
	rec := httptest.NewRecorder()

	h.createEntry(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetEntries_CategoryFilter(t *testing.T) {
	h, m := newTestHandler(t)

	m.vault.EXPECT().GetEntries(gomock.Any(), testUserID, gomock.Cond(func(got *string) bool {
		return got != nil && *got == "cat-7"
	})).Return([]models.VaultEntry{{ID: "entry-1"}}, nil)

	req := asUser(newRequest(http.MethodGet, "/api/vault/entries?category_id=cat-7", ""), testUserID)
	rec := httptest.NewRecorder()

	h.getEntries(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []models.VaultEntry
	decodeJSON(t, rec, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "entry-1", body[0].ID)
}

func TestGetEntries_NoFilter(t *testing.T) {
	h, m := newTestHandler(t)

	m.vault.EXPECT().GetEntries(gomock.Any(), testUserID, nil).
		Return([]models.VaultEntry{}, nil)

	req := asUser(newRequest(http.MethodGet, "/api/vault/entries", ""), testUserID)
	rec := httptest.NewRecorder()

	h.getEntries(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetEntry_NotFound(t *testing.T) {
	h, m := newTestHandler(t)

	m.vault.EXPECT().GetEntry(gomock.Any(), testUserID, "ghost").
		Return(models.VaultEntry{}, store.ErrEntryNotFound)

	req := asUser(newRequest(http.MethodGet, "/api/vault/entries/ghost", ""), testUserID)
	req = withURLParam(req, "id", "ghost")
	rec := httptest.NewRecorder()

	h.getEntry(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateEntry_URLWinsOverBody(t *testing.T) {
	h, m := newTestHandler(t)

	m.vault.EXPECT().UpdateEntry(gomock.Any(), testUserID, gomock.Cond(func(e models.VaultEntry) bool {
		return e.ID == "entry-9"
	})).DoAndReturn(func(_ context.Context, _ string, e models.VaultEntry) (models.VaultEntry, error) {
		return e, nil
	})

	// Body carries a different ID; the URL parameter is authoritative.
	body := jsonBody(t, models.VaultEntry{ID: "spoofed", EncryptedData: "bmV3", Nonce: "ff"})
	req := asUser(newRequest(http.MethodPut, "/api/vault/entries/entry-9", body), testUserID)
	req = withURLParam(req, "id", "entry-9")
	rec := httptest.NewRecorder()

	h.updateEntry(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.VaultEntry
	decodeJSON(t, rec, &got)
	assert.Equal(t, "entry-9", got.ID)
}

func TestDeleteEntry_Success(t *testing.T) {
	h, m := newTestHandler(t)

	m.vault.EXPECT().DeleteEntry(gomock.Any(), testUserID, "entry-3").Return(nil)

	req := asUser(newRequest(http.MethodDelete, "/api/vault/entries/entry-3", ""), testUserID)
	req = withURLParam(req, "id", "entry-3")
	rec := httptest.NewRecorder()

	h.deleteEntry(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestExportVault(t *testing.T) {
	h, m := newTestHandler(t)

	bundle := models.ExportBundle{
		Entries:    []models.VaultEntry{{ID: "entry-1"}},
		Categories: []models.Category{{ID: "cat-1", Name: "Email"}},
		Version:    models.ExportVersion,
	}
	m.vault.EXPECT().Export(gomock.Any(), testUserID).Return(bundle, nil)

	req := asUser(newRequest(http.MethodGet, "/api/vault/export", ""), testUserID)
	rec := httptest.NewRecorder()

	h.exportVault(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.ExportBundle
	decodeJSON(t, rec, &got)
	assert.Equal(t, models.ExportVersion, got.Version)
	require.Len(t, got.Categories, 1)
}

func TestImportVault_ReplaceFlag(t *testing.T) {
	h, m := newTestHandler(t)

	bundle := models.ExportBundle{
		Entries: []models.VaultEntry{{EncryptedData: "YQ==", Nonce: "01"}},
		Version: models.ExportVersion,
	}
	m.vault.EXPECT().Import(gomock.Any(), testUserID, gomock.Any(), true).Return(1, nil)

	req := asUser(newRequest(http.MethodPost, "/api/vault/import?replace=true", jsonBody(t, bundle)), testUserID)
	rec := httptest.NewRecorder()

	h.importVault(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"imported": 1}`, rec.Body.String())
}

func TestImportVault_BadReplaceValue(t *testing.T) {
	h, _ := newTestHandler(t)

	req := asUser(newRequest(http.MethodPost, "/api/vault/import?replace=sometimes", "{}"), testUserID)
	rec := httptest.NewRecorder()

	h.importVault(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
