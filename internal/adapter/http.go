// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/pivault/pivault/internal/config"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/models"
)

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying resty client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken, and the created user
// (including MasterKeySalt) is decoded from the body.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	var created models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&created).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	return created, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials (and the TOTP
// code when the account requires one) to POST /api/auth/login. On success the
// bearer token is extracted from the Authorization response header and stored
// via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	var found models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&found).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return found, nil
}

// Me implements [ServerAdapter]. It GETs /api/auth/me and decodes the
// authenticated user's record. Requires a valid bearer token.
func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get("/api/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Logout implements [ServerAdapter]. It POSTs to /api/auth/logout and drops
// the stored token whether or not the server answered successfully.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/auth/logout")

	h.SetToken("")

	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

// SetupTOTP implements [ServerAdapter]. It POSTs to /api/totp/setup and
// decodes the provisioning material. Requires a valid bearer token.
func (h *httpServerAdapter) SetupTOTP(ctx context.Context) (models.TOTPSetupResponse, error) {
	var setup models.TOTPSetupResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&setup).
		Post("/api/totp/setup")
	if err != nil {
		return models.TOTPSetupResponse{}, fmt.Errorf("totp setup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TOTPSetupResponse{}, err
	}

	return setup, nil
}

// VerifyTOTP implements [ServerAdapter]. It POSTs the code to
// /api/totp/verify. Requires a valid bearer token.
func (h *httpServerAdapter) VerifyTOTP(ctx context.Context, code string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.TOTPVerify{Code: code}).
		Post("/api/totp/verify")
	if err != nil {
		return fmt.Errorf("totp verify request: %w", err)
	}

	return mapHTTPError(resp)
}

// DisableTOTP implements [ServerAdapter]. It POSTs the code to
// /api/totp/disable. Requires a valid bearer token.
func (h *httpServerAdapter) DisableTOTP(ctx context.Context, code string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.TOTPVerify{Code: code}).
		Post("/api/totp/disable")
	if err != nil {
		return fmt.Errorf("totp disable request: %w", err)
	}

	return mapHTTPError(resp)
}

// UpdateSettings implements [ServerAdapter]. It PUTs the partial update to
// /api/settings and decodes the refreshed user. Requires a valid bearer token.
func (h *httpServerAdapter) UpdateSettings(ctx context.Context, update models.SettingsUpdate) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&user).
		Put("/api/settings")
	if err != nil {
		return models.User{}, fmt.Errorf("update settings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// CreateCategory implements [ServerAdapter]. It POSTs the category to
// /api/categories. Requires a valid bearer token.
func (h *httpServerAdapter) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	var created models.Category

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(category).
		SetResult(&created).
		Post("/api/categories")
	if err != nil {
		return models.Category{}, fmt.Errorf("create category request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Category{}, err
	}

	return created, nil
}

// GetCategories implements [ServerAdapter]. It GETs /api/categories and
// decodes the list. Requires a valid bearer token.
func (h *httpServerAdapter) GetCategories(ctx context.Context) ([]models.Category, error) {
	resp, err := h.authedRequest(ctx).Get("/api/categories")
	if err != nil {
		return nil, fmt.Errorf("get categories request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var categories []models.Category
	if err = json.Unmarshal(resp.Body(), &categories); err != nil {
		return nil, fmt.Errorf("decode categories response: %w", err)
	}
	return categories, nil
}

// UpdateCategory implements [ServerAdapter]. It PUTs the new name and icon
// to /api/categories/{id}. Requires a valid bearer token.
func (h *httpServerAdapter) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	var updated models.Category

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", category.ID).
		SetBody(category).
		SetResult(&updated).
		Put("/api/categories/{id}")
	if err != nil {
		return models.Category{}, fmt.Errorf("update category request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Category{}, err
	}

	return updated, nil
}

// DeleteCategory implements [ServerAdapter]. It DELETEs
// /api/categories/{id}. Requires a valid bearer token.
func (h *httpServerAdapter) DeleteCategory(ctx context.Context, categoryID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", categoryID).
		Delete("/api/categories/{id}")
	if err != nil {
		return fmt.Errorf("delete category request: %w", err)
	}

	return mapHTTPError(resp)
}

// CreateEntry implements [ServerAdapter]. It POSTs the encrypted entry to
// /api/vault/entries and decodes the created record. Requires a valid bearer
// token.
func (h *httpServerAdapter) CreateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	var created models.VaultEntry

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(entry).
		SetResult(&created).
		Post("/api/vault/entries")
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("create entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultEntry{}, err
	}

	return created, nil
}

// GetEntries implements [ServerAdapter]. It GETs /api/vault/entries, adding
// the category_id query parameter when categoryID is non-nil. Requires a valid
// bearer token.
func (h *httpServerAdapter) GetEntries(ctx context.Context, categoryID *string) ([]models.VaultEntry, error) {
	req := h.authedRequest(ctx)
	if categoryID != nil {
		req.SetQueryParam("category_id", *categoryID)
	}

	resp, err := req.Get("/api/vault/entries")
	if err != nil {
		return nil, fmt.Errorf("get entries request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var entries []models.VaultEntry
	if err = json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("decode entries response: %w", err)
	}
	return entries, nil
}

// GetEntry implements [ServerAdapter]. It GETs /api/vault/entries/{id}.
// Requires a valid bearer token.
func (h *httpServerAdapter) GetEntry(ctx context.Context, entryID string) (models.VaultEntry, error) {
	var entry models.VaultEntry

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", entryID).
		SetResult(&entry).
		Get("/api/vault/entries/{id}")
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("get entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultEntry{}, err
	}

	return entry, nil
}

// UpdateEntry implements [ServerAdapter]. It PUTs the new ciphertext to
// /api/vault/entries/{id} and decodes the refreshed record. Requires a valid
// bearer token.
func (h *httpServerAdapter) UpdateEntry(ctx context.Context, entry models.VaultEntry) (models.VaultEntry, error) {
	var updated models.VaultEntry

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", entry.ID).
		SetBody(entry).
		SetResult(&updated).
		Put("/api/vault/entries/{id}")
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("update entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultEntry{}, err
	}

	return updated, nil
}

// DeleteEntry implements [ServerAdapter]. It DELETEs /api/vault/entries/{id}.
// Requires a valid bearer token.
func (h *httpServerAdapter) DeleteEntry(ctx context.Context, entryID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", entryID).
		Delete("/api/vault/entries/{id}")
	if err != nil {
		return fmt.Errorf("delete entry request: %w", err)
	}

	return mapHTTPError(resp)
}

// Export implements [ServerAdapter]. It GETs /api/vault/export and decodes the
// bundle. Requires a valid bearer token.
func (h *httpServerAdapter) Export(ctx context.Context) (models.ExportBundle, error) {
	var bundle models.ExportBundle

	resp, err := h.authedRequest(ctx).
		SetResult(&bundle).
		Get("/api/vault/export")
	if err != nil {
		return models.ExportBundle{}, fmt.Errorf("export request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ExportBundle{}, err
	}

	return bundle, nil
}

// Import implements [ServerAdapter]. It POSTs the bundle to
// /api/vault/import, with the replace flag as a query parameter, and decodes
// the imported-entry count. Requires a valid bearer token.
func (h *httpServerAdapter) Import(ctx context.Context, bundle models.ExportBundle, replace bool) (int, error) {
	var result struct {
		Imported int `json:"imported"`
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("replace", strconv.FormatBool(replace)).
		SetBody(bundle).
		SetResult(&result).
		Post("/api/vault/import")
	if err != nil {
		return 0, fmt.Errorf("import request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return result.Imported, nil
}

// ScorePassword implements [ServerAdapter]. It POSTs the candidate password to
// /api/password/strength and decodes the score. The endpoint does not require
// authentication.
func (h *httpServerAdapter) ScorePassword(ctx context.Context, password string) (models.StrengthResult, error) {
	var result models.StrengthResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.StrengthRequest{Password: password}).
		SetResult(&result).
		Post("/api/password/strength")
	if err != nil {
		return models.StrengthResult{}, fmt.Errorf("score password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StrengthResult{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
