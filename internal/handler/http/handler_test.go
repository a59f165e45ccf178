// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/mock"
	"github.com/pivault/pivault/internal/service"
	"github.com/pivault/pivault/internal/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type handlerMocks struct {
	auth     *mock.MockAuthService
	totp     *mock.MockTOTPService
	settings *mock.MockSettingsService
	category *mock.MockCategoryService
	vault    *mock.MockVaultService
}

// newTestHandler builds a Handler over gomock service doubles.
func newTestHandler(t *testing.T) (*Handler, handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := handlerMocks{
		auth:     mock.NewMockAuthService(ctrl),
		totp:     mock.NewMockTOTPService(ctrl),
		settings: mock.NewMockSettingsService(ctrl),
		category: mock.NewMockCategoryService(ctrl),
		vault:    mock.NewMockVaultService(ctrl),
	}

	h := NewHandler(&service.Services{
		AuthService:     m.auth,
		TOTPService:     m.totp,
		SettingsService: m.settings,
		CategoryService: m.category,
		VaultService:    m.vault,
	}, logger.Nop())

	return h, m
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// newRequest builds a request carrying a nop request-scoped logger.
func newRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	nop := logger.Nop()
	return req.WithContext(nop.Logger.WithContext(req.Context()))
}

// asUser stamps the request context the way the auth middleware does after a
// successful token check.
func asUser(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)
	return req.WithContext(ctx)
}

// decodeJSON unmarshals the recorded response body into v.
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
