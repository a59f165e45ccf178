// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pivault/pivault/internal/service"
	"github.com/pivault/pivault/internal/utils"
	"github.com/pivault/pivault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.auth(next)
	req := newRequest(http.MethodGet, "/test", "")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

func TestAuth_MissingHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	called := false
	rr := executeAuth(h, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}

func TestAuth_MalformedHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := executeAuth(h, "just-a-token", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.EXPECT().ParseToken(gomock.Any(), "stale.jwt").
		Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	rr := executeAuth(h, "Bearer stale.jwt", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), service.ErrTokenIsExpiredOrInvalid.Error())
}

func TestAuth_ValidTokenInjectsUserID(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.EXPECT().ParseToken(gomock.Any(), "fresh.jwt").
		Return(models.Token{UserID: testUserID}, nil)

	var gotUserID string
	rr := executeAuth(h, "Bearer fresh.jwt", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok)
		gotUserID = id
	}))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, testUserID, gotUserID)
}
