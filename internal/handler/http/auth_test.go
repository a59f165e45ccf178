// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pivault/pivault/internal/service"
	"github.com/pivault/pivault/internal/store"
	"github.com/pivault/pivault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testUserID = "8b7e1a54-9f3c-4d2e-b1a7-c6f0e5d4a3b2"

var validUser = models.User{
	Email:    "alice@example.com",
	Password: "correct horse battery staple",
}

func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed, UserID: testUserID}
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	h, m := newTestHandler(t)

	registered := models.User{
		ID:            testUserID,
		Email:         validUser.Email,
		MasterKeySalt: "aa11bb22",
	}
	m.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(registered, nil)
	m.auth.EXPECT().CreateToken(gomock.Any(), registered).Return(stubToken(signedToken), nil)

	req := newRequest(http.MethodPost, "/api/auth/register", jsonBody(t, validUser))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Bearer "+signedToken, rec.Header().Get("Authorization"))

	var body models.User
	decodeJSON(t, rec, &body)
	assert.Equal(t, testUserID, body.ID)
	assert.Equal(t, "aa11bb22", body.MasterKeySalt)
}

func TestRegister_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	req := newRequest(http.MethodPost, "/api/auth/register", "{not json")
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_EmailTaken(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrEmailAlreadyExists)

	req := newRequest(http.MethodPost, "/api/auth/register", jsonBody(t, validUser))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, rec.Header().Get("Authorization"))
}

func TestRegister_TokenCreationFails(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{ID: testUserID}, nil)
	m.auth.EXPECT().CreateToken(gomock.Any(), gomock.Any()).
		Return(models.Token{}, service.ErrTokenCreationFailed)

	req := newRequest(http.MethodPost, "/api/auth/register", jsonBody(t, validUser))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	h, m := newTestHandler(t)

	found := models.User{ID: testUserID, Email: validUser.Email, MasterKeySalt: "cc33dd44"}
	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(found, nil)
	m.auth.EXPECT().CreateToken(gomock.Any(), found).Return(stubToken(signedToken), nil)

	req := newRequest(http.MethodPost, "/api/auth/login", jsonBody(t, validUser))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+signedToken, rec.Header().Get("Authorization"))

	var body models.User
	decodeJSON(t, rec, &body)
	assert.Equal(t, "cc33dd44", body.MasterKeySalt)
}

func TestLogin_WrongCredentials(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrInvalidCredentials)

	req := newRequest(http.MethodPost, "/api/auth/login", jsonBody(t, validUser))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_Throttled(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrTooManyLoginAttempts)

	req := newRequest(http.MethodPost, "/api/auth/login", jsonBody(t, validUser))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestLogin_TOTPRequired(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrTOTPCodeRequired)

	req := newRequest(http.MethodPost, "/api/auth/login", jsonBody(t, validUser))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// me / logout
// ─────────────────────────────────────────────

func TestMe_Success(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.EXPECT().GetUser(gomock.Any(), testUserID).
		Return(models.User{ID: testUserID, Email: validUser.Email, Language: "en"}, nil)

	req := asUser(newRequest(http.MethodGet, "/api/auth/me", ""), testUserID)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.User
	decodeJSON(t, rec, &body)
	assert.Equal(t, validUser.Email, body.Email)
}

func TestMe_NoUserInContext(t *testing.T) {
	h, _ := newTestHandler(t)

	req := newRequest(http.MethodGet, "/api/auth/me", "")
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_Success(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.EXPECT().Logout(gomock.Any(), testUserID).Return(nil)

	req := asUser(newRequest(http.MethodPost, "/api/auth/logout", ""), testUserID)
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}
