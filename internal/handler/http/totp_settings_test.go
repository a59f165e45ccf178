// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pivault/pivault/internal/service"
	"github.com/pivault/pivault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTOTPSetup_Success(t *testing.T) {
	h, m := newTestHandler(t)

	m.totp.EXPECT().Setup(gomock.Any(), testUserID).Return(models.TOTPSetupResponse{
		Secret:     "JBSWY3DPEHPK3PXP",
		OTPAuthURL: "otpauth://totp/PiVault:alice@example.com?secret=JBSWY3DPEHPK3PXP",
	}, nil)

	req := asUser(newRequest(http.MethodPost, "/api/totp/setup", ""), testUserID)
	rec := httptest.NewRecorder()

	h.totpSetup(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.TOTPSetupResponse
	decodeJSON(t, rec, &body)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", body.Secret)
	assert.Contains(t, body.OTPAuthURL, "otpauth://")
}

func TestTOTPVerify_WrongCode(t *testing.T) {
	h, m := newTestHandler(t)

	m.totp.EXPECT().Verify(gomock.Any(), testUserID, "000000").
		Return(service.ErrTOTPCodeInvalid)

	req := asUser(newRequest(http.MethodPost, "/api/totp/verify", `{"code":"000000"}`), testUserID)
	rec := httptest.NewRecorder()

	h.totpVerify(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTOTPVerify_Success(t *testing.T) {
	h, m := newTestHandler(t)

	m.totp.EXPECT().Verify(gomock.Any(), testUserID, "123456").Return(nil)

	req := asUser(newRequest(http.MethodPost, "/api/totp/verify", `{"code":"123456"}`), testUserID)
	rec := httptest.NewRecorder()

	h.totpVerify(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestTOTPDisable_NotConfigured(t *testing.T) {
	h, m := newTestHandler(t)

	m.totp.EXPECT().Disable(gomock.Any(), testUserID, "123456").
		Return(service.ErrTOTPNotConfigured)

	req := asUser(newRequest(http.MethodPost, "/api/totp/disable", `{"code":"123456"}`), testUserID)
	rec := httptest.NewRecorder()

	h.totpDisable(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSettings_Success(t *testing.T) {
	h, m := newTestHandler(t)

	minutes := 30
	m.settings.EXPECT().UpdateSettings(gomock.Any(), testUserID, gomock.Cond(func(p models.SettingsUpdate) bool {
		return p.AutoLockMinutes != nil && *p.AutoLockMinutes == minutes
	})).Return(models.User{ID: testUserID, AutoLockMinutes: minutes}, nil)

	req := asUser(newRequest(http.MethodPut, "/api/settings", `{"auto_lock_minutes":30}`), testUserID)
	rec := httptest.NewRecorder()

	h.updateSettings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.User
	decodeJSON(t, rec, &body)
	assert.Equal(t, minutes, body.AutoLockMinutes)
}

func TestUpdateSettings_OutOfRange(t *testing.T) {
	h, m := newTestHandler(t)

	m.settings.EXPECT().UpdateSettings(gomock.Any(), testUserID, gomock.Any()).
		Return(models.User{}, service.ErrInvalidAutoLockMinutes)

	req := asUser(newRequest(http.MethodPut, "/api/settings", `{"auto_lock_minutes":500}`), testUserID)
	rec := httptest.NewRecorder()

	h.updateSettings(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
