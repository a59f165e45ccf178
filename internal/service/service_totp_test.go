// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/mock"
	"github.com/pivault/pivault/internal/store"
	"github.com/pivault/pivault/models"
)

func newTestTOTPSvc(t *testing.T, ctrl *gomock.Controller) (
	*totpService,
	*mock.MockUserRepository,
	*mock.MockAuditRepository,
) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	mockAudit := mock.NewMockAuditRepository(ctrl)

	repos := &store.Repositories{UserRepository: mockUsers, AuditRepository: mockAudit}
	svc := NewTOTPService(repos, logger.Nop()).(*totpService)
	return svc, mockUsers, mockAudit
}

func TestTOTPService_Setup_StoresSecretDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestTOTPSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().GetUserByID(ctx, "u-1").Return(models.User{ID: "u-1", Email: "alice@example.com"}, nil)
	mockUsers.EXPECT().UpdateTOTP(ctx, "u-1", gomock.Any(), false).Return(nil)

	setup, err := svc.Setup(ctx, "u-1")
	require.NoError(t, err)
	assert.NotEmpty(t, setup.Secret)
	assert.Contains(t, setup.OTPAuthURL, "otpauth://totp/")
	assert.Contains(t, setup.OTPAuthURL, "PiVault")
}

func TestTOTPService_Verify_EnablesFactor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockAudit := newTestTOTPSvc(t, ctrl)
	ctx := context.Background()

	secret := "JBSWY3DPEHPK3PXP"
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	mockUsers.EXPECT().GetUserByID(ctx, "u-1").Return(models.User{ID: "u-1", TOTPSecret: secret}, nil)
	mockUsers.EXPECT().UpdateTOTP(ctx, "u-1", secret, true).Return(nil)
	mockAudit.EXPECT().RecordEvent(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.AuditEvent) error {
			assert.Equal(t, models.AuditTOTPEnabled, e.Action)
			return nil
		})

	require.NoError(t, svc.Verify(ctx, "u-1", code))
}

func TestTOTPService_Verify_NoSetup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestTOTPSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().GetUserByID(ctx, "u-1").Return(models.User{ID: "u-1"}, nil)

	err := svc.Verify(ctx, "u-1", "123456")
	assert.ErrorIs(t, err, ErrTOTPNotConfigured)
}

func TestTOTPService_Verify_WrongCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestTOTPSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().GetUserByID(ctx, "u-1").Return(models.User{ID: "u-1", TOTPSecret: "JBSWY3DPEHPK3PXP"}, nil)

	err := svc.Verify(ctx, "u-1", "000000")
	assert.ErrorIs(t, err, ErrTOTPCodeInvalid)
}

func TestTOTPService_Disable_RequiresValidCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockAudit := newTestTOTPSvc(t, ctrl)
	ctx := context.Background()

	secret := "JBSWY3DPEHPK3PXP"
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	mockUsers.EXPECT().GetUserByID(ctx, "u-1").Return(models.User{ID: "u-1", TOTPSecret: secret, TOTPEnabled: true}, nil).Times(2)

	// wrong code first
	assert.ErrorIs(t, svc.Disable(ctx, "u-1", "000000"), ErrTOTPCodeInvalid)

	// then the real one
	mockUsers.EXPECT().UpdateTOTP(ctx, "u-1", "", false).Return(nil)
	mockAudit.EXPECT().RecordEvent(ctx, gomock.Any()).Return(nil)
	require.NoError(t, svc.Disable(ctx, "u-1", code))
}

func TestTOTPService_Disable_NotEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestTOTPSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().GetUserByID(ctx, "u-1").Return(models.User{ID: "u-1", TOTPSecret: "JBSWY3DPEHPK3PXP"}, nil)

	assert.ErrorIs(t, svc.Disable(ctx, "u-1", "123456"), ErrTOTPNotConfigured)
}
