// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/mock"
	"github.com/pivault/pivault/internal/session"
	"github.com/pivault/pivault/models"
)

func newTestClientAuthSvc(t *testing.T, ctrl *gomock.Controller) (
	*clientAuthService,
	*mock.MockServerAdapter,
	*mock.MockKeyChain,
	*session.Session,
) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockKeyChain := mock.NewMockKeyChain(ctrl)
	sess := session.NewSession(mockKeyChain, logger.Nop())

	svc := NewClientAuthService(mockAdapter, sess, logger.Nop()).(*clientAuthService)
	return svc, mockAdapter, mockKeyChain, sess
}

func TestClientAuthService_Register_OpensUnlockedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockKeyChain, sess := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	key := make([]byte, 32)
	mockAdapter.EXPECT().Register(ctx, models.User{Email: "alice@example.com", Password: "sw0rdfish!"}).
		Return(models.User{ID: "u-1", Email: "alice@example.com", MasterKeySalt: testSalt, AutoLockMinutes: 15}, nil)
	mockKeyChain.EXPECT().DeriveKey("sw0rdfish!", testSalt).Return(key, nil)

	require.NoError(t, svc.Register(ctx, "alice@example.com", "sw0rdfish!"))
	assert.Equal(t, session.StateUnlocked, sess.State())
}

func TestClientAuthService_Register_ServerRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _, sess := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Register(ctx, gomock.Any()).Return(models.User{}, assert.AnError)

	err := svc.Register(ctx, "alice@example.com", "sw0rdfish!")
	assert.ErrorIs(t, err, ErrRegisterOnServer)
	assert.Equal(t, session.StateUnauthenticated, sess.State())
}

func TestClientAuthService_Login_PassesTOTPCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockKeyChain, sess := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, models.User{Email: "alice@example.com", Password: "sw0rdfish!", TOTPCode: "123456"}).
		Return(models.User{ID: "u-1", MasterKeySalt: testSalt, AutoLockMinutes: 30}, nil)
	mockKeyChain.EXPECT().DeriveKey("sw0rdfish!", testSalt).Return(make([]byte, 32), nil)

	require.NoError(t, svc.Login(ctx, "alice@example.com", "sw0rdfish!", "123456"))
	assert.Equal(t, session.StateUnlocked, sess.State())
}

func TestClientAuthService_Login_ServerRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _, sess := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.User{}, assert.AnError)

	err := svc.Login(ctx, "alice@example.com", "wrong", "")
	assert.ErrorIs(t, err, ErrLoginOnServer)
	assert.Equal(t, session.StateUnauthenticated, sess.State())
}

func TestClientAuthService_LockAndUnlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockKeyChain, sess := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).
		Return(models.User{ID: "u-1", MasterKeySalt: testSalt}, nil)
	mockKeyChain.EXPECT().DeriveKey("sw0rdfish!", testSalt).Return(make([]byte, 32), nil).Times(2)

	require.NoError(t, svc.Login(ctx, "alice@example.com", "sw0rdfish!", ""))

	svc.Lock()
	assert.Equal(t, session.StateLocked, sess.State())

	require.NoError(t, svc.Unlock("sw0rdfish!"))
	assert.Equal(t, session.StateUnlocked, sess.State())
}

func TestClientAuthService_UpdateSettings_AppliesAutoLockToSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockKeyChain, sess := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).
		Return(models.User{ID: "u-1", MasterKeySalt: testSalt, AutoLockMinutes: 15}, nil)
	mockKeyChain.EXPECT().DeriveKey(gomock.Any(), gomock.Any()).Return(make([]byte, 32), nil)
	require.NoError(t, svc.Login(ctx, "alice@example.com", "sw0rdfish!", ""))

	minutes := 5
	mockAdapter.EXPECT().UpdateSettings(ctx, models.SettingsUpdate{AutoLockMinutes: &minutes}).
		Return(models.User{ID: "u-1", AutoLockMinutes: minutes}, nil)

	user, err := svc.UpdateSettings(ctx, models.SettingsUpdate{AutoLockMinutes: &minutes})
	require.NoError(t, err)
	assert.Equal(t, minutes, user.AutoLockMinutes)
	assert.Equal(t, session.StateUnlocked, sess.State(),
		"shrinking the window must not lock an active session on the spot")
}

func TestClientAuthService_UpdateSettings_ServerRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _, _ := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	lang := "de"
	mockAdapter.EXPECT().UpdateSettings(ctx, gomock.Any()).Return(models.User{}, assert.AnError)

	_, err := svc.UpdateSettings(ctx, models.SettingsUpdate{Language: &lang})
	assert.ErrorIs(t, err, ErrServerOperation)
}

func TestClientAuthService_Logout_WipesSessionEvenOnServerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockKeyChain, sess := newTestClientAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).
		Return(models.User{ID: "u-1", MasterKeySalt: testSalt}, nil)
	mockKeyChain.EXPECT().DeriveKey(gomock.Any(), gomock.Any()).Return(make([]byte, 32), nil)
	require.NoError(t, svc.Login(ctx, "alice@example.com", "sw0rdfish!", ""))

	mockAdapter.EXPECT().Logout(ctx).Return(assert.AnError)

	err := svc.Logout(ctx)
	assert.ErrorIs(t, err, ErrServerOperation)
	assert.Equal(t, session.StateUnauthenticated, sess.State(),
		"local key material must be gone regardless of the server answer")
}
