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

	"github.com/pivault/pivault/internal/config"
	"github.com/pivault/pivault/internal/logger"
	"github.com/pivault/pivault/internal/mock"
	"github.com/pivault/pivault/internal/store"
	"github.com/pivault/pivault/internal/utils"
	"github.com/pivault/pivault/models"
)

const (
	testHashKey = "test-password-hash-key"
	testSignKey = "test-token-sign-key"
	testSalt    = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

// newTestAuthSvc builds an authService backed entirely by mocks.
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (
	*authService,
	*mock.MockUserRepository,
	*mock.MockCategoryRepository,
	*mock.MockLoginAttemptRepository,
	*mock.MockAuditRepository,
	*mock.MockKeyChain,
) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	mockCategories := mock.NewMockCategoryRepository(ctrl)
	mockAttempts := mock.NewMockLoginAttemptRepository(ctrl)
	mockAudit := mock.NewMockAuditRepository(ctrl)
	mockKeyChain := mock.NewMockKeyChain(ctrl)

	repos := &store.Repositories{
		UserRepository:         mockUsers,
		CategoryRepository:     mockCategories,
		LoginAttemptRepository: mockAttempts,
		AuditRepository:        mockAudit,
	}

	appCfg := config.App{
		PasswordHashKey: testHashKey,
		TokenSignKey:    testSignKey,
		TokenIssuer:     "pivault",
		TokenDuration:   time.Hour,
	}
	security := config.Security{MaxLoginAttempts: 5, LoginAttemptWindow: 15 * time.Minute}

	svc := NewAuthService(repos, mockKeyChain, appCfg, security, logger.Nop()).(*authService)
	return svc, mockUsers, mockCategories, mockAttempts, mockAudit, mockKeyChain
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockCategories, _, mockAudit, mockKeyChain := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockKeyChain.EXPECT().GenerateSalt().Return(testSalt, nil)
	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "alice@example.com", u.Email)
			assert.Equal(t, testSalt, u.MasterKeySalt)
			assert.NotEmpty(t, u.ID)
			assert.Empty(t, u.Password, "plaintext password must not reach the store")
			assert.True(t, utils.VerifyHash("sw0rdfish!", testHashKey, u.PasswordHash))
			assert.Equal(t, "en", u.Language)
			assert.Equal(t, 15, u.AutoLockMinutes)
			return u, nil
		})
	mockCategories.EXPECT().CreateCategory(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, c models.Category) (models.Category, error) {
			assert.Equal(t, "General", c.Name)
			return c, nil
		})
	mockAudit.EXPECT().RecordEvent(ctx, gomock.Any()).Return(nil)

	got, err := svc.RegisterUser(ctx, models.User{Email: "Alice@Example.com ", Password: "sw0rdfish!"})
	require.NoError(t, err)
	assert.Equal(t, testSalt, got.MasterKeySalt)
}

func TestAuthService_RegisterUser_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	tests := []struct {
		name string
		user models.User
	}{
		{name: "no at sign", user: models.User{Email: "alice.example.com", Password: "longenough"}},
		{name: "empty email", user: models.User{Email: "", Password: "longenough"}},
		{name: "short password", user: models.User{Email: "alice@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterUser(ctx, tt.user)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestAuthService_RegisterUser_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _, _, _, mockKeyChain := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockKeyChain.EXPECT().GenerateSalt().Return(testSalt, nil)
	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.RegisterUser(ctx, models.User{Email: "alice@example.com", Password: "sw0rdfish!"})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func storedUser(password string) models.User {
	return models.User{
		ID:            "u-1",
		Email:         "alice@example.com",
		PasswordHash:  utils.HashString(password, testHashKey),
		MasterKeySalt: testSalt,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _, mockAttempts, mockAudit, _ := newTestAuthSvc(t, ctrl)
	ctx := utils.WithClientMeta(context.Background(), utils.ClientMeta{IPAddress: "10.0.0.1"})

	mockAttempts.EXPECT().CountRecentAttempts(ctx, "alice@example.com", "10.0.0.1", gomock.Any()).Return(0, nil)
	mockUsers.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(storedUser("sw0rdfish!"), nil)
	mockAttempts.EXPECT().ClearAttempts(ctx, "alice@example.com", "10.0.0.1").Return(nil)
	mockAudit.EXPECT().RecordEvent(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.AuditEvent) error {
			assert.Equal(t, models.AuditLogin, e.Action)
			assert.True(t, e.Success)
			assert.Equal(t, "10.0.0.1", e.IPAddress)
			return nil
		})

	got, err := svc.Login(ctx, models.User{Email: "Alice@example.com", Password: "sw0rdfish!"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _, mockAttempts, mockAudit, _ := newTestAuthSvc(t, ctrl)
	ctx := utils.WithClientMeta(context.Background(), utils.ClientMeta{IPAddress: "10.0.0.1"})

	mockAttempts.EXPECT().CountRecentAttempts(ctx, "alice@example.com", "10.0.0.1", gomock.Any()).Return(2, nil)
	mockUsers.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(storedUser("sw0rdfish!"), nil)
	mockAttempts.EXPECT().RecordAttempt(ctx, gomock.Any()).Return(nil)
	mockAudit.EXPECT().RecordEvent(ctx, gomock.Any()).Return(nil)

	_, err := svc.Login(ctx, models.User{Email: "alice@example.com", Password: "not-it"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _, mockAttempts, mockAudit, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAttempts.EXPECT().CountRecentAttempts(ctx, "ghost@example.com", "", gomock.Any()).Return(0, nil)
	mockUsers.EXPECT().FindUserByEmail(ctx, "ghost@example.com").Return(models.User{}, store.ErrNoUserWasFound)
	mockAttempts.EXPECT().RecordAttempt(ctx, gomock.Any()).Return(nil)
	mockAudit.EXPECT().RecordEvent(ctx, gomock.Any()).Return(nil)

	_, err := svc.Login(ctx, models.User{Email: "ghost@example.com", Password: "whatever!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials,
		"unknown account must be indistinguishable from wrong password")
}

func TestAuthService_Login_Throttled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, mockAttempts, mockAudit, _ := newTestAuthSvc(t, ctrl)
	ctx := utils.WithClientMeta(context.Background(), utils.ClientMeta{IPAddress: "10.0.0.1"})

	mockAttempts.EXPECT().CountRecentAttempts(ctx, "alice@example.com", "10.0.0.1", gomock.Any()).Return(5, nil)
	mockAudit.EXPECT().RecordEvent(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.AuditEvent) error {
			assert.Equal(t, models.AuditLoginBlocked, e.Action)
			return nil
		})

	_, err := svc.Login(ctx, models.User{Email: "alice@example.com", Password: "sw0rdfish!"})
	assert.ErrorIs(t, err, ErrTooManyLoginAttempts)
}

func TestAuthService_Login_TOTPRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _, mockAttempts, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := storedUser("sw0rdfish!")
	user.TOTPEnabled = true
	user.TOTPSecret = "JBSWY3DPEHPK3PXP"

	mockAttempts.EXPECT().CountRecentAttempts(ctx, "alice@example.com", "", gomock.Any()).Return(0, nil)
	mockUsers.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(user, nil)

	_, err := svc.Login(ctx, models.User{Email: "alice@example.com", Password: "sw0rdfish!"})
	assert.ErrorIs(t, err, ErrTOTPCodeRequired)
}

func TestAuthService_Login_TOTPSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _, mockAttempts, mockAudit, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	secret := "JBSWY3DPEHPK3PXP"
	user := storedUser("sw0rdfish!")
	user.TOTPEnabled = true
	user.TOTPSecret = secret

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	mockAttempts.EXPECT().CountRecentAttempts(ctx, "alice@example.com", "", gomock.Any()).Return(0, nil)
	mockUsers.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(user, nil)
	mockAttempts.EXPECT().ClearAttempts(ctx, "alice@example.com", "").Return(nil)
	mockAudit.EXPECT().RecordEvent(ctx, gomock.Any()).Return(nil)

	got, err := svc.Login(ctx, models.User{Email: "alice@example.com", Password: "sw0rdfish!", TOTPCode: code})
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
}

func TestAuthService_Login_TOTPWrongCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _, mockAttempts, mockAudit, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := storedUser("sw0rdfish!")
	user.TOTPEnabled = true
	user.TOTPSecret = "JBSWY3DPEHPK3PXP"

	mockAttempts.EXPECT().CountRecentAttempts(ctx, "alice@example.com", "", gomock.Any()).Return(0, nil)
	mockUsers.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(user, nil)
	mockAttempts.EXPECT().RecordAttempt(ctx, gomock.Any()).Return(nil)
	mockAudit.EXPECT().RecordEvent(ctx, gomock.Any()).Return(nil)

	_, err := svc.Login(ctx, models.User{Email: "alice@example.com", Password: "sw0rdfish!", TOTPCode: "000000"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: "u-1"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "u-1", parsed.UserID)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.ParseToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
