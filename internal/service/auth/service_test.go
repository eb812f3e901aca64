package auth

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirly/attendance-backend-go/internal/domain/auth"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/pkg/clock"
	"github.com/hadirly/attendance-backend-go/internal/pkg/jwt"
	"github.com/hadirly/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	seq   int
	users map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.seq++
	u.ID = "user-" + strconv.Itoa(f.seq)
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByOfficeID(ctx context.Context, officeID string) (user.User, error) {
	for _, u := range f.users {
		if u.OfficeID == officeID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByResetToken(ctx context.Context, token string, now time.Time) (user.User, error) {
	for _, u := range f.users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == token &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(now) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) SetResetToken(ctx context.Context, userID string, token string, expires time.Time) error {
	u, ok := f.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordResetToken = &token
	u.PasswordResetExpires = &expires
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = &passwordHash
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
	f.users[userID] = u
	return nil
}

func newTestService(t *testing.T) (auth.AuthService, *fakeUserRepo, jwt.Service) {
	t.Helper()
	repo := newFakeUserRepo()
	jwtService := jwt.NewJWTService("test-secret-key", "1h", "168h")
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewAuthService(repo, jwtService, clock.Fixed(now), 50, 24*time.Hour)
	return svc, repo, jwtService
}

func registerTestUser(t *testing.T, svc auth.AuthService) auth.RegisterResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		OfficeID:  "EMP-0001",
		Password:  "secret-password",
		Latitude:  -6.2,
		Longitude: 106.8,
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	svc, repo, _ := newTestService(t)

	resp := registerTestUser(t, svc)
	assert.Equal(t, "EMP-0001", resp.OfficeID)
	assert.NotEmpty(t, resp.UserID)

	created := repo.users[resp.UserID]
	assert.Equal(t, user.RoleEmployee, created.Role)
	assert.True(t, created.IsActive)
	assert.Equal(t, 50, created.AllowedRadiusM)
	require.NotNil(t, created.HomeLatitude)
	assert.InDelta(t, -6.2, *created.HomeLatitude, 0.0001)
	require.NotNil(t, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("secret-password")))
}

func TestRegister_DuplicateOfficeID(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		OfficeID:  "EMP-0001",
		Password:  "another-password",
		Latitude:  0,
		Longitude: 0,
	})
	assert.ErrorIs(t, err, user.ErrOfficeIDExists)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		OfficeID:  "x",
		Password:  "short",
		Latitude:  120,
		Longitude: 0,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "office_id")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "latitude")
}

func TestLogin(t *testing.T) {
	svc, _, jwtService := newTestService(t)
	reg := registerTestUser(t, svc)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		OfficeID: "EMP-0001",
		Password: "secret-password",
	})
	require.NoError(t, err)

	assert.Equal(t, reg.UserID, resp.UserID)
	assert.Equal(t, "employee", resp.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	tokenType, _ := token.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerTestUser(t, svc)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		OfficeID: "EMP-0001",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownOfficeID(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		OfficeID: "NOPE-0001",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, repo, _ := newTestService(t)
	reg := registerTestUser(t, svc)

	u := repo.users[reg.UserID]
	u.IsActive = false
	repo.users[reg.UserID] = u

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		OfficeID: "EMP-0001",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestRefreshToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	reg := registerTestUser(t, svc)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		OfficeID: "EMP-0001",
		Password: "secret-password",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, refreshed.UserID)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Empty(t, refreshed.RefreshToken, "refresh rotation is not part of the exchange")
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerTestUser(t, svc)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		OfficeID: "EMP-0001",
		Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerTestUser(t, svc)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		OfficeID: "EMP-0001",
		Password: "secret-password",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestForgotPassword_UnknownOfficeIDNotRevealed(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{OfficeID: "NOPE-0001"})
	require.NoError(t, err)
	assert.Nil(t, resp.ResetToken)
	assert.NotEmpty(t, resp.Message)
}

func TestForgotPasswordThenReset(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerTestUser(t, svc)

	forgot, err := svc.ForgotPassword(context.Background(), auth.ForgotPasswordRequest{OfficeID: "EMP-0001"})
	require.NoError(t, err)
	require.NotNil(t, forgot.ResetToken)

	err = svc.ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Token:       *forgot.ResetToken,
		NewPassword: "brand-new-password",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		OfficeID: "EMP-0001",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "old password must stop working")

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		OfficeID: "EMP-0001",
		Password: "brand-new-password",
	})
	assert.NoError(t, err)

	err = svc.ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Token:       *forgot.ResetToken,
		NewPassword: "yet-another-password",
	})
	assert.ErrorIs(t, err, auth.ErrResetTokenInvalid, "a used token must not be reusable")
}

func TestResetPassword_UnknownToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.ResetPassword(context.Background(), auth.ResetPasswordRequest{
		Token:       "bogus-token",
		NewPassword: "brand-new-password",
	})
	assert.ErrorIs(t, err, auth.ErrResetTokenInvalid)
}

func TestProfile(t *testing.T) {
	svc, _, jwtService := newTestService(t)
	reg := registerTestUser(t, svc)

	accessToken, _, err := jwtService.GenerateAccessToken(reg.UserID, reg.OfficeID, user.RoleEmployee)
	require.NoError(t, err)
	token, err := jwtService.JWTAuth().Decode(accessToken)
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	profile, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, profile.UserID)
	assert.Equal(t, "EMP-0001", profile.OfficeID)
	assert.Equal(t, "employee", profile.Role)
	assert.Equal(t, 50, profile.AllowedRadiusM)
	require.NotNil(t, profile.HomeLatitude)
	assert.InDelta(t, -6.2, *profile.HomeLatitude, 0.0001)
}
