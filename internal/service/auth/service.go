package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hadirly/attendance-backend-go/internal/domain/auth"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/pkg/clock"
	"github.com/hadirly/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwtService     jwt.Service
	clock          clock.Clock
	defaultRadiusM int
	resetTTL       time.Duration
}

func NewAuthService(
	userRepo user.UserRepository,
	jwtService jwt.Service,
	clk clock.Clock,
	defaultRadiusM int,
	resetTTL time.Duration,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepo,
		jwtService:     jwtService,
		clock:          clk,
		defaultRadiusM: defaultRadiusM,
		resetTTL:       resetTTL,
	}
}

// Register implements auth.AuthService. Every self-registered account starts
// as an active employee with its home location pinned at signup.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	_, err := a.UserRepository.GetByOfficeID(ctx, req.OfficeID)
	if err == nil {
		return auth.RegisterResponse{}, user.ErrOfficeIDExists
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return auth.RegisterResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	hashStr := string(hash)
	created, err := a.UserRepository.Create(ctx, user.User{
		OfficeID:       req.OfficeID,
		Email:          req.Email,
		PasswordHash:   &hashStr,
		Role:           user.RoleEmployee,
		HomeLatitude:   &req.Latitude,
		HomeLongitude:  &req.Longitude,
		AllowedRadiusM: a.defaultRadiusM,
		IsActive:       true,
	})
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	return auth.RegisterResponse{
		UserID:   created.ID,
		OfficeID: created.OfficeID,
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByOfficeID(ctx, req.OfficeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if userData.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)) != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	return a.issueTokens(userData)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := a.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	accessToken, accessExp, err := a.jwtService.GenerateAccessToken(userData.ID, userData.OfficeID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: accessExp,
		UserID:               userData.ID,
		OfficeID:             userData.OfficeID,
		Role:                 string(userData.Role),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := a.jwtService.ValidateRefreshToken(refreshToken); err != nil {
		return auth.ErrInvalidToken
	}
	a.jwtService.RevokeToken(refreshToken)
	return nil
}

// ForgotPassword implements auth.AuthService. The response message never
// reveals whether the office ID exists.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) (auth.ForgotPasswordResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.ForgotPasswordResponse{}, err
	}

	message := "If the office ID exists, a password reset token has been issued"

	userData, err := a.UserRepository.GetByOfficeID(ctx, req.OfficeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ForgotPasswordResponse{Message: message}, nil
		}
		return auth.ForgotPasswordResponse{}, err
	}

	token := uuid.NewString()
	expires := a.clock.Now().Add(a.resetTTL)
	if err := a.UserRepository.SetResetToken(ctx, userData.ID, token, expires); err != nil {
		return auth.ForgotPasswordResponse{}, fmt.Errorf("failed to store reset token: %w", err)
	}

	return auth.ForgotPasswordResponse{
		Message:    message,
		ResetToken: &token,
	}, nil
}

// ResetPassword implements auth.AuthService.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByResetToken(ctx, req.Token, a.clock.Now())
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrResetTokenInvalid
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return a.UserRepository.UpdatePasswordHash(ctx, userData.ID, string(hash))
}

// Profile implements auth.AuthService.
func (a *AuthServiceImpl) Profile(ctx context.Context) (auth.ProfileResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.ProfileResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.ProfileResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.ProfileResponse{}, err
	}

	return auth.ProfileResponse{
		UserID:         userData.ID,
		OfficeID:       userData.OfficeID,
		Email:          userData.Email,
		Role:           string(userData.Role),
		HomeLatitude:   userData.HomeLatitude,
		HomeLongitude:  userData.HomeLongitude,
		AllowedRadiusM: userData.AllowedRadiusM,
	}, nil
}

func (a *AuthServiceImpl) issueTokens(userData user.User) (auth.TokenResponse, error) {
	accessToken, accessExp, err := a.jwtService.GenerateAccessToken(userData.ID, userData.OfficeID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := a.jwtService.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp,
		UserID:                userData.ID,
		OfficeID:              userData.OfficeID,
		Role:                  string(userData.Role),
	}, nil
}
