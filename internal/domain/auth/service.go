package auth

import "context"

// AuthService defines authentication and account operations
type AuthService interface {
	// Register creates a new employee account with its home location
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)

	// Login verifies credentials and issues an access/refresh token pair
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// RefreshToken exchanges a valid refresh token for a new access token
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the given refresh token
	Logout(ctx context.Context, refreshToken string) error

	// ForgotPassword issues a password reset token for the office ID
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (ForgotPasswordResponse, error)

	// ResetPassword sets a new password using a previously issued reset token
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// Profile returns the authenticated user's directory entry
	Profile(ctx context.Context) (ProfileResponse, error)
}
