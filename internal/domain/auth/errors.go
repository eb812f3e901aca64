package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid office ID or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)
