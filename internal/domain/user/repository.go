package user

import (
	"context"
	"time"
)

// UserRepository defines data access methods for the user directory.
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user User) (User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByOfficeID retrieves a user by office ID
	GetByOfficeID(ctx context.Context, officeID string) (User, error)

	// GetByResetToken retrieves a user whose reset token matches and has not expired
	GetByResetToken(ctx context.Context, token string, now time.Time) (User, error)

	// SetResetToken stores a password reset token with its expiry
	SetResetToken(ctx context.Context, userID string, token string, expires time.Time) error

	// UpdatePasswordHash replaces the password hash and clears any reset token
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error
}
