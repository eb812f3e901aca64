package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	id, office_id, email, password_hash, role,
	home_latitude, home_longitude, allowed_radius_m, is_active,
	password_reset_token, password_reset_expires,
	created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.OfficeID, &u.Email, &u.PasswordHash, &u.Role,
		&u.HomeLatitude, &u.HomeLongitude, &u.AllowedRadiusM, &u.IsActive,
		&u.PasswordResetToken, &u.PasswordResetExpires,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	query := `
		INSERT INTO users (
			id, office_id, email, password_hash, role,
			home_latitude, home_longitude, allowed_radius_m, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	newUser.ID = id.String()
	err = q.QueryRow(ctx, query,
		newUser.ID,
		newUser.OfficeID,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.HomeLatitude,
		newUser.HomeLongitude,
		newUser.AllowedRadiusM,
		newUser.IsActive,
	).Scan(&newUser.CreatedAt, &newUser.UpdatedAt)

	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return u, nil
}

// GetByOfficeID implements user.UserRepository.
func (r *userRepository) GetByOfficeID(ctx context.Context, officeID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + userColumns + ` FROM users WHERE office_id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, officeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by office ID: %w", err)
	}

	return u, nil
}

// GetByResetToken implements user.UserRepository.
func (r *userRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + userColumns + `
		FROM users
		WHERE password_reset_token = $1
		  AND password_reset_expires > $2`

	u, err := scanUser(q.QueryRow(ctx, query, token, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by reset token: %w", err)
	}

	return u, nil
}

// SetResetToken implements user.UserRepository.
func (r *userRepository) SetResetToken(ctx context.Context, userID string, token string, expires time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password_reset_token = $2,
		    password_reset_expires = $3,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, userID, token, expires)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdatePasswordHash implements user.UserRepository.
func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password_hash = $2,
		    password_reset_token = NULL,
		    password_reset_expires = NULL,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
