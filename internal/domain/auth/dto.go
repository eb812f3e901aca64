package auth

import (
	"github.com/hadirly/attendance-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	OfficeID  string  `json:"office_id"`
	Password  string  `json:"password"`
	Email     *string `json:"email,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OfficeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "office_id",
			Message: "office_id is required",
		})
	} else if !validator.IsValidOfficeID(r.OfficeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "office_id",
			Message: "office_id must be 3-50 characters of letters, digits, '.', '_' or '-'",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	OfficeID string `json:"office_id"`
}

type LoginRequest struct {
	OfficeID string `json:"office_id"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OfficeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "office_id",
			Message: "office_id is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"-"`
	RefreshTokenExpiresIn int64  `json:"-"`
	UserID                string `json:"user_id"`
	OfficeID              string `json:"office_id"`
	Role                  string `json:"role"`
}

type ForgotPasswordRequest struct {
	OfficeID string  `json:"office_id"`
	Email    *string `json:"email,omitempty"`
}

func (r *ForgotPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OfficeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "office_id",
			Message: "office_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ForgotPasswordResponse struct {
	Message string `json:"message"`
	// ResetToken is returned directly because no mail transport is wired up.
	ResetToken *string `json:"reset_token,omitempty"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	}

	if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProfileResponse struct {
	UserID         string   `json:"user_id"`
	OfficeID       string   `json:"office_id"`
	Email          *string  `json:"email,omitempty"`
	Role           string   `json:"role"`
	HomeLatitude   *float64 `json:"home_latitude"`
	HomeLongitude  *float64 `json:"home_longitude"`
	AllowedRadiusM int      `json:"allowed_radius_m"`
}
