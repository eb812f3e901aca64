package attendance

import (
	"github.com/hadirly/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

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

type CheckInResponse struct {
	Status            string   `json:"status"`
	Message           string   `json:"message"`
	DistanceFromHome  *float64 `json:"distance_from_home"`
	CheckInEnabled    bool     `json:"check_in_enabled"`
	CanRequestPresent bool     `json:"can_request_present"`
}

type LateRequestRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Reason    string  `json:"reason"`
}

func (r *LateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

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

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LateRequestResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

type ResolveRequest struct {
	AttendanceID string  `json:"-"`
	Approve      bool    `json:"approve"`
	Comment      *string `json:"comment,omitempty"`
}

func (r *ResolveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResolveResponse struct {
	Message      string `json:"message"`
	AttendanceID string `json:"attendance_id"`
	Status       string `json:"status"`
}

type HistoryFilter struct {
	Limit int `json:"limit"`
}

// AttendanceRecord is the read projection of one attendance row.
type AttendanceRecord struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	OfficeID          *string  `json:"office_id,omitempty"`
	Status            string   `json:"status"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	DistanceFromHome  *float64 `json:"distance_from_home"`
	IsLateRequest     bool     `json:"is_late_request"`
	LateRequestReason *string  `json:"late_request_reason"`
	ApprovedBy        *string  `json:"approved_by"`
	ApprovedAt        *string  `json:"approved_at"`
	CreatedAt         string   `json:"created_at"`
}
