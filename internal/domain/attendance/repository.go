package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetPresentBetween retrieves a PRESENT record for the user created inside
	// [from, to). Used for the idempotent already-checked-in short-circuit.
	GetPresentBetween(ctx context.Context, userID string, from, to time.Time) (*Attendance, error)

	// HasPendingLateRequestBetween reports whether the user already has a
	// PENDING late request created inside [from, to)
	HasPendingLateRequestBetween(ctx context.Context, userID string, from, to time.Time) (bool, error)

	// GetPendingLateRequest retrieves a record by ID only while it is still a
	// PENDING late request
	GetPendingLateRequest(ctx context.Context, id string) (Attendance, error)

	// Resolve transitions a PENDING late request to its terminal status,
	// stamping the approver and resolution time. The update is guarded by the
	// PENDING filter; it returns false when another writer got there first.
	Resolve(ctx context.Context, id string, status Status, approverID string, resolvedAt time.Time, reason *string) (bool, error)

	// ListByUser retrieves the user's records, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]Attendance, error)

	// ListPendingLateRequests retrieves all outstanding late requests, newest first
	ListPendingLateRequests(ctx context.Context) ([]Attendance, error)
}
