package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrHomeLocationNotSet = errors.New("no home location registered for this account")

	// Late request errors
	ErrOutsideLateWindow    = errors.New("late requests are only accepted after the check-in window")
	ErrDuplicateLateRequest = errors.New("a pending late request already exists for today")

	// Approval errors
	ErrApproverRoleRequired = errors.New("only team leads can resolve late requests")
	ErrRequestNotFound      = errors.New("late request not found or already resolved")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
