package attendance

import "time"

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusPending Status = "PENDING"
)

// Attendance is one row per check-in attempt, not one per day. Plain ABSENT
// markers and PENDING late requests may pile up for the same day; only a
// PRESENT row blocks further check-ins.
type Attendance struct {
	ID                string
	UserID            string
	Status            Status
	Latitude          *float64
	Longitude         *float64
	DistanceFromHome  *float64
	IsLateRequest     bool
	LateRequestReason *string
	ApprovedBy        *string
	ApprovedAt        *time.Time
	CreatedAt         time.Time

	// DTO / Join
	OfficeID *string
}
