package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee"  // Regular employee, checks in daily
	RoleTeamLead Role = "team_lead" // Can resolve late requests
	RoleAdmin    Role = "admin"     // Full access
)

type User struct {
	ID                   string
	OfficeID             string
	Email                *string
	PasswordHash         *string
	Role                 Role
	HomeLatitude         *float64
	HomeLongitude        *float64
	AllowedRadiusM       int
	IsActive             bool
	PasswordResetToken   *string
	PasswordResetExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsTeamLead checks if user is a team lead
func (u *User) IsTeamLead() bool {
	return u.Role == RoleTeamLead
}

// IsAdmin checks if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasHomeLocation checks if a home coordinate pair has been registered
func (u *User) HasHomeLocation() bool {
	return u.HomeLatitude != nil && u.HomeLongitude != nil
}

// CanResolveLateRequests checks if the role may approve or reject late
// requests. Admins are included only when the authorization policy allows it.
func CanResolveLateRequests(role Role, adminAllowed bool) bool {
	if role == RoleTeamLead {
		return true
	}
	return adminAllowed && role == RoleAdmin
}
