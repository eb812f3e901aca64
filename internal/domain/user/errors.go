package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrOfficeIDExists         = errors.New("office ID already registered")
	ErrUserInactive           = errors.New("user account is inactive")
	ErrInvalidOfficeIDFormat  = errors.New("invalid office ID format")
	ErrInvalidPasswordLength  = errors.New("password must be at least 8 characters")
	ErrTeamLeadAccessRequired = errors.New("team lead access required")
)
