package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/pkg/clock"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
	"github.com/hadirly/attendance-backend-go/internal/pkg/geo"
	"github.com/hadirly/attendance-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db database.TxBeginner
	attendance.AttendanceRepository
	user.UserRepository
	policy attendance.Policy
	clock  clock.Clock
}

func NewAttendanceService(
	db database.TxBeginner,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	policy attendance.Policy,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		policy:               policy,
		clock:                clk,
	}
}

func claimsFromContext(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)
	return userID, user.Role(roleStr), nil
}

// dayBounds returns the [start, end) interval of the calendar day holding t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}
	if !userData.IsActive {
		return attendance.CheckInResponse{}, user.ErrUserInactive
	}

	now := a.clock.Now()
	dayStart, dayEnd := dayBounds(now)

	var resp attendance.CheckInResponse

	// The already-checked-in lookup and the insert run in one transaction so
	// a concurrent check-in from the same user cannot slip between them.
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		existing, err := a.AttendanceRepository.GetPresentBetween(txCtx, userID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if existing != nil {
			resp = attendance.CheckInResponse{
				Status:           string(attendance.StatusPresent),
				Message:          "You have already checked in today",
				DistanceFromHome: existing.DistanceFromHome,
			}
			return nil
		}

		var distance *float64
		if userData.HasHomeLocation() {
			d, err := geo.Distance(req.Latitude, req.Longitude, *userData.HomeLatitude, *userData.HomeLongitude)
			if err != nil {
				return fmt.Errorf("failed to compute distance from home: %w", err)
			}
			distance = &d
		}

		switch a.policy.ClassifyTime(now) {
		case attendance.TimeBeforeWindow:
			// The only path that persists nothing.
			resp = attendance.CheckInResponse{
				Status:  string(attendance.TimeBeforeWindow),
				Message: fmt.Sprintf("Check-in opens at %s", a.policy.WindowStart),
			}
			return nil

		case attendance.TimeOnTime:
			if distance == nil {
				if !a.policy.MissingHomeMarksAbsent {
					return attendance.ErrHomeLocationNotSet
				}
				resp = attendance.CheckInResponse{
					Status:  string(attendance.StatusAbsent),
					Message: "No home location registered, you are marked absent",
				}
				return a.persistAttempt(txCtx, userID, attendance.StatusAbsent, req.Latitude, req.Longitude, distance)
			}

			if *distance <= float64(userData.AllowedRadiusM) {
				resp = attendance.CheckInResponse{
					Status:           string(attendance.StatusPresent),
					Message:          "Checked in successfully, you are marked present",
					DistanceFromHome: distance,
					CheckInEnabled:   true,
				}
				return a.persistAttempt(txCtx, userID, attendance.StatusPresent, req.Latitude, req.Longitude, distance)
			}

			resp = attendance.CheckInResponse{
				Status:           string(attendance.StatusAbsent),
				Message:          fmt.Sprintf("You are %.0f m from your home location, outside the allowed %d m radius", *distance, userData.AllowedRadiusM),
				DistanceFromHome: distance,
			}
			return a.persistAttempt(txCtx, userID, attendance.StatusAbsent, req.Latitude, req.Longitude, distance)

		default: // LATE
			resp = attendance.CheckInResponse{
				Status:            string(attendance.StatusAbsent),
				Message:           "The check-in window has closed, you are marked absent. You can submit a late request.",
				DistanceFromHome:  distance,
				CanRequestPresent: true,
			}
			return a.persistAttempt(txCtx, userID, attendance.StatusAbsent, req.Latitude, req.Longitude, distance)
		}
	})

	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	return resp, nil
}

func (a *AttendanceServiceImpl) persistAttempt(ctx context.Context, userID string, status attendance.Status, lat, lng float64, distance *float64) error {
	_, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:           userID,
		Status:           status,
		Latitude:         &lat,
		Longitude:        &lng,
		DistanceFromHome: distance,
	})
	if err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return nil
}

// SubmitLateRequest implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SubmitLateRequest(ctx context.Context, req attendance.LateRequestRequest) (attendance.LateRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LateRequestResponse{}, err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.LateRequestResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return attendance.LateRequestResponse{}, err
	}
	if !userData.IsActive {
		return attendance.LateRequestResponse{}, user.ErrUserInactive
	}

	now := a.clock.Now()
	if a.policy.ClassifyTime(now) != attendance.TimeLate {
		return attendance.LateRequestResponse{}, attendance.ErrOutsideLateWindow
	}

	dayStart, dayEnd := dayBounds(now)

	var created attendance.Attendance
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		exists, err := a.AttendanceRepository.HasPendingLateRequestBetween(txCtx, userID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if exists {
			return attendance.ErrDuplicateLateRequest
		}

		var distance *float64
		if userData.HasHomeLocation() {
			d, err := geo.Distance(req.Latitude, req.Longitude, *userData.HomeLatitude, *userData.HomeLongitude)
			if err != nil {
				return fmt.Errorf("failed to compute distance from home: %w", err)
			}
			distance = &d
		}

		reason := req.Reason
		created, err = a.AttendanceRepository.Create(txCtx, attendance.Attendance{
			UserID:            userID,
			Status:            attendance.StatusPending,
			Latitude:          &req.Latitude,
			Longitude:         &req.Longitude,
			DistanceFromHome:  distance,
			IsLateRequest:     true,
			LateRequestReason: &reason,
		})
		if err != nil {
			return fmt.Errorf("failed to create late request record: %w", err)
		}
		return nil
	})

	if err != nil {
		return attendance.LateRequestResponse{}, err
	}

	return attendance.LateRequestResponse{
		Message:   "Late request submitted, waiting for team lead approval",
		RequestID: created.ID,
		Status:    string(attendance.StatusPending),
	}, nil
}

// ResolveLateRequest implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ResolveLateRequest(ctx context.Context, req attendance.ResolveRequest) (attendance.ResolveResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ResolveResponse{}, err
	}

	approverID, role, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ResolveResponse{}, err
	}

	if !user.CanResolveLateRequests(role, a.policy.AdminCanResolve) {
		return attendance.ResolveResponse{}, attendance.ErrApproverRoleRequired
	}

	pending, err := a.AttendanceRepository.GetPendingLateRequest(ctx, req.AttendanceID)
	if err != nil {
		return attendance.ResolveResponse{}, err
	}

	finalStatus := attendance.StatusAbsent
	message := "Late request rejected"
	if req.Approve {
		finalStatus = attendance.StatusPresent
		message = "Late request approved"
	}

	// A rejection comment is appended to the original reason, never replacing it.
	var reason *string
	if !req.Approve && req.Comment != nil && *req.Comment != "" {
		appended := *req.Comment
		if pending.LateRequestReason != nil {
			appended = *pending.LateRequestReason + "\nRejected: " + *req.Comment
		}
		reason = &appended
	}

	resolved, err := a.AttendanceRepository.Resolve(ctx, req.AttendanceID, finalStatus, approverID, a.clock.Now(), reason)
	if err != nil {
		return attendance.ResolveResponse{}, err
	}
	if !resolved {
		// Another approver flipped the status first.
		return attendance.ResolveResponse{}, attendance.ErrRequestNotFound
	}

	return attendance.ResolveResponse{
		Message:      message,
		AttendanceID: req.AttendanceID,
		Status:       string(finalStatus),
	}, nil
}

// GetMyHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyHistory(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.AttendanceRecord, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 30
	}

	records, err := a.AttendanceRepository.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceRecord, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToRecord(att))
	}

	return responses, nil
}

// ListPendingRequests implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListPendingRequests(ctx context.Context) ([]attendance.AttendanceRecord, error) {
	records, err := a.AttendanceRepository.ListPendingLateRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending late requests: %w", err)
	}

	responses := make([]attendance.AttendanceRecord, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToRecord(att))
	}

	return responses, nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// mapAttendanceToRecord converts an Attendance entity to its read projection
func mapAttendanceToRecord(att attendance.Attendance) attendance.AttendanceRecord {
	return attendance.AttendanceRecord{
		ID:                att.ID,
		UserID:            att.UserID,
		OfficeID:          att.OfficeID,
		Status:            string(att.Status),
		Latitude:          att.Latitude,
		Longitude:         att.Longitude,
		DistanceFromHome:  att.DistanceFromHome,
		IsLateRequest:     att.IsLateRequest,
		LateRequestReason: att.LateRequestReason,
		ApprovedBy:        att.ApprovedBy,
		ApprovedAt:        timePtrToString(att.ApprovedAt),
		CreatedAt:         att.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
