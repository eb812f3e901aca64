package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances (
			id, user_id, status, latitude, longitude, distance_from_home,
			is_late_request, late_request_reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at
	`

	newAttendance.ID = id.String()
	err = q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.UserID,
		newAttendance.Status,
		newAttendance.Latitude,
		newAttendance.Longitude,
		newAttendance.DistanceFromHome,
		newAttendance.IsLateRequest,
		newAttendance.LateRequestReason,
	).Scan(&newAttendance.CreatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetPresentBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetPresentBetween(ctx context.Context, userID string, from, to time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, status, latitude, longitude, distance_from_home,
			   is_late_request, late_request_reason, approved_by, approved_at,
			   created_at
		FROM attendances
		WHERE user_id = $1
		  AND status = $2
		  AND created_at >= $3
		  AND created_at < $4
		ORDER BY created_at DESC
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, userID, attendance.StatusPresent, from, to).Scan(
		&att.ID, &att.UserID, &att.Status, &att.Latitude, &att.Longitude, &att.DistanceFromHome,
		&att.IsLateRequest, &att.LateRequestReason, &att.ApprovedBy, &att.ApprovedAt,
		&att.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No PRESENT record in the interval
		}
		return nil, fmt.Errorf("failed to get present record: %w", err)
	}

	return &att, nil
}

// HasPendingLateRequestBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) HasPendingLateRequestBetween(ctx context.Context, userID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendances
			WHERE user_id = $1
			  AND is_late_request = TRUE
			  AND status = $2
			  AND created_at >= $3
			  AND created_at < $4
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, userID, attendance.StatusPending, from, to).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pending late request: %w", err)
	}

	return exists, nil
}

// GetPendingLateRequest implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetPendingLateRequest(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, status, latitude, longitude, distance_from_home,
			   is_late_request, late_request_reason, approved_by, approved_at,
			   created_at
		FROM attendances
		WHERE id = $1
		  AND is_late_request = TRUE
		  AND status = $2
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id, attendance.StatusPending).Scan(
		&att.ID, &att.UserID, &att.Status, &att.Latitude, &att.Longitude, &att.DistanceFromHome,
		&att.IsLateRequest, &att.LateRequestReason, &att.ApprovedBy, &att.ApprovedAt,
		&att.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrRequestNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get pending late request: %w", err)
	}

	return att, nil
}

// Resolve implements attendance.AttendanceRepository. The PENDING filter in
// the WHERE clause serializes concurrent resolutions: the first writer wins
// and later attempts see zero affected rows.
func (a *attendanceRepository) Resolve(ctx context.Context, id string, status attendance.Status, approverID string, resolvedAt time.Time, reason *string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $2,
		    approved_by = $3,
		    approved_at = $4,
		    late_request_reason = COALESCE($5, late_request_reason)
		WHERE id = $1
		  AND is_late_request = TRUE
		  AND status = $6
	`

	tag, err := q.Exec(ctx, query, id, status, approverID, resolvedAt, reason, attendance.StatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to resolve late request: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, status, latitude, longitude, distance_from_home,
			   is_late_request, late_request_reason, approved_by, approved_at,
			   created_at
		FROM attendances
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by user: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.UserID, &att.Status, &att.Latitude, &att.Longitude, &att.DistanceFromHome,
			&att.IsLateRequest, &att.LateRequestReason, &att.ApprovedBy, &att.ApprovedAt,
			&att.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return records, nil
}

// ListPendingLateRequests implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListPendingLateRequests(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.user_id, a.status, a.latitude, a.longitude, a.distance_from_home,
			   a.is_late_request, a.late_request_reason, a.approved_by, a.approved_at,
			   a.created_at,
			   u.office_id
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.is_late_request = TRUE
		  AND a.status = $1
		ORDER BY a.created_at DESC
	`

	rows, err := q.Query(ctx, query, attendance.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending late requests: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.UserID, &att.Status, &att.Latitude, &att.Longitude, &att.DistanceFromHome,
			&att.IsLateRequest, &att.LateRequestReason, &att.ApprovedBy, &att.ApprovedAt,
			&att.CreatedAt,
			&att.OfficeID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan late request row: %w", err)
		}
		records = append(records, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate late request rows: %w", err)
	}

	return records, nil
}
