package attendance

import "context"

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn classifies the current time and reported location into an
	// attendance status for the authenticated user
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// SubmitLateRequest files a PENDING exception request after the window
	SubmitLateRequest(ctx context.Context, req LateRequestRequest) (LateRequestResponse, error)

	// ResolveLateRequest approves or rejects a PENDING late request
	ResolveLateRequest(ctx context.Context, req ResolveRequest) (ResolveResponse, error)

	// GetMyHistory retrieves the authenticated user's attendance history
	GetMyHistory(ctx context.Context, filter HistoryFilter) ([]AttendanceRecord, error)

	// ListPendingRequests retrieves all outstanding late requests
	ListPendingRequests(ctx context.Context) ([]AttendanceRecord, error)
}
