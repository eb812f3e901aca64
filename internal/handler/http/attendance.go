package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirly/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	SubmitLateRequest(w http.ResponseWriter, r *http.Request)
	GetMyHistory(w http.ResponseWriter, r *http.Request)
	ListPendingRequests(w http.ResponseWriter, r *http.Request)
	ResolveLateRequest(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var checkInReq attendance.CheckInRequest

	if err := json.NewDecoder(r.Body).Decode(&checkInReq); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	checkInResp, err := a.attendanceService.CheckIn(r.Context(), checkInReq)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Check-in processed", "status", checkInResp.Status)
	response.SuccessWithMessage(w, checkInResp.Message, checkInResp)
}

// SubmitLateRequest implements AttendanceHandler.
func (a *AttendanceHandlerImpl) SubmitLateRequest(w http.ResponseWriter, r *http.Request) {
	var lateReq attendance.LateRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&lateReq); err != nil {
		slog.Error("SubmitLateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	lateResp, err := a.attendanceService.SubmitLateRequest(r.Context(), lateReq)
	if err != nil {
		slog.Error("SubmitLateRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Late request submitted", "request_id", lateResp.RequestID)
	response.Created(w, lateResp.Message, lateResp)
}

// GetMyHistory implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMyHistory(w http.ResponseWriter, r *http.Request) {
	var filter attendance.HistoryFilter
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			response.BadRequest(w, "limit must be a positive integer", nil)
			return
		}
		filter.Limit = limit
	}

	records, err := a.attendanceService.GetMyHistory(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyHistory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListPendingRequests implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	records, err := a.attendanceService.ListPendingRequests(r.Context())
	if err != nil {
		slog.Error("ListPendingRequests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ResolveLateRequest implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ResolveLateRequest(w http.ResponseWriter, r *http.Request) {
	var resolveReq attendance.ResolveRequest

	if err := json.NewDecoder(r.Body).Decode(&resolveReq); err != nil {
		slog.Error("ResolveLateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	resolveReq.AttendanceID = chi.URLParam(r, "id")

	resolveResp, err := a.attendanceService.ResolveLateRequest(r.Context(), resolveReq)
	if err != nil {
		slog.Error("ResolveLateRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Late request resolved", "attendance_id", resolveResp.AttendanceID, "status", resolveResp.Status)
	response.SuccessWithMessage(w, resolveResp.Message, resolveResp)
}
