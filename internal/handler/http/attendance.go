package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	"github.com/workforce-hub/attendance-backend/internal/handler/http/middleware"
	"github.com/workforce-hub/attendance-backend/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	TodayPunchIn(w http.ResponseWriter, r *http.Request)
	TodayPunchOut(w http.ResponseWriter, r *http.Request)
	Daily(w http.ResponseWriter, r *http.Request)
	UserReport(w http.ResponseWriter, r *http.Request)
	ExportUserReport(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func decodePunch(r *http.Request) (attendance.PunchRequest, error) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, err
	}
	req.UserID = middleware.UserIDFromContext(r.Context())
	return req, nil
}

// PunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	req, err := decodePunch(r)
	if err != nil {
		slog.Error("PunchIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.PunchIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, result.Record)
}

// PunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	req, err := decodePunch(r)
	if err != nil {
		slog.Error("PunchOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.PunchOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, result.Record)
}

// TodayPunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) TodayPunchIn(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.TodayPunchInStatus(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, status.Message, status)
}

// TodayPunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) TodayPunchOut(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.TodayPunchOutStatus(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, status.Message, status)
}

// Daily implements AttendanceHandler.
func (h *attendanceHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	req := attendance.DailyAttendanceRequest{Date: r.URL.Query().Get("date")}

	result, err := h.attendanceService.DailyAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance fetched successfully", result)
}

func userReportRequest(r *http.Request) attendance.UserReportRequest {
	q := r.URL.Query()
	return attendance.UserReportRequest{
		UserID:    chi.URLParam(r, "id"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
}

// UserReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) UserReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.UserReport(r.Context(), userReportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User attendance report generated successfully", result)
}

// ExportUserReport implements AttendanceHandler. The report is built before any byte is
// written so failures still produce a JSON error.
func (h *attendanceHandlerImpl) ExportUserReport(w http.ResponseWriter, r *http.Request) {
	req := userReportRequest(r)

	var buf bytes.Buffer
	if err := h.attendanceService.ExportUserReport(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.xlsx", req.UserID, req.StartDate, req.EndDate)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("Failed to write attendance export", "error", err, "user_id", req.UserID)
	}
}

// ListPending implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListPendingRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Pending requests fetched successfully", result)
}

func decodeReview(r *http.Request) (attendance.ReviewRequest, error) {
	var req attendance.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, err
	}
	req.ReviewerID = middleware.UserIDFromContext(r.Context())
	return req, nil
}

// Accept implements AttendanceHandler.
func (h *attendanceHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReview(r)
	if err != nil {
		slog.Error("Accept decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.AcceptRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Request accepted", result)
}

// Reject implements AttendanceHandler.
func (h *attendanceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReview(r)
	if err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RejectRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Request rejected", result)
}
