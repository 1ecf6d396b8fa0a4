package attendance

import (
	"context"
	"io"

	"github.com/workforce-hub/attendance-backend/internal/pkg/sse"
)

// AttendanceService defines business logic for punches, reports and reviews
type AttendanceService interface {
	// PunchIn records the first punch of the day for req.UserID
	PunchIn(ctx context.Context, req PunchRequest) (PunchInResult, error)

	// PunchOut closes the day opened by PunchIn
	PunchOut(ctx context.Context, req PunchRequest) (PunchOutResult, error)

	TodayPunchInStatus(ctx context.Context, userID string) (PunchInStatusResponse, error)
	TodayPunchOutStatus(ctx context.Context, userID string) (PunchOutStatusResponse, error)

	// DailyAttendance lists every active user with role "user" for one day (admin)
	DailyAttendance(ctx context.Context, req DailyAttendanceRequest) (DailyAttendanceResponse, error)

	// UserReport builds the per-day history of one user over an inclusive date range (admin)
	UserReport(ctx context.Context, req UserReportRequest) (UserReportResponse, error)

	// ExportUserReport writes UserReport as an xlsx workbook
	ExportUserReport(ctx context.Context, req UserReportRequest, w io.Writer) error

	ListPendingRequests(ctx context.Context) (PendingRequestsResponse, error)
	AcceptRequest(ctx context.Context, req ReviewRequest) (ReviewResponse, error)
	RejectRequest(ctx context.Context, req ReviewRequest) (ReviewResponse, error)
	PendingCounts(ctx context.Context) (PendingCounts, error)
}

// EventPublisher pushes real-time events to connected users. *sse.Hub satisfies it.
type EventPublisher interface {
	Publish(userID string, event sse.Event)
	PublishToMany(userIDs []string, event sse.Event)
}

// Event names pushed over SSE
const (
	EventRequestCreated  = "attendance.request_created"
	EventRequestReviewed = "attendance.request_reviewed"
	EventPendingDigest   = "attendance.pending_digest"
)
