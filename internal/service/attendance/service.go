package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	"github.com/workforce-hub/attendance-backend/internal/domain/user"
	"github.com/workforce-hub/attendance-backend/internal/pkg/sse"
)

// Clock returns the current time. Tests replace it to pin the calendar day.
type Clock func() time.Time

type AttendanceServiceImpl struct {
	punchInRepo  attendance.PunchInRepository
	punchOutRepo attendance.PunchOutRepository
	userRepo     user.UserRepository
	publisher    attendance.EventPublisher
	geofence     attendance.Geofence
	loc          *time.Location
	now          Clock
}

func NewAttendanceService(
	punchInRepo attendance.PunchInRepository,
	punchOutRepo attendance.PunchOutRepository,
	userRepo user.UserRepository,
	publisher attendance.EventPublisher,
	geofence attendance.Geofence,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		punchInRepo:  punchInRepo,
		punchOutRepo: punchOutRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		geofence:     geofence,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *AttendanceServiceImpl) clock() time.Time {
	return s.now().In(s.loc)
}

// notifyAdmins tells every active admin that a record is waiting for review.
// Failures are logged; the punch itself has already been stored.
func (s *AttendanceServiceImpl) notifyAdmins(ctx context.Context, kind attendance.Kind, recordID, userID string) {
	if s.publisher == nil {
		return
	}
	admins, err := s.userRepo.ListActiveByRole(ctx, user.RoleAdmin)
	if err != nil {
		slog.Error("Failed to list admins for review notification", "error", err, "record_id", recordID)
		return
	}
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	s.publisher.PublishToMany(ids, sse.Event{
		Event: attendance.EventRequestCreated,
		Data: map[string]interface{}{
			"kind":      kind,
			"record_id": recordID,
			"user_id":   userID,
		},
	})
}

func (s *AttendanceServiceImpl) notifyOwner(kind attendance.Kind, recordID, userID string, status attendance.Status) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(userID, sse.Event{
		UserID: userID,
		Event:  attendance.EventRequestReviewed,
		Data: map[string]interface{}{
			"kind":      kind,
			"record_id": recordID,
			"status":    status,
		},
	})
}
