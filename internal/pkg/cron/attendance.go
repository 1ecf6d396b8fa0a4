package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	"github.com/workforce-hub/attendance-backend/internal/domain/user"
	"github.com/workforce-hub/attendance-backend/internal/pkg/email"
	"github.com/workforce-hub/attendance-backend/internal/pkg/sse"
)

const PendingDigestJob = "pending_attendance_digest"

// PendingDigest is the payload of attendance.pending_digest.
type PendingDigest struct {
	PendingPunchIns  int64     `json:"pending_punch_ins"`
	PendingPunchOuts int64     `json:"pending_punch_outs"`
	Total            int64     `json:"total"`
	GeneratedAt      time.Time `json:"generated_at"`
}

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	userRepo          user.UserRepository
	publisher         attendance.EventPublisher
	mailer            email.Sender
	interval          time.Duration
	now               func() time.Time
}

func NewAttendanceJobs(
	attendanceService attendance.AttendanceService,
	userRepo user.UserRepository,
	publisher attendance.EventPublisher,
	mailer email.Sender,
	interval time.Duration,
) *AttendanceJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		userRepo:          userRepo,
		publisher:         publisher,
		mailer:            mailer,
		interval:          interval,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(PendingDigestJob, j.interval, j.PendingDigest)
}

// PendingDigest reminds every active admin how many punches await review, over SSE and,
// when a mailer is set, by email. Nothing is sent when the queue is empty.
func (j *AttendanceJobs) PendingDigest(ctx context.Context) error {
	counts, err := j.attendanceService.PendingCounts(ctx)
	if err != nil {
		return fmt.Errorf("count pending requests: %w", err)
	}
	if counts.Total() == 0 {
		return nil
	}

	admins, err := j.userRepo.ListActiveByRole(ctx, user.RoleAdmin)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	if len(admins) == 0 {
		slog.Warn("Cron: pending attendance requests but no active admin", "total", counts.Total())
		return nil
	}

	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}

	digest := PendingDigest{
		PendingPunchIns:  counts.PunchIns,
		PendingPunchOuts: counts.PunchOuts,
		Total:            counts.Total(),
		GeneratedAt:      j.now().UTC(),
	}
	j.publisher.PublishToMany(ids, sse.Event{Event: attendance.EventPendingDigest, Data: digest})

	if j.mailer != nil {
		for _, a := range admins {
			err := j.mailer.SendPendingDigest(ctx, a.Email, email.PendingDigestData{
				AdminName:        a.UserName,
				PendingPunchIns:  digest.PendingPunchIns,
				PendingPunchOuts: digest.PendingPunchOuts,
				Total:            digest.Total,
				GeneratedAt:      digest.GeneratedAt.Format(time.RFC3339),
			})
			if err != nil {
				slog.Error("Cron: failed to email pending digest", "error", err, "admin_id", a.ID)
			}
		}
	}

	slog.Info("Cron: pending attendance digest sent", "admins", len(ids), "total", counts.Total())
	return nil
}
