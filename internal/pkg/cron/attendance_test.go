package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	"github.com/workforce-hub/attendance-backend/internal/domain/user"
	"github.com/workforce-hub/attendance-backend/internal/pkg/email"
	"github.com/workforce-hub/attendance-backend/internal/pkg/sse"
)

type stubAttendanceService struct {
	attendance.AttendanceService
	counts attendance.PendingCounts
	err    error
}

func (s stubAttendanceService) PendingCounts(context.Context) (attendance.PendingCounts, error) {
	return s.counts, s.err
}

type stubUserRepo struct {
	user.UserRepository
	admins []user.User
}

func (r stubUserRepo) ListActiveByRole(_ context.Context, role user.Role) ([]user.User, error) {
	if role != user.RoleAdmin {
		return nil, nil
	}
	return r.admins, nil
}

type recordingMailer struct {
	to   []string
	data []email.PendingDigestData
	err  error
}

func (m *recordingMailer) SendPendingDigest(_ context.Context, to string, data email.PendingDigestData) error {
	m.to = append(m.to, to)
	m.data = append(m.data, data)
	return m.err
}

type recordingPublisher struct {
	userIDs []string
	events  []sse.Event
}

func (p *recordingPublisher) Publish(userID string, event sse.Event) {
	p.userIDs = append(p.userIDs, userID)
	p.events = append(p.events, event)
}

func (p *recordingPublisher) PublishToMany(userIDs []string, event sse.Event) {
	for _, id := range userIDs {
		p.Publish(id, event)
	}
}

func TestPendingDigest_NotifiesAdmins(t *testing.T) {
	pub := &recordingPublisher{}
	jobs := NewAttendanceJobs(
		stubAttendanceService{counts: attendance.PendingCounts{PunchIns: 2, PunchOuts: 1}},
		stubUserRepo{admins: []user.User{{ID: "a1"}, {ID: "a2"}}},
		pub,
		nil,
		time.Hour,
	)
	fixed := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	jobs.now = func() time.Time { return fixed }

	require.NoError(t, jobs.PendingDigest(context.Background()))

	assert.Equal(t, []string{"a1", "a2"}, pub.userIDs)
	require.Len(t, pub.events, 2)
	assert.Equal(t, attendance.EventPendingDigest, pub.events[0].Event)
	assert.Equal(t, PendingDigest{PendingPunchIns: 2, PendingPunchOuts: 1, Total: 3, GeneratedAt: fixed}, pub.events[0].Data)
}

func TestPendingDigest_EmptyQueueSendsNothing(t *testing.T) {
	pub := &recordingPublisher{}
	jobs := NewAttendanceJobs(stubAttendanceService{}, stubUserRepo{admins: []user.User{{ID: "a1"}}}, pub, nil, time.Hour)

	require.NoError(t, jobs.PendingDigest(context.Background()))
	assert.Empty(t, pub.events)
}

func TestPendingDigest_CountFailure(t *testing.T) {
	boom := errors.New("db down")
	jobs := NewAttendanceJobs(stubAttendanceService{err: boom}, stubUserRepo{}, &recordingPublisher{}, nil, time.Hour)

	err := jobs.PendingDigest(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestRegisterJobs_UsesConfiguredInterval(t *testing.T) {
	s := NewScheduler()
	NewAttendanceJobs(stubAttendanceService{}, stubUserRepo{}, &recordingPublisher{}, nil, 15*time.Minute).RegisterJobs(s)

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, PendingDigestJob, jobs[0].Name)
	assert.Equal(t, 15*time.Minute, jobs[0].Interval)
}

func TestPendingDigest_EmailsAdmins(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	jobs := NewAttendanceJobs(
		stubAttendanceService{counts: attendance.PendingCounts{PunchOuts: 4}},
		stubUserRepo{admins: []user.User{
			{ID: "a1", UserName: "Ada", Email: "ada@example.com"},
			{ID: "a2", UserName: "Bo", Email: "bo@example.com"},
		}},
		&recordingPublisher{},
		mailer,
		time.Hour,
	)

	// Mail failures are logged, not returned.
	require.NoError(t, jobs.PendingDigest(context.Background()))
	assert.Equal(t, []string{"ada@example.com", "bo@example.com"}, mailer.to)
	require.Len(t, mailer.data, 2)
	assert.Equal(t, "Ada", mailer.data[0].AdminName)
	assert.Equal(t, int64(4), mailer.data[0].Total)
	assert.Equal(t, int64(4), mailer.data[0].PendingPunchOuts)
}
