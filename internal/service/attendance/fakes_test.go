package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	"github.com/workforce-hub/attendance-backend/internal/domain/user"
	"github.com/workforce-hub/attendance-backend/internal/pkg/sse"
)

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

type fakePunchInRepo struct {
	mu      sync.Mutex
	records []attendance.PunchInRecord
	err     error
	// hideExisting makes GetLatestForDay miss stored records, as a concurrent request would.
	hideExisting bool
}

func (f *fakePunchInRepo) Create(_ context.Context, r attendance.PunchInRecord) (attendance.PunchInRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return attendance.PunchInRecord{}, f.err
	}
	for _, existing := range f.records {
		if existing.UserID == r.UserID && existing.PunchDate == r.PunchDate {
			return attendance.PunchInRecord{}, attendance.ErrDuplicatePunch
		}
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = r.PunchInTime
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakePunchInRepo) GetLatestForDay(_ context.Context, userID string, dayStart, dayEnd time.Time) (*attendance.PunchInRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.hideExisting {
		return nil, nil
	}
	var latest *attendance.PunchInRecord
	for i := range f.records {
		r := f.records[i]
		if r.UserID != userID || !inRange(r.PunchInTime, dayStart, dayEnd) {
			continue
		}
		if latest == nil || r.PunchInTime.After(latest.PunchInTime) {
			latest = &r
		}
	}
	return latest, nil
}

func (f *fakePunchInRepo) ListByStatus(_ context.Context, status attendance.Status) ([]attendance.PunchInRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.PunchInRecord
	for _, r := range f.records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePunchInRepo) ListInRange(_ context.Context, filter attendance.RecordFilter) ([]attendance.PunchInRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.PunchInRecord
	for _, r := range f.records {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if !inRange(r.PunchInTime, filter.From, filter.To) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PunchInTime.Before(out[j].PunchInTime) })
	return out, nil
}

func (f *fakePunchInRepo) UpdateStatusIfPending(_ context.Context, id string, status attendance.Status, reviewerID string, reviewedAt time.Time) (attendance.PunchInRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id && f.records[i].Status == attendance.StatusPending {
			f.records[i].Status = status
			f.records[i].ReviewedBy = &reviewerID
			f.records[i].ReviewedAt = &reviewedAt
			return f.records[i], nil
		}
	}
	return attendance.PunchInRecord{}, attendance.ErrRequestNotFound
}

func (f *fakePunchInRepo) CountByStatus(_ context.Context, status attendance.Status) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.records {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

type fakePunchOutRepo struct {
	mu      sync.Mutex
	records []attendance.PunchOutRecord
	err     error
}

func (f *fakePunchOutRepo) Create(_ context.Context, r attendance.PunchOutRecord) (attendance.PunchOutRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return attendance.PunchOutRecord{}, f.err
	}
	for _, existing := range f.records {
		if existing.UserID == r.UserID && existing.PunchDate == r.PunchDate {
			return attendance.PunchOutRecord{}, attendance.ErrDuplicatePunch
		}
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = r.PunchOutTime
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakePunchOutRepo) GetLatestForDay(_ context.Context, userID string, dayStart, dayEnd time.Time) (*attendance.PunchOutRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var latest *attendance.PunchOutRecord
	for i := range f.records {
		r := f.records[i]
		if r.UserID != userID || !inRange(r.PunchOutTime, dayStart, dayEnd) {
			continue
		}
		if latest == nil || r.PunchOutTime.After(latest.PunchOutTime) {
			latest = &r
		}
	}
	return latest, nil
}

func (f *fakePunchOutRepo) ListByStatus(_ context.Context, status attendance.Status) ([]attendance.PunchOutRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.PunchOutRecord
	for _, r := range f.records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePunchOutRepo) ListInRange(_ context.Context, filter attendance.RecordFilter) ([]attendance.PunchOutRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.PunchOutRecord
	for _, r := range f.records {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if !inRange(r.PunchOutTime, filter.From, filter.To) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PunchOutTime.Before(out[j].PunchOutTime) })
	return out, nil
}

func (f *fakePunchOutRepo) UpdateStatusIfPending(_ context.Context, id string, status attendance.Status, reviewerID string, reviewedAt time.Time) (attendance.PunchOutRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id && f.records[i].Status == attendance.StatusPending {
			f.records[i].Status = status
			f.records[i].ReviewedBy = &reviewerID
			f.records[i].ReviewedAt = &reviewedAt
			return f.records[i], nil
		}
	}
	return attendance.PunchOutRecord{}, attendance.ErrRequestNotFound
}

func (f *fakePunchOutRepo) CountByStatus(_ context.Context, status attendance.Status) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.records {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (f *fakeUserRepo) ListActiveByRole(_ context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.IsActive && u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type publishedEvent struct {
	userID string
	event  sse.Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(userID string, event sse.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{userID: userID, event: event})
}

func (p *fakePublisher) PublishToMany(userIDs []string, event sse.Event) {
	for _, id := range userIDs {
		e := event
		e.UserID = id
		p.Publish(id, e)
	}
}
