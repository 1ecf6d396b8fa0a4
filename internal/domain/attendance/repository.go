package attendance

import (
	"context"
	"time"
)

// RecordFilter narrows record listings. Zero values mean "no constraint".
type RecordFilter struct {
	UserID string
	Status Status
	From   time.Time
	To     time.Time // exclusive
}

// PunchInRepository stores punch-in records. Records are append-only except for their status.
type PunchInRepository interface {
	// Create inserts a record. A second record for the same user and punch date
	// fails with ErrDuplicatePunch.
	Create(ctx context.Context, record PunchInRecord) (PunchInRecord, error)

	// GetLatestForDay returns the most recent record with a punch time inside
	// [dayStart, dayEnd), or nil when there is none.
	GetLatestForDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*PunchInRecord, error)

	// ListByStatus returns records with the given status, newest first, joined with their user.
	ListByStatus(ctx context.Context, status Status) ([]PunchInRecord, error)

	// ListInRange returns records matching the filter ordered by punch time ascending.
	ListInRange(ctx context.Context, filter RecordFilter) ([]PunchInRecord, error)

	// UpdateStatusIfPending moves a pending record to status. It returns
	// ErrRequestNotFound when no pending record has that id.
	UpdateStatusIfPending(ctx context.Context, id string, status Status, reviewerID string, reviewedAt time.Time) (PunchInRecord, error)

	CountByStatus(ctx context.Context, status Status) (int64, error)
}

// PunchOutRepository mirrors PunchInRepository for punch-out records.
type PunchOutRepository interface {
	Create(ctx context.Context, record PunchOutRecord) (PunchOutRecord, error)
	GetLatestForDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*PunchOutRecord, error)
	ListByStatus(ctx context.Context, status Status) ([]PunchOutRecord, error)
	ListInRange(ctx context.Context, filter RecordFilter) ([]PunchOutRecord, error)
	UpdateStatusIfPending(ctx context.Context, id string, status Status, reviewerID string, reviewedAt time.Time) (PunchOutRecord, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
