package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	"github.com/workforce-hub/attendance-backend/internal/pkg/database"
)

const punchInColumns = `
	p.id, p.user_id, p.punch_in_time, p.punch_date::text, p.punch_in_location,
	p.distance, p.working_mode, p.status, p.reviewed_by, p.reviewed_at, p.created_at,
	u.user_name, u.email, u.profile_photo_url`

type punchInRepositoryImpl struct {
	db *database.DB
}

func NewPunchInRepository(db *database.DB) attendance.PunchInRepository {
	return &punchInRepositoryImpl{db: db}
}

func scanPunchIn(row pgx.Row) (attendance.PunchInRecord, error) {
	var r attendance.PunchInRecord
	err := row.Scan(
		&r.ID, &r.UserID, &r.PunchInTime, &r.PunchDate, &r.PunchInLocation,
		&r.Distance, &r.WorkingMode, &r.Status, &r.ReviewedBy, &r.ReviewedAt, &r.CreatedAt,
		&r.UserName, &r.Email, &r.ProfilePhotoURL,
	)
	if err != nil {
		return r, err
	}
	if !r.Status.Valid() {
		return r, fmt.Errorf("punch_in %s: unknown status %q", r.ID, r.Status)
	}
	return r, nil
}

func collectPunchIns(rows pgx.Rows) ([]attendance.PunchInRecord, error) {
	defer rows.Close()

	records := []attendance.PunchInRecord{}
	for rows.Next() {
		r, err := scanPunchIn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch-in: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Create implements attendance.PunchInRepository.
func (r *punchInRepositoryImpl) Create(ctx context.Context, record attendance.PunchInRecord) (attendance.PunchInRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.PunchInRecord{}, fmt.Errorf("failed to generate id: %w", err)
	}
	record.ID = id.String()

	query := `
		INSERT INTO punch_in_records (
			id, user_id, punch_in_time, punch_date, punch_in_location,
			distance, working_mode, status
		) VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8)
		RETURNING created_at
	`

	err = q.QueryRow(ctx, query,
		record.ID,
		record.UserID,
		record.PunchInTime,
		record.PunchDate,
		record.PunchInLocation,
		record.Distance,
		string(record.WorkingMode),
		string(record.Status),
	).Scan(&record.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_punch_in_user_day") {
			return attendance.PunchInRecord{}, attendance.ErrDuplicatePunch
		}
		return attendance.PunchInRecord{}, fmt.Errorf("failed to create punch-in: %w", err)
	}

	return record, nil
}

// GetLatestForDay implements attendance.PunchInRepository.
func (r *punchInRepositoryImpl) GetLatestForDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*attendance.PunchInRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchInColumns + `
		FROM punch_in_records p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		  AND p.punch_in_time >= $2
		  AND p.punch_in_time < $3
		ORDER BY p.punch_in_time DESC
		LIMIT 1
	`

	record, err := scanPunchIn(q.QueryRow(ctx, query, userID, dayStart, dayEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest punch-in: %w", err)
	}

	return &record, nil
}

// ListByStatus implements attendance.PunchInRepository.
func (r *punchInRepositoryImpl) ListByStatus(ctx context.Context, status attendance.Status) ([]attendance.PunchInRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchInColumns + `
		FROM punch_in_records p
		JOIN users u ON u.id = p.user_id
		WHERE p.status = $1
		ORDER BY p.punch_in_time DESC
	`

	rows, err := q.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query punch-ins: %w", err)
	}
	return collectPunchIns(rows)
}

// ListInRange implements attendance.PunchInRepository.
func (r *punchInRepositoryImpl) ListInRange(ctx context.Context, filter attendance.RecordFilter) ([]attendance.PunchInRecord, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere, args := recordWhere(filter, "p.punch_in_time")
	query := fmt.Sprintf(`
		SELECT %s
		FROM punch_in_records p
		JOIN users u ON u.id = p.user_id
		WHERE %s
		ORDER BY p.punch_in_time ASC
	`, punchInColumns, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query punch-ins: %w", err)
	}
	return collectPunchIns(rows)
}

// UpdateStatusIfPending implements attendance.PunchInRepository.
func (r *punchInRepositoryImpl) UpdateStatusIfPending(ctx context.Context, id string, status attendance.Status, reviewerID string, reviewedAt time.Time) (attendance.PunchInRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			UPDATE punch_in_records
			SET status = $2, reviewed_by = $3, reviewed_at = $4
			WHERE id = $1 AND status = 'pending'
			RETURNING *
		)
		SELECT ` + punchInColumns + `
		FROM p
		JOIN users u ON u.id = p.user_id
	`

	record, err := scanPunchIn(q.QueryRow(ctx, query, id, string(status), reviewerID, reviewedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.PunchInRecord{}, attendance.ErrRequestNotFound
		}
		return attendance.PunchInRecord{}, fmt.Errorf("failed to update punch-in status: %w", err)
	}

	return record, nil
}

// CountByStatus implements attendance.PunchInRepository.
func (r *punchInRepositoryImpl) CountByStatus(ctx context.Context, status attendance.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM punch_in_records WHERE status = $1`, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count punch-ins: %w", err)
	}
	return count, nil
}
