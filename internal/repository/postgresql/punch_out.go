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

const punchOutColumns = `
	p.id, p.user_id, p.punch_out_time, p.punch_date::text, p.punch_out_location,
	p.distance, p.working_mode, p.status, p.reviewed_by, p.reviewed_at, p.created_at,
	u.user_name, u.email, u.profile_photo_url`

type punchOutRepositoryImpl struct {
	db *database.DB
}

func NewPunchOutRepository(db *database.DB) attendance.PunchOutRepository {
	return &punchOutRepositoryImpl{db: db}
}

func scanPunchOut(row pgx.Row) (attendance.PunchOutRecord, error) {
	var r attendance.PunchOutRecord
	err := row.Scan(
		&r.ID, &r.UserID, &r.PunchOutTime, &r.PunchDate, &r.PunchOutLocation,
		&r.Distance, &r.WorkingMode, &r.Status, &r.ReviewedBy, &r.ReviewedAt, &r.CreatedAt,
		&r.UserName, &r.Email, &r.ProfilePhotoURL,
	)
	if err != nil {
		return r, err
	}
	if !r.Status.Valid() {
		return r, fmt.Errorf("punch_out %s: unknown status %q", r.ID, r.Status)
	}
	return r, nil
}

func collectPunchOuts(rows pgx.Rows) ([]attendance.PunchOutRecord, error) {
	defer rows.Close()

	records := []attendance.PunchOutRecord{}
	for rows.Next() {
		r, err := scanPunchOut(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch-out: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Create implements attendance.PunchOutRepository.
func (r *punchOutRepositoryImpl) Create(ctx context.Context, record attendance.PunchOutRecord) (attendance.PunchOutRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.PunchOutRecord{}, fmt.Errorf("failed to generate id: %w", err)
	}
	record.ID = id.String()

	query := `
		INSERT INTO punch_out_records (
			id, user_id, punch_out_time, punch_date, punch_out_location,
			distance, working_mode, status
		) VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8)
		RETURNING created_at
	`

	err = q.QueryRow(ctx, query,
		record.ID,
		record.UserID,
		record.PunchOutTime,
		record.PunchDate,
		record.PunchOutLocation,
		record.Distance,
		string(record.WorkingMode),
		string(record.Status),
	).Scan(&record.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_punch_out_user_day") {
			return attendance.PunchOutRecord{}, attendance.ErrDuplicatePunch
		}
		return attendance.PunchOutRecord{}, fmt.Errorf("failed to create punch-out: %w", err)
	}

	return record, nil
}

// GetLatestForDay implements attendance.PunchOutRepository.
func (r *punchOutRepositoryImpl) GetLatestForDay(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*attendance.PunchOutRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchOutColumns + `
		FROM punch_out_records p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		  AND p.punch_out_time >= $2
		  AND p.punch_out_time < $3
		ORDER BY p.punch_out_time DESC
		LIMIT 1
	`

	record, err := scanPunchOut(q.QueryRow(ctx, query, userID, dayStart, dayEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest punch-out: %w", err)
	}

	return &record, nil
}

// ListByStatus implements attendance.PunchOutRepository.
func (r *punchOutRepositoryImpl) ListByStatus(ctx context.Context, status attendance.Status) ([]attendance.PunchOutRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchOutColumns + `
		FROM punch_out_records p
		JOIN users u ON u.id = p.user_id
		WHERE p.status = $1
		ORDER BY p.punch_out_time DESC
	`

	rows, err := q.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query punch-outs: %w", err)
	}
	return collectPunchOuts(rows)
}

// ListInRange implements attendance.PunchOutRepository.
func (r *punchOutRepositoryImpl) ListInRange(ctx context.Context, filter attendance.RecordFilter) ([]attendance.PunchOutRecord, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere, args := recordWhere(filter, "p.punch_out_time")
	query := fmt.Sprintf(`
		SELECT %s
		FROM punch_out_records p
		JOIN users u ON u.id = p.user_id
		WHERE %s
		ORDER BY p.punch_out_time ASC
	`, punchOutColumns, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query punch-outs: %w", err)
	}
	return collectPunchOuts(rows)
}

// UpdateStatusIfPending implements attendance.PunchOutRepository.
func (r *punchOutRepositoryImpl) UpdateStatusIfPending(ctx context.Context, id string, status attendance.Status, reviewerID string, reviewedAt time.Time) (attendance.PunchOutRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			UPDATE punch_out_records
			SET status = $2, reviewed_by = $3, reviewed_at = $4
			WHERE id = $1 AND status = 'pending'
			RETURNING *
		)
		SELECT ` + punchOutColumns + `
		FROM p
		JOIN users u ON u.id = p.user_id
	`

	record, err := scanPunchOut(q.QueryRow(ctx, query, id, string(status), reviewerID, reviewedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.PunchOutRecord{}, attendance.ErrRequestNotFound
		}
		return attendance.PunchOutRecord{}, fmt.Errorf("failed to update punch-out status: %w", err)
	}

	return record, nil
}

// CountByStatus implements attendance.PunchOutRepository.
func (r *punchOutRepositoryImpl) CountByStatus(ctx context.Context, status attendance.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM punch_out_records WHERE status = $1`, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count punch-outs: %w", err)
	}
	return count, nil
}
