package postgresql

import (
	"fmt"

	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
)

// recordWhere renders the WHERE clause for a record listing. timeColumn is the
// qualified punch time column of the table being queried.
func recordWhere(filter attendance.RecordFilter, timeColumn string) (string, []interface{}) {
	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND p.user_id = $%d", argIdx)
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	if !filter.From.IsZero() {
		baseWhere += fmt.Sprintf(" AND %s >= $%d", timeColumn, argIdx)
		args = append(args, filter.From)
		argIdx++
	}
	if !filter.To.IsZero() {
		baseWhere += fmt.Sprintf(" AND %s < $%d", timeColumn, argIdx)
		args = append(args, filter.To)
	}

	return baseWhere, args
}
