package postgresql_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workforce-hub/attendance-backend/internal/pkg/database"
	"github.com/workforce-hub/attendance-backend/internal/repository/postgresql"
)

// errRollback aborts the per-test transaction so every test leaves the database untouched.
var errRollback = errors.New("rollback")

// openTestDB connects to TEST_DATABASE_URL and applies migrations, skipping the test when unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx))
	return db
}

// inRollbackTx runs fn with a context bound to a transaction that is always rolled back.
func inRollbackTx(t *testing.T, db *database.DB, fn func(ctx context.Context)) {
	t.Helper()

	err := postgresql.WithTransaction(context.Background(), db, func(txCtx context.Context) error {
		fn(txCtx)
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)
}
