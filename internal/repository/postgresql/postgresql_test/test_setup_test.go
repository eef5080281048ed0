package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps a connection to the integration database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping repository integration test")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err, "failed to connect to test database")

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	t.Cleanup(func() {
		_ = setup.TruncateAllTables(context.Background())
		setup.Close()
	})
	return setup
}

// TruncateAllTables removes every row the tests may have written
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"attendance_events",
		"employees",
		"work_schedules",
		"users",
		"companies",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// CreateCompany inserts a company and returns its id
func (t *TestDatabaseSetup) CreateCompany(ctx context.Context, tt *testing.T) string {
	var companyID string
	err := t.DB.QueryRow(ctx, `
		INSERT INTO companies (id, name, created_at, updated_at)
		VALUES (gen_random_uuid(), 'Test Company', NOW(), NOW())
		RETURNING id
	`).Scan(&companyID)
	require.NoError(tt, err)
	return companyID
}

// Close closes the pool
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
