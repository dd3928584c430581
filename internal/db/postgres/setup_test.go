package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"Theatrum/internal/db/migrations"
)

// setupTestDB connects to TEST_DATABASE_URL, migrates, and truncates all tables
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := Open(context.Background(), dsn)
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, MigrateFS(db, migrations.FS, "."), "Failed to run migrations")

	_, err = db.Exec(`TRUNCATE comments, videos, channels, users`)
	require.NoError(t, err)
	return db
}

func insertTestUser(t *testing.T, db *sql.DB, username string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`INSERT INTO users (id, username, email, password_hash) VALUES ($1, $2, $3, 'x')`,
		id, username, username+"@example.com")
	require.NoError(t, err)
	return id
}
