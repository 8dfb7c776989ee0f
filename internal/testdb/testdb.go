// Package testdb spins up migrated in-memory SQLite databases for tests.
package testdb

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/db"
)

// New returns a fresh in-memory database with all migrations applied.
// The pool is pinned to a single connection because every connection to
// ":memory:" would otherwise see its own empty database.
func New(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = conn.Close()
	})

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))

	return conn
}
