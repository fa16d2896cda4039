package testutil

import (
	"database/sql"
	"io"
	"testing"

	"github.com/matrixxonek/RPG-Planner/internal/server"
	"github.com/sirupsen/logrus"
)

// NewTestDB creates an in-memory SQLite database with the collection
// tables created. The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := server.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// NewTestServer wires a Server over a fresh in-memory database with
// logging discarded.
func NewTestServer(t *testing.T) *server.Server {
	t.Helper()
	db := NewTestDB(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return server.New(server.NewEventRepo(db), server.NewTaskRepo(db), logrus.NewEntry(logger))
}
