package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/punchclock/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// setupTestStore creates a migrated in-memory store for command tests.
func setupTestStore(t *testing.T) (*storage.SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// An in-memory database lives on a single connection.
	db.SetMaxOpenConns(1)

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, db
}

// seedClosed inserts a closed entry.
func seedClosed(t *testing.T, store *storage.SQLiteStore, title string, start, stop time.Time) {
	t.Helper()
	ctx := context.Background()
	e, err := store.Insert(ctx, title, start)
	require.NoError(t, err)
	require.NoError(t, store.SetStop(ctx, e.ID, stop))
}

// fakeProber returns canned probe results for testing the sampling commands.
type fakeProber struct {
	title    string
	idle     time.Duration
	titleErr error
	idleErr  error
}

func (p fakeProber) WindowTitle(ctx context.Context) (string, error) {
	return p.title, p.titleErr
}

func (p fakeProber) Idle(ctx context.Context) (time.Duration, error) {
	return p.idle, p.idleErr
}
