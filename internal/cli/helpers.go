package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/punchclock/internal/config"
	"github.com/runnerr0/punchclock/internal/storage"
)

// loadConfig resolves the --config flag and loads (or creates) the config.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.Load(globals.Config)
	}
	return config.LoadOrCreate()
}

// openStore opens the configured SQLite database, runs migrations, and
// returns a ready-to-use store and the underlying *sql.DB.
func openStore(cfg *config.Config) (*storage.SQLiteStore, *sql.DB, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init store: %w", err)
	}

	return store, db, nil
}

// parseRetention parses a human-friendly duration string like "90d", "12w",
// "24h".
func parseRetention(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration %q (use d, w, h, or m suffix)", s)
	}
}

// parseTimeArg accepts epoch seconds, "2006-01-02 15:04", or "2006-01-02".
// Non-epoch forms are interpreted in local time.
func parseTimeArg(s string) (time.Time, error) {
	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(epoch, 0), nil
	}

	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time %q (use epoch seconds, YYYY-MM-DD, or YYYY-MM-DD HH:MM)", s)
}

// resolveDay turns a timecard date argument into local midnight of the
// requested day. Accepts an explicit YYYY-MM-DD or a non-positive relative
// offset; the empty string means today.
func resolveDay(arg string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if arg == "" {
		return today, nil
	}

	if n, err := strconv.Atoi(arg); err == nil {
		if n > 0 {
			return time.Time{}, fmt.Errorf("day offset must be zero or negative, got %d", n)
		}
		return today.AddDate(0, 0, n), nil
	}

	day, err := time.ParseInLocation("2006-01-02", arg, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or a non-positive offset)", arg)
	}
	return day, nil
}

// formatStop renders an entry's stop column; open entries show as "open".
func formatStop(e *storage.Entry, layout string) string {
	if e.Open() {
		return "open"
	}
	return e.Stop.Local().Format(layout)
}
