package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Store defines the interface for punchclock entry log operations. Rows are
// ordered by id; timestamps are stored as UTC epoch seconds.
type Store interface {
	Latest(ctx context.Context) (*Entry, error)
	Predecessor(ctx context.Context, id int64) (*Entry, error)
	Insert(ctx context.Context, title string, start time.Time) (*Entry, error)
	SetStop(ctx context.Context, id int64, stop time.Time) error
	Scan(ctx context.Context, q ScanQuery) ([]Entry, error)
	Stats(ctx context.Context) (*Stats, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
	PurgeAll(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	latest      *sql.Stmt
	predecessor *sql.Stmt
	insert      *sql.Stmt
	setStop     *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.latest, err = s.db.Prepare(`
		SELECT id, title, start, stop FROM entries ORDER BY id DESC LIMIT 1
	`)
	if err != nil {
		return err
	}

	s.predecessor, err = s.db.Prepare(`
		SELECT id, title, start, stop FROM entries WHERE id < ? ORDER BY id DESC LIMIT 1
	`)
	if err != nil {
		return err
	}

	s.insert, err = s.db.Prepare(`
		INSERT INTO entries (title, start) VALUES (?, ?)
	`)
	if err != nil {
		return err
	}

	s.setStop, err = s.db.Prepare(`
		UPDATE entries SET stop = ? WHERE id = ?
	`)
	if err != nil {
		return err
	}

	return nil
}

// scanRow reads one entry from a row scanner. A NULL stop column maps to the
// zero time, meaning the entry is still open.
func scanRow(row interface{ Scan(...interface{}) error }) (*Entry, error) {
	var e Entry
	var start int64
	var stop sql.NullInt64

	if err := row.Scan(&e.ID, &e.Title, &start, &stop); err != nil {
		return nil, err
	}

	e.Start = time.Unix(start, 0).UTC()
	if stop.Valid {
		e.Stop = time.Unix(stop.Int64, 0).UTC()
	}

	return &e, nil
}

// Latest returns the entry with the largest id, or nil when the log is empty.
func (s *SQLiteStore) Latest(ctx context.Context) (*Entry, error) {
	e, err := scanRow(s.latest.QueryRowContext(ctx))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch latest entry: %w", err)
	}
	return e, nil
}

// Predecessor returns the entry immediately preceding the given id, or nil
// when id is the oldest entry.
func (s *SQLiteStore) Predecessor(ctx context.Context, id int64) (*Entry, error) {
	e, err := scanRow(s.predecessor.QueryRowContext(ctx, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch predecessor of %d: %w", id, err)
	}
	return e, nil
}

// Insert creates a new open entry and returns it with its assigned id.
func (s *SQLiteStore) Insert(ctx context.Context, title string, start time.Time) (*Entry, error) {
	res, err := s.insert.ExecContext(ctx, title, start.UTC().Unix())
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("entry id: %w", err)
	}

	return &Entry{
		ID:    id,
		Title: title,
		Start: start.UTC().Truncate(time.Second),
	}, nil
}

// SetStop closes (or re-closes) the entry with the given id.
func (s *SQLiteStore) SetStop(ctx context.Context, id int64, stop time.Time) error {
	res, err := s.setStop.ExecContext(ctx, stop.UTC().Unix(), id)
	if err != nil {
		return fmt.Errorf("set stop for entry %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %d not found", id)
	}

	return nil
}

// Scan returns entries matching the query, ordered by id.
func (s *SQLiteStore) Scan(ctx context.Context, q ScanQuery) ([]Entry, error) {
	var clauses []string
	var args []interface{}

	if !q.Since.IsZero() {
		clauses = append(clauses, "start >= ?")
		args = append(args, q.Since.UTC().Unix())
	}
	if !q.Until.IsZero() {
		clauses = append(clauses, "start < ?")
		args = append(args, q.Until.UTC().Unix())
	}

	query := "SELECT id, title, start, stop FROM entries"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	if q.Reverse {
		query += " ORDER BY id DESC"
	} else {
		query += " ORDER BY id ASC"
	}

	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry row: %w", err)
		}
		entries = append(entries, *e)
	}

	return entries, rows.Err()
}

// Stats returns aggregate statistics about the entry log.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&stats.TotalEntries)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	if stats.TotalEntries > 0 {
		var oldest, newest int64
		err = s.db.QueryRowContext(ctx, "SELECT MIN(start), MAX(start) FROM entries").Scan(&oldest, &newest)
		if err != nil {
			return nil, fmt.Errorf("entry time range: %w", err)
		}
		stats.Oldest = time.Unix(oldest, 0).UTC()
		stats.Newest = time.Unix(newest, 0).UTC()
	}

	latest, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.Open() {
		stats.OpenEntry = latest
	}

	return stats, nil
}

// PruneBefore deletes closed entries that stopped before the cutoff. Open
// entries are never pruned.
func (s *SQLiteStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM entries WHERE stop IS NOT NULL AND stop < ?",
		cutoff.UTC().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("prune entries: %w", err)
	}
	return res.RowsAffected()
}

// PurgeAll deletes every entry.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("purge entries: %w", err)
	}
	return nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed — that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.latest, s.predecessor, s.insert, s.setStop}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
