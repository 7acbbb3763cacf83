package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/punchclock/internal/storage"
)

// memLog is an in-memory EntryLog so the segmentation core can be exercised
// without SQLite.
type memLog struct {
	entries []storage.Entry
	nextID  int64
}

func newMemLog() *memLog { return &memLog{nextID: 1} }

func (l *memLog) Latest(ctx context.Context) (*storage.Entry, error) {
	if len(l.entries) == 0 {
		return nil, nil
	}
	e := l.entries[len(l.entries)-1]
	return &e, nil
}

func (l *memLog) Predecessor(ctx context.Context, id int64) (*storage.Entry, error) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].ID < id {
			e := l.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (l *memLog) Insert(ctx context.Context, title string, start time.Time) (*storage.Entry, error) {
	e := storage.Entry{ID: l.nextID, Title: title, Start: start}
	l.nextID++
	l.entries = append(l.entries, e)
	return &e, nil
}

func (l *memLog) SetStop(ctx context.Context, id int64, stop time.Time) error {
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Stop = stop
			return nil
		}
	}
	return fmt.Errorf("entry %d not found", id)
}

// seed appends a closed (or open, when stop is zero) entry directly.
func (l *memLog) seed(title string, start, stop time.Time) {
	l.entries = append(l.entries, storage.Entry{
		ID:    l.nextID,
		Title: title,
		Start: start,
		Stop:  stop,
	})
	l.nextID++
}
