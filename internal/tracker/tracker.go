// Package tracker holds the activity-segmentation core: it turns the noisy
// stream of focused-window samples into persisted entries, measures how long
// the user has been continuously active, and regroups a day's entries into
// punches ranked by normalized activity group.
package tracker

import (
	"context"
	"time"

	"github.com/runnerr0/punchclock/internal/storage"
)

const (
	// StaticWindow is how close a new sample must land to the latest entry
	// for a same-title sample to extend it in place.
	StaticWindow = 120 * time.Second

	// IdleThreshold marks the user idle, and also bounds the gap across
	// which adjacent entries still merge into one punch. The two uses are
	// the same product decision: five quiet minutes is a break.
	IdleThreshold = 300 * time.Second

	// ActiveWindow is the largest gap tolerated inside one active streak.
	ActiveWindow = 120 * time.Second

	// GroupThreshold is the minimum accumulated duration for a group to
	// appear in the timecard summary.
	GroupThreshold = 600 * time.Second

	// DefaultEntryLength is charged to an entry that was never closed
	// before focus moved on. The poll spacing makes the true switch time
	// unknowable, so the old title gets a nominal minute.
	DefaultEntryLength = 60 * time.Second
)

// EntryLog is the slice of the entry store the segmentation core needs.
// *storage.SQLiteStore satisfies it; tests use an in-memory fake.
type EntryLog interface {
	Latest(ctx context.Context) (*storage.Entry, error)
	Predecessor(ctx context.Context, id int64) (*storage.Entry, error)
	Insert(ctx context.Context, title string, start time.Time) (*storage.Entry, error)
	SetStop(ctx context.Context, id int64, stop time.Time) error
}

// Inactive reports whether a sample should be dropped without touching the
// store: the focused title belongs to the inactive set, or the system-reported
// idle time passed IdleThreshold.
func Inactive(title string, idle time.Duration, inactiveTitles []string) bool {
	for _, t := range inactiveTitles {
		if t == title {
			return true
		}
	}
	return idle > IdleThreshold
}
