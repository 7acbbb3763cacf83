package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/punchclock/internal/storage"
)

// Action describes what Record did with a sample.
type Action int

const (
	// ActionExtended moved the latest entry's stop forward to the sample time.
	ActionExtended Action = iota
	// ActionCreated opened a fresh entry for the sample.
	ActionCreated
	// ActionBackfilled closed a stale open entry at start+DefaultEntryLength
	// before opening a fresh one.
	ActionBackfilled
)

func (a Action) String() string {
	switch a {
	case ActionExtended:
		return "extended"
	case ActionCreated:
		return "created"
	case ActionBackfilled:
		return "backfilled"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Record folds one sample into the entry log. The decision runs against the
// latest entry only:
//
//  1. Same raw title and the sample lands within StaticWindow of the entry's
//     stop (or of its start, if still open): extend the entry to now.
//  2. Otherwise a still-open latest entry gets backfilled to
//     start+DefaultEntryLength — the switch happened somewhere between polls,
//     so the old title is charged a nominal minute.
//  3. A fresh open entry (title, now) is created.
//
// Titles are compared raw, not by normalized group, so flapping between two
// windows of the same group still records the switch.
//
// Callers must apply the Inactive gate first; Record itself never drops a
// sample.
func Record(ctx context.Context, log EntryLog, title string, now time.Time) (Action, *storage.Entry, error) {
	latest, err := log.Latest(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("fetch latest entry: %w", err)
	}

	if latest != nil && latest.Title == title {
		ref := latest.Stop
		if latest.Open() {
			ref = latest.Start
		}
		if now.Sub(ref) <= StaticWindow {
			if err := log.SetStop(ctx, latest.ID, now); err != nil {
				return 0, nil, fmt.Errorf("extend entry %d: %w", latest.ID, err)
			}
			latest.Stop = now
			return ActionExtended, latest, nil
		}
	}

	action := ActionCreated
	if latest != nil && latest.Open() {
		if err := log.SetStop(ctx, latest.ID, latest.Start.Add(DefaultEntryLength)); err != nil {
			return 0, nil, fmt.Errorf("backfill entry %d: %w", latest.ID, err)
		}
		action = ActionBackfilled
	}

	entry, err := log.Insert(ctx, title, now)
	if err != nil {
		return 0, nil, fmt.Errorf("insert entry: %w", err)
	}

	return action, entry, nil
}
