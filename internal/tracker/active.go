package tracker

import (
	"context"
	"fmt"
	"time"
)

// ActiveDuration reports how long the user has been continuously active as
// of now, where a streak tolerates gaps shorter than ActiveWindow.
//
// The walk runs strictly backward by id from the latest entry. An entry stays
// in the streak while it is still open or while the gap between the reference
// point and its stop is below ActiveWindow; its start then becomes the new
// reference. The walk ends at the first larger gap or at the oldest entry.
//
// Callers must check the Inactive gate first: an idle user has no streak and
// the store is not traversed at all in that case.
func ActiveDuration(ctx context.Context, log EntryLog, now time.Time) (time.Duration, error) {
	ref := now

	entry, err := log.Latest(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch latest entry: %w", err)
	}

	for entry != nil {
		if !entry.Open() && ref.Sub(entry.Stop) >= ActiveWindow {
			break
		}
		ref = entry.Start
		entry, err = log.Predecessor(ctx, entry.ID)
		if err != nil {
			return 0, fmt.Errorf("fetch predecessor: %w", err)
		}
	}

	return now.Sub(ref), nil
}
