package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/punchclock/internal/storage"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	retention, err := parseRetention(c.OlderThan)
	if err != nil {
		return fmt.Errorf("invalid --older-than: %w", err)
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, time.Now().Add(-retention))
}

// executeWithStore prunes against a provided store (for testing).
func (c *PruneCommand) executeWithStore(store storage.Store, cutoff time.Time) error {
	ctx := context.Background()

	if c.DryRun {
		entries, err := store.Scan(ctx, storage.ScanQuery{Until: cutoff})
		if err != nil {
			return fmt.Errorf("scan entries: %w", err)
		}
		var n int64
		for i := range entries {
			if !entries[i].Open() && entries[i].Stop.Before(cutoff) {
				n++
			}
		}
		return c.report(n, cutoff, true)
	}

	n, err := store.PruneBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}
	return c.report(n, cutoff, false)
}

func (c *PruneCommand) report(n int64, cutoff time.Time, dryRun bool) error {
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"pruned":  n,
			"cutoff":  cutoff.UTC().Format(time.RFC3339),
			"dry_run": dryRun,
		})
	}

	word := "entries"
	if n == 1 {
		word = "entry"
	}
	if dryRun {
		fmt.Printf("Would prune %d %s older than %s\n", n, word, cutoff.Local().Format("2006-01-02"))
		return nil
	}
	fmt.Printf("Pruned %d %s older than %s\n", n, word, cutoff.Local().Format("2006-01-02"))
	return nil
}
