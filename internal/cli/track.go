package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/punchclock/internal/config"
	"github.com/runnerr0/punchclock/internal/probe"
	"github.com/runnerr0/punchclock/internal/tracker"
)

// Execute implements the go-flags Commander interface for TrackCommand.
func (c *TrackCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	prober := c.prober
	if prober == nil {
		prober, err = probe.New()
		if err != nil {
			return err
		}
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(cfg, prober, store, time.Now().UTC())
}

// executeWithStore runs one sample against a provided store (for testing).
func (c *TrackCommand) executeWithStore(cfg *config.Config, prober probe.Prober, log tracker.EntryLog, now time.Time) error {
	ctx := context.Background()

	title, err := prober.WindowTitle(ctx)
	if err != nil {
		return fmt.Errorf("window title probe: %w", err)
	}

	idle, err := prober.Idle(ctx)
	if err != nil {
		return fmt.Errorf("idle probe: %w", err)
	}

	if tracker.Inactive(title, idle, cfg.Tracking.InactiveTitles) {
		if c.globals.JSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"action": "dropped",
				"idle":   idle.Seconds(),
			})
		}
		if c.globals.Verbose {
			fmt.Println("inactive; sample dropped")
		}
		return nil
	}

	action, entry, err := tracker.Record(ctx, log, title, now)
	if err != nil {
		return err
	}

	if c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"action": action.String(),
			"id":     entry.ID,
			"title":  entry.Title,
			"group":  tracker.Classify(entry.Title),
		})
	}

	if c.globals.Verbose {
		fmt.Printf("%s entry %d (%s)\n", action, entry.ID, entry.Title)
	}

	return nil
}
