package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/punchclock/internal/config"
	"github.com/runnerr0/punchclock/internal/probe"
	"github.com/runnerr0/punchclock/internal/render"
	"github.com/runnerr0/punchclock/internal/tracker"
)

// Execute implements the go-flags Commander interface for ActiveCommand.
func (c *ActiveCommand) Execute(args []string) error {
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

	ctx := context.Background()

	title, err := prober.WindowTitle(ctx)
	if err != nil {
		return fmt.Errorf("window title probe: %w", err)
	}
	idle, err := prober.Idle(ctx)
	if err != nil {
		return fmt.Errorf("idle probe: %w", err)
	}

	// An idle user has no streak; the store is never opened in that case.
	if tracker.Inactive(title, idle, cfg.Tracking.InactiveTitles) {
		return c.report(false, 0)
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	d, err := tracker.ActiveDuration(ctx, store, time.Now().UTC())
	if err != nil {
		return err
	}

	return c.report(true, d)
}

func (c *ActiveCommand) report(active bool, d time.Duration) error {
	if c.globals != nil && c.globals.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"active":  active,
			"seconds": int64(d.Seconds()),
		})
	}

	if c.Minutes {
		fmt.Println(int(d.Minutes()))
		return nil
	}

	if !active {
		fmt.Println("inactive")
		return nil
	}
	fmt.Printf("active for %s\n", render.Duration(d))
	return nil
}

// executeWithStore computes the streak against a provided store and sample
// (for testing).
func (c *ActiveCommand) executeWithStore(cfg *config.Config, log tracker.EntryLog, title string, idle time.Duration, now time.Time) error {
	if tracker.Inactive(title, idle, cfg.Tracking.InactiveTitles) {
		return c.report(false, 0)
	}

	d, err := tracker.ActiveDuration(context.Background(), log, now)
	if err != nil {
		return err
	}
	return c.report(true, d)
}
