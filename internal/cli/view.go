package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/runnerr0/punchclock/internal/config"
	"github.com/runnerr0/punchclock/internal/render"
	"github.com/runnerr0/punchclock/internal/storage"
	"github.com/runnerr0/punchclock/internal/tracker"
)

// Execute implements the go-flags Commander interface for ViewCommand.
func (c *ViewCommand) Execute(args []string) error {
	if c.Count < 0 {
		return fmt.Errorf("--count must be zero or positive, got %d", c.Count)
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

	return c.executeWithStore(cfg, store)
}

// executeWithStore renders the entry table from a provided store (for testing).
func (c *ViewCommand) executeWithStore(cfg *config.Config, store storage.Store) error {
	q := storage.ScanQuery{
		Limit:   c.Count,
		Reverse: !c.Reverse, // default shows the newest entries first
	}

	var err error
	if c.Start != "" {
		if q.Since, err = parseTimeArg(c.Start); err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
	}
	if c.Stop != "" {
		if q.Until, err = parseTimeArg(c.Stop); err != nil {
			return fmt.Errorf("invalid --stop: %w", err)
		}
	}

	ctx := context.Background()
	entries, err := store.Scan(ctx, q)
	if err != nil {
		return fmt.Errorf("scan entries: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(entries)
	}

	layout := cfg.Display.TimeFormat
	rows := make([][]string, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.ID),
			e.Start.Local().Format(layout),
			formatStop(e, layout),
			render.Duration(e.Duration()),
			e.Title,
		})
	}

	out := render.Table([]string{"ID", "Start", "Stop", "Duration", "Title"}, rows)
	if len(entries) == 0 {
		out += "No entries recorded.\n"
	}

	return c.page(cfg, out)
}

// page writes output through the pager when appropriate: forced by --pager,
// suppressed by --nopager, and otherwise used only on a terminal.
func (c *ViewCommand) page(cfg *config.Config, out string) error {
	usePager := c.Pager
	if !c.Pager && !c.NoPager {
		usePager = isatty.IsTerminal(os.Stdout.Fd())
	}
	if !usePager {
		fmt.Print(out)
		return nil
	}

	pager := cfg.Display.Pager
	if pager == "" {
		pager = os.Getenv("PAGER")
	}
	if pager == "" {
		pager = "less -R"
	}

	parts := strings.Fields(pager)
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(out)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pager %q: %w", pager, err)
	}
	return nil
}

type entryJSON struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Group    string `json:"group"`
	Start    string `json:"start"`
	Stop     string `json:"stop,omitempty"`
	Duration int64  `json:"duration_seconds"`
}

func (c *ViewCommand) printJSON(entries []storage.Entry) error {
	out := make([]entryJSON, len(entries))
	for i := range entries {
		e := &entries[i]
		out[i] = entryJSON{
			ID:       e.ID,
			Title:    e.Title,
			Group:    tracker.Classify(e.Title),
			Start:    e.Start.UTC().Format(time.RFC3339),
			Duration: int64(e.Duration().Seconds()),
		}
		if !e.Open() {
			out[i].Stop = e.Stop.UTC().Format(time.RFC3339)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
