package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/punchclock/internal/render"
	"github.com/runnerr0/punchclock/internal/storage"
	"github.com/runnerr0/punchclock/internal/tracker"
)

// Execute implements the go-flags Commander interface for TimecardCommand.
func (c *TimecardCommand) Execute(args []string) error {
	// Validate the date before any store access.
	day, err := resolveDay(c.Args.Date, time.Now())
	if err != nil {
		return err
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

	return c.executeWithStore(store, day)
}

// executeWithStore builds the timecard for the given local day from a
// provided store (for testing).
func (c *TimecardCommand) executeWithStore(store storage.Store, day time.Time) error {
	ctx := context.Background()

	entries, err := store.Scan(ctx, storage.ScanQuery{
		Since: day,
		Until: day.AddDate(0, 0, 1),
	})
	if err != nil {
		return fmt.Errorf("scan entries: %w", err)
	}

	punches, totals := tracker.Aggregate(entries)
	shown := tracker.ReportPunches(punches)
	groups := tracker.ReportTotals(totals)

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(day, shown, groups)
	}

	fmt.Println(render.TitleStyle.Render("Timecard " + day.Format("2006-01-02")))
	fmt.Println()

	if len(shown) == 0 {
		fmt.Println("No punches recorded.")
	} else {
		rows := make([][]string, 0, len(shown))
		for i := range shown {
			p := &shown[i]
			rows = append(rows, []string{
				p.Start.Local().Format("15:04"),
				p.Stop.Local().Format("15:04"),
				render.Duration(p.Duration()),
				p.Group,
			})
		}
		fmt.Print(render.Table([]string{"Start", "Stop", "Duration", "Activity"}, rows))
	}

	fmt.Println()
	fmt.Println(render.TitleStyle.Render("By group"))
	if len(groups) == 0 {
		fmt.Println("No group reached the reporting threshold.")
		return nil
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{g.Group, render.Duration(g.Dur)})
	}
	fmt.Print(render.Table([]string{"Group", "Duration"}, rows))

	return nil
}

type punchJSON struct {
	Start        string `json:"start"`
	Stop         string `json:"stop"`
	Seconds      int64  `json:"seconds"`
	Group        string `json:"group"`
	GroupSeconds int64  `json:"group_seconds"`
}

type groupJSON struct {
	Group   string `json:"group"`
	Seconds int64  `json:"seconds"`
}

type timecardJSON struct {
	Date    string      `json:"date"`
	Punches []punchJSON `json:"punches"`
	Groups  []groupJSON `json:"groups"`
}

func (c *TimecardCommand) printJSON(day time.Time, punches []tracker.Punch, groups []tracker.GroupTotal) error {
	out := timecardJSON{
		Date:    day.Format("2006-01-02"),
		Punches: make([]punchJSON, len(punches)),
		Groups:  make([]groupJSON, len(groups)),
	}

	for i := range punches {
		p := &punches[i]
		out.Punches[i] = punchJSON{
			Start:        p.Start.UTC().Format(time.RFC3339),
			Stop:         p.Stop.UTC().Format(time.RFC3339),
			Seconds:      int64(p.Duration().Seconds()),
			Group:        p.Group,
			GroupSeconds: int64(p.GroupDur.Seconds()),
		}
	}
	for i, g := range groups {
		out.Groups[i] = groupJSON{Group: g.Group, Seconds: int64(g.Dur.Seconds())}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
