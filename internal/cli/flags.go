package cli

import (
	"database/sql"

	"github.com/runnerr0/punchclock/internal/probe"
)

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// TrackCommand — sample the focused window once and fold it into the log.
type TrackCommand struct {
	globals *GlobalFlags
	version string
	prober  probe.Prober // injectable for testing; nil means platform probe
}

// ViewCommand — render stored entries as a table.
type ViewCommand struct {
	Count   int    `long:"count" description:"Maximum entries to show (0 = all)" default:"0"`
	Reverse bool   `long:"reverse" description:"Oldest entries first"`
	Start   string `long:"start" description:"Only entries starting at or after this time (YYYY-MM-DD[ HH:MM] or epoch seconds)"`
	Stop    string `long:"stop" description:"Only entries starting before this time"`
	Pager   bool   `long:"pager" description:"Force output through the pager"`
	NoPager bool   `long:"nopager" description:"Never page output"`

	globals *GlobalFlags
	version string
}

// TimecardCommand — aggregate one day's entries into punches.
type TimecardCommand struct {
	Args struct {
		Date string `positional-arg-name:"date" description:"YYYY-MM-DD or a non-positive day offset (0 = today, -1 = yesterday)"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// ActiveCommand — report the current unbroken active streak.
type ActiveCommand struct {
	Minutes bool `long:"minutes" description:"Print the raw minute count"`

	globals *GlobalFlags
	version string
	prober  probe.Prober // injectable for testing; nil means platform probe
}

// StatusCommand — show database statistics and top activity groups.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PruneCommand — delete closed entries older than the retention period.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Retention period (e.g. 90d, 12w)" default:"90d"`
	DryRun    bool   `long:"dry-run" description:"Show what would be pruned without deleting"`

	globals *GlobalFlags
	version string
}

// PurgeCommand — delete ALL punchclock data with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	db      *sql.DB // injectable for testing; nil means open default DB
}

// DashboardCommand — live terminal dashboard for today's activity.
type DashboardCommand struct {
	globals *GlobalFlags
	version string
}
