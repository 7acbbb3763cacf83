package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Track     *TrackCommand
	View      *ViewCommand
	Timecard  *TimecardCommand
	Active    *ActiveCommand
	Status    *StatusCommand
	Prune     *PruneCommand
	Purge     *PurgeCommand
	Dashboard *DashboardCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "punchclock"
	parser.LongDescription = "Window-title activity tracking: sample the focused window, merge the samples into intervals, and review them as daily timecards."

	cmds := &commands{
		Track:     &TrackCommand{globals: &globals, version: version},
		View:      &ViewCommand{globals: &globals, version: version},
		Timecard:  &TimecardCommand{globals: &globals, version: version},
		Active:    &ActiveCommand{globals: &globals, version: version},
		Status:    &StatusCommand{globals: &globals, version: version},
		Prune:     &PruneCommand{globals: &globals, version: version},
		Purge:     &PurgeCommand{globals: &globals, version: version},
		Dashboard: &DashboardCommand{globals: &globals, version: version},
	}

	parser.AddCommand("track", "Record one focused-window sample", "Probe the focused window title and idle time once, and fold the sample into the entry log. Intended to run from a scheduler about once per minute.", cmds.Track)
	parser.AddCommand("view", "List recorded entries", "Render stored entries as a table, optionally filtered by time range and paged.", cmds.View)
	parser.AddCommand("timecard", "Summarize a day as punches", "Aggregate a day's entries into punches grouped by normalized activity, with a by-group duration summary.", cmds.Timecard)
	parser.AddCommand("active", "Show the current active streak", "Report how long the user has been continuously active, tolerating gaps under two minutes.", cmds.Active)
	parser.AddCommand("status", "Show database statistics", "Show entry counts, database size, time range, and top activity groups.", cmds.Status)
	parser.AddCommand("prune", "Delete old entries", "Delete closed entries older than the retention period.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL punchclock data", "Delete ALL punchclock data. Destructive operation with safety prompt.", cmds.Purge)
	parser.AddCommand("dashboard", "Live terminal dashboard", "Full-screen dashboard showing the active streak and today's punches, refreshing every 30 seconds.", cmds.Dashboard)

	return parser, &globals, cmds
}

// Run is the main entry point for the punchclock CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the
// matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("punchclock %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
