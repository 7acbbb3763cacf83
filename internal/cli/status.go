package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/runnerr0/punchclock/internal/render"
	"github.com/runnerr0/punchclock/internal/storage"
	"github.com/runnerr0/punchclock/internal/tracker"
)

const topGroupCount = 5

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string      `json:"version"`
	DatabasePath      string      `json:"database_path"`
	DatabaseSizeBytes int64       `json:"database_size_bytes"`
	TotalEntries      int64       `json:"total_entries"`
	OpenEntry         string      `json:"open_entry,omitempty"`
	OldestEntry       string      `json:"oldest_entry,omitempty"`
	NewestEntry       string      `json:"newest_entry,omitempty"`
	TopGroups         []groupJSON `json:"top_groups"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
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

	dbPath, err := cfg.DBPath()
	if err != nil {
		return err
	}

	return c.executeWithStore(store, db, dbPath)
}

// executeWithStore runs status against a provided store and db (for testing).
func (c *StatusCommand) executeWithStore(store storage.Store, db *sql.DB, dbPath string) error {
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	// Top groups come from a full scan so they reflect normalized durations,
	// not raw title counts.
	entries, err := store.Scan(ctx, storage.ScanQuery{})
	if err != nil {
		return fmt.Errorf("scan entries: %w", err)
	}
	_, totals := tracker.Aggregate(entries)
	sort.SliceStable(totals, func(i, j int) bool { return totals[i].Dur > totals[j].Dur })
	if len(totals) > topGroupCount {
		totals = totals[:topGroupCount]
	}

	dbSize := databaseSize(db, dbPath)

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(stats, dbPath, dbSize, totals)
	}
	return c.printHuman(stats, dbPath, dbSize, totals)
}

func (c *StatusCommand) printHuman(stats *storage.Stats, dbPath string, dbSize int64, totals []tracker.GroupTotal) error {
	fmt.Println("Punchclock Status")
	fmt.Println("=================")
	fmt.Printf("Version:   %s\n", c.version)
	fmt.Printf("Database:  %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Entries:   %d\n", stats.TotalEntries)

	if stats.OpenEntry != nil {
		fmt.Printf("Open:      %s (since %s)\n",
			stats.OpenEntry.Title,
			stats.OpenEntry.Start.Local().Format("15:04"))
	}

	if stats.TotalEntries > 0 {
		fmt.Printf("Oldest:    %s\n", stats.Oldest.Local().Format("2006-01-02"))
		fmt.Printf("Newest:    %s\n", stats.Newest.Local().Format("2006-01-02"))
	}

	if len(totals) > 0 {
		fmt.Println()
		fmt.Println("Top Groups:")
		for _, g := range totals {
			fmt.Printf("  %-30s %s\n", g.Group, render.Duration(g.Dur))
		}
	}

	return nil
}

func (c *StatusCommand) printJSON(stats *storage.Stats, dbPath string, dbSize int64, totals []tracker.GroupTotal) error {
	out := statusJSON{
		Version:           c.version,
		DatabasePath:      dbPath,
		DatabaseSizeBytes: dbSize,
		TotalEntries:      stats.TotalEntries,
		TopGroups:         make([]groupJSON, len(totals)),
	}

	if stats.OpenEntry != nil {
		out.OpenEntry = stats.OpenEntry.Title
	}
	if stats.TotalEntries > 0 {
		out.OldestEntry = stats.Oldest.UTC().Format(time.RFC3339)
		out.NewestEntry = stats.Newest.UTC().Format(time.RFC3339)
	}

	for i, g := range totals {
		out.TopGroups[i] = groupJSON{Group: g.Group, Seconds: int64(g.Dur.Seconds())}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// databaseSize returns the database file size in bytes. For on-disk
// databases it uses os.Stat; for in-memory databases it falls back to
// page_count * page_size.
func databaseSize(db *sql.DB, dbPath string) int64 {
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}

	var pageCount, pageSize int64
	if err := db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
