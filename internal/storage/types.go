package storage

import "time"

// Entry is one recorded focus interval: the raw window title plus the span
// it stayed focused. A zero Stop means the entry is still open. At most one
// entry may be open at a time, and it is always the one with the largest id.
type Entry struct {
	ID    int64
	Title string
	Start time.Time
	Stop  time.Time
}

// Open reports whether the entry has not been closed yet.
func (e *Entry) Open() bool { return e.Stop.IsZero() }

// Duration returns the closed span length, or zero for an open entry.
func (e *Entry) Duration() time.Duration {
	if e.Open() {
		return 0
	}
	return e.Stop.Sub(e.Start)
}

// ScanQuery bounds a Scan over the entry log.
type ScanQuery struct {
	Since   time.Time // inclusive lower bound on start; zero means unbounded
	Until   time.Time // exclusive upper bound on start; zero means unbounded
	Limit   int       // maximum rows; <= 0 means no limit
	Reverse bool      // newest first (id desc); default is oldest first
}

// Stats holds aggregate statistics about the entry log.
type Stats struct {
	TotalEntries int64
	OpenEntry    *Entry
	Oldest       time.Time
	Newest       time.Time
}
