package tracker

import (
	"sort"
	"time"

	"github.com/runnerr0/punchclock/internal/storage"
)

// Punch is one unbroken work session assembled from a contiguous run of
// closed entries whose gaps stay below IdleThreshold. Punches are rebuilt on
// every report and never persisted.
type Punch struct {
	Start time.Time
	Stop  time.Time
	// Group is the normalized group with the largest accumulated duration
	// among the merged entries, and GroupDur that duration.
	Group    string
	GroupDur time.Duration
}

// Duration is the full span of the punch, idle gaps included.
func (p *Punch) Duration() time.Duration { return p.Stop.Sub(p.Start) }

// GroupTotal pairs a normalized group with its accumulated duration.
type GroupTotal struct {
	Group string
	Dur   time.Duration
}

// tally accumulates per-group durations in first-seen order. The winner scan
// is a strict maximum over that order, so ties go to the earliest group; an
// unordered map here would silently reshuffle report output.
type tally struct {
	order []string
	dur   map[string]time.Duration
}

func newTally() *tally {
	return &tally{dur: make(map[string]time.Duration)}
}

func (t *tally) add(group string, d time.Duration) {
	if _, seen := t.dur[group]; !seen {
		t.order = append(t.order, group)
	}
	t.dur[group] += d
}

func (t *tally) max() (string, time.Duration) {
	var winner string
	var best time.Duration
	for _, g := range t.order {
		if t.dur[g] > best {
			winner, best = g, t.dur[g]
		}
	}
	return winner, best
}

func (t *tally) totals() []GroupTotal {
	out := make([]GroupTotal, 0, len(t.order))
	for _, g := range t.order {
		out = append(out, GroupTotal{Group: g, Dur: t.dur[g]})
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Aggregate regroups a day's entries into punches and per-group duration
// totals. Entries may arrive in any order; they are processed chronologically
// by id. Open entries contribute to neither output.
//
// Adjacent entries merge into the current punch while the gap between the
// punch's stop and the entry's start is below IdleThreshold; each merge
// recomputes the punch's winning group from its insertion-ordered tally.
func Aggregate(entries []storage.Entry) ([]Punch, []GroupTotal) {
	ordered := make([]storage.Entry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	totals := newTally()
	var punches []Punch
	var current *tally

	for _, e := range ordered {
		if e.Open() {
			continue
		}

		group := Classify(e.Title)
		totals.add(group, e.Duration())

		if len(punches) > 0 && absDuration(e.Start.Sub(punches[len(punches)-1].Stop)) < IdleThreshold {
			p := &punches[len(punches)-1]
			p.Stop = e.Stop
			current.add(group, e.Duration())
			p.Group, p.GroupDur = current.max()
			continue
		}

		current = newTally()
		current.add(group, e.Duration())
		punches = append(punches, Punch{
			Start:    e.Start,
			Stop:     e.Stop,
			Group:    group,
			GroupDur: e.Duration(),
		})
	}

	return punches, totals.totals()
}

// ReportPunches filters punches down to the rows a timecard prints: sessions
// whose full span exceeds IdleThreshold.
func ReportPunches(punches []Punch) []Punch {
	out := []Punch{}
	for _, p := range punches {
		if p.Duration() > IdleThreshold {
			out = append(out, p)
		}
	}
	return out
}

// ReportTotals filters group totals to those at or above GroupThreshold and
// sorts them by descending duration. The sort is stable so equal totals keep
// their first-seen order.
func ReportTotals(totals []GroupTotal) []GroupTotal {
	out := []GroupTotal{}
	for _, g := range totals {
		if g.Dur >= GroupThreshold {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Dur > out[j].Dur })
	return out
}
