package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func TestRecord_EmptyLogCreates(t *testing.T) {
	log := newMemLog()

	action, entry, err := Record(context.Background(), log, "main.py - vim", t0)
	require.NoError(t, err)

	assert.Equal(t, ActionCreated, action)
	assert.Equal(t, "main.py - vim", entry.Title)
	assert.Equal(t, t0, entry.Start)
	assert.True(t, entry.Open())
}

func TestRecord_SameTitleExtendsAcrossPolls(t *testing.T) {
	log := newMemLog()
	ctx := context.Background()

	// Samples with identical title spaced one minute apart must collapse
	// into a single entry stopping at the last sample.
	_, _, err := Record(ctx, log, "main.py - vim", t0)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		action, _, err := Record(ctx, log, "main.py - vim", t0.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, ActionExtended, action)
	}

	require.Len(t, log.entries, 1)
	assert.Equal(t, t0, log.entries[0].Start)
	assert.Equal(t, t0.Add(5*time.Minute), log.entries[0].Stop)
}

func TestRecord_SameTitleAtWindowBoundaryExtends(t *testing.T) {
	log := newMemLog()
	ctx := context.Background()

	_, _, err := Record(ctx, log, "main.py - vim", t0)
	require.NoError(t, err)

	// Exactly StaticWindow after the open entry's start still extends.
	action, _, err := Record(ctx, log, "main.py - vim", t0.Add(StaticWindow))
	require.NoError(t, err)
	assert.Equal(t, ActionExtended, action)
	require.Len(t, log.entries, 1)
}

func TestRecord_SameTitleBeyondWindowBackfills(t *testing.T) {
	log := newMemLog()
	ctx := context.Background()

	_, _, err := Record(ctx, log, "main.py - vim", t0)
	require.NoError(t, err)

	// Same title but far past the window: the stale open entry is charged
	// the default minute and a new one opens.
	action, entry, err := Record(ctx, log, "main.py - vim", t0.Add(10*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, ActionBackfilled, action)
	require.Len(t, log.entries, 2)
	assert.Equal(t, t0.Add(DefaultEntryLength), log.entries[0].Stop)
	assert.Equal(t, t0.Add(10*time.Minute), entry.Start)
	assert.True(t, entry.Open())
}

func TestRecord_TitleChangeBackfillsOpenEntry(t *testing.T) {
	log := newMemLog()
	ctx := context.Background()

	_, _, err := Record(ctx, log, "main.py - vim", t0)
	require.NoError(t, err)

	action, entry, err := Record(ctx, log, "YouTube - video - Chrome", t0.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, ActionBackfilled, action)
	require.Len(t, log.entries, 2)

	// The prior entry is never left open: it stops at exactly start+60s.
	prior := log.entries[0]
	assert.False(t, prior.Open())
	assert.Equal(t, t0.Add(DefaultEntryLength), prior.Stop)

	assert.Equal(t, "YouTube - video - Chrome", entry.Title)
	assert.True(t, entry.Open())
}

func TestRecord_TitleChangeAfterClosedEntryJustCreates(t *testing.T) {
	log := newMemLog()
	log.seed("main.py - vim", t0, t0.Add(5*time.Minute))

	action, _, err := Record(context.Background(), log, "README.md - vim", t0.Add(20*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, ActionCreated, action)
	require.Len(t, log.entries, 2)
	// Closed entries are never touched by a mismatched sample.
	assert.Equal(t, t0.Add(5*time.Minute), log.entries[0].Stop)
}

func TestRecord_RawTitleComparedNotGroup(t *testing.T) {
	log := newMemLog()
	ctx := context.Background()

	// Both titles normalize to the same group, but the raw titles differ,
	// so the switch is still recorded.
	_, _, err := Record(ctx, log, "main.py - vim", t0)
	require.NoError(t, err)

	action, _, err := Record(ctx, log, "other.py - vim", t0.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, ActionBackfilled, action)
	assert.Len(t, log.entries, 2)
}

func TestInactive_TitleSet(t *testing.T) {
	inactive := []string{"i3lock", "Lock Screen"}

	assert.True(t, Inactive("i3lock", 0, inactive))
	assert.True(t, Inactive("Lock Screen", 0, inactive))
	assert.False(t, Inactive("main.py - vim", 0, inactive))
}

func TestInactive_IdleThreshold(t *testing.T) {
	assert.False(t, Inactive("main.py - vim", 299*time.Second, nil))
	assert.False(t, Inactive("main.py - vim", IdleThreshold, nil))
	// 400s of reported idle marks the user inactive regardless of title.
	assert.True(t, Inactive("main.py - vim", 400*time.Second, nil))
}
