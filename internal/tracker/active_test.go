package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveDuration_EmptyLog(t *testing.T) {
	d, err := ActiveDuration(context.Background(), newMemLog(), t0)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d)
}

func TestActiveDuration_SingleOpenEntry(t *testing.T) {
	log := newMemLog()
	log.seed("main.py - vim", t0, time.Time{})

	now := t0.Add(10 * time.Minute)
	d, err := ActiveDuration(context.Background(), log, now)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, d)
}

func TestActiveDuration_StreakAcrossSmallGaps(t *testing.T) {
	log := newMemLog()
	// Three entries with 60s gaps between them, all within ActiveWindow.
	log.seed("a", t0, t0.Add(5*time.Minute))
	log.seed("b", t0.Add(6*time.Minute), t0.Add(12*time.Minute))
	log.seed("c", t0.Add(13*time.Minute), t0.Add(20*time.Minute))

	now := t0.Add(21 * time.Minute)
	d, err := ActiveDuration(context.Background(), log, now)
	require.NoError(t, err)
	assert.Equal(t, 21*time.Minute, d)
}

func TestActiveDuration_BreakEndsStreak(t *testing.T) {
	log := newMemLog()
	log.seed("a", t0, t0.Add(5*time.Minute))
	// Ten-minute gap: the streak starts with the second entry.
	log.seed("b", t0.Add(15*time.Minute), t0.Add(25*time.Minute))

	now := t0.Add(26 * time.Minute)
	d, err := ActiveDuration(context.Background(), log, now)
	require.NoError(t, err)
	assert.Equal(t, 11*time.Minute, d)
}

func TestActiveDuration_GapAtWindowBoundaryEndsStreak(t *testing.T) {
	log := newMemLog()
	log.seed("a", t0, t0.Add(5*time.Minute))
	// Exactly ActiveWindow between stop and the next start: not a streak.
	log.seed("b", t0.Add(5*time.Minute).Add(ActiveWindow), t0.Add(15*time.Minute))

	now := t0.Add(15 * time.Minute)
	d, err := ActiveDuration(context.Background(), log, now)
	require.NoError(t, err)
	assert.Equal(t, now.Sub(t0.Add(5*time.Minute).Add(ActiveWindow)), d)
}

func TestActiveDuration_NeverExceedsOldestStreakStart(t *testing.T) {
	log := newMemLog()
	log.seed("a", t0, t0.Add(time.Minute))
	log.seed("b", t0.Add(90*time.Second), t0.Add(4*time.Minute))

	now := t0.Add(5 * time.Minute)
	d, err := ActiveDuration(context.Background(), log, now)
	require.NoError(t, err)
	assert.LessOrEqual(t, d, now.Sub(t0))
	assert.Equal(t, now.Sub(t0), d)
}

func TestActiveDuration_OpenEntriesAlwaysJoinStreak(t *testing.T) {
	log := newMemLog()
	log.seed("a", t0, t0.Add(2*time.Minute))
	log.seed("b", t0.Add(3*time.Minute), time.Time{})

	now := t0.Add(10 * time.Minute)
	d, err := ActiveDuration(context.Background(), log, now)
	require.NoError(t, err)
	// The open entry joins unconditionally, then the gap to "a" is checked
	// against its start.
	assert.Equal(t, 10*time.Minute, d)
}
