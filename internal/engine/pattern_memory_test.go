package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternMemoryRebuildCounts(t *testing.T) {
	m := NewPatternMemory()
	m.Rebuild(roundsFrom("TTXTTXT"))

	counts, ok := m.Counts("TTX")
	require.True(t, ok)
	assert.Equal(t, GramCounts{High: 2}, counts)

	counts, ok = m.Counts("TXTTX")
	require.True(t, ok)
	assert.Equal(t, GramCounts{High: 1}, counts)

	_, ok = m.Counts("XTTXT")
	assert.False(t, ok, "a gram ending at the last round has no follower")
}

func TestPatternMemoryCountsMatchTransitions(t *testing.T) {
	rounds := roundsFrom("TXXTTTXTXXTXTTTXXTXT")
	m := NewPatternMemory()
	m.Rebuild(rounds)

	table := m.Snapshot()
	for _, n := range GramLengths {
		sum := 0
		for _, counts := range table[n] {
			sum += counts.Total()
		}
		assert.Equal(t, len(rounds)-n, sum, "n=%d", n)
	}
}

func TestPatternMemoryRebuildIsDeterministic(t *testing.T) {
	rounds := roundsFrom("TXXTTTXTXXTXTTTXXTXT")
	a, b := NewPatternMemory(), NewPatternMemory()
	a.Rebuild(rounds)
	b.Rebuild(rounds)
	b.Rebuild(rounds)

	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestPatternMemorySnapshotIsDetached(t *testing.T) {
	m := NewPatternMemory()
	m.Rebuild(roundsFrom("TTTTTT"))

	snapshot := m.Snapshot()
	snapshot[3]["TTT"] = GramCounts{Low: 100}

	counts, _ := m.Counts("TTT")
	assert.Equal(t, GramCounts{High: 3}, counts)
}

func TestPatternMemoryLookup(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		rounds := roundsFrom("TTTTT")
		m := NewPatternMemory()
		m.Rebuild(rounds)

		vote := m.Lookup(rounds, highRand())
		assert.Empty(t, vote.Outcome)
		assert.Zero(t, vote.Weight)
	})

	t.Run("longest gram wins", func(t *testing.T) {
		rounds := roundsFrom("TTTTTTT")
		m := NewPatternMemory()
		m.Rebuild(rounds)

		vote := m.Lookup(rounds, highRand())
		assert.Equal(t, hi, vote.Outcome)
		assert.InDelta(t, 1.0, vote.Confidence, 1e-9)
		assert.InDelta(t, 0.5, vote.Weight, 1e-9)
		assert.Equal(t, "5-gram (TTTTT→T)", vote.Note)
	})

	t.Run("falls back to shorter gram", func(t *testing.T) {
		// The 5- and 4-gram tails never occurred with a follower; XTX did.
		rounds := roundsFrom("XTXXTTTXTX")
		m := NewPatternMemory()
		m.Rebuild(rounds)

		vote := m.Lookup(rounds, highRand())
		assert.Equal(t, lo, vote.Outcome)
		assert.Equal(t, "3-gram (XTX→X)", vote.Note)
		assert.InDelta(t, 0.5, vote.Weight, 1e-9)
	})

	t.Run("tie uses random source", func(t *testing.T) {
		rounds := roundsFrom("XXXTTXXXTXTXXT")
		m := NewPatternMemory()
		m.Rebuild(rounds)

		counts, ok := m.Counts("XXT")
		require.True(t, ok)
		require.Equal(t, GramCounts{High: 1, Low: 1}, counts)

		vote := m.Lookup(rounds, highRand())
		assert.Equal(t, hi, vote.Outcome)
		assert.InDelta(t, 0.39, vote.Weight, 1e-9)

		vote = m.Lookup(rounds, lowRand())
		assert.Equal(t, lo, vote.Outcome)
	})

	t.Run("no match", func(t *testing.T) {
		rounds := roundsFrom("TTTTTTX")
		m := NewPatternMemory()
		m.Rebuild(rounds)

		vote := m.Lookup(rounds, highRand())
		assert.Empty(t, vote.Outcome)
		assert.Equal(t, "no n-gram match", vote.Note)
	})
}
