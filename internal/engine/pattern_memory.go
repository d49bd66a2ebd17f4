package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

// GramLengths are the n-gram sizes tracked by PatternMemory, longest first
// in lookup order.
var GramLengths = []int{5, 4, 3}

const minPatternHistory = 6

// GramCounts tallies which outcome followed a gram.
type GramCounts struct {
	High int `json:"T"`
	Low  int `json:"X"`
}

func (c GramCounts) Total() int {
	return c.High + c.Low
}

// PatternTable maps gram length to gram key (outcome symbols) to counts.
type PatternTable map[int]map[string]GramCounts

func (t PatternTable) clone() PatternTable {
	out := make(PatternTable, len(t))
	for n, grams := range t {
		copied := make(map[string]GramCounts, len(grams))
		for key, counts := range grams {
			copied[key] = counts
		}
		out[n] = copied
	}
	return out
}

// PatternMemory is an n-gram frequency table over the outcome sequence. It
// is rebuilt from scratch whenever history changes.
type PatternMemory struct {
	table PatternTable
}

func NewPatternMemory() *PatternMemory {
	return &PatternMemory{table: PatternTable{}}
}

func (m *PatternMemory) Rebuild(rounds []domain.Round) {
	table := PatternTable{}
	outs := outcomesOf(rounds)
	for _, n := range GramLengths {
		for i := 0; i+n < len(outs); i++ {
			if table[n] == nil {
				table[n] = map[string]GramCounts{}
			}
			key := gramKey(outs[i : i+n])
			counts := table[n][key]
			if outs[i+n] == domain.OutcomeHigh {
				counts.High++
			} else {
				counts.Low++
			}
			table[n][key] = counts
		}
	}
	m.table = table
}

// Counts returns the tally for a gram key, if any.
func (m *PatternMemory) Counts(key string) (GramCounts, bool) {
	counts, ok := m.table[len(key)][key]
	return counts, ok
}

// Snapshot returns a deep copy of the table.
func (m *PatternMemory) Snapshot() PatternTable {
	return m.table.clone()
}

// PatternVote is the pattern-memory signal. Outcome is OutcomeNone when no
// gram matched.
type PatternVote struct {
	Outcome    domain.Outcome
	Weight     float64
	Confidence float64
	Note       string
}

// Lookup matches the most recent outcomes against the table, longest gram
// first, and votes for the majority follower.
func (m *PatternMemory) Lookup(rounds []domain.Round, rng *rand.Rand) PatternVote {
	if len(rounds) < minPatternHistory {
		return PatternVote{Note: "sequence too short"}
	}

	window := outcomesOf(tail(rounds, GramLengths[0]))
	for _, n := range GramLengths {
		key := gramKey(tail(window, n))
		counts, ok := m.table[n][key]
		if !ok || counts.Total() == 0 {
			continue
		}

		var vote domain.Outcome
		switch {
		case counts.High == counts.Low:
			vote = randomOutcome(rng)
		case counts.High > counts.Low:
			vote = domain.OutcomeHigh
		default:
			vote = domain.OutcomeLow
		}
		confidence := float64(max(counts.High, counts.Low)) / float64(counts.Total())

		return PatternVote{
			Outcome:    vote,
			Weight:     0.28 + confidence*0.22,
			Confidence: confidence,
			Note:       fmt.Sprintf("%d-gram (%s→%s)", n, key, vote.Symbol()),
		}
	}

	return PatternVote{Note: "no n-gram match"}
}
