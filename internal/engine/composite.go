package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

// CompositeVote is the rule table's call and the rule that produced it.
type CompositeVote struct {
	Outcome domain.Outcome
	Reason  string
}

type literalRule struct {
	pattern []domain.Outcome
	vote    domain.Outcome
	reason  string
}

var (
	hi = domain.OutcomeHigh
	lo = domain.OutcomeLow

	literalRules = []literalRule{
		{pattern: []domain.Outcome{hi, lo, hi, lo}, vote: hi, reason: "1T1X alternating pattern"},
		{pattern: []domain.Outcome{lo, hi, lo, hi}, vote: lo, reason: "1X1T alternating pattern"},
		{pattern: []domain.Outcome{hi, hi, lo, lo, hi}, vote: lo, reason: "2T2X1T pattern"},
		{pattern: []domain.Outcome{lo, lo, hi, hi, lo}, vote: hi, reason: "2X2T1X pattern"},
	}
)

const (
	compositeWindow       = 7
	compositeLongRunFloor = 10
	compositeMeanCut      = 10.5
	compositeVarianceCut  = 8
)

// CompositeRules evaluates an ordered rule table, first match wins.
func CompositeRules(rounds []domain.Round, rng *rand.Rand) CompositeVote {
	if len(rounds) < minModuleHistory {
		return CompositeVote{Outcome: randomOutcome(rng), Reason: "insufficient history"}
	}

	outs := outcomesOf(rounds)
	for _, rule := range literalRules {
		if len(outs) >= len(rule.pattern) && slices.Equal(tail(outs, len(rule.pattern)), rule.pattern) {
			return CompositeVote{Outcome: rule.vote, Reason: rule.reason}
		}
	}

	recent := tail(rounds, compositeWindow)
	recentOuts := outcomesOf(recent)
	if len(rounds) >= compositeLongRunFloor {
		if allEqual(recentOuts, hi) {
			return CompositeVote{Outcome: lo, Reason: "long High run"}
		}
		if allEqual(recentOuts, lo) {
			return CompositeVote{Outcome: hi, Reason: "long Low run"}
		}
	}

	mean, variance := meanVariance(totalsOf(recent))
	switch {
	case mean > compositeMeanCut && variance > compositeVarianceCut:
		return CompositeVote{Outcome: lo, Reason: fmt.Sprintf("high mean, high variance (%s)", fmtRound(variance))}
	case mean > compositeMeanCut:
		return CompositeVote{Outcome: hi, Reason: fmt.Sprintf("high mean (%s)", fmtRound(mean))}
	case mean < compositeMeanCut && variance > compositeVarianceCut:
		return CompositeVote{Outcome: hi, Reason: fmt.Sprintf("low mean, high variance (%s)", fmtRound(variance))}
	case mean < compositeMeanCut:
		return CompositeVote{Outcome: lo, Reason: fmt.Sprintf("low mean (%s)", fmtRound(mean))}
	}

	high := countOutcome(recentOuts, hi)
	low := len(recentOuts) - high
	switch {
	case high > low+2:
		return CompositeVote{Outcome: lo, Reason: "High-heavy, rebalancing"}
	case low > high+2:
		return CompositeVote{Outcome: hi, Reason: "Low-heavy, rebalancing"}
	default:
		return CompositeVote{Outcome: randomOutcome(rng), Reason: "perfectly balanced"}
	}
}
