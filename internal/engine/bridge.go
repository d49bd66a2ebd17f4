package engine

import (
	"fmt"
	"math"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

const (
	minModuleHistory = 4
	bridgeWindow     = 25
)

// BridgeVote is the bridge-break combinator's call: break the current run
// when Prob exceeds 0.7, otherwise follow it.
type BridgeVote struct {
	Outcome domain.Outcome
	Prob    float64
	Reason  string
}

func BridgeBreak(rounds []domain.Round) BridgeVote {
	if len(rounds) < minModuleHistory {
		return BridgeVote{Reason: "insufficient data"}
	}

	report := DetectStreak(rounds)
	recent := tail(rounds, bridgeWindow)
	recentOuts := outcomesOf(recent)
	_, variance := meanVariance(totalsOf(recent))
	_, repeats := topGram(recentOuts, 4)

	prob := report.BreakProb
	var reason string
	switch {
	case report.Streak >= 7:
		prob = math.Min(prob+0.20, 0.95)
		reason = fmt.Sprintf("[break] long %s run of %d", report.Current.Name(), report.Streak)
	case report.Streak >= 5 && variance > 9:
		prob = math.Min(prob+0.15, 0.90)
		reason = fmt.Sprintf("[break] high score variance (%s)", fmtRound(variance))
	case repeats >= 4 && allEqual(tail(recentOuts, 6), report.Current):
		prob = math.Min(prob+0.10, 0.85)
		reason = "[break] strong repeating pattern"
	default:
		prob = math.Max(prob-0.10, 0.20)
		reason = "[follow] no break signal"
	}

	vote := report.Current
	if prob > 0.7 {
		vote = report.Current.Opposite()
	}

	return BridgeVote{Outcome: vote, Prob: prob, Reason: reason}
}
