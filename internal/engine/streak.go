package engine

import (
	"math"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

const streakWindow = 20

// StreakReport summarizes the current run and the recent switching regime.
type StreakReport struct {
	Streak    int
	Current   domain.Outcome
	Switches  int
	Imbalance float64
	Entropy   float64
	BreakProb float64
}

// DetectStreak measures the current run and estimates how likely it is to
// break on the next round. BreakProb is always within [0, 1].
func DetectStreak(rounds []domain.Round) StreakReport {
	if len(rounds) == 0 {
		return StreakReport{}
	}

	current := rounds[len(rounds)-1].Outcome
	streak := 1
	for i := len(rounds) - 2; i >= 0 && rounds[i].Outcome == current; i-- {
		streak++
	}

	recent := outcomesOf(tail(rounds, streakWindow))
	switches := countSwitches(recent)
	high := countOutcome(recent, domain.OutcomeHigh)
	low := len(recent) - high
	imbalance := math.Abs(float64(high-low)) / float64(len(recent))
	entropy := binaryEntropy(float64(high) / float64(len(recent)))

	var breakProb float64
	switch {
	case streak >= 9:
		breakProb = math.Min(0.70+float64(switches)/20+imbalance*0.2, 0.95)
	case streak >= 6:
		breakProb = math.Min(0.45+float64(switches)/15+imbalance*0.3, 0.90)
	case streak >= 4 && switches >= 9:
		breakProb = 0.40
	}
	if entropy < 0.8 {
		breakProb += 0.10
	}

	return StreakReport{
		Streak:    streak,
		Current:   current,
		Switches:  switches,
		Imbalance: imbalance,
		Entropy:   entropy,
		BreakProb: clamp(breakProb, 0, 1),
	}
}

func binaryEntropy(p float64) float64 {
	var h float64
	if p > 0 {
		h -= p * math.Log2(p)
	}
	if q := 1 - p; q > 0 {
		h -= q * math.Log2(q)
	}
	return h
}

// noisyRegime reports whether recent rounds are too erratic to trust.
func noisyRegime(rounds []domain.Round, report StreakReport) bool {
	return countSwitches(outcomesOf(tail(rounds, streakWindow))) >= 12 || report.Streak >= 11
}
