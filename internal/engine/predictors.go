package engine

import (
	"math"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

// antiStreak votes against the most recent outcome.
func antiStreak(outs []domain.Outcome) domain.Outcome {
	return outs[len(outs)-1].Opposite()
}

// breakOrFollow defers to the streak detector during long runs.
func breakOrFollow(report StreakReport) domain.Outcome {
	if report.BreakProb > 0.8 {
		return report.Current.Opposite()
	}
	return report.Current
}

// TrendVote weighs the last 20 outcomes with exponential recency.
func TrendVote(rounds []domain.Round) domain.Outcome {
	if len(rounds) < minModuleHistory {
		return domain.OutcomeNone
	}
	report := DetectStreak(rounds)
	if report.Streak >= 6 {
		return breakOrFollow(report)
	}

	outs := outcomesOf(tail(rounds, 20))
	var high, low float64
	for i, o := range outs {
		w := math.Pow(1.3, float64(i))
		if o == domain.OutcomeHigh {
			high += w
		} else {
			low += w
		}
	}
	if total := high + low; total > 0 && math.Abs(high-low)/total > 0.3 {
		if high > low {
			return domain.OutcomeHigh
		}
		return domain.OutcomeLow
	}
	return antiStreak(outs)
}

// ShortPatternVote looks for a dominant 4-gram in the last 10 outcomes.
func ShortPatternVote(rounds []domain.Round) domain.Outcome {
	if len(rounds) < minModuleHistory {
		return domain.OutcomeNone
	}
	report := DetectStreak(rounds)
	if report.Streak >= 5 {
		return breakOrFollow(report)
	}

	outs := outcomesOf(tail(rounds, 10))
	last := outs[len(outs)-1]
	if gram, count := topGram(outs, 4); count >= 3 {
		if gram[len(gram)-1:] != last.Symbol() {
			return last.Opposite()
		}
		return last
	}
	return antiStreak(outs)
}

// MeanDeviationVote bets on the minority side of the last 15 outcomes once
// they are lopsided enough.
func MeanDeviationVote(rounds []domain.Round) domain.Outcome {
	if len(rounds) < minModuleHistory {
		return domain.OutcomeNone
	}
	outs := outcomesOf(tail(rounds, 15))
	high := countOutcome(outs, domain.OutcomeHigh)
	low := len(outs) - high
	imbalance := math.Abs(float64(high-low)) / float64(len(outs))
	if imbalance < 0.3 {
		return antiStreak(outs)
	}
	if high > low {
		return domain.OutcomeLow
	}
	return domain.OutcomeHigh
}

// RecentSwitchVote counts switches over the last 12 outcomes. Both regimes
// resolve to the anti-streak call.
func RecentSwitchVote(rounds []domain.Round) domain.Outcome {
	if len(rounds) < minModuleHistory {
		return domain.OutcomeNone
	}
	outs := outcomesOf(tail(rounds, 12))
	if countSwitches(outs) >= 7 {
		return antiStreak(outs)
	}
	return antiStreak(outs)
}
