package engine

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

func outcomesOf(rounds []domain.Round) []domain.Outcome {
	outs := make([]domain.Outcome, len(rounds))
	for i, r := range rounds {
		outs[i] = r.Outcome
	}
	return outs
}

func totalsOf(rounds []domain.Round) []float64 {
	totals := make([]float64, len(rounds))
	for i, r := range rounds {
		totals[i] = float64(r.Total)
	}
	return totals
}

// tail returns the last n elements of s, or all of s when shorter.
func tail[T any](s []T, n int) []T {
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

func countSwitches(outs []domain.Outcome) int {
	switches := 0
	for i := 1; i < len(outs); i++ {
		if outs[i] != outs[i-1] {
			switches++
		}
	}
	return switches
}

func countOutcome(outs []domain.Outcome, want domain.Outcome) int {
	n := 0
	for _, o := range outs {
		if o == want {
			n++
		}
	}
	return n
}

func allEqual(outs []domain.Outcome, want domain.Outcome) bool {
	for _, o := range outs {
		if o != want {
			return false
		}
	}
	return true
}

func meanVariance(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, sq / float64(len(values))
}

func gramKey(outs []domain.Outcome) string {
	var b strings.Builder
	for _, o := range outs {
		b.WriteString(o.Symbol())
	}
	return b.String()
}

// topGram returns the most frequent n-gram in outs. Ties go to the gram
// seen first.
func topGram(outs []domain.Outcome, n int) (string, int) {
	counts := map[string]int{}
	var order []string
	for i := 0; i+n <= len(outs); i++ {
		key := gramKey(outs[i : i+n])
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	best, bestCount := "", 0
	for _, key := range order {
		if counts[key] > bestCount {
			best, bestCount = key, counts[key]
		}
	}
	return best, bestCount
}

func randomOutcome(rng *rand.Rand) domain.Outcome {
	if rng.Float64() < 0.5 {
		return domain.OutcomeHigh
	}
	return domain.OutcomeLow
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func fmtRound(x float64) string {
	return strconv.FormatFloat(round2(x), 'f', -1, 64)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
