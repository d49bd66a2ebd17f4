package engine

import (
	"math"
	"math/rand/v2"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

// constSource makes tie-breaks deterministic: 0 always draws High and
// math.MaxUint64 always draws Low.
type constSource uint64

func (s constSource) Uint64() uint64 { return uint64(s) }

func highRand() *rand.Rand { return rand.New(constSource(0)) }

func lowRand() *rand.Rand { return rand.New(constSource(math.MaxUint64)) }

// roundsFrom builds rounds from T/X symbols with sessions starting at 100.
// T rounds total 12 and X rounds total 9 unless totals are given.
func roundsFrom(symbols string, totals ...int) []domain.Round {
	rounds := make([]domain.Round, 0, len(symbols))
	for i, c := range symbols {
		r := domain.Round{Session: domain.SessionID(100 + i)}
		if c == 'T' {
			r.Outcome, r.Dice, r.Total = domain.OutcomeHigh, [3]int{4, 4, 4}, 12
		} else {
			r.Outcome, r.Dice, r.Total = domain.OutcomeLow, [3]int{3, 3, 3}, 9
		}
		if i < len(totals) {
			r.Total = totals[i]
		}
		rounds = append(rounds, r)
	}
	return rounds
}

func rawFrom(rounds []domain.Round) []domain.RawRound {
	rows := make([]domain.RawRound, 0, len(rounds))
	for _, r := range rounds {
		rows = append(rows, domain.RawRound{
			"session": float64(r.Session),
			"dice":    []any{float64(r.Dice[0]), float64(r.Dice[1]), float64(r.Dice[2])},
			"total":   float64(r.Total),
			"result":  string(r.Outcome),
		})
	}
	return rows
}

func randomSymbols(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		if rng.IntN(2) == 0 {
			b[i] = 'T'
		} else {
			b[i] = 'X'
		}
	}
	return string(b)
}
