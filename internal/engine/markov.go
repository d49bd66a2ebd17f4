package engine

import "github.com/bnema/taixiu-predictor/internal/domain"

const minMarkovHistory = 5

// Transition holds next-outcome probabilities conditioned on the latest outcome.
type Transition struct {
	High float64
	Low  float64
}

func uniformTransition() Transition {
	return Transition{High: 0.5, Low: 0.5}
}

// Vote converts the estimate to a binary call; equal probabilities vote Low.
func (t Transition) Vote() domain.Outcome {
	if t.High > t.Low {
		return domain.OutcomeHigh
	}
	return domain.OutcomeLow
}

// EstimateTransition counts first-order transitions over the whole history.
func EstimateTransition(rounds []domain.Round) Transition {
	if len(rounds) < minMarkovHistory {
		return uniformTransition()
	}

	counts := map[domain.Outcome]map[domain.Outcome]int{
		domain.OutcomeHigh: {},
		domain.OutcomeLow:  {},
	}
	for i := 1; i < len(rounds); i++ {
		from := rounds[i-1].Outcome
		if counts[from] == nil {
			continue
		}
		counts[from][rounds[i].Outcome]++
	}

	from := counts[rounds[len(rounds)-1].Outcome]
	total := from[domain.OutcomeHigh] + from[domain.OutcomeLow]
	if total == 0 {
		return uniformTransition()
	}

	return Transition{
		High: float64(from[domain.OutcomeHigh]) / float64(total),
		Low:  float64(from[domain.OutcomeLow]) / float64(total),
	}
}
