package engine

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

// BaseWeights are the per-module weights before performance scaling. The
// pattern module is weighted by its own lookup confidence instead.
var BaseWeights = map[Module]float64{
	ModuleTrend:     0.18,
	ModuleShort:     0.18,
	ModuleMean:      0.22,
	ModuleSwitch:    0.18,
	ModuleBridge:    0.14,
	ModuleMarkov:    0.10,
	ModuleComposite: 0.20,
}

const (
	momentumBonus = 0.15
	noiseDamping  = 0.75
	biasBonus     = 0.20

	minConfidence   = 0.52
	maxConfidence   = 0.98
	emptyConfidence = 0.5
)

// Forecast is the ensemble's call for the round after the latest one.
type Forecast struct {
	Prediction  domain.Outcome
	Confidence  float64
	Explanation string
	ScoreHigh   float64
	ScoreLow    float64
	Votes       map[Module]domain.Outcome
	Weights     map[Module]float64
}

type combiner struct {
	history  *History
	patterns *PatternMemory
	ledger   *Ledger
	rng      *rand.Rand
	lookback int
}

func (c combiner) forecast() Forecast {
	rounds := c.history.Rounds()
	if len(rounds) == 0 {
		return Forecast{
			Prediction:  randomOutcome(c.rng),
			Confidence:  emptyConfidence,
			Explanation: "no history data available",
		}
	}

	bridge := BridgeBreak(rounds)
	markov := EstimateTransition(rounds)
	composite := CompositeRules(rounds, c.rng)
	pattern := c.patterns.Lookup(rounds, c.rng)

	votes := map[Module]domain.Outcome{
		ModuleTrend:     TrendVote(rounds),
		ModuleShort:     ShortPatternVote(rounds),
		ModuleMean:      MeanDeviationVote(rounds),
		ModuleSwitch:    RecentSwitchVote(rounds),
		ModuleBridge:    bridge.Outcome,
		ModuleMarkov:    markov.Vote(),
		ModuleComposite: composite.Outcome,
		ModulePattern:   pattern.Outcome,
	}

	weights := make(map[Module]float64, len(votes))
	for _, module := range HeuristicModules {
		weights[module] = BaseWeights[module] * PerformanceMultiplier(c.ledger, c.history, module, c.lookback)
	}
	weights[ModulePattern] = pattern.Weight

	var scoreHigh, scoreLow float64
	for _, module := range EnsembleModules {
		switch votes[module] {
		case domain.OutcomeHigh:
			scoreHigh += weights[module]
		case domain.OutcomeLow:
			scoreLow += weights[module]
		}
	}

	outs := outcomesOf(rounds)
	if countOutcome(tail(outs, 5), domain.OutcomeHigh) > 2 {
		scoreHigh += momentumBonus
	} else {
		scoreLow += momentumBonus
	}

	if noisyRegime(rounds, DetectStreak(rounds)) {
		scoreHigh *= noiseDamping
		scoreLow *= noiseDamping
	}

	switch high15 := countOutcome(tail(outs, 15), domain.OutcomeHigh); {
	case high15 >= 10:
		scoreLow += biasBonus
	case high15 <= 5:
		scoreHigh += biasBonus
	}

	prediction := domain.OutcomeLow
	if scoreHigh >= scoreLow {
		prediction = domain.OutcomeHigh
	}
	confidence := round2(clamp(0.5+math.Abs(scoreHigh-scoreLow), minConfidence, maxConfidence))

	explanation := strings.Join([]string{
		"Rules: " + composite.Reason,
		fmt.Sprintf("Bridge: %s (p=%s)", bridge.Reason, fmtRound(bridge.Prob)),
		fmt.Sprintf("Markov T=%s X=%s", fmtRound(markov.High), fmtRound(markov.Low)),
		"Pattern: " + pattern.Note,
		fmt.Sprintf("Score T=%s · X=%s", fmtRound(scoreHigh), fmtRound(scoreLow)),
	}, " | ")

	return Forecast{
		Prediction:  prediction,
		Confidence:  confidence,
		Explanation: explanation,
		ScoreHigh:   scoreHigh,
		ScoreLow:    scoreLow,
		Votes:       votes,
		Weights:     weights,
	}
}
