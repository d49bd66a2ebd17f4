package application

import (
	"github.com/bnema/taixiu-predictor/internal/domain"
	"github.com/bnema/taixiu-predictor/internal/engine"
)

const DefaultHistoryLimit = 50

// History returns the newest limit rounds, oldest first.
func (s *Service) History(limit int) []domain.Round {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.engine.History(limit)
}

func (s *Service) Patterns() engine.PatternTable {
	return s.engine.Patterns()
}

// Multipliers reports each heuristic module's current performance multiplier.
func (s *Service) Multipliers() map[engine.Module]float64 {
	return s.engine.Multipliers()
}
