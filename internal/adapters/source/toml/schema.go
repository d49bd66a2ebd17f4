package toml

import (
	"fmt"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

const currentSchemaVersion = 1

// fileSchema is the on-disk fixture layout. Round tables stay untyped so
// they go through the same coercion as remote payloads.
type fileSchema struct {
	Version int              `toml:"version"`
	Rounds  []map[string]any `toml:"rounds"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported rounds schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func (s fileSchema) rawRounds() ([]domain.RawRound, error) {
	items := make([]any, 0, len(s.Rounds))
	for _, round := range s.Rounds {
		items = append(items, round)
	}
	return domain.RawRoundsFromPayload(items)
}

type roundSchema struct {
	Session int64  `toml:"session"`
	Dice    [3]int `toml:"dice"`
	Total   int    `toml:"total"`
	Result  string `toml:"result"`
}

type writeSchema struct {
	Version int           `toml:"version"`
	Rounds  []roundSchema `toml:"rounds"`
}

func toSchema(round domain.Round) roundSchema {
	return roundSchema{
		Session: int64(round.Session),
		Dice:    round.Dice,
		Total:   round.Total,
		Result:  string(round.Outcome),
	}
}
