package domain

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cast"
)

type SessionID int64

type Round struct {
	Session SessionID `json:"session"`
	Dice    [3]int    `json:"dice"`
	Total   int       `json:"total"`
	Outcome Outcome   `json:"result"`
}

// RawRound is a round-like record as decoded from a source payload. Every
// field is optional; see NormalizeRounds.
type RawRound map[string]any

// NormalizeRounds coerces raw records into rounds sorted ascending by
// session. Records without a usable session are dropped. A nil or empty
// batch is rejected with ErrEmptyBatch.
func NormalizeRounds(rows []RawRound) ([]Round, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}

	rounds := make([]Round, 0, len(rows))
	for _, row := range rows {
		round, ok := normalizeRound(row)
		if !ok {
			continue
		}
		rounds = append(rounds, round)
	}

	sort.SliceStable(rounds, func(i, j int) bool {
		return rounds[i].Session < rounds[j].Session
	})

	return rounds, nil
}

// RawRoundsFromPayload converts a decoded JSON/TOML document into raw
// records. The payload must be a list; non-object elements are dropped.
func RawRoundsFromPayload(payload any) ([]RawRound, error) {
	items, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of rounds, got %T", ErrMalformedPayload, payload)
	}
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	rows := make([]RawRound, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case map[string]any:
			rows = append(rows, RawRound(v))
		case RawRound:
			rows = append(rows, v)
		}
	}

	return rows, nil
}

func normalizeRound(row RawRound) (Round, bool) {
	if row == nil {
		return Round{}, false
	}
	rawSession, ok := row["session"]
	if !ok || rawSession == nil {
		return Round{}, false
	}
	session, err := cast.ToFloat64E(rawSession)
	if err != nil || math.IsNaN(session) || math.IsInf(session, 0) {
		return Round{}, false
	}

	dice, diceOK := normalizeDice(row["dice"])

	total := 0
	if rawTotal, present := row["total"]; present && rawTotal != nil {
		total = cast.ToInt(rawTotal)
	} else if diceOK {
		total = dice[0] + dice[1] + dice[2]
	}

	outcome := OutcomeNone
	if label, isString := row["result"].(string); isString {
		outcome, _ = ParseOutcome(label)
	}
	if !outcome.Valid() {
		outcome = OutcomeFromTotal(total)
	}

	return Round{
		Session: SessionID(session),
		Dice:    dice,
		Total:   total,
		Outcome: outcome,
	}, true
}

func normalizeDice(raw any) ([3]int, bool) {
	var dice [3]int
	values, err := cast.ToSliceE(raw)
	if err != nil || len(values) != len(dice) {
		return dice, false
	}
	for i, value := range values {
		n, err := cast.ToIntE(value)
		if err != nil {
			return [3]int{}, false
		}
		dice[i] = n
	}
	return dice, true
}
