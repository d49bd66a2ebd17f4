package domain

import "time"

// Prediction is the result of one prediction cycle: the latest known round
// and the call for the round after it.
type Prediction struct {
	PreviousSession SessionID `json:"previous_session"`
	NextSession     SessionID `json:"next_session"`
	Dice            [3]int    `json:"dice"`
	Total           int       `json:"total"`
	Outcome         Outcome   `json:"outcome"`
	Prediction      Outcome   `json:"prediction"`
	Confidence      float64   `json:"confidence"`
	Explanation     string    `json:"explanation"`
	PatternSymbol   string    `json:"pattern_symbol"`
	GeneratedAt     time.Time `json:"generated_at"`
}
