package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Outcome is the resolution of a round. Values are the source's literal labels.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeHigh Outcome = "Tài"
	OutcomeLow  Outcome = "Xỉu"
)

// HighThreshold is the smallest dice total resolving to OutcomeHigh.
const HighThreshold = 11

func OutcomeFromTotal(total int) Outcome {
	if total >= HighThreshold {
		return OutcomeHigh
	}
	return OutcomeLow
}

// ParseOutcome accepts the source labels in any Unicode normalization form
// as well as the English names.
func ParseOutcome(raw string) (Outcome, bool) {
	label := norm.NFC.String(strings.TrimSpace(raw))
	switch {
	case label == string(OutcomeHigh), strings.EqualFold(label, "high"):
		return OutcomeHigh, true
	case label == string(OutcomeLow), strings.EqualFold(label, "low"):
		return OutcomeLow, true
	default:
		return OutcomeNone, false
	}
}

func (o Outcome) Valid() bool {
	return o == OutcomeHigh || o == OutcomeLow
}

func (o Outcome) Opposite() Outcome {
	switch o {
	case OutcomeHigh:
		return OutcomeLow
	case OutcomeLow:
		return OutcomeHigh
	default:
		return OutcomeNone
	}
}

// Symbol is the single-character pattern encoding: T for High, X for Low.
func (o Outcome) Symbol() string {
	switch o {
	case OutcomeHigh:
		return "T"
	case OutcomeLow:
		return "X"
	default:
		return ""
	}
}

// Name is the English name used in logs and terminal output.
func (o Outcome) Name() string {
	switch o {
	case OutcomeHigh:
		return "High"
	case OutcomeLow:
		return "Low"
	default:
		return "none"
	}
}
