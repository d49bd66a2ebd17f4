package engine

const (
	DefaultLookback = 15

	minMultiplier = 0.6
	maxMultiplier = 1.6
)

// PerformanceMultiplier scores a module's recent ledger votes against the
// realized outcome of the session each vote was stored at. The result is
// within [0.6, 1.6] and neutral (1) when nothing can be compared.
func PerformanceMultiplier(ledger *Ledger, history *History, module Module, lookback int) float64 {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	sessions := ledger.Sessions()
	if len(sessions) < 2 {
		return 1
	}
	sessions = tail(sessions, lookback+1)

	correct, total := 0, 0
	for i := 1; i < len(sessions); i++ {
		session := sessions[i-1]
		entry, ok := ledger.entries[session]
		if !ok {
			continue
		}
		actual, ok := history.Find(session)
		if !ok {
			continue
		}
		if entry.Votes[module] == actual.Outcome {
			correct++
		}
		total++
	}
	if total == 0 {
		return 1
	}

	half := float64(total) / 2
	return clamp(1+(float64(correct)-half)/half, minMultiplier, maxMultiplier)
}
