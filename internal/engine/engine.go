// Package engine implements the ensemble predictor: a bounded round history,
// an n-gram pattern memory, heuristic vote modules, a prediction ledger and
// the performance-weighted combiner that fuses them.
//
// All state is owned by an Engine and every method is serialized on a single
// mutex, so a prediction cycle never observes a half-rebuilt pattern table.
package engine

import (
	"math/rand/v2"
	"sync"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

type Engine struct {
	mu       sync.Mutex
	rng      *rand.Rand
	lookback int
	history  *History
	patterns *PatternMemory
	ledger   *Ledger
}

type Option func(*Engine)

// WithRand sets the source used for tie-breaks.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

func WithCapacity(capacity int) Option {
	return func(e *Engine) {
		e.history = NewHistory(capacity)
	}
}

func WithLookback(lookback int) Option {
	return func(e *Engine) {
		if lookback > 0 {
			e.lookback = lookback
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		lookback: DefaultLookback,
		history:  NewHistory(DefaultCapacity),
		patterns: NewPatternMemory(),
		ledger:   NewLedger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cycle is the outcome of one ingest-and-predict pass.
type Cycle struct {
	Latest    domain.Round
	HasLatest bool
	Added     int
	Forecast  Forecast
}

// Ingest normalizes and merges rows into history, rebuilding the pattern
// memory when anything new arrived.
func (e *Engine) Ingest(rows []domain.RawRound) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.ingestLocked(rows)
}

// Predict runs the ensemble over the current history and records the votes
// in the ledger under the latest session.
func (e *Engine) Predict() Forecast {
	e.mu.Lock()
	defer e.mu.Unlock()

	forecast, _, _ := e.predictLocked()
	return forecast
}

// Cycle ingests rows and predicts as one atomic unit. A rejected batch
// leaves all state untouched.
func (e *Engine) Cycle(rows []domain.RawRound) (Cycle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	added, err := e.ingestLocked(rows)
	if err != nil {
		return Cycle{}, err
	}
	forecast, latest, ok := e.predictLocked()

	return Cycle{Latest: latest, HasLatest: ok, Added: added, Forecast: forecast}, nil
}

func (e *Engine) ingestLocked(rows []domain.RawRound) (int, error) {
	rounds, err := domain.NormalizeRounds(rows)
	if err != nil {
		return 0, err
	}

	added := e.history.Ingest(rounds)
	if added > 0 {
		e.patterns.Rebuild(e.history.Rounds())
		if oldest, ok := e.history.Oldest(); ok {
			e.ledger.PruneBefore(oldest.Session)
		}
	}
	return added, nil
}

func (e *Engine) predictLocked() (Forecast, domain.Round, bool) {
	forecast := combiner{
		history:  e.history,
		patterns: e.patterns,
		ledger:   e.ledger,
		rng:      e.rng,
		lookback: e.lookback,
	}.forecast()

	latest, ok := e.history.Latest()
	if ok {
		e.ledger.Record(latest.Session, LedgerEntry{Votes: forecast.Votes, Final: forecast.Prediction})
	}
	return forecast, latest, ok
}

// History returns a copy of the last limit rounds (all when limit <= 0).
func (e *Engine) History(limit int) []domain.Round {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.history.Tail(limit)
}

// Patterns returns a copy of the pattern-memory table.
func (e *Engine) Patterns() PatternTable {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.patterns.Snapshot()
}

func (e *Engine) LedgerEntry(session domain.SessionID) (LedgerEntry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.ledger.Entry(session)
}

// Multipliers reports the current performance multiplier of every heuristic module.
func (e *Engine) Multipliers() map[Module]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[Module]float64, len(HeuristicModules))
	for _, module := range HeuristicModules {
		out[module] = PerformanceMultiplier(e.ledger, e.history, module, e.lookback)
	}
	return out
}
