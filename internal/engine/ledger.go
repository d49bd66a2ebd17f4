package engine

import (
	"maps"
	"slices"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

// Module names a vote source in the ensemble.
type Module string

const (
	ModuleTrend     Module = "trend"
	ModuleShort     Module = "short"
	ModuleMean      Module = "mean"
	ModuleSwitch    Module = "switch"
	ModuleBridge    Module = "bridge"
	ModuleMarkov    Module = "markov"
	ModuleComposite Module = "composite"
	ModulePattern   Module = "pattern"
)

// HeuristicModules are the modules scored by the performance evaluator.
var HeuristicModules = []Module{
	ModuleTrend, ModuleShort, ModuleMean, ModuleSwitch, ModuleBridge, ModuleMarkov, ModuleComposite,
}

// EnsembleModules is every vote source in tally order.
var EnsembleModules = append(slices.Clone(HeuristicModules), ModulePattern)

// LedgerEntry records every module's vote and the final call made at a session.
type LedgerEntry struct {
	Votes map[Module]domain.Outcome `json:"votes"`
	Final domain.Outcome            `json:"final"`
}

// Ledger keeps one entry per session at which a prediction was produced.
type Ledger struct {
	entries map[domain.SessionID]LedgerEntry
}

func NewLedger() *Ledger {
	return &Ledger{entries: map[domain.SessionID]LedgerEntry{}}
}

// Record overwrites the entry for session.
func (l *Ledger) Record(session domain.SessionID, entry LedgerEntry) {
	entry.Votes = maps.Clone(entry.Votes)
	l.entries[session] = entry
}

func (l *Ledger) Entry(session domain.SessionID) (LedgerEntry, bool) {
	entry, ok := l.entries[session]
	if !ok {
		return LedgerEntry{}, false
	}
	entry.Votes = maps.Clone(entry.Votes)
	return entry, true
}

// Sessions returns recorded sessions in ascending order.
func (l *Ledger) Sessions() []domain.SessionID {
	return slices.Sorted(maps.Keys(l.entries))
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// PruneBefore drops entries older than session; they can no longer be
// matched against history.
func (l *Ledger) PruneBefore(session domain.SessionID) {
	for s := range l.entries {
		if s < session {
			delete(l.entries, s)
		}
	}
}
