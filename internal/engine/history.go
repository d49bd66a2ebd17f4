package engine

import (
	"sort"

	"github.com/bnema/taixiu-predictor/internal/domain"
)

// DefaultCapacity is the number of most recent rounds kept in history.
const DefaultCapacity = 300

// History is a bounded log of rounds with strictly ascending, unique sessions.
type History struct {
	capacity int
	rounds   []domain.Round
	index    map[domain.SessionID]int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		capacity: capacity,
		index:    map[domain.SessionID]int{},
	}
}

// Ingest merges rounds whose session is not yet known and drops the oldest
// entries beyond capacity. It returns the number of rounds added.
func (h *History) Ingest(rounds []domain.Round) int {
	added := 0
	for _, r := range rounds {
		if _, ok := h.index[r.Session]; ok {
			continue
		}
		h.index[r.Session] = -1
		h.rounds = append(h.rounds, r)
		added++
	}
	if added == 0 {
		return 0
	}

	sort.SliceStable(h.rounds, func(i, j int) bool {
		return h.rounds[i].Session < h.rounds[j].Session
	})
	if len(h.rounds) > h.capacity {
		h.rounds = append([]domain.Round(nil), h.rounds[len(h.rounds)-h.capacity:]...)
	}
	h.reindex()

	return added
}

func (h *History) reindex() {
	h.index = make(map[domain.SessionID]int, len(h.rounds))
	for i, r := range h.rounds {
		h.index[r.Session] = i
	}
}

func (h *History) Len() int {
	return len(h.rounds)
}

func (h *History) Capacity() int {
	return h.capacity
}

// Rounds returns the backing slice; callers must not modify it.
func (h *History) Rounds() []domain.Round {
	return h.rounds
}

// Tail returns a copy of the last n rounds (all rounds when n <= 0).
func (h *History) Tail(n int) []domain.Round {
	src := h.rounds
	if n > 0 {
		src = tail(src, n)
	}
	return append([]domain.Round(nil), src...)
}

func (h *History) Latest() (domain.Round, bool) {
	if len(h.rounds) == 0 {
		return domain.Round{}, false
	}
	return h.rounds[len(h.rounds)-1], true
}

func (h *History) Oldest() (domain.Round, bool) {
	if len(h.rounds) == 0 {
		return domain.Round{}, false
	}
	return h.rounds[0], true
}

func (h *History) Find(session domain.SessionID) (domain.Round, bool) {
	i, ok := h.index[session]
	if !ok {
		return domain.Round{}, false
	}
	return h.rounds[i], true
}
