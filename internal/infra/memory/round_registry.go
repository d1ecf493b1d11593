package memory

import (
	"sync"

	"quantum-shift/internal/app"
)

// RoundRegistry is an in-memory implementation of app.RoundRegistry.
type RoundRegistry struct {
	mu     sync.Mutex
	rounds map[string]*app.Round
}

func NewRoundRegistry() *RoundRegistry {
	return &RoundRegistry{
		rounds: make(map[string]*app.Round),
	}
}

func (r *RoundRegistry) GetOrCreate(roundID string, create func() (*app.Round, error)) (*app.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if round, ok := r.rounds[roundID]; ok {
		round.Attach()
		return round, nil
	}
	round, err := create()
	if err != nil {
		return nil, err
	}
	round.Attach()
	r.rounds[roundID] = round
	return round, nil
}

func (r *RoundRegistry) Get(roundID string) (*app.Round, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	round, ok := r.rounds[roundID]
	return round, ok
}

func (r *RoundRegistry) DeleteIfIdle(roundID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	round, ok := r.rounds[roundID]
	if !ok || !round.IsIdle() {
		return
	}
	delete(r.rounds, roundID)
	round.Close()
}

// Len returns the number of live rounds.
func (r *RoundRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rounds)
}
