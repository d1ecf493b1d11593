package app

import (
	"context"
	"sync"

	"quantum-shift/internal/domain"
)

// RoundRegistry abstracts where live rounds are tracked (in-memory, Redis, etc).
// GetOrCreate attaches one client to the returned round under the registry lock,
// so a concurrent DeleteIfIdle cannot drop it in between.
type RoundRegistry interface {
	GetOrCreate(roundID string, create func() (*Round, error)) (*Round, error)
	Get(roundID string) (*Round, bool)
	DeleteIfIdle(roundID string)
}

// BankRepository loads validated question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// RoundService wires clients to rounds. Every round owns its own controller.
type RoundService struct {
	rounds RoundRegistry
	banks  BankRepository
	opts   []Option
}

func NewRoundService(rounds RoundRegistry, banks BankRepository, opts ...Option) *RoundService {
	return &RoundService{rounds: rounds, banks: banks, opts: opts}
}

// Bank returns a bank by ID.
func (s *RoundService) Bank(ctx context.Context, bankID string) (domain.Bank, error) {
	return s.banks.GetBank(ctx, bankID)
}

// Join attaches a client to roundID, creating the round over bankID if needed.
func (s *RoundService) Join(ctx context.Context, roundID, bankID string) (*Round, error) {
	// Users cannot join rounds over unknown or malformed banks.
	bank, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		return nil, err
	}

	round, err := s.rounds.GetOrCreate(roundID, func() (*Round, error) {
		return NewRound(roundID, bank, s.opts...)
	})
	if err != nil {
		return nil, err
	}
	if round.BankID != bank.ID {
		s.Leave(ctx, round)
		return nil, domain.ErrBankMismatch
	}
	return round, nil
}

// Leave detaches a client and drops the round once nobody is attached.
func (s *RoundService) Leave(_ context.Context, round *Round) {
	if round == nil {
		return
	}
	if round.detach() == 0 {
		s.rounds.DeleteIfIdle(round.ID)
	}
}

// Round is a controller plus the subscribers watching it.
type Round struct {
	ID     string
	BankID string

	controller  *Controller
	broadcaster *Broadcaster

	mu      sync.Mutex
	clients int
}

// NewRound builds a round over bank. It fails if the bank is malformed.
func NewRound(id string, bank domain.Bank, opts ...Option) (*Round, error) {
	broadcaster := NewBroadcaster()
	opts = append(append([]Option(nil), opts...), WithPresenter(broadcaster))
	controller, err := NewController(bank, opts...)
	if err != nil {
		return nil, err
	}
	broadcaster.Present(controller.Snapshot())
	return &Round{
		ID:          id,
		BankID:      bank.ID,
		controller:  controller,
		broadcaster: broadcaster,
	}, nil
}

// Controller returns the round's state machine.
func (r *Round) Controller() *Controller {
	return r.controller
}

// Subscribe streams snapshots of this round.
func (r *Round) Subscribe() (<-chan domain.Snapshot, func()) {
	return r.broadcaster.Subscribe()
}

// Close stops any running countdown.
func (r *Round) Close() {
	r.controller.ResetRound()
}

// IsIdle reports whether no clients are attached.
func (r *Round) IsIdle() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients == 0
}

// Attach registers one more client.
func (r *Round) Attach() {
	r.mu.Lock()
	r.clients++
	r.mu.Unlock()
}

func (r *Round) detach() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients > 0 {
		r.clients--
	}
	return r.clients
}
