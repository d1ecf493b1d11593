package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"quantum-shift/internal/app"
)

// RoundRegistry is a Redis-aware implementation of app.RoundRegistry.
// Notes:
//   - Controllers and their countdowns live in this process, so rounds are kept
//     in a local map.
//   - Redis holds a liveness marker per round (value: bank id) so operators and
//     other instances can see which rounds are being played.
type RoundRegistry struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.Mutex
	rounds map[string]*app.Round
}

func NewRoundRegistry(client *redis.Client, ttl time.Duration) *RoundRegistry {
	return &RoundRegistry{
		client: client,
		ttl:    ttl,
		rounds: make(map[string]*app.Round),
	}
}

func (r *RoundRegistry) GetOrCreate(roundID string, create func() (*app.Round, error)) (*app.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if round, ok := r.rounds[roundID]; ok {
		round.Attach()
		r.touch(roundID, round.BankID)
		return round, nil
	}
	round, err := create()
	if err != nil {
		return nil, err
	}
	round.Attach()
	r.rounds[roundID] = round
	r.touch(roundID, round.BankID)
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
	_ = r.client.Del(context.Background(), RoundKey(roundID)).Err()
}

// LiveRounds returns the round ids marked live in Redis, across instances.
func (r *RoundRegistry) LiveRounds(ctx context.Context) ([]string, error) {
	var ids []string
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[len(keyPrefix):])
	}
	return ids, iter.Err()
}

// best-effort liveness marker
func (r *RoundRegistry) touch(roundID, bankID string) {
	_ = r.client.Set(context.Background(), RoundKey(roundID), bankID, r.ttl).Err()
}

const keyPrefix = "round:live:"

// RoundKey is the Redis key of a round's liveness marker.
func RoundKey(roundID string) string {
	return keyPrefix + roundID
}
