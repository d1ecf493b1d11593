package app

import (
	"sync"

	"quantum-shift/internal/domain"
)

const subscriberBuffer = 16

// Broadcaster is a Presenter that fans snapshots out to channel subscribers.
type Broadcaster struct {
	mu          sync.Mutex
	last        domain.Snapshot
	hasLast     bool
	subscribers map[chan domain.Snapshot]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subscribers: make(map[chan domain.Snapshot]struct{})}
}

// Present records the snapshot and delivers it to every subscriber without blocking.
func (b *Broadcaster) Present(snap domain.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = snap
	b.hasLast = true
	for ch := range b.subscribers {
		select {
		case ch <- snap:
		default:
			// Slow consumer: drop its oldest pending snapshot to make room.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

// Subscribe returns a channel of snapshots, primed with the latest one if any.
// The caller must invoke the returned cancel function to avoid leaks.
func (b *Broadcaster) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	if b.hasLast {
		ch <- b.last
	}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Subscribers returns the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
