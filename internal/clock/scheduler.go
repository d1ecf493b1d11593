package clock

import (
	"sync"
	"time"
)

// Task is a handle to recurring work. Stop is idempotent.
type Task interface {
	Stop()
}

// Scheduler runs fn every interval until the returned task is stopped.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// TickerScheduler drives tasks with a time.Ticker per task.
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) Task {
	task := &tickerTask{done: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-task.done:
				return
			case <-ticker.C:
				// A stop can race the tick; prefer the stop.
				select {
				case <-task.done:
					return
				default:
				}
				fn()
			}
		}
	}()
	return task
}

type tickerTask struct {
	once sync.Once
	done chan struct{}
}

func (t *tickerTask) Stop() {
	t.once.Do(func() { close(t.done) })
}
