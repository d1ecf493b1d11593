package clock

import (
	"sync"
	"time"
)

// FakeScheduler is a manually driven Scheduler for tests.
type FakeScheduler struct {
	mu    sync.Mutex
	tasks []*FakeTask
}

// FakeTask is a task registered on a FakeScheduler.
type FakeTask struct {
	Interval time.Duration

	owner   *FakeScheduler
	fn      func()
	stopped bool
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

func (s *FakeScheduler) Every(interval time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &FakeTask{Interval: interval, owner: s, fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

// Tick fires every live task once. Callbacks run without the scheduler lock held.
func (s *FakeScheduler) Tick() {
	for _, task := range s.liveTasks() {
		task.fn()
	}
}

// TickN calls Tick n times.
func (s *FakeScheduler) TickN(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// Live returns the number of tasks not yet stopped.
func (s *FakeScheduler) Live() int {
	return len(s.liveTasks())
}

// Started returns how many tasks were ever registered.
func (s *FakeScheduler) Started() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Last returns the most recently registered task, or nil.
func (s *FakeScheduler) Last() *FakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) == 0 {
		return nil
	}
	return s.tasks[len(s.tasks)-1]
}

func (s *FakeScheduler) liveTasks() []*FakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	live := make([]*FakeTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		if !task.stopped {
			live = append(live, task)
		}
	}
	return live
}

func (t *FakeTask) Stop() {
	t.owner.mu.Lock()
	t.stopped = true
	t.owner.mu.Unlock()
}

// Stopped reports whether Stop was called.
func (t *FakeTask) Stopped() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	return t.stopped
}

// Fire invokes the callback even if the task was stopped, simulating a tick
// that was already in flight when the task was cancelled.
func (t *FakeTask) Fire() {
	t.fn()
}
