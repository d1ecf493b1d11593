package app

import (
	"sync"
	"time"

	"quantum-shift/internal/clock"
	"quantum-shift/internal/domain"
)

// DefaultTimePerQuestion is the countdown length for each question.
const DefaultTimePerQuestion = 20 * time.Second

const tickInterval = time.Second

// Presenter receives a snapshot after every transition and every countdown tick.
// Present is called with the controller lock held, so it must not call back into
// the controller.
type Presenter interface {
	Present(domain.Snapshot)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(domain.Snapshot)

func (f PresenterFunc) Present(s domain.Snapshot) { f(s) }

type nopPresenter struct{}

func (nopPresenter) Present(domain.Snapshot) {}

// Option configures a Controller.
type Option func(*Controller)

// WithTimePerQuestion sets the countdown length, truncated to whole seconds.
func WithTimePerQuestion(d time.Duration) Option {
	return func(c *Controller) {
		if secs := int(d / time.Second); secs > 0 {
			c.timePerQuestion = secs
		}
	}
}

// WithScheduler replaces the tick source.
func WithScheduler(s clock.Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithPresenter sets the notification sink.
func WithPresenter(p Presenter) Option {
	return func(c *Controller) {
		if p != nil {
			c.presenter = p
		}
	}
}

// Controller owns one round over one bank. Operations that are not valid in the
// current state are ignored.
type Controller struct {
	bank            domain.Bank
	timePerQuestion int
	scheduler       clock.Scheduler
	presenter       Presenter

	mu         sync.Mutex
	state      domain.RoundState
	index      int
	score      int
	active     bool
	timeLeft   int
	countdown  clock.Task
	generation uint64
	locked     *lockedAnswer
	summary    *domain.Summary
	started    bool
}

type lockedAnswer struct {
	selected   int
	correct    bool
	resolution domain.Resolution
	markers    []domain.Marker
}

// NewController validates bank and returns an idle controller. A malformed bank
// is a configuration error and no controller is built for it.
func NewController(bank domain.Bank, opts ...Option) (*Controller, error) {
	if err := bank.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		bank:            bank.Clone(),
		timePerQuestion: int(DefaultTimePerQuestion / time.Second),
		scheduler:       clock.TickerScheduler{},
		presenter:       nopPresenter{},
		state:           domain.StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.timeLeft = c.timePerQuestion
	return c, nil
}

// Bank returns the bank the controller plays.
func (c *Controller) Bank() domain.Bank {
	return c.bank.Clone()
}

// TimePerQuestion returns the countdown length in seconds.
func (c *Controller) TimePerQuestion() int {
	return c.timePerQuestion
}

// Snapshot returns the current display state without emitting it.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(domain.EventState)
}

// StartRound begins a round from Idle or RoundComplete.
func (c *Controller) StartRound() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != domain.StateIdle && c.state != domain.StateRoundComplete {
		return
	}
	c.index = 0
	c.score = 0
	c.active = true
	c.started = true
	c.summary = nil
	c.showQuestionLocked()
}

// SelectAnswer locks the current question with the chosen option. An index
// outside the option list is scored as a wrong answer.
func (c *Controller) SelectAnswer(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active || c.state != domain.StateQuestionActive {
		return
	}
	c.stopCountdownLocked()
	c.resolveLocked(index, domain.ResolutionSelected)
}

// Advance moves to the next question once the current one is locked.
func (c *Controller) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active || c.state != domain.StateAnswerLocked || c.index >= c.bank.Len()-1 {
		return
	}
	c.index++
	c.showQuestionLocked()
}

// ResetRound returns to the inert Idle state from anywhere.
func (c *Controller) ResetRound() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopCountdownLocked()
	c.active = false
	c.index = 0
	c.score = 0
	c.timeLeft = c.timePerQuestion
	c.locked = nil
	c.summary = nil
	c.started = false
	c.state = domain.StateIdle
	c.notifyLocked(domain.EventReset)
}

func (c *Controller) showQuestionLocked() {
	c.state = domain.StateQuestionActive
	c.locked = nil
	c.startCountdownLocked()
	c.notifyLocked(domain.EventQuestion)
}

func (c *Controller) startCountdownLocked() {
	c.stopCountdownLocked()
	c.timeLeft = c.timePerQuestion
	c.generation++
	gen := c.generation
	c.countdown = c.scheduler.Every(tickInterval, func() { c.tick(gen) })
}

func (c *Controller) stopCountdownLocked() {
	if c.countdown == nil {
		return
	}
	c.countdown.Stop()
	c.countdown = nil
}

// tick handles one countdown second. Ticks from a cancelled countdown carry a
// stale generation or find no live countdown and are dropped.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.countdown == nil || gen != c.generation || c.state != domain.StateQuestionActive {
		return
	}
	c.timeLeft--
	if c.timeLeft < 0 {
		c.timeLeft = 0
	}
	c.notifyLocked(domain.EventTick)
	if c.timeLeft > 0 {
		return
	}
	c.stopCountdownLocked()
	c.resolveLocked(domain.NoSelection, domain.ResolutionTimeout)
}

func (c *Controller) resolveLocked(selected int, resolution domain.Resolution) {
	q := c.bank.Questions[c.index]
	correct := resolution == domain.ResolutionSelected && selected == q.CorrectIndex
	if correct {
		c.score++
	}

	markers := make([]domain.Marker, len(q.Options))
	for i := range markers {
		switch {
		case i == q.CorrectIndex:
			markers[i] = domain.MarkerCorrect
		case i == selected:
			markers[i] = domain.MarkerIncorrect
		default:
			markers[i] = domain.MarkerNeutral
		}
	}
	if resolution == domain.ResolutionTimeout {
		selected = domain.NoSelection
	}
	c.locked = &lockedAnswer{
		selected:   selected,
		correct:    correct,
		resolution: resolution,
		markers:    markers,
	}
	c.state = domain.StateAnswerLocked
	c.notifyLocked(domain.EventResolved)

	if c.index == c.bank.Len()-1 {
		c.completeLocked()
	}
}

func (c *Controller) completeLocked() {
	c.active = false
	c.stopCountdownLocked()
	summary := domain.NewSummary(c.score, c.bank.Len())
	c.summary = &summary
	c.state = domain.StateRoundComplete
	c.notifyLocked(domain.EventComplete)
}

func (c *Controller) notifyLocked(kind domain.EventKind) {
	c.presenter.Present(c.snapshotLocked(kind))
}

func (c *Controller) snapshotLocked(kind domain.EventKind) domain.Snapshot {
	snap := domain.Snapshot{
		Event:    kind,
		State:    c.state,
		Index:    c.index,
		Total:    c.bank.Len(),
		Score:    c.score,
		Level:    domain.LevelNone,
		TimeLeft: c.timeLeft,
		Selected: domain.NoSelection,
	}
	if c.started {
		snap.Level = domain.Level(c.score)
	}
	if c.state == domain.StateIdle {
		return snap
	}

	q := c.bank.Questions[c.index]
	snap.Question = q.Text
	snap.Options = append([]string(nil), q.Options...)
	if c.locked != nil {
		snap.Markers = append([]domain.Marker(nil), c.locked.markers...)
		snap.Selected = c.locked.selected
		snap.Resolution = c.locked.resolution
		snap.Correct = c.locked.correct
		snap.Explanation = q.Explanation
		snap.Feedback = feedback(c.locked, q.Explanation)
	}
	if c.summary != nil {
		summary := *c.summary
		snap.Summary = &summary
	}
	return snap
}

func feedback(l *lockedAnswer, explanation string) string {
	switch {
	case l.resolution == domain.ResolutionTimeout:
		return "Time's up. " + explanation
	case l.correct:
		return "Nice! That's correct. " + explanation
	default:
		return "Not quite. " + explanation
	}
}
