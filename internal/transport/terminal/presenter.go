package terminal

import (
	"fmt"
	"io"
	"sync"

	"quantum-shift/internal/domain"
)

// Presenter renders snapshots as plain text. It is safe for use from the
// countdown goroutine and the input loop at once.
type Presenter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPresenter(w io.Writer) *Presenter {
	return &Presenter{w: w}
}

// Printf writes a line under the presenter's lock.
func (p *Presenter) Printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format, args...)
}

func (p *Presenter) Present(s domain.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch s.Event {
	case domain.EventQuestion:
		p.status(s)
		fmt.Fprintf(p.w, "%s\n", s.Question)
		for i, opt := range s.Options {
			fmt.Fprintf(p.w, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprintf(p.w, "Time left: %ds\n", s.TimeLeft)
	case domain.EventTick:
		if s.TimeLeft%5 == 0 || s.TimeLeft <= 3 {
			fmt.Fprintf(p.w, "Time left: %ds\n", s.TimeLeft)
		}
	case domain.EventResolved:
		for i, opt := range s.Options {
			fmt.Fprintf(p.w, "  %s %d) %s\n", markerGlyph(s.Markers[i]), i+1, opt)
		}
		fmt.Fprintf(p.w, "%s\n", s.Feedback)
		fmt.Fprintf(p.w, "Score: %d | Level: %s\n", s.Score, s.Level)
		if s.Index < s.Total-1 {
			fmt.Fprintln(p.w, "Type n for the next question.")
		}
	case domain.EventComplete:
		sum := s.Summary
		fmt.Fprintf(p.w, "\nYou answered %d out of %d questions correctly (%d%%). Your shift level for this round is: %s.\n",
			sum.Correct, sum.Total, sum.Percent, sum.Level)
		fmt.Fprintln(p.w, "Type s to play again or q to quit.")
	case domain.EventReset:
		fmt.Fprintf(p.w, "Question 0 of %d | Score: 0 | Level: %s\n", s.Total, s.Level)
		fmt.Fprintln(p.w, "Type s to start.")
	}
}

func (p *Presenter) status(s domain.Snapshot) {
	fmt.Fprintf(p.w, "\nQuestion %d of %d | Score: %d | Level: %s\n", s.Index+1, s.Total, s.Score, s.Level)
}

func markerGlyph(m domain.Marker) string {
	switch m {
	case domain.MarkerCorrect:
		return "[+]"
	case domain.MarkerIncorrect:
		return "[x]"
	default:
		return "[ ]"
	}
}
