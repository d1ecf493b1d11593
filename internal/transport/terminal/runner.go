package terminal

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"quantum-shift/internal/domain"
)

// Round is the inbound side of a round controller.
type Round interface {
	StartRound()
	SelectAnswer(index int)
	Advance()
	ResetRound()
	Snapshot() domain.Snapshot
}

const help = "Commands: s = start, 1-9 = answer, n = next, r = reset, q = quit\n"

// Run feeds commands read line by line from in to round until quit, EOF or
// context cancellation. The round is reset on exit so no countdown survives.
func Run(ctx context.Context, round Round, p *Presenter, in io.Reader) error {
	defer round.ResetRound()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	snap := round.Snapshot()
	p.Printf("Question 0 of %d | Level: %s\n", snap.Total, snap.Level)
	p.Printf(help)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := dispatch(round, p, strings.TrimSpace(line)); quit {
				return nil
			}
		}
	}
}

func dispatch(round Round, p *Presenter, cmd string) bool {
	switch strings.ToLower(cmd) {
	case "":
		return false
	case "s", "start":
		round.StartRound()
	case "n", "next":
		round.Advance()
	case "r", "reset":
		round.ResetRound()
	case "q", "quit", "exit":
		return true
	case "h", "help", "?":
		p.Printf(help)
	default:
		n, err := strconv.Atoi(cmd)
		if err != nil {
			p.Printf("Unknown command %q. %s", cmd, help)
			return false
		}
		round.SelectAnswer(n - 1)
	}
	return false
}
