package domain

import "math"

// Shift level labels. Thresholds assume a ten-question bank and do not scale.
const (
	LevelNone        = "None"
	LevelWarmUp      = "Warm-Up"
	LevelStableOrbit = "Stable Orbit"
	LevelQuantumJump = "Quantum Jump"
	LevelSupernova   = "Supernova"
)

// Level maps a score to its shift level label.
func Level(score int) string {
	switch {
	case score <= 2:
		return LevelWarmUp
	case score <= 5:
		return LevelStableOrbit
	case score <= 8:
		return LevelQuantumJump
	default:
		return LevelSupernova
	}
}

// Percent returns score/total as a whole percentage, rounded half up.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(score)*100/float64(total) + 0.5))
}

// Summary is the end-of-round report.
type Summary struct {
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
	Level   string `json:"level"`
}

// NewSummary computes the summary for a finished round.
func NewSummary(score, total int) Summary {
	return Summary{
		Correct: score,
		Total:   total,
		Percent: Percent(score, total),
		Level:   Level(score),
	}
}
