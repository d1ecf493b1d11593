package domain

// RoundState is the position of a round in its lifecycle.
type RoundState string

const (
	StateIdle           RoundState = "idle"
	StateQuestionActive RoundState = "question_active"
	StateAnswerLocked   RoundState = "answer_locked"
	StateRoundComplete  RoundState = "round_complete"
)

// EventKind names the transition that produced a snapshot.
type EventKind string

const (
	EventState    EventKind = "state"
	EventQuestion EventKind = "question"
	EventTick     EventKind = "tick"
	EventResolved EventKind = "resolved"
	EventComplete EventKind = "complete"
	EventReset    EventKind = "reset"
)

// Marker tells the presentation layer how to render an option once locked.
type Marker string

const (
	MarkerNeutral   Marker = "neutral"
	MarkerCorrect   Marker = "correct"
	MarkerIncorrect Marker = "incorrect"
)

// Resolution records how a question was locked.
type Resolution string

const (
	ResolutionSelected Resolution = "selected"
	ResolutionTimeout  Resolution = "timeout"
)

// NoSelection is the selected index reported when no option was chosen.
const NoSelection = -1

// Snapshot is the full display state emitted after every transition and tick.
type Snapshot struct {
	Event       EventKind  `json:"event"`
	State       RoundState `json:"state"`
	Index       int        `json:"index"`
	Total       int        `json:"total"`
	Score       int        `json:"score"`
	Level       string     `json:"level"`
	TimeLeft    int        `json:"timeLeft"`
	Question    string     `json:"question,omitempty"`
	Options     []string   `json:"options,omitempty"`
	Markers     []Marker   `json:"markers,omitempty"`
	Selected    int        `json:"selected"`
	Resolution  Resolution `json:"resolution,omitempty"`
	Correct     bool       `json:"correct"`
	Feedback    string     `json:"feedback,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
	Summary     *Summary   `json:"summary,omitempty"`
}
