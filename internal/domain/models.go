package domain

// Question is a single multiple-choice prompt with exactly one correct option.
type Question struct {
	Text         string   `json:"text" yaml:"text" validate:"required"`
	Options      []string `json:"options" yaml:"options" validate:"min=2,dive,required"`
	CorrectIndex int      `json:"correctIndex" yaml:"correct_index"`
	Explanation  string   `json:"explanation" yaml:"explanation"`
}

// Bank is an ordered, read-only sequence of questions.
type Bank struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title,omitempty" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Len returns the number of questions in the bank.
func (b Bank) Len() int {
	return len(b.Questions)
}

// Clone returns a deep copy so callers cannot mutate a bank held by a round.
func (b Bank) Clone() Bank {
	out := Bank{ID: b.ID, Title: b.Title, Questions: make([]Question, len(b.Questions))}
	for i, q := range b.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Questions[i] = q
	}
	return out
}

// PublicQuestion is a question without its answer, safe to hand to clients.
type PublicQuestion struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// PublicBank is the client-facing view of a bank.
type PublicBank struct {
	ID        string           `json:"id"`
	Title     string           `json:"title,omitempty"`
	Questions []PublicQuestion `json:"questions"`
}

// Public strips correct indexes and explanations.
func (b Bank) Public() PublicBank {
	out := PublicBank{ID: b.ID, Title: b.Title, Questions: make([]PublicQuestion, 0, len(b.Questions))}
	for _, q := range b.Questions {
		out.Questions = append(out.Questions, PublicQuestion{
			Text:    q.Text,
			Options: append([]string(nil), q.Options...),
		})
	}
	return out
}
