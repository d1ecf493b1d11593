package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrEmptyBank is returned for a bank with no questions.
	ErrEmptyBank = errors.New("question bank has no questions")
	// ErrEmptyQuestionText is returned for a question without a prompt.
	ErrEmptyQuestionText = errors.New("question text is empty")
	// ErrTooFewOptions is returned for a question with fewer than two options.
	ErrTooFewOptions = errors.New("question needs at least two options")
	// ErrEmptyOption is returned when one of the options has no text.
	ErrEmptyOption = errors.New("question option is empty")
	// ErrCorrectIndexOutOfRange is returned when correctIndex does not point at an option.
	ErrCorrectIndexOutOfRange = errors.New("correct index out of range")
	// ErrBankMismatch is returned when a client joins an existing round with another bank.
	ErrBankMismatch = errors.New("round is bound to a different question bank")
)

// BankError reports which question of a bank failed validation.
type BankError struct {
	BankID   string
	Position int
	Err      error
}

func (e *BankError) Error() string {
	return fmt.Sprintf("bank %q question %d: %v", e.BankID, e.Position+1, e.Err)
}

func (e *BankError) Unwrap() error {
	return e.Err
}
