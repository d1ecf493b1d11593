package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks every question of the bank. A bank that fails validation
// cannot be played and must be rejected at load time.
func (b Bank) Validate() error {
	if len(b.Questions) == 0 {
		return &BankError{BankID: b.ID, Position: -1, Err: ErrEmptyBank}
	}
	for i, q := range b.Questions {
		if err := validateQuestion(q); err != nil {
			return &BankError{BankID: b.ID, Position: i, Err: err}
		}
	}
	return nil
}

func validateQuestion(q Question) error {
	if err := validate.Struct(q); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return err
		}
		return fieldError(fieldErrs[0])
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ErrCorrectIndexOutOfRange
	}
	return nil
}

func fieldError(fe validator.FieldError) error {
	switch {
	case fe.StructField() == "Text":
		return ErrEmptyQuestionText
	case fe.StructField() == "Options" && fe.Tag() == "min":
		return ErrTooFewOptions
	case strings.HasPrefix(fe.StructField(), "Options"):
		return ErrEmptyOption
	default:
		return fe
	}
}
