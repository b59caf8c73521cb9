package models

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// birthdayFields carries the trimmed payload through struct validation.
// Field order decides the order of reported errors.
type birthdayFields struct {
	Name     string `validate:"required,max=200"`
	Birthday string `validate:"required,datetime=2006-01-02"`
	Idea     string `validate:"required,max=200"`
	Link     string `validate:"max=400"`
}

// fieldMessages maps a failed field/tag pair to its client-facing message
var fieldMessages = map[string]string{
	"Name.required":     "Missing name",
	"Name.max":          "Name too long",
	"Birthday.required": "Missing birthday",
	"Birthday.datetime": "Invalid birthday, expected YYYY-MM-DD",
	"Idea.required":     "Missing 'idea'",
	"Idea.max":          "Idea too long",
	"Link.max":          "link too long",
}

// ValidationError carries every problem found in one payload
type ValidationError struct {
	Messages []string `json:"errors"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return "validation failed: " + strings.Join(ve.Messages, "; ")
}

// IsValidationError reports whether err is or wraps a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidationResult is the outcome of validating a birthday payload.
// Birthday is set whenever the date was present and well formed, even if
// other fields failed.
type ValidationResult struct {
	Errors   []string
	Birthday *Date
	Name     string
	Idea     string
	Link     string
}

// Valid reports whether no rule was violated
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns a *ValidationError when the result holds errors, nil otherwise
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Messages: r.Errors}
}

// Record builds the record described by a valid result
func (r *ValidationResult) Record() *Birthday {
	if !r.Valid() || r.Birthday == nil {
		return nil
	}
	return NewBirthday(r.Name, *r.Birthday, r.Idea, r.Link)
}

// ValidateBirthdayInput checks all fields of the payload without stopping at
// the first failure. Name, birthday and idea are trimmed; link is checked and
// stored as sent.
func ValidateBirthdayInput(input *BirthdayInput) *ValidationResult {
	if input == nil {
		input = &BirthdayInput{}
	}

	fields := birthdayFields{
		Name:     strings.TrimSpace(stringValue(input.Name)),
		Birthday: strings.TrimSpace(stringValue(input.Birthday)),
		Idea:     strings.TrimSpace(stringValue(input.Idea)),
		Link:     stringValue(input.Link),
	}

	result := &ValidationResult{
		Name: fields.Name,
		Idea: fields.Idea,
		Link: fields.Link,
	}

	if err := validate.Struct(fields); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			result.Errors = append(result.Errors, err.Error())
			return result
		}
		for _, fe := range fieldErrs {
			msg, ok := fieldMessages[fe.StructField()+"."+fe.Tag()]
			if !ok {
				msg = fe.Error()
			}
			result.Errors = append(result.Errors, msg)
		}
	}

	if fields.Birthday != "" {
		if date, err := ParseDate(fields.Birthday); err == nil {
			result.Birthday = &date
		}
	}

	return result
}
