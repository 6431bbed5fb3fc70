package registration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Request is the inbound webhook payload. It is never persisted.
type Request struct {
	Name      string `json:"name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,max=320"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=40"`
	EventName string `json:"eventName,omitempty" validate:"omitempty,max=200"`
}

var ErrValidation = errors.New("registration is missing required fields")

// ValidationError carries the per-field failures so the HTTP layer can report them.
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field())
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims surrounding whitespace from every field.
func (r Request) Normalize() Request {
	return Request{
		Name:      strings.TrimSpace(r.Name),
		Email:     strings.TrimSpace(r.Email),
		Phone:     strings.TrimSpace(r.Phone),
		EventName: strings.TrimSpace(r.EventName),
	}
}

// Validate reports a *ValidationError when name or email is blank.
func (r Request) Validate() error {
	err := validate.Struct(r.Normalize())
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
