// Package validation provides request validation utilities using the validator/v10 library.
//
// Two layers cooperate: Validator checks struct shapes with `validate` tags
// and generic messages, while the Var helpers back the per-use-case rule
// functions in the service layer, which produce the exact user-facing
// message strings.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	domainerrors "github.com/todolistapp/todolist-server/internal/errors"
)

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors accumulates failures from a pre-check pass.
type FieldErrors []FieldError

// Add appends a failure for the given field.
func (e *FieldErrors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Err converts the accumulated failures into a domain validation error,
// or nil when the pass found nothing.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return domainerrors.ValidationWithDetails("Validation Failed", e)
}

// rules is a shared validator instance for single-value checks.
var rules = validator.New()

// Required reports whether the value is non-empty.
func Required(value string) bool {
	return rules.Var(value, "required") == nil
}

// MaxLength reports whether the value is at most max characters.
func MaxLength(value string, max int) bool {
	return rules.Var(value, fmt.Sprintf("max=%d", max)) == nil
}

// MinLength reports whether the value is at least min characters.
func MinLength(value string, min int) bool {
	return rules.Var(value, fmt.Sprintf("min=%d", min)) == nil
}

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty, -
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var fieldErrors FieldErrors
	for _, e := range validationErrs {
		fieldErrors.Add(e.Field(), v.friendlyMessage(e))
	}

	return fieldErrors.Err()
}

func (v *Validator) friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
