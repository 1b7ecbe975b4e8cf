// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "cookbook/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// EchoValidator validates request DTOs against their `validate` struct tags.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates the validator echo uses for c.Validate calls.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Violations surface as the shared
// validation error so the error middleware renders them as 400s.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
