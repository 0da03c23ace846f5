package http

import (
	"marketplace/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to Echo's Validator
// interface. Struct tag violations surface as ValueIsInvalid errors so the
// error mapper turns them into 400 responses.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator for request body structs.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks the struct against its validate tags.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}
