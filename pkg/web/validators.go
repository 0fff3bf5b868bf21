package web

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// NewValidator returns a validator with the project specific tags registered:
//
//	notblank - the string must contain at least one non-whitespace character
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic("failed to register notblank validation: " + err.Error())
	}
	return v
}

// ValidationErrors flattens validator errors into field -> "failed on rule: <tag>".
// ok is false when err is not a validation error.
func ValidationErrors(err error) (map[string]string, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}
	errorResponse := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
	}
	return errorResponse, true
}
