// Package validator exposes the process-wide go-playground validator.
package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// GetValidator returns the shared validator, building it on first use.
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Var validates a single value against a tag expression such as "required,email".
func Var(value any, tag string) error {
	return GetValidator().Var(value, tag)
}

// Struct validates the `validate` tags of a struct.
func Struct(v any) error {
	return GetValidator().Struct(v)
}
