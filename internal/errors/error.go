// Package errors provides the error values returned by the shop service layers.
package errors

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var ErrCategoryNotFound = errors.New("category not found")
var ErrProductNotFound = errors.New("product not found")
var ErrOrderNotFound = errors.New("order not found")
var ErrShopNotFound = errors.New("shop not found")

var ErrShopAlreadyExists = errors.New("shop already exists for this owner")

var ErrValidation = errors.New("validation failed")
var ErrImageUpload = errors.New("failed to upload image")

// ValidationError describes rejected input. Field and Message name the first failure,
// Fields holds every failing field.
type ValidationError struct {
	Field   string
	Message string
	Fields  map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Fields: map[string]string{field: message}}
}

// NewFieldsValidationError builds a ValidationError from field failures.
// The first failure is the lexically smallest field so the message is stable.
func NewFieldsValidationError(fields map[string]string) *ValidationError {
	keys := slices.Sorted(maps.Keys(fields))
	if len(keys) == 0 {
		return &ValidationError{Message: ErrValidation.Error(), Fields: fields}
	}
	return &ValidationError{Field: keys[0], Message: fields[keys[0]], Fields: fields}
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
