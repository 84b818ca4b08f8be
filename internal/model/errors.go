package model

import "fmt"

// FieldError reports a single input field that failed validation. The
// caller is expected to fix the field and retry.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewFieldError(field, msg string) *FieldError {
	return &FieldError{Field: field, Message: msg}
}
