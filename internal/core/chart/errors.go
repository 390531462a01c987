package chart

import (
	"errors"
	"fmt"
)

// ErrInvalidSpecification matches every *InvalidSpecificationError via errors.Is.
var ErrInvalidSpecification = errors.New("invalid chart specification")

// InvalidSpecificationError rejects a chart request before any backend runs.
type InvalidSpecificationError struct {
	Field        string `json:"field"`
	Message      string `json:"message"`
	ExpectedType string `json:"expected_type,omitempty"`
	ActualType   string `json:"actual_type,omitempty"`
}

func (e *InvalidSpecificationError) Error() string {
	return fmt.Sprintf("invalid chart specification: field '%s': %s", e.Field, e.Message)
}

// Is lets callers match with errors.Is(err, ErrInvalidSpecification).
func (e *InvalidSpecificationError) Is(target error) bool {
	return target == ErrInvalidSpecification
}

// Details returns the structured fields for API error responses.
func (e *InvalidSpecificationError) Details() map[string]interface{} {
	d := map[string]interface{}{"field": e.Field}
	if e.ExpectedType != "" {
		d["expected_type"] = e.ExpectedType
		d["actual_type"] = e.ActualType
	}
	return d
}

func newFieldError(field, format string, args ...any) *InvalidSpecificationError {
	return &InvalidSpecificationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func newTypeMismatchError(field, column, actual string) *InvalidSpecificationError {
	return &InvalidSpecificationError{
		Field:        field,
		Message:      fmt.Sprintf("column %q must be numeric, got %s", column, actual),
		ExpectedType: "numeric",
		ActualType:   actual,
	}
}
