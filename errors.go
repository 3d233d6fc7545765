package winsched

import "fmt"

// ErrorKind discriminates the validation failures detected before any
// scheduler call is made.
type ErrorKind int

const (
	ErrInvalidDateFormat ErrorKind = iota
	ErrInvalidTimeFormat
	ErrUnknownTriggerKind
	ErrMissingRequiredField
	ErrInvalidFieldValue
)

// ValidationError reports which request field failed and why. Errors from the
// scheduler itself are never wrapped in this type; they pass through as-is.
type ValidationError struct {
	Kind  ErrorKind
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrInvalidDateFormat:
		return fmt.Sprintf("unrecognized date format for %s: %q", e.Field, e.Value)
	case ErrInvalidTimeFormat:
		return fmt.Sprintf("unrecognized time format for %s: %q", e.Field, e.Value)
	case ErrUnknownTriggerKind:
		return fmt.Sprintf("unknown trigger kind %q", e.Value)
	case ErrMissingRequiredField:
		return fmt.Sprintf("missing required field %s", e.Field)
	case ErrInvalidFieldValue:
		return fmt.Sprintf("invalid value for %s: %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid field %s: %q", e.Field, e.Value)
}

func invalidDate(field, value string) error {
	return &ValidationError{Kind: ErrInvalidDateFormat, Field: field, Value: value}
}

func invalidTime(field, value string) error {
	return &ValidationError{Kind: ErrInvalidTimeFormat, Field: field, Value: value}
}

func unknownTrigger(value string) error {
	return &ValidationError{Kind: ErrUnknownTriggerKind, Field: "trigger_type", Value: value}
}

func missingField(field string) error {
	return &ValidationError{Kind: ErrMissingRequiredField, Field: field}
}

func invalidValue(field, value string) error {
	return &ValidationError{Kind: ErrInvalidFieldValue, Field: field, Value: value}
}
