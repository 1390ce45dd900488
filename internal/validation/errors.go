package validation

import "fmt"

// Kind distinguishes validation failure conditions so callers can react
// per condition instead of per message.
type Kind string

const (
	KindInvalidShape   Kind = "invalid_request_shape"
	KindMissingField   Kind = "missing_field"
	KindWrongType      Kind = "wrong_type"
	KindInvalidEnum    Kind = "invalid_enum"
	KindUnknownProcess Kind = "unknown_process"
)

// Error is a validation failure with a machine-readable kind.
type Error struct {
	Kind     Kind
	Field    string
	Expected string
	Value    string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidShape:
		return "request must be a structured object"
	case KindMissingField:
		return fmt.Sprintf("request must have %s", e.Field)
	case KindWrongType:
		return fmt.Sprintf("%s must be type %s", e.Field, e.Expected)
	case KindInvalidEnum:
		return fmt.Sprintf("%s invalid: %q", e.Field, e.Value)
	case KindUnknownProcess:
		return fmt.Sprintf("process invalid: %q", e.Value)
	default:
		return "invalid request"
	}
}

func invalidShape() *Error {
	return &Error{Kind: KindInvalidShape}
}

func missingField(name string) *Error {
	return &Error{Kind: KindMissingField, Field: name}
}

func wrongType(name, expected string) *Error {
	return &Error{Kind: KindWrongType, Field: name, Expected: expected}
}

func invalidEnum(name, value string) *Error {
	return &Error{Kind: KindInvalidEnum, Field: name, Value: value}
}

func unknownProcess(name string) *Error {
	return &Error{Kind: KindUnknownProcess, Field: "process", Value: name}
}
