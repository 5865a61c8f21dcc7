package scoring

import "fmt"

// ValidationError is the only error kind the scoring core produces. It marks
// malformed required input; sparse optional fields never trigger it, they take
// their documented neutral defaults instead. The core never substitutes a zero
// score for a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid observation: %s: %s", e.Field, e.Message)
}

func invalidf(field, format string, a ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}
