package offerpdf

import "fmt"

// Kind is the machine-readable classification of a generation failure
type Kind string

const (
	KindOfferNotFound    Kind = "offer_not_found"
	KindInvalidMode      Kind = "invalid_mode"
	KindForbidden        Kind = "forbidden"
	KindGenerationFailed Kind = "generation_failed"
)

// Error is the structured failure surface of the PDF core. Callers branch on
// Kind; Message is safe to show to a human.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError builds a structured error with an optional wrapped cause
func NewError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}
