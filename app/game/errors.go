package game

import "fmt"

// Kind classifies a rejected request. Every rejection is reported only to the
// connection that issued it and leaves all room state untouched.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindState         Kind = "state"
	KindAuthorization Kind = "authorization"
	KindEconomic      Kind = "economic"
)

// Error is a non-fatal, client-reportable rejection.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func validationErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func stateErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func authErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func econErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindEconomic, Message: fmt.Sprintf(format, args...)}
}
