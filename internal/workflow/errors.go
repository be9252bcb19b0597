package workflow

import (
	"errors"
	"strings"
)

type Kind string

const (
	// KindPrecondition is a local check that failed before any remote call.
	KindPrecondition Kind = "precondition"
	KindRemote       Kind = "remote"
	KindBusy         Kind = "busy"
	KindClosed       Kind = "closed"
	// KindDone refuses a submit on a workflow that already succeeded.
	KindDone Kind = "done"
)

// RemoteMessage is shown for every failed create; the cause is only logged.
const RemoteMessage = "Something went wrong while submitting. Please try again."

// Error is what Submit returns. Message is safe to show to the user.
type Error struct {
	Kind    Kind
	Message string
	// Fields names the inputs a precondition failure is about.
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Precondition builds a precondition failure about fields.
func Precondition(message string, fields ...string) *Error {
	return &Error{Kind: KindPrecondition, Message: message, Fields: fields}
}

// MissingFields builds the standard message for empty required inputs.
func MissingFields(fields ...string) *Error {
	return Precondition("Please fill out all required fields (missing: "+strings.Join(fields, ", ")+").", fields...)
}

// KindOf returns the kind of a workflow error, or "" for anything else.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}

func asPrecondition(err error) *Error {
	var we *Error
	if errors.As(err, &we) && we.Kind == KindPrecondition {
		return we
	}
	return &Error{Kind: KindPrecondition, Message: err.Error(), Err: err}
}
