// Package apperror carries the error taxonomy the cart engine surfaces:
// every failure is a NotFound, an InvalidRequest, or an Internal fault.
// Transport adapters translate kinds into status codes but never change them.
package apperror

import "errors"

type Kind int

const (
	// KindNotFound: the resource does not exist for this owner.
	KindNotFound Kind = iota + 1
	// KindInvalidRequest: a precondition was violated by the caller.
	KindInvalidRequest
	// KindInternal: storage or backend failure, unexpected.
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InvalidRequest(message string) error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf classifies err. Anything that is not an *Error in the chain is an
// internal fault; no kind is ever downgraded to a generic one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message for err. Internal faults keep
// their cause out of the response body.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "Internal Server Error"
}
