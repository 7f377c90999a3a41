// Package errors defines the failure taxonomy shared by the services and the
// HTTP layer, combining stdlib errors with pkg/errors for stack traces.
package errors

import (
	stderrors "errors"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a failure for the response layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindBadIdentifier
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindBadIdentifier:
		return "BAD_IDENTIFIER"
	case KindNotFound:
		return "NOT_FOUND"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	default:
		return "INTERNAL"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindBadIdentifier:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// InternalMessage is the only text a caller ever sees for an internal failure.
const InternalMessage = "internal server error"

// Error is a classified failure. Messages are safe to show to the caller;
// the cause is for server-side logs only.
type Error struct {
	Kind     Kind
	Messages []string
	cause    error
}

func (e *Error) Error() string {
	if e.Kind == KindInternal && e.cause != nil {
		return e.Kind.String() + ": " + e.cause.Error()
	}
	if len(e.Messages) == 0 {
		return e.Kind.String()
	}
	msg := e.Kind.String() + ": " + e.Messages[0]
	for _, m := range e.Messages[1:] {
		msg += "; " + m
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

// Validation reports every violated input rule at once.
func Validation(messages []string) *Error {
	return &Error{Kind: KindValidation, Messages: messages}
}

func BadIdentifier(message string) *Error {
	return &Error{Kind: KindBadIdentifier, Messages: []string{message}}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Messages: []string{message}}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Messages: []string{message}}
}

// Internal wraps an unexpected failure, attaching a stack trace if the cause
// has none.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Messages: []string{InternalMessage}, cause: pkgerrors.WithStack(cause)}
}

// KindOf classifies err. Anything not built by this package is internal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessagesOf returns the caller-facing messages for err.
func MessagesOf(err error) []string {
	var e *Error
	if stderrors.As(err, &e) && e.Kind != KindInternal && len(e.Messages) > 0 {
		return e.Messages
	}
	return []string{InternalMessage}
}

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Wrap returns an error annotating err with a stack trace and the supplied message.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf returns an error annotating err with a stack trace and the format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// Errorf formats according to a format specifier and returns the string as a
// value that satisfies error with stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}
