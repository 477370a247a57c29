package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure so the transport layer can map it
// to a status code without string matching.
type ErrorKind string

const (
	KindValidation     ErrorKind = "VALIDATION"
	KindAuthentication ErrorKind = "AUTHENTICATION"
	KindAuthorization  ErrorKind = "AUTHORIZATION"
	KindInvalidState   ErrorKind = "INVALID_STATE"
	KindForbiddenField ErrorKind = "FORBIDDEN_FIELD"
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindConflict       ErrorKind = "CONFLICT"
)

// Error is a structured domain failure: a kind plus a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

// AuthenticationError means the caller is not (or no longer) identified:
// missing, invalid or expired credentials.
func AuthenticationError(format string, args ...any) *Error {
	return newError(KindAuthentication, format, args...)
}

// AuthorizationError means an identified caller lacks the required role.
func AuthorizationError(format string, args ...any) *Error {
	return newError(KindAuthorization, format, args...)
}

func InvalidStateError(format string, args ...any) *Error {
	return newError(KindInvalidState, format, args...)
}

func ForbiddenFieldError(format string, args ...any) *Error {
	return newError(KindForbiddenField, format, args...)
}

func NotFoundError(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func ConflictError(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

// KindOf returns the kind of a domain error, or "" for any other error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
