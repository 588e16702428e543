// Package apperrors defines the error taxonomy surfaced to API clients.
// Every error carries a kind that maps onto an HTTP status, and a message
// that is part of the API contract (the frontend matches on some of them).
package apperrors

import "net/http"

// Kind classifies an error for HTTP status mapping.
type Kind int

const (
	// KindValidation covers bad or missing input and business-rule violations.
	KindValidation Kind = iota
	// KindAuth covers missing or invalid session tokens.
	KindAuth
	// KindConflict covers uniqueness violations such as a taken email.
	KindConflict
	// KindNotFound covers lookups by an identifier that resolves to nothing.
	KindNotFound
	// KindInternal covers unexpected failures; the message is never
	// forwarded verbatim to clients.
	KindInternal
)

// Error is the single error type handlers translate into JSON responses.
type Error struct {
	Kind    Kind
	Message string
	// Fields names the request fields that were empty, for validation
	// errors that report them (serialized as emptyFields).
	Fields []string
}

func (e *Error) Error() string { return e.Message }

// HTTPStatus maps the error kind to a response status code. Conflicts map
// to 400 rather than 409 to stay wire-compatible with existing clients of
// the signup endpoint.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func ValidationFields(msg string, fields []string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Auth(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }
