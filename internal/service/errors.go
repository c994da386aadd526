package service

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error carries the message shown to the client. Kind is one of the
// sentinel errors above and is what errors.Is matches against.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func invalid(msg string) error      { return &Error{Kind: ErrValidation, Message: msg} }
func unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }
func notFound(msg string) error     { return &Error{Kind: ErrNotFound, Message: msg} }
func conflict(msg string) error     { return &Error{Kind: ErrConflict, Message: msg} }

const (
	MsgUnauthorized   = "Unauthorized Access"
	MsgInvalidToken   = "Invalid token"
	MsgMalformedToken = "Invalid or malformed token"
	MsgNoResource     = "Resource Doesn't Exist."
	MsgBadCategory    = "Invalid, category should be artist,album,track"
)

// firstMissing returns the name of the first field whose present flag is false.
func firstMissing(fields ...field) (string, bool) {
	for _, f := range fields {
		if !f.present {
			return f.name, true
		}
	}
	return "", false
}

type field struct {
	name    string
	present bool
}
