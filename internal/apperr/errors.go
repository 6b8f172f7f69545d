package apperr

import (
	"errors"
	"fmt"
)

// Base error kinds. Service errors wrap one of these so callers can classify
// them with errors.Is without parsing messages.
var (
	ErrInvalid       = errors.New("invalid argument")
	ErrUnauthorized  = errors.New("authentication required")
	ErrForbidden     = errors.New("access denied")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type wrapped struct {
	msg  string
	kind error
}

func (w wrapped) Error() string { return w.msg }
func (w wrapped) Unwrap() error { return w.kind }

// New returns an error that formats as msg but unwraps as kind.
func New(kind error, msg string) error {
	return wrapped{msg: msg, kind: kind}
}

// Newf is New with formatting.
func Newf(kind error, format string, args ...any) error {
	return wrapped{msg: fmt.Sprintf(format, args...), kind: kind}
}
