package forecast

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures for the HTTP error envelope.
type ErrorKind string

const (
	KindUpstream       ErrorKind = "upstream"
	KindDecode         ErrorKind = "decode"
	KindConfig         ErrorKind = "config"
	KindInvalidRequest ErrorKind = "invalid_request"
)

var (
	ErrMissingAnchor      = errors.New("anchor parameter missing from response")
	ErrMissingCredentials = errors.New("provider credentials not configured")
	ErrUnknownProvider    = errors.New("unknown provider")
)

// Error is a classified pipeline error.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a kind and operation name.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
