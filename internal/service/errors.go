package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure
type Kind string

const (
	KindStore    Kind = "store"
	KindInternal Kind = "internal"
)

// Error is the failure both services return. Err carries the message
// reported to clients.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the client-facing text: the underlying error without the op prefix
func (e *Error) Message() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

// KindOf returns the Kind of a service error, or KindInternal for any other error
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message of err
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message()
	}
	return err.Error()
}

func storeErr(op string, err error) *Error {
	return &Error{Kind: KindStore, Op: op, Err: err}
}
