package arch

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to test an error returned by any encoder
// against one of these.
var (
	ErrRange           = errors.New("value out of range")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrFlagConflict    = errors.New("conflicting flags")
	ErrFormMismatch    = errors.New("spec does not match instruction form")
	ErrUnimplemented   = errors.New("not implemented")
)

// Error is a failure of one of the kinds above with a message naming the
// violated constraint.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Rangef(format string, args ...interface{}) error {
	return newError(ErrRange, format, args...)
}

func InvalidArgumentf(format string, args ...interface{}) error {
	return newError(ErrInvalidArgument, format, args...)
}

func FlagConflictf(format string, args ...interface{}) error {
	return newError(ErrFlagConflict, format, args...)
}

func FormMismatchf(format string, args ...interface{}) error {
	return newError(ErrFormMismatch, format, args...)
}

func Unimplementedf(format string, args ...interface{}) error {
	return newError(ErrUnimplemented, format, args...)
}
