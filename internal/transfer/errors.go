package transfer

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable error class surfaced to clients.
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindPartTooLarge    Kind = "part_too_large"
	KindMalformedPart   Kind = "malformed_part"
	KindQuotaExceeded   Kind = "quota_exceeded"
	KindCountLimit      Kind = "count_limit"
	KindNotFound        Kind = "not_found"
	KindIO              Kind = "io_error"
)

type Error struct {
	Kind   Kind
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func wrapIO(detail string, cause error) *Error {
	return &Error{Kind: KindIO, Detail: detail, cause: cause}
}

// KindOf classifies an arbitrary error; anything that is not a transfer
// error counts as a server-side I/O failure.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindIO
}

// Detail returns the client-safe description of an error. Causes (which may
// contain filesystem paths) are never included.
func Detail(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return te.Detail
	}
	return "internal error"
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
