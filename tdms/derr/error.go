// Package derr holds the error kinds a TDMS decode can fail with.
package derr

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindIo Kind = iota + 1
	KindTruncatedInput
	KindInvalidSegmentHeader
	KindNotImplemented
	KindMissingPreviousIndex
	KindUnknownType
	KindInvalidDimension
	KindCorruptSegment
	KindInvalidString
	KindNotFound
)

var kindNames = map[Kind]string{
	KindIo:                   "io",
	KindTruncatedInput:       "truncated input",
	KindInvalidSegmentHeader: "invalid segment header",
	KindNotImplemented:       "not implemented",
	KindMissingPreviousIndex: "missing previous index",
	KindUnknownType:          "unknown type",
	KindInvalidDimension:     "invalid dimension",
	KindCorruptSegment:       "corrupt segment",
	KindInvalidString:        "invalid string",
	KindNotFound:             "not found",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return name
}

// Sentinels for errors.Is. A *Error matches the sentinel of its own kind.
var (
	ErrIo                   = &Error{Kind: KindIo, Offset: -1}
	ErrTruncatedInput       = &Error{Kind: KindTruncatedInput, Offset: -1}
	ErrInvalidSegmentHeader = &Error{Kind: KindInvalidSegmentHeader, Offset: -1}
	ErrNotImplemented       = &Error{Kind: KindNotImplemented, Offset: -1}
	ErrMissingPreviousIndex = &Error{Kind: KindMissingPreviousIndex, Offset: -1}
	ErrUnknownType          = &Error{Kind: KindUnknownType, Offset: -1}
	ErrInvalidDimension     = &Error{Kind: KindInvalidDimension, Offset: -1}
	ErrCorruptSegment       = &Error{Kind: KindCorruptSegment, Offset: -1}
	ErrInvalidString        = &Error{Kind: KindInvalidString, Offset: -1}
	ErrNotFound             = &Error{Kind: KindNotFound, Offset: -1}
)

type (
	// Error is a decode failure positioned at the byte offset where it was
	// detected. Offset is -1 when no position applies.
	Error struct {
		Kind   Kind
		Offset int64
		Detail string
		Err    error
	}
)

func (r *Error) Error() string {
	msg := r.Kind.String()
	if r.Offset >= 0 {
		msg = fmt.Sprintf("%s at offset %d", msg, r.Offset)
	}
	if r.Detail != "" {
		msg += ": " + r.Detail
	}
	if r.Err != nil {
		msg += ": " + r.Err.Error()
	}
	return msg
}

func (r *Error) Unwrap() error {
	return r.Err
}

func (r *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == r.Kind
}

func New(kind Kind, offset int64, format string, args ...any) error {
	return &Error{
		Kind:   kind,
		Offset: offset,
		Detail: fmt.Sprintf(format, args...),
	}
}

func Wrap(kind Kind, offset int64, err error) error {
	return &Error{
		Kind:   kind,
		Offset: offset,
		Err:    err,
	}
}

// KindOf finds the first *Error in the chain of err and returns its kind,
// or 0 if there is none.
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return 0
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// OffsetOf returns the offset carried by the first *Error in the chain of err.
func OffsetOf(err error) (int64, bool) {
	var target *Error
	if errors.As(err, &target) && target.Offset >= 0 {
		return target.Offset, true
	}
	return 0, false
}
