// Package apperr defines the error kinds every engine operation returns, so
// callers (HTTP handlers, the bulk coordinator) can branch on kind instead of
// on message text.
package apperr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind string

const (
	KindDenied            Kind = "authorization-denied"
	KindNotFound          Kind = "not-found"
	KindInvalidTransition Kind = "invalid-transition"
	KindConflict          Kind = "conflict"
	KindInsufficientStock Kind = "insufficient-stock"
	KindTimeout           Kind = "timeout"
	KindInvalidInput      Kind = "invalid-input"
	KindCancelled         Kind = "cancelled"
	KindInternal          Kind = "internal"
)

var (
	ErrDenied            = &Error{Kind: KindDenied}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock}
	ErrTimeout           = &Error{Kind: KindTimeout}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrCancelled         = &Error{Kind: KindCancelled}
)

// Error carries a Kind plus the operation that produced it. Reason is a short
// caller-safe explanation (for denials it is the gate reason, e.g. "not-owner").
type Error struct {
	Kind   Kind
	Op     string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind when target is a bare sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" || t.Reason != "" || t.Err != nil {
		return e == t
	}
	return e.Kind == t.Kind
}

func New(kind Kind, op, reason string) *Error {
	return &Error{Kind: kind, Op: op, Reason: reason}
}

func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Reason: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf classifies err. Deadline expiry anywhere in the chain is a timeout,
// regardless of whether a store already wrapped it.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return KindTimeout
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}
	return KindInternal
}

// ReasonOf returns the Reason of the outermost *Error in err's chain.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// Normalize returns err unchanged when it already carries a kind, otherwise it
// wraps it with the classified kind under op.
func Normalize(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && KindOf(err) == e.Kind {
		return err
	}
	return Wrap(KindOf(err), op, err)
}
