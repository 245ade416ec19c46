package tracker

import (
	"errors"
	"fmt"
)

// ErrKind classifies service errors so frontends can map them to a
// user-facing response without string matching.
type ErrKind string

const (
	KindNotFound    ErrKind = "not_found"
	KindConflict    ErrKind = "conflict"
	KindDenied      ErrKind = "denied"
	KindInvalid     ErrKind = "invalid"
	KindUnavailable ErrKind = "unavailable"
	KindInvariant   ErrKind = "invariant"
)

type trackError struct {
	kind ErrKind
	err  error
}

func (e trackError) Error() string {
	if e.err == nil {
		return string(e.kind)
	}
	return e.err.Error()
}

func (e trackError) Unwrap() error {
	return e.err
}

func makeError(kind ErrKind, err error) error {
	if err == nil {
		err = errors.New(string(kind))
	}

	var existing trackError
	if errors.As(err, &existing) {
		if existing.kind != "" {
			return existing
		}
	}

	return trackError{kind: kind, err: err}
}

func notFound(format string, args ...any) error {
	return makeError(KindNotFound, fmt.Errorf(format, args...))
}

func conflict(format string, args ...any) error {
	return makeError(KindConflict, fmt.Errorf(format, args...))
}

func denied(format string, args ...any) error {
	return makeError(KindDenied, fmt.Errorf(format, args...))
}

func invalid(format string, args ...any) error {
	return makeError(KindInvalid, fmt.Errorf(format, args...))
}

func invariant(format string, args ...any) error {
	return makeError(KindInvariant, fmt.Errorf(format, args...))
}

// unavailable wraps a store failure as transient; callers may retry.
func unavailable(err error, action string) error {
	return makeError(KindUnavailable, fmt.Errorf("%s: %w", action, err))
}

// Kind returns the classification of a service error, or "" for errors
// that did not come from this package.
func Kind(err error) ErrKind {
	var te trackError
	if errors.As(err, &te) {
		return te.kind
	}
	return ""
}

func IsNotFound(err error) bool    { return Kind(err) == KindNotFound }
func IsConflict(err error) bool    { return Kind(err) == KindConflict }
func IsDenied(err error) bool      { return Kind(err) == KindDenied }
func IsInvalid(err error) bool     { return Kind(err) == KindInvalid }
func IsUnavailable(err error) bool { return Kind(err) == KindUnavailable }
func IsInvariant(err error) bool   { return Kind(err) == KindInvariant }
