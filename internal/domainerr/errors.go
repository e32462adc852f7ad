// internal/domainerr/errors.go
package domainerr

import (
	"errors"
	"fmt"
)

// Error kinds shared by every domain package. Callers match them with errors.Is.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrOutOfRange       = errors.New("out of range")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrInvalidState     = errors.New("invalid state")
	ErrNotFound         = errors.New("not found")
)

// InvalidArgument wraps ErrInvalidArgument with a formatted detail.
func InvalidArgument(format string, args ...any) error {
	return wrap(ErrInvalidArgument, format, args...)
}

// OutOfRange wraps ErrOutOfRange with a formatted detail.
func OutOfRange(format string, args ...any) error {
	return wrap(ErrOutOfRange, format, args...)
}

// CurrencyMismatch reports two monetary amounts in different currencies.
func CurrencyMismatch(left, right string) error {
	return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, left, right)
}

// InvalidState wraps ErrInvalidState with a formatted detail.
func InvalidState(format string, args ...any) error {
	return wrap(ErrInvalidState, format, args...)
}

// NotFound wraps ErrNotFound with a formatted detail.
func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
