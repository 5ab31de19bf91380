package model

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateIdentity = errors.New("product already exists")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStorageBusy       = errors.New("busy, try again")
	ErrStorage           = errors.New("storage error")
	ErrValidation        = errors.New("validation error")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// LineError pins a commit failure to one cart line. Line is 1-based.
type LineError struct {
	Line    int
	Product string
	Err     error
}

func (e *LineError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInsufficientStock):
		return fmt.Sprintf("insufficient stock for %s", e.Product)
	case errors.Is(e.Err, ErrDuplicateIdentity):
		return fmt.Sprintf("product %s already exists", e.Product)
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("line %d: product %s not found", e.Line, e.Product)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
