package service

import (
	"errors"
	"fmt"
	"strings"

	"fopassistant/internal/tax"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrMalformedInput = errors.New("malformed input")
	ErrAlreadyExists  = errors.New("record already exists")

	// ErrNothingToUpdate is also an ErrMalformedInput.
	ErrNothingToUpdate = fmt.Errorf("%w: nothing to update", ErrMalformedInput)
)

// ViolationError rejects settings that break the rules of their group.
type ViolationError struct {
	Violations []tax.Violation
}

func (e *ViolationError) Error() string {
	codes := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		codes = append(codes, string(v))
	}
	return "group restrictions violated: " + strings.Join(codes, ", ")
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}

// notFoundOr maps gorm.ErrRecordNotFound to ErrNotFound and wraps anything else.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to fetch %s: %w", what, err)
}
