package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID   = fmt.Errorf("invalid UUID format")
	ErrInvalidPeriod = fmt.Errorf("invalid period format")
	ErrEmptySlice    = fmt.Errorf("slice cannot be empty")
)

// Error collects per-field validation failures for a request.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateUUIDs validates a slice of UUIDs
func ValidateUUIDs(ids []string) error {
	if len(ids) == 0 {
		return ErrEmptySlice
	}
	for _, id := range ids {
		if err := ValidateUUID(id); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePeriod checks that a string is a YYYY-MM month key.
func ValidatePeriod(period string) error {
	if _, err := time.Parse("2006-01", period); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}
	return nil
}

// ValidatePeriodRange checks that both bounds are YYYY-MM month keys and
// that from does not come after to. Month keys compare correctly as strings.
func ValidatePeriodRange(from, to string) error {
	if err := ValidatePeriod(from); err != nil {
		return err
	}
	if err := ValidatePeriod(to); err != nil {
		return err
	}
	if from > to {
		return fmt.Errorf("%w: %s > %s", ErrInvalidPeriod, from, to)
	}
	return nil
}
