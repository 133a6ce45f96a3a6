package countdown

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date accepted from the date picker.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidTarget indicates the target date string cannot be parsed.
	ErrInvalidTarget = errors.New("invalid target date")
	// ErrInvalidBreakdown indicates a breakdown violates its invariants.
	ErrInvalidBreakdown = errors.New("invalid breakdown")
)

// ParseTarget converts the picker value into an instant.
// Date-only values resolve to midnight UTC; full RFC 3339 instants are kept as given.
func ParseTarget(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTarget)
	}

	if parsed, err := time.Parse(DateLayout, trimmed); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidTarget, trimmed)
}

// FormatDate renders an instant the way the picker and remote endpoint expect.
func FormatDate(value time.Time) string {
	return value.UTC().Format(DateLayout)
}
