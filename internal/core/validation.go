// internal/core/validation.go
package core

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of every date in the system.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate    = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidRequest = errors.New("invalid request body")
)

// Regular expression for valid table/column names (alphanumeric + underscore)
var nameValidationRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// IsValidIdentifier checks if a string is safe to splice into SQL as a table name.
func IsValidIdentifier(name string) bool {
	return nameValidationRegex.MatchString(name) && len(name) <= 64
}

// ParseDate normalizes a client supplied date to YYYY-MM-DD.
// Full RFC3339 timestamps are accepted and truncated to their date part.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(DateLayout), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// IsValidDate reports whether ParseDate would accept s.
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// ParseOptionalDate treats nil and blank strings as "not supplied".
func ParseOptionalDate(s *string) (*string, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	d, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CheckDateRange rejects an end date earlier than the start date. Either bound may be absent.
func CheckDateRange(start, end *string) error {
	if start == nil || end == nil {
		return nil
	}
	if *end < *start {
		return fmt.Errorf("%w: end_date %s precedes start_date %s", ErrInvalidDate, *end, *start)
	}
	return nil
}
