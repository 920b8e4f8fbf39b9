// internal/core/query_params.go
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ViewMode selects one of the canned mission queries.
type ViewMode string

const (
	ViewAll      ViewMode = "all"
	ViewByAgency ViewMode = "by-agency"
	ViewMars     ViewMode = "mars"
)

var ErrInvalidViewMode = errors.New("invalid view mode")

var ErrInvalidID = errors.New("invalid id")

// viewAliases maps every accepted spelling to its canonical mode.
// "normal", "group-by" and "nested" are the names the dashboard has always sent.
var viewAliases = map[string]ViewMode{
	"":          ViewAll,
	"all":       ViewAll,
	"normal":    ViewAll,
	"by-agency": ViewByAgency,
	"group-by":  ViewByAgency,
	"mars":      ViewMars,
	"nested":    ViewMars,
}

// ParseViewMode resolves the ?view= query parameter.
func ParseViewMode(raw string) (ViewMode, error) {
	mode, ok := viewAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("%w: '%s' (expected all, by-agency or mars)", ErrInvalidViewMode, raw)
	}
	return mode, nil
}

// ParseID parses a positive integer identifier from a path or query parameter.
func ParseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: '%s' must be a positive integer, got '%s'", ErrInvalidID, name, raw)
	}
	return id, nil
}

// ParseOptionalID is ParseID for filters, where an empty value means "no filter".
func ParseOptionalID(name, raw string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := ParseID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
