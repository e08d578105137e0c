package errors

import (
	"fmt"
	"strings"
)

// ErrNotFound is returned when a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation carries every problem found in a submitted configuration
type ErrValidation struct {
	Issues []string
}

func (e *ErrValidation) Error() string {
	return "validation failed: " + strings.Join(e.Issues, "; ")
}

// Add records an issue
func (e *ErrValidation) Add(format string, args ...interface{}) {
	e.Issues = append(e.Issues, fmt.Sprintf(format, args...))
}

// OrNil returns nil when no issues were recorded
func (e *ErrValidation) OrNil() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// ErrNotConfigured is returned before any request is attempted when a
// required destination is missing
type ErrNotConfigured struct {
	Setting string
}

func (e *ErrNotConfigured) Error() string {
	return fmt.Sprintf("%s is not configured", e.Setting)
}

// ErrStale is returned when a result was computed for a filter that is no
// longer current
type ErrStale struct {
	Generation uint64
	Current    uint64
}

func (e *ErrStale) Error() string {
	return fmt.Sprintf("stale result: generation %d, current %d", e.Generation, e.Current)
}
