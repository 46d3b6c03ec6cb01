package scrape

import (
	"errors"
	"fmt"
)

// ErrNoData signals that the first gallery page held no parseable payload at
// all. Callers respond by trying the embedded profile-state strategies, not
// by treating the creator as empty.
var ErrNoData = errors.New("no extractable data")

// NavKind distinguishes transient navigation failures so callers can give
// differentiated guidance.
type NavKind string

const (
	NavKindNetwork NavKind = "network"
	NavKindTimeout NavKind = "timeout"
)

// NavigationError is a transient, retryable-by-caller navigation failure.
// The engine itself never auto-retries navigation.
type NavigationError struct {
	URL  string
	Kind NavKind
	Err  error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed (%s) for %s: %v", e.Kind, e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// Is matches any *NavigationError, or one of the same kind when the target
// specifies a kind.
func (e *NavigationError) Is(target error) bool {
	t, ok := target.(*NavigationError)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}
