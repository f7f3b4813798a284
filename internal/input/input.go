// Package input converts raw prompt text into typed values.
//
// Functions here are pure: they never re-prompt or loop on bad input —
// retry behavior belongs to the menu that owns the terminal.
package input

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError reports raw input that could not be turned into a
// value. The menu prints Reason verbatim to the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// OptionalInt parses trimmed text into a non-negative integer.
//
// The contract, case by case:
//   - empty input with allowEmpty:  (nil, nil) — the "no value" marker
//   - empty input without:          *ValidationError
//   - non-numeric input:            *ValidationError
//   - negative number:              *ValidationError
//
// Used for the optional age field (allowEmpty = true) and for id
// prompts (allowEmpty = false).
func OptionalInt(raw string, allowEmpty bool) (*int64, error) {
	s := strings.TrimSpace(raw)

	if s == "" {
		if allowEmpty {
			return nil, nil
		}
		return nil, &ValidationError{Reason: "a number is required"}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("%q is not a valid integer", s)}
	}
	if n < 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("%d must not be negative", n)}
	}

	return &n, nil
}
