package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrSessionNotFound is returned for operations on an unknown session ID.
var ErrSessionNotFound = errors.New("intake session not found")

// ValidationError blocks a submission on required-field or format rules. It
// is recoverable: the form stays editable and the field map drives inline
// messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// MappingError means the mapped planner payload failed pre-flight shape
// checks before any network call. It signals client/backend contract drift,
// not bad user input.
type MappingError struct {
	Problems []string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("payload pre-flight failed: %s", strings.Join(e.Problems, "; "))
}

// AssessmentError means the eligibility call failed. It is terminal for the
// attempt; the form state is preserved for a retry.
type AssessmentError struct {
	Message string
}

func (e *AssessmentError) Error() string {
	return fmt.Sprintf("eligibility assessment failed: %s", e.Message)
}
