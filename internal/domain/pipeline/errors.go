package pipeline

import "errors"

var (
	// ErrInvalidTransition is returned when a trigger is not permitted in the
	// current state.
	ErrInvalidTransition = errors.New("invalid submission state transition")

	// ErrSubmissionInProgress is returned when a new submission is requested
	// while one is already in flight.
	ErrSubmissionInProgress = errors.New("submission already in progress")
)
