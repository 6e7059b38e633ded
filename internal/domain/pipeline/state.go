// Package pipeline models the submission lifecycle: an explicit state machine
// over the validate/prepare/assess/generate/complete phases, and the progress
// tracker that mirrors those phases for the client.
package pipeline

// State is a phase of the submission lifecycle.
type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StatePreparing  State = "PREPARING"
	StateAssessing  State = "ASSESSING"
	StateGenerating State = "GENERATING"
	StateCompleted  State = "COMPLETED"
	StateFailed     State = "FAILED"
)

var validStates = map[State]bool{
	StateIdle:       true,
	StateValidating: true,
	StatePreparing:  true,
	StateAssessing:  true,
	StateGenerating: true,
	StateCompleted:  true,
	StateFailed:     true,
}

var terminalStates = map[State]bool{
	StateCompleted: true,
	StateFailed:    true,
}

// IsValid returns true if the state is a known lifecycle state.
func (s State) IsValid() bool {
	return validStates[s]
}

// IsTerminal returns true if a submission attempt in this state has ended;
// only Reset leaves a terminal state.
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// InFlight reports whether a submission attempt is actively running. A new
// submit is rejected while the machine is in flight.
func (s State) InFlight() bool {
	return s != StateIdle && !s.IsTerminal()
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}
