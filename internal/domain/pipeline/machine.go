package pipeline

import (
	"fmt"
	"sync"
)

// transitions is the fixed lifecycle graph. Phases advance strictly forward;
// TriggerFail is permitted from every in-flight phase, and TriggerReset only
// from terminal states back to idle.
var transitions = map[State]map[Trigger]State{
	StateIdle: {
		TriggerBegin: StateValidating,
	},
	StateValidating: {
		TriggerPrepare: StatePreparing,
		TriggerFail:    StateFailed,
	},
	StatePreparing: {
		TriggerAssess: StateAssessing,
		TriggerFail:   StateFailed,
	},
	StateAssessing: {
		TriggerGenerate: StateGenerating,
		TriggerFail:     StateFailed,
	},
	StateGenerating: {
		TriggerComplete: StateCompleted,
		TriggerFail:     StateFailed,
	},
	StateCompleted: {
		TriggerReset: StateIdle,
	},
	StateFailed: {
		TriggerReset: StateIdle,
	},
}

// Machine tracks the state of one submission session and validates every
// transition against the lifecycle graph. It is safe for concurrent use; the
// single-flight guarantee comes from Begin being the only way out of idle.
type Machine struct {
	mu    sync.Mutex
	state State
}

// NewMachine returns a machine in the idle state.
func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CanFire returns true if the trigger is permitted in the current state.
func (m *Machine) CanFire(trigger Trigger) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := transitions[m.state][trigger]
	return ok
}

// Fire executes the trigger, moving to the next state if the lifecycle graph
// permits it.
func (m *Machine) Fire(trigger Trigger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := transitions[m.state][trigger]
	if !ok {
		return fmt.Errorf("%w: cannot fire %s from %s", ErrInvalidTransition, trigger, m.state)
	}
	m.state = next
	return nil
}

// Begin claims the machine for a new submission attempt. It is the
// single-flight gate: if an attempt is already in flight the claim is
// rejected with ErrSubmissionInProgress instead of racing.
func (m *Machine) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.InFlight() {
		return ErrSubmissionInProgress
	}
	m.state = StateValidating
	return nil
}

// PermittedTriggers returns all triggers that can fire in the current state.
func (m *Machine) PermittedTriggers() []Trigger {
	m.mu.Lock()
	defer m.mu.Unlock()

	permitted := make([]Trigger, 0, len(transitions[m.state]))
	for trigger := range transitions[m.state] {
		permitted = append(permitted, trigger)
	}
	return permitted
}
