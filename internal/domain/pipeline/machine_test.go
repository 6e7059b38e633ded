package pipeline

import (
	"errors"
	"testing"
)

func TestMachine_HappyPath(t *testing.T) {
	m := NewMachine()
	if m.State() != StateIdle {
		t.Fatalf("initial state = %s, want %s", m.State(), StateIdle)
	}

	steps := []struct {
		trigger Trigger
		want    State
	}{
		{TriggerBegin, StateValidating},
		{TriggerPrepare, StatePreparing},
		{TriggerAssess, StateAssessing},
		{TriggerGenerate, StateGenerating},
		{TriggerComplete, StateCompleted},
	}

	for _, step := range steps {
		if err := m.Fire(step.trigger); err != nil {
			t.Fatalf("Fire(%s) error = %v", step.trigger, err)
		}
		if m.State() != step.want {
			t.Errorf("after %s: state = %s, want %s", step.trigger, m.State(), step.want)
		}
	}
}

func TestMachine_InvalidTransition(t *testing.T) {
	m := NewMachine()
	err := m.Fire(TriggerComplete)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire(complete) from idle: error = %v, want ErrInvalidTransition", err)
	}
	if m.State() != StateIdle {
		t.Errorf("failed fire should not change state, got %s", m.State())
	}
}

func TestMachine_FailFromAnyInFlightState(t *testing.T) {
	advance := map[State][]Trigger{
		StateValidating: {TriggerBegin},
		StatePreparing:  {TriggerBegin, TriggerPrepare},
		StateAssessing:  {TriggerBegin, TriggerPrepare, TriggerAssess},
		StateGenerating: {TriggerBegin, TriggerPrepare, TriggerAssess, TriggerGenerate},
	}

	for state, triggers := range advance {
		t.Run(string(state), func(t *testing.T) {
			m := NewMachine()
			for _, tr := range triggers {
				if err := m.Fire(tr); err != nil {
					t.Fatalf("setup Fire(%s) error = %v", tr, err)
				}
			}
			if err := m.Fire(TriggerFail); err != nil {
				t.Fatalf("Fire(fail) from %s error = %v", state, err)
			}
			if m.State() != StateFailed {
				t.Errorf("state = %s, want %s", m.State(), StateFailed)
			}
		})
	}
}

func TestMachine_ResetFromTerminal(t *testing.T) {
	m := NewMachine()
	mustFire(t, m, TriggerBegin, TriggerFail)

	if err := m.Fire(TriggerReset); err != nil {
		t.Fatalf("Fire(reset) error = %v", err)
	}
	if m.State() != StateIdle {
		t.Errorf("state = %s, want %s", m.State(), StateIdle)
	}
}

func TestMachine_BeginRejectsConcurrentAttempt(t *testing.T) {
	m := NewMachine()
	if err := m.Begin(); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := m.Begin(); !errors.Is(err, ErrSubmissionInProgress) {
		t.Errorf("second Begin() error = %v, want ErrSubmissionInProgress", err)
	}
}

func TestMachine_BeginResetsFromTerminal(t *testing.T) {
	for _, setup := range [][]Trigger{
		{TriggerBegin, TriggerFail},
		{TriggerBegin, TriggerPrepare, TriggerAssess, TriggerGenerate, TriggerComplete},
	} {
		m := NewMachine()
		mustFire(t, m, setup...)

		if err := m.Begin(); err != nil {
			t.Fatalf("Begin() after %s error = %v", m.State(), err)
		}
		if m.State() != StateValidating {
			t.Errorf("state = %s, want %s", m.State(), StateValidating)
		}
	}
}

func TestMachine_CanFire(t *testing.T) {
	m := NewMachine()
	if !m.CanFire(TriggerBegin) {
		t.Error("CanFire(begin) = false in idle, want true")
	}
	if m.CanFire(TriggerFail) {
		t.Error("CanFire(fail) = true in idle, want false")
	}
}

func mustFire(t *testing.T, m *Machine, triggers ...Trigger) {
	t.Helper()
	for _, tr := range triggers {
		if err := m.Fire(tr); err != nil {
			t.Fatalf("setup Fire(%s) error = %v", tr, err)
		}
	}
}
