package pipeline

import "sync"

// StepStatus is the display status of one progress step.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepActive    StepStatus = "active"
	StepCompleted StepStatus = "completed"
	StepError     StepStatus = "error"
)

// Step is one named phase shown in the submission progress indicator.
type Step struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Status StepStatus `json:"status"`
}

// Snapshot is a point-in-time copy of tracker state for rendering.
type Snapshot struct {
	Steps       []Step  `json:"steps"`
	CurrentStep int     `json:"currentStep"`
	Progress    float64 `json:"progress"`
	Message     string  `json:"message,omitempty"`
}

// Tracker drives the submission progress indicator: a fixed ordered list of
// steps whose statuses move strictly forward, one step at a time. There is no
// previous-step or skip operation.
type Tracker struct {
	mu      sync.RWMutex
	steps   []Step
	current int
	message string
}

// SubmissionSteps returns the step list for the standard submission flow.
func SubmissionSteps() []Step {
	return []Step{
		{ID: "validate", Label: "Validating your information"},
		{ID: "prepare", Label: "Preparing your financial profile"},
		{ID: "assess", Label: "Assessing Medicaid eligibility"},
		{ID: "generate", Label: "Generating your protection plan"},
		{ID: "complete", Label: "Finalizing results"},
	}
}

// NewTracker creates a tracker over the given steps with the first step
// active and the rest pending.
func NewTracker(steps []Step) *Tracker {
	t := &Tracker{steps: make([]Step, len(steps))}
	copy(t.steps, steps)
	t.resetLocked()
	return t
}

func (t *Tracker) resetLocked() {
	for i := range t.steps {
		t.steps[i].Status = StepPending
	}
	if len(t.steps) > 0 {
		t.steps[0].Status = StepActive
	}
	t.current = 0
	t.message = ""
}

// Reset returns the tracker to its initial state for a fresh submission
// attempt.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

// NextStep marks the current step completed and activates the following one.
// At the last step it completes the step and stays put.
func (t *Tracker) NextStep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.steps) == 0 {
		return
	}
	t.steps[t.current].Status = StepCompleted
	if t.current < len(t.steps)-1 {
		t.current++
		t.steps[t.current].Status = StepActive
	}
}

// SetError marks the current step as failed and records the message. Other
// steps are left untouched.
func (t *Tracker) SetError(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.steps) == 0 {
		return
	}
	t.steps[t.current].Status = StepError
	t.message = message
}

// CompleteAll marks every step completed, used when the pipeline reaches its
// terminal success state.
func (t *Tracker) CompleteAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.steps {
		t.steps[i].Status = StepCompleted
	}
	if len(t.steps) > 0 {
		t.current = len(t.steps) - 1
	}
}

// Snapshot returns a copy of the tracker state. Progress is always the share
// of completed steps, 0-100.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	steps := make([]Step, len(t.steps))
	copy(steps, t.steps)

	completed := 0
	for _, s := range steps {
		if s.Status == StepCompleted {
			completed++
		}
	}
	progress := 0.0
	if len(steps) > 0 {
		progress = float64(completed) / float64(len(steps)) * 100
	}

	return Snapshot{
		Steps:       steps,
		CurrentStep: t.current,
		Progress:    progress,
		Message:     t.message,
	}
}
