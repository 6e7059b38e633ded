package entity

import "time"

// Submission statuses recorded in the audit trail.
const (
	SubmissionStarted   = "STARTED"
	SubmissionCompleted = "COMPLETED"
	SubmissionDegraded  = "DEGRADED" // eligibility obtained, plan generation failed
	SubmissionFailed    = "FAILED"
)

// Submission is one audit row per submission attempt.
type Submission struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"session_id"`
	State       string     `json:"state"`
	Status      string     `json:"status"`
	ErrorDetail string     `json:"error_detail,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
