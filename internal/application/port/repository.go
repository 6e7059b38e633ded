package port

import (
	"context"
	"time"

	"github.com/carepath/medicaid-intake/internal/domain/entity"
)

// DraftRepository stores one encoded draft envelope per intake session,
// overwriting any prior draft for that session.
type DraftRepository interface {
	// Put writes the encoded envelope for the session.
	Put(ctx context.Context, sessionID, payload string, savedAt time.Time) error

	// Get returns the encoded envelope for the session. found is false when
	// no draft exists.
	Get(ctx context.Context, sessionID string) (payload string, found bool, err error)

	// Delete removes the session's draft. Deleting an absent draft is not an
	// error.
	Delete(ctx context.Context, sessionID string) error
}

// SubmissionRepository records the audit trail of submission attempts.
type SubmissionRepository interface {
	// Create inserts a new attempt in the STARTED status.
	Create(ctx context.Context, sub *entity.Submission) error

	// Finish records the terminal status of an attempt.
	Finish(ctx context.Context, id, status, errorDetail string, completedAt time.Time) error

	// ListBySession returns attempts for a session, newest first.
	ListBySession(ctx context.Context, sessionID string) ([]*entity.Submission, error)
}
