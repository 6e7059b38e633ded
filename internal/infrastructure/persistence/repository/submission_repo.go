package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/application/port"
	"github.com/carepath/medicaid-intake/internal/domain/entity"
)

// SubmissionRepository records the audit trail of submission attempts.
type SubmissionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a submission repository.
func NewSubmissionRepository(db *sql.DB, logger *zap.Logger) port.SubmissionRepository {
	return &SubmissionRepository{db: db, logger: logger}
}

// Create inserts a new attempt row.
func (r *SubmissionRepository) Create(ctx context.Context, sub *entity.Submission) error {
	query := `
		INSERT INTO submissions (id, session_id, state, status, error_detail, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.SessionID,
		sub.State,
		sub.Status,
		sub.ErrorDetail,
		sub.StartedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create submission record", zap.Error(err))
		return fmt.Errorf("failed to create submission record: %w", err)
	}
	return nil
}

// Finish records an attempt's terminal status.
func (r *SubmissionRepository) Finish(ctx context.Context, id, status, errorDetail string, completedAt time.Time) error {
	query := `
		UPDATE submissions
		SET status = ?, error_detail = ?, completed_at = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query, status, errorDetail, completedAt, id)
	if err != nil {
		r.logger.Error("Failed to finalize submission record", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to finalize submission record: %w", err)
	}
	return nil
}

// ListBySession returns a session's attempts, newest first.
func (r *SubmissionRepository) ListBySession(ctx context.Context, sessionID string) ([]*entity.Submission, error) {
	query := `
		SELECT id, session_id, state, status, error_detail, started_at, completed_at
		FROM submissions
		WHERE session_id = ?
		ORDER BY started_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		r.logger.Error("Failed to list submissions", zap.String("session_id", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*entity.Submission
	for rows.Next() {
		var sub entity.Submission
		var completedAt sql.NullTime
		if err := rows.Scan(
			&sub.ID,
			&sub.SessionID,
			&sub.State,
			&sub.Status,
			&sub.ErrorDetail,
			&sub.StartedAt,
			&completedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		if completedAt.Valid {
			sub.CompletedAt = &completedAt.Time
		}
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}
