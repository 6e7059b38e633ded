// Package repository provides the sqlite-backed implementations of the
// persistence ports.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/application/port"
)

// DraftRepository stores encoded draft envelopes, one row per session.
type DraftRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDraftRepository creates a draft repository.
func NewDraftRepository(db *sql.DB, logger *zap.Logger) port.DraftRepository {
	return &DraftRepository{db: db, logger: logger}
}

// Put upserts the session's draft, replacing any prior payload.
func (r *DraftRepository) Put(ctx context.Context, sessionID, payload string, savedAt time.Time) error {
	query := `
		INSERT INTO drafts (session_id, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`

	if _, err := r.db.ExecContext(ctx, query, sessionID, payload, savedAt); err != nil {
		r.logger.Error("Failed to store draft", zap.String("session_id", sessionID), zap.Error(err))
		return fmt.Errorf("failed to store draft: %w", err)
	}
	return nil
}

// Get reads the session's draft payload.
func (r *DraftRepository) Get(ctx context.Context, sessionID string) (string, bool, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		"SELECT payload FROM drafts WHERE session_id = ?", sessionID,
	).Scan(&payload)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		r.logger.Error("Failed to read draft", zap.String("session_id", sessionID), zap.Error(err))
		return "", false, fmt.Errorf("failed to read draft: %w", err)
	}
	return payload, true, nil
}

// Delete removes the session's draft; deleting a missing row is a no-op.
func (r *DraftRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM drafts WHERE session_id = ?", sessionID); err != nil {
		r.logger.Error("Failed to delete draft", zap.String("session_id", sessionID), zap.Error(err))
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
