package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/application/port"
	"github.com/carepath/medicaid-intake/internal/domain/intake"
)

// DraftService persists partial intake records so an applicant can resume
// later. Corrupt, stale, and expired drafts are purged on read and reported
// as absent; draft problems never reach the applicant as errors.
type DraftService struct {
	repo   port.DraftRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewDraftService creates a draft service.
func NewDraftService(repo port.DraftRepository, logger *zap.Logger) *DraftService {
	return &DraftService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Save persists the record as the session's draft, replacing any prior one.
// Essentially empty records are skipped so an untouched form never leaves a
// draft behind.
func (s *DraftService) Save(ctx context.Context, sessionID string, r *intake.FormRecord, complete bool) error {
	if r.EssentiallyEmpty() {
		s.logger.Debug("Skipping draft save for essentially empty record",
			zap.String("session_id", sessionID))
		return nil
	}

	envelope := intake.NewDraftEnvelope(r, s.now(), complete)
	payload, err := envelope.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	if err := s.repo.Put(ctx, sessionID, payload, s.now()); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}

	s.logger.Debug("Draft saved", zap.String("session_id", sessionID))
	return nil
}

// Load returns the session's draft record, or nil when no usable draft
// exists. Drafts that fail to decode, were saved under a different schema
// version, or are older than the retention window are deleted and reported
// as absent.
func (s *DraftService) Load(ctx context.Context, sessionID string) (*intake.FormRecord, error) {
	payload, found, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	if !found {
		return nil, nil
	}

	envelope, err := intake.DecodeDraftEnvelope(payload)
	if err != nil {
		s.logger.Warn("Discarding corrupt draft",
			zap.String("session_id", sessionID),
			zap.Error(err))
		s.clearQuietly(ctx, sessionID)
		return nil, nil
	}

	if envelope.Stale() {
		s.logger.Info("Discarding draft saved under old schema version",
			zap.String("session_id", sessionID),
			zap.String("draft_version", envelope.Version))
		s.clearQuietly(ctx, sessionID)
		return nil, nil
	}

	if envelope.Expired(s.now()) {
		s.logger.Info("Discarding expired draft",
			zap.String("session_id", sessionID),
			zap.Duration("age", envelope.Age(s.now())))
		s.clearQuietly(ctx, sessionID)
		return nil, nil
	}

	record := envelope.FormData
	if record == nil {
		record = intake.NewFormRecord()
	}
	intake.RecalculateTotals(record)
	return record, nil
}

// Clear removes the session's draft unconditionally.
func (s *DraftService) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// Has reports whether a decodable draft exists for the session. Decode
// failures read as absent.
func (s *DraftService) Has(ctx context.Context, sessionID string) bool {
	payload, found, err := s.repo.Get(ctx, sessionID)
	if err != nil || !found {
		return false
	}
	_, err = intake.DecodeDraftEnvelope(payload)
	return err == nil
}

// Age returns the draft's age in hours, rounded, or nil when no draft can be
// read.
func (s *DraftService) Age(ctx context.Context, sessionID string) *int {
	payload, found, err := s.repo.Get(ctx, sessionID)
	if err != nil || !found {
		return nil
	}
	envelope, err := intake.DecodeDraftEnvelope(payload)
	if err != nil {
		return nil
	}
	hours := int(math.Round(envelope.Age(s.now()).Hours()))
	return &hours
}

func (s *DraftService) clearQuietly(ctx context.Context, sessionID string) {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("Failed to remove unusable draft",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}
