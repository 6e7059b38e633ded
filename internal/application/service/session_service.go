package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/domain/intake"
	"github.com/carepath/medicaid-intake/internal/domain/pipeline"
	"github.com/carepath/medicaid-intake/internal/domain/session"
)

// FormSession is one applicant's in-progress intake: the form record, its
// interaction flags, the submission machine and progress tracker, the
// session-owned planning store, and the draft autosaver.
type FormSession struct {
	ID string

	mu             sync.Mutex
	record         *intake.FormRecord
	hasInteracted  bool
	showValidation bool

	Machine   *pipeline.Machine
	Tracker   *pipeline.Tracker
	Store     *session.PlanningStore
	autosaver *Autosaver
}

// Record returns a copy of the current form record.
func (fs *FormSession) Record() intake.FormRecord {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return *fs.record
}

// Flags returns the validation display gating flags.
func (fs *FormSession) Flags() (showValidation, hasInteracted bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.showValidation, fs.hasInteracted
}

// ForceValidationDisplay turns on error display, done at submit time so a
// rejected submission surfaces every problem at once.
func (fs *FormSession) ForceValidationDisplay() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.showValidation = true
}

// SessionConfig tunes session behavior.
type SessionConfig struct {
	AutosaveDelay   time.Duration
	AutosaveEnabled bool
}

// SessionService owns the live intake sessions. Sessions are memory-resident
// for their lifetime; only drafts survive the process.
type SessionService struct {
	drafts *DraftService
	cfg    SessionConfig
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*FormSession
}

// NewSessionService creates the session registry.
func NewSessionService(drafts *DraftService, cfg SessionConfig, logger *zap.Logger) *SessionService {
	return &SessionService{
		drafts:   drafts,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*FormSession),
	}
}

// Create starts an intake session. A non-empty resumeID reattaches to that
// session's identity, so drafts persisted before a process restart stay
// reachable; if the session is still live it is returned as-is. With no
// resumeID a fresh ID is minted.
func (s *SessionService) Create(ctx context.Context, resumeID string) *FormSession {
	if resumeID != "" {
		if existing, err := s.Get(resumeID); err == nil {
			return existing
		}
	}

	id := resumeID
	if id == "" {
		id = uuid.NewString()
	}

	fs := &FormSession{
		ID:      id,
		record:  intake.NewFormRecord(),
		Machine: pipeline.NewMachine(),
		Tracker: pipeline.NewTracker(pipeline.SubmissionSteps()),
		Store:   session.NewPlanningStore(),
	}

	fs.autosaver = NewAutosaver(s.cfg.AutosaveDelay, s.cfg.AutosaveEnabled, func() {
		record := fs.Record()
		if err := s.drafts.Save(context.Background(), fs.ID, &record, false); err != nil {
			s.logger.Warn("Autosave failed",
				zap.String("session_id", fs.ID),
				zap.Error(err))
		}
	}, s.logger)

	s.mu.Lock()
	s.sessions[fs.ID] = fs
	s.mu.Unlock()

	s.logger.Info("Intake session created", zap.String("session_id", fs.ID))
	return fs
}

// Get looks up a live session.
func (s *SessionService) Get(sessionID string) (*FormSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fs, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return fs, nil
}

// ApplyChange mutates one field of the session's record, marks the session
// as interacted, mirrors the jurisdiction and marital status into the
// planning store, and restarts the autosave window.
func (s *SessionService) ApplyChange(sessionID string, change intake.FieldChange) (intake.FormRecord, intake.ValidationResult, error) {
	fs, err := s.Get(sessionID)
	if err != nil {
		return intake.FormRecord{}, intake.ValidationResult{}, err
	}

	fs.mu.Lock()
	if err := intake.Apply(fs.record, change); err != nil {
		fs.mu.Unlock()
		return intake.FormRecord{}, intake.ValidationResult{}, err
	}
	fs.hasInteracted = true
	record := *fs.record
	fs.mu.Unlock()

	switch intake.CanonicalFieldName(change.Name) {
	case "state":
		fs.Store.SetState(record.State)
	case "maritalStatus":
		info := fs.Store.ClientInfo()
		info.MaritalStatus = record.MaritalStatus
		fs.Store.SetClientInfo(info)
	}

	fs.autosaver.Touch()

	return record, intake.Validate(&record), nil
}

// RestoreDraft replaces the session's record with its stored draft. Returns
// false when no usable draft exists.
func (s *SessionService) RestoreDraft(ctx context.Context, sessionID string) (bool, error) {
	fs, err := s.Get(sessionID)
	if err != nil {
		return false, err
	}

	draft, err := s.drafts.Load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if draft == nil {
		return false, nil
	}

	fs.mu.Lock()
	fs.record = draft
	fs.hasInteracted = true
	fs.mu.Unlock()

	if draft.State != "" {
		fs.Store.SetState(draft.State)
	}
	if draft.MaritalStatus != "" {
		info := fs.Store.ClientInfo()
		info.MaritalStatus = draft.MaritalStatus
		fs.Store.SetClientInfo(info)
	}

	s.logger.Info("Draft restored", zap.String("session_id", sessionID))
	return true, nil
}

// DiscardDraft deletes the session's stored draft.
func (s *SessionService) DiscardDraft(ctx context.Context, sessionID string) error {
	if _, err := s.Get(sessionID); err != nil {
		return err
	}
	return s.drafts.Clear(ctx, sessionID)
}

// DraftStatus reports draft presence and age in hours for the session.
func (s *SessionService) DraftStatus(ctx context.Context, sessionID string) (bool, *int, error) {
	if _, err := s.Get(sessionID); err != nil {
		return false, nil, err
	}
	return s.drafts.Has(ctx, sessionID), s.drafts.Age(ctx, sessionID), nil
}

// Close flushes any pending autosave, resets the planning store, and drops
// the session from the registry.
func (s *SessionService) Close(sessionID string) error {
	fs, err := s.Get(sessionID)
	if err != nil {
		return err
	}

	fs.autosaver.Flush()
	fs.autosaver.Stop()
	fs.Store.Reset()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.logger.Info("Intake session closed", zap.String("session_id", sessionID))
	return nil
}
