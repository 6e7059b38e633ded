package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/application/port"
	"github.com/carepath/medicaid-intake/internal/domain/entity"
	"github.com/carepath/medicaid-intake/internal/domain/intake"
	"github.com/carepath/medicaid-intake/internal/domain/pipeline"
	"github.com/carepath/medicaid-intake/internal/domain/session"
)

// SubmitOutcome is the result of a completed submission attempt. Degraded
// means eligibility was assessed but plan generation failed; that is still a
// success for navigation purposes.
type SubmitOutcome struct {
	SubmissionID string          `json:"submissionId"`
	Eligibility  session.Results `json:"eligibility"`
	Planning     session.Results `json:"planning,omitempty"`
	Degraded     bool            `json:"degraded"`
	Warning      string          `json:"warning,omitempty"`
}

// SubmissionService runs the submission pipeline: validate, prepare the
// planner payload, assess eligibility, generate the plan, complete. Phases
// advance the session's state machine and progress tracker in lockstep; the
// machine rejects a second submit while one is in flight.
type SubmissionService struct {
	backend     port.PlannerBackend
	submissions port.SubmissionRepository
	drafts      *DraftService
	logger      *zap.Logger
	now         func() time.Time
}

// NewSubmissionService creates the pipeline service.
func NewSubmissionService(
	backend port.PlannerBackend,
	submissions port.SubmissionRepository,
	drafts *DraftService,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		backend:     backend,
		submissions: submissions,
		drafts:      drafts,
		logger:      logger,
		now:         time.Now,
	}
}

// Submit runs the full pipeline for a session. Validation and mapping
// failures abort before any network call; an assessment failure aborts the
// attempt; a plan-generation failure degrades the outcome but does not fail
// it. The loading flag is cleared on every path out.
func (s *SubmissionService) Submit(ctx context.Context, fs *FormSession) (*SubmitOutcome, error) {
	if err := fs.Machine.Begin(); err != nil {
		return nil, err
	}

	fs.Tracker.Reset()
	fs.Store.SetLoading(true)
	defer fs.Store.SetLoading(false)

	record := fs.Record()
	submissionID := uuid.NewString()
	s.auditStart(ctx, submissionID, fs.ID, record.State)

	fail := func(message string, err error) error {
		fs.Tracker.SetError(message)
		if fireErr := fs.Machine.Fire(pipeline.TriggerFail); fireErr != nil {
			s.logger.Error("Failed to mark pipeline failed", zap.Error(fireErr))
		}
		s.auditFinish(ctx, submissionID, entity.SubmissionFailed, message)
		return err
	}

	// Phase: validate. Display gating is forced on so the applicant sees
	// every problem, but the check itself never depended on display flags.
	fs.ForceValidationDisplay()
	validation := intake.Validate(&record)
	if !validation.Valid {
		return nil, fail("Please correct the highlighted fields", &ValidationError{Fields: validation.Errors})
	}
	if missing := requiredFieldGaps(&record); len(missing) > 0 {
		return nil, fail("Missing required information", &ValidationError{Fields: missing})
	}

	// Phase: prepare.
	if err := fs.Machine.Fire(pipeline.TriggerPrepare); err != nil {
		return nil, fail("Internal pipeline error", err)
	}
	fs.Tracker.NextStep()

	clientInfo := MapClientInfo(&record, s.now())
	assets := MapAssets(&record)
	income := MapIncome(&record)
	expenses := MapExpenses(&record)
	medicalInfo := MapMedicalInfo(&record)
	livingInfo := MapLivingInfo(&record)

	assessReq := port.AssessRequest{
		ClientInfo: clientInfo,
		Assets:     assets,
		Income:     income,
		State:      record.State,
	}
	if problems := preflight(assessReq); len(problems) > 0 {
		s.logger.Error("Mapped payload failed pre-flight checks",
			zap.String("session_id", fs.ID),
			zap.Strings("problems", problems))
		return nil, fail("Unable to prepare your information for assessment", &MappingError{Problems: problems})
	}

	// The store is written before any network call so the results view stays
	// consistent with the submitted data even if a later phase fails.
	fs.Store.SetClientInfo(clientInfo)
	fs.Store.SetAssets(assets)
	fs.Store.SetIncome(income)
	fs.Store.SetExpenses(expenses)
	fs.Store.SetMedicalInfo(medicalInfo)
	fs.Store.SetLivingInfo(livingInfo)
	fs.Store.SetState(record.State)

	// Phase: assess. A missing response or status "error" is fatal to the
	// attempt.
	if err := fs.Machine.Fire(pipeline.TriggerAssess); err != nil {
		return nil, fail("Internal pipeline error", err)
	}
	fs.Tracker.NextStep()

	assessResp, err := s.backend.AssessEligibility(ctx, assessReq)
	if err != nil || assessResp.IsError() {
		fs.Store.SetEligibilityResults(nil)
		message := assessmentFailureMessage(assessResp, err)
		s.logger.Error("Eligibility assessment failed",
			zap.String("session_id", fs.ID),
			zap.Error(err))
		return nil, fail(message, &AssessmentError{Message: message})
	}
	eligibility := session.Results(assessResp.Data)
	fs.Store.SetEligibilityResults(eligibility)

	// Phase: generate. Failure here is non-fatal: the eligibility results
	// already obtained are enough to proceed, so the attempt degrades
	// instead of aborting.
	if err := fs.Machine.Fire(pipeline.TriggerGenerate); err != nil {
		return nil, fail("Internal pipeline error", err)
	}
	fs.Tracker.NextStep()

	outcome := &SubmitOutcome{
		SubmissionID: submissionID,
		Eligibility:  eligibility,
	}

	planReq := port.PlanRequest{
		ClientInfo:  clientInfo,
		Assets:      assets,
		Income:      income,
		Expenses:    expenses,
		MedicalInfo: medicalInfo,
		LivingInfo:  livingInfo,
		State:       record.State,
	}
	planResp, err := s.backend.GenerateComprehensivePlan(ctx, planReq)
	if err != nil || planResp.IsError() {
		s.logger.Warn("Plan generation failed, continuing with eligibility only",
			zap.String("session_id", fs.ID),
			zap.Error(err))
		outcome.Degraded = true
		outcome.Warning = "Your eligibility results are ready, but plan recommendations are temporarily unavailable"
	} else {
		planning := session.Results(planResp.Data)
		fs.Store.SetPlanningResults(planning)
		outcome.Planning = planning
	}

	// Phase: complete.
	if err := fs.Machine.Fire(pipeline.TriggerComplete); err != nil {
		return nil, fail("Internal pipeline error", err)
	}
	fs.Tracker.CompleteAll()

	status := entity.SubmissionCompleted
	if outcome.Degraded {
		status = entity.SubmissionDegraded
	}
	s.auditFinish(ctx, submissionID, status, outcome.Warning)

	if err := s.drafts.Clear(ctx, fs.ID); err != nil {
		s.logger.Warn("Failed to clear draft after submission",
			zap.String("session_id", fs.ID),
			zap.Error(err))
	}

	s.logger.Info("Submission completed",
		zap.String("session_id", fs.ID),
		zap.String("submission_id", submissionID),
		zap.Bool("degraded", outcome.Degraded))

	return outcome, nil
}

// History returns the audit trail for a session.
func (s *SubmissionService) History(ctx context.Context, sessionID string) ([]*entity.Submission, error) {
	return s.submissions.ListBySession(ctx, sessionID)
}

// requiredFieldGaps re-checks the four required fields independently of the
// validator, so a validator regression cannot let an incomplete record reach
// the network.
func requiredFieldGaps(r *intake.FormRecord) map[string]string {
	missing := make(map[string]string)
	if strings.TrimSpace(r.ApplicantName) == "" {
		missing["applicantName"] = "Applicant name is required"
	}
	if r.ApplicantBirthDate == nil {
		missing["applicantBirthDate"] = "Applicant birth date is required"
	}
	if strings.TrimSpace(r.State) == "" {
		missing["state"] = "State of residence is required"
	}
	if strings.TrimSpace(r.MaritalStatus) == "" {
		missing["maritalStatus"] = "Marital status is required"
	}
	return missing
}

// preflight runs structural checks on the mapped payload before the network
// call, to catch contract drift between mapping and the planner.
func preflight(req port.AssessRequest) []string {
	var problems []string
	if strings.TrimSpace(req.ClientInfo.Name) == "" {
		problems = append(problems, "clientInfo.name is empty")
	}
	if req.ClientInfo.Age < 0 {
		problems = append(problems, "clientInfo.age is negative")
	}
	if strings.TrimSpace(req.ClientInfo.MaritalStatus) == "" {
		problems = append(problems, "clientInfo.maritalStatus is empty")
	}
	if strings.TrimSpace(req.ClientInfo.State) == "" {
		problems = append(problems, "clientInfo.state is empty")
	}
	if strings.TrimSpace(req.State) == "" {
		problems = append(problems, "state is empty")
	}
	if req.Assets.Countable < 0 {
		problems = append(problems, "assets.countable is negative")
	}
	return problems
}

func assessmentFailureMessage(resp *port.PlannerResponse, err error) string {
	if resp != nil && resp.Message != "" {
		return resp.Message
	}
	if err != nil {
		return fmt.Sprintf("Eligibility service unavailable: %v", err)
	}
	return "Unable to assess eligibility at this time"
}

func (s *SubmissionService) auditStart(ctx context.Context, id, sessionID, state string) {
	if s.submissions == nil {
		return
	}
	sub := &entity.Submission{
		ID:        id,
		SessionID: sessionID,
		State:     state,
		Status:    entity.SubmissionStarted,
		StartedAt: s.now(),
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		s.logger.Warn("Failed to record submission attempt", zap.Error(err))
	}
}

func (s *SubmissionService) auditFinish(ctx context.Context, id, status, detail string) {
	if s.submissions == nil {
		return
	}
	if err := s.submissions.Finish(ctx, id, status, detail, s.now()); err != nil {
		s.logger.Warn("Failed to finalize submission record", zap.Error(err))
	}
}
