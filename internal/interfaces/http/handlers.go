package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carepath/medicaid-intake/internal/application/service"
	"github.com/carepath/medicaid-intake/internal/domain/intake"
	"github.com/carepath/medicaid-intake/internal/domain/pipeline"
)

// Handlers contains all HTTP request handlers.
type Handlers struct {
	sessions    *service.SessionService
	submissions *service.SubmissionService
	reports     *service.ReportService
	logger      Logger
}

// NewHandlers creates a Handlers instance.
func NewHandlers(
	sessions *service.SessionService,
	submissions *service.SubmissionService,
	reports *service.ReportService,
	logger Logger,
) *Handlers {
	return &Handlers{
		sessions:    sessions,
		submissions: submissions,
		reports:     reports,
		logger:      logger,
	}
}

// Response is the standard JSON envelope.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
}

// SessionResponse describes a session's form state.
type SessionResponse struct {
	SessionID string            `json:"sessionId"`
	Record    intake.FormRecord `json:"record"`
	Errors    map[string]string `json:"errors"`
	Valid     bool              `json:"valid"`
	HasDraft  bool              `json:"hasDraft"`
	DraftAge  *int              `json:"draftAgeHours,omitempty"`
}

// CreateSessionRequest optionally names a prior session to reattach to, so a
// client can reach a draft saved before the service restarted.
type CreateSessionRequest struct {
	ResumeSessionID string `json:"resumeSessionId"`
}

// FieldChangeRequest is the body for applying one field change.
type FieldChangeRequest struct {
	Field string `json:"field" binding:"required"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// ReportRequest is the body for backend report generation.
type ReportRequest struct {
	ReportType   string `json:"reportType"`
	OutputFormat string `json:"outputFormat"`
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// CreateSession handles POST /api/sessions. The body is optional.
func (h *Handlers) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	fs := h.sessions.Create(c.Request.Context(), req.ResumeSessionID)
	hasDraft, age, _ := h.sessions.DraftStatus(c.Request.Context(), fs.ID)

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data: SessionResponse{
			SessionID: fs.ID,
			Record:    fs.Record(),
			Errors:    map[string]string{},
			Valid:     false,
			HasDraft:  hasDraft,
			DraftAge:  age,
		},
	})
}

// GetSession handles GET /api/sessions/:id.
func (h *Handlers) GetSession(c *gin.Context) {
	fs, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	record := fs.Record()
	show, interacted := fs.Flags()
	validation := intake.Validate(&record)
	hasDraft, age, _ := h.sessions.DraftStatus(c.Request.Context(), fs.ID)

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: SessionResponse{
			SessionID: fs.ID,
			Record:    record,
			Errors:    validation.Displayed(show, interacted),
			Valid:     validation.Valid,
			HasDraft:  hasDraft,
			DraftAge:  age,
		},
	})
}

// CloseSession handles DELETE /api/sessions/:id.
func (h *Handlers) CloseSession(c *gin.Context) {
	if err := h.sessions.Close(c.Param("id")); err != nil {
		h.notFound(c)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ApplyFieldChange handles POST /api/sessions/:id/fields.
func (h *Handlers) ApplyFieldChange(c *gin.Context) {
	var req FieldChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	record, validation, err := h.sessions.ApplyChange(c.Param("id"), intake.FieldChange{
		Name:  req.Field,
		Kind:  intake.FieldKind(req.Kind),
		Value: req.Value,
	})
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			h.notFound(c)
			return
		}
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: SessionResponse{
			SessionID: c.Param("id"),
			Record:    record,
			Errors:    validation.Displayed(false, true),
			Valid:     validation.Valid,
		},
	})
}

// Submit handles POST /api/sessions/:id/submit.
func (h *Handlers) Submit(c *gin.Context) {
	fs, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	outcome, err := h.submissions.Submit(c.Request.Context(), fs)
	if err != nil {
		h.submitError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: outcome})
}

func (h *Handlers) submitError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var mappingErr *service.MappingError
	var assessErr *service.AssessmentError

	switch {
	case errors.Is(err, pipeline.ErrSubmissionInProgress):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, Response{
			Success: false,
			Error:   "Please correct the highlighted fields",
			Fields:  validationErr.Fields,
		})
	case errors.As(err, &mappingErr):
		h.logger.Error("Submission pre-flight failed", "problems", mappingErr.Problems)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Unable to prepare your information for assessment",
			Fields:  mappingErr.Problems,
		})
	case errors.As(err, &assessErr):
		c.JSON(http.StatusBadGateway, Response{Success: false, Error: assessErr.Message})
	default:
		h.logger.Error("Submission failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "submission failed"})
	}
}

// GetProgress handles GET /api/sessions/:id/progress.
func (h *Handlers) GetProgress(c *gin.Context) {
	fs, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"pipeline": fs.Machine.State(),
			"progress": fs.Tracker.Snapshot(),
			"loading":  fs.Store.Loading(),
		},
	})
}

// GetResults handles GET /api/sessions/:id/results.
func (h *Handlers) GetResults(c *gin.Context) {
	fs, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"clientInfo":  fs.Store.ClientInfo(),
			"assets":      fs.Store.Assets(),
			"income":      fs.Store.Income(),
			"expenses":    fs.Store.Expenses(),
			"eligibility": fs.Store.EligibilityResults(),
			"planning":    fs.Store.PlanningResults(),
			"state":       fs.Store.State(),
		},
	})
}

// ListSubmissions handles GET /api/sessions/:id/submissions.
func (h *Handlers) ListSubmissions(c *gin.Context) {
	subs, err := h.submissions.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to list submissions", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to list submissions"})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: subs})
}

// DraftStatus handles GET /api/sessions/:id/draft.
func (h *Handlers) DraftStatus(c *gin.Context) {
	hasDraft, age, err := h.sessions.DraftStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"hasDraft": hasDraft, "ageHours": age},
	})
}

// RestoreDraft handles POST /api/sessions/:id/draft/restore.
func (h *Handlers) RestoreDraft(c *gin.Context) {
	restored, err := h.sessions.RestoreDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			h.notFound(c)
			return
		}
		// Unreadable drafts count as absent; storage failures only get logged.
		h.logger.Error("Draft restore failed", "error", err)
		c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"restored": false}})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"restored": restored}})
}

// DiscardDraft handles DELETE /api/sessions/:id/draft.
func (h *Handlers) DiscardDraft(c *gin.Context) {
	if err := h.sessions.DiscardDraft(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			h.notFound(c)
			return
		}
		h.logger.Error("Draft discard failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to discard draft"})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// GenerateReport handles POST /api/sessions/:id/report.
func (h *Handlers) GenerateReport(c *gin.Context) {
	fs, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	data, err := h.reports.Generate(c.Request.Context(), fs, req.ReportType, req.OutputFormat)
	if err != nil {
		if errors.Is(err, service.ErrNoResults) {
			c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
			return
		}
		h.logger.Error("Report generation failed", "error", err)
		c.JSON(http.StatusBadGateway, Response{Success: false, Error: "report generation failed"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// ExportWorkbook handles GET /api/sessions/:id/report/export.
func (h *Handlers) ExportWorkbook(c *gin.Context) {
	fs, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.notFound(c)
		return
	}

	workbook, err := h.reports.ExportWorkbook(fs)
	if err != nil {
		if errors.Is(err, service.ErrNoResults) {
			c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
			return
		}
		h.logger.Error("Workbook export failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="planning-summary.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// EligibilityRules handles GET /api/rules/:state.
func (h *Handlers) EligibilityRules(c *gin.Context) {
	rules, err := h.reports.Rules(c.Request.Context(), c.Param("state"))
	if err != nil {
		h.logger.Error("Rules lookup failed", "error", err)
		c.JSON(http.StatusBadGateway, Response{Success: false, Error: "rules lookup failed"})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: rules})
}

// DownloadReport handles GET /api/reports/download/:reportId.
func (h *Handlers) DownloadReport(c *gin.Context) {
	document, contentType, err := h.reports.Download(c.Request.Context(), c.Param("reportId"))
	if err != nil {
		h.logger.Error("Report download failed", "error", err)
		c.JSON(http.StatusBadGateway, Response{Success: false, Error: "report download failed"})
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, document)
}

func (h *Handlers) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{Success: false, Error: "session not found"})
}
