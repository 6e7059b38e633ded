package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/application/port"
	"github.com/carepath/medicaid-intake/internal/domain/session"
)

// ErrNoResults is returned when report operations run before a successful
// submission has populated the planning store.
var ErrNoResults = errors.New("no planning results available for this session")

// ReportService requests report generation from the planner backend and
// renders the local results workbook.
type ReportService struct {
	backend  port.PlannerBackend
	exporter port.ResultsExporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService creates the report service.
func NewReportService(backend port.PlannerBackend, exporter port.ResultsExporter, logger *zap.Logger) *ReportService {
	return &ReportService{
		backend:  backend,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate asks the backend to render a report from the session's planning
// results and caches the response in the store.
func (s *ReportService) Generate(ctx context.Context, fs *FormSession, reportType, outputFormat string) (session.Results, error) {
	planning := fs.Store.PlanningResults()
	if planning == nil {
		return nil, ErrNoResults
	}

	if reportType == "" {
		reportType = "comprehensive"
	}
	if outputFormat == "" {
		outputFormat = "pdf"
	}

	resp, err := s.backend.GenerateReport(ctx, port.ReportRequest{
		PlanningResults: planning,
		ClientInfo:      fs.Store.ClientInfo(),
		ReportType:      reportType,
		OutputFormat:    outputFormat,
		State:           fs.Store.State(),
	})
	if err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("report generation failed: %s", resp.Message)
	}

	data := session.Results(resp.Data)
	fs.Store.SetReportData(data)

	s.logger.Info("Report generated",
		zap.String("session_id", fs.ID),
		zap.String("report_type", reportType))
	return data, nil
}

// Download fetches a previously generated report document from the backend.
func (s *ReportService) Download(ctx context.Context, reportID string) ([]byte, string, error) {
	return s.backend.DownloadReport(ctx, reportID)
}

// Rules returns the backend's eligibility rule set for a state, for display.
func (s *ReportService) Rules(ctx context.Context, state string) (map[string]interface{}, error) {
	return s.backend.EligibilityRules(ctx, state)
}

// ExportWorkbook renders the session's results into an xlsx summary. It
// needs eligibility results but tolerates a missing plan.
func (s *ReportService) ExportWorkbook(fs *FormSession) ([]byte, error) {
	eligibility := fs.Store.EligibilityResults()
	if eligibility == nil {
		return nil, ErrNoResults
	}

	return s.exporter.ExportWorkbook(port.ExportInput{
		ClientInfo:  fs.Store.ClientInfo(),
		Assets:      fs.Store.Assets(),
		Income:      fs.Store.Income(),
		Expenses:    fs.Store.Expenses(),
		Eligibility: eligibility,
		Planning:    fs.Store.PlanningResults(),
		State:       fs.Store.State(),
		GeneratedAt: s.now(),
	})
}
