// Package port defines the interfaces between the application services and
// the infrastructure that backs them.
package port

import (
	"context"

	"github.com/carepath/medicaid-intake/internal/domain/entity"
)

// AssessRequest is the eligibility-assessment payload.
type AssessRequest struct {
	ClientInfo entity.ClientInfo `json:"clientInfo"`
	Assets     entity.Assets     `json:"assets"`
	Income     entity.Income     `json:"income"`
	State      string            `json:"state"`
}

// PlanRequest is the comprehensive-plan payload: the assessment payload plus
// the expense, medical, and living aggregates.
type PlanRequest struct {
	ClientInfo  entity.ClientInfo  `json:"clientInfo"`
	Assets      entity.Assets      `json:"assets"`
	Income      entity.Income      `json:"income"`
	Expenses    entity.Expenses    `json:"expenses"`
	MedicalInfo entity.MedicalInfo `json:"medicalInfo"`
	LivingInfo  entity.LivingInfo  `json:"livingInfo"`
	State       string             `json:"state"`
}

// ReportRequest asks the backend to render a report from prior planning
// results.
type ReportRequest struct {
	PlanningResults map[string]interface{} `json:"planningResults"`
	ClientInfo      entity.ClientInfo      `json:"clientInfo"`
	ReportType      string                 `json:"reportType"`
	OutputFormat    string                 `json:"outputFormat"`
	State           string                 `json:"state"`
}

// PlannerResponse is the common shape of planner replies. Status "error"
// carries a Message; everything else the backend returned is in Data. Some
// backend routes nest the payload under a data key and some return it at the
// top level, so Data is always the normalized payload either way.
type PlannerResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// IsError reports whether the backend flagged the call as failed.
func (r *PlannerResponse) IsError() bool {
	return r == nil || r.Status == "error"
}

// PlannerBackend is the external planning service. All computation of
// eligibility, strategies, and report content happens behind this interface.
type PlannerBackend interface {
	// AssessEligibility calls POST /api/eligibility/assess.
	AssessEligibility(ctx context.Context, req AssessRequest) (*PlannerResponse, error)

	// GenerateComprehensivePlan calls POST /api/planning/comprehensive.
	GenerateComprehensivePlan(ctx context.Context, req PlanRequest) (*PlannerResponse, error)

	// GenerateReport calls POST /api/reports/generate.
	GenerateReport(ctx context.Context, req ReportRequest) (*PlannerResponse, error)

	// EligibilityRules calls GET /api/eligibility/rules/{state}.
	EligibilityRules(ctx context.Context, state string) (map[string]interface{}, error)

	// DownloadReport calls GET /api/reports/download/{reportId} and returns
	// the raw document and its content type.
	DownloadReport(ctx context.Context, reportID string) ([]byte, string, error)
}
