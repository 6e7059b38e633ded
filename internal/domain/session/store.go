// Package session holds the planning store: the per-session, mutable state
// shared between the submission pipeline, the results view, and the report
// generator. It replaces the ambient global context of the original client
// with an explicitly owned store passed by reference.
package session

import (
	"sync"

	"github.com/carepath/medicaid-intake/internal/domain/entity"
)

// Results is whatever the planner backend returned, kept opaque: the service
// does not interpret eligibility or strategy content.
type Results map[string]interface{}

// PlanningStore is the session-lifetime state consumed by the results view
// and report generation. All access goes through typed accessors; writers are
// the submission pipeline and the explicit setters below.
type PlanningStore struct {
	mu sync.RWMutex

	clientInfo  entity.ClientInfo
	assets      entity.Assets
	income      entity.Income
	expenses    entity.Expenses
	medicalInfo entity.MedicalInfo
	livingInfo  entity.LivingInfo

	eligibilityResults Results
	planningResults    Results
	reportData         Results

	state   string
	loading bool
}

// NewPlanningStore creates a store with a placeholder client info object so
// readers never see a nil client before the first submission.
func NewPlanningStore() *PlanningStore {
	return &PlanningStore{
		clientInfo: entity.ClientInfo{HealthStatus: "good"},
	}
}

// Reset clears the store back to its initial placeholder state.
func (s *PlanningStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clientInfo = entity.ClientInfo{HealthStatus: "good"}
	s.assets = entity.Assets{}
	s.income = entity.Income{}
	s.expenses = entity.Expenses{}
	s.medicalInfo = entity.MedicalInfo{}
	s.livingInfo = entity.LivingInfo{}
	s.eligibilityResults = nil
	s.planningResults = nil
	s.reportData = nil
	s.state = ""
	s.loading = false
}

// ClientInfo returns the current client summary.
func (s *PlanningStore) ClientInfo() entity.ClientInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientInfo
}

// SetClientInfo replaces the client summary.
func (s *PlanningStore) SetClientInfo(ci entity.ClientInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientInfo = ci
}

// Assets returns the mapped asset buckets.
func (s *PlanningStore) Assets() entity.Assets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assets
}

// SetAssets replaces the mapped asset buckets.
func (s *PlanningStore) SetAssets(a entity.Assets) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = a
}

// Income returns the mapped income summary.
func (s *PlanningStore) Income() entity.Income {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.income
}

// SetIncome replaces the mapped income summary.
func (s *PlanningStore) SetIncome(i entity.Income) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.income = i
}

// Expenses returns the mapped expense summary.
func (s *PlanningStore) Expenses() entity.Expenses {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expenses
}

// SetExpenses replaces the mapped expense summary.
func (s *PlanningStore) SetExpenses(e entity.Expenses) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = e
}

// MedicalInfo returns the mapped medical summary.
func (s *PlanningStore) MedicalInfo() entity.MedicalInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.medicalInfo
}

// SetMedicalInfo replaces the mapped medical summary.
func (s *PlanningStore) SetMedicalInfo(m entity.MedicalInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.medicalInfo = m
}

// LivingInfo returns the mapped living situation.
func (s *PlanningStore) LivingInfo() entity.LivingInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.livingInfo
}

// SetLivingInfo replaces the mapped living situation.
func (s *PlanningStore) SetLivingInfo(l entity.LivingInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.livingInfo = l
}

// EligibilityResults returns the latest assessment, or nil before one
// succeeds.
func (s *PlanningStore) EligibilityResults() Results {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eligibilityResults
}

// SetEligibilityResults stores the assessment response. Passing nil clears
// results after a failed attempt.
func (s *PlanningStore) SetEligibilityResults(r Results) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eligibilityResults = r
}

// PlanningResults returns the latest comprehensive plan, or nil.
func (s *PlanningStore) PlanningResults() Results {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planningResults
}

// SetPlanningResults stores the plan-generation response.
func (s *PlanningStore) SetPlanningResults(r Results) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.planningResults = r
}

// ReportData returns the latest generated report payload, or nil.
func (s *PlanningStore) ReportData() Results {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reportData
}

// SetReportData stores the report-generation response.
func (s *PlanningStore) SetReportData(r Results) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reportData = r
}

// State returns the selected jurisdiction.
func (s *PlanningStore) State() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetState records the selected jurisdiction.
func (s *PlanningStore) SetState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Loading reports whether a submission is currently running.
func (s *PlanningStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetLoading flips the loading flag.
func (s *PlanningStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}
