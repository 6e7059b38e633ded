// Package entity defines the backend-shaped aggregates exchanged with the
// planner service and persisted for auditing. Unlike the intake record, which
// preserves user-typed strings, these carry parsed numeric values in the
// shapes the planner endpoints expect.
package entity

// ClientInfo is the applicant summary sent with every planner call.
type ClientInfo struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	MaritalStatus string `json:"maritalStatus"`
	HealthStatus  string `json:"healthStatus"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	State         string `json:"state"`
	IsCrisis      bool   `json:"isCrisis"`
}

// Assets buckets the applicant's resources the way eligibility is computed:
// what counts against the resource limit and what is exempt.
type Assets struct {
	Countable    float64 `json:"countable"`
	NonCountable float64 `json:"nonCountable"`
}

// Income is monthly income by source, applicant and spouse combined.
type Income struct {
	SocialSecurity float64 `json:"socialSecurity"`
	Pension        float64 `json:"pension"`
	Annuity        float64 `json:"annuity"`
	Rental         float64 `json:"rental"`
	Investment     float64 `json:"investment"`
}

// Expenses is monthly spending by category.
type Expenses struct {
	Housing  float64 `json:"housing"`
	Personal float64 `json:"personal"`
	Medical  float64 `json:"medical"`
	Total    float64 `json:"total"`
}

// MedicalInfo describes the applicant's current medical picture.
type MedicalInfo struct {
	Status                string `json:"status,omitempty"`
	Diagnoses             string `json:"diagnoses,omitempty"`
	RecentHospitalStay    bool   `json:"recentHospitalStay"`
	HospitalStayDuration  string `json:"hospitalStayDuration,omitempty"`
	LongTermCareInsurance bool   `json:"longTermCareInsurance"`
}

// LivingInfo describes where the applicant lives and what it costs.
type LivingInfo struct {
	CurrentSituation   string  `json:"currentSituation,omitempty"`
	NursingHomeName    string  `json:"nursingHomeName,omitempty"`
	MonthlyCost        float64 `json:"monthlyCost"`
	IntentToReturnHome bool    `json:"intentToReturnHome"`
}
