package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carepath/medicaid-intake/internal/domain/entity"
)

func TestNewPlanningStore_Placeholder(t *testing.T) {
	s := NewPlanningStore()

	assert.Equal(t, "good", s.ClientInfo().HealthStatus)
	assert.Nil(t, s.EligibilityResults())
	assert.Nil(t, s.PlanningResults())
	assert.False(t, s.Loading())
}

func TestPlanningStore_SettersAndGetters(t *testing.T) {
	s := NewPlanningStore()

	ci := entity.ClientInfo{Name: "Jane Doe", Age: 76, MaritalStatus: "married", State: "NY"}
	s.SetClientInfo(ci)
	assert.Equal(t, ci, s.ClientInfo())

	s.SetAssets(entity.Assets{Countable: 45000, NonCountable: 210000})
	assert.Equal(t, 45000.0, s.Assets().Countable)

	s.SetIncome(entity.Income{SocialSecurity: 1500, Pension: 800})
	assert.Equal(t, 1500.0, s.Income().SocialSecurity)

	s.SetExpenses(entity.Expenses{Total: 2050.50})
	assert.Equal(t, 2050.50, s.Expenses().Total)

	s.SetState("NY")
	assert.Equal(t, "NY", s.State())

	s.SetLoading(true)
	assert.True(t, s.Loading())

	s.SetEligibilityResults(Results{"eligible": true})
	assert.Equal(t, Results{"eligible": true}, s.EligibilityResults())

	// Clearing after a failed attempt.
	s.SetEligibilityResults(nil)
	assert.Nil(t, s.EligibilityResults())
}

func TestPlanningStore_Reset(t *testing.T) {
	s := NewPlanningStore()
	s.SetClientInfo(entity.ClientInfo{Name: "Jane Doe"})
	s.SetState("NY")
	s.SetLoading(true)
	s.SetEligibilityResults(Results{"eligible": true})
	s.SetPlanningResults(Results{"strategies": []string{"spend-down"}})
	s.SetReportData(Results{"reportId": "r-1"})

	s.Reset()

	assert.Equal(t, "good", s.ClientInfo().HealthStatus)
	assert.Empty(t, s.ClientInfo().Name)
	assert.Empty(t, s.State())
	assert.False(t, s.Loading())
	assert.Nil(t, s.EligibilityResults())
	assert.Nil(t, s.PlanningResults())
	assert.Nil(t, s.ReportData())
}
