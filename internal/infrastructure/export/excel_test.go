package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/application/port"
	"github.com/carepath/medicaid-intake/internal/domain/entity"
)

func sampleInput() port.ExportInput {
	return port.ExportInput{
		ClientInfo: entity.ClientInfo{
			Name:          "Jane Doe",
			Age:           76,
			MaritalStatus: "married",
			HealthStatus:  "good",
		},
		Assets:   entity.Assets{Countable: 45000, NonCountable: 210000},
		Income:   entity.Income{SocialSecurity: 1500, Pension: 800},
		Expenses: entity.Expenses{Total: 2050.50},
		Eligibility: map[string]interface{}{
			"eligible":  false,
			"spendDown": 27500,
		},
		State:       "NY",
		GeneratedAt: time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
	}
}

func TestExportWorkbook(t *testing.T) {
	exporter := NewExcelExporter(zap.NewNop())

	input := sampleInput()
	input.Planning = map[string]interface{}{"strategy": "spend-down"}

	raw, err := exporter.ExportWorkbook(input)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Planning Summary")

	cell := func(ref string) string {
		v, err := f.GetCellValue("Planning Summary", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Medicaid Planning Summary", cell("A1"))
	assert.Equal(t, "2026-03-10 14:30", cell("B2"))
	assert.Equal(t, "NY", cell("B3"))
	assert.Equal(t, "Jane Doe", cell("B6"))
	assert.Equal(t, "76", cell("B7"))
	assert.Equal(t, "45000.00", cell("B12"))
	assert.Equal(t, "2300.00", cell("B14"))

	// Eligibility keys render sorted below the financial profile.
	assert.Equal(t, "Eligibility Assessment", cell("A17"))
	assert.Equal(t, "eligible", cell("A18"))
	assert.Equal(t, "false", cell("B18"))
	assert.Equal(t, "spendDown", cell("A19"))
	assert.Equal(t, "27500", cell("B19"))
}

func TestExportWorkbook_WithoutPlanSection(t *testing.T) {
	exporter := NewExcelExporter(zap.NewNop())

	raw, err := exporter.ExportWorkbook(sampleInput())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Planning Summary")
	require.NoError(t, err)
	for _, row := range rows {
		for _, v := range row {
			assert.NotEqual(t, "Recommended Plan", v)
		}
	}
}
