package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/application/port"
	"github.com/carepath/medicaid-intake/internal/domain/session"
)

type fakeExporter struct {
	input port.ExportInput
	out   []byte
	err   error
}

func (f *fakeExporter) ExportWorkbook(input port.ExportInput) ([]byte, error) {
	f.input = input
	return f.out, f.err
}

func TestReportGenerate_RequiresPlanningResults(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewReportService(backend, &fakeExporter{}, zap.NewNop())
	fs := newTestSession(completeRecord())

	_, err := svc.Generate(context.Background(), fs, "", "")
	assert.ErrorIs(t, err, ErrNoResults)
	assert.Zero(t, backend.reportCalls)
}

func TestReportGenerate_DefaultsAndCaches(t *testing.T) {
	backend := &fakeBackend{
		reportResp: &port.PlannerResponse{Status: "success", Data: map[string]interface{}{"reportId": "r-1"}},
	}
	svc := NewReportService(backend, &fakeExporter{}, zap.NewNop())
	fs := newTestSession(completeRecord())
	fs.Store.SetPlanningResults(session.Results{"strategies": "spend-down"})

	data, err := svc.Generate(context.Background(), fs, "", "")
	require.NoError(t, err)
	assert.Equal(t, "r-1", data["reportId"])
	assert.Equal(t, session.Results{"reportId": "r-1"}, fs.Store.ReportData())
	assert.Equal(t, 1, backend.reportCalls)
}

func TestReportGenerate_BackendError(t *testing.T) {
	backend := &fakeBackend{
		reportResp: &port.PlannerResponse{Status: "error", Message: "renderer offline"},
	}
	svc := NewReportService(backend, &fakeExporter{}, zap.NewNop())
	fs := newTestSession(completeRecord())
	fs.Store.SetPlanningResults(session.Results{"strategies": "spend-down"})

	_, err := svc.Generate(context.Background(), fs, "summary", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renderer offline")
	assert.Nil(t, fs.Store.ReportData())
}

func TestReportExportWorkbook(t *testing.T) {
	exporter := &fakeExporter{out: []byte("xlsx bytes")}
	svc := NewReportService(&fakeBackend{}, exporter, zap.NewNop())
	fs := newTestSession(completeRecord())

	_, err := svc.ExportWorkbook(fs)
	assert.ErrorIs(t, err, ErrNoResults, "workbook needs eligibility results")

	fs.Store.SetEligibilityResults(session.Results{"eligible": true})
	fs.Store.SetState("NY")

	out, err := svc.ExportWorkbook(fs)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx bytes"), out)
	assert.Equal(t, "NY", exporter.input.State)
	assert.Equal(t, map[string]interface{}{"eligible": true}, exporter.input.Eligibility)
}
