package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/application/port"
	"github.com/carepath/medicaid-intake/internal/domain/entity"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL}, zap.NewNop())
}

func TestAssessEligibility_NestedDataPayload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/eligibility/assess", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req port.AssessRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Jane Doe", req.ClientInfo.Name)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","data":{"eligible":true,"spendDown":5000}}`))
	}))

	resp, err := client.AssessEligibility(context.Background(), port.AssessRequest{
		ClientInfo: entity.ClientInfo{Name: "Jane Doe", Age: 76},
		State:      "NY",
	})
	require.NoError(t, err)
	assert.False(t, resp.IsError())
	assert.Equal(t, true, resp.Data["eligible"])
}

func TestAssessEligibility_TopLevelPayload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"eligible":false,"reason":"excess resources"}`))
	}))

	resp, err := client.AssessEligibility(context.Background(), port.AssessRequest{})
	require.NoError(t, err)
	assert.False(t, resp.IsError())
	assert.Equal(t, false, resp.Data["eligible"])
	assert.Equal(t, "excess resources", resp.Data["reason"])
}

func TestPostJSON_ErrorBodySurfacedAsResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"error","message":"state not supported"}`))
	}))

	resp, err := client.AssessEligibility(context.Background(), port.AssessRequest{})
	require.NoError(t, err, "decodable error bodies are responses, not errors")
	assert.True(t, resp.IsError())
	assert.Equal(t, "state not supported", resp.Message)
}

func TestPostJSON_UndecodableErrorBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))

	_, err := client.AssessEligibility(context.Background(), port.AssessRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestEligibilityRules(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/eligibility/rules/NY", r.URL.Path)
		w.Write([]byte(`{"resourceLimit":17500,"incomeLimit":1800}`))
	}))

	rules, err := client.EligibilityRules(context.Background(), "NY")
	require.NoError(t, err)
	assert.Equal(t, 17500.0, rules["resourceLimit"])
}

func TestDownloadReport(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reports/download/r-123", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))

	doc, contentType, err := client.DownloadReport(context.Background(), "r-123")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, []byte("%PDF-1.4 fake"), doc)
}

func TestDownloadReport_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, _, err := client.DownloadReport(context.Background(), "missing")
	assert.Error(t, err)
}
