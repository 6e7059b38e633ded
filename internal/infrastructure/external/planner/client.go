// Package planner is the HTTP client for the external planning backend. All
// eligibility, strategy, and report computation lives behind these five
// endpoints; this client only moves JSON and normalizes response shapes.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/carepath/medicaid-intake/internal/application/port"
)

// Config holds planner backend configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements port.PlannerBackend over JSON/HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a planner client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// AssessEligibility calls POST /api/eligibility/assess.
func (c *Client) AssessEligibility(ctx context.Context, req port.AssessRequest) (*port.PlannerResponse, error) {
	return c.postJSON(ctx, "/api/eligibility/assess", req)
}

// GenerateComprehensivePlan calls POST /api/planning/comprehensive.
func (c *Client) GenerateComprehensivePlan(ctx context.Context, req port.PlanRequest) (*port.PlannerResponse, error) {
	return c.postJSON(ctx, "/api/planning/comprehensive", req)
}

// GenerateReport calls POST /api/reports/generate.
func (c *Client) GenerateReport(ctx context.Context, req port.ReportRequest) (*port.PlannerResponse, error) {
	return c.postJSON(ctx, "/api/reports/generate", req)
}

// EligibilityRules calls GET /api/eligibility/rules/{state}.
func (c *Client) EligibilityRules(ctx context.Context, state string) (map[string]interface{}, error) {
	endpoint := c.baseURL + "/api/eligibility/rules/" + url.PathEscape(state)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rules request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rules request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules response: %w", err)
	}

	var rules map[string]interface{}
	if err := json.Unmarshal(body, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode rules response: %w", err)
	}
	return rules, nil
}

// DownloadReport calls GET /api/reports/download/{reportId} and returns the
// raw document bytes with their content type.
func (c *Client) DownloadReport(ctx context.Context, reportID string) ([]byte, string, error) {
	endpoint := c.baseURL + "/api/reports/download/" + url.PathEscape(reportID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("report download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("report download failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read report document: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// postJSON posts the payload and normalizes the reply. A non-2xx status with
// a decodable JSON body is surfaced as the response rather than an error, so
// callers see the backend's own status/message; only transport failures and
// undecodable bodies propagate as errors.
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) (*port.PlannerResponse, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("planner request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read planner response: %w", err)
	}

	c.logger.Debug("Planner call",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	normalized, err := normalize(body)
	if err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("planner returned status %d", resp.StatusCode)
		}
		return nil, err
	}
	return normalized, nil
}

// normalize resolves the backend's two reply conventions: some routes nest
// the payload under "data", others return it at the top level. Either way
// the caller gets status, message, and a flat Data map.
func normalize(body []byte) (*port.PlannerResponse, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("failed to decode planner response: %w", err)
	}

	resp := &port.PlannerResponse{}
	if status, ok := m["status"].(string); ok {
		resp.Status = status
	}
	if message, ok := m["message"].(string); ok {
		resp.Message = message
	}
	if data, ok := m["data"].(map[string]interface{}); ok {
		resp.Data = data
	} else {
		resp.Data = m
	}
	return resp, nil
}
