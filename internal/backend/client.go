// Package backend talks to the GitHub career-analysis backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kiranshivaraju/gitpulse/internal/config"
	"github.com/kiranshivaraju/gitpulse/internal/fetch"
	"github.com/kiranshivaraju/gitpulse/pkg/models"
)

// Client is the interface for the analysis backend.
type Client interface {
	// AnalyzeProfile fetches the repository-level profile analysis for username.
	AnalyzeProfile(ctx context.Context, username string) (*models.ProfileResult, error)
	// FullAnalysis sends a profile payload through the AI pipeline.
	FullAnalysis(ctx context.Context, profile *models.ProfileResult) (*models.AIAnalysis, error)
}

// HTTPClient implements Client using the backend's HTTP API.
type HTTPClient struct {
	baseURL        string
	profileTimeout time.Duration
	aiTimeout      time.Duration
	client         *http.Client
}

// NewHTTPClient creates a new backend HTTP client.
func NewHTTPClient(cfg config.BackendConfig) *HTTPClient {
	return &HTTPClient{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		profileTimeout: cfg.ProfileTimeout,
		aiTimeout:      cfg.AITimeout,
		client:         &http.Client{},
	}
}

// WithHTTPClient swaps the underlying transport client.
func (c *HTTPClient) WithHTTPClient(hc *http.Client) *HTTPClient {
	c.client = hc
	return c
}

// AnalyzeProfile issues GET /analyze?user=<username>. The username is sent
// as given, without query escaping.
func (c *HTTPClient) AnalyzeProfile(ctx context.Context, username string) (*models.ProfileResult, error) {
	u := fmt.Sprintf("%s/analyze?user=%s", c.baseURL, username)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := fetch.Do(ctx, c.client, httpReq, c.profileTimeout)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	slog.Debug("profile analysis response",
		"username", username,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if !isSuccess(resp.StatusCode) {
		return nil, profileError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, readError(err, resp.StatusCode, MsgProfileFailed)
	}
	profile, err := models.DecodeProfile(body)
	if err != nil {
		return nil, malformed(resp.StatusCode, MsgProfileFailed, err)
	}
	return profile, nil
}

// FullAnalysis issues POST /ai/full-analysis with {"profileData": <payload>}.
func (c *HTTPClient) FullAnalysis(ctx context.Context, profile *models.ProfileResult) (*models.AIAnalysis, error) {
	payload := json.RawMessage("null")
	if profile != nil {
		p, err := profile.Payload()
		if err != nil {
			return nil, err
		}
		payload = p
	}

	reqBody, err := json.Marshal(struct {
		ProfileData json.RawMessage `json:"profileData"`
	}{ProfileData: payload})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	u := fmt.Sprintf("%s/ai/full-analysis", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := fetch.Do(ctx, c.client, httpReq, c.aiTimeout)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	slog.Debug("ai analysis response",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if !isSuccess(resp.StatusCode) {
		return nil, aiError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, readError(err, resp.StatusCode, MsgAIFailed)
	}
	var result models.AIAnalysis
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, malformed(resp.StatusCode, MsgAIFailed, err)
	}
	return &result, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// readError distinguishes a body read cut short by the request timer from a
// broken body.
func readError(err error, status int, fallback string) error {
	if rerr := fetch.ReadError(err); fetch.IsTimeout(rerr) {
		return rerr
	}
	return malformed(status, fallback, err)
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
