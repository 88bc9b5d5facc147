package recaptcha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StaticExecutor always returns the same token.
type StaticExecutor string

// Execute implements Executor.
func (s StaticExecutor) Execute(context.Context, string, string) (string, error) {
	return string(s), nil
}

// HTTPExecutor asks a token broker for a token.
//
// The broker receives {"siteKey": ..., "action": ...} and answers {"token": ...}.
type HTTPExecutor struct {
	url        string
	httpClient *http.Client
}

type tokenRequest struct {
	SiteKey string `json:"siteKey"`
	Action  string `json:"action"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// NewHTTPExecutor creates an HTTPExecutor posting to url.
func NewHTTPExecutor(url string, timeout time.Duration) *HTTPExecutor {
	return &HTTPExecutor{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Execute implements Executor.
func (e *HTTPExecutor) Execute(ctx context.Context, siteKey, action string) (string, error) {
	body, err := json.Marshal(tokenRequest{SiteKey: siteKey, Action: action})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token broker unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token broker returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	return out.Token, nil
}
