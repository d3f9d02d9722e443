// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

// Package gemini provides an LLM provider implementation for Google's
// Gemini models using the generateContent REST endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"jumbah/backend/llm"
)

const (
	// DefaultBaseURL is the default Gemini API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultAPIVersion is the Gemini API version.
	DefaultAPIVersion = "v1beta"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 120 * time.Second

	// DefaultMaxTokens is the default max output tokens for completions.
	DefaultMaxTokens = 4096

	// DefaultTemperature is the default temperature for completions.
	DefaultTemperature = 0.7
)

// Model constants for supported Gemini models.
const (
	ModelGemini25Flash = "gemini-2.5-flash"
	ModelGemini25Pro   = "gemini-2.5-pro"

	ModelGemini2Flash     = "gemini-2.0-flash"
	ModelGemini2FlashLite = "gemini-2.0-flash-lite"

	ModelGemini15Pro   = "gemini-1.5-pro"
	ModelGemini15Flash = "gemini-1.5-flash"

	// Default model - latest Flash for best availability
	DefaultModel = ModelGemini2Flash
)

// HTTPClient is an interface for HTTP client operations (enables testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Provider implements llm.Provider for Google Gemini.
type Provider struct {
	apiKey     string
	baseURL    string
	apiVersion string
	model      string
	timeout    time.Duration
	client     HTTPClient
	healthy    bool
	mu         sync.RWMutex
}

// Config contains configuration for the Gemini provider.
type Config struct {
	APIKey     string        // Required: Google API key
	BaseURL    string        // Optional: API base URL (default: https://generativelanguage.googleapis.com)
	APIVersion string        // Optional: API version (default: v1beta)
	Model      string        // Optional: Default model (default: gemini-2.0-flash)
	Timeout    time.Duration // Optional: HTTP timeout (default: 120s)
}

// NewProvider creates a new Gemini provider instance.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Provider{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		apiVersion: cfg.APIVersion,
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		client:     &http.Client{Timeout: cfg.Timeout},
		healthy:    true,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "gemini"
}

// IsHealthy returns whether the provider is healthy.
func (p *Provider) IsHealthy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.healthy && p.apiKey != ""
}

// setHealthy updates the provider health status.
func (p *Provider) setHealthy(healthy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.healthy = healthy
}

// Complete generates a completion for the given request.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	start := time.Now()

	model := req.Model
	if model == "" {
		model = p.model
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	// Temperature: 0.0 is valid (deterministic), negative is invalid
	temperature := req.Temperature
	if temperature < 0 {
		temperature = DefaultTemperature
	}

	apiReq := buildAPIRequest(req.Prompt, req.SystemPrompt, maxTokens, temperature)

	reqBody, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s",
		p.baseURL, p.apiVersion, model, p.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.setHealthy(false)
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			p.setHealthy(false)
		}
		return nil, parseAPIError(resp.StatusCode, body)
	}

	p.setHealthy(true)

	var apiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	content := ""
	if len(apiResp.Candidates) > 0 && len(apiResp.Candidates[0].Content.Parts) > 0 {
		content = apiResp.Candidates[0].Content.Parts[0].Text
	}

	stopReason := "unknown"
	if len(apiResp.Candidates) > 0 {
		stopReason = mapFinishReason(apiResp.Candidates[0].FinishReason)
	}

	inputTokens := 0
	outputTokens := 0
	if apiResp.UsageMetadata != nil {
		inputTokens = apiResp.UsageMetadata.PromptTokenCount
		outputTokens = apiResp.UsageMetadata.CandidatesTokenCount
	}

	return &llm.CompletionResponse{
		Content:    content,
		Model:      model,
		StopReason: stopReason,
		Usage: llm.UsageStats{
			InputTokens:  inputTokens,
			OutputTokens: outputTokens,
			TotalTokens:  inputTokens + outputTokens,
		},
		Latency: time.Since(start),
	}, nil
}

// buildAPIRequest builds the Gemini API request body.
func buildAPIRequest(prompt, systemPrompt string, maxTokens int, temperature float64) map[string]any {
	contents := []map[string]any{
		{
			"role": "user",
			"parts": []map[string]any{
				{"text": prompt},
			},
		},
	}

	generationConfig := map[string]any{
		"maxOutputTokens": maxTokens,
		"temperature":     temperature,
	}

	apiReq := map[string]any{
		"contents":         contents,
		"generationConfig": generationConfig,
	}

	if systemPrompt != "" {
		apiReq["systemInstruction"] = map[string]any{
			"parts": []map[string]any{
				{"text": systemPrompt},
			},
		}
	}

	return apiReq
}

// parseAPIError parses an API error response.
func parseAPIError(statusCode int, body []byte) error {
	var errResp struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &errResp); err != nil {
		return fmt.Errorf("gemini API error (status %d): %s", statusCode, string(body))
	}

	return &APIError{
		StatusCode: statusCode,
		Code:       errResp.Error.Code,
		Status:     errResp.Error.Status,
		Message:    errResp.Error.Message,
	}
}

// mapFinishReason maps Gemini finish reasons to standard reasons.
func mapFinishReason(reason string) string {
	switch reason {
	case "STOP":
		return "stop"
	case "MAX_TOKENS":
		return "max_tokens"
	case "SAFETY":
		return "content_filter"
	case "RECITATION":
		return "content_filter"
	case "OTHER":
		return "other"
	default:
		return reason
	}
}

// APIError represents a Gemini API error.
type APIError struct {
	StatusCode int
	Code       int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API error (status %d, code %d, %s): %s",
		e.StatusCode, e.Code, e.Status, e.Message)
}

// IsRateLimitError returns true if this is a rate limit error.
func (e *APIError) IsRateLimitError() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.Status == "RESOURCE_EXHAUSTED"
}

// IsAuthError returns true if this is an authentication error.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized ||
		e.StatusCode == http.StatusForbidden ||
		e.Status == "UNAUTHENTICATED" ||
		e.Status == "PERMISSION_DENIED"
}

// Internal API types

type geminiResponse struct {
	Candidates     []geminiCandidate    `json:"candidates,omitempty"`
	UsageMetadata  *geminiUsageMetadata `json:"usageMetadata,omitempty"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
	Index        int           `json:"index"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// IsValidModel checks if the given model is a valid Gemini model.
func IsValidModel(model string) bool {
	return strings.HasPrefix(model, "gemini-")
}

// SetHTTPClient sets a custom HTTP client for testing.
func (p *Provider) SetHTTPClient(client HTTPClient) {
	p.client = client
}
