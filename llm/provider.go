// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"context"
	"time"
)

// Provider is the interface every model backend implements.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name returns the provider identifier used in logs and metrics.
	Name() string

	// Complete generates a completion for the given request.
	// The context should be used for cancellation and timeout.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsHealthy reports whether the provider is operational.
	IsHealthy() bool
}

// CompletionRequest represents a single model invocation.
type CompletionRequest struct {
	Prompt       string  // The prompt/user message
	SystemPrompt string  // Optional system instruction
	MaxTokens    int     // Maximum tokens to generate
	Temperature  float64 // Temperature (0.0-2.0)
	Model        string  // Model override
}

// CompletionResponse represents the model's answer.
type CompletionResponse struct {
	Content    string
	Model      string
	StopReason string
	Usage      UsageStats
	Latency    time.Duration
}

// UsageStats contains token usage statistics.
type UsageStats struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
