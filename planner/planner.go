// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jumbah/backend/history"
	"jumbah/backend/llm"
	"jumbah/backend/shared/logger"
)

// HistoryStore is the slice of the history store the planner needs.
type HistoryStore interface {
	Append(userID string, entry history.Entry) error
}

// Planner runs the chat pipeline: classify the message, pick a prompt
// template, call the model, reshape the raw text, and record the turn.
type Planner struct {
	provider llm.Provider
	history  HistoryStore
	log      *logger.Logger
}

// New builds a planner around a model provider and a history store.
func New(provider llm.Provider, store HistoryStore) *Planner {
	return &Planner{
		provider: provider,
		history:  store,
		log:      logger.New("ai-planner"),
	}
}

// ChatRequest is one incoming assistant message.
type ChatRequest struct {
	UserID  string
	Message string
	Context string
}

// ChatResult is the assistant's answer to one chat turn.
type ChatResult struct {
	Response     string
	ResponseType Intent
	Title        string
	Timestamp    time.Time
}

// Chat handles one conversational turn. History persistence failures
// are logged but do not fail the turn; a model failure does.
func (p *Planner) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("message must not be empty")
	}
	userID := req.UserID
	if userID == "" {
		userID = "anonymous"
	}

	intent := Classify(req.Message)
	template := GetTemplate(intent)

	prompt, err := template.Render(map[string]string{
		"user_message": req.Message,
		"context":      req.Context,
	})
	if err != nil {
		return nil, err
	}

	p.log.Info(userID, "", "Chat request classified", map[string]interface{}{
		"intent": string(intent),
	})

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:       prompt,
		SystemPrompt: template.System,
	})
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	formatted := FormatResponse(resp.Content, string(intent))
	title := p.generateTitle(ctx, req.Message, formatted)
	now := time.Now()

	p.record(userID, history.Entry{
		Timestamp:   now.Format(time.RFC3339),
		UserMessage: req.Message,
		AIResponse:  formatted,
		Type:        string(intent),
		Title:       title,
	})

	return &ChatResult{
		Response:     formatted,
		ResponseType: intent,
		Title:        title,
		Timestamp:    now,
	}, nil
}

// PlanRequest asks for a full structured travel plan.
type PlanRequest struct {
	UserID      string
	Destination string
	Duration    string
	Budget      string
	Preferences []string
}

// PlanResult is a generated travel plan.
type PlanResult struct {
	Plan      string
	Title     string
	Timestamp time.Time
}

// GeneratePlan produces a structured itinerary for a destination and
// duration, recording the turn under the travel_plan type.
func (p *Planner) GeneratePlan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	if strings.TrimSpace(req.Destination) == "" {
		return nil, fmt.Errorf("destination must not be empty")
	}
	if strings.TrimSpace(req.Duration) == "" {
		return nil, fmt.Errorf("duration must not be empty")
	}
	userID := req.UserID
	if userID == "" {
		userID = "anonymous"
	}

	prompt := BuildTravelPrompt(req.Destination, req.Duration, req.Budget, req.Preferences)

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:       prompt,
		SystemPrompt: GetTemplate(IntentItinerary).System,
	})
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	formatted := FormatResponse(resp.Content, "itinerary")
	title := p.generateTitle(ctx, prompt, formatted)
	now := time.Now()

	p.record(userID, history.Entry{
		Timestamp:   now.Format(time.RFC3339),
		UserMessage: prompt,
		AIResponse:  formatted,
		Type:        "travel_plan",
		Title:       title,
	})

	return &PlanResult{Plan: formatted, Title: title, Timestamp: now}, nil
}

// HealthCheck runs a trivial completion to verify the model path.
func (p *Planner) HealthCheck(ctx context.Context) error {
	_, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:       "Hello, are you working?",
		SystemPrompt: GetTemplate(IntentCasual).System,
		MaxTokens:    32,
	})
	if err != nil {
		return fmt.Errorf("model health check failed: %w", err)
	}
	return nil
}

func (p *Planner) record(userID string, entry history.Entry) {
	if err := p.history.Append(userID, entry); err != nil {
		p.log.Error(userID, "", "Failed to save chat history", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
