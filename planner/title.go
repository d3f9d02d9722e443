// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package planner

import (
	"context"
	"fmt"
	"strings"

	"jumbah/backend/llm"
)

// maxTitleLen is the hard cap on history entry titles. Longer model
// output is cut to truncatedTitleLen runes plus an ellipsis.
const (
	maxTitleLen       = 25
	truncatedTitleLen = 22
)

const titlePrompt = "Summarize the following conversation turn as a very short chat title of at most 25 characters. Reply with the title text only, no quotes.\n\nUser: %s\n\nAssistant: %s"

// titleKeywords maps message keywords to fixed fallback titles.
// Entries are checked in order; the first hit wins.
var titleKeywords = []struct {
	words []string
	title string
}{
	{[]string{"food", "eat", "restaurant", "makan", "hungry", "sedap"}, "Food recommendations"},
	{[]string{"weather", "rain", "forecast", "temperature", "sunny"}, "Weather check"},
	{[]string{"hotel", "accommodation", "resort", "homestay", "hostel"}, "Where to stay"},
	{[]string{"bus", "taxi", "grab", "flight", "transport", "ferry"}, "Getting around"},
	{[]string{"itinerary", "plan", "trip", "tour", "visit"}, "Trip planning"},
	{[]string{"budget", "cost", "price", "expensive", "cheap"}, "Budget planning"},
	{[]string{"kota kinabalu", "sandakan", "semporna", "tawau", "kinabalu", "sipadan"}, "Exploring Sabah"},
}

// generateTitle produces a short label for a history entry. It asks the
// model to summarize the turn and falls back to keyword lookup when the
// call fails or returns nothing usable.
func (p *Planner) generateTitle(ctx context.Context, userMessage, aiResponse string) string {
	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:      fmt.Sprintf(titlePrompt, userMessage, aiResponse),
		MaxTokens:   32,
		Temperature: 0.2,
	})
	if err != nil {
		p.log.Warn("", "", "Title generation failed, using keyword fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackTitle(userMessage)
	}

	title := strings.NewReplacer(`"`, "", "'", "", "`", "").Replace(resp.Content)
	title = strings.TrimSpace(strings.Split(title, "\n")[0])
	if title == "" {
		return fallbackTitle(userMessage)
	}
	return truncateTitle(title)
}

// fallbackTitle derives a title from the user message alone: a keyword
// table lookup, then the first three words of the message.
func fallbackTitle(userMessage string) string {
	lower := strings.ToLower(userMessage)
	for _, kw := range titleKeywords {
		if containsAny(lower, kw.words) {
			return kw.title
		}
	}

	words := strings.Fields(userMessage)
	if len(words) > 3 {
		words = words[:3]
	}
	if len(words) == 0 {
		return "New chat"
	}
	return truncateTitle(strings.Join(words, " "))
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLen {
		return title
	}
	return string(runes[:truncatedTitleLen]) + "..."
}
