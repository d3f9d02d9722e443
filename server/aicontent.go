// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jumbah/backend/aicontent"
)

func recommendationsHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			sendErrorResponse(w, "Limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = v
	}

	recommendations := contentService.Recommendations(userID, limit)
	sendJSONResponse(w, http.StatusOK, recommendations)
}

func generateContentHandler(w http.ResponseWriter, r *http.Request) {
	contentType := mux.Vars(r)["content_type"]
	location := r.URL.Query().Get("location")

	content, err := contentService.GenerateContent(contentType, location)
	if err != nil {
		if errors.Is(err, aicontent.ErrInvalidContentType) {
			sendErrorResponse(w, "Invalid content type", http.StatusBadRequest)
			return
		}
		sendErrorResponse(w, "Error generating content: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSONResponse(w, http.StatusOK, content)
}

func insightsHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	insights := contentService.Insights(userID)
	sendJSONResponse(w, http.StatusOK, insights)
}

func updateBehaviorHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	var req struct {
		QuestType string `json:"quest_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	behavior := contentService.UpdateBehavior(userID, req.QuestType)
	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message":  "User behavior updated successfully",
		"behavior": behavior,
	})
}

func contentHistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			sendErrorResponse(w, "Limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = v
	}

	history := contentService.ContentHistory(limit)
	if history == nil {
		history = []aicontent.DynamicContent{}
	}
	sendJSONResponse(w, http.StatusOK, history)
}

func userPatternsHandler(w http.ResponseWriter, r *http.Request) {
	report, ok := contentService.UserPatterns()
	if !ok {
		sendJSONResponse(w, http.StatusOK, map[string]interface{}{
			"message": "No user behavior data available",
		})
		return
	}

	sendJSONResponse(w, http.StatusOK, report)
}
