// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"jumbah/backend/gamification"
	"jumbah/backend/llm/gemini"
	"jumbah/backend/location"
	"jumbah/backend/planner"
	"jumbah/backend/weather"
)

// AI planner handlers

type chatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Context string `json:"context"`
}

func chatHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	if aiPlanner == nil {
		sendErrorResponse(w, "AI planner is not configured", http.StatusServiceUnavailable)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		sendErrorResponse(w, "Message is required", http.StatusBadRequest)
		return
	}

	result, err := aiPlanner.Chat(r.Context(), planner.ChatRequest{
		UserID:  req.UserID,
		Message: req.Message,
		Context: req.Context,
	})
	latencyMs := float64(time.Since(startTime).Milliseconds())
	if err != nil {
		promChatRequests.WithLabelValues("unknown", "error").Inc()
		promLLMCalls.WithLabelValues(modelProvider.Name(), "error").Inc()
		sendErrorResponse(w, "AI service error: "+err.Error(), modelErrorStatus(err))
		return
	}

	promChatRequests.WithLabelValues(string(result.ResponseType), "success").Inc()
	promChatDuration.WithLabelValues(string(result.ResponseType)).Observe(latencyMs)
	promLLMCalls.WithLabelValues(modelProvider.Name(), "success").Inc()

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"response":      result.Response,
		"response_type": result.ResponseType,
		"title":         result.Title,
		"timestamp":     result.Timestamp.UTC().Format(time.RFC3339),
	})
}

type generatePlanRequest struct {
	UserID      string   `json:"user_id"`
	Destination string   `json:"destination"`
	Duration    string   `json:"duration"`
	Budget      string   `json:"budget"`
	Preferences []string `json:"preferences"`
}

func generatePlanHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	if aiPlanner == nil {
		sendErrorResponse(w, "AI planner is not configured", http.StatusServiceUnavailable)
		return
	}

	var req generatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Destination) == "" {
		sendErrorResponse(w, "Destination is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Duration) == "" {
		sendErrorResponse(w, "Duration is required", http.StatusBadRequest)
		return
	}

	result, err := aiPlanner.GeneratePlan(r.Context(), planner.PlanRequest{
		UserID:      req.UserID,
		Destination: req.Destination,
		Duration:    req.Duration,
		Budget:      req.Budget,
		Preferences: req.Preferences,
	})
	latencyMs := float64(time.Since(startTime).Milliseconds())
	if err != nil {
		promChatRequests.WithLabelValues("travel_plan", "error").Inc()
		promLLMCalls.WithLabelValues(modelProvider.Name(), "error").Inc()
		sendErrorResponse(w, "AI service error: "+err.Error(), modelErrorStatus(err))
		return
	}

	promChatRequests.WithLabelValues("travel_plan", "success").Inc()
	promChatDuration.WithLabelValues("travel_plan").Observe(latencyMs)
	promLLMCalls.WithLabelValues(modelProvider.Name(), "success").Inc()

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"plan":      result.Plan,
		"title":     result.Title,
		"timestamp": result.Timestamp.UTC().Format(time.RFC3339),
	})
}

func getHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			sendErrorResponse(w, "Limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = v
	}

	entries, err := historyStore.Load(userID)
	if err != nil {
		sendErrorResponse(w, "Failed to load chat history: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user_id": userID,
		"history": entries,
		"count":   len(entries),
	})
}

func deleteHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	existed, err := historyStore.Delete(userID)
	if err != nil {
		sendErrorResponse(w, "Failed to delete chat history: "+err.Error(), http.StatusInternalServerError)
		return
	}

	message := fmt.Sprintf("No chat history found for user %s", userID)
	if existed {
		message = fmt.Sprintf("Chat history deleted for user %s", userID)
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// Location handlers

func locationSearchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		sendErrorResponse(w, "Query parameter is required", http.StatusBadRequest)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 50 {
			sendErrorResponse(w, "Limit must be between 1 and 50", http.StatusBadRequest)
			return
		}
		limit = v
	}

	places, err := locationClient.Search(r.Context(), query, limit)
	if err != nil {
		promUpstreamRequests.WithLabelValues("nominatim", "error").Inc()
		sendErrorResponse(w, "Location search failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	promUpstreamRequests.WithLabelValues("nominatim", "success").Inc()

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"query":   query,
		"results": places,
		"count":   len(places),
	})
}

func geocodeHandler(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		sendErrorResponse(w, "Address parameter is required", http.StatusBadRequest)
		return
	}

	limit := 1
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 10 {
			sendErrorResponse(w, "Limit must be between 1 and 10", http.StatusBadRequest)
			return
		}
		limit = v
	}

	places, err := locationClient.Search(r.Context(), address, limit)
	if err != nil {
		promUpstreamRequests.WithLabelValues("nominatim", "error").Inc()
		sendErrorResponse(w, "Geocoding failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	promUpstreamRequests.WithLabelValues("nominatim", "success").Inc()

	if len(places) == 0 {
		sendErrorResponse(w, "Location not found", http.StatusNotFound)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    places[0],
		"coordinates": map[string]float64{
			"lat": places[0].Lat,
			"lon": places[0].Lon,
		},
	})
}

func reverseGeocodeHandler(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := latLonParams(w, r, "lat", "lon")
	if !ok {
		return
	}

	address, err := locationClient.ReverseGeocode(r.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, location.ErrNotFound) {
			promUpstreamRequests.WithLabelValues("nominatim", "success").Inc()
			sendErrorResponse(w, "No address found for the given coordinates", http.StatusNotFound)
			return
		}
		promUpstreamRequests.WithLabelValues("nominatim", "error").Inc()
		sendErrorResponse(w, "Reverse geocoding failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	promUpstreamRequests.WithLabelValues("nominatim", "success").Inc()

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"address": address,
	})
}

func nearbyPOIsHandler(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := latLonParams(w, r, "lat", "lon")
	if !ok {
		return
	}

	radius := 1000
	if raw := r.URL.Query().Get("radius"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 10000 {
			sendErrorResponse(w, "Radius must be between 1 and 10000 meters", http.StatusBadRequest)
			return
		}
		radius = v
	}

	var poiTypes []string
	if raw := strings.TrimSpace(r.URL.Query().Get("types")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				poiTypes = append(poiTypes, t)
			}
		}
	}

	pois, err := locationClient.NearbyPOIs(r.Context(), lat, lon, radius, poiTypes)
	if err != nil {
		promUpstreamRequests.WithLabelValues("overpass", "error").Inc()
		sendErrorResponse(w, "POI search failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	promUpstreamRequests.WithLabelValues("overpass", "success").Inc()

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"pois":    pois,
		"count":   len(pois),
	})
}

func routeHandler(w http.ResponseWriter, r *http.Request) {
	startLat, startLon, ok := latLonParams(w, r, "start_lat", "start_lon")
	if !ok {
		return
	}
	endLat, endLon, ok := latLonParams(w, r, "end_lat", "end_lon")
	if !ok {
		return
	}

	profile := r.URL.Query().Get("profile")
	if profile == "" {
		profile = "driving"
	}

	route, err := locationClient.Route(r.Context(), startLon, startLat, endLon, endLat, profile)
	if err != nil {
		if errors.Is(err, location.ErrNotFound) {
			promUpstreamRequests.WithLabelValues("osrm", "success").Inc()
			sendErrorResponse(w, "No route found between the given points", http.StatusNotFound)
			return
		}
		promUpstreamRequests.WithLabelValues("osrm", "error").Inc()
		sendErrorResponse(w, "Routing failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	promUpstreamRequests.WithLabelValues("osrm", "success").Inc()

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"route":   route,
	})
}

// Weather handlers

func weatherByCoordsHandler(w http.ResponseWriter, r *http.Request) {
	if !weatherClient.IsConfigured() {
		sendErrorResponse(w, "Weather API key not configured", http.StatusInternalServerError)
		return
	}

	lat, lon, ok := latLonParams(w, r, "lat", "lon")
	if !ok {
		return
	}

	report, err := weatherClient.CurrentByCoords(r.Context(), lat, lon)
	if err != nil {
		promUpstreamRequests.WithLabelValues("weatherapi", "error").Inc()
		sendErrorResponse(w, "Weather lookup failed: "+err.Error(), weatherErrorStatus(err))
		return
	}
	promUpstreamRequests.WithLabelValues("weatherapi", "success").Inc()

	sendJSONResponse(w, http.StatusOK, report)
}

func weatherByNameHandler(w http.ResponseWriter, r *http.Request) {
	if !weatherClient.IsConfigured() {
		sendErrorResponse(w, "Weather API key not configured", http.StatusInternalServerError)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		sendErrorResponse(w, "Query parameter q is required", http.StatusBadRequest)
		return
	}

	report, err := weatherClient.CurrentByName(r.Context(), query)
	if err != nil {
		promUpstreamRequests.WithLabelValues("weatherapi", "error").Inc()
		sendErrorResponse(w, "Weather lookup failed: "+err.Error(), weatherErrorStatus(err))
		return
	}
	promUpstreamRequests.WithLabelValues("weatherapi", "success").Inc()

	sendJSONResponse(w, http.StatusOK, report)
}

func weatherTestHandler(w http.ResponseWriter, r *http.Request) {
	if !weatherClient.IsConfigured() {
		sendErrorResponse(w, "Weather API key not configured", http.StatusInternalServerError)
		return
	}

	report, err := weatherClient.CurrentByName(r.Context(), "Kota Kinabalu")
	if err != nil {
		promUpstreamRequests.WithLabelValues("weatherapi", "error").Inc()
		sendErrorResponse(w, "Weather API test failed: "+err.Error(), weatherErrorStatus(err))
		return
	}
	promUpstreamRequests.WithLabelValues("weatherapi", "success").Inc()

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Weather API is working",
		"location":  report.Location.Name,
		"temp_c":    report.Current.TempC,
		"condition": report.Current.Condition,
	})
}

// Gamification handlers

func createProfileHandler(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		sendErrorResponse(w, "Username is required", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.URL.Query().Get("email"))

	profile, err := gameStore.CreateProfile(r.Context(), username, email)
	if err != nil {
		sendErrorResponse(w, "Failed to create profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}

func getProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	profile, err := gameStore.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, gamification.ErrUserNotFound) {
			sendErrorResponse(w, "User profile not found", http.StatusNotFound)
			return
		}
		sendErrorResponse(w, "Failed to load profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}

func questCompletionHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	var completion gamification.QuestCompletion
	if err := json.NewDecoder(r.Body).Decode(&completion); err != nil {
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(completion.QuestID) == "" {
		sendErrorResponse(w, "Quest ID is required", http.StatusBadRequest)
		return
	}
	if completion.CompletionDate.IsZero() {
		completion.CompletionDate = time.Now().UTC()
	}

	profile, err := gameStore.RecordQuestCompletion(r.Context(), userID, completion)
	if err != nil {
		if errors.Is(err, gamification.ErrUserNotFound) {
			sendErrorResponse(w, "User profile not found", http.StatusNotFound)
			return
		}
		sendErrorResponse(w, "Failed to record quest completion: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Quest completed! Earned %d points", completion.PointsEarned),
		"profile": profile,
	})
}

func unlockContentHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	var req struct {
		ContentID string `json:"content_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ContentID) == "" {
		sendErrorResponse(w, "Content ID is required", http.StatusBadRequest)
		return
	}

	if err := gameStore.UnlockContent(r.Context(), userID, req.ContentID); err != nil {
		if errors.Is(err, gamification.ErrUserNotFound) {
			sendErrorResponse(w, "User profile not found", http.StatusNotFound)
			return
		}
		sendErrorResponse(w, "Failed to unlock content: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Content unlocked: %s", req.ContentID),
	})
}

func leaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			sendErrorResponse(w, "Limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = v
	}

	entries, err := gameStore.Leaderboard(r.Context(), limit)
	if err != nil {
		sendErrorResponse(w, "Failed to load leaderboard: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"leaderboard": entries,
		"count":       len(entries),
	})
}

func achievementsHandler(w http.ResponseWriter, r *http.Request) {
	achievements := gamification.AllAchievements()

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"achievements": achievements,
		"count":        len(achievements),
	})
}

// Helpers

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	response := errorResponse{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func sendJSONResponse(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// latLonParams parses a pair of required float query parameters and
// writes a 400 response when either is missing or malformed.
func latLonParams(w http.ResponseWriter, r *http.Request, latName, lonName string) (float64, float64, bool) {
	lat, err := queryFloat(r, latName)
	if err != nil {
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return 0, 0, false
	}
	lon, err := queryFloat(r, lonName)
	if err != nil {
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return 0, 0, false
	}
	return lat, lon, true
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter: %s", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q", name, raw)
	}
	return v, nil
}

// modelErrorStatus maps a model provider failure to an HTTP status.
// Rate limits are relayed as 429 so clients can back off.
func modelErrorStatus(err error) int {
	var apiErr *gemini.APIError
	if errors.As(err, &apiErr) && apiErr.IsRateLimitError() {
		return http.StatusTooManyRequests
	}
	return http.StatusBadGateway
}

// weatherErrorStatus relays the upstream WeatherAPI status when the
// failure carries one.
func weatherErrorStatus(err error) int {
	var upErr *weather.UpstreamError
	if errors.As(err, &upErr) {
		return upErr.StatusCode
	}
	return http.StatusBadGateway
}
