// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jumbah/backend/aicontent"
	"jumbah/backend/gamification"
	"jumbah/backend/history"
	"jumbah/backend/llm"
	"jumbah/backend/llm/gemini"
	"jumbah/backend/location"
	"jumbah/backend/planner"
	"jumbah/backend/weather"
)

type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Name() string    { return "stub" }
func (s *stubProvider) IsHealthy() bool { return s.err == nil }

func (s *stubProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	// Title generation calls carry no system prompt.
	if req.SystemPrompt == "" {
		return &llm.CompletionResponse{Content: "Trip planning", Model: "stub"}, nil
	}
	return &llm.CompletionResponse{Content: s.reply, Model: "stub"}, nil
}

// setupTestServer wires the package components to test doubles and
// returns the service router.
func setupTestServer(t *testing.T, provider llm.Provider) *mux.Router {
	t.Helper()

	store, err := history.NewStore(t.TempDir())
	require.NoError(t, err)
	historyStore = store

	modelProvider = provider
	aiPlanner = nil
	if provider != nil {
		aiPlanner = planner.New(provider, store)
	}

	locationClient = location.NewClient()
	weatherClient = weather.NewClient("", weather.DefaultBaseURL)
	gameStore = gamification.NewMemoryStore()
	contentService = aicontent.NewService()

	return newRouter()
}

func doRequest(t *testing.T, r *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestChatEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "Hi there! Ready to explore Sabah?"})

	rec := doRequest(t, r, "POST", "/api/ai-planner/chat", map[string]string{
		"message": "hello",
		"user_id": "user-1",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "casual", body["response_type"])
	assert.Contains(t, body["response"], "Hi there! Ready to explore Sabah?")
	assert.Equal(t, "Trip planning", body["title"])
	assert.NotEmpty(t, body["timestamp"])

	entries, err := historyStore.Load("user-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].UserMessage)
}

func TestChatEndpointValidation(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "POST", "/api/ai-planner/chat", map[string]string{"message": "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Message is required", body["error"])

	req := httptest.NewRequest("POST", "/api/ai-planner/chat", strings.NewReader("not json"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpointProviderFailure(t *testing.T) {
	r := setupTestServer(t, &stubProvider{err: errors.New("boom")})

	rec := doRequest(t, r, "POST", "/api/ai-planner/chat", map[string]string{"message": "hello"})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "AI service error")
}

func TestChatEndpointRateLimited(t *testing.T) {
	r := setupTestServer(t, &stubProvider{err: &gemini.APIError{StatusCode: http.StatusTooManyRequests}})

	rec := doRequest(t, r, "POST", "/api/ai-planner/chat", map[string]string{"message": "hello"})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestChatEndpointNotConfigured(t *testing.T) {
	r := setupTestServer(t, nil)

	rec := doRequest(t, r, "POST", "/api/ai-planner/chat", map[string]string{"message": "hello"})

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "not configured")
}

func TestGeneratePlanEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "Day 1: Morning: Visit the mountain."})

	rec := doRequest(t, r, "POST", "/api/ai-planner/generate-plan", map[string]interface{}{
		"destination": "Kundasang",
		"duration":    "2 days",
		"budget":      "RM 500",
		"preferences": []string{"nature"},
		"user_id":     "user-1",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["plan"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestGeneratePlanEndpointValidation(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "POST", "/api/ai-planner/generate-plan", map[string]string{"duration": "2 days"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Destination is required", decodeBody(t, rec)["error"])

	rec = doRequest(t, r, "POST", "/api/ai-planner/generate-plan", map[string]string{"destination": "Kundasang"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Duration is required", decodeBody(t, rec)["error"])
}

func TestGetHistoryEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	for i := 0; i < 5; i++ {
		require.NoError(t, historyStore.Append("user-1", history.Entry{
			Timestamp:   "2025-08-29T10:00:00Z",
			UserMessage: "hello",
			AIResponse:  "hi",
			Type:        "casual",
		}))
	}

	rec := doRequest(t, r, "GET", "/api/ai-planner/history/user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, float64(5), body["count"])

	rec = doRequest(t, r, "GET", "/api/ai-planner/history/user-1?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeBody(t, rec)["count"])
}

func TestGetHistoryEndpointEmptyUser(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "GET", "/api/ai-planner/history/nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["count"])
}

func TestGetHistoryEndpointInvalidLimit(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	for _, limit := range []string{"0", "101", "abc"} {
		rec := doRequest(t, r, "GET", "/api/ai-planner/history/user-1?limit="+limit, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
	}
}

func TestDeleteHistoryEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	require.NoError(t, historyStore.Append("user-1", history.Entry{UserMessage: "hello"}))

	rec := doRequest(t, r, "DELETE", "/api/ai-planner/history/user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Chat history deleted for user user-1", body["message"])

	rec = doRequest(t, r, "DELETE", "/api/ai-planner/history/user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "No chat history found for user user-1", body["message"])
}

func TestHealthEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "GET", "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "jumbah-backend", body["service"])

	components, ok := body["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, components["ai_planner"])
	assert.Equal(t, true, components["chat_history"])
	assert.Equal(t, true, components["gamification"])
	assert.Equal(t, false, components["weather_service"])
}

func TestRootEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "GET", "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["message"], "JumBah")
}

func TestLocationSearchEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Kota Kinabalu", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"place_id":123,"display_name":"Kota Kinabalu, Sabah, Malaysia","lat":"5.9788","lon":"116.0753","type":"city","class":"place","importance":0.7}]`))
	}))
	defer ts.Close()

	r := setupTestServer(t, &stubProvider{reply: "ok"})
	locationClient = location.NewClientWithURLs(ts.URL, ts.URL, ts.URL)

	rec := doRequest(t, r, "GET", "/api/locations/search?query=Kota+Kinabalu", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])

	results, ok := body["results"].([]interface{})
	require.True(t, ok)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "Kota Kinabalu", first["name"])
}

func TestLocationSearchEndpointMissingQuery(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "GET", "/api/locations/search", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Query parameter is required", decodeBody(t, rec)["error"])
}

func TestGeocodeEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Sepilok", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"place_id":456,"display_name":"Sepilok, Sandakan, Sabah, Malaysia","lat":"5.8745","lon":"117.9455","type":"hamlet","class":"place","importance":0.4}]`))
	}))
	defer ts.Close()

	r := setupTestServer(t, &stubProvider{reply: "ok"})
	locationClient = location.NewClientWithURLs(ts.URL, ts.URL, ts.URL)

	rec := doRequest(t, r, "GET", "/api/locations/geocode?address=Sepilok", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Sepilok", data["name"])

	coords := body["coordinates"].(map[string]interface{})
	assert.Equal(t, 5.8745, coords["lat"])
	assert.Equal(t, 117.9455, coords["lon"])
}

func TestGeocodeEndpointNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	r := setupTestServer(t, &stubProvider{reply: "ok"})
	locationClient = location.NewClientWithURLs(ts.URL, ts.URL, ts.URL)

	rec := doRequest(t, r, "GET", "/api/locations/geocode?address=nowhere", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Location not found", decodeBody(t, rec)["error"])
}

func TestGeocodeEndpointValidation(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "GET", "/api/locations/geocode", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Address parameter is required", decodeBody(t, rec)["error"])

	rec = doRequest(t, r, "GET", "/api/locations/geocode?address=KK&limit=11", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Limit must be between 1 and 10", decodeBody(t, rec)["error"])
}

func TestReverseGeocodeEndpointInvalidParams(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "GET", "/api/locations/reverse-geocode?lat=abc&lon=116.07", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, r, "GET", "/api/locations/reverse-geocode?lat=5.97", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "lon")
}

func TestReverseGeocodeEndpointNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer ts.Close()

	r := setupTestServer(t, &stubProvider{reply: "ok"})
	locationClient = location.NewClientWithURLs(ts.URL, ts.URL, ts.URL)

	rec := doRequest(t, r, "GET", "/api/locations/reverse-geocode?lat=0&lon=0", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNearbyPOIsEndpointInvalidRadius(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "GET", "/api/locations/nearby-pois?lat=5.97&lon=116.07&radius=99999", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "Radius")
}

func TestRouteEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/walking/"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"routes":[{"distance":5400.2,"duration":4100.5,"geometry":"abc","legs":[{"steps":[]}]}]}`))
	}))
	defer ts.Close()

	r := setupTestServer(t, &stubProvider{reply: "ok"})
	locationClient = location.NewClientWithURLs(ts.URL, ts.URL, ts.URL)

	rec := doRequest(t, r, "GET", "/api/locations/route?start_lat=5.9788&start_lon=116.0753&end_lat=5.9749&end_lon=116.0735&profile=walking", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	route, ok := body["route"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 5400.2, route["distance"])
}

const weatherUpstreamBody = `{
	"location": {"name": "Kota Kinabalu", "region": "Sabah", "country": "Malaysia", "lat": 5.98, "lon": 116.07},
	"current": {
		"temp_c": 30, "temp_f": 86,
		"condition": {"text": "Sunny", "icon": "//cdn.weatherapi.com/sunny.png"},
		"humidity": 70, "wind_kph": 10, "wind_dir": "NW",
		"pressure_mb": 1010, "feelslike_c": 34, "feelslike_f": 93.2, "uv": 7
	}
}`

func TestWeatherEndpointNotConfigured(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "GET", "/api/weather?lat=5.98&lon=116.07", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Weather API key not configured", decodeBody(t, rec)["error"])
}

func TestWeatherEndpointByCoords(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(weatherUpstreamBody))
	}))
	defer ts.Close()

	r := setupTestServer(t, &stubProvider{reply: "ok"})
	weatherClient = weather.NewClient("test-key", ts.URL)

	rec := doRequest(t, r, "GET", "/api/weather?lat=5.98&lon=116.07", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	current, ok := body["current"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(30), current["temp_c"])
	condition, ok := current["condition"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Sunny", condition["text"])
}

func TestWeatherEndpointByName(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Sandakan", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(weatherUpstreamBody))
	}))
	defer ts.Close()

	r := setupTestServer(t, &stubProvider{reply: "ok"})
	weatherClient = weather.NewClient("test-key", ts.URL)

	rec := doRequest(t, r, "GET", "/api/weather/location?q=Sandakan", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	current, ok := body["current"].(map[string]interface{})
	require.True(t, ok)
	// Name lookups flatten the condition.
	assert.Equal(t, "Sunny", current["condition"])
	assert.Equal(t, float64(34), current["feels_like_c"])
}

func TestWeatherEndpointRelaysUpstreamStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	}))
	defer ts.Close()

	r := setupTestServer(t, &stubProvider{reply: "ok"})
	weatherClient = weather.NewClient("test-key", ts.URL)

	rec := doRequest(t, r, "GET", "/api/weather/location?q=nowhere", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProfileEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "POST", "/api/users/profile?username=aina&email=aina%40example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	profile, ok := body["profile"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "aina", profile["username"])
	assert.Equal(t, float64(1), profile["level"])
	assert.NotEmpty(t, profile["user_id"])
}

func TestCreateProfileEndpointMissingUsername(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "POST", "/api/users/profile", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username is required", decodeBody(t, rec)["error"])
}

func TestGetProfileEndpointNotFound(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "GET", "/api/users/profile/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User profile not found", decodeBody(t, rec)["error"])
}

func TestQuestCompletionEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "POST", "/api/users/profile?username=aina", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody(t, rec)["profile"].(map[string]interface{})
	userID := profile["user_id"].(string)

	rec = doRequest(t, r, "POST", "/api/users/profile/"+userID+"/quest-completion", map[string]interface{}{
		"quest_id":      "quest-1",
		"quest_type":    "photo",
		"location":      "Mount Kinabalu",
		"points_earned": 120,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Quest completed! Earned 120 points", body["message"])
	updated := body["profile"].(map[string]interface{})
	assert.Equal(t, float64(120), updated["total_points"])
	assert.Equal(t, float64(2), updated["level"])
}

func TestQuestCompletionEndpointValidation(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "POST", "/api/users/profile/u1/quest-completion", map[string]interface{}{
		"points_earned": 10,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Quest ID is required", decodeBody(t, rec)["error"])

	rec = doRequest(t, r, "POST", "/api/users/profile/missing/quest-completion", map[string]interface{}{
		"quest_id":      "quest-1",
		"points_earned": 10,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnlockContentEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "POST", "/api/users/profile?username=aina", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody(t, rec)["profile"].(map[string]interface{})
	userID := profile["user_id"].(string)

	rec = doRequest(t, r, "POST", "/api/users/profile/"+userID+"/unlock-content", map[string]string{
		"content_id": "secret-beach",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Content unlocked: secret-beach", decodeBody(t, rec)["message"])

	rec = doRequest(t, r, "GET", "/api/users/profile/"+userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody(t, rec)["profile"].(map[string]interface{})
	unlocked, ok := updated["unlocked_content"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, unlocked, "secret-beach")
}

func TestLeaderboardEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	for _, name := range []string{"aina", "borhan", "chong"} {
		rec := doRequest(t, r, "POST", "/api/users/profile?username="+name, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		profile := decodeBody(t, rec)["profile"].(map[string]interface{})
		userID := profile["user_id"].(string)

		rec = doRequest(t, r, "POST", "/api/users/profile/"+userID+"/quest-completion", map[string]interface{}{
			"quest_id":      "quest-" + name,
			"points_earned": len(name) * 10,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(t, r, "GET", "/api/users/leaderboard?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["count"])
	entries := body["leaderboard"].([]interface{})
	first := entries[0].(map[string]interface{})
	assert.Equal(t, "borhan", first["username"])
	assert.Equal(t, float64(1), first["rank"])
}

func TestAchievementsEndpoint(t *testing.T) {
	r := setupTestServer(t, &stubProvider{reply: "ok"})

	rec := doRequest(t, r, "GET", "/api/users/achievements", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(8), body["count"])
	achievements := body["achievements"].([]interface{})
	first := achievements[0].(map[string]interface{})
	assert.Equal(t, "first_quest", first["id"])
	assert.Equal(t, false, first["unlocked"])
}
