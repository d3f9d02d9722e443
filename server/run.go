// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"jumbah/backend/aicontent"
	"jumbah/backend/config"
	"jumbah/backend/gamification"
	"jumbah/backend/history"
	"jumbah/backend/llm"
	"jumbah/backend/llm/gemini"
	"jumbah/backend/location"
	"jumbah/backend/planner"
	"jumbah/backend/weather"
)

// JumBah Travel Backend - AI trip planning, location, weather, and
// gamification APIs for travel in Sabah, Malaysia.

// Components
var (
	serviceConfig  *config.Config
	modelProvider  llm.Provider
	historyStore   *history.Store
	aiPlanner      *planner.Planner
	locationClient *location.Client
	weatherClient  *weather.Client
	gameStore      gamification.Store
	contentService *aicontent.Service
)

// Prometheus metrics
var (
	promChatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jumbah_chat_requests_total",
			Help: "Total number of chat requests processed by the AI planner",
		},
		[]string{"type", "status"},
	)
	promChatDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jumbah_chat_duration_milliseconds",
			Help:    "Chat request duration in milliseconds",
			Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000, 10000},
		},
		[]string{"type"},
	)
	promLLMCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jumbah_llm_calls_total",
			Help: "Total number of LLM API calls",
		},
		[]string{"provider", "status"},
	)
	promUpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jumbah_upstream_requests_total",
			Help: "Total number of requests to upstream services",
		},
		[]string{"service", "status"},
	)
)

func init() {
	// Register Prometheus metrics
	prometheus.MustRegister(promChatRequests)
	prometheus.MustRegister(promChatDuration)
	prometheus.MustRegister(promLLMCalls)
	prometheus.MustRegister(promUpstreamRequests)
}

// Run is the exported entry point for the backend service.
//
// It initializes all components (model provider, chat history store,
// location and weather clients, gamification store), sets up HTTP
// routes, and starts the server. The function blocks until the server
// is shut down.
//
// Environment variables used:
//   - PORT: HTTP server port (default: 8000)
//   - GEMINI_API_KEY: Google Gemini API key
//   - WEATHER_API_KEY: WeatherAPI.com key (optional)
//   - HISTORY_DIR: chat history directory (default: chat_history)
//   - REDIS_ADDR: Redis address for gamification (optional)
func Run() {
	log.Println("Starting JumBah Travel Backend...")

	// Initialize components
	initializeComponents()

	// Setup router
	r := newRouter()

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	// Start server
	port := serviceConfig.Port
	handler := c.Handler(r)
	log.Printf("JumBah Travel Backend listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func newRouter() *mux.Router {
	r := mux.NewRouter()

	// Service banner and health check
	r.HandleFunc("/", rootHandler).Methods("GET")
	r.HandleFunc("/api/health", healthHandler).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// AI planner endpoints
	r.HandleFunc("/api/ai-planner/chat", chatHandler).Methods("POST")
	r.HandleFunc("/api/ai-planner/generate-plan", generatePlanHandler).Methods("POST")
	r.HandleFunc("/api/ai-planner/history/{user_id}", getHistoryHandler).Methods("GET")
	r.HandleFunc("/api/ai-planner/history/{user_id}", deleteHistoryHandler).Methods("DELETE")

	// Location endpoints (Nominatim / Overpass / OSRM proxies)
	r.HandleFunc("/api/locations/search", locationSearchHandler).Methods("GET")
	r.HandleFunc("/api/locations/geocode", geocodeHandler).Methods("GET")
	r.HandleFunc("/api/locations/reverse-geocode", reverseGeocodeHandler).Methods("GET")
	r.HandleFunc("/api/locations/nearby-pois", nearbyPOIsHandler).Methods("GET")
	r.HandleFunc("/api/locations/route", routeHandler).Methods("GET")

	// Weather endpoints (WeatherAPI.com proxy)
	r.HandleFunc("/api/weather", weatherByCoordsHandler).Methods("GET")
	r.HandleFunc("/api/weather/location", weatherByNameHandler).Methods("GET")
	r.HandleFunc("/api/weather/test", weatherTestHandler).Methods("GET")

	// Gamification endpoints
	r.HandleFunc("/api/users/profile", createProfileHandler).Methods("POST")
	r.HandleFunc("/api/users/profile/{user_id}", getProfileHandler).Methods("GET")
	r.HandleFunc("/api/users/profile/{user_id}/quest-completion", questCompletionHandler).Methods("POST")
	r.HandleFunc("/api/users/profile/{user_id}/unlock-content", unlockContentHandler).Methods("POST")
	r.HandleFunc("/api/users/leaderboard", leaderboardHandler).Methods("GET")
	r.HandleFunc("/api/users/achievements", achievementsHandler).Methods("GET")

	// AI content endpoints
	r.HandleFunc("/api/ai-content/recommendations/{user_id}", recommendationsHandler).Methods("GET")
	r.HandleFunc("/api/ai-content/content/generate/{content_type}", generateContentHandler).Methods("GET")
	r.HandleFunc("/api/ai-content/content/history", contentHistoryHandler).Methods("GET")
	r.HandleFunc("/api/ai-content/insights/{user_id}", insightsHandler).Methods("GET")
	r.HandleFunc("/api/ai-content/behavior/update/{user_id}", updateBehaviorHandler).Methods("POST")
	r.HandleFunc("/api/ai-content/analytics/user-patterns", userPatternsHandler).Methods("GET")

	r.Use(loggingMiddleware)

	return r
}

func initializeComponents() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	serviceConfig = cfg

	// Chat history store
	historyStore, err = history.NewStore(cfg.HistoryDir)
	if err != nil {
		log.Fatalf("Failed to initialize chat history store: %v", err)
	}
	log.Printf("Chat history store initialized (dir: %s)", historyStore.Dir())

	// Gemini model provider
	provider, err := gemini.NewProvider(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})
	if err != nil {
		log.Printf("WARNING: Gemini provider not available: %v", err)
		log.Println("AI planner endpoints will return errors until GEMINI_API_KEY is set")
	} else {
		modelProvider = provider
		aiPlanner = planner.New(modelProvider, historyStore)
		log.Println("Gemini provider initialized")
	}

	// Location client (Nominatim, Overpass, OSRM)
	locationClient = location.NewClient()
	log.Println("Location client initialized")

	// Weather client
	weatherClient = weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL)
	if weatherClient.IsConfigured() {
		log.Println("Weather client initialized and configured")
	} else {
		log.Println("Weather client initialized (WEATHER_API_KEY not set - weather endpoints will return errors)")
	}

	// AI content service
	contentService = aicontent.NewService()
	log.Println("AI content service initialized")

	// Gamification store: Redis when configured, in-memory otherwise
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := gamification.NewRedisStore(client)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			log.Printf("WARNING: Redis ping failed: %v", err)
			log.Println("Falling back to in-memory gamification store")
			gameStore = gamification.NewMemoryStore()
		} else {
			gameStore = store
			log.Printf("Gamification store initialized with Redis backing (%s)", cfg.Redis.Addr)
		}
	} else {
		gameStore = gamification.NewMemoryStore()
		log.Println("Gamification store initialized (in-memory, no persistence)")
	}
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	banner := map[string]interface{}{
		"message": "Welcome to the JumBah Travel API",
		"service": "jumbah-backend",
		"version": "1.0.0",
		"health":  "/api/health",
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(banner); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	components := map[string]bool{
		"ai_planner":       modelProvider != nil && modelProvider.IsHealthy(),
		"chat_history":     historyStore != nil,
		"location_service": locationClient != nil,
		"weather_service":  weatherClient != nil && weatherClient.IsConfigured(),
		"gamification":     gameStore != nil,
		"ai_content":       contentService != nil,
	}

	health := map[string]interface{}{
		"status":     "healthy",
		"service":    "jumbah-backend",
		"version":    "1.0.0",
		"timestamp":  time.Now().UTC(),
		"components": components,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
