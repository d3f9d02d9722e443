// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point for the JumBah Travel Backend service.
//
// The backend serves the JumBah travel app for Sabah, Malaysia:
// - AI trip planning and chat (MaduAI, Gemini-backed)
// - Per-user chat history
// - Location search, reverse geocoding, nearby POIs, and routing
//   (OpenStreetMap: Nominatim, Overpass, OSRM)
// - Current weather (WeatherAPI.com)
// - Quest gamification with achievements and a leaderboard
//
// Usage:
//
//	./server
//
// Environment Variables:
//
//	PORT - HTTP server port (default: 8000)
//	GEMINI_API_KEY - Google Gemini API key
//	GEMINI_MODEL - Gemini model override (optional)
//	WEATHER_API_KEY - WeatherAPI.com key (optional)
//	HISTORY_DIR - chat history directory (default: chat_history)
//	REDIS_ADDR - Redis address for gamification persistence (optional)
package main

import (
	"jumbah/backend/server"
)

func main() {
	server.Run()
}
