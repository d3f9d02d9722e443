// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

// Package location proxies OpenStreetMap services for the travel app:
// Nominatim geocoding, Overpass POI discovery, and OSRM routing.
package location
