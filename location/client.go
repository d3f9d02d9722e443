// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultOverpassURL  = "https://overpass-api.de/api/interpreter"
	defaultRoutingURL   = "https://router.project-osrm.org/route/v1"

	userAgent = "JumBah-Travel-App/1.0"

	// maxPOIResults caps Overpass result sets after distance sorting.
	maxPOIResults = 50

	earthRadiusMeters = 6371000
)

// ErrNotFound is returned when an upstream lookup has no result for
// the given input.
var ErrNotFound = errors.New("location not found")

// Client proxies OpenStreetMap services: Nominatim for geocoding,
// Overpass for nearby POIs, and OSRM for routing.
type Client struct {
	nominatimURL string
	overpassURL  string
	routingURL   string
	httpClient   *http.Client
}

// NewClient returns a client against the public OSM endpoints.
func NewClient() *Client {
	return NewClientWithURLs(defaultNominatimURL, defaultOverpassURL, defaultRoutingURL)
}

// NewClientWithURLs returns a client against explicit endpoints. Tests
// point this at local stub servers.
func NewClientWithURLs(nominatimURL, overpassURL, routingURL string) *Client {
	return &Client{
		nominatimURL: strings.TrimRight(nominatimURL, "/"),
		overpassURL:  overpassURL,
		routingURL:   strings.TrimRight(routingURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Place is one geocoding result.
type Place struct {
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Coordinates []float64 `json:"coordinates"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Type        string    `json:"type"`
	Class       string    `json:"class"`
	Importance  float64   `json:"importance"`
	PlaceID     int64     `json:"place_id"`
}

type nominatimResult struct {
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Type        string  `json:"type"`
	Class       string  `json:"class"`
	Importance  float64 `json:"importance"`
	PlaceID     int64   `json:"place_id"`
}

// Search geocodes a free-text query via Nominatim.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")
	params.Set("extratags", "1")

	var results []nominatimResult
	if err := c.getJSON(ctx, c.nominatimURL+"/search?"+params.Encode(), &results); err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}

	places := make([]Place, 0, len(results))
	for _, item := range results {
		lat, err := strconv.ParseFloat(item.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(item.Lon, 64)
		if err != nil {
			continue
		}
		name := item.DisplayName
		if i := strings.Index(name, ","); i >= 0 {
			name = name[:i]
		}
		places = append(places, Place{
			Name:        name,
			Address:     item.DisplayName,
			Coordinates: []float64{lat, lon},
			Lat:         lat,
			Lon:         lon,
			Type:        orUnknown(item.Type),
			Class:       orUnknown(item.Class),
			Importance:  item.Importance,
			PlaceID:     item.PlaceID,
		})
	}
	return places, nil
}

// Address is a reverse geocoding result.
type Address struct {
	Address           string            `json:"address"`
	Coordinates       []float64         `json:"coordinates"`
	AddressComponents map[string]string `json:"address_components"`
	Type              string            `json:"type"`
	PlaceID           int64             `json:"place_id"`
}

// ReverseGeocode resolves coordinates to an address via Nominatim.
// Returns ErrNotFound when nothing is known about the point.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (*Address, error) {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("format", "json")
	params.Set("addressdetails", "1")

	var result struct {
		DisplayName string            `json:"display_name"`
		Address     map[string]string `json:"address"`
		Type        string            `json:"type"`
		PlaceID     int64             `json:"place_id"`
		Error       string            `json:"error"`
	}
	if err := c.getJSON(ctx, c.nominatimURL+"/reverse?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("nominatim reverse: %w", err)
	}
	if result.Error != "" || result.DisplayName == "" {
		return nil, ErrNotFound
	}

	return &Address{
		Address:           result.DisplayName,
		Coordinates:       []float64{lat, lon},
		AddressComponents: result.Address,
		Type:              orUnknown(result.Type),
		PlaceID:           result.PlaceID,
	}, nil
}

// POI is one nearby point of interest.
type POI struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Coordinates []float64         `json:"coordinates"`
	Lat         float64           `json:"lat"`
	Lon         float64           `json:"lon"`
	Type        string            `json:"type"`
	Category    string            `json:"category"`
	Tags        map[string]string `json:"tags"`
	Distance    float64           `json:"distance"`
}

// DefaultPOITypes is the POI type selection used when the caller does
// not narrow the search.
var DefaultPOITypes = []string{"restaurant", "hotel", "tourist", "shop", "amenity"}

// NearbyPOIs queries Overpass for points of interest around a
// coordinate, sorted by distance, capped at 50.
func (c *Client) NearbyPOIs(ctx context.Context, lat, lon float64, radius int, poiTypes []string) ([]POI, error) {
	if radius <= 0 {
		radius = 1000
	}
	if len(poiTypes) == 0 {
		poiTypes = DefaultPOITypes
	}

	query := buildOverpassQuery(lat, lon, radius, poiTypes)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.overpassURL, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("building overpass request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	var payload struct {
		Elements []struct {
			Type string            `json:"type"`
			ID   int64             `json:"id"`
			Lat  float64           `json:"lat"`
			Lon  float64           `json:"lon"`
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding overpass response: %w", err)
	}

	pois := make([]POI, 0, len(payload.Elements))
	for _, el := range payload.Elements {
		if el.Type != "node" {
			continue
		}
		name := el.Tags["name"]
		if name == "" {
			name = "Unknown"
		}
		pois = append(pois, POI{
			ID:          el.ID,
			Name:        name,
			Coordinates: []float64{el.Lat, el.Lon},
			Lat:         el.Lat,
			Lon:         el.Lon,
			Type:        determinePOIType(el.Tags),
			Category:    poiCategory(el.Tags),
			Tags:        el.Tags,
			Distance:    haversine(lat, lon, el.Lat, el.Lon),
		})
	}

	sort.Slice(pois, func(i, j int) bool { return pois[i].Distance < pois[j].Distance })
	if len(pois) > maxPOIResults {
		pois = pois[:maxPOIResults]
	}
	return pois, nil
}

// buildOverpassQuery expands each requested POI type into the OSM tag
// selectors it covers.
func buildOverpassQuery(lat, lon float64, radius int, poiTypes []string) string {
	around := fmt.Sprintf("(around:%d,%s,%s);", radius, formatCoord(lat), formatCoord(lon))

	var parts []string
	add := func(selector string) {
		parts = append(parts, "node["+selector+"]"+around)
	}

	for _, poiType := range poiTypes {
		switch poiType {
		case "restaurant":
			add(`"amenity"="restaurant"`)
			add(`"amenity"="cafe"`)
			add(`"amenity"="fast_food"`)
		case "hotel":
			add(`"tourism"="hotel"`)
			add(`"tourism"="guest_house"`)
		case "tourist":
			add(`"tourism"="attraction"`)
			add(`"tourism"="museum"`)
			add(`"historic"`)
		case "shop":
			add(`"shop"`)
		case "amenity":
			add(`"amenity"="bank"`)
			add(`"amenity"="hospital"`)
			add(`"amenity"="pharmacy"`)
		}
	}

	return "[out:json][timeout:25];\n(\n" + strings.Join(parts, "\n") + "\n);\nout geom;"
}

func determinePOIType(tags map[string]string) string {
	if amenity, ok := tags["amenity"]; ok {
		switch amenity {
		case "restaurant", "cafe", "fast_food", "bar", "pub":
			return "food_drink"
		case "bank", "atm", "post_office":
			return "finance"
		case "hospital", "pharmacy", "clinic":
			return "healthcare"
		default:
			return "amenity"
		}
	}
	if _, ok := tags["tourism"]; ok {
		return "tourism"
	}
	if _, ok := tags["shop"]; ok {
		return "shopping"
	}
	if _, ok := tags["historic"]; ok {
		return "historic"
	}
	return "other"
}

func poiCategory(tags map[string]string) string {
	for _, key := range []string{"amenity", "tourism", "shop", "historic"} {
		if v := tags[key]; v != "" {
			return v
		}
	}
	return "unknown"
}

// Route is an OSRM routing result. Geometry and steps are passed
// through untouched.
type Route struct {
	Distance         float64         `json:"distance"`
	Duration         float64         `json:"duration"`
	Geometry         json.RawMessage `json:"geometry"`
	Steps            json.RawMessage `json:"steps"`
	StartCoordinates []float64       `json:"start_coordinates"`
	EndCoordinates   []float64       `json:"end_coordinates"`
}

// Route finds a route between two points. Coordinates are given in
// lon,lat order as OSRM expects. Returns ErrNotFound when no route
// exists.
func (c *Client) Route(ctx context.Context, startLon, startLat, endLon, endLat float64, profile string) (*Route, error) {
	if profile == "" {
		profile = "driving"
	}

	params := url.Values{}
	params.Set("overview", "full")
	params.Set("geometries", "geojson")
	params.Set("steps", "true")

	endpoint := fmt.Sprintf("%s/%s/%s,%s;%s,%s?%s",
		c.routingURL, profile,
		formatCoord(startLon), formatCoord(startLat),
		formatCoord(endLon), formatCoord(endLat),
		params.Encode())

	var payload struct {
		Routes []struct {
			Distance float64         `json:"distance"`
			Duration float64         `json:"duration"`
			Geometry json.RawMessage `json:"geometry"`
			Legs     []struct {
				Steps json.RawMessage `json:"steps"`
			} `json:"legs"`
		} `json:"routes"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("osrm route: %w", err)
	}
	if len(payload.Routes) == 0 {
		return nil, ErrNotFound
	}

	route := payload.Routes[0]
	result := &Route{
		Distance:         route.Distance,
		Duration:         route.Duration,
		Geometry:         route.Geometry,
		StartCoordinates: []float64{startLat, startLon},
		EndCoordinates:   []float64{endLat, endLon},
	}
	if len(route.Legs) > 0 {
		result.Steps = route.Legs[0].Steps
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// haversine returns the great-circle distance between two points in
// meters.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
