// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the WeatherAPI.com endpoint root.
const DefaultBaseURL = "http://api.weatherapi.com/v1"

// Client fetches current conditions from WeatherAPI.com.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the given API key. An empty base URL
// falls back to the public endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// UpstreamError carries the status and body of a failed WeatherAPI
// call so handlers can relay them.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather API error (status %d): %s", e.StatusCode, e.Body)
}

// Location identifies the place a weather observation belongs to.
type Location struct {
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Condition is the textual weather state with its icon URL.
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// CoordsCurrent is the current-conditions payload for coordinate
// lookups; the condition stays nested.
type CoordsCurrent struct {
	TempC      float64   `json:"temp_c"`
	TempF      float64   `json:"temp_f"`
	Condition  Condition `json:"condition"`
	Humidity   int       `json:"humidity"`
	WindKph    float64   `json:"wind_kph"`
	WindDir    string    `json:"wind_dir"`
	PressureMb float64   `json:"pressure_mb"`
	FeelslikeC float64   `json:"feelslike_c"`
	FeelslikeF float64   `json:"feelslike_f"`
	UV         float64   `json:"uv"`
}

// CoordsReport is the response shape for coordinate lookups.
type CoordsReport struct {
	Location Location      `json:"location"`
	Current  CoordsCurrent `json:"current"`
}

// NamedCurrent is the current-conditions payload for name lookups; the
// condition text and icon are flattened and feels-like keys differ.
type NamedCurrent struct {
	TempC      float64 `json:"temp_c"`
	TempF      float64 `json:"temp_f"`
	Condition  string  `json:"condition"`
	Icon       string  `json:"icon"`
	Humidity   int     `json:"humidity"`
	WindKph    float64 `json:"wind_kph"`
	WindDir    string  `json:"wind_dir"`
	PressureMb float64 `json:"pressure_mb"`
	FeelsLikeC float64 `json:"feels_like_c"`
	FeelsLikeF float64 `json:"feels_like_f"`
	UV         float64 `json:"uv"`
}

// NamedReport is the response shape for location-name lookups.
type NamedReport struct {
	Location Location     `json:"location"`
	Current  NamedCurrent `json:"current"`
}

// upstream mirrors the WeatherAPI current.json document.
type upstream struct {
	Location Location `json:"location"`
	Current  struct {
		TempC      float64   `json:"temp_c"`
		TempF      float64   `json:"temp_f"`
		Condition  Condition `json:"condition"`
		Humidity   int       `json:"humidity"`
		WindKph    float64   `json:"wind_kph"`
		WindDir    string    `json:"wind_dir"`
		PressureMb float64   `json:"pressure_mb"`
		FeelslikeC float64   `json:"feelslike_c"`
		FeelslikeF float64   `json:"feelslike_f"`
		UV         float64   `json:"uv"`
	} `json:"current"`
}

// CurrentByCoords fetches current conditions for a lat/lon pair.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (*CoordsReport, error) {
	q := strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
	data, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	return &CoordsReport{
		Location: data.Location,
		Current: CoordsCurrent{
			TempC:      data.Current.TempC,
			TempF:      data.Current.TempF,
			Condition:  data.Current.Condition,
			Humidity:   data.Current.Humidity,
			WindKph:    data.Current.WindKph,
			WindDir:    data.Current.WindDir,
			PressureMb: data.Current.PressureMb,
			FeelslikeC: data.Current.FeelslikeC,
			FeelslikeF: data.Current.FeelslikeF,
			UV:         data.Current.UV,
		},
	}, nil
}

// CurrentByName fetches current conditions for a free-text location
// query (city, region, and so on).
func (c *Client) CurrentByName(ctx context.Context, query string) (*NamedReport, error) {
	data, err := c.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	return &NamedReport{
		Location: data.Location,
		Current: NamedCurrent{
			TempC:      data.Current.TempC,
			TempF:      data.Current.TempF,
			Condition:  data.Current.Condition.Text,
			Icon:       data.Current.Condition.Icon,
			Humidity:   data.Current.Humidity,
			WindKph:    data.Current.WindKph,
			WindDir:    data.Current.WindDir,
			PressureMb: data.Current.PressureMb,
			FeelsLikeC: data.Current.FeelslikeC,
			FeelsLikeF: data.Current.FeelslikeF,
			UV:         data.Current.UV,
		},
	}, nil
}

func (c *Client) fetch(ctx context.Context, q string) (*upstream, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("weather API key not configured")
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", q)
	params.Set("aqi", "no")

	endpoint := c.baseURL + "/current.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var data upstream
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding weather response: %w", err)
	}
	return &data, nil
}
