// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

// Package weather proxies WeatherAPI.com current conditions, reshaped
// into the payloads the mobile app consumes.
package weather
