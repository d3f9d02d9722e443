// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

/*
Package logger provides structured JSON logging for JumBah backend
components.

# Overview

The logger package outputs single-line JSON to stdout, making logs easily
consumable by Docker, CloudWatch, or other log aggregation systems.

Each log entry includes:
  - Timestamp (RFC3339Nano format)
  - Log level (DEBUG, INFO, WARN, ERROR)
  - Component name (server, planner, history, etc.)
  - Instance ID and container name
  - User ID (for per-user correlation)
  - Request ID (for request correlation)
  - Custom fields

# Usage

Create a logger for your component:

	log := logger.New("planner")

Log messages with user and request context:

	log.Info("user-123", "req-456", "Chat request handled", map[string]interface{}{
	    "intent": "itinerary",
	})

Log errors with status codes:

	log.ErrorWithCode("user-123", "req-456", "Request failed", 502, err, nil)

Log with duration tracking:

	start := time.Now()
	// ... do work ...
	log.InfoWithDuration("user-123", "req-456", "Request completed",
	    float64(time.Since(start).Milliseconds()), nil)

# Environment Variables

The logger reads these environment variables:

  - INSTANCE_ID: Deployment instance identifier
  - HOSTNAME: Container hostname (auto-detected)

# Thread Safety

Logger instances are safe for concurrent use from multiple goroutines.
*/
package logger
