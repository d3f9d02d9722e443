// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"
	"time"

	"jumbah/backend/shared/logger"
)

var requestLog = logger.New("http")

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware emits one structured log line per request with
// method, path, status, and duration. Server errors log at ERROR.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		durationMS := float64(time.Since(start)) / float64(time.Millisecond)
		fields := map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		}
		if rec.status >= http.StatusInternalServerError {
			requestLog.ErrorWithCode("", "", "request completed", rec.status, nil, fields)
		} else {
			fields["status_code"] = rec.status
			requestLog.InfoWithDuration("", "", "request completed", durationMS, fields)
		}
	})
}
