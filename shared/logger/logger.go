// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// LogLevel represents the severity of a log entry
type LogLevel string

const (
	DEBUG LogLevel = "DEBUG"
	INFO  LogLevel = "INFO"
	WARN  LogLevel = "WARN"
	ERROR LogLevel = "ERROR"
)

// Logger provides structured logging for a single service component
type Logger struct {
	Component  string
	InstanceID string
	Container  string
}

// LogEntry represents a structured log entry written to stdout
type LogEntry struct {
	Timestamp  string                 `json:"timestamp"`
	Level      LogLevel               `json:"level"`
	Component  string                 `json:"component"`
	InstanceID string                 `json:"instance_id"`
	Container  string                 `json:"container"`
	UserID     string                 `json:"user_id,omitempty"`
	RequestID  string                 `json:"request_id,omitempty"`
	Message    string                 `json:"message"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
}

// New creates a new Logger for the specified component
func New(component string) *Logger {
	// Get instance ID from environment (set during deployment)
	instanceID := os.Getenv("INSTANCE_ID")
	if instanceID == "" {
		instanceID = "unknown"
	}

	// Get container name from hostname
	container, err := os.Hostname()
	if err != nil {
		container = "unknown"
	}

	return &Logger{
		Component:  component,
		InstanceID: instanceID,
		Container:  container,
	}
}

// Log creates a structured log entry and writes it to stdout
func (l *Logger) Log(level LogLevel, userID, requestID, message string, fields map[string]interface{}) {
	entry := LogEntry{
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Level:      level,
		Component:  l.Component,
		InstanceID: l.InstanceID,
		Container:  l.Container,
		UserID:     userID,
		RequestID:  requestID,
		Message:    message,
		Fields:     fields,
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		// Fallback to plain text if JSON marshaling fails
		log.Printf("ERROR: Failed to marshal log entry: %v", err)
		return
	}

	// Write JSON log to stdout (Docker will capture this)
	log.Println(string(jsonBytes))
}

// Info logs an informational message
func (l *Logger) Info(userID, requestID, message string, fields map[string]interface{}) {
	l.Log(INFO, userID, requestID, message, fields)
}

// Error logs an error message
func (l *Logger) Error(userID, requestID, message string, fields map[string]interface{}) {
	l.Log(ERROR, userID, requestID, message, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(userID, requestID, message string, fields map[string]interface{}) {
	l.Log(WARN, userID, requestID, message, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(userID, requestID, message string, fields map[string]interface{}) {
	l.Log(DEBUG, userID, requestID, message, fields)
}

// InfoWithDuration logs an info message with duration field
func (l *Logger) InfoWithDuration(userID, requestID, message string, durationMS float64, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["duration_ms"] = durationMS
	l.Info(userID, requestID, message, fields)
}

// ErrorWithCode logs an error with status code
func (l *Logger) ErrorWithCode(userID, requestID, message string, statusCode int, err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["status_code"] = statusCode
	if err != nil {
		fields["error"] = err.Error()
	}
	l.Error(userID, requestID, message, fields)
}
