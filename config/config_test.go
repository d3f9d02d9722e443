// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, v := range []string{"PORT", "HISTORY_DIR", "GEMINI_API_KEY", "WEATHER_API_KEY", "REDIS_ADDR", "JUMBAH_CONFIG_FILE"} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "chat_history", cfg.HistoryDir)
	assert.Equal(t, "http://api.weatherapi.com/v1", cfg.Weather.BaseURL)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HISTORY_DIR", "/tmp/history")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/history", cfg.HistoryDir)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
port: "8080"
history_dir: /data/history
gemini:
  api_key: ${TEST_GEMINI_KEY}
  model: gemini-2.0-flash
  timeout_ms: 60000
weather:
  api_key: ${TEST_WEATHER_KEY:-fallback-key}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("JUMBAH_CONFIG_FILE", path)
	t.Setenv("TEST_GEMINI_KEY", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/data/history", cfg.HistoryDir)
	assert.Equal(t, "from-env", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, int64(60000), cfg.Gemini.Timeout.Milliseconds())
	// Undefined var falls back to the :- default
	assert.Equal(t, "fallback-key", cfg.Weather.APIKey)
}

func TestLoadConfigFileMissing(t *testing.T) {
	t.Setenv("JUMBAH_CONFIG_FILE", "/nonexistent/config.yaml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MY_VAR", "hello")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"braced", "value: ${MY_VAR}", "value: hello"},
		{"bare", "value: $MY_VAR", "value: hello"},
		{"default used", "value: ${UNSET_VAR_XYZ:-dflt}", "value: dflt"},
		{"default unused", "value: ${MY_VAR:-dflt}", "value: hello"},
		{"undefined", "value: ${UNSET_VAR_XYZ}", "value: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}
