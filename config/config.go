// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration for the backend service.
// Values are resolved in order: built-in defaults, then the optional
// YAML config file named by JUMBAH_CONFIG_FILE, then environment
// variables. Environment variables win.
type Config struct {
	Port       string `yaml:"port"`
	HistoryDir string `yaml:"history_dir"`

	Gemini  GeminiConfig  `yaml:"gemini"`
	Weather WeatherConfig `yaml:"weather"`
	Redis   RedisConfig   `yaml:"redis"`
}

// GeminiConfig configures the Gemini model provider.
type GeminiConfig struct {
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	TimeoutMs int           `yaml:"timeout_ms"`
	Timeout   time.Duration `yaml:"-"`
}

// WeatherConfig configures the WeatherAPI.com proxy.
type WeatherConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// RedisConfig configures the optional Redis backing for gamification.
// When Addr is empty the in-memory store is used instead.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Load resolves the full service configuration.
//
// Environment variables used:
//   - PORT: HTTP server port (default: 8000)
//   - HISTORY_DIR: chat history directory (default: chat_history)
//   - GEMINI_API_KEY: Gemini API key
//   - GEMINI_MODEL: Gemini model override
//   - WEATHER_API_KEY: WeatherAPI.com key
//   - REDIS_ADDR, REDIS_PASSWORD: optional Redis backing
//   - JUMBAH_CONFIG_FILE: optional YAML config file path
func Load() (*Config, error) {
	cfg := &Config{
		Port:       "8000",
		HistoryDir: "chat_history",
		Weather: WeatherConfig{
			BaseURL: "http://api.weatherapi.com/v1",
		},
	}

	if path := os.Getenv("JUMBAH_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if cfg.Gemini.TimeoutMs > 0 {
		cfg.Gemini.Timeout = time.Duration(cfg.Gemini.TimeoutMs) * time.Millisecond
	}

	return cfg, nil
}

// loadFile reads and parses a YAML config file, expanding environment
// variable references first.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// applyEnv overrides file/default values with environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("HISTORY_DIR"); v != "" {
		c.HistoryDir = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		c.Weather.APIKey = v
	}
	if v := os.Getenv("WEATHER_API_BASE_URL"); v != "" {
		c.Weather.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

// envVarRegex matches ${VAR_NAME} or $VAR_NAME patterns
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnvVars expands environment variable references in the string.
// Supports both ${VAR_NAME} and $VAR_NAME syntax, plus ${VAR:-default}
// defaults. Undefined variables expand to the empty string.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		defaultVal := ""
		if idx := strings.Index(varName, ":-"); idx != -1 {
			defaultVal = varName[idx+2:]
			varName = varName[:idx]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultVal
	})
}
