// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

// Package config loads runtime configuration for the JumBah backend from
// environment variables and an optional YAML config file. The config file
// may reference environment variables with ${VAR} or ${VAR:-default}
// syntax; environment variables always take precedence over file values.
package config
