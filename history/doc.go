// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

// Package history persists per-user chat logs as JSON files, one file
// per user, capped at the most recent 50 turns.
package history
