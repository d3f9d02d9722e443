// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

// Package gamification tracks quest completions, points, levels, and
// achievement unlocks, with in-memory and Redis-backed stores.
package gamification
