// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

// Package planner implements the MaduAI chat pipeline: keyword intent
// classification, prompt template selection, model invocation, regex
// response formatting with canned fallbacks, and history titles.
package planner
