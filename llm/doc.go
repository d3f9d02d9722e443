// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

// Package llm defines the model provider interface used by the planner
// pipeline. The chat pipeline depends only on the Provider interface;
// concrete backends live in subpackages (see gemini).
package llm
