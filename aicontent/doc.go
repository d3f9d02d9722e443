// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

// Package aicontent generates personalized quest recommendations,
// dynamic tips and stories, and behavior-driven insights from user
// activity patterns.
package aicontent
