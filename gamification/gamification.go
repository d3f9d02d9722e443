// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package gamification

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound is returned for operations on unknown user ids.
var ErrUserNotFound = errors.New("user not found")

// pointsPerLevel drives level progression: every 100 points is one
// level above the first.
const pointsPerLevel = 100

// Achievement is one unlockable badge on a user profile.
type Achievement struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Icon         string     `json:"icon"`
	Category     string     `json:"category"`
	Unlocked     bool       `json:"unlocked"`
	UnlockedDate *time.Time `json:"unlocked_date,omitempty"`
}

// Profile is a user's gamification state.
type Profile struct {
	UserID               string        `json:"user_id"`
	Username             string        `json:"username"`
	Email                string        `json:"email,omitempty"`
	TotalQuestsCompleted int           `json:"total_quests_completed"`
	TotalPoints          int           `json:"total_points"`
	Level                int           `json:"level"`
	Achievements         []Achievement `json:"achievements"`
	UnlockedContent      []string      `json:"unlocked_content"`
	CreatedDate          time.Time     `json:"created_date"`
	LastActive           time.Time     `json:"last_active"`
}

// QuestCompletion records one finished quest.
type QuestCompletion struct {
	QuestID        string    `json:"quest_id"`
	QuestType      string    `json:"quest_type"`
	Location       string    `json:"location"`
	PointsEarned   int       `json:"points_earned"`
	CompletionDate time.Time `json:"completion_date"`
}

// LeaderboardEntry is one row on the points leaderboard.
type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	TotalPoints int    `json:"total_points"`
	Level       int    `json:"level"`
	Rank        int    `json:"rank"`
}

// Store is the gamification persistence contract. Implementations are
// safe for concurrent use.
type Store interface {
	CreateProfile(ctx context.Context, username, email string) (*Profile, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	RecordQuestCompletion(ctx context.Context, userID string, completion QuestCompletion) (*Profile, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	UnlockContent(ctx context.Context, userID, contentID string) error
}

// catalog is the fixed achievement set every new profile starts with.
var catalog = []Achievement{
	{ID: "first_quest", Name: "First Steps", Description: "Complete your first quest", Icon: "🎯", Category: "beginner"},
	{ID: "photo_master", Name: "Photo Master", Description: "Complete 5 photo quests", Icon: "📸", Category: "photo"},
	{ID: "trivia_expert", Name: "Trivia Expert", Description: "Answer 10 trivia questions correctly", Icon: "🧠", Category: "trivia"},
	{ID: "explorer", Name: "Explorer", Description: "Visit 10 different locations", Icon: "🗺️", Category: "exploration"},
	{ID: "culture_enthusiast", Name: "Culture Enthusiast", Description: "Complete all cultural quests", Icon: "🏛️", Category: "culture"},
	{ID: "foodie", Name: "Foodie", Description: "Complete all food-related quests", Icon: "🍜", Category: "food"},
	{ID: "speed_runner", Name: "Speed Runner", Description: "Complete 5 quests in one day", Icon: "⚡", Category: "speed"},
	{ID: "completionist", Name: "Completionist", Description: "Complete all available quests", Icon: "👑", Category: "completion"},
}

// AllAchievements returns the achievement catalog with everything
// locked, for listing endpoints.
func AllAchievements() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

func newAchievementSet() []Achievement {
	return AllAchievements()
}

// applyCompletion folds one quest completion into a profile: counters,
// level, and achievement unlocks.
func applyCompletion(profile *Profile, completion QuestCompletion, now time.Time) {
	profile.TotalQuestsCompleted++
	profile.TotalPoints += completion.PointsEarned

	if level := profile.TotalPoints/pointsPerLevel + 1; level > profile.Level {
		profile.Level = level
	}

	for i := range profile.Achievements {
		a := &profile.Achievements[i]
		if a.Unlocked {
			continue
		}
		if shouldUnlock(a.ID, profile) {
			a.Unlocked = true
			ts := now
			a.UnlockedDate = &ts
		}
	}

	profile.LastActive = now
}

// shouldUnlock applies the per-achievement unlock thresholds against
// the updated profile counters.
func shouldUnlock(achievementID string, profile *Profile) bool {
	switch achievementID {
	case "first_quest":
		return profile.TotalQuestsCompleted == 1
	case "photo_master":
		return profile.TotalQuestsCompleted >= 5
	case "trivia_expert", "explorer":
		return profile.TotalQuestsCompleted >= 10
	case "completionist":
		return profile.TotalQuestsCompleted >= 20
	}
	return false
}
