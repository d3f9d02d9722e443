// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package gamification

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps gamification state in process memory. State is
// lost on restart; it is the default when no Redis address is set.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*Profile)}
}

func (s *MemoryStore) CreateProfile(_ context.Context, username, email string) (*Profile, error) {
	now := time.Now()
	profile := &Profile{
		UserID:          uuid.NewString(),
		Username:        username,
		Email:           email,
		Level:           1,
		Achievements:    newAchievementSet(),
		UnlockedContent: []string{},
		CreatedDate:     now,
		LastActive:      now,
	}

	s.mu.Lock()
	s.profiles[profile.UserID] = profile
	s.mu.Unlock()

	return copyProfile(profile), nil
}

func (s *MemoryStore) GetProfile(_ context.Context, userID string) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	profile.LastActive = time.Now()
	return copyProfile(profile), nil
}

func (s *MemoryStore) RecordQuestCompletion(_ context.Context, userID string, completion QuestCompletion) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	applyCompletion(profile, completion, time.Now())
	return copyProfile(profile), nil
}

func (s *MemoryStore) Leaderboard(_ context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	entries := make([]LeaderboardEntry, 0, len(s.profiles))
	for _, p := range s.profiles {
		// Users join the board with their first completion.
		if p.TotalQuestsCompleted == 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:      p.UserID,
			Username:    p.Username,
			TotalPoints: p.TotalPoints,
			Level:       p.Level,
		})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].TotalPoints > entries[j].TotalPoints })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (s *MemoryStore) UnlockContent(_ context.Context, userID, contentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return ErrUserNotFound
	}
	for _, existing := range profile.UnlockedContent {
		if existing == contentID {
			return nil
		}
	}
	profile.UnlockedContent = append(profile.UnlockedContent, contentID)
	return nil
}

func copyProfile(p *Profile) *Profile {
	clone := *p
	clone.Achievements = make([]Achievement, len(p.Achievements))
	copy(clone.Achievements, p.Achievements)
	clone.UnlockedContent = append([]string{}, p.UnlockedContent...)
	return &clone
}
