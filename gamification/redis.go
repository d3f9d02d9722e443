// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	profileKeyPrefix = "jumbah:profile:"
	leaderboardKey   = "jumbah:leaderboard"
)

// RedisStore keeps gamification state in Redis: profiles as JSON
// values and the leaderboard as a sorted set scored by total points.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping verifies the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func profileKey(userID string) string {
	return profileKeyPrefix + userID
}

func (s *RedisStore) CreateProfile(ctx context.Context, username, email string) (*Profile, error) {
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
	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *RedisStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.LastActive = time.Now()
	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *RedisStore) RecordQuestCompletion(ctx context.Context, userID string, completion QuestCompletion) (*Profile, error) {
	profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyCompletion(profile, completion, time.Now())

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	err = s.client.ZAdd(ctx, leaderboardKey, &redis.Z{
		Score:  float64(profile.TotalPoints),
		Member: profile.UserID,
	}).Err()
	if err != nil {
		return nil, fmt.Errorf("updating leaderboard: %w", err)
	}
	return profile, nil
}

func (s *RedisStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	members, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(members))
	for _, member := range members {
		userID, _ := member.Member.(string)
		profile, err := s.load(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, LeaderboardEntry{
			UserID:      profile.UserID,
			Username:    profile.Username,
			TotalPoints: profile.TotalPoints,
			Level:       profile.Level,
			Rank:        len(entries) + 1,
		})
	}
	return entries, nil
}

func (s *RedisStore) UnlockContent(ctx context.Context, userID, contentID string) error {
	profile, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	for _, existing := range profile.UnlockedContent {
		if existing == contentID {
			return nil
		}
	}
	profile.UnlockedContent = append(profile.UnlockedContent, contentID)
	return s.save(ctx, profile)
}

func (s *RedisStore) load(ctx context.Context, userID string) (*Profile, error) {
	data, err := s.client.Get(ctx, profileKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", userID, err)
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", userID, err)
	}
	return &profile, nil
}

func (s *RedisStore) save(ctx context.Context, profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile %s: %w", profile.UserID, err)
	}
	if err := s.client.Set(ctx, profileKey(profile.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("saving profile %s: %w", profile.UserID, err)
	}
	return nil
}
