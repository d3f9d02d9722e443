// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package aicontent

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrInvalidContentType is returned for content types outside the
// supported set (tip, fact, story, challenge).
var ErrInvalidContentType = errors.New("invalid content type")

// Recommendation is a quest suggestion scored against a user's
// observed preferences.
type Recommendation struct {
	QuestID              string  `json:"quest_id"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Difficulty           string  `json:"difficulty"`
	EstimatedTime        string  `json:"estimated_time"`
	Location             string  `json:"location"`
	QuestType            string  `json:"quest_type"`
	RecommendationReason string  `json:"recommendation_reason"`
	ConfidenceScore      float64 `json:"confidence_score"`
}

// DynamicContent is one generated tip, fact, story, or challenge.
type DynamicContent struct {
	ContentID       string    `json:"content_id"`
	ContentType     string    `json:"content_type"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	LocationContext string    `json:"location_context,omitempty"`
	DifficultyLevel string    `json:"difficulty_level"`
	Tags            []string  `json:"tags"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// BehaviorAnalysis summarizes a user's quest activity patterns.
type BehaviorAnalysis struct {
	UserID                 string   `json:"user_id"`
	PreferredQuestTypes    []string `json:"preferred_quest_types"`
	DifficultyPreference   string   `json:"difficulty_preference"`
	TimeOfDayPreference    string   `json:"time_of_day_preference"`
	LocationPreferences    []string `json:"location_preferences"`
	CompletionRate         float64  `json:"completion_rate"`
	AverageSessionDuration int      `json:"average_session_duration"`
}

// Insight is a generated observation about a user's progress.
type Insight struct {
	InsightType    string   `json:"insight_type"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	ActionableTips []string `json:"actionable_tips"`
	Confidence     float64  `json:"confidence"`
}

// CompletedQuest is the slice of quest data behavior analysis needs.
type CompletedQuest struct {
	QuestType  string
	Difficulty string
}

// PatternsReport aggregates behavior statistics across all users.
type PatternsReport struct {
	TotalUsers             int            `json:"total_users"`
	PopularQuestTypes      map[string]int `json:"popular_quest_types"`
	DifficultyDistribution map[string]int `json:"difficulty_distribution"`
	AverageCompletionRate  float64        `json:"average_completion_rate"`
	ContentGenerated       int            `json:"content_generated"`
}

// Service owns the behavior profiles and the generated-content log.
// All mutation goes through the service's lock.
type Service struct {
	mu        sync.Mutex
	behaviors map[string]*BehaviorAnalysis
	generated []DynamicContent
	rng       *rand.Rand
	now       func() time.Time
}

// NewService returns an empty content service.
func NewService() *Service {
	return &Service{
		behaviors: make(map[string]*BehaviorAnalysis),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// analyzeBehavior derives preference patterns from completed quests.
// With no history it returns the default profile for a new user.
func (s *Service) analyzeBehavior(userID string, completed []CompletedQuest) *BehaviorAnalysis {
	if len(completed) == 0 {
		return &BehaviorAnalysis{
			UserID:                 userID,
			PreferredQuestTypes:    []string{"cultural"},
			DifficultyPreference:   "Easy",
			TimeOfDayPreference:    "morning",
			LocationPreferences:    []string{"Kota Kinabalu"},
			CompletionRate:         0.0,
			AverageSessionDuration: 30,
		}
	}

	var preferred []string
	seen := map[string]bool{}
	for _, q := range completed {
		questType := q.QuestType
		if questType == "" {
			questType = "cultural"
		}
		if !seen[questType] {
			seen[questType] = true
			preferred = append(preferred, questType)
		}
	}

	counts := map[string]int{}
	difficulty := "Easy"
	best := 0
	for _, q := range completed {
		d := q.Difficulty
		if d == "" {
			d = "Easy"
		}
		counts[d]++
		if counts[d] > best {
			best = counts[d]
			difficulty = d
		}
	}

	// Completion rate assumes a 10-quest pool.
	rate := math.Min(float64(len(completed))/10.0, 1.0)

	return &BehaviorAnalysis{
		UserID:                 userID,
		PreferredQuestTypes:    preferred,
		DifficultyPreference:   difficulty,
		TimeOfDayPreference:    "morning",
		LocationPreferences:    []string{"Kota Kinabalu", "Kinabalu Park"},
		CompletionRate:         rate,
		AverageSessionDuration: s.rng.Intn(91) + 30,
	}
}

// Recommendations scores the quest catalog against the user's behavior
// profile and returns up to limit suggestions, best first.
func (s *Service) Recommendations(userID string, limit int) []Recommendation {
	if limit <= 0 || limit > len(questCatalog) {
		limit = len(questCatalog)
	}

	// Completed-quest history is not persisted yet; the analysis runs
	// over a representative sample.
	behavior := s.analyzeBehavior(userID, sampleCompletedQuests)

	s.mu.Lock()
	s.behaviors[userID] = behavior
	s.mu.Unlock()

	recommendations := make([]Recommendation, 0, limit)
	for _, quest := range questCatalog[:limit] {
		score := 0.5
		var reasons []string

		if containsString(behavior.PreferredQuestTypes, quest.QuestType) {
			score += 0.3
			reasons = append(reasons, fmt.Sprintf("matches your interest in %s activities", quest.QuestType))
		}
		if quest.Difficulty == behavior.DifficultyPreference {
			score += 0.2
			reasons = append(reasons, fmt.Sprintf("aligns with your preferred %s difficulty level", strings.ToLower(quest.Difficulty)))
		}

		reason := "is popular among similar users"
		if len(reasons) > 0 {
			reason = "Based on your activity history, this quest " + strings.Join(reasons, " and ")
		}

		recommendations = append(recommendations, Recommendation{
			QuestID:              quest.QuestID,
			Title:                quest.Title,
			Description:          quest.Description,
			Difficulty:           quest.Difficulty,
			EstimatedTime:        quest.EstimatedTime,
			Location:             quest.Location,
			QuestType:            quest.QuestType,
			RecommendationReason: reason,
			ConfidenceScore:      math.Min(score, 1.0),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].ConfidenceScore > recommendations[j].ConfidenceScore
	})
	return recommendations
}

// GenerateContent produces one piece of dynamic content and appends it
// to the generated-content log.
func (s *Service) GenerateContent(contentType, location string) (*DynamicContent, error) {
	template, ok := contentTemplates[contentType]
	if !ok {
		return nil, ErrInvalidContentType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	content := DynamicContent{
		ContentID:       fmt.Sprintf("%s_%s_%d", contentType, now.Format("20060102_150405"), s.rng.Intn(9000)+1000),
		ContentType:     contentType,
		Title:           template.titles[s.rng.Intn(len(template.titles))],
		Content:         template.contents[s.rng.Intn(len(template.contents))],
		LocationContext: location,
		DifficultyLevel: contentDifficulty[contentType],
		Tags:            []string{contentType, "ai_generated", "personalized"},
		GeneratedAt:     now,
	}
	if location != "" {
		content.Tags = append(content.Tags, "location_specific")
	}

	s.generated = append(s.generated, content)
	return &content, nil
}

// Insights generates progress observations from the user's behavior
// profile, creating a default profile for unknown users.
func (s *Service) Insights(userID string) []Insight {
	s.mu.Lock()
	behavior, ok := s.behaviors[userID]
	if !ok {
		behavior = s.analyzeBehavior(userID, nil)
		s.behaviors[userID] = behavior
	}
	snapshot := copyBehavior(behavior)
	s.mu.Unlock()

	return buildInsights(snapshot)
}

func buildInsights(behavior *BehaviorAnalysis) []Insight {
	var insights []Insight

	if behavior.CompletionRate > 0.8 {
		insights = append(insights, Insight{
			InsightType: "performance",
			Title:       "Excellent Progress!",
			Description: "You're completing quests at an impressive rate. You're clearly engaged and making great progress!",
			ActionableTips: []string{
				"Consider trying more challenging quests to push your limits",
				"Share your achievements on social media to inspire others",
				"Explore different quest types to broaden your experience",
			},
			Confidence: 0.9,
		})
	} else if behavior.CompletionRate < 0.3 {
		insights = append(insights, Insight{
			InsightType: "performance",
			Title:       "Let's Boost Your Adventure!",
			Description: "It looks like you might be facing some challenges. Let's find ways to make your experience more enjoyable!",
			ActionableTips: []string{
				"Try easier quests to build confidence and momentum",
				"Focus on quest types you enjoy most",
				"Consider shorter quests that fit better into your schedule",
			},
			Confidence: 0.8,
		})
	}

	if len(behavior.PreferredQuestTypes) == 1 {
		insights = append(insights, Insight{
			InsightType: "recommendation",
			Title:       "Expand Your Horizons",
			Description: fmt.Sprintf("You seem to really enjoy %s quests. Why not try something new?", behavior.PreferredQuestTypes[0]),
			ActionableTips: []string{
				"Try a different quest type to discover new interests",
				"Mix easy quests from new categories with your favorites",
				"Join group activities to explore with others",
			},
			Confidence: 0.7,
		})
	}

	pointsEstimate := float64(len(behavior.PreferredQuestTypes)) * 100 * behavior.CompletionRate
	if pointsEstimate > 300 {
		insights = append(insights, Insight{
			InsightType: "achievement_prediction",
			Title:       "Achievement Unlock Incoming!",
			Description: "Based on your progress, you're close to unlocking several new achievements!",
			ActionableTips: []string{
				"Complete 2 more quests to unlock the 'Explorer' badge",
				"Try a photography quest to unlock 'Shutterbug' achievement",
				"Visit 3 different locations to earn 'Wanderer' status",
			},
			Confidence: 0.85,
		})
	}

	return insights
}

// UpdateBehavior folds a quest completion into the user's behavior
// profile and returns the updated profile.
func (s *Service) UpdateBehavior(userID, questType string) *BehaviorAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()

	behavior, ok := s.behaviors[userID]
	if !ok {
		behavior = s.analyzeBehavior(userID, nil)
		s.behaviors[userID] = behavior
	}

	if questType != "" && !containsString(behavior.PreferredQuestTypes, questType) {
		behavior.PreferredQuestTypes = append(behavior.PreferredQuestTypes, questType)
	}
	behavior.CompletionRate = math.Min(behavior.CompletionRate+0.1, 1.0)

	return copyBehavior(behavior)
}

// ContentHistory returns the most recently generated content, newest
// first, capped at limit.
func (s *Service) ContentHistory(limit int) []DynamicContent {
	if limit <= 0 {
		limit = 10
	}

	s.mu.Lock()
	history := make([]DynamicContent, len(s.generated))
	copy(history, s.generated)
	s.mu.Unlock()

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].GeneratedAt.After(history[j].GeneratedAt)
	})
	if len(history) > limit {
		history = history[:limit]
	}
	return history
}

// UserPatterns aggregates behavior statistics across all users. The
// second return is false when no behavior data exists yet.
func (s *Service) UserPatterns() (*PatternsReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.behaviors) == 0 {
		return nil, false
	}

	questTypes := map[string]int{}
	difficulties := map[string]int{}
	var rateSum float64
	for _, b := range s.behaviors {
		for _, qt := range b.PreferredQuestTypes {
			questTypes[qt]++
		}
		difficulties[b.DifficultyPreference]++
		rateSum += b.CompletionRate
	}

	avg := rateSum / float64(len(s.behaviors))

	return &PatternsReport{
		TotalUsers:             len(s.behaviors),
		PopularQuestTypes:      questTypes,
		DifficultyDistribution: difficulties,
		AverageCompletionRate:  math.Round(avg*100) / 100,
		ContentGenerated:       len(s.generated),
	}, true
}

func copyBehavior(b *BehaviorAnalysis) *BehaviorAnalysis {
	clone := *b
	clone.PreferredQuestTypes = append([]string{}, b.PreferredQuestTypes...)
	clone.LocationPreferences = append([]string{}, b.LocationPreferences...)
	return &clone
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
