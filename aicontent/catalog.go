// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package aicontent

// Quest is a catalog entry recommendations are drawn from.
type Quest struct {
	QuestID       string   `json:"quest_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Difficulty    string   `json:"difficulty"`
	EstimatedTime string   `json:"estimated_time"`
	Location      string   `json:"location"`
	QuestType     string   `json:"quest_type"`
	Tags          []string `json:"tags"`
}

var questCatalog = []Quest{
	{
		QuestID:       "cultural-heritage-1",
		Title:         "Discover Kadazan-Dusun Culture",
		Description:   "Learn about the indigenous culture of Sabah through interactive experiences",
		Difficulty:    "Easy",
		EstimatedTime: "30 minutes",
		Location:      "Cultural Centre, Kota Kinabalu",
		QuestType:     "cultural",
		Tags:          []string{"culture", "heritage", "indigenous", "interactive"},
	},
	{
		QuestID:       "nature-adventure-1",
		Title:         "Kinabalu Park Biodiversity Hunt",
		Description:   "Explore the rich biodiversity of Mount Kinabalu National Park",
		Difficulty:    "Medium",
		EstimatedTime: "2 hours",
		Location:      "Kinabalu Park",
		QuestType:     "nature",
		Tags:          []string{"nature", "biodiversity", "hiking", "photography"},
	},
	{
		QuestID:       "food-discovery-1",
		Title:         "Traditional Sabahan Cuisine Trail",
		Description:   "Taste and learn about authentic Sabahan dishes and ingredients",
		Difficulty:    "Easy",
		EstimatedTime: "1 hour",
		Location:      "Gaya Street Market",
		QuestType:     "food",
		Tags:          []string{"food", "culture", "market", "local"},
	},
	{
		QuestID:       "adventure-extreme-1",
		Title:         "White Water Rafting Challenge",
		Description:   "Navigate the rapids of Kiulu River in this thrilling adventure",
		Difficulty:    "Hard",
		EstimatedTime: "4 hours",
		Location:      "Kiulu River",
		QuestType:     "adventure",
		Tags:          []string{"adventure", "water", "extreme", "teamwork"},
	},
	{
		QuestID:       "wildlife-photography-1",
		Title:         "Orangutan Conservation Experience",
		Description:   "Learn about orangutan conservation while capturing amazing photos",
		Difficulty:    "Medium",
		EstimatedTime: "3 hours",
		Location:      "Sepilok Orangutan Sanctuary",
		QuestType:     "wildlife",
		Tags:          []string{"wildlife", "photography", "conservation", "education"},
	},
}

// sampleCompletedQuests stands in for per-user quest history until
// completions are persisted with their quest type and difficulty.
var sampleCompletedQuests = []CompletedQuest{
	{QuestType: "cultural", Difficulty: "Easy"},
	{QuestType: "food", Difficulty: "Easy"},
	{QuestType: "cultural", Difficulty: "Medium"},
}

type contentTemplate struct {
	titles   []string
	contents []string
}

var contentDifficulty = map[string]string{
	"tip":       "Easy",
	"fact":      "Easy",
	"story":     "Medium",
	"challenge": "Medium",
}

var contentTemplates = map[string]contentTemplate{
	"tip": {
		titles: []string{
			"Pro Tip for Your Adventure",
			"Local Insider Knowledge",
			"Make the Most of Your Visit",
			"Expert Recommendation",
		},
		contents: []string{
			"Visit early in the morning to avoid crowds and enjoy cooler temperatures.",
			"Bring a reusable water bottle - many locations have refill stations.",
			"Download offline maps before heading to remote areas.",
			"Learn a few basic Malay phrases to connect with locals.",
			"Pack light rain gear - tropical weather can be unpredictable.",
		},
	},
	"fact": {
		titles: []string{
			"Did You Know?",
			"Fascinating Sabah Fact",
			"Amazing Discovery",
			"Local Knowledge",
		},
		contents: []string{
			"Mount Kinabalu grows about 5mm taller each year due to tectonic activity.",
			"Sabah is home to the world's largest flower - the Rafflesia.",
			"The Kinabatangan River is one of the longest rivers in Malaysia.",
			"Sabah has over 200 mammal species, including the endangered Bornean orangutan.",
			"The state name 'Sabah' comes from the Arabic word meaning 'morning'.",
		},
	},
	"story": {
		titles: []string{
			"Local Legend",
			"Historical Tale",
			"Cultural Story",
			"Adventure Chronicle",
		},
		contents: []string{
			"Legend says Mount Kinabalu is the resting place of spirits of the departed.",
			"The Kadazan-Dusun people have lived in harmony with nature for centuries.",
			"Ancient trade routes connected Sabah to China and the Philippines.",
			"The Murut people were the last tribe in Sabah to give up headhunting.",
			"Sandakan was once known as the 'Little Hong Kong' of North Borneo.",
		},
	},
	"challenge": {
		titles: []string{
			"Daily Challenge",
			"Adventure Challenge",
			"Cultural Challenge",
			"Photo Challenge",
		},
		contents: []string{
			"Take a photo with a local and learn one word in their native language.",
			"Find and photograph three different types of tropical flowers.",
			"Try a local dish you've never tasted before.",
			"Visit a location that's not in your original itinerary.",
			"Share your adventure story with someone you meet today.",
		},
	},
}
