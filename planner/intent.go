// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package planner

import "strings"

// Intent is the inferred category of a user's chat message.
type Intent string

const (
	IntentItinerary Intent = "itinerary"
	IntentWeather   Intent = "weather"
	IntentFood      Intent = "food"
	IntentCasual    Intent = "casual"
)

// Keyword lists for intent detection. Matching is case-insensitive
// substring containment, not word-boundary matching: "days" inside an
// unrelated word still counts as a duration mention. That imprecision
// is part of the classifier's contract and is covered by tests.
var (
	itineraryWords = []string{
		"itinerary", "plan", "trip", "travel plan", "schedule", "agenda",
		"day plan", "days", "visit", "tour", "vacation", "holiday",
		"things to do", "activities", "places to visit", "attractions",
		"recommend", "suggestion", "guide", "route", "journey",
	}

	durationWords = []string{
		"1 day", "2 day", "3 day", "4 day", "5 day", "6 day", "7 day",
		"one day", "two day", "three day", "four day", "five day",
		"week", "weekend", "month", "days",
	}

	// Fixed gazetteer of recognized Sabah place names.
	sabahPlaces = []string{
		"kota kinabalu", "sandakan", "tawau", "lahad datu", "semporna",
		"mount kinabalu", "kinabalu park", "sepilok", "danum valley",
		"maliau basin", "sipadan", "mabul", "kapalai", "mantanani",
	}

	planningQuestions = []string{"what", "where", "how", "which", "when"}

	weatherWords = []string{
		"weather", "forecast", "temperature", "rain", "sunny", "cloudy",
		"hot", "cold", "humid", "climate", "precipitation", "storm",
		"wind", "humidity", "degrees", "celsius", "fahrenheit",
		"today weather", "tomorrow weather", "weather like",
		"weather forecast", "weather condition", "weather update",
	}

	timeWords = []string{
		"today", "tomorrow", "tonight", "this week", "next week",
		"weekend", "monday", "tuesday", "wednesday", "thursday",
		"friday", "saturday", "sunday",
	}

	weatherPatterns = []string{
		"what's the weather", "how's the weather", "weather like",
		"is it raining", "will it rain", "temperature", "hot today",
		"cold today", "sunny today", "cloudy today",
	}

	weatherContext = []string{"outside", "bring umbrella", "wear", "dress"}

	foodWords = []string{
		"food", "restaurant", "eat", "dining", "meal", "breakfast", "lunch", "dinner",
		"cuisine", "dish", "menu", "cafe", "coffee", "drink", "hungry", "delicious",
		"tasty", "local food", "street food", "seafood", "halal", "vegetarian",
		"noodles", "rice", "chicken", "beef", "pork", "fish", "dessert", "snack",
		"bakery", "market", "food court", "hawker", "kopitiam", "mamak", "makan",
		"sedap", "nyuk", "mee", "mi", "kuih", "roti", "teh", "kopi", "sup", "curry",
	}

	restaurantPhrases = []string{
		"where to eat", "best restaurant", "good food", "recommend restaurant",
		"food recommendation", "place to eat", "dining place", "eatery",
		"food place", "restaurant near", "famous food", "must try food",
		"local cuisine", "traditional food", "specialty food", "where can i find",
		"looking for food", "want to try", "craving for", "best place for",
		"good place to eat", "food spots", "dining spots", "makan place",
	}

	// Named local dishes and food landmarks.
	sabahFoodWords = []string{
		"hinava", "ambuyat", "tuaran mee", "ngiu chap", "sang nyuk mien",
		"beaufort mee", "sabah tea", "tenom coffee", "sinalau bakas",
		"pinasakan", "bosou", "bambangan", "sayur manis", "pansuh",
		"tuhau", "lihing", "tapai", "amplang", "keropok lekor", "san nyuk mee",
		"kota kinabalu food", "sabah food", "sabahan cuisine", "local sabah",
		"kedai kopi", "lintas", "gaya street", "filipino market", "sunday market",
	}

	foodPhrases = []string{
		"what to eat", "where to eat", "food recommendation", "best food",
		"hungry", "looking for food", "craving", "want to eat", "good restaurant",
		"famous restaurant", "local food", "must try", "delicious", "tasty",
		"food in", "eat in", "dine in", "breakfast at", "lunch at", "dinner at",
		"food near", "restaurant in", "cafe in", "makan at", "sedap food",
		"nyuk mee", "san nyuk", "find food", "food hunting", "foodie",
		"culinary", "gastronomy", "specialty dish", "signature dish",
	}

	genericQuestionPatterns = []string{
		"where can i", "where should i", "what should i", "can you recommend",
		"do you know", "any good", "any recommendations", "suggestions for",
		"looking for", "searching for", "trying to find", "want to find",
	}

	locationFoodContext = []string{
		"in kota kinabalu", "in kk", "in sabah", "near me", "around here",
		"in lintas", "at gaya street",
	}

	positiveAdjectives = []string{"good", "best", "nice", "famous", "popular", "recommended"}
)

// intentRule is one predicate in the ordered rule list. The first rule
// whose predicate matches decides the intent.
type intentRule struct {
	intent  Intent
	matches func(message string) bool
}

// Rule order encodes precedence: itinerary > weather > food > casual.
var intentRules = []intentRule{
	{IntentItinerary, isItineraryRequest},
	{IntentWeather, isWeatherRequest},
	{IntentFood, isFoodRequest},
}

// Classify inspects a raw message and decides which intent it
// represents. Pure and deterministic; an empty message is casual.
func Classify(message string) Intent {
	for _, rule := range intentRules {
		if rule.matches(message) {
			return rule.intent
		}
	}
	return IntentCasual
}

// containsAny reports whether any of the keywords appears as a
// substring of the lowercased message.
func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isItineraryRequest detects itinerary and detailed travel plan requests.
func isItineraryRequest(message string) bool {
	lower := strings.ToLower(message)

	hasItineraryKeyword := containsAny(lower, itineraryWords)
	hasDuration := containsAny(lower, durationWords)
	hasPlanningQuestion := containsAny(lower, planningQuestions)

	// Very short messages ("hello", "hi", "thanks") are casual unless
	// they carry an itinerary keyword.
	if len(strings.Fields(message)) <= 2 && !hasItineraryKeyword {
		return false
	}

	if hasDuration && hasItineraryKeyword {
		return true
	}

	if hasItineraryKeyword && hasPlanningQuestion {
		return true
	}

	if containsAny(lower, sabahPlaces) && (hasPlanningQuestion || hasItineraryKeyword) {
		return true
	}

	return false
}

// isWeatherRequest detects weather information requests.
func isWeatherRequest(message string) bool {
	lower := strings.ToLower(message)

	if containsAny(lower, weatherWords) || containsAny(lower, weatherPatterns) {
		return true
	}

	// Time words alone are ambiguous; require a question or "like" plus
	// an explicit weather context phrase.
	if containsAny(lower, timeWords) && (strings.Contains(lower, "like") || strings.Contains(message, "?")) {
		if containsAny(lower, weatherContext) {
			return true
		}
	}

	return false
}

// isFoodRequest detects food, restaurant, and dining recommendation
// requests.
func isFoodRequest(message string) bool {
	lower := strings.ToLower(message)

	if containsAny(lower, foodWords) ||
		containsAny(lower, restaurantPhrases) ||
		containsAny(lower, sabahFoodWords) ||
		containsAny(lower, foodPhrases) {
		return true
	}

	// Generic "looking for X" questions with a location phrase and a
	// positive adjective are treated as implicit food searches.
	if containsAny(lower, genericQuestionPatterns) &&
		containsAny(lower, locationFoodContext) &&
		containsAny(lower, positiveAdjectives) {
		return true
	}

	return false
}
