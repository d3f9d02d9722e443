// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package planner

import (
	"strings"
	"testing"
)

const rawItinerary = `
Day 1: Arrival and City Tour
Morning: Check into hotel, visit Sabah Museum
Afternoon: Explore Gaya Street, try local food
Evening: Sunset at Signal Hill

Day 2: Nature Adventure
Morning: Early start to Kinabalu Park
Afternoon: Hiking and nature walk
Evening: Return to hotel, dinner at local restaurant

Budget: RM5000 for 3 days
`

func TestFormatItinerary(t *testing.T) {
	got := FormatResponse(rawItinerary, "itinerary")

	wantFragments := []string{
		"## 🗺️ **Your Sabah Adventure Itinerary**",
		"### 💰 **Budget: RM5000**",
		"### 📅 **Day 1**",
		"### 📅 **Day 2**",
		"**Morning**",
		"• Check into hotel, visit Sabah Museum",
		"• Early start to Kinabalu Park",
		"### 💡 **Pro Tips**",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(got, frag) {
			t.Errorf("formatted itinerary missing %q\ngot:\n%s", frag, got)
		}
	}
}

func TestFormatItineraryShortInputFallsBackToSample(t *testing.T) {
	for _, raw := range []string{"", "too short", "Day 1: hi"} {
		got := FormatResponse(raw, "itinerary")
		if !strings.Contains(got, "### 📅 **Day 1: Arrival & City Exploration**") {
			t.Errorf("FormatResponse(%q) did not fall back to sample itinerary", raw)
		}
		if !strings.Contains(got, "Learn basic Malay phrases") {
			t.Errorf("sample itinerary tips truncated for input %q", raw)
		}
	}
}

func TestFormatItineraryNoDayMarkersFallsBackToSample(t *testing.T) {
	raw := strings.Repeat("A lovely holiday awaits you someday in Sabah. ", 5)
	got := FormatResponse(raw, "itinerary")
	if !strings.Contains(got, "### 💰 **Budget: RM5000**") {
		t.Errorf("expected sample itinerary, got:\n%s", got)
	}
}

func TestFormatItineraryDefaultActivities(t *testing.T) {
	// Long enough, has day markers, but no recognizable time labels.
	raw := "Day 1 will be great with lots of sightseeing around the city waterfront area. " +
		"Day 2 brings island hopping and plenty of relaxation on white sand beaches."
	got := FormatResponse(raw, "itinerary")

	if !strings.Contains(got, "**Morning (9:00 AM - 12:00 PM)**") {
		t.Errorf("missing default morning block:\n%s", got)
	}
	if !strings.Contains(got, "• Sunset viewing and dinner") {
		t.Errorf("missing default evening activity:\n%s", got)
	}
}

func TestFormatItineraryFirstTimePatternWins(t *testing.T) {
	// Named labels and clock times both present; named labels win and
	// clock-time extraction is not merged in.
	raw := rawItinerary + "\nDay 3: Departure\n10:00 AM: Pack and check out\n"
	got := FormatResponse(raw, "itinerary")
	if !strings.Contains(got, "**Morning**") {
		t.Errorf("named time labels not extracted:\n%s", got)
	}
}

func TestExtractTips(t *testing.T) {
	text := "Tip 1: Book your climb permits early in the season\nNote: ok\nRemember: carry small change for markets"
	tips := extractTips(text)

	if len(tips) != 2 {
		t.Fatalf("extractTips returned %d tips, want 2: %v", len(tips), tips)
	}
	if tips[0] != "Book your climb permits early in the season" {
		t.Errorf("unexpected first tip: %q", tips[0])
	}
	// "ok" is under the 10-char threshold and must be dropped.
	for _, tip := range tips {
		if tip == "ok" {
			t.Error("short tip was not filtered out")
		}
	}
}

func TestFormatFood(t *testing.T) {
	raw := `Here are my top picks for you, gerenti sedap!

1. Kedai Kopi Melanian
Location: Jalan Pantai, Kota Kinabalu
Must try: Sang Nyuk Mee
Price: RM10 per bowl
Rating: 4.4 stars
Hours: 7am to 2pm

2. Suang Tain Seafood
Location: Sadong Jaya
Specialty: butter prawns
Price: RM60 per person
Rating: 4.5 stars`

	got := FormatResponse(raw, "food")

	wantFragments := []string{
		"## 🍽️ **Food Recommendations**",
		"### 🏆 **1. Kedai Kopi Melanian**",
		"### 🏆 **2. Suang Tain Seafood**",
		"📍 **Location:** Location: Jalan Pantai, Kota Kinabalu",
		"🍽️ **Must Try:** Must try: Sang Nyuk Mee",
		"🕒 **Hours:** Hours: 7am to 2pm",
		"---",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(got, frag) {
			t.Errorf("formatted food missing %q\ngot:\n%s", frag, got)
		}
	}
}

func TestFormatFoodShortInputFallsBackToSample(t *testing.T) {
	got := FormatResponse("try yee fung", "food")
	if !strings.Contains(got, "Kedai Kopi Yee Fung") {
		t.Errorf("expected sample food recommendations, got:\n%s", got)
	}
}

func TestFormatFoodNoRecordsFallsBackToSample(t *testing.T) {
	raw := strings.Repeat("so many tasty choices around the waterfront today ", 3)
	got := FormatResponse(raw, "food")
	if !strings.Contains(got, "Welcome Seafood Restaurant") {
		t.Errorf("expected sample food recommendations, got:\n%s", got)
	}
}

func TestExtractRestaurantsFieldAssignment(t *testing.T) {
	// A line mentioning two field keywords populates only the first
	// matching field.
	text := "1. Warung Sally\nLocation and price info: Tanjung Aru\n\n"
	rs := extractRestaurants(text)
	if len(rs) != 1 {
		t.Fatalf("got %d restaurants, want 1", len(rs))
	}
	if rs[0].location == "" {
		t.Error("location field not populated")
	}
	if rs[0].price != "" {
		t.Errorf("price field should be empty, got %q", rs[0].price)
	}
}

func TestFormatDirections(t *testing.T) {
	raw := `1. Head north on Jalan Gaya
2. Turn right at the clocktower
3. Open google maps if lost`

	got := FormatResponse(raw, "directions")

	if !strings.Contains(got, "**Step 1:** Head north on Jalan Gaya") {
		t.Errorf("missing step 1:\n%s", got)
	}
	if !strings.Contains(got, "**Step 3:**") {
		t.Errorf("missing step 3:\n%s", got)
	}
	if !strings.Contains(got, "[Open in Google Maps](https://maps.google.com)") {
		t.Errorf("missing navigation links:\n%s", got)
	}
}

func TestFormatDirectionsNoMapMention(t *testing.T) {
	got := FormatResponse("1. Walk straight\n2. You have arrived", "directions")
	if strings.Contains(got, "Quick Navigation") {
		t.Errorf("navigation links added without map mention:\n%s", got)
	}
}

func TestFormatAttractions(t *testing.T) {
	raw := `1. Mari-Mari Cultural Village
Location: Kionsom, Inanam
Description: traditional houses of five ethnic groups
Best time: morning sessions
Price: RM100 entry

2. Tunku Abdul Rahman Park
Location: offshore from KK
Description: five island marine park`

	got := FormatResponse(raw, "attractions")

	wantFragments := []string{
		"## 🏛️ **Attractions & Activities**",
		"### 🎯 **Mari-Mari Cultural Village**",
		"### 🎯 **Tunku Abdul Rahman Park**",
		"⏰ **Best Time:** Best time: morning sessions",
		"💰 **Entry Fee:** Price: RM100 entry",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(got, frag) {
			t.Errorf("formatted attractions missing %q\ngot:\n%s", frag, got)
		}
	}
}

func TestFormatGeneral(t *testing.T) {
	raw := "Boleh bah, welcome to Sabah!\n• bring sunscreen\n- stay hydrated\n1. enjoy yourself"
	got := FormatResponse(raw, "casual")

	if !strings.Contains(got, "## 💬 **MaduAI Response**") {
		t.Errorf("missing general header:\n%s", got)
	}
	if !strings.Contains(got, "Boleh bah, welcome to Sabah!\n\n") {
		t.Errorf("paragraph not preserved:\n%s", got)
	}
	for _, bullet := range []string{"• bring sunscreen", "• stay hydrated", "• enjoy yourself"} {
		if !strings.Contains(got, bullet) {
			t.Errorf("missing normalized bullet %q:\n%s", bullet, got)
		}
	}
}

func TestFormatGeneralEmptyInput(t *testing.T) {
	got := FormatResponse("", "casual")
	if got != "## 💬 **MaduAI Response**\n\n" {
		t.Errorf("unexpected output for empty input: %q", got)
	}
}
