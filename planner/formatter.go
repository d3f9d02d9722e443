// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package planner

import (
	"fmt"
	"regexp"
	"strings"
)

// FormatResponse reshapes raw model text into a canonical markdown
// document for the given response type ("itinerary", "food",
// "directions", "attractions", anything else is general). It never
// fails on malformed input; when extraction yields too little
// structure it degrades to a canned template instead.
func FormatResponse(response, responseType string) string {
	switch responseType {
	case "itinerary":
		return formatItinerary(response)
	case "food":
		return formatFood(response)
	case "directions":
		return formatDirections(response)
	case "attractions":
		return formatAttractions(response)
	default:
		return formatGeneral(response)
	}
}

var (
	budgetRe    = regexp.MustCompile(`RM\s*[\d,]+`)
	dayMarkerRe = regexp.MustCompile(`(?i)Day\s+\d+[:\-]?`)

	namedTimeRe = regexp.MustCompile(`(?i)(Morning|Afternoon|Evening|Night)\s*[:\-]?`)
	clockTimeRe = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:AM|PM))\s*[:\-]?`)
	hourTimeRe  = regexp.MustCompile(`(?i)(\d{1,2}\s*(?:AM|PM))\s*[:\-]?`)

	tipRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Tip\s*\d*[:\-]?\s*(.+)`),
		regexp.MustCompile(`(?i)Pro\s+tip[:\-]?\s*(.+)`),
		regexp.MustCompile(`(?i)Note[:\-]?\s*(.+)`),
		regexp.MustCompile(`(?i)Remember[:\-]?\s*(.+)`),
	}

	numberedNameRe = regexp.MustCompile(`^\d+\.\s*["']?(.+?)["']?\s*$`)
	stepLineRe     = regexp.MustCompile(`\d+\.?\s*(.+)`)
)

func formatItinerary(response string) string {
	if len(strings.TrimSpace(response)) < 100 || !strings.Contains(strings.ToLower(response), "day") {
		return sampleItinerary
	}

	var b strings.Builder
	b.WriteString("## 🗺️ **Your Sabah Adventure Itinerary**\n\n")

	if budget := budgetRe.FindString(response); budget != "" {
		fmt.Fprintf(&b, "### 💰 **Budget: %s**\n\n", budget)
	}

	days := extractDays(response)
	if len(days) == 0 {
		return sampleItinerary
	}

	for i, dayContent := range days {
		fmt.Fprintf(&b, "### 📅 **Day %d**\n\n", i+1)

		activities := extractDayActivities(dayContent)
		if len(activities) > 0 {
			for _, a := range activities {
				fmt.Fprintf(&b, "**%s**\n", a.time)
				fmt.Fprintf(&b, "• %s\n\n", a.description)
			}
		} else {
			b.WriteString("**Morning (9:00 AM - 12:00 PM)**\n")
			b.WriteString("• Explore local attractions and cultural sites\n\n")
			b.WriteString("**Afternoon (1:00 PM - 5:00 PM)**\n")
			b.WriteString("• Enjoy local cuisine and shopping\n\n")
			b.WriteString("**Evening (6:00 PM - 9:00 PM)**\n")
			b.WriteString("• Sunset viewing and dinner\n\n")
		}
	}

	b.WriteString("### 💡 **Pro Tips**\n\n")
	tips := extractTips(response)
	if len(tips) > 0 {
		for _, tip := range tips {
			fmt.Fprintf(&b, "• %s\n", tip)
		}
	} else {
		b.WriteString("• Book accommodations in advance\n")
		b.WriteString("• Bring comfortable walking shoes\n")
		b.WriteString("• Try local Sabahan cuisine\n")
		b.WriteString("• Check weather forecast before outdoor activities\n")
	}

	return b.String()
}

// extractDays splits the response into per-day content segments using
// "Day N" markers as boundaries.
func extractDays(response string) []string {
	marks := dayMarkerRe.FindAllStringIndex(response, -1)
	if len(marks) == 0 {
		return nil
	}

	var days []string
	for i, m := range marks {
		end := len(response)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		content := strings.TrimSpace(response[m[1]:end])
		if content != "" {
			days = append(days, content)
		}
	}
	return days
}

type activity struct {
	time        string
	description string
}

// extractDayActivities pulls time-labelled activity blocks out of one
// day's content. Patterns are tried in order and the first one that
// yields any match wins; later patterns are not merged in.
func extractDayActivities(dayContent string) []activity {
	for _, re := range []*regexp.Regexp{namedTimeRe, clockTimeRe, hourTimeRe} {
		marks := re.FindAllStringSubmatchIndex(dayContent, -1)
		if len(marks) == 0 {
			continue
		}

		var activities []activity
		for i, m := range marks {
			end := len(dayContent)
			if i+1 < len(marks) {
				end = marks[i+1][0]
			}
			label := strings.TrimSpace(dayContent[m[2]:m[3]])
			desc := strings.TrimSpace(dayContent[m[1]:end])
			activities = append(activities, activity{time: label, description: desc})
		}
		return activities
	}
	return nil
}

// extractTips collects tip lines from all tip patterns, keeping only
// those longer than 10 characters.
func extractTips(response string) []string {
	var tips []string
	for _, re := range tipRes {
		for _, m := range re.FindAllStringSubmatch(response, -1) {
			tip := strings.TrimSpace(m[1])
			if len(tip) > 10 {
				tips = append(tips, tip)
			}
		}
	}
	return tips
}

type restaurant struct {
	name      string
	location  string
	specialty string
	price     string
	rating    string
	hours     string
}

func formatFood(response string) string {
	if len(strings.TrimSpace(response)) < 50 {
		return sampleFoodRecommendations
	}

	restaurants := extractRestaurants(response)
	if len(restaurants) == 0 {
		return sampleFoodRecommendations
	}

	var b strings.Builder
	b.WriteString("## 🍽️ **Food Recommendations**\n\n")

	for i, r := range restaurants {
		fmt.Fprintf(&b, "### 🏆 **%d. %s**\n\n", i+1, r.name)
		fmt.Fprintf(&b, "📍 **Location:** %s\n\n", r.location)
		fmt.Fprintf(&b, "🍽️ **Must Try:** %s\n\n", r.specialty)
		fmt.Fprintf(&b, "💰 **Price Range:** %s\n\n", r.price)
		fmt.Fprintf(&b, "⭐ **Rating:** %s\n\n", r.rating)
		if r.hours != "" {
			fmt.Fprintf(&b, "🕒 **Hours:** %s\n\n", r.hours)
		}
		b.WriteString("---\n\n")
	}

	return b.String()
}

// extractRestaurants groups lines into restaurant records. A blank line
// flushes the current record; a numbered line starts a new one. Each
// remaining line populates at most one field, first keyword match wins.
func extractRestaurants(text string) []restaurant {
	var restaurants []restaurant
	var current *restaurant

	flush := func() {
		if current != nil {
			restaurants = append(restaurants, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		if m := numberedNameRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &restaurant{name: m[1]}
			continue
		}
		if current == nil {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "location"):
			current.location = line
		case strings.Contains(lower, "specialty"), strings.Contains(lower, "must try"):
			current.specialty = line
		case strings.Contains(lower, "price"):
			current.price = line
		case strings.Contains(lower, "rating"):
			current.rating = line
		case strings.Contains(lower, "hours"):
			current.hours = line
		}
	}
	flush()

	return restaurants
}

func formatDirections(response string) string {
	var b strings.Builder
	b.WriteString("## 🗺️ **Directions**\n\n")

	step := 0
	for _, line := range strings.Split(response, "\n") {
		m := stepLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[1])
		if text == "" {
			continue
		}
		step++
		fmt.Fprintf(&b, "**Step %d:** %s\n\n", step, text)
	}

	lower := strings.ToLower(response)
	if strings.Contains(lower, "google") || strings.Contains(lower, "maps") {
		b.WriteString("### 📱 **Quick Navigation**\n\n")
		b.WriteString("• [Open in Google Maps](https://maps.google.com)\n")
		b.WriteString("• [Get Waze Directions](https://waze.com)\n\n")
	}

	return b.String()
}

type attraction struct {
	name        string
	location    string
	description string
	bestTime    string
	price       string
}

func formatAttractions(response string) string {
	var b strings.Builder
	b.WriteString("## 🏛️ **Attractions & Activities**\n\n")

	for _, a := range extractAttractions(response) {
		fmt.Fprintf(&b, "### 🎯 **%s**\n\n", a.name)
		fmt.Fprintf(&b, "📍 **Location:** %s\n\n", a.location)
		fmt.Fprintf(&b, "📝 **Description:** %s\n\n", a.description)
		if a.bestTime != "" {
			fmt.Fprintf(&b, "⏰ **Best Time:** %s\n\n", a.bestTime)
		}
		if a.price != "" {
			fmt.Fprintf(&b, "💰 **Entry Fee:** %s\n\n", a.price)
		}
		b.WriteString("---\n\n")
	}

	return b.String()
}

func extractAttractions(text string) []attraction {
	var attractions []attraction
	var current *attraction

	flush := func() {
		if current != nil {
			attractions = append(attractions, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		if m := numberedNameRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &attraction{name: m[1]}
			continue
		}
		if current == nil {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "location"):
			current.location = line
		case strings.Contains(lower, "description"):
			current.description = line
		case strings.Contains(lower, "time"):
			current.bestTime = line
		case strings.Contains(lower, "price"):
			current.price = line
		}
	}
	flush()

	return attractions
}

func formatGeneral(response string) string {
	var b strings.Builder
	b.WriteString("## 💬 **MaduAI Response**\n\n")

	for _, line := range strings.Split(response, "\n") {
		paragraph := strings.TrimSpace(line)
		if paragraph == "" {
			continue
		}
		if isBulletLine(paragraph) {
			fmt.Fprintf(&b, "• %s\n", strings.TrimLeft(paragraph, "•-*0123456789. "))
		} else {
			fmt.Fprintf(&b, "%s\n\n", paragraph)
		}
	}

	return b.String()
}

var bulletStartRe = regexp.MustCompile(`^(?:[•\-*]|\d+\.)`)

func isBulletLine(line string) bool {
	return bulletStartRe.MatchString(line)
}

const sampleItinerary = `## 🗺️ **Your Sabah Adventure Itinerary**

### 💰 **Budget: RM5000**

### 📅 **Day 1: Arrival & City Exploration**
**Morning (9:00 AM - 12:00 PM)**
• Arrive at Kota Kinabalu International Airport
• Check into hotel in city center
• Visit Sabah State Museum

**Afternoon (1:00 PM - 5:00 PM)**
• Explore Gaya Street Sunday Market
• Visit Atkinson Clock Tower
• Lunch at local restaurant

**Evening (6:00 PM - 9:00 PM)**
• Sunset at Tanjung Aru Beach
• Dinner at KK Waterfront
• Night market shopping

### 📅 **Day 2: Nature & Adventure**
**Morning (6:00 AM - 12:00 PM)**
• Early start to Kinabalu Park
• Nature walk and bird watching
• Visit Poring Hot Springs

**Afternoon (1:00 PM - 5:00 PM)**
• Canopy walk at Poring
• Visit Kundasang War Memorial
• Local lunch in Kundasang

**Evening (6:00 PM - 9:00 PM)**
• Return to Kota Kinabalu
• Dinner at seafood restaurant
• Relax at hotel

### 📅 **Day 3: Island & Culture**
**Morning (8:00 AM - 12:00 PM)**
• Boat trip to Manukan Island
• Snorkeling and beach activities
• Island lunch

**Afternoon (1:00 PM - 5:00 PM)**
• Return to mainland
• Visit Mari-Mari Cultural Village
• Traditional cultural experience

**Evening (6:00 PM - 9:00 PM)**
• Final dinner in city
• Shopping for souvenirs
• Departure preparation

### 💡 **Pro Tips**
• Book accommodations in advance
• Bring comfortable walking shoes
• Try local Sabahan cuisine
• Check weather forecast before outdoor activities
• Bring sunscreen and insect repellent
• Learn basic Malay phrases`

const sampleFoodRecommendations = `## 🍽️ **Food Recommendations in Kota Kinabalu**

### 🏆 **Top Local Eateries**

#### 1. **Kedai Kopi Yee Fung** ⭐ 4.5/5
📍 **Location:** 127, Jalan Gaya, 88000 Kota Kinabalu
🍽️ **Must Try:** Mee Sup Daging, Mee Sup Ayam
💰 **Price Range:** RM8-12
🕒 **Hours:** 6:00 AM - 2:00 PM (Daily)
✅ **Halal:** Yes (JAKIM Certified)

#### 2. **Restoran Nasi Kandar Pelita** ⭐ 4.3/5
📍 **Location:** Jalan Lintas, 88300 Kota Kinabalu
🍽️ **Must Try:** Nasi Kandar, Mee Sup Kambing, Roti Canai
💰 **Price Range:** RM6-10
🕒 **Hours:** 24 Hours (Daily)
✅ **Halal:** Yes (JAKIM Certified)

#### 3. **Welcome Seafood Restaurant** ⭐ 4.6/5
📍 **Location:** Jalan Lintas, 88300 Kota Kinabalu
🍽️ **Must Try:** Butter Prawns, Chili Crab, Steamed Fish
💰 **Price Range:** RM50-80 per person
🕒 **Hours:** 11:00 AM - 10:00 PM (Daily)
✅ **Halal:** Yes (JAKIM Certified)

### 💡 **Pro Tips**
• **Check halal status** if important to you
• **Ask about ingredients** if you have allergies
• **Bring cash** - many places don't accept cards
• **Try local specialties** for authentic experience
• **Visit during off-peak hours** to avoid crowds`
