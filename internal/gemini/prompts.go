package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cultura-atlas/atlas-backend/internal/models"
)

const (
	// Recommendations beyond this count are silently dropped from the prompt.
	maxPromptRecommendations = 15
	// At most this many recommendation names are shown to the chat model.
	maxChatRecommendations = 10
	// Only the most recent history turns are replayed into the chat prompt.
	maxHistoryTurns = 3
)

func preferenceList(prefs []models.Preference) string {
	parts := make([]string, 0, len(prefs))
	for _, p := range prefs {
		parts = append(parts, fmt.Sprintf("%s (%s)", p.Name, p.Category))
	}
	return strings.Join(parts, ", ")
}

func buildItineraryPrompt(recs []models.Recommendation, prefs []models.Preference, duration, location string, filters *models.FilterOptions, insights []models.CrossDomainInsight) string {
	var recLines []string
	for i, rec := range recs {
		if i == maxPromptRecommendations {
			break
		}
		desc := rec.Entity.Description
		if desc == "" {
			desc = "No description"
		}
		recLines = append(recLines, fmt.Sprintf("- %s (%s): %s", rec.Entity.Name, rec.Entity.Category, desc))
	}

	locationText := ""
	if location != "" {
		locationText = fmt.Sprintf("Location: %s", location)
	}

	filterText := ""
	if filters != nil {
		if encoded, err := json.Marshal(filters); err == nil {
			filterText = fmt.Sprintf("\nFilters: %s", encoded)
		}
	}

	insightText := ""
	if len(insights) > 0 {
		var lines []string
		for _, insight := range insights {
			lines = append(lines, "- "+insight.Reasoning)
		}
		insightText = fmt.Sprintf("\nCross-domain insights:\n%s", strings.Join(lines, "\n"))
	}

	return fmt.Sprintf(`You are a creative travel concierge and cultural expert. Based on these user preferences: %s
%s%s%s

And these taste-based recommendations from Qloo:
%s

Write a %s travel plan that includes:
- Morning, afternoon, and evening activities (for 1-day) or day-by-day breakdown (for multi-day)
- Smooth transitions between activities
- Cultural context and insights
- Vivid, friendly, and engaging descriptions
- Cross-domain connections that surprise and delight

Format your response as a JSON object with this structure:
{
  "title": "Creative trip title",
  "description": "Brief overview of the trip",
  "theme": "Cultural theme of the trip",
  "items": [
    {
      "id": "unique-id",
      "title": "Activity title",
      "description": "Detailed description with cultural context",
      "time": "Morning/Afternoon/Evening or Day 1 Morning/etc",
      "location": {
        "name": "Place name",
        "address": "Address if available"
      },
      "category": "restaurant/music/activity/etc",
      "reasoning": "Why this was chosen based on user preferences",
      "price_range": "$/$$/$$$",
      "duration": "Estimated time",
      "tags": ["cultural", "local", "unique"]
    }
  ]
}

Be creative, culturally insightful, and make it sound like advice from a knowledgeable local guide. Focus on unexpected connections and hidden gems.`,
		preferenceList(prefs), locationText, filterText, insightText,
		strings.Join(recLines, "\n"), duration)
}

func buildChatPrompt(message string, current *models.Itinerary, prefs []models.Preference, recs []models.Recommendation, history []models.ChatMessage) string {
	itineraryText := ""
	if current != nil {
		itineraryText = fmt.Sprintf("\nCurrent itinerary: %s - %s", current.Title, current.Description)
	}

	historyText := ""
	if len(history) > 0 {
		start := len(history) - maxHistoryTurns
		if start < 0 {
			start = 0
		}
		var lines []string
		for _, msg := range history[start:] {
			lines = append(lines, fmt.Sprintf("%s: %s", msg.Type, msg.Content))
		}
		historyText = fmt.Sprintf("\nRecent conversation:\n%s", strings.Join(lines, "\n"))
	}

	var recLines []string
	for i, rec := range recs {
		if i == maxChatRecommendations {
			break
		}
		recLines = append(recLines, fmt.Sprintf("- %s (%s)", rec.Entity.Name, rec.Entity.Category))
	}

	return fmt.Sprintf(`You are a friendly cultural concierge assistant for Cultura Atlas.

User preferences: %s%s%s

Available recommendations:
%s

User message: "%s"

Respond naturally and helpfully. You can:
- Explain why certain recommendations match their tastes
- Suggest modifications to their itinerary
- Answer questions about cultural connections
- Provide additional context about recommendations
- Help refine their preferences

Keep responses conversational, culturally insightful, and focused on their specific tastes.`,
		preferenceList(prefs), itineraryText, historyText,
		strings.Join(recLines, "\n"), message)
}

func buildRefinementPrompt(current models.Itinerary, userRequest string, newRecs []models.Recommendation) string {
	var itemLines []string
	for _, item := range current.Items {
		itemLines = append(itemLines, fmt.Sprintf("- %s (%s): %s", item.Title, item.Time, item.Description))
	}

	newRecsText := ""
	if len(newRecs) > 0 {
		var lines []string
		for _, rec := range newRecs {
			lines = append(lines, fmt.Sprintf("- %s (%s)", rec.Entity.Name, rec.Entity.Category))
		}
		newRecsText = fmt.Sprintf("\nNew recommendations to consider:\n%s", strings.Join(lines, "\n"))
	}

	return fmt.Sprintf(`Refine this itinerary based on the user's request: "%s"

Current itinerary:
%s%s

Modify the itinerary to address the user's request while maintaining the cultural connections and flow. Return the complete updated itinerary in the same JSON format as before.`,
		userRequest, strings.Join(itemLines, "\n"), newRecsText)
}
