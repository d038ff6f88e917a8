package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cultura-atlas/atlas-backend/internal/models"
)

const (
	defaultTitle       = "Your Personalized Trip"
	defaultDescription = "A curated experience based on your tastes"
	defaultTheme       = "Cultural Discovery"

	shareURLBase = "https://culturaatlas.app/share/"
)

// extractJSON pulls the first balanced {...} object out of free-form model
// output, tolerating markdown code fences around it. Returns the input
// unchanged when no opening brace exists; the subsequent unmarshal surfaces
// the failure.
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	first := strings.Index(response, "{")
	if first == -1 {
		return response
	}

	depth := 0
	for i := first; i < len(response); i++ {
		switch response[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[first : i+1]
			}
		}
	}

	// Unbalanced output; take everything through the last closing brace.
	last := strings.LastIndex(response, "}")
	if last <= first {
		return response
	}
	return response[first : last+1]
}

// generatedItinerary is the wire shape the model is instructed to produce.
type generatedItinerary struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Theme       string                 `json:"theme"`
	Items       []models.ItineraryItem `json:"items"`
}

// parseItinerary extracts and decodes the model's JSON payload, filling fixed
// defaults for missing fields. The id, creation timestamp, and share URL are
// always generated locally, overriding anything the model proposes.
func (s *Service) parseItinerary(response string, prefs []models.Preference, duration, location string) (models.Itinerary, error) {
	var parsed generatedItinerary
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		s.logger.Error("failed to parse generated itinerary", zap.Error(err))
		return models.Itinerary{}, fmt.Errorf("failed to parse generated itinerary: %w", err)
	}

	if parsed.Title == "" {
		parsed.Title = defaultTitle
	}
	if parsed.Description == "" {
		parsed.Description = defaultDescription
	}
	if parsed.Theme == "" {
		parsed.Theme = defaultTheme
	}
	if parsed.Items == nil {
		parsed.Items = []models.ItineraryItem{}
	}

	now := time.Now().UTC()
	return models.Itinerary{
		ID:              fmt.Sprintf("itinerary-%s", uuid.NewString()),
		Title:           parsed.Title,
		Description:     parsed.Description,
		Theme:           parsed.Theme,
		Duration:        duration,
		Items:           parsed.Items,
		CreatedAt:       now.Format(time.RFC3339),
		UserPreferences: prefs,
		Location:        location,
		ShareURL:        fmt.Sprintf("%s%d", shareURLBase, now.UnixMilli()),
	}, nil
}
