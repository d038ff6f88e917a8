package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cultura-atlas/atlas-backend/internal/models"
)

// DefaultDuration is applied when a request omits or mangles the duration.
const DefaultDuration = "1-day"

var validDurations = map[string]bool{
	"1-day": true, "2-day": true, "3-day": true, "4-day": true,
	"5-day": true, "6-day": true, "7-day": true,
}

// NormalizeDuration falls back to the one-day default for anything outside
// the 1-day..7-day enum.
func NormalizeDuration(d string) string {
	if validDurations[d] {
		return d
	}
	return DefaultDuration
}

type Service struct {
	gen    ContentGenerator
	logger *zap.Logger
}

func NewService(gen ContentGenerator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// GenerateItinerary builds the narrative prompt, sends it to the generative
// service, and parses a structured itinerary out of the free-text reply.
// Empty recommendations are the caller's problem; the API boundary rejects
// them before this is reached.
func (s *Service) GenerateItinerary(ctx context.Context, recs []models.Recommendation, prefs []models.Preference, duration, location string, filters *models.FilterOptions, insights []models.CrossDomainInsight) (models.Itinerary, error) {
	duration = NormalizeDuration(duration)
	prompt := buildItineraryPrompt(recs, prefs, duration, location, filters, insights)

	text, err := s.gen.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error("itinerary generation failed", zap.Error(err))
		return models.Itinerary{}, fmt.Errorf("failed to generate itinerary: %w", err)
	}

	return s.parseItinerary(text, prefs, duration, location)
}

// RefineItinerary reruns generation with a prompt built from the current
// itinerary's item summaries and the user's request. The result replaces the
// old itinerary wholesale.
func (s *Service) RefineItinerary(ctx context.Context, current models.Itinerary, userRequest string, newRecs []models.Recommendation) (models.Itinerary, error) {
	prompt := buildRefinementPrompt(current, userRequest, newRecs)

	text, err := s.gen.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error("itinerary refinement failed", zap.Error(err))
		return models.Itinerary{}, fmt.Errorf("failed to refine itinerary: %w", err)
	}

	return s.parseItinerary(text, current.UserPreferences, current.Duration, current.Location)
}

// ChatResponse wraps one generative reply as an assistant message. Errors
// propagate; the API boundary decides whether to convert them into an in-band
// apology.
func (s *Service) ChatResponse(ctx context.Context, message string, current *models.Itinerary, prefs []models.Preference, recs []models.Recommendation, history []models.ChatMessage) (models.ChatMessage, error) {
	prompt := buildChatPrompt(message, current, prefs, recs, history)

	text, err := s.gen.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error("chat generation failed", zap.Error(err))
		return models.ChatMessage{}, fmt.Errorf("failed to generate chat response: %w", err)
	}

	contextFlag := "new_conversation"
	if current != nil {
		contextFlag = "itinerary_exists"
	}

	return models.ChatMessage{
		ID:        fmt.Sprintf("msg-%s", uuid.NewString()),
		Type:      "assistant",
		Content:   text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Metadata: &models.ChatMetadata{
			Action:      detectAction(message),
			Preferences: prefs,
			Context:     contextFlag,
		},
	}, nil
}

// detectAction classifies the user's intent by substring matching. The result
// is downstream metadata only and never alters prompt construction.
func detectAction(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "generate") || strings.Contains(lower, "create") || strings.Contains(lower, "plan"):
		return "generate"
	case strings.Contains(lower, "change") || strings.Contains(lower, "modify") || strings.Contains(lower, "update"):
		return "modify"
	case strings.Contains(lower, "explain") || strings.Contains(lower, "why") || strings.Contains(lower, "tell me more"):
		return "explain"
	default:
		return "refine"
	}
}
