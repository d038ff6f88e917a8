package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/cultura-atlas/atlas-backend/internal/models"
	"github.com/cultura-atlas/atlas-backend/internal/preferences"
	"github.com/cultura-atlas/atlas-backend/internal/qloo"
)

var (
	chatTargetCategories      = []string{"restaurant", "music", "movie", "travel", "activity", "art"}
	itineraryTargetCategories = []string{"restaurant", "music", "movie", "travel", "activity"}
)

// RecommendationGateway is the slice of the Qloo client the handlers consume.
type RecommendationGateway interface {
	CrossDomainRecommendations(ctx context.Context, preferenceTexts []string, targetCategories []string) (qloo.RecsResponse, error)
	GroupRecommendations(ctx context.Context, groupPrefs []models.Preference, targetCategories []string, strategy preferences.MergeStrategy) (qloo.RecsResponse, []models.Preference, error)
	AnalyzeTasteProfile(ctx context.Context, prefs []models.Preference) (qloo.TasteProfile, error)
}

// NarrativeGenerator is the slice of the Gemini service the handlers consume.
type NarrativeGenerator interface {
	GenerateItinerary(ctx context.Context, recs []models.Recommendation, prefs []models.Preference, duration, location string, filters *models.FilterOptions, insights []models.CrossDomainInsight) (models.Itinerary, error)
	ChatResponse(ctx context.Context, message string, current *models.Itinerary, prefs []models.Preference, recs []models.Recommendation, history []models.ChatMessage) (models.ChatMessage, error)
}

type APIHandler struct {
	gateway   RecommendationGateway
	generator NarrativeGenerator
	logger    *zap.Logger
}

func NewAPIHandler(gateway RecommendationGateway, generator NarrativeGenerator, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		gateway:   gateway,
		generator: generator,
		logger:    logger,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError returns the generic client-facing message only; upstream
// detail stays in the logs.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func preferenceTexts(prefs []models.Preference) []string {
	texts := make([]string, 0, len(prefs))
	for _, p := range prefs {
		texts = append(texts, p.Name)
	}
	return texts
}

type analyzeTasteRequest struct {
	Preferences []models.Preference `json:"preferences"`
}

type analyzeTasteSummary struct {
	TotalPreferences       int      `json:"totalPreferences"`
	Categories             []string `json:"categories"`
	CrossDomainConnections int      `json:"crossDomainConnections"`
}

type analyzeTasteResponse struct {
	Profile         string                      `json:"profile"`
	Insights        []models.CrossDomainInsight `json:"insights"`
	Recommendations qloo.RecsResponse           `json:"recommendations"`
	Summary         analyzeTasteSummary         `json:"summary"`
}

func (h *APIHandler) AnalyzeTasteHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeTasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Preferences) == 0 {
		respondError(w, http.StatusBadRequest, "Preferences array is required")
		return
	}

	prefs := preferences.Normalize(req.Preferences)

	analysis, err := h.gateway.AnalyzeTasteProfile(r.Context(), prefs)
	if err != nil {
		h.logger.Error("taste analysis failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to analyze taste profile")
		return
	}

	seen := make(map[string]bool)
	categories := []string{}
	for _, p := range prefs {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}

	respondJSON(w, http.StatusOK, analyzeTasteResponse{
		Profile:         analysis.Profile,
		Insights:        analysis.Insights,
		Recommendations: analysis.Recommendations,
		Summary: analyzeTasteSummary{
			TotalPreferences:       len(prefs),
			Categories:             categories,
			CrossDomainConnections: len(analysis.Insights),
		},
	})
}

type chatRequest struct {
	Message          string               `json:"message"`
	CurrentItinerary *models.Itinerary    `json:"currentItinerary,omitempty"`
	UserPreferences  []models.Preference  `json:"userPreferences"`
	ChatHistory      []models.ChatMessage `json:"chatHistory,omitempty"`
}

type chatResponse struct {
	Message         models.ChatMessage      `json:"message"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" || len(req.UserPreferences) == 0 {
		respondError(w, http.StatusBadRequest, "Message and user preferences are required")
		return
	}

	prefs := preferences.Normalize(req.UserPreferences)

	recs, err := h.gateway.CrossDomainRecommendations(r.Context(), preferenceTexts(prefs), chatTargetCategories)
	if err != nil {
		h.logger.Error("chat recommendation lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to process chat message")
		return
	}

	message, err := h.generator.ChatResponse(r.Context(), req.Message, req.CurrentItinerary, prefs, recs.Recommendations, req.ChatHistory)
	if err != nil {
		// Generation failures stay inside the conversation: the user gets an
		// apology from the assistant, never a raw error.
		h.logger.Warn("chat generation failed, returning fallback message", zap.Error(err))
		message = fallbackChatMessage(req.CurrentItinerary, prefs)
	}

	respondJSON(w, http.StatusOK, chatResponse{
		Message:         message,
		Recommendations: recs.Recommendations,
	})
}

type generateItineraryRequest struct {
	Preferences []models.Preference `json:"preferences"`
	Duration    string              `json:"duration,omitempty"`
	Location    string              `json:"location,omitempty"`
}

type generateItineraryResponse struct {
	Itinerary            models.Itinerary        `json:"itinerary"`
	Recommendations      []models.Recommendation `json:"recommendations"`
	TotalRecommendations int                     `json:"total_recommendations"`
}

func (h *APIHandler) GenerateItineraryHandler(w http.ResponseWriter, r *http.Request) {
	var req generateItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Preferences) == 0 {
		respondError(w, http.StatusBadRequest, "Preferences are required and must be an array")
		return
	}

	prefs := preferences.Normalize(req.Preferences)

	recs, err := h.gateway.CrossDomainRecommendations(r.Context(), preferenceTexts(prefs), itineraryTargetCategories)
	if err != nil {
		h.logger.Error("itinerary recommendation lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}
	if len(recs.Recommendations) == 0 {
		respondError(w, http.StatusNotFound, "No recommendations found for the given preferences")
		return
	}

	itinerary, err := h.generator.GenerateItinerary(r.Context(), recs.Recommendations, prefs, req.Duration, req.Location, nil, nil)
	if err != nil {
		h.logger.Error("itinerary generation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}

	respondJSON(w, http.StatusOK, generateItineraryResponse{
		Itinerary:            itinerary,
		Recommendations:      recs.Recommendations,
		TotalRecommendations: recs.Total,
	})
}

type groupRecommendationsRequest struct {
	Preferences []models.Preference `json:"preferences"`
	Strategy    string              `json:"strategy,omitempty"`
	Categories  []string            `json:"categories,omitempty"`
}

type groupRecommendationsResponse struct {
	Recommendations   []models.Recommendation `json:"recommendations"`
	Total             int                     `json:"total"`
	MergedPreferences []models.Preference     `json:"merged_preferences"`
}

func (h *APIHandler) GroupRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	var req groupRecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Preferences) == 0 {
		respondError(w, http.StatusBadRequest, "Preferences array is required")
		return
	}

	strategy := preferences.MergeStrategy(req.Strategy)
	switch strategy {
	case "":
		strategy = preferences.StrategyUnion
	case preferences.StrategyUnion, preferences.StrategyIntersection:
	default:
		respondError(w, http.StatusBadRequest, "Strategy must be union or intersection")
		return
	}

	categories := req.Categories
	if len(categories) == 0 {
		categories = qloo.DefaultTargetCategories
	}

	prefs := preferences.Normalize(req.Preferences)

	recs, merged, err := h.gateway.GroupRecommendations(r.Context(), prefs, categories, strategy)
	if err != nil {
		h.logger.Error("group recommendation lookup failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to get group recommendations")
		return
	}
	if merged == nil {
		merged = []models.Preference{}
	}

	respondJSON(w, http.StatusOK, groupRecommendationsResponse{
		Recommendations:   recs.Recommendations,
		Total:             recs.Total,
		MergedPreferences: merged,
	})
}
