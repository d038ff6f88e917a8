package api

import (
	"context"
	"errors"

	"github.com/cultura-atlas/atlas-backend/internal/models"
	"github.com/cultura-atlas/atlas-backend/internal/preferences"
	"github.com/cultura-atlas/atlas-backend/internal/qloo"
)

// fakeGateway stands in for the Qloo client and records upstream traffic so
// tests can assert that validation failures never reach it.
type fakeGateway struct {
	recs       qloo.RecsResponse
	recsErr    error
	profile    qloo.TasteProfile
	profileErr error

	crossDomainCalls int
	groupCalls       int
	analyzeCalls     int
	lastStrategy     preferences.MergeStrategy
	lastCategories   []string
}

func (f *fakeGateway) CrossDomainRecommendations(ctx context.Context, preferenceTexts []string, targetCategories []string) (qloo.RecsResponse, error) {
	f.crossDomainCalls++
	f.lastCategories = targetCategories
	if f.recsErr != nil {
		return qloo.RecsResponse{}, f.recsErr
	}
	return f.recs, nil
}

func (f *fakeGateway) GroupRecommendations(ctx context.Context, groupPrefs []models.Preference, targetCategories []string, strategy preferences.MergeStrategy) (qloo.RecsResponse, []models.Preference, error) {
	f.groupCalls++
	f.lastStrategy = strategy
	f.lastCategories = targetCategories
	if f.recsErr != nil {
		return qloo.RecsResponse{}, nil, f.recsErr
	}
	return f.recs, preferences.Merge(groupPrefs, strategy), nil
}

func (f *fakeGateway) AnalyzeTasteProfile(ctx context.Context, prefs []models.Preference) (qloo.TasteProfile, error) {
	f.analyzeCalls++
	if f.profileErr != nil {
		return qloo.TasteProfile{}, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeGateway) totalCalls() int {
	return f.crossDomainCalls + f.groupCalls + f.analyzeCalls
}

// fakeNarrator stands in for the Gemini service. GenerateItinerary echoes the
// requested duration and preferences the way the real service does.
type fakeNarrator struct {
	genErr  error
	chatErr error

	generateCalls int
	chatCalls     int
}

func (f *fakeNarrator) GenerateItinerary(ctx context.Context, recs []models.Recommendation, prefs []models.Preference, duration, location string, filters *models.FilterOptions, insights []models.CrossDomainInsight) (models.Itinerary, error) {
	f.generateCalls++
	if f.genErr != nil {
		return models.Itinerary{}, f.genErr
	}
	return models.Itinerary{
		ID:              "itinerary-test",
		Title:           "Test Trip",
		Description:     "A generated plan",
		Duration:        duration,
		Items:           []models.ItineraryItem{{ID: "item-1", Title: "Stop", Time: "Morning", Category: "music"}},
		UserPreferences: prefs,
		Location:        location,
	}, nil
}

func (f *fakeNarrator) ChatResponse(ctx context.Context, message string, current *models.Itinerary, prefs []models.Preference, recs []models.Recommendation, history []models.ChatMessage) (models.ChatMessage, error) {
	f.chatCalls++
	if f.chatErr != nil {
		return models.ChatMessage{}, f.chatErr
	}
	return models.ChatMessage{
		ID:      "msg-test",
		Type:    "assistant",
		Content: "Here is a thought about " + message,
	}, nil
}

var errUpstream = errors.New("upstream unavailable")
