package qloo

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultura-atlas/atlas-backend/internal/models"
)

func TestAnalyzeTasteProfileBuildsInsightsPerPreference(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("query") {
		case "bebop jazz":
			body, _ := json.Marshal(map[string]any{"results": []models.Entity{
				{ID: "e1", Name: "Blue Note Records", Category: "music"},
				{ID: "e2", Name: "Village Vanguard", Category: "activity"},
				{ID: "e3", Name: "Smalls Jazz Club", Category: "activity"},
				{ID: "e4", Name: "Birdland", Category: "activity"},
			}, "total": 4})
			w.Write(body)
		default:
			w.Write(searchPayload())
		}
	})

	prefs := []models.Preference{
		{ID: "p1", Name: "bebop jazz", Category: "music"},
		{ID: "p2", Name: "obscure thing", Category: "art"},
	}

	profile, err := client.AnalyzeTasteProfile(context.Background(), prefs)
	require.NoError(t, err)

	// Only the preference with results yields an insight.
	require.Len(t, profile.Insights, 1)
	insight := profile.Insights[0]
	assert.Equal(t, "p1", insight.SourcePreference.ID)
	assert.Equal(t, "music", insight.TargetCategory)
	assert.Equal(t, "Your love for bebop jazz connects to music culture", insight.Reasoning)
	assert.Equal(t, []string{"Blue Note Records", "Village Vanguard", "Smalls Jazz Club"}, insight.Examples)

	// The broad lookup ran over both preference texts.
	assert.Equal(t, 4, profile.Recommendations.Total)
}

func TestAnalyzeTasteProfileUpstreamFailurePropagates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.AnalyzeTasteProfile(context.Background(), []models.Preference{{Name: "jazz", Category: "music"}})
	require.Error(t, err)
}

func TestBuildProfileTextFocusedVsEclectic(t *testing.T) {
	few := []models.Preference{
		{Name: "jazz", Category: "music"},
		{Name: "sushi", Category: "restaurant"},
	}
	text := buildProfileText(few, nil)
	assert.Contains(t, text, "music, restaurant")
	assert.Contains(t, text, "focused cultural interests")

	many := []models.Preference{
		{Name: "jazz", Category: "music"},
		{Name: "sushi", Category: "restaurant"},
		{Name: "noir", Category: "movie"},
		{Name: "brutalism", Category: "art"},
	}
	insights := []models.CrossDomainInsight{{Reasoning: "Your love for jazz connects to activity culture"}}
	text = buildProfileText(many, insights)
	assert.Contains(t, text, "eclectic taste")
	assert.Contains(t, text, "your love for jazz connects to activity culture")
}
