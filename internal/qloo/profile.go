package qloo

import (
	"context"
	"fmt"
	"strings"

	"github.com/cultura-atlas/atlas-backend/internal/models"
)

// insightCategories is the narrower category spread used for per-preference
// insight lookups.
var insightCategories = []string{"restaurant", "music", "activity", "art"}

type TasteProfile struct {
	Profile         string                      `json:"profile"`
	Insights        []models.CrossDomainInsight `json:"insights"`
	Recommendations RecsResponse                `json:"recommendations"`
}

// AnalyzeTasteProfile runs one broad cross-domain lookup over all preferences
// plus one additional lookup per preference to derive a best-single-match
// insight. The per-preference loop is sequential, so latency grows linearly
// with preference count.
func (c *Client) AnalyzeTasteProfile(ctx context.Context, prefs []models.Preference) (TasteProfile, error) {
	texts := make([]string, 0, len(prefs))
	for _, p := range prefs {
		texts = append(texts, p.Name)
	}

	recommendations, err := c.CrossDomainRecommendations(ctx, texts, DefaultTargetCategories)
	if err != nil {
		return TasteProfile{}, fmt.Errorf("taste profile recommendation lookup: %w", err)
	}

	insights := []models.CrossDomainInsight{}
	for _, pref := range prefs {
		crossDomain, err := c.CrossDomainRecommendations(ctx, []string{pref.Name}, insightCategories)
		if err != nil {
			return TasteProfile{}, fmt.Errorf("insight lookup for %q: %w", pref.Name, err)
		}
		if len(crossDomain.Recommendations) == 0 {
			continue
		}

		best := crossDomain.Recommendations[0]
		examples := make([]string, 0, 3)
		for _, rec := range crossDomain.Recommendations {
			examples = append(examples, rec.Entity.Name)
			if len(examples) == 3 {
				break
			}
		}

		insights = append(insights, models.CrossDomainInsight{
			SourcePreference: pref,
			TargetCategory:   best.Entity.Category,
			Reasoning:        fmt.Sprintf("Your love for %s connects to %s culture", pref.Name, best.Entity.Category),
			Examples:         examples,
		})
	}

	return TasteProfile{
		Profile:         buildProfileText(prefs, insights),
		Insights:        insights,
		Recommendations: recommendations,
	}, nil
}

// buildProfileText assembles a deterministic summary from category
// cardinality and insight count. No generative call involved.
func buildProfileText(prefs []models.Preference, insights []models.CrossDomainInsight) string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range prefs {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cultural enthusiast with diverse interests in %s. ", strings.Join(categories, ", "))

	if len(insights) > 0 {
		fmt.Fprintf(&b, "Shows cross-cultural connections, particularly %s. ", strings.ToLower(insights[0].Reasoning))
	}

	if len(prefs) > 3 {
		b.WriteString("Has eclectic taste spanning multiple cultural domains.")
	} else {
		b.WriteString("Has focused cultural interests with potential for discovery.")
	}

	return b.String()
}
