// Package preferences holds the session-scoped taste preference list and the
// pure set operations over it. Nothing here touches the network or disk; the
// client resubmits its preference list with every request and the server only
// normalizes and merges it.
package preferences

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cultura-atlas/atlas-backend/internal/models"
)

// Collector is an ordered, in-memory preference list for a single session.
// There is no deduplication, no text normalization, and no size limit.
type Collector struct {
	prefs []models.Preference
}

func NewCollector() *Collector {
	return &Collector{}
}

// Add appends a new preference built from free text and a category tag, and
// returns it with a generated id.
func (c *Collector) Add(text, category string) models.Preference {
	pref := models.Preference{
		ID:       fmt.Sprintf("pref-%s", uuid.NewString()),
		Name:     text,
		Category: category,
	}
	c.prefs = append(c.prefs, pref)
	return pref
}

// Remove drops the preference with the given id, if present.
func (c *Collector) Remove(id string) {
	kept := c.prefs[:0]
	for _, p := range c.prefs {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.prefs = kept
}

// Clear empties the list. Dependent state (the displayed itinerary, any error
// banner) is the caller's to reset.
func (c *Collector) Clear() {
	c.prefs = nil
}

// List returns the preferences in insertion order.
func (c *Collector) List() []models.Preference {
	out := make([]models.Preference, len(c.prefs))
	copy(out, c.prefs)
	return out
}

// Normalize fills in generated ids for submitted preferences that arrived
// without one, preserving order. The input slice is not modified.
func Normalize(prefs []models.Preference) []models.Preference {
	out := make([]models.Preference, len(prefs))
	copy(out, prefs)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = fmt.Sprintf("pref-%s", uuid.NewString())
		}
	}
	return out
}
