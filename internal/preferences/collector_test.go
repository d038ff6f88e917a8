package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultura-atlas/atlas-backend/internal/models"
)

func TestCollectorAddPreservesInsertionOrder(t *testing.T) {
	c := NewCollector()

	first := c.Add("bebop jazz", "music")
	second := c.Add("ramen", "restaurant")
	third := c.Add("BEBOP JAZZ", "music") // no dedup, no case normalization

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, third.ID, list[2].ID)
	assert.Equal(t, "BEBOP JAZZ", list[2].Name)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestCollectorRemove(t *testing.T) {
	c := NewCollector()
	c.Add("jazz", "music")
	target := c.Add("sushi", "restaurant")
	c.Add("noir films", "movie")

	c.Remove(target.ID)

	list := c.List()
	require.Len(t, list, 2)
	for _, p := range list {
		assert.NotEqual(t, target.ID, p.ID)
	}

	// Removing an unknown id is a no-op.
	c.Remove("pref-does-not-exist")
	assert.Len(t, c.List(), 2)
}

func TestCollectorClear(t *testing.T) {
	c := NewCollector()
	c.Add("jazz", "music")
	c.Add("sushi", "restaurant")

	c.Clear()

	assert.Empty(t, c.List())
}

func TestNormalizeFillsMissingIDs(t *testing.T) {
	in := []models.Preference{
		{Name: "jazz", Category: "music"},
		{ID: "pref-existing", Name: "sushi", Category: "restaurant"},
	}

	prefs := Normalize(in)

	require.Len(t, prefs, 2)
	assert.NotEmpty(t, prefs[0].ID)
	assert.Equal(t, "pref-existing", prefs[1].ID)
	// The input slice is untouched.
	assert.Empty(t, in[0].ID)
}
