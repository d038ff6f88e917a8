package preferences

import "github.com/cultura-atlas/atlas-backend/internal/models"

// MergeStrategy selects how a group's combined preference list is reduced
// before a recommendation lookup.
type MergeStrategy string

const (
	// StrategyUnion keeps every distinct name+category pair, preferring the
	// highest-confidence duplicate.
	StrategyUnion MergeStrategy = "union"
	// StrategyIntersection keeps only name+category pairs that appear more
	// than once across the input.
	StrategyIntersection MergeStrategy = "intersection"
)

// Merge reduces a combined group preference list according to the strategy.
// Deterministic set operation, no I/O. Unknown strategies behave as union.
func Merge(prefs []models.Preference, strategy MergeStrategy) []models.Preference {
	if strategy == StrategyIntersection {
		return mergeIntersection(prefs)
	}
	return mergeUnion(prefs)
}

func mergeKey(p models.Preference) string {
	return p.Name + "-" + p.Category
}

func mergeUnion(prefs []models.Preference) []models.Preference {
	byKey := make(map[string]int)
	var out []models.Preference
	for _, pref := range prefs {
		key := mergeKey(pref)
		idx, seen := byKey[key]
		if !seen {
			byKey[key] = len(out)
			out = append(out, pref)
			continue
		}
		if pref.Confidence > out[idx].Confidence {
			out[idx] = pref
		}
	}
	return out
}

func mergeIntersection(prefs []models.Preference) []models.Preference {
	counts := make(map[string]int)
	first := make(map[string]models.Preference)
	var order []string
	for _, pref := range prefs {
		key := mergeKey(pref)
		if counts[key] == 0 {
			first[key] = pref
			order = append(order, key)
		}
		counts[key]++
	}

	var out []models.Preference
	for _, key := range order {
		if counts[key] > 1 {
			out = append(out, first[key])
		}
	}
	return out
}
