package decision

import (
	"sort"
	"time"
)

// Sort weights. Tier weights are spaced so any tier dominates all severity,
// category, and ordinary age variation within the tier below it.
var tierWeight = map[Tier]float64{
	TierCapital:   30000,
	TierIntegrity: 20000,
	TierCoverage:  10000,
}

var severityWeight = map[Severity]float64{
	SeverityRed:    10000,
	SeverityOrange: 7000,
	SeverityYellow: 5000,
	SeverityBlue:   3000,
	SeverityGray:   1000,
}

// Category weight applies to action items only; intel ranks on severity and
// age alone.
var categoryWeight = map[Category]float64{
	CategoryProcess:  600,
	CategoryRisk:     500,
	CategoryAlpha:    400,
	CategoryCatalyst: 300,
	CategoryProject:  200,
	CategoryPrompt:   100,
}

// agePointsPerDay converts whole days of age into score points.
const agePointsPerDay = 50

// ComputeSortScore computes the composite priority score for an item.
// The score is monotonic in tier, then severity, then (for action items)
// category, then age, and is never negative.
func ComputeSortScore(it Item, now time.Time) float64 {
	score := tierWeight[it.Tier] + severityWeight[it.Severity]
	if it.Surface == SurfaceAction {
		score += categoryWeight[it.Category]
	}
	score += float64(ageDays(it.CreatedAt, now)) * agePointsPerDay
	return score
}

// tiebreakKey is the deterministic lexicographic tiebreak used when two
// items score exactly equal. It never depends on input array order.
func tiebreakKey(it Item) string {
	return it.TitleKey + ":" + it.Refs.AssetTicker + ":" + it.ID
}

// CompareItems is a strict total order over items: descending SortScore,
// then ascending tiebreak key. It reads the persisted SortScore, so scores
// must be attached before sorting.
func CompareItems(a, b Item) int {
	switch {
	case a.SortScore > b.SortScore:
		return -1
	case a.SortScore < b.SortScore:
		return 1
	}
	ka, kb := tiebreakKey(a), tiebreakKey(b)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	default:
		return 0
	}
}

// sortItems sorts in place using CompareItems.
func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return CompareItems(items[i], items[j]) < 0
	})
}
