package decision

// Surface-scoped views over one engine result. Every helper copies; the
// underlying Result is shared read-only across dashboard, asset, and
// portfolio surfaces.

// floorCategories are force-represented on the dashboard whenever the full
// input contains them, even at very low scores.
var floorCategories = []Category{CategoryProcess, CategoryRisk}

// SelectTopForDashboard curates at most limit rows for the dashboard while
// preserving the incoming sort order. When the input holds any process or
// risk item, at least one representative of each is force-included,
// evicting the lowest-scored already-selected rows. Inputs at or below the
// limit pass through unchanged.
func SelectTopForDashboard(items []Item, limit int) []Item {
	if limit <= 0 {
		limit = DefaultConfig().DashboardLimit
	}
	if len(items) <= limit {
		return append([]Item(nil), items...)
	}

	selected := append([]Item(nil), items[:limit]...)

	for _, cat := range floorCategories {
		if !containsCategory(items, cat) || containsCategory(selected, cat) {
			continue
		}
		// Best remaining representative of the missing category. The input
		// is already sorted, so the first match wins.
		var rep *Item
		for i := limit; i < len(items); i++ {
			if items[i].Category == cat {
				rep = &items[i]
				break
			}
		}
		if rep == nil {
			continue
		}
		if at := evictionIndex(selected); at >= 0 {
			selected = append(selected[:at], selected[at+1:]...)
			selected = insertSorted(selected, *rep)
		}
	}
	return selected
}

// evictionIndex picks the lowest-scored row whose category is not the sole
// representative of a floor category. Returns -1 when nothing can go.
func evictionIndex(selected []Item) int {
	counts := make(map[Category]int, len(selected))
	for _, it := range selected {
		counts[it.Category]++
	}
	protected := make(map[Category]bool, len(floorCategories))
	for _, cat := range floorCategories {
		if counts[cat] == 1 {
			protected[cat] = true
		}
	}
	for i := len(selected) - 1; i >= 0; i-- {
		if !protected[selected[i].Category] {
			return i
		}
	}
	return -1
}

// insertSorted places it into the already-sorted slice at its sort
// position.
func insertSorted(items []Item, it Item) []Item {
	at := len(items)
	for i := range items {
		if CompareItems(it, items[i]) < 0 {
			at = i
			break
		}
	}
	items = append(items, Item{})
	copy(items[at+1:], items[at:])
	items[at] = it
	return items
}

func containsCategory(items []Item, cat Category) bool {
	for _, it := range items {
		if it.Category == cat {
			return true
		}
	}
	return false
}

// FilterByAsset returns the items scoped to one asset, unwrapping rollup
// parents whose children reference it. Unwrapped children keep their
// original fields, including the SortScore stamped by postprocessing.
func FilterByAsset(items []Item, assetID string) []Item {
	var out []Item
	for _, it := range items {
		if len(it.Children) > 0 {
			for _, ch := range it.Children {
				if ch.Refs.AssetID == assetID {
					out = append(out, ch)
				}
			}
			continue
		}
		if it.Refs.AssetID == assetID {
			out = append(out, it)
		}
	}
	sortItems(out)
	return out
}

// FilterByPortfolio returns the items scoped to one portfolio, unwrapping
// rollup parents the same way as FilterByAsset.
func FilterByPortfolio(items []Item, portfolioID string) []Item {
	var out []Item
	for _, it := range items {
		if len(it.Children) > 0 {
			for _, ch := range it.Children {
				if ch.Refs.PortfolioID == portfolioID {
					out = append(out, ch)
				}
			}
			continue
		}
		if it.Refs.PortfolioID == portfolioID {
			out = append(out, it)
		}
	}
	sortItems(out)
	return out
}

// FilterDismissed removes dismissible items whose id is in dismissed.
// Non-dismissible items always survive.
func FilterDismissed(items []Item, dismissed map[string]bool) []Item {
	if len(dismissed) == 0 {
		return append([]Item(nil), items...)
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Dismissible && dismissed[it.ID] {
			continue
		}
		out = append(out, it)
	}
	return out
}
