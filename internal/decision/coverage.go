package decision

import (
	"fmt"
	"time"
)

// Research-coverage rules: rating changes without follow-up and stale theses.

// EvaluateRatingFollowUp fires when a rating change is younger than the
// follow-up window and no trade idea for the same asset was created after
// the change. Qualitatively large swings (buy-class to sell-class or the
// reverse) escalate to orange.
func EvaluateRatingFollowUp(changes []RatingChange, ideas []TradeIdea, now time.Time, cfg Config) []Item {
	var items []Item
	for _, ch := range changes {
		if ch.ID == "" || ch.AssetID == "" || ch.ChangedAt.IsZero() {
			continue
		}
		if ageDays(ch.ChangedAt, now) >= cfg.RatingFollowUpDays {
			continue
		}
		if hasIdeaAfter(ideas, ch.AssetID, ch.ChangedAt) {
			continue
		}

		severity := SeverityBlue
		if swingSize(ch.From, ch.To) >= 2 {
			severity = SeverityOrange
		}

		items = append(items, Item{
			ID:       "a5-rating-" + ch.ID,
			Rule:     RuleRatingNoFollowUp,
			Surface:  SurfaceAction,
			Severity: severity,
			Category: CategoryRisk,
			Title:    "Rating changed, no follow-up",
			TitleKey: "rating-no-follow-up",
			Description: fmt.Sprintf("%s moved %s to %s with no trade idea since.",
				tickerOr(ch.Ticker, "The asset"), ch.From, ch.To),
			Chips: []Chip{
				{Label: "From", Value: ch.From},
				{Label: "To", Value: ch.To},
			},
			Refs: Refs{
				AssetID:        ch.AssetID,
				AssetTicker:    ch.Ticker,
				RatingChangeID: ch.ID,
			},
			CTAs: []CTA{
				{Label: "Create idea", ActionKey: "CREATE_TRADE_IDEA", Payload: map[string]string{"asset_id": ch.AssetID}, Kind: CTAPrimary},
				{Label: "Open asset", ActionKey: "OPEN_ASSET", Payload: map[string]string{"asset_id": ch.AssetID}, Kind: CTASecondary},
			},
			Dismissible: false,
			CreatedAt:   ch.ChangedAt,
		})
	}
	return items
}

// swingSize is the absolute stance distance of a rating change. BUY to SELL
// is 2, BUY to HOLD is 1, HOLD to HOLD is 0.
func swingSize(from, to string) int {
	d := int(stanceOf(from)) - int(stanceOf(to))
	if d < 0 {
		d = -d
	}
	return d
}

// hasIdeaAfter reports whether any trade idea for the asset was created
// strictly after the given time.
func hasIdeaAfter(ideas []TradeIdea, assetID string, after time.Time) bool {
	for _, idea := range ideas {
		if idea.AssetID == assetID && idea.CreatedAt.After(after) {
			return true
		}
	}
	return false
}

// EvaluateThesisStaleness fires once a thesis has gone unrevised past the
// yellow boundary, escalating through orange to red with no upper bound.
func EvaluateThesisStaleness(theses []Thesis, now time.Time, cfg Config) []Item {
	var items []Item
	for _, th := range theses {
		if th.ID == "" || th.UpdatedAt.IsZero() {
			continue
		}
		age := ageDays(th.UpdatedAt, now)
		if age < cfg.ThesisYellowDays {
			continue
		}

		severity := SeverityYellow
		switch {
		case age >= cfg.ThesisRedDays:
			severity = SeverityRed
		case age >= cfg.ThesisOrangeDays:
			severity = SeverityOrange
		}

		items = append(items, Item{
			ID:       "a6-thesis-" + th.ID,
			Rule:     RuleThesisStale,
			Surface:  SurfaceAction,
			Severity: severity,
			Category: CategoryRisk,
			Title:    "Thesis may be stale",
			TitleKey: "thesis-stale",
			Description: fmt.Sprintf("%s thesis last updated %d days ago.",
				tickerOr(th.Ticker, "The"), age),
			Chips: []Chip{
				{Label: "Last update", Value: fmt.Sprintf("%d days ago", age)},
			},
			Refs: Refs{
				AssetID:     th.AssetID,
				AssetTicker: th.Ticker,
				ThesisID:    th.ID,
			},
			CTAs: []CTA{
				{Label: "Review thesis", ActionKey: "OPEN_THESIS", Payload: map[string]string{"thesis_id": th.ID}, Kind: CTAPrimary},
			},
			Dismissible: false,
			CreatedAt:   th.UpdatedAt,
		})
	}
	return items
}
