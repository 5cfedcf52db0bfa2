package decision

import (
	"fmt"
	"time"
)

// EvaluateExpectedReturn is the intel-only opportunity rule: it fires for
// assets whose expected return clears the configured threshold while no
// open trade idea exists for the asset. Intel items are dismissible and
// never roll up.
func EvaluateExpectedReturn(assets []Asset, ideas []TradeIdea, now time.Time, cfg Config) []Item {
	var items []Item
	for _, a := range assets {
		if a.ID == "" || a.ExpectedReturn < cfg.ExpectedReturnThreshold {
			continue
		}
		if hasOpenIdea(ideas, a.ID) {
			continue
		}

		anchor := a.ReturnAsOf
		if anchor.IsZero() {
			anchor = now
		}

		items = append(items, Item{
			ID:       "i1-exp-return-" + a.ID,
			Rule:     RuleHighExpectedReturn,
			Surface:  SurfaceIntel,
			Severity: SeverityBlue,
			Category: CategoryAlpha,
			Title:    "High expected return, no idea",
			TitleKey: "high-expected-return",
			Description: fmt.Sprintf("%s screens at %.0f%% expected return with no open trade idea.",
				tickerOr(a.Ticker, "An asset"), a.ExpectedReturn*100),
			Chips: []Chip{
				{Label: "Expected return", Value: fmt.Sprintf("%.0f%%", a.ExpectedReturn*100)},
			},
			Refs: Refs{
				AssetID:     a.ID,
				AssetTicker: a.Ticker,
			},
			CTAs: []CTA{
				{Label: "Create idea", ActionKey: "CREATE_TRADE_IDEA", Payload: map[string]string{"asset_id": a.ID}, Kind: CTAPrimary},
			},
			Dismissible: true,
			CreatedAt:   anchor,
		})
	}
	return items
}

// hasOpenIdea reports whether the asset has any idea that is not closed or
// rejected.
func hasOpenIdea(ideas []TradeIdea, assetID string) bool {
	for _, idea := range ideas {
		if idea.AssetID != assetID {
			continue
		}
		if idea.Stage == StageClosed || idea.Outcome == OutcomeRejected {
			continue
		}
		return true
	}
	return false
}
