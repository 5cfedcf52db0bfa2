package attention

import (
	"time"

	"github.com/crestlinelabs/decisiond/internal/decision"
)

// dueSoonWindow is how far ahead a due date counts as "due soon". An item
// that is already overdue is never also due soon.
const dueSoonWindow = 7 * 24 * time.Hour

// severityFromEngine coarsens the engine's five-color scale to the feed's
// three-level one.
func severityFromEngine(s decision.Severity) Severity {
	switch s {
	case decision.SeverityRed:
		return SeverityHigh
	case decision.SeverityOrange, decision.SeverityYellow:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// typeForRule maps the engine's explicit rule discriminant to a feed type.
// Rollup parents classify by the rule of their children.
func typeForRule(r decision.Rule) Type {
	switch r {
	case decision.RuleProposalAwaiting, decision.RuleExecutionNotConfirmed, decision.RuleIdeaNotSimulated:
		return TypeDecision
	case decision.RuleDeliverableOverdue:
		return TypeDeliverable
	case decision.RuleRatingNoFollowUp, decision.RuleThesisStale:
		return TypeResearch
	case decision.RuleHighExpectedReturn:
		return TypeSignal
	default:
		return TypeTask
	}
}

// AdaptDecisionItem converts one engine item (and, recursively, its rollup
// children) into the normalized feed shape. A Defer action is appended to
// whatever calls to action the item already carries.
func AdaptDecisionItem(it decision.Item, now time.Time) FeedItem {
	rule := it.Rule
	if rule == decision.RuleRollup {
		rule = it.SourceRule
	}

	actions := make([]Action, 0, len(it.CTAs)+1)
	for _, cta := range it.CTAs {
		actions = append(actions, Action{
			Label:     cta.Label,
			ActionKey: cta.ActionKey,
			Payload:   cta.Payload,
			Kind:      string(cta.Kind),
		})
	}
	actions = append(actions, Action{
		Label:     "Defer",
		ActionKey: "SNOOZE_ITEM",
		Payload:   map[string]string{"item_id": it.ID},
		Kind:      string(decision.CTASecondary),
	})

	overdue, dueSoon := dueFlags(it.DueAt, now)

	feed := FeedItem{
		ID:               it.ID,
		Type:             typeForRule(rule),
		Title:            it.Title,
		Detail:           it.Description,
		Severity:         severityFromEngine(it.Severity),
		Category:         string(it.Category),
		Overdue:          overdue,
		DueSoon:          dueSoon,
		RequiresDecision: it.RequiresDecision,
		Dismissible:      it.Dismissible,
		DueAt:            it.DueAt,
		CreatedAt:        it.CreatedAt,
		UpdatedAt:        it.CreatedAt,
		Actions:          actions,
		Related: Related{
			AssetID:       it.Refs.AssetID,
			AssetTicker:   it.Refs.AssetTicker,
			PortfolioID:   it.Refs.PortfolioID,
			TradeIdeaID:   it.Refs.TradeIdeaID,
			ProjectID:     it.Refs.ProjectID,
			DeliverableID: it.Refs.DeliverableID,
		},
		SourceSystem: SourceEngine,
	}

	for _, ch := range it.Children {
		feed.Children = append(feed.Children, AdaptDecisionItem(ch, now))
	}
	return feed
}

// AdaptDecisionItems adapts a slice, preserving order.
func AdaptDecisionItems(items []decision.Item, now time.Time) []FeedItem {
	out := make([]FeedItem, 0, len(items))
	for _, it := range items {
		out = append(out, AdaptDecisionItem(it, now))
	}
	return out
}

// AdaptSourceItem converts one attention-tracker item into the feed shape.
func AdaptSourceItem(src SourceItem, now time.Time) FeedItem {
	overdue, dueSoon := dueFlags(src.DueAt, now)

	updated := src.UpdatedAt
	if updated.IsZero() {
		updated = src.CreatedAt
	}

	return FeedItem{
		ID:               src.ID,
		Type:             src.Type,
		Title:            src.Title,
		Detail:           src.Detail,
		Severity:         src.Severity,
		Overdue:          overdue,
		DueSoon:          dueSoon,
		RequiresDecision: src.RequiresDecision,
		Blocking:         src.Blocking,
		Dismissible:      true,
		DueAt:            src.DueAt,
		CreatedAt:        src.CreatedAt,
		UpdatedAt:        updated,
		Actions: []Action{
			{Label: "Open", ActionKey: "OPEN_ATTENTION_ITEM", Payload: map[string]string{"item_id": src.ID}, Kind: string(decision.CTAPrimary)},
			{Label: "Defer", ActionKey: "SNOOZE_ITEM", Payload: map[string]string{"item_id": src.ID}, Kind: string(decision.CTASecondary)},
		},
		Related:      src.Related,
		SourceSystem: SourceTracker,
	}
}

// AdaptSourceItems adapts a slice, preserving order.
func AdaptSourceItems(items []SourceItem, now time.Time) []FeedItem {
	out := make([]FeedItem, 0, len(items))
	for _, it := range items {
		out = append(out, AdaptSourceItem(it, now))
	}
	return out
}

// dueFlags derives the overdue / due-soon pair from a due date. The two
// are mutually exclusive; overdue wins.
func dueFlags(dueAt *time.Time, now time.Time) (overdue, dueSoon bool) {
	if dueAt == nil || dueAt.IsZero() {
		return false, false
	}
	if dueAt.Before(now) {
		return true, false
	}
	if dueAt.Sub(now) <= dueSoonWindow {
		return false, true
	}
	return false, false
}

// MergeAndDedup combines engine-sourced and tracker-sourced feed items.
// Engine items always win: a tracker item referencing a deliverable the
// engine already surfaced (directly or inside a rollup) is dropped.
// Trade-queue-shaped tracker items are covered the same way via their
// trade-idea reference.
func MergeAndDedup(engine, tracker []FeedItem) []FeedItem {
	deliverables := make(map[string]bool)
	ideas := make(map[string]bool)
	var index func(items []FeedItem)
	index = func(items []FeedItem) {
		for _, it := range items {
			if it.Related.DeliverableID != "" {
				deliverables[it.Related.DeliverableID] = true
			}
			if it.Related.TradeIdeaID != "" {
				ideas[it.Related.TradeIdeaID] = true
			}
			index(it.Children)
		}
	}
	index(engine)

	out := append([]FeedItem(nil), engine...)
	for _, it := range tracker {
		if it.Related.DeliverableID != "" && deliverables[it.Related.DeliverableID] {
			continue
		}
		if it.Related.TradeIdeaID != "" && ideas[it.Related.TradeIdeaID] {
			continue
		}
		out = append(out, it)
	}
	return out
}
