package attention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestlinelabs/decisiond/internal/decision"
)

var feedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestSeverityFromEngine(t *testing.T) {
	tests := []struct {
		in  decision.Severity
		out Severity
	}{
		{decision.SeverityRed, SeverityHigh},
		{decision.SeverityOrange, SeverityMedium},
		{decision.SeverityYellow, SeverityMedium},
		{decision.SeverityBlue, SeverityLow},
		{decision.SeverityGray, SeverityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, severityFromEngine(tt.in), "severity %s", tt.in)
	}
}

func TestTypeForRule(t *testing.T) {
	tests := []struct {
		rule decision.Rule
		out  Type
	}{
		{decision.RuleProposalAwaiting, TypeDecision},
		{decision.RuleExecutionNotConfirmed, TypeDecision},
		{decision.RuleIdeaNotSimulated, TypeDecision},
		{decision.RuleDeliverableOverdue, TypeDeliverable},
		{decision.RuleRatingNoFollowUp, TypeResearch},
		{decision.RuleThesisStale, TypeResearch},
		{decision.RuleHighExpectedReturn, TypeSignal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, typeForRule(tt.rule), "rule %s", tt.rule)
	}
}

func TestAdaptDecisionItem_AppendsDefer(t *testing.T) {
	it := decision.Item{
		ID:       "a1-proposal-t1",
		Rule:     decision.RuleProposalAwaiting,
		Surface:  decision.SurfaceAction,
		Severity: decision.SeverityOrange,
		Category: decision.CategoryProcess,
		Title:    "Proposal awaiting decision",
		CTAs: []decision.CTA{
			{Label: "Review proposal", ActionKey: "OPEN_TRADE_IDEA", Kind: decision.CTAPrimary},
		},
		RequiresDecision: true,
		CreatedAt:        feedNow.Add(-72 * time.Hour),
		Refs:             decision.Refs{AssetID: "as1", TradeIdeaID: "t1"},
	}

	feed := AdaptDecisionItem(it, feedNow)

	assert.Equal(t, "a1-proposal-t1", feed.ID)
	assert.Equal(t, TypeDecision, feed.Type)
	assert.Equal(t, SeverityMedium, feed.Severity)
	assert.Equal(t, "process", feed.Category)
	assert.True(t, feed.RequiresDecision)
	assert.Equal(t, SourceEngine, feed.SourceSystem)
	assert.Equal(t, "t1", feed.Related.TradeIdeaID)

	require.Len(t, feed.Actions, 2)
	assert.Equal(t, "OPEN_TRADE_IDEA", feed.Actions[0].ActionKey)
	assert.Equal(t, "Defer", feed.Actions[1].Label)
	assert.Equal(t, "SNOOZE_ITEM", feed.Actions[1].ActionKey)
}

func TestAdaptDecisionItem_RecursesIntoRollupChildren(t *testing.T) {
	child := decision.Item{
		ID: "a6-thesis-th1", Rule: decision.RuleThesisStale,
		Severity: decision.SeverityYellow, CreatedAt: feedNow.Add(-95 * 24 * time.Hour),
	}
	parent := decision.Item{
		ID: "rollup-thesis-stale", Rule: decision.RuleRollup, SourceRule: decision.RuleThesisStale,
		Severity: decision.SeverityRed, Children: []decision.Item{child},
		CreatedAt: feedNow.Add(-95 * 24 * time.Hour),
	}

	feed := AdaptDecisionItem(parent, feedNow)
	assert.Equal(t, TypeResearch, feed.Type)
	assert.Equal(t, SeverityHigh, feed.Severity)
	require.Len(t, feed.Children, 1)
	assert.Equal(t, "a6-thesis-th1", feed.Children[0].ID)
	assert.Equal(t, TypeResearch, feed.Children[0].Type)
}

func TestDueFlags_MutuallyExclusive(t *testing.T) {
	past := feedNow.Add(-24 * time.Hour)
	nearFuture := feedNow.Add(3 * 24 * time.Hour)
	windowEdge := feedNow.Add(7 * 24 * time.Hour)
	farFuture := feedNow.Add(8 * 24 * time.Hour)

	overdue, dueSoon := dueFlags(&past, feedNow)
	assert.True(t, overdue)
	assert.False(t, dueSoon)

	overdue, dueSoon = dueFlags(&nearFuture, feedNow)
	assert.False(t, overdue)
	assert.True(t, dueSoon)

	overdue, dueSoon = dueFlags(&windowEdge, feedNow)
	assert.False(t, overdue)
	assert.True(t, dueSoon)

	overdue, dueSoon = dueFlags(&farFuture, feedNow)
	assert.False(t, overdue)
	assert.False(t, dueSoon)

	overdue, dueSoon = dueFlags(nil, feedNow)
	assert.False(t, overdue)
	assert.False(t, dueSoon)
}

func TestAdaptSourceItem(t *testing.T) {
	due := feedNow.Add(2 * 24 * time.Hour)
	src := SourceItem{
		ID: "att-1", Type: TypeProject, Title: "Q1 coverage review",
		Severity: SeverityMedium, DueAt: &due,
		CreatedAt: feedNow.Add(-48 * time.Hour), Blocking: true,
		Related: Related{ProjectID: "p1"},
	}

	feed := AdaptSourceItem(src, feedNow)
	assert.Equal(t, SourceTracker, feed.SourceSystem)
	assert.True(t, feed.DueSoon)
	assert.False(t, feed.Overdue)
	assert.True(t, feed.Blocking)
	assert.True(t, feed.Dismissible)
	assert.Equal(t, feed.CreatedAt, feed.UpdatedAt, "missing UpdatedAt falls back to CreatedAt")
	require.Len(t, feed.Actions, 2)
	assert.Equal(t, "Defer", feed.Actions[1].Label)
}

func TestMergeAndDedup_EngineWins(t *testing.T) {
	engine := []FeedItem{
		{ID: "a4-deliverable-d1", Type: TypeDeliverable, SourceSystem: SourceEngine,
			Related: Related{DeliverableID: "d1"}},
	}
	tracker := []FeedItem{
		{ID: "att-1", Type: TypeTask, SourceSystem: SourceTracker,
			Related: Related{DeliverableID: "d1"}}, // duplicate of the engine row
		{ID: "att-2", Type: TypeNotification, SourceSystem: SourceTracker},
	}

	merged := MergeAndDedup(engine, tracker)
	require.Len(t, merged, 2)
	assert.Equal(t, "a4-deliverable-d1", merged[0].ID)
	assert.Equal(t, "att-2", merged[1].ID)
}

func TestMergeAndDedup_ChecksRollupChildren(t *testing.T) {
	engine := []FeedItem{
		{ID: "rollup-deliverable-overdue", Type: TypeDeliverable, SourceSystem: SourceEngine,
			Children: []FeedItem{
				{ID: "a4-deliverable-d9", Related: Related{DeliverableID: "d9"}},
			}},
	}
	tracker := []FeedItem{
		{ID: "att-9", Type: TypeTask, Related: Related{DeliverableID: "d9"}},
	}

	merged := MergeAndDedup(engine, tracker)
	require.Len(t, merged, 1)
	assert.Equal(t, "rollup-deliverable-overdue", merged[0].ID)
}

func TestMergeAndDedup_TradeQueueItemsSuperseded(t *testing.T) {
	engine := []FeedItem{
		{ID: "a1-proposal-t1", Type: TypeDecision, Related: Related{TradeIdeaID: "t1"}},
	}
	tracker := []FeedItem{
		{ID: "att-queue-t1", Type: TypeTask, Related: Related{TradeIdeaID: "t1"}},
	}

	merged := MergeAndDedup(engine, tracker)
	require.Len(t, merged, 1)
	assert.Equal(t, "a1-proposal-t1", merged[0].ID)
}
