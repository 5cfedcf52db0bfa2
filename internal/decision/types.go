package decision

import (
	"time"
)

// Surface identifies which consumption surface an item belongs to.
type Surface string

const (
	// SurfaceAction marks items that demand a response from the user.
	SurfaceAction Surface = "action"

	// SurfaceIntel marks informational, dismissible items.
	SurfaceIntel Surface = "intel"
)

// Severity is the ordered urgency scale. Red is the most severe.
type Severity string

const (
	SeverityRed    Severity = "red"
	SeverityOrange Severity = "orange"
	SeverityYellow Severity = "yellow"
	SeverityBlue   Severity = "blue"
	SeverityGray   Severity = "gray"
)

// severityRank orders severities for comparisons. Higher is more severe.
var severityRank = map[Severity]int{
	SeverityRed:    5,
	SeverityOrange: 4,
	SeverityYellow: 3,
	SeverityBlue:   2,
	SeverityGray:   1,
}

// Rank returns the numeric order of the severity. Unknown severities rank 0.
func (s Severity) Rank() int {
	return severityRank[s]
}

// MaxSeverity returns the more severe of a and b.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Category classifies the business concern an item belongs to.
type Category string

const (
	CategoryProcess  Category = "process"
	CategoryRisk     Category = "risk"
	CategoryAlpha    Category = "alpha"
	CategoryProject  Category = "project"
	CategoryPrompt   Category = "prompt"
	CategoryCatalyst Category = "catalyst"
)

// Tier is an optional decision tier that dominates all other sort inputs
// when present. No current rule populates it; it is an extension point for
// rules that must outrank everything in a lower tier.
type Tier string

const (
	TierCapital   Tier = "capital"
	TierIntegrity Tier = "integrity"
	TierCoverage  Tier = "coverage"
)

// Rule identifies which business rule produced an item. It is the explicit
// discriminant consumers switch on; item IDs stay opaque.
type Rule string

const (
	RuleProposalAwaiting      Rule = "proposal-awaiting"
	RuleExecutionNotConfirmed Rule = "execution-not-confirmed"
	RuleIdeaNotSimulated      Rule = "idea-not-simulated"
	RuleDeliverableOverdue    Rule = "deliverable-overdue"
	RuleRatingNoFollowUp      Rule = "rating-no-follow-up"
	RuleThesisStale           Rule = "thesis-stale"
	RuleHighExpectedReturn    Rule = "high-expected-return"

	// RuleRollup marks synthesized rollup parents. The children carry the
	// originating rule; SourceRule on the parent records it too.
	RuleRollup Rule = "rollup"
)

// CTAKind distinguishes the primary call to action from secondary ones.
type CTAKind string

const (
	CTAPrimary   CTAKind = "primary"
	CTASecondary CTAKind = "secondary"
)

// CTA is an opaque call-to-action descriptor. The engine never performs
// navigation; consumers map ActionKey to a concrete effect.
type CTA struct {
	// Label is the display label, e.g. "Review proposal".
	Label string `json:"label"`

	// ActionKey is the opaque dispatch key, e.g. "OPEN_TRADE_IDEA".
	ActionKey string `json:"action_key"`

	// Payload carries action parameters (ids, filters).
	Payload map[string]string `json:"payload,omitempty"`

	// Kind is primary or secondary.
	Kind CTAKind `json:"kind"`
}

// Chip is a small label/value display pair attached to an item.
type Chip struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Refs is the bag of optional foreign-key references an item carries.
// Conflict suppression and deduplication match on these, so evaluators must
// populate every reference they know.
type Refs struct {
	AssetID        string `json:"asset_id,omitempty"`
	AssetTicker    string `json:"asset_ticker,omitempty"`
	PortfolioID    string `json:"portfolio_id,omitempty"`
	PortfolioName  string `json:"portfolio_name,omitempty"`
	TradeIdeaID    string `json:"trade_idea_id,omitempty"`
	ProposalID     string `json:"proposal_id,omitempty"`
	ProjectID      string `json:"project_id,omitempty"`
	ProjectName    string `json:"project_name,omitempty"`
	DeliverableID  string `json:"deliverable_id,omitempty"`
	RatingChangeID string `json:"rating_change_id,omitempty"`
	ThesisID       string `json:"thesis_id,omitempty"`
}

// Item is the canonical unit of signal produced by the engine.
type Item struct {
	// ID is stable across runs for the same underlying record. Dismissals
	// and optimistic UI updates key on it.
	ID string `json:"id"`

	// Rule identifies the producing business rule.
	Rule Rule `json:"rule"`

	// SourceRule is set on rollup parents to the rule of their children.
	SourceRule Rule `json:"source_rule,omitempty"`

	// Surface is action or intel.
	Surface Surface `json:"surface"`

	// Severity is the urgency color.
	Severity Severity `json:"severity"`

	// Category classifies the business concern.
	Category Category `json:"category"`

	// Tier, when set, dominates the sort order.
	Tier Tier `json:"tier,omitempty"`

	// Title is the display title.
	Title string `json:"title"`

	// TitleKey is a stable machine key independent of the display title.
	TitleKey string `json:"title_key"`

	// Description is the display detail line.
	Description string `json:"description,omitempty"`

	// Chips are label/value display pairs.
	Chips []Chip `json:"chips,omitempty"`

	// Refs are the foreign-key references this item carries.
	Refs Refs `json:"refs"`

	// CTAs are the ordered calls to action.
	CTAs []CTA `json:"ctas,omitempty"`

	// Dismissible reports whether the item may be dismissed. Action items
	// generally are not; intel items generally are.
	Dismissible bool `json:"dismissible"`

	// Children is set only on rollup parents and holds the consumed flat
	// items unmodified.
	Children []Item `json:"children,omitempty"`

	// SortScore is computed once by postprocessing and persisted on the
	// item so the UI can re-sort stably.
	SortScore float64 `json:"sort_score"`

	// CreatedAt anchors age computation for scoring.
	CreatedAt time.Time `json:"created_at"`

	// DueAt is set when the underlying signal has a deadline.
	DueAt *time.Time `json:"due_at,omitempty"`

	// RequiresDecision marks items that block on an explicit decision.
	RequiresDecision bool `json:"requires_decision,omitempty"`
}

// entityRef returns the most specific entity reference an item carries.
// Deduplication keys on it so two differently-sourced rows for the same
// underlying entity collapse.
func (it Item) entityRef() string {
	switch {
	case it.Refs.TradeIdeaID != "":
		return "idea:" + it.Refs.TradeIdeaID
	case it.Refs.DeliverableID != "":
		return "deliverable:" + it.Refs.DeliverableID
	case it.Refs.RatingChangeID != "":
		return "rating:" + it.Refs.RatingChangeID
	case it.Refs.ThesisID != "":
		return "thesis:" + it.Refs.ThesisID
	case it.Refs.AssetID != "":
		return "asset:" + it.Refs.AssetID
	default:
		return "id:" + it.ID
	}
}

// Counts summarizes how many items survived postprocessing per surface.
type Counts struct {
	Evaluated int `json:"evaluated"`
	Action    int `json:"action"`
	Intel     int `json:"intel"`
}

// Meta describes one engine run.
type Meta struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// GeneratedAt is the clock value the run evaluated against.
	GeneratedAt time.Time `json:"generated_at"`

	// Counts summarizes the run.
	Counts Counts `json:"counts"`
}

// Result is the output of one engine run. Consumers must treat it as
// immutable; every filtering helper copies.
type Result struct {
	ActionItems []Item `json:"action_items"`
	IntelItems  []Item `json:"intel_items"`
	Meta        Meta   `json:"meta"`
}

// ageDays returns whole days elapsed from t to now, floored at zero.
func ageDays(t time.Time, now time.Time) int {
	if t.IsZero() || !t.Before(now) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
