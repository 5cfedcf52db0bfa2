package attention

import "time"

// Band is the urgency band a feed item lands in.
type Band string

const (
	// BandNow holds items needing attention immediately.
	BandNow Band = "now"

	// BandSoon holds items with a near deadline or medium urgency.
	BandSoon Band = "soon"

	// BandAware holds pure-awareness items. Nothing in this band ever
	// demands action.
	BandAware Band = "aware"
)

// Severity is the feed-level urgency scale, coarser than the engine's
// five-color scale.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

var feedSeverityRank = map[Severity]int{
	SeverityHigh:   3,
	SeverityMedium: 2,
	SeverityLow:    1,
}

// Rank returns the numeric order of the severity. Unknown severities rank 0.
func (s Severity) Rank() int {
	return feedSeverityRank[s]
}

// Type classifies a feed item. Signal, notification, and alignment are
// awareness-only types: they can never leave the AWARE band.
type Type string

const (
	TypeDecision     Type = "decision"
	TypeDeliverable  Type = "deliverable"
	TypeResearch     Type = "research"
	TypeProject      Type = "project"
	TypeTask         Type = "task"
	TypeSignal       Type = "signal"
	TypeNotification Type = "notification"
	TypeAlignment    Type = "alignment"
)

// awarenessOnly reports whether the type is pinned to the AWARE band.
func awarenessOnly(t Type) bool {
	return t == TypeSignal || t == TypeNotification || t == TypeAlignment
}

// SourceSystem tags which system produced a feed item, for dedup and
// debugging.
type SourceSystem string

const (
	SourceEngine  SourceSystem = "engine"
	SourceTracker SourceSystem = "attention"
)

// Action is an opaque call-to-action on a feed item. The feed never
// dispatches; consumers map ActionKey to an effect.
type Action struct {
	Label     string            `json:"label"`
	ActionKey string            `json:"action_key"`
	Payload   map[string]string `json:"payload,omitempty"`
	Kind      string            `json:"kind"`
}

// Related is the bag of entity references a feed item carries, used for
// cross-system dedup and scoped views.
type Related struct {
	AssetID       string `json:"asset_id,omitempty"`
	AssetTicker   string `json:"asset_ticker,omitempty"`
	PortfolioID   string `json:"portfolio_id,omitempty"`
	TradeIdeaID   string `json:"trade_idea_id,omitempty"`
	ProjectID     string `json:"project_id,omitempty"`
	DeliverableID string `json:"deliverable_id,omitempty"`
}

// FeedItem is the normalized feed shape both source systems converge on.
type FeedItem struct {
	ID       string   `json:"id"`
	Type     Type     `json:"type"`
	Title    string   `json:"title"`
	Detail   string   `json:"detail,omitempty"`
	Severity Severity `json:"severity"`

	// Category carries the engine category for engine-sourced items
	// ("risk", "process", ...). Tracker items leave it empty.
	Category string `json:"category,omitempty"`

	// Band is assigned by AssignBand; adapters leave it empty.
	Band Band `json:"band,omitempty"`

	// Urgency flags derived by the adapters. Overdue and DueSoon are
	// mutually exclusive.
	Overdue          bool `json:"overdue,omitempty"`
	DueSoon          bool `json:"due_soon,omitempty"`
	RequiresDecision bool `json:"requires_decision,omitempty"`
	Blocking         bool `json:"blocking,omitempty"`

	// Dismissible mirrors the engine flag; tracker items are dismissible.
	Dismissible bool `json:"dismissible"`

	DueAt     *time.Time `json:"due_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Actions []Action `json:"actions,omitempty"`
	Related Related  `json:"related,omitempty"`

	// SourceSystem tags the producing system for dedup.
	SourceSystem SourceSystem `json:"source_system"`

	// Children holds adapted rollup children.
	Children []FeedItem `json:"children,omitempty"`
}

// SourceItem is the raw shape produced by the standalone attention tracker
// (projects, notifications, team alignment). The decision engine never
// produces these.
type SourceItem struct {
	ID               string     `json:"id"`
	Type             Type       `json:"type"`
	Title            string     `json:"title"`
	Detail           string     `json:"detail,omitempty"`
	Severity         Severity   `json:"severity"`
	DueAt            *time.Time `json:"due_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Blocking         bool       `json:"blocking,omitempty"`
	RequiresDecision bool       `json:"requires_decision,omitempty"`
	Related          Related    `json:"related,omitempty"`
}

// BandSummary aggregates one band for display.
type BandSummary struct {
	Band Band `json:"band"`

	// Count is the number of items in the band.
	Count int `json:"count"`

	// MaxAgeDays is the age of the oldest item.
	MaxAgeDays int `json:"max_age_days"`

	// Breakdown is a display string of "<n> <label>" segments joined by
	// a middle dot, most numerous first.
	Breakdown string `json:"breakdown"`

	// EarliestDue is the minimum due date across items. Populated for the
	// SOON band only.
	EarliestDue *time.Time `json:"earliest_due,omitempty"`
}
