package decision

import "time"

// Raw record schemas consumed by the evaluators. Each struct carries only
// the fields the rules read; the surrounding data layer owns everything
// else. Zero values mean "unknown" and cause the relevant rule not to fire.

// IdeaStage is the lifecycle stage of a trade idea.
type IdeaStage string

const (
	StageIdea       IdeaStage = "idea"
	StageSimulating IdeaStage = "simulating"
	StageDeciding   IdeaStage = "deciding"
	StageExecuted   IdeaStage = "executed"
	StageClosed     IdeaStage = "closed"
)

// DecisionOutcome is the logged outcome of a proposal decision.
type DecisionOutcome string

const (
	OutcomeAccepted DecisionOutcome = "accepted"
	OutcomeRejected DecisionOutcome = "rejected"
)

// TradeIdea is a trade idea or proposal record.
type TradeIdea struct {
	ID            string          `json:"id"`
	AssetID       string          `json:"asset_id"`
	Ticker        string          `json:"ticker"`
	PortfolioID   string          `json:"portfolio_id"`
	PortfolioName string          `json:"portfolio_name"`
	Stage         IdeaStage       `json:"stage"`
	CreatedAt     time.Time       `json:"created_at"`
	ProposedAt    time.Time       `json:"proposed_at"`
	DecidedAt     time.Time       `json:"decided_at"`
	Outcome       DecisionOutcome `json:"outcome,omitempty"`
	ExecutedAt    time.Time       `json:"executed_at"`
}

// proposalAge anchors the "waiting for a decision" clock. ProposedAt is
// when the idea entered the deciding stage; older records only carry
// CreatedAt.
func (t TradeIdea) proposalAge() time.Time {
	if !t.ProposedAt.IsZero() {
		return t.ProposedAt
	}
	return t.CreatedAt
}

// RatingStance buckets analyst ratings into directional stances so swing
// size can be compared across rating vocabularies.
type RatingStance int

const (
	StanceSell    RatingStance = -1
	StanceNeutral RatingStance = 0
	StanceBuy     RatingStance = 1
)

// stanceOf maps a rating label to its stance. Unknown labels are neutral.
func stanceOf(rating string) RatingStance {
	switch rating {
	case "BUY", "STRONG_BUY", "OVERWEIGHT", "OUTPERFORM":
		return StanceBuy
	case "SELL", "STRONG_SELL", "UNDERWEIGHT", "UNDERPERFORM":
		return StanceSell
	default:
		return StanceNeutral
	}
}

// RatingChange is one row of rating-change history for an asset.
type RatingChange struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"asset_id"`
	Ticker    string    `json:"ticker"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// Thesis is the research thesis record for an asset.
type Thesis struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"asset_id"`
	Ticker    string    `json:"ticker"`
	Sector    string    `json:"sector,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Deliverable is one deliverable inside a project.
type Deliverable struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	DueAt time.Time `json:"due_at"`
	Done  bool      `json:"done"`
}

// Project is a research project with deliverables.
type Project struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Deliverables []Deliverable `json:"deliverables,omitempty"`
}

// Asset is the minimal asset record the intel rules read.
type Asset struct {
	ID             string    `json:"id"`
	Ticker         string    `json:"ticker"`
	Name           string    `json:"name,omitempty"`
	ExpectedReturn float64   `json:"expected_return"`
	ReturnAsOf     time.Time `json:"return_as_of"`
}

// Snapshot is the full data snapshot one engine run evaluates. The engine
// never mutates it.
type Snapshot struct {
	TradeIdeas    []TradeIdea    `json:"trade_ideas,omitempty"`
	RatingChanges []RatingChange `json:"rating_changes,omitempty"`
	Theses        []Thesis       `json:"theses,omitempty"`
	Projects      []Project      `json:"projects,omitempty"`
	Assets        []Asset        `json:"assets,omitempty"`
}
