package decision

import (
	"time"

	"github.com/google/uuid"
)

// Engine runs every evaluator over a snapshot and postprocesses the
// combined output. It holds only configuration; Evaluate is a pure
// function of the snapshot and the clock.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given thresholds. A zero-value
// rollup table disables rollups, so callers normally start from
// DefaultConfig.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine thresholds.
func (e *Engine) Config() Config {
	return e.cfg
}

// Evaluate runs all rules against the snapshot at the given clock value and
// returns the postprocessed result. A zero now defaults to time.Now().
// Evaluate never fails: records missing the fields a rule needs simply do
// not fire that rule.
func (e *Engine) Evaluate(snap Snapshot, now time.Time) Result {
	if now.IsZero() {
		now = time.Now()
	}

	var items []Item
	items = append(items, EvaluateProposals(snap.TradeIdeas, now, e.cfg)...)
	items = append(items, EvaluateExecution(snap.TradeIdeas, now, e.cfg)...)
	items = append(items, EvaluateSimulation(snap.TradeIdeas, now, e.cfg)...)
	items = append(items, EvaluateDeliverables(snap.Projects, now, e.cfg)...)
	items = append(items, EvaluateRatingFollowUp(snap.RatingChanges, snap.TradeIdeas, now, e.cfg)...)
	items = append(items, EvaluateThesisStaleness(snap.Theses, now, e.cfg)...)
	items = append(items, EvaluateExpectedReturn(snap.Assets, snap.TradeIdeas, now, e.cfg)...)

	evaluated := len(items)
	action, intel := Postprocess(items, now, e.cfg)

	return Result{
		ActionItems: action,
		IntelItems:  intel,
		Meta: Meta{
			RunID:       uuid.New().String(),
			GeneratedAt: now,
			Counts: Counts{
				Evaluated: evaluated,
				Action:    len(action),
				Intel:     len(intel),
			},
		},
	}
}
