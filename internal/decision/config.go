package decision

import "fmt"

// RollupRule configures rollup grouping for one rule.
type RollupRule struct {
	// MinCount is the minimum number of matching items needed before they
	// collapse into a rollup parent. Counts below it stay flat.
	MinCount int `koanf:"min_count" json:"min_count"`
}

// Config centralizes every rule threshold. The thresholds are deliberately
// explicit and individually configurable rather than buried in the rules.
type Config struct {
	// ProposalOrangeDays and ProposalRedDays are the waiting-age boundaries
	// for proposals awaiting a decision. Below orange the item is blue;
	// there is no minimum age, brand-new proposals still fire.
	ProposalOrangeDays int `koanf:"proposal_orange_days" json:"proposal_orange_days"`
	ProposalRedDays    int `koanf:"proposal_red_days" json:"proposal_red_days"`

	// ExecutionConfirmDays is how long after an accepted decision the
	// engine waits before flagging an unconfirmed execution.
	ExecutionConfirmDays int `koanf:"execution_confirm_days" json:"execution_confirm_days"`

	// ExecutionRedDays escalates an unconfirmed execution to red.
	ExecutionRedDays int `koanf:"execution_red_days" json:"execution_red_days"`

	// DeliverableRedDays escalates an overdue deliverable to red.
	DeliverableRedDays int `koanf:"deliverable_red_days" json:"deliverable_red_days"`

	// DeliverableCap bounds how many overdue-deliverable items one run
	// surfaces. The most overdue win.
	DeliverableCap int `koanf:"deliverable_cap" json:"deliverable_cap"`

	// RatingFollowUpDays is the window after a rating change during which
	// a missing follow-up idea fires.
	RatingFollowUpDays int `koanf:"rating_follow_up_days" json:"rating_follow_up_days"`

	// Thesis staleness boundaries in days since last update.
	ThesisYellowDays int `koanf:"thesis_yellow_days" json:"thesis_yellow_days"`
	ThesisOrangeDays int `koanf:"thesis_orange_days" json:"thesis_orange_days"`
	ThesisRedDays    int `koanf:"thesis_red_days" json:"thesis_red_days"`

	// ExpectedReturnThreshold is the fractional expected return above which
	// an asset without an open idea surfaces as intel.
	ExpectedReturnThreshold float64 `koanf:"expected_return_threshold" json:"expected_return_threshold"`

	// DashboardLimit bounds the curated dashboard selection.
	DashboardLimit int `koanf:"dashboard_limit" json:"dashboard_limit"`

	// Rollups maps rule to rollup configuration. Rules without an entry
	// never roll up.
	Rollups map[Rule]RollupRule `koanf:"rollups" json:"rollups"`
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		ProposalOrangeDays:      5,
		ProposalRedDays:         10,
		ExecutionConfirmDays:    2,
		ExecutionRedDays:        7,
		DeliverableRedDays:      3,
		DeliverableCap:          4,
		RatingFollowUpDays:      14,
		ThesisYellowDays:        90,
		ThesisOrangeDays:        135,
		ThesisRedDays:           180,
		ExpectedReturnThreshold: 0.15,
		DashboardLimit:          8,
		Rollups: map[Rule]RollupRule{
			RuleProposalAwaiting:   {MinCount: 2},
			RuleThesisStale:        {MinCount: 3},
			RuleDeliverableOverdue: {MinCount: 3},
			RuleIdeaNotSimulated:   {MinCount: 3},
		},
	}
}

// Validate checks the thresholds for internal consistency.
func (c Config) Validate() error {
	if c.ProposalRedDays < c.ProposalOrangeDays {
		return fmt.Errorf("proposal_red_days (%d) must be >= proposal_orange_days (%d)", c.ProposalRedDays, c.ProposalOrangeDays)
	}
	if c.ThesisYellowDays > c.ThesisOrangeDays || c.ThesisOrangeDays > c.ThesisRedDays {
		return fmt.Errorf("thesis staleness boundaries must be ordered: yellow %d <= orange %d <= red %d", c.ThesisYellowDays, c.ThesisOrangeDays, c.ThesisRedDays)
	}
	if c.DeliverableCap < 1 {
		return fmt.Errorf("deliverable_cap must be at least 1, got %d", c.DeliverableCap)
	}
	if c.DashboardLimit < 1 {
		return fmt.Errorf("dashboard_limit must be at least 1, got %d", c.DashboardLimit)
	}
	for rule, rc := range c.Rollups {
		if rc.MinCount < 2 {
			return fmt.Errorf("rollup min_count for %s must be at least 2, got %d", rule, rc.MinCount)
		}
	}
	return nil
}
