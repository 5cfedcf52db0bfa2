package decision

import (
	"fmt"
	"time"
)

// Trade-idea rules. The three rules are mutually exclusive by stage:
// EvaluateProposals only looks at deciding-stage ideas, EvaluateSimulation
// only at idea/simulating stages, and EvaluateExecution only at ideas with
// a logged accepted decision.

// EvaluateProposals fires one action item per trade idea sitting in the
// deciding stage with no outcome logged. There is no minimum-age gate;
// a proposal submitted today still fires at blue.
func EvaluateProposals(ideas []TradeIdea, now time.Time, cfg Config) []Item {
	var items []Item
	for _, idea := range ideas {
		if idea.ID == "" || idea.Stage != StageDeciding || idea.Outcome != "" {
			continue
		}
		anchor := idea.proposalAge()
		age := ageDays(anchor, now)

		severity := SeverityBlue
		switch {
		case age >= cfg.ProposalRedDays:
			severity = SeverityRed
		case age >= cfg.ProposalOrangeDays:
			severity = SeverityOrange
		}

		items = append(items, Item{
			ID:       "a1-proposal-" + idea.ID,
			Rule:     RuleProposalAwaiting,
			Surface:  SurfaceAction,
			Severity: severity,
			Category: CategoryProcess,
			Title:    "Proposal awaiting decision",
			TitleKey: "proposal-awaiting-decision",
			Description: fmt.Sprintf("%s has been waiting %d days for a decision.",
				tickerOr(idea.Ticker, "Proposal"), age),
			Chips: []Chip{
				{Label: "Portfolio", Value: idea.PortfolioName},
				{Label: "Waiting", Value: fmt.Sprintf("%d days", age)},
			},
			Refs: Refs{
				AssetID:       idea.AssetID,
				AssetTicker:   idea.Ticker,
				PortfolioID:   idea.PortfolioID,
				PortfolioName: idea.PortfolioName,
				TradeIdeaID:   idea.ID,
				ProposalID:    idea.ID,
			},
			CTAs: []CTA{
				{Label: "Review proposal", ActionKey: "OPEN_TRADE_IDEA", Payload: map[string]string{"trade_idea_id": idea.ID}, Kind: CTAPrimary},
				{Label: "Open queue", ActionKey: "OPEN_TRADE_QUEUE", Kind: CTASecondary},
			},
			Dismissible:      false,
			RequiresDecision: true,
			CreatedAt:        anchor,
		})
	}
	return items
}

// EvaluateExecution fires when a proposal was accepted but no execution has
// been logged after the confirmation grace period.
func EvaluateExecution(ideas []TradeIdea, now time.Time, cfg Config) []Item {
	var items []Item
	for _, idea := range ideas {
		if idea.ID == "" || idea.Outcome != OutcomeAccepted || !idea.ExecutedAt.IsZero() {
			continue
		}
		if idea.DecidedAt.IsZero() {
			continue
		}
		age := ageDays(idea.DecidedAt, now)
		if age < cfg.ExecutionConfirmDays {
			continue
		}

		severity := SeverityOrange
		if age >= cfg.ExecutionRedDays {
			severity = SeverityRed
		}

		items = append(items, Item{
			ID:       "a2-execution-" + idea.ID,
			Rule:     RuleExecutionNotConfirmed,
			Surface:  SurfaceAction,
			Severity: severity,
			Category: CategoryProcess,
			Title:    "Execution not confirmed",
			TitleKey: "execution-not-confirmed",
			Description: fmt.Sprintf("%s was accepted %d days ago with no execution logged.",
				tickerOr(idea.Ticker, "The trade"), age),
			Chips: []Chip{
				{Label: "Portfolio", Value: idea.PortfolioName},
				{Label: "Accepted", Value: fmt.Sprintf("%d days ago", age)},
			},
			Refs: Refs{
				AssetID:       idea.AssetID,
				AssetTicker:   idea.Ticker,
				PortfolioID:   idea.PortfolioID,
				PortfolioName: idea.PortfolioName,
				TradeIdeaID:   idea.ID,
			},
			CTAs: []CTA{
				{Label: "Log execution", ActionKey: "LOG_EXECUTION", Payload: map[string]string{"trade_idea_id": idea.ID}, Kind: CTAPrimary},
			},
			Dismissible: false,
			CreatedAt:   idea.DecidedAt,
		})
	}
	return items
}

// EvaluateSimulation fires for ideas still in the idea or simulating stage,
// prompting the analyst to run the simulation and move them forward.
func EvaluateSimulation(ideas []TradeIdea, now time.Time, cfg Config) []Item {
	var items []Item
	for _, idea := range ideas {
		if idea.ID == "" {
			continue
		}
		if idea.Stage != StageIdea && idea.Stage != StageSimulating {
			continue
		}
		age := ageDays(idea.CreatedAt, now)

		items = append(items, Item{
			ID:       "a3-simulate-" + idea.ID,
			Rule:     RuleIdeaNotSimulated,
			Surface:  SurfaceAction,
			Severity: SeverityBlue,
			Category: CategoryPrompt,
			Title:    "Idea not simulated",
			TitleKey: "idea-not-simulated",
			Description: fmt.Sprintf("%s has not been simulated (%d days old).",
				tickerOr(idea.Ticker, "The idea"), age),
			Chips: []Chip{
				{Label: "Stage", Value: string(idea.Stage)},
			},
			Refs: Refs{
				AssetID:       idea.AssetID,
				AssetTicker:   idea.Ticker,
				PortfolioID:   idea.PortfolioID,
				PortfolioName: idea.PortfolioName,
				TradeIdeaID:   idea.ID,
			},
			CTAs: []CTA{
				{Label: "Run simulation", ActionKey: "OPEN_SIMULATOR", Payload: map[string]string{"trade_idea_id": idea.ID}, Kind: CTAPrimary},
			},
			Dismissible: false,
			CreatedAt:   idea.CreatedAt,
		})
	}
	return items
}

// tickerOr returns the ticker when known, otherwise the fallback noun.
func tickerOr(ticker, fallback string) string {
	if ticker != "" {
		return ticker
	}
	return fallback
}
