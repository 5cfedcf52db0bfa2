package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/crestlinelabs/decisiond/internal/attention"
	"github.com/crestlinelabs/decisiond/internal/config"
	"github.com/crestlinelabs/decisiond/internal/decision"
	"github.com/crestlinelabs/decisiond/internal/snapshot"
)

var (
	evaluateAt   string
	evaluateFeed bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <snapshot.json>",
	Short: "Run the engine once over a snapshot and print the result",
	Long: `Evaluate the decision engine over a snapshot file and print the result
as JSON to stdout. With --feed the banded attention feed is printed instead
of the raw engine result.

Examples:
  # Print the engine result
  decisiond evaluate records.json

  # Print the attention feed, evaluated at a fixed clock value
  decisiond evaluate --feed --at 2026-03-01T09:00:00Z records.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateAt, "at", "", "evaluate at this RFC3339 time instead of now")
	evaluateCmd.Flags().BoolVar(&evaluateFeed, "feed", false, "print the banded attention feed instead of the engine result")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	now := time.Now()
	if evaluateAt != "" {
		now, err = time.Parse(time.RFC3339, evaluateAt)
		if err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
	}

	f, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}

	engine, err := decision.NewEngine(cfg.Engine)
	if err != nil {
		return err
	}
	result := engine.Evaluate(f.Records, now)

	var out any = result
	if evaluateFeed {
		engineItems := append(
			attention.AdaptDecisionItems(result.ActionItems, now),
			attention.AdaptDecisionItems(result.IntelItems, now)...,
		)
		trackerItems := attention.AdaptSourceItems(f.AttentionItems, now)
		merged := attention.MergeAndDedup(engineItems, trackerItems)
		out = attention.SplitBands(merged, now)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
