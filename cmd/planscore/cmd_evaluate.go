package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planscore/internal/aggregate"
	"planscore/internal/config"
	"planscore/internal/display"
	"planscore/internal/score"
)

var (
	evalScoresPath string
	evalConfigPath string
	evalPriorPath  string
	evalOutPath    string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the four-tier aggregation over a leaf score batch",
	Long: "Evaluate reads a JSON batch of 300 leaf scores, folds it through the\n" +
		"dimension, area, cluster and macro tiers, prints a summary and writes\n" +
		"the full result with its audit artifact.",
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evalScoresPath, "scores", "", "path to leaf scores JSON (required)")
	evaluateCmd.Flags().StringVar(&evalConfigPath, "config", "", "path to aggregation config YAML (default: built-in)")
	evaluateCmd.Flags().StringVar(&evalPriorPath, "prior", "", "path to a previous result JSON for temporal alignment")
	evaluateCmd.Flags().StringVar(&evalOutPath, "out", "", "path to write the result + audit artifact JSON")
	_ = evaluateCmd.MarkFlagRequired("scores")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	leaves, err := loadLeaves(evalScoresPath)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if evalConfigPath != "" {
		cfg, err = config.Load(evalConfigPath)
		if err != nil {
			return err
		}
	}

	var prior *score.Macro
	if evalPriorPath != "" {
		prev, err := loadResult(evalPriorPath)
		if err != nil {
			return fmt.Errorf("load prior result: %w", err)
		}
		prior = &prev.Macro
	}

	res, err := aggregate.Run(cmd.Context(), leaves, cfg, prior)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), display.Summary(res))

	if evalOutPath != "" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if err := os.WriteFile(evalOutPath, data, 0o644); err != nil {
			return fmt.Errorf("write result %q: %w", evalOutPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Result written to %s\n", evalOutPath)
	}

	return nil
}

func loadLeaves(path string) ([]score.Leaf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scores %q: %w", path, err)
	}
	var leaves []score.Leaf
	if err := json.Unmarshal(data, &leaves); err != nil {
		return nil, fmt.Errorf("parse scores %q: %w", path, err)
	}
	return leaves, nil
}

func loadResult(path string) (*aggregate.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read result %q: %w", path, err)
	}
	var res aggregate.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parse result %q: %w", path, err)
	}
	return &res, nil
}
