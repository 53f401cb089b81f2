package aggregate

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"planscore/internal/config"
	"planscore/internal/contract"
	"planscore/internal/logging"
	"planscore/internal/score"
	"planscore/internal/verify"
)

// AuditArtifact is the exported proof of one pipeline run: the ordered
// execution step list and the Merkle root committing to it. A third party
// replays the steps through verify.VerifyTrace to confirm the reported
// result came from the claimed inputs in the claimed order.
type AuditArtifact struct {
	RunID      string   `json:"run_id"`
	MerkleRoot string   `json:"merkle_root"`
	Steps      []string `json:"steps"`
}

// Result carries the macro score plus every intermediate tier set for audit.
type Result struct {
	Dimensions []score.Dimension `json:"dimensions"`
	Areas      []score.Area      `json:"areas"`
	Clusters   []score.Cluster   `json:"clusters"`
	Macro      score.Macro       `json:"macro"`
	Warnings   []string          `json:"warnings,omitempty"`
	Audit      AuditArtifact     `json:"audit"`
}

// Run executes the full four-tier fold over one batch of 300 leaf scores.
// Tiers are separated by hard barriers: the next tier starts only after the
// previous tier's output has passed the contract validator. A hermeticity
// failure at any barrier aborts the whole run; partial results never
// propagate downstream. prior, when non-nil, is the previous run's macro
// score and enables the temporal alignment sub-score.
func Run(ctx context.Context, leaves []score.Leaf, cfg config.Config, prior *score.Macro) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, contract.NewError(contract.KindConfiguration, "config", err.Error())
	}

	logger := logging.New("pipeline")
	runID := uuid.NewString()

	var steps []string
	trace := func(tier string, count int, digest string) {
		steps = append(steps, fmt.Sprintf("tier=%s count=%d digest=%s", tier, count, digest))
	}

	leafVals := make([]float64, 0, len(leaves))
	for _, l := range leaves {
		leafVals = append(leafVals, l.Score)
	}
	trace("leaf", len(leaves), verify.CanonicalDigest(leafVals, nil))

	dims, warnings, err := Dimensions(ctx, leaves, cfg)
	if err != nil {
		return nil, fmt.Errorf("dimension tier: %w", err)
	}
	dimVals := scoresOf(dims, func(d score.Dimension) float64 { return d.Score })
	trace("dimension", len(dims), verify.CanonicalDigest(dimVals, nil))
	logger.Info("tier complete", "tier", "dimension", "count", len(dims), "run_id", runID)

	areas, areaWarnings, err := Areas(ctx, dims, cfg)
	if err != nil {
		return nil, fmt.Errorf("area tier: %w", err)
	}
	warnings = append(warnings, areaWarnings...)
	areaVals := scoresOf(areas, func(a score.Area) float64 { return a.Score })
	trace("area", len(areas), verify.CanonicalDigest(areaVals, nil))
	logger.Info("tier complete", "tier", "area", "count", len(areas), "run_id", runID)

	clusters, clusterWarnings, err := Clusters(ctx, areas, cfg)
	if err != nil {
		return nil, fmt.Errorf("cluster tier: %w", err)
	}
	warnings = append(warnings, clusterWarnings...)
	clusterVals := scoresOf(clusters, func(c score.Cluster) float64 { return c.Score })
	trace("cluster", len(clusters), verify.CanonicalDigest(clusterVals, nil))
	logger.Info("tier complete", "tier", "cluster", "count", len(clusters), "run_id", runID)

	macro, macroWarnings, err := Macro(clusters, areas, cfg, prior)
	if err != nil {
		return nil, fmt.Errorf("macro tier: %w", err)
	}
	warnings = append(warnings, macroWarnings...)
	trace("macro", 1, verify.CanonicalDigest([]float64{macro.Score}, nil))
	logger.Info("run complete", "run_id", runID,
		"score", macro.Score, "quality", macro.QualityLevel, "gaps", len(macro.SystemicGaps))

	return &Result{
		Dimensions: dims,
		Areas:      areas,
		Clusters:   clusters,
		Macro:      macro,
		Warnings:   warnings,
		Audit: AuditArtifact{
			RunID:      runID,
			MerkleRoot: verify.MerkleRoot(steps),
			Steps:      steps,
		},
	}, nil
}

func scoresOf[T any](items []T, f func(T) float64) []float64 {
	vals := make([]float64, 0, len(items))
	for _, it := range items {
		vals = append(vals, f(it))
	}
	return vals
}
