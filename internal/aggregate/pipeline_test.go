package aggregate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"planscore/internal/contract"
	"planscore/internal/rubric"
	"planscore/internal/verify"
)

func TestRunFullPipeline(t *testing.T) {
	leaves := makeLeaves(t, func(n int) float64 {
		return 0.5 + 2.0*float64(n%11)/10.0
	})

	res, err := Run(context.Background(), leaves, defaultCfg(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Dimensions) != rubric.NumCells {
		t.Errorf("dimensions = %d, want %d", len(res.Dimensions), rubric.NumCells)
	}
	if len(res.Areas) != rubric.NumAreas {
		t.Errorf("areas = %d, want %d", len(res.Areas), rubric.NumAreas)
	}
	if len(res.Clusters) != rubric.NumClusters {
		t.Errorf("clusters = %d, want %d", len(res.Clusters), rubric.NumClusters)
	}
	if res.Macro.Score < defaultCfg().MinScore || res.Macro.Score > defaultCfg().MaxScore {
		t.Errorf("macro score %v outside bounds", res.Macro.Score)
	}
	if res.Audit.RunID == "" {
		t.Error("run id missing")
	}
}

func TestRunAuditTraceVerifies(t *testing.T) {
	leaves := uniformLeaves(t, 2.0)
	res, err := Run(context.Background(), leaves, defaultCfg(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantTiers := []string{"leaf", "dimension", "area", "cluster", "macro"}
	if len(res.Audit.Steps) != len(wantTiers) {
		t.Fatalf("got %d audit steps, want %d: %v", len(res.Audit.Steps), len(wantTiers), res.Audit.Steps)
	}
	for i, tier := range wantTiers {
		if !strings.HasPrefix(res.Audit.Steps[i], "tier="+tier+" ") {
			t.Errorf("step %d = %q, want tier %s", i, res.Audit.Steps[i], tier)
		}
	}

	if !verify.VerifyTrace(res.Audit.Steps, res.Audit.MerkleRoot) {
		t.Error("audit trace does not verify against its own root")
	}
	tampered := append([]string(nil), res.Audit.Steps...)
	tampered[2] = strings.Replace(tampered[2], "count=10", "count=11", 1)
	if verify.VerifyTrace(tampered, res.Audit.MerkleRoot) {
		t.Error("tampered trace must not verify")
	}
}

func TestRunPermutationInvariant(t *testing.T) {
	leaves := makeLeaves(t, func(n int) float64 {
		return 0.3 + 2.4*float64(n%13)/12.0
	})

	base, err := Run(context.Background(), leaves, defaultCfg(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Run ids are fresh per run; everything else, the audit trace
	// included, must be bit-identical under input permutation.
	ignoreRunID := cmpopts.IgnoreFields(AuditArtifact{}, "RunID")
	for seed := int64(1); seed <= 5; seed++ {
		shuffled, err := Run(context.Background(), shuffleLeaves(leaves, seed), defaultCfg(), nil)
		if err != nil {
			t.Fatalf("Run(seed %d): %v", seed, err)
		}
		if diff := cmp.Diff(base, shuffled, ignoreRunID); diff != "" {
			t.Fatalf("seed %d: result differs under permutation (-base +shuffled):\n%s", seed, diff)
		}
	}
}

func TestRunFailsFastOnShortBatch(t *testing.T) {
	leaves := uniformLeaves(t, 2.0)
	_, err := Run(context.Background(), leaves[:299], defaultCfg(), nil)
	if err == nil {
		t.Fatal("expected cardinality failure")
	}
	if !strings.Contains(err.Error(), "dimension tier") {
		t.Errorf("error must name the failing tier: %v", err)
	}
	var tagged *contract.Error
	if !errors.As(err, &tagged) || tagged.Kind != contract.KindCardinality {
		t.Fatalf("expected cardinality error, got %v", err)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := defaultCfg()
	cfg.ClusterWeights["CL01"] = 0.9 // weights no longer sum to 1

	_, err := Run(context.Background(), uniformLeaves(t, 2.0), cfg, nil)
	var tagged *contract.Error
	if !errors.As(err, &tagged) || tagged.Kind != contract.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunTemporalAlignmentUsesPrior(t *testing.T) {
	leaves := uniformLeaves(t, 2.0)
	cold, err := Run(context.Background(), leaves, defaultCfg(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !cold.Macro.AlignmentBreakdown.TemporalNeutral {
		t.Error("first run must flag the temporal sub-score neutral")
	}

	warm, err := Run(context.Background(), leaves, defaultCfg(), &cold.Macro)
	if err != nil {
		t.Fatalf("Run with prior: %v", err)
	}
	if warm.Macro.AlignmentBreakdown.TemporalNeutral {
		t.Error("run with prior must not flag the temporal sub-score neutral")
	}
	if warm.Macro.AlignmentBreakdown.Temporal != 1.0 {
		t.Errorf("identical reruns must be temporally stable, got %v",
			warm.Macro.AlignmentBreakdown.Temporal)
	}
}
