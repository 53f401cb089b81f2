package aggregate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"planscore/internal/config"
	"planscore/internal/contract"
	"planscore/internal/rubric"
	"planscore/internal/score"
)

// classifyDispersion maps a coefficient of variation to its scenario and
// base multiplier.
func classifyDispersion(cv float64, cfg config.Config) (score.DispersionScenario, float64) {
	switch {
	case cv < cfg.CVConvergence:
		return score.DispersionConvergence, cfg.PenaltyMultipliers.Convergence
	case cv < cfg.CVModerate:
		return score.DispersionModerate, cfg.PenaltyMultipliers.Moderate
	case cv < cfg.CVHigh:
		return score.DispersionHigh, cfg.PenaltyMultipliers.High
	default:
		return score.DispersionExtreme, cfg.PenaltyMultipliers.Extreme
	}
}

// penaltyMultiplier applies the extreme-scenario adjustments to the base
// multiplier. The shape factor and the bimodal boost stack
// multiplicatively: m = extreme × shape, then ×boost when the score
// distribution is bimodal. Both factors are >= 1, so the extreme multiplier
// always dominates the high-scenario one and dispersion monotonicity holds
// by construction.
func penaltyMultiplier(scenario score.DispersionScenario, base float64, vals []float64, cfg config.Config) float64 {
	if scenario != score.DispersionExtreme {
		return base
	}
	m := base * cfg.ExtremeShapeFactor
	if isBimodal(vals, cfg.BimodalGap) {
		m *= cfg.BimodalBoost
	}
	return m
}

// foldCluster runs the dispersion-adaptive penalty model over one cluster's
// 2-3 area scores. The computation never raises: degenerate all-identical
// inputs yield CV = 0 and a near-zero penalty.
func foldCluster(clusterID string, members []score.Area, cfg config.Config) score.Cluster {
	vals := make([]float64, 0, len(members))
	ids := make([]string, 0, len(members))
	for _, a := range members {
		vals = append(vals, a.Score)
		ids = append(ids, a.AreaID)
	}

	m := mean(vals)
	std := stddev(vals)
	cv := coefficientOfVariation(vals)

	scenario, base := classifyDispersion(cv, cfg)
	multiplier := penaltyMultiplier(scenario, base, vals, cfg)
	penalty := cfg.BasePenaltyWeight * multiplier

	// Weakest area, ties broken by area id ascending — the same rule the
	// total-ordering contract uses for reporting.
	weakest := members[0]
	for _, a := range members[1:] {
		if a.Score < weakest.Score || (a.Score == weakest.Score && a.AreaID < weakest.AreaID) {
			weakest = a
		}
	}

	lower, upper := normalCI95(m, std, len(vals))

	return score.Cluster{
		ClusterID:          clusterID,
		Areas:              ids,
		Score:              clamp(m-penalty, cfg.MinScore, cfg.MaxScore),
		Coherence:          pairwiseCoherence(vals, cfg.MaxScore-cfg.MinScore),
		Variance:           std * std,
		DispersionScenario: scenario,
		PenaltyApplied:     penalty,
		WeakestAreaID:      weakest.AreaID,
		ScoreStd:           std,
		ConfidenceInterval95: score.ConfidenceInterval{
			Lower: clamp(lower, cfg.MinScore, cfg.MaxScore),
			Upper: clamp(upper, cfg.MinScore, cfg.MaxScore),
		},
	}
}

// Clusters folds the 10 area scores into the 4 cluster-tier records,
// applying the dispersion-adaptive penalty per cluster. The area set must
// be hermetic over the 10-area universe before any worker starts.
func Clusters(ctx context.Context, areas []score.Area, cfg config.Config) ([]score.Cluster, []string, error) {
	bounds := contract.Bounds{Min: cfg.MinScore, Max: cfg.MaxScore}

	res := contract.Validate("area", rubric.NumAreas, areas,
		func(a score.Area) string { return a.AreaID },
		func(a score.Area) float64 { return a.Score },
		rubric.AreaIDs(), bounds)
	if !res.Passed {
		return nil, res.Warnings, res.Err("area")
	}

	byArea := make(map[string]score.Area, len(areas))
	for _, a := range areas {
		byArea[a.AreaID] = a
	}
	composition := rubric.ClusterComposition()

	clusterIDs := rubric.ClusterIDs()
	clusters := make([]score.Cluster, len(clusterIDs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(defaultWorkers)
	for i, clusterID := range clusterIDs {
		g.Go(func() error {
			memberIDs := composition[clusterID]
			members := make([]score.Area, 0, len(memberIDs))
			for _, id := range memberIDs {
				members = append(members, byArea[id])
			}
			clusters[i] = foldCluster(clusterID, members, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, res.Warnings, err
	}

	return clusters, res.Warnings, nil
}
