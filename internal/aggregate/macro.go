package aggregate

import (
	"math"
	"sort"

	"planscore/internal/config"
	"planscore/internal/contract"
	"planscore/internal/rubric"
	"planscore/internal/score"
)

// Macro folds the 4 cluster scores into the final composite judgment:
// weighted score, cross-cutting coherence, systemic gap detection and
// strategic alignment. areas is the validated output of the area tier,
// consumed read-only for gap detection and the coherence sub-metrics.
// prior, when non-nil, enables the temporal alignment sub-score.
func Macro(clusters []score.Cluster, areas []score.Area, cfg config.Config, prior *score.Macro) (score.Macro, []string, error) {
	bounds := contract.Bounds{Min: cfg.MinScore, Max: cfg.MaxScore}

	res := contract.Validate("cluster", rubric.NumClusters, clusters,
		func(c score.Cluster) string { return c.ClusterID },
		func(c score.Cluster) float64 { return c.Score },
		rubric.ClusterIDs(), bounds)
	if !res.Passed {
		return score.Macro{}, res.Warnings, res.Err("cluster")
	}

	scoreRange := cfg.MaxScore - cfg.MinScore

	weighted := 0.0
	clusterVals := make([]float64, 0, len(clusters))
	for _, c := range clusters {
		weighted += cfg.ClusterWeights[c.ClusterID] * c.Score
		clusterVals = append(clusterVals, c.Score)
	}
	final := clamp(weighted, cfg.MinScore, cfg.MaxScore)
	normalized := (final - cfg.MinScore) / scoreRange

	breakdown := coherenceBreakdown(clusterVals, areas, scoreRange)
	coherence := cfg.CoherenceWeights.Strategic*breakdown.Strategic +
		cfg.CoherenceWeights.Operational*breakdown.Operational +
		cfg.CoherenceWeights.Institutional*breakdown.Institutional

	gaps := detectGaps(areas, clusters, cfg)

	alignment, alignBreakdown := strategicAlignment(final, clusterVals, scoreRange, prior, cfg)

	m := score.Macro{
		Score:                 final,
		ScoreNormalized:       normalized,
		QualityLevel:          cfg.Quality(normalized),
		CrossCuttingCoherence: clamp(coherence, 0, 1),
		CoherenceBreakdown:    breakdown,
		SystemicGaps:          gaps,
		GapSeverity:           worstSeverity(gaps),
		StrategicAlignment:    alignment,
		AlignmentBreakdown:    alignBreakdown,
	}
	return m, res.Warnings, nil
}

// coherenceBreakdown computes the three sub-coherences. Strategic looks at
// how closely the cluster scores agree; operational at how consistently the
// areas perform across the plan; institutional at how internally consistent
// each area's six dimensions are, averaged over areas.
func coherenceBreakdown(clusterVals []float64, areas []score.Area, scoreRange float64) score.CoherenceBreakdown {
	areaVals := make([]float64, 0, len(areas))
	instSum := 0.0
	for _, a := range areas {
		areaVals = append(areaVals, a.Score)
		instSum += pairwiseCoherence(a.DimensionScores, scoreRange)
	}
	institutional := 1.0
	if len(areas) > 0 {
		institutional = instSum / float64(len(areas))
	}
	return score.CoherenceBreakdown{
		Strategic:     pairwiseCoherence(clusterVals, scoreRange),
		Operational:   pairwiseCoherence(areaVals, scoreRange),
		Institutional: institutional,
	}
}

// detectGaps reports every area and cluster scoring below the gap
// threshold, graded severe when the shortfall exceeds the configured
// margin. Output is ordered by tier then id so repeated runs report gaps
// identically.
func detectGaps(areas []score.Area, clusters []score.Cluster, cfg config.Config) []score.SystemicGap {
	var gaps []score.SystemicGap
	add := func(tier, id string, s float64) {
		if s >= cfg.GapThreshold {
			return
		}
		shortfall := cfg.GapThreshold - s
		sev := score.GapModerate
		if shortfall > cfg.SevereGapMargin {
			sev = score.GapSevere
		}
		gaps = append(gaps, score.SystemicGap{
			EntityID:  id,
			Tier:      tier,
			Score:     s,
			Shortfall: shortfall,
			Severity:  sev,
		})
	}
	for _, a := range areas {
		add("area", a.AreaID, a.Score)
	}
	for _, c := range clusters {
		add("cluster", c.ClusterID, c.Score)
	}
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Tier != gaps[j].Tier {
			return gaps[i].Tier < gaps[j].Tier
		}
		return gaps[i].EntityID < gaps[j].EntityID
	})
	return gaps
}

func worstSeverity(gaps []score.SystemicGap) score.GapSeverity {
	worst := score.GapSeverity("")
	for _, g := range gaps {
		if g.Severity == score.GapSevere {
			return score.GapSevere
		}
		worst = score.GapModerate
	}
	return worst
}

// strategicAlignment combines vertical (macro↔cluster consistency),
// horizontal (cross-cluster spread) and temporal (stability against a
// prior run) sub-scores with equal weight. Without a prior run the
// temporal sub-score is held at a neutral 1.0 and flagged, rather than
// inventing history.
func strategicAlignment(final float64, clusterVals []float64, scoreRange float64, prior *score.Macro, cfg config.Config) (float64, score.AlignmentBreakdown) {
	vertSum := 0.0
	for _, v := range clusterVals {
		vertSum += math.Abs(v-final) / scoreRange
	}
	vertical := 1.0
	if len(clusterVals) > 0 {
		vertical = clamp(1.0-vertSum/float64(len(clusterVals)), 0, 1)
	}

	horizontal := 1.0
	if len(clusterVals) > 1 {
		lo, hi := clusterVals[0], clusterVals[0]
		for _, v := range clusterVals[1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		horizontal = clamp(1.0-(hi-lo)/scoreRange, 0, 1)
	}

	temporal := 1.0
	neutral := true
	if prior != nil {
		temporal = clamp(1.0-math.Abs(final-prior.Score)/scoreRange, 0, 1)
		neutral = false
	}

	breakdown := score.AlignmentBreakdown{
		Vertical:        vertical,
		Horizontal:      horizontal,
		Temporal:        temporal,
		TemporalNeutral: neutral,
	}
	return clamp((vertical+horizontal+temporal)/3.0, 0, 1), breakdown
}
