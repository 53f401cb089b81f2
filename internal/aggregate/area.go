package aggregate

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"planscore/internal/config"
	"planscore/internal/contract"
	"planscore/internal/rubric"
	"planscore/internal/score"
)

// Areas folds the 60 dimension scores into the 10 area-tier records. Like
// the dimension tier this is a plain unweighted-or-weighted average; no
// dispersion penalty applies here. The dimension set must be hermetic over
// the 60-cell grid before any area worker starts.
func Areas(ctx context.Context, dims []score.Dimension, cfg config.Config) ([]score.Area, []string, error) {
	bounds := contract.Bounds{Min: cfg.MinScore, Max: cfg.MaxScore}

	res := contract.Validate("dimension", rubric.NumCells, dims,
		score.Dimension.CellKey,
		func(d score.Dimension) float64 { return d.Score },
		rubric.CellKeys(), bounds)
	if !res.Passed {
		return nil, res.Warnings, res.Err("dimension")
	}

	byArea := make(map[string][]score.Dimension, rubric.NumAreas)
	for _, d := range dims {
		byArea[d.PolicyAreaID] = append(byArea[d.PolicyAreaID], d)
	}

	areaIDs := rubric.AreaIDs()
	areas := make([]score.Area, len(areaIDs))

	var warnMu sync.Mutex
	warnings := append([]string(nil), res.Warnings...)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(defaultWorkers)
	for i, areaID := range areaIDs {
		g.Go(func() error {
			group := byArea[areaID]
			// Keep dimension order canonical inside the record.
			vals := make([]float64, rubric.NumDimensions)
			for _, d := range group {
				for j, dimID := range rubric.DimensionIDs() {
					if d.DimensionID == dimID {
						vals[j] = d.Score
					}
				}
			}

			folded := weightedFold(vals, nil)
			if folded < cfg.MinScore || folded > cfg.MaxScore {
				warnMu.Lock()
				warnings = append(warnings, fmt.Sprintf(
					"area %s: folded score %.6f clamped to bounds", areaID, folded))
				warnMu.Unlock()
				folded = clamp(folded, cfg.MinScore, cfg.MaxScore)
			}

			areas[i] = score.Area{
				AreaID:          areaID,
				Score:           folded,
				DimensionScores: vals,
				ClusterID:       rubric.ClusterOf(areaID),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, warnings, err
	}

	return areas, warnings, nil
}
