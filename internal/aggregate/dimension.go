// Package aggregate implements the four-tier fold of the evaluation
// pipeline: 300 leaf scores → 60 dimension scores → 10 area scores → 4
// cluster scores → 1 macro score. Every tier validates its input contract
// before folding, fans its cells out over parallel workers, and produces
// immutable value records.
package aggregate

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"planscore/internal/config"
	"planscore/internal/contract"
	"planscore/internal/rubric"
	"planscore/internal/score"
)

// defaultWorkers bounds tier fan-out when the caller does not say otherwise.
const defaultWorkers = 8

// weightedFold combines child scores with the given weights, or with the
// arithmetic mean when weights is nil. Non-negativity and the sum-to-one
// property are checked at config load, not re-litigated per cell.
func weightedFold(vals, weights []float64) float64 {
	if weights == nil {
		return mean(vals)
	}
	sum := 0.0
	for i, v := range vals {
		sum += v * weights[i]
	}
	return sum
}

// Dimensions folds 300 leaf scores into the 60 dimension-tier records, one
// per (policy area, dimension) cell. The leaf batch must be hermetic: every
// canonical question present exactly once, every cell holding exactly five
// questions. A failed contract aborts with the itemized violation list and
// no dimension output.
func Dimensions(ctx context.Context, leaves []score.Leaf, cfg config.Config) ([]score.Dimension, []string, error) {
	bounds := contract.Bounds{Min: cfg.MinScore, Max: cfg.MaxScore}

	res := contract.Validate("leaf", rubric.NumQuestions, leaves,
		func(l score.Leaf) string { return l.QuestionID },
		func(l score.Leaf) float64 { return l.Score },
		rubric.QuestionIDs(), bounds)
	if !res.Passed {
		return nil, res.Warnings, res.Err("leaf")
	}

	byCell := make(map[string][]score.Leaf, rubric.NumCells)
	for _, l := range leaves {
		key := rubric.CellKey(l.PolicyAreaID, l.DimensionID)
		byCell[key] = append(byCell[key], l)
	}

	// Cell population is part of the hermeticity contract: exactly five
	// questions per cell, checked before any worker starts.
	var coverage []string
	for _, cell := range rubric.CellKeys() {
		if n := len(byCell[cell]); n != rubric.QuestionsPerCell {
			coverage = append(coverage, fmt.Sprintf(
				"cell %s: expected %d questions, got %d", cell, rubric.QuestionsPerCell, n))
		}
	}
	if len(coverage) > 0 {
		return nil, res.Warnings, contract.NewError(contract.KindCoverage, "leaf", coverage...)
	}

	cells := rubric.CellKeys()
	dims := make([]score.Dimension, len(cells))

	var warnMu sync.Mutex
	warnings := append([]string(nil), res.Warnings...)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(defaultWorkers)
	for i, cell := range cells {
		g.Go(func() error {
			group := byCell[cell]
			vals := make([]float64, 0, len(group))
			ids := make([]string, 0, len(group))
			for _, l := range group {
				vals = append(vals, clamp(l.Score, cfg.MinScore, cfg.MaxScore))
				ids = append(ids, l.QuestionID)
			}
			sort.Strings(ids)
			// Canonical value order makes the float fold bit-identical for
			// any permutation of the input batch.
			sort.Float64s(vals)

			folded := weightedFold(vals, nil)
			if folded < cfg.MinScore || folded > cfg.MaxScore {
				warnMu.Lock()
				warnings = append(warnings, fmt.Sprintf(
					"cell %s: folded score %.6f clamped to bounds", cell, folded))
				warnMu.Unlock()
				folded = clamp(folded, cfg.MinScore, cfg.MaxScore)
			}

			dims[i] = score.Dimension{
				PolicyAreaID:            group[0].PolicyAreaID,
				DimensionID:             group[0].DimensionID,
				Score:                   folded,
				ContributingQuestionIDs: ids,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, warnings, err
	}

	return dims, warnings, nil
}
