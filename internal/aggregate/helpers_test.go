package aggregate

import (
	"fmt"
	"math/rand"
	"testing"

	"planscore/internal/config"
	"planscore/internal/rubric"
	"planscore/internal/score"
)

// makeLeaves builds a hermetic 300-leaf batch with scores from scoreFn,
// indexed by the canonical 1-based question number.
func makeLeaves(t *testing.T, scoreFn func(n int) float64) []score.Leaf {
	t.Helper()
	leaves := make([]score.Leaf, 0, rubric.NumQuestions)
	for n := 1; n <= rubric.NumQuestions; n++ {
		area, dim, err := rubric.QuestionCell(n)
		if err != nil {
			t.Fatalf("question cell %d: %v", n, err)
		}
		leaves = append(leaves, score.Leaf{
			QuestionID:   fmt.Sprintf("Q%03d", n),
			PolicyAreaID: area,
			DimensionID:  dim,
			Score:        scoreFn(n),
			QualityLevel: score.QualityGood,
			ContentHash:  fmt.Sprintf("hash-%03d", n),
		})
	}
	return leaves
}

func uniformLeaves(t *testing.T, value float64) []score.Leaf {
	return makeLeaves(t, func(int) float64 { return value })
}

func shuffleLeaves(leaves []score.Leaf, seed int64) []score.Leaf {
	out := append([]score.Leaf(nil), leaves...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// testAreas builds a hermetic 10-area set with the given per-area scores.
func testAreas(scores map[string]float64) []score.Area {
	areas := make([]score.Area, 0, rubric.NumAreas)
	for _, id := range rubric.AreaIDs() {
		s := scores[id]
		dims := make([]float64, rubric.NumDimensions)
		for i := range dims {
			dims[i] = s
		}
		areas = append(areas, score.Area{
			AreaID:          id,
			Score:           s,
			DimensionScores: dims,
			ClusterID:       rubric.ClusterOf(id),
		})
	}
	return areas
}

func flatAreas(value float64) map[string]float64 {
	m := make(map[string]float64, rubric.NumAreas)
	for _, id := range rubric.AreaIDs() {
		m[id] = value
	}
	return m
}

func defaultCfg() config.Config {
	return config.Default()
}
