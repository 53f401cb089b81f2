// Package rubric defines the fixed evaluation taxonomy: 10 policy areas,
// 6 dimensions, 4 clusters and the 300-question grid. Every coverage
// universe the contract validator checks against is generated here from
// the taxonomy, never hand-listed.
package rubric

import "fmt"

const (
	// NumAreas is the number of policy areas in the rubric.
	NumAreas = 10
	// NumDimensions is the number of dimensions evaluated per policy area.
	NumDimensions = 6
	// NumClusters is the number of policy clusters.
	NumClusters = 4
	// QuestionsPerCell is the number of atomic questions behind each
	// (policy area, dimension) cell.
	QuestionsPerCell = 5

	// NumCells is the size of the dimension-tier grid.
	NumCells = NumAreas * NumDimensions
	// NumQuestions is the total leaf count the feed must supply.
	NumQuestions = NumCells * QuestionsPerCell
)

// clusterComposition is the fixed area→cluster assignment. Clusters hold
// 2 or 3 areas each; the table is the source of truth for both directions.
var clusterComposition = map[string][]string{
	"CL01": {"PA01", "PA02", "PA03"},
	"CL02": {"PA04", "PA05", "PA06"},
	"CL03": {"PA07", "PA08"},
	"CL04": {"PA09", "PA10"},
}

// AreaIDs returns the 10 policy area ids in canonical order.
func AreaIDs() []string {
	ids := make([]string, 0, NumAreas)
	for i := 1; i <= NumAreas; i++ {
		ids = append(ids, fmt.Sprintf("PA%02d", i))
	}
	return ids
}

// DimensionIDs returns the 6 dimension ids in canonical order.
func DimensionIDs() []string {
	ids := make([]string, 0, NumDimensions)
	for i := 1; i <= NumDimensions; i++ {
		ids = append(ids, fmt.Sprintf("DIM%02d", i))
	}
	return ids
}

// ClusterIDs returns the 4 cluster ids in canonical order.
func ClusterIDs() []string {
	ids := make([]string, 0, NumClusters)
	for i := 1; i <= NumClusters; i++ {
		ids = append(ids, fmt.Sprintf("CL%02d", i))
	}
	return ids
}

// CellKey builds the grid key for a (policy area, dimension) pair.
func CellKey(areaID, dimensionID string) string {
	return areaID + ":" + dimensionID
}

// CellKeys returns the 60 grid keys in canonical (area-major) order.
func CellKeys() []string {
	keys := make([]string, 0, NumCells)
	for _, a := range AreaIDs() {
		for _, d := range DimensionIDs() {
			keys = append(keys, CellKey(a, d))
		}
	}
	return keys
}

// QuestionIDs returns the 300 canonical question ids Q001..Q300.
// Questions are numbered area-major, dimension-minor: the five questions
// of cell (PA01, DIM01) are Q001..Q005, of (PA01, DIM02) Q006..Q010, etc.
func QuestionIDs() []string {
	ids := make([]string, 0, NumQuestions)
	for i := 1; i <= NumQuestions; i++ {
		ids = append(ids, fmt.Sprintf("Q%03d", i))
	}
	return ids
}

// QuestionCell returns the (area, dimension) cell the n-th question
// (1-based) belongs to under the canonical numbering.
func QuestionCell(n int) (areaID, dimensionID string, err error) {
	if n < 1 || n > NumQuestions {
		return "", "", fmt.Errorf("question index %d outside 1..%d", n, NumQuestions)
	}
	idx := n - 1
	area := idx / (NumDimensions * QuestionsPerCell)
	dim := (idx / QuestionsPerCell) % NumDimensions
	return fmt.Sprintf("PA%02d", area+1), fmt.Sprintf("DIM%02d", dim+1), nil
}

// ClusterComposition returns a copy of the fixed cluster→areas table.
func ClusterComposition() map[string][]string {
	out := make(map[string][]string, len(clusterComposition))
	for c, areas := range clusterComposition {
		cp := make([]string, len(areas))
		copy(cp, areas)
		out[c] = cp
	}
	return out
}

// ClusterOf returns the cluster an area belongs to, or "" for unknown areas.
func ClusterOf(areaID string) string {
	for c, areas := range clusterComposition {
		for _, a := range areas {
			if a == areaID {
				return c
			}
		}
	}
	return ""
}
