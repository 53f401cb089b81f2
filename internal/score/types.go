// Package score defines the immutable value records produced at each
// aggregation tier. Records are created once by their owning aggregator and
// never mutated afterward; parent-child relationships are expressed as id
// lists, never embedded pointers.
package score

// QualityLevel is the qualitative band assigned to a normalized score.
type QualityLevel string

const (
	QualityExcellent    QualityLevel = "excellent"
	QualityGood         QualityLevel = "good"
	QualitySatisfactory QualityLevel = "satisfactory"
	QualityInsufficient QualityLevel = "insufficient"
)

// DispersionScenario classifies how much a cluster's area scores disagree,
// by coefficient of variation.
type DispersionScenario string

const (
	DispersionConvergence DispersionScenario = "convergence"
	DispersionModerate    DispersionScenario = "moderate"
	DispersionHigh        DispersionScenario = "high"
	DispersionExtreme     DispersionScenario = "extreme"
)

// GapSeverity grades how far below the gap threshold a score fell.
type GapSeverity string

const (
	GapModerate GapSeverity = "moderate"
	GapSevere   GapSeverity = "severe"
)

// Leaf is one atomic evaluation result for a single rubric question,
// supplied by the external scoring collaborator. 300 instances per run.
type Leaf struct {
	QuestionID   string       `json:"question_id"`
	PolicyAreaID string       `json:"policy_area_id"`
	DimensionID  string       `json:"dimension_id"`
	Score        float64      `json:"score"`
	QualityLevel QualityLevel `json:"quality_level"`
	ContentHash  string       `json:"content_hash"`
}

// Dimension is one (policy area, dimension) cell score folded from its
// five contributing questions. Exactly 60 instances per run.
type Dimension struct {
	PolicyAreaID            string   `json:"policy_area_id"`
	DimensionID             string   `json:"dimension_id"`
	Score                   float64  `json:"score"`
	ContributingQuestionIDs []string `json:"contributing_question_ids"`
}

// CellKey returns the grid key of the cell this score covers.
func (d Dimension) CellKey() string {
	return d.PolicyAreaID + ":" + d.DimensionID
}

// Area is one policy-area score folded from its six dimension scores.
// Exactly 10 instances per run.
type Area struct {
	AreaID          string    `json:"area_id"`
	Score           float64   `json:"score"`
	DimensionScores []float64 `json:"dimension_scores"`
	ClusterID       string    `json:"cluster_id"`
}

// ConfidenceInterval is a two-sided interval around a cluster mean.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Cluster is one cluster score with its dispersion diagnostics. The score
// is post-penalty. Exactly 4 instances per run.
type Cluster struct {
	ClusterID            string             `json:"cluster_id"`
	Areas                []string           `json:"areas"`
	Score                float64            `json:"score"`
	Coherence            float64            `json:"coherence"`
	Variance             float64            `json:"variance"`
	DispersionScenario   DispersionScenario `json:"dispersion_scenario"`
	PenaltyApplied       float64            `json:"penalty_applied"`
	WeakestAreaID        string             `json:"weakest_area_id"`
	ScoreStd             float64            `json:"score_std"`
	ConfidenceInterval95 ConfidenceInterval `json:"confidence_interval_95"`
}

// CoherenceBreakdown carries the three sub-coherences behind the
// cross-cutting coherence metric.
type CoherenceBreakdown struct {
	Strategic     float64 `json:"strategic"`
	Operational   float64 `json:"operational"`
	Institutional float64 `json:"institutional"`
}

// AlignmentBreakdown carries the three strategic-alignment sub-scores.
type AlignmentBreakdown struct {
	Vertical   float64 `json:"vertical"`
	Horizontal float64 `json:"horizontal"`
	// Temporal is fixed at a neutral 1.0 when no prior run is available;
	// TemporalNeutral records that case.
	Temporal        float64 `json:"temporal"`
	TemporalNeutral bool    `json:"temporal_neutral"`
}

// SystemicGap reports one area or cluster whose score fell below the
// configured gap threshold.
type SystemicGap struct {
	EntityID  string      `json:"entity_id"`
	Tier      string      `json:"tier"` // "area" or "cluster"
	Score     float64     `json:"score"`
	Shortfall float64     `json:"shortfall"`
	Severity  GapSeverity `json:"severity"`
}

// Macro is the final composite judgment. Singleton per run.
type Macro struct {
	Score                 float64            `json:"score"`
	ScoreNormalized       float64            `json:"score_normalized"`
	QualityLevel          QualityLevel       `json:"quality_level"`
	CrossCuttingCoherence float64            `json:"cross_cutting_coherence"`
	CoherenceBreakdown    CoherenceBreakdown `json:"coherence_breakdown"`
	SystemicGaps          []SystemicGap      `json:"systemic_gaps"`
	GapSeverity           GapSeverity        `json:"gap_severity,omitempty"`
	StrategicAlignment    float64            `json:"strategic_alignment"`
	AlignmentBreakdown    AlignmentBreakdown `json:"alignment_breakdown"`
}
