// Package config loads and validates the immutable aggregation
// configuration. The configuration is read once at process start, validated
// strictly, and passed by value into every aggregator call; nothing mutates
// it afterward and there is no ambient global lookup.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"planscore/internal/rubric"
	"planscore/internal/score"
)

// weightTolerance is the allowed drift when checking that weights sum to 1.0.
const weightTolerance = 1e-6

// PenaltyMultipliers holds the base penalty multiplier per dispersion scenario.
type PenaltyMultipliers struct {
	Convergence float64 `yaml:"convergence"`
	Moderate    float64 `yaml:"moderate"`
	High        float64 `yaml:"high"`
	Extreme     float64 `yaml:"extreme"`
}

// CoherenceWeights weighs the three sub-coherences of the macro tier.
type CoherenceWeights struct {
	Strategic     float64 `yaml:"strategic"`
	Operational   float64 `yaml:"operational"`
	Institutional float64 `yaml:"institutional"`
}

// QualityThresholds maps normalized scores to quality levels. Values must
// be strictly decreasing: excellent > good > satisfactory.
type QualityThresholds struct {
	Excellent    float64 `yaml:"excellent"`
	Good         float64 `yaml:"good"`
	Satisfactory float64 `yaml:"satisfactory"`
}

// Config is the process-wide aggregation configuration.
type Config struct {
	// ClusterWeights weighs the four clusters in the macro fold.
	// Must be non-negative and sum to 1.0 ± 1e-6.
	ClusterWeights map[string]float64 `yaml:"cluster_weights"`

	// CV boundaries for dispersion classification, strictly increasing.
	CVConvergence float64 `yaml:"cv_convergence"`
	CVModerate    float64 `yaml:"cv_moderate"`
	CVHigh        float64 `yaml:"cv_high"`

	BasePenaltyWeight  float64            `yaml:"base_penalty_weight"`
	PenaltyMultipliers PenaltyMultipliers `yaml:"penalty_multipliers"`

	// ExtremeShapeFactor reshapes the extreme-scenario multiplier; the
	// bimodal boost stacks multiplicatively on top when the bimodality
	// test fires (gap between the two score modes > BimodalGap).
	ExtremeShapeFactor float64 `yaml:"extreme_shape_factor"`
	BimodalBoost       float64 `yaml:"bimodal_boost"`
	BimodalGap         float64 `yaml:"bimodal_gap"`

	CoherenceWeights CoherenceWeights `yaml:"coherence_weights"`

	GapThreshold float64 `yaml:"gap_threshold"`
	// SevereGapMargin is how far below GapThreshold a score must fall to be
	// graded severe rather than moderate.
	SevereGapMargin float64 `yaml:"severe_gap_margin"`

	MinScore float64 `yaml:"min_score"`
	MaxScore float64 `yaml:"max_score"`

	QualityThresholds QualityThresholds `yaml:"quality_thresholds"`
}

// Default returns the stock configuration.
func Default() Config {
	weights := make(map[string]float64, rubric.NumClusters)
	for _, c := range rubric.ClusterIDs() {
		weights[c] = 1.0 / float64(rubric.NumClusters)
	}
	return Config{
		ClusterWeights:    weights,
		CVConvergence:     0.15,
		CVModerate:        0.40,
		CVHigh:            0.60,
		BasePenaltyWeight: 0.35,
		PenaltyMultipliers: PenaltyMultipliers{
			Convergence: 0.5,
			Moderate:    1.0,
			High:        1.5,
			Extreme:     2.0,
		},
		ExtremeShapeFactor: 1.8,
		BimodalBoost:       1.3,
		BimodalGap:         0.8,
		CoherenceWeights: CoherenceWeights{
			Strategic:     0.40,
			Operational:   0.30,
			Institutional: 0.30,
		},
		GapThreshold:    1.65,
		SevereGapMargin: 0.5,
		MinScore:        0.0,
		MaxScore:        3.0,
		QualityThresholds: QualityThresholds{
			Excellent:    0.85,
			Good:         0.70,
			Satisfactory: 0.55,
		},
	}
}

// Quality assigns the quality level for a normalized score using the
// ordered threshold table.
func (c Config) Quality(normalized float64) score.QualityLevel {
	switch {
	case normalized >= c.QualityThresholds.Excellent:
		return score.QualityExcellent
	case normalized >= c.QualityThresholds.Good:
		return score.QualityGood
	case normalized >= c.QualityThresholds.Satisfactory:
		return score.QualitySatisfactory
	default:
		return score.QualityInsufficient
	}
}

// Load reads a YAML config file, fills unset options from Default, and
// validates the result. A malformed configuration is a startup error, never
// a runtime surprise.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every structural invariant of the configuration.
func (c Config) Validate() error {
	if len(c.ClusterWeights) != rubric.NumClusters {
		return fmt.Errorf("cluster_weights: expected %d entries, got %d",
			rubric.NumClusters, len(c.ClusterWeights))
	}
	sum := 0.0
	for _, id := range rubric.ClusterIDs() {
		w, ok := c.ClusterWeights[id]
		if !ok {
			return fmt.Errorf("cluster_weights: missing weight for %s", id)
		}
		if w < 0 {
			return fmt.Errorf("cluster_weights: negative weight %.4f for %s", w, id)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("cluster_weights: sum %.8f, want 1.0 ± %.0e", sum, weightTolerance)
	}

	if !(c.CVConvergence > 0 && c.CVConvergence < c.CVModerate && c.CVModerate < c.CVHigh) {
		return fmt.Errorf("cv thresholds must be strictly increasing and positive: %.3f / %.3f / %.3f",
			c.CVConvergence, c.CVModerate, c.CVHigh)
	}

	if c.BasePenaltyWeight < 0 {
		return fmt.Errorf("base_penalty_weight: negative value %.4f", c.BasePenaltyWeight)
	}
	pm := c.PenaltyMultipliers
	if !(pm.Convergence <= pm.Moderate && pm.Moderate <= pm.High && pm.High <= pm.Extreme) {
		return fmt.Errorf("penalty_multipliers must be non-decreasing across scenarios: %.2f / %.2f / %.2f / %.2f",
			pm.Convergence, pm.Moderate, pm.High, pm.Extreme)
	}
	if pm.Convergence < 0 {
		return fmt.Errorf("penalty_multipliers: negative convergence multiplier %.2f", pm.Convergence)
	}
	if c.ExtremeShapeFactor < 1 {
		return fmt.Errorf("extreme_shape_factor must be >= 1, got %.3f", c.ExtremeShapeFactor)
	}
	if c.BimodalBoost < 1 {
		return fmt.Errorf("bimodal_boost must be >= 1, got %.3f", c.BimodalBoost)
	}
	if c.BimodalGap <= 0 {
		return fmt.Errorf("bimodal_gap must be positive, got %.3f", c.BimodalGap)
	}

	cw := c.CoherenceWeights
	if cw.Strategic < 0 || cw.Operational < 0 || cw.Institutional < 0 {
		return fmt.Errorf("coherence_weights must be non-negative: %.2f / %.2f / %.2f",
			cw.Strategic, cw.Operational, cw.Institutional)
	}
	if csum := cw.Strategic + cw.Operational + cw.Institutional; math.Abs(csum-1.0) > weightTolerance {
		return fmt.Errorf("coherence_weights: sum %.8f, want 1.0 ± %.0e", csum, weightTolerance)
	}

	if c.MinScore >= c.MaxScore {
		return fmt.Errorf("score bounds: min %.2f must be below max %.2f", c.MinScore, c.MaxScore)
	}
	if c.GapThreshold <= c.MinScore || c.GapThreshold >= c.MaxScore {
		return fmt.Errorf("gap_threshold %.2f outside score bounds (%.2f, %.2f)",
			c.GapThreshold, c.MinScore, c.MaxScore)
	}
	if c.SevereGapMargin <= 0 {
		return fmt.Errorf("severe_gap_margin must be positive, got %.3f", c.SevereGapMargin)
	}

	qt := c.QualityThresholds
	if !(qt.Excellent > qt.Good && qt.Good > qt.Satisfactory && qt.Satisfactory > 0 && qt.Excellent < 1) {
		return fmt.Errorf("quality_thresholds must be strictly decreasing inside (0,1): %.2f / %.2f / %.2f",
			qt.Excellent, qt.Good, qt.Satisfactory)
	}

	return nil
}
