package verify

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// RiskReport certifies the empirical behavior of a conformal acceptance
// threshold on an independent holdout set.
type RiskReport struct {
	Threshold float64 `json:"threshold"`
	Coverage  float64 `json:"coverage"`
	Risk      float64 `json:"risk"`
}

// ConformalThreshold computes the split-conformal acceptance threshold for
// the given miscoverage level: the ⌈(n+1)(1−α)⌉/n empirical quantile of the
// calibration non-conformity scores. The quantile is computed over a sorted
// copy, so the result cannot depend on calibration order.
func ConformalThreshold(calibration []float64, alpha float64) (float64, error) {
	n := len(calibration)
	if n == 0 {
		return 0, fmt.Errorf("conformal: empty calibration set")
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, fmt.Errorf("conformal: alpha %.4f outside (0,1)", alpha)
	}

	rank := int(math.Ceil(float64(n+1) * (1 - alpha)))
	if rank > n {
		return 0, fmt.Errorf("conformal: calibration set of %d too small for alpha %.4f", n, alpha)
	}

	sorted := append([]float64(nil), calibration...)
	sort.Float64s(sorted)
	return sorted[rank-1], nil
}

// VerifyRisk computes the conformal threshold from the calibration set and
// reports the empirical coverage over an independent holdout: the fraction
// of holdout scores at or below the threshold, which must approximate 1−α
// up to finite-sample tolerance. The seed drives an internal permutation of
// the calibration set before the quantile, so a caller replaying with any
// seed exercises the order-independence of the threshold; results are
// deterministic for a fixed seed.
func VerifyRisk(calibration, holdout []float64, alpha float64, seed int64) (RiskReport, error) {
	if len(holdout) == 0 {
		return RiskReport{}, fmt.Errorf("conformal: empty holdout set")
	}

	shuffled := append([]float64(nil), calibration...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	threshold, err := ConformalThreshold(shuffled, alpha)
	if err != nil {
		return RiskReport{}, err
	}

	covered := 0
	for _, v := range holdout {
		if v <= threshold {
			covered++
		}
	}
	coverage := float64(covered) / float64(len(holdout))

	return RiskReport{
		Threshold: threshold,
		Coverage:  coverage,
		Risk:      1 - coverage,
	}, nil
}
