package aggregate

import (
	"math"
	"sort"
)

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// stddev is the sample standard deviation. Fewer than two values carry no
// dispersion information and yield 0.
func stddev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	sum := 0.0
	for _, v := range vals {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

// coefficientOfVariation returns std/mean, with CV = 0 for a zero mean so
// degenerate inputs never divide by zero.
func coefficientOfVariation(vals []float64) float64 {
	m := mean(vals)
	if m == 0 {
		return 0
	}
	return stddev(vals) / m
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pairwiseCoherence measures how close a set of scores sit to each other,
// normalized to [0,1] over the given score range. Identical scores give
// 1.0; scores at opposite ends of the range give 0. Fewer than two scores
// are trivially coherent.
func pairwiseCoherence(vals []float64, scoreRange float64) float64 {
	if len(vals) < 2 || scoreRange <= 0 {
		return 1.0
	}
	sum, pairs := 0.0, 0
	for i := 0; i < len(vals); i++ {
		for j := i + 1; j < len(vals); j++ {
			d := math.Abs(vals[i]-vals[j]) / scoreRange
			sum += 1.0 - clamp(d, 0, 1)
			pairs++
		}
	}
	return sum / float64(pairs)
}

// isBimodal splits the sorted values at their widest gap and reports
// whether that gap exceeds the configured threshold with both sides
// non-empty. With the 2-3 samples a cluster holds, anything subtler than a
// widest-gap test is noise.
func isBimodal(vals []float64, gapThreshold float64) bool {
	if len(vals) < 2 {
		return false
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	widest := 0.0
	for i := 1; i < len(sorted); i++ {
		if g := sorted[i] - sorted[i-1]; g > widest {
			widest = g
		}
	}
	return widest > gapThreshold
}

// normalCI95 is the two-sided 95% confidence interval around the mean
// under a normal approximation.
func normalCI95(m, std float64, n int) (lower, upper float64) {
	if n < 2 {
		return m, m
	}
	const z = 1.959963984540054
	half := z * std / math.Sqrt(float64(n))
	return m - half, m + half
}
