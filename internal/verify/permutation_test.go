package verify

import (
	"math"
	"math/rand"
	"testing"
)

func shuffled(vals []float64, seed int64) []float64 {
	out := append([]float64(nil), vals...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func TestReducersPermutationInvariant(t *testing.T) {
	vals := []float64{2.0, 2.2, 1.8, 2.1, 1.9}

	tests := []struct {
		name   string
		reduce Reducer
		want   float64
	}{
		{"sum", Sum, 10.0},
		{"mean", Mean, 2.0},
		{"weighted", WeightedSum([]float64{0.1, 0.1, 0.2, 0.3, 0.3}), 0.18 + 0.19 + 0.4 + 0.63 + 0.66},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Aggregate(vals, nil, tt.reduce)
			if math.Abs(base-tt.want) > 1e-9 {
				t.Fatalf("base aggregate = %v, want %v", base, tt.want)
			}
			for seed := int64(1); seed <= 10; seed++ {
				got := Aggregate(shuffled(vals, seed), nil, tt.reduce)
				if got != base {
					t.Errorf("seed %d: aggregate = %v, want bit-identical %v", seed, got, base)
				}
			}
		})
	}
}

func TestCanonicalDigest(t *testing.T) {
	vals := []float64{2.0, 2.2, 1.8, 2.1, 1.9}
	base := CanonicalDigest(vals, nil)

	for seed := int64(1); seed <= 10; seed++ {
		if got := CanonicalDigest(shuffled(vals, seed), nil); got != base {
			t.Errorf("seed %d: digest changed under permutation", seed)
		}
	}

	if CanonicalDigest([]float64{2.0, 2.2, 1.8, 2.1, 1.95}, nil) == base {
		t.Error("different multiset produced the same digest")
	}
	// A multiset is not a set: duplicates matter.
	if CanonicalDigest([]float64{2.0, 2.0, 1.8, 2.1, 1.9}, nil) == base {
		t.Error("digest ignored multiplicity")
	}
}

func TestCanonicalDigestTransform(t *testing.T) {
	vals := []float64{1.0, 2.0, 3.0}
	double := func(v float64) float64 { return 2 * v }

	if CanonicalDigest(vals, double) != CanonicalDigest([]float64{2.0, 4.0, 6.0}, nil) {
		t.Error("transform not applied before digesting")
	}
}
