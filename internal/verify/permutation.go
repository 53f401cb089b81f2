// Package verify implements the four verification contracts that wrap the
// aggregation pipeline: permutation invariance, deterministic total
// ordering, Merkle-tree traceability and the conformal risk certificate.
// Contract checks return booleans or reports; they are audit surfaces, not
// pipeline control flow.
package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
)

// Transform maps a raw value before reduction. Nil means identity.
type Transform func(float64) float64

// Reducer is an associative, commutative fold over a multiset of values.
// Because the reduction never observes input order, any Reducer built from
// these constructors is order-independent by construction.
type Reducer func(values []float64) float64

// Sum reduces to the total of the values. The fold runs over a canonically
// sorted copy: float addition is not associative, so summing in supply
// order would leak the permutation into the last ulp of the result.
func Sum(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	s := 0.0
	for _, v := range sorted {
		s += v
	}
	return s
}

// Mean reduces to the arithmetic mean, 0 for an empty multiset.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// WeightedSum builds a reducer keyed by value position after canonical
// sorting, so the weighting itself cannot depend on supply order.
func WeightedSum(weights []float64) Reducer {
	return func(values []float64) float64 {
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		s := 0.0
		for i, v := range sorted {
			if i < len(weights) {
				s += v * weights[i]
			}
		}
		return s
	}
}

// Aggregate applies the transform then the reducer. The input sequence is
// treated as a multiset; permuting it cannot change the result.
func Aggregate(values []float64, psi Transform, reduce Reducer) float64 {
	transformed := apply(values, psi)
	return reduce(transformed)
}

// CanonicalDigest returns a sha256 hex digest over the sorted transformed
// values. Two multisets digest identically iff they contain the same
// values, regardless of order — the verification half of the permutation
// invariance contract.
func CanonicalDigest(values []float64, psi Transform) string {
	transformed := apply(values, psi)
	sort.Float64s(transformed)

	h := sha256.New()
	for _, v := range transformed {
		h.Write([]byte(strconv.FormatFloat(v, 'g', -1, 64)))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func apply(values []float64, psi Transform) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if psi != nil {
			out[i] = psi(v)
		} else {
			out[i] = v
		}
	}
	return out
}
