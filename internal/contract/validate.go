package contract

import (
	"fmt"
	"sort"
)

// ValidationResult aggregates everything a tier-boundary check found.
// Expected business conditions never panic or throw; callers decide whether
// a failed result aborts the run.
type ValidationResult struct {
	Passed   bool
	Errors   []string
	Warnings []string

	kinds map[ErrorKind]bool
}

// Kind reports the dominant violation class of a failed result, with
// cardinality taking precedence over coverage over bounds.
func (r ValidationResult) Kind() ErrorKind {
	for _, k := range []ErrorKind{KindCardinality, KindCoverage, KindBounds} {
		if r.kinds[k] {
			return k
		}
	}
	return KindCoverage
}

// Err converts a failed result into a tagged error, or nil when the result
// passed.
func (r ValidationResult) Err(tier string) error {
	if r.Passed {
		return nil
	}
	return NewError(r.Kind(), tier, r.Errors...)
}

func (r *ValidationResult) fail(kind ErrorKind, msg string) {
	r.Passed = false
	r.Errors = append(r.Errors, msg)
	if r.kinds == nil {
		r.kinds = make(map[ErrorKind]bool)
	}
	r.kinds[kind] = true
}

// Bounds is the closed score interval every tier enforces.
type Bounds struct {
	Min float64
	Max float64
}

// Severe reports whether a value violates the bounds badly enough to be
// fatal rather than clamp-and-warn: negative scores or anything beyond
// twice the upper bound.
func (b Bounds) Severe(v float64) bool {
	return v < 0 || v > 2*b.Max
}

// Validate checks one tier's item set against its contract: exact
// cardinality, hermetic coverage of the key universe, and score bounds.
// It is a pure function over its inputs.
//
// keyFn extracts the coverage key of an item; scoreFn its numeric score.
// Every key in universe must appear exactly once. Mild bounds violations
// are warnings (the aggregator clamps); severe ones are errors.
func Validate[T any](tier string, expectedCount int, items []T,
	keyFn func(T) string, scoreFn func(T) float64,
	universe []string, bounds Bounds,
) ValidationResult {
	res := ValidationResult{Passed: true}

	if len(items) != expectedCount {
		res.fail(KindCardinality, fmt.Sprintf(
			"%s: expected %d items, got %d (delta %+d)",
			tier, expectedCount, len(items), len(items)-expectedCount))
	}

	seen := make(map[string]int, len(items))
	for _, it := range items {
		seen[keyFn(it)]++
	}

	var missing, duplicate []string
	required := make(map[string]bool, len(universe))
	for _, k := range universe {
		required[k] = true
		switch n := seen[k]; {
		case n == 0:
			missing = append(missing, k)
		case n > 1:
			duplicate = append(duplicate, fmt.Sprintf("%s (x%d)", k, n))
		}
	}
	var extra []string
	for k := range seen {
		if !required[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(missing)
	sort.Strings(duplicate)
	sort.Strings(extra)

	if len(missing) > 0 {
		res.fail(KindCoverage, fmt.Sprintf("%s: missing keys: %v", tier, missing))
	}
	if len(duplicate) > 0 {
		res.fail(KindCoverage, fmt.Sprintf("%s: duplicate keys: %v", tier, duplicate))
	}
	if len(extra) > 0 {
		res.fail(KindCoverage, fmt.Sprintf("%s: keys outside universe: %v", tier, extra))
	}

	for _, it := range items {
		v := scoreFn(it)
		if v >= bounds.Min && v <= bounds.Max {
			continue
		}
		msg := fmt.Sprintf("%s: score %.4f for %s outside [%.2f, %.2f]",
			tier, v, keyFn(it), bounds.Min, bounds.Max)
		if bounds.Severe(v) {
			res.fail(KindBounds, msg+" (severe)")
		} else {
			res.Warnings = append(res.Warnings, msg+" (clamped)")
		}
	}

	return res
}
