// Package contract enforces the tier-boundary contracts of the aggregation
// pipeline: exact cardinality, hermetic key coverage and score bounds. It
// also defines the tagged error taxonomy every fatal violation is reported
// through.
package contract

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a fatal aggregation error.
type ErrorKind string

const (
	// KindCardinality: wrong item count at a tier boundary. Fatal.
	KindCardinality ErrorKind = "cardinality"
	// KindCoverage: missing or duplicate required key in a hermeticity
	// grid. Fatal.
	KindCoverage ErrorKind = "coverage"
	// KindBounds: score outside the configured bounds. Clamp-and-warn for
	// mild violations, fatal when severe.
	KindBounds ErrorKind = "bounds"
	// KindConfiguration: malformed weights or thresholds at load. Fatal.
	KindConfiguration ErrorKind = "configuration"
	// KindVerification: a contract's verify call returned false. Only used
	// on audit and test paths, never as pipeline control flow.
	KindVerification ErrorKind = "verification"
)

// Error is a tagged aggregation error carrying the itemized list of
// offending ids or keys. User-visible failures always show the details,
// never a bare "validation failed".
type Error struct {
	Kind    ErrorKind
	Tier    string
	Details []string
}

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s error at tier %s", e.Kind, e.Tier)
	}
	return fmt.Sprintf("%s error at tier %s: %s", e.Kind, e.Tier, strings.Join(e.Details, "; "))
}

// NewError builds a tagged error for a tier boundary.
func NewError(kind ErrorKind, tier string, details ...string) *Error {
	return &Error{Kind: kind, Tier: tier, Details: details}
}
