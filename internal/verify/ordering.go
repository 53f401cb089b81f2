package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// OrderByScore returns a copy of items sorted by descending primary score,
// ties broken by the content-derived tie-break key ascending. The
// comparator is a strict total order, so repeated sorts of the same
// multiset yield byte-identical sequences regardless of input order.
func OrderByScore[T any](items []T, scoreFn func(T) float64, tieBreak func(T) string) []T {
	out := append([]T(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := scoreFn(out[i]), scoreFn(out[j])
		if si != sj {
			return si > sj
		}
		return tieBreak(out[i]) < tieBreak(out[j])
	})
	return out
}

// OrderByKey returns a copy of items sorted by the key ascending. Keys must
// be unique within a collection; hermeticity validation upstream guarantees
// that for every tier output.
func OrderByKey[T any](items []T, keyFn func(T) string) []T {
	out := append([]T(nil), items...)
	sort.Slice(out, func(i, j int) bool { return keyFn(out[i]) < keyFn(out[j]) })
	return out
}

// IdentityKey derives a stable tie-break key from a record's identity.
// Equal identities always produce the same key; distinct identities
// collide with negligible probability.
func IdentityKey(identity string) string {
	sum := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(sum[:])
}
