// Package collections provides small, IO-free generic helpers used by
// the merge package: first-non-empty folding and dedupe-by-natural-key,
// both written against comparable generic constraints.
package collections

import "strings"

// FirstNonEmpty returns the first value in vals that is not the zero
// value of T, or the zero value of T if all are zero. Used by entity
// merge to fold scalar fields with a first-non-empty-wins rule.
func FirstNonEmpty[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

// FirstNonEmptyString is FirstNonEmpty specialized for string, provided
// separately since it is by far the most common call site and avoids a
// generic-instantiation at every merge field.
func FirstNonEmptyString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// DedupeByKey removes later elements of items whose key(item) has already
// been seen, preserving the order of first occurrence. Used by entity
// merge to fold duplicate government IDs, crypto addresses, affiliations,
// and historical-info records contributed by multiple source records for
// the same entity.
func DedupeByKey[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}

// DedupeStrings removes duplicate strings keyed case-insensitively (spec
// §4.10's "strings: lowercase of value" natural key), preserving the
// original casing and order of first occurrence.
func DedupeStrings(items []string) []string {
	return DedupeByKey(items, func(s string) string { return strings.ToLower(s) })
}
