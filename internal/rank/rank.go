// Package rank applies host-facing search parameters (minimum match
// threshold, result limit) over a pre-scored candidate set. It does no
// scoring itself; callers run pkg/scoring first and pass the results
// here for filtering and truncation.
package rank

import (
	"sort"

	"github.com/sanctionsscore/core/pkg/scoring"
)

// Candidate pairs a scored result with an opaque identifier for the
// scored record, so callers can trace a ranked result back to its source
// entity without rank needing to know about pkg/entity at all.
type Candidate struct {
	ID     string
	Result scoring.Result
}

// Rank filters candidates below params.MinMatch, sorts the remainder by
// descending score, and truncates to params.Limit. Ties are broken by the
// order candidates were supplied in, so Rank is stable for
// already-sorted input.
func Rank(candidates []Candidate, params scoring.ResolvedSearchParams) []Candidate {
	filtered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Result.Score >= params.MinMatch {
			filtered = append(filtered, c)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Result.Score > filtered[j].Result.Score
	})

	if len(filtered) > params.Limit {
		filtered = filtered[:params.Limit]
	}
	return filtered
}
