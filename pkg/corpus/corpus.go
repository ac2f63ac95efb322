// Package corpus defines the candidate-retrieval abstraction the scoring
// engine sits behind: a Corpus fetches plausible candidate entities for a
// query (by exact key, by a cached fuzzy pre-filter, or by embedding
// shortlist) without itself deciding which candidate matches.
package corpus

import (
	"context"
	"errors"

	"github.com/sanctionsscore/core/pkg/entity"
)

// ErrNotFound is returned by Corpus.Get when no entity exists for the
// given key.
var ErrNotFound = errors.New("corpus: entity not found")

// ErrUnavailable is returned when the backing store cannot be reached.
var ErrUnavailable = errors.New("corpus: backing store unavailable")

// Corpus retrieves candidate entities for screening. It never scores;
// scoring happens in pkg/scoring against whatever candidates a Corpus
// returns.
type Corpus interface {
	// IsHealthy reports whether the backing store is reachable.
	IsHealthy(ctx context.Context) bool

	// Get fetches a single entity by its (Source, SourceID) natural key.
	Get(ctx context.Context, source entity.Source, sourceID string) (entity.Entity, error)

	// ListBySource returns up to limit entities from a given Source, used
	// for corpus-wide rescoring after a list update.
	ListBySource(ctx context.Context, source entity.Source, limit int) ([]entity.Entity, error)

	// Shortlist returns candidate IDs plausibly similar to query, cheap
	// enough to run before the full scoring pipeline. Implementations
	// are free to over-return; pkg/scoring and internal/rank narrow the
	// result down to the real match set.
	Shortlist(ctx context.Context, query entity.Entity, limit int) ([]string, error)

	Close() error
}
