package corpus

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"

	"github.com/sanctionsscore/core/pkg/entity"
)

// EmbeddingProvider generates a vector embedding for free text.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// EmbeddingIndex is a Shortlist-only candidate source backed by
// chromem-go: it never scores a pair itself, it only narrows a large
// corpus down to the entities worth running through pkg/scoring.
type EmbeddingIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
	embed      EmbeddingProvider
}

// NewEmbeddingIndex creates (or opens) a named chromem-go collection
// backed by embed for vectorization. persistPath may be empty for an
// in-memory-only index.
func NewEmbeddingIndex(collectionName, persistPath string, embed EmbeddingProvider) (*EmbeddingIndex, error) {
	var db *chromem.DB
	var err error
	if persistPath != "" {
		db, err = chromem.NewPersistentDB(persistPath, false)
	} else {
		db = chromem.NewDB()
	}
	if err != nil {
		return nil, fmt.Errorf("corpus: open chromem-go db: %w", err)
	}

	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		return embed.Embed(ctx, text)
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("corpus: get or create collection %q: %w", collectionName, err)
	}

	return &EmbeddingIndex{db: db, collection: collection, embed: embed}, nil
}

// Index upserts an entity's searchable text (name plus alt-names) into
// the embedding collection, keyed by the entity's stable ID.
func (e *EmbeddingIndex) Index(ctx context.Context, ent entity.Entity) error {
	text := ent.Name
	for _, alt := range ent.AltNames() {
		text += " " + alt
	}

	doc := chromem.Document{
		ID:      ent.ID,
		Content: text,
		Metadata: map[string]string{
			"source":   string(ent.Source),
			"sourceId": ent.SourceID,
			"type":     string(ent.Type),
		},
	}
	if err := e.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("corpus: index entity %s: %w", ent.ID, err)
	}
	return nil
}

// Shortlist returns up to limit entity IDs whose indexed text is
// semantically close to query.Name. It is a narrowing step only: callers
// must still run the returned candidates through pkg/scoring before
// treating any of them as a match.
func (e *EmbeddingIndex) Shortlist(ctx context.Context, query entity.Entity, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	count := e.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := e.collection.Query(ctx, query.Name, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("corpus: shortlist query: %w", err)
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// Remove deletes an entity from the embedding index, used when a list
// update retires a sanctioned entity.
func (e *EmbeddingIndex) Remove(ctx context.Context, id string) error {
	return e.collection.Delete(ctx, nil, nil, id)
}

// Count reports how many entities are currently indexed.
func (e *EmbeddingIndex) Count() int {
	return e.collection.Count()
}
