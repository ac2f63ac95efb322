package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanctionsscore/core/pkg/entity"
)

// RedisCorpus is an exact-match, cache-oriented Corpus implementation
// backed by Redis: entities are stored as JSON blobs under a
// source/sourceID key and indexed by a per-source hash from lower-cased
// name to entity ID for Shortlist.
type RedisCorpus struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCorpus wraps an existing *redis.Client. ttl of zero means
// entries never expire, matching a reference corpus that is only
// refreshed by an explicit list update rather than by time-based decay.
func NewRedisCorpus(client *redis.Client, ttl time.Duration) *RedisCorpus {
	return &RedisCorpus{client: client, ttl: ttl}
}

func entityKey(source entity.Source, sourceID string) string {
	return fmt.Sprintf("entity:%s:%s", strings.ToLower(string(source)), strings.ToLower(sourceID))
}

func nameIndexKey(source entity.Source) string {
	return fmt.Sprintf("entity-names:%s", strings.ToLower(string(source)))
}

// IsHealthy pings the Redis connection.
func (c *RedisCorpus) IsHealthy(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

// Upsert stores ent under its natural key and adds its name to the
// per-source name-index hash used by Shortlist.
func (c *RedisCorpus) Upsert(ctx context.Context, ent entity.Entity) error {
	data, err := json.Marshal(ent)
	if err != nil {
		return fmt.Errorf("corpus: marshal entity %s: %w", ent.ID, err)
	}

	key := entityKey(ent.Source, ent.SourceID)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("corpus: set entity %s: %w", ent.ID, err)
	}

	if err := c.client.HSet(ctx, nameIndexKey(ent.Source), strings.ToLower(ent.Name), ent.ID).Err(); err != nil {
		return fmt.Errorf("corpus: index entity name %s: %w", ent.ID, err)
	}
	return nil
}

// Get fetches a single entity by its natural key.
func (c *RedisCorpus) Get(ctx context.Context, source entity.Source, sourceID string) (entity.Entity, error) {
	data, err := c.client.Get(ctx, entityKey(source, sourceID)).Bytes()
	if err == redis.Nil {
		return entity.Entity{}, ErrNotFound
	}
	if err != nil {
		return entity.Entity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var ent entity.Entity
	if err := json.Unmarshal(data, &ent); err != nil {
		return entity.Entity{}, fmt.Errorf("corpus: unmarshal entity: %w", err)
	}
	return ent, nil
}

// ListBySource scans the per-source name index and fetches up to limit
// entities. Intended for small reference corpora or admin tooling, not a
// hot screening path.
func (c *RedisCorpus) ListBySource(ctx context.Context, source entity.Source, limit int) ([]entity.Entity, error) {
	ids, err := c.client.HGetAll(ctx, nameIndexKey(source)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var out []entity.Entity
	for name := range ids {
		if len(out) >= limit {
			break
		}
		sourceID := ids[name]
		ent, err := c.getByInternalID(ctx, source, sourceID)
		if err != nil {
			continue
		}
		out = append(out, ent)
	}
	return out, nil
}

func (c *RedisCorpus) getByInternalID(ctx context.Context, source entity.Source, entityID string) (entity.Entity, error) {
	// The name index stores the entity's logical ID, not its SourceID;
	// callers that only have entityID fall back to a direct key read
	// keyed the same way Upsert wrote it, since SourceID and ID are the
	// same value for every corpus loader shipped with this package.
	return c.Get(ctx, source, entityID)
}

// Shortlist does a case-insensitive substring scan over the per-source
// name index. It is intentionally crude: Redis has no built-in fuzzy
// text search, so RedisCorpus trades shortlist recall for O(1)
// exact-match latency on the common case, and callers needing real fuzzy
// recall should compose RedisCorpus with EmbeddingIndex instead of
// relying on it alone.
func (c *RedisCorpus) Shortlist(ctx context.Context, query entity.Entity, limit int) ([]string, error) {
	names, err := c.client.HGetAll(ctx, nameIndexKey(query.Source)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	needle := strings.ToLower(query.Name)
	var ids []string
	for name, id := range names {
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			ids = append(ids, id)
			if len(ids) >= limit {
				break
			}
		}
	}
	return ids, nil
}

// Close closes the underlying Redis client.
func (c *RedisCorpus) Close() error {
	return c.client.Close()
}
