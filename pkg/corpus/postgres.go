package corpus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanctionsscore/core/pkg/entity"
)

// PostgresCorpus is a durable Corpus implementation backed by Postgres,
// storing each entity as a JSONB document alongside indexed scalar
// columns (source, source_id, name) for exact lookup and a pg_trgm
// similarity shortlist over entity names.
type PostgresCorpus struct {
	pool *pgxpool.Pool
}

// NewPostgresCorpus wraps an existing connection pool. The caller is
// responsible for running migrations that create the expected
// sanctioned_entities table (id text primary key, source text,
// source_id text, name text, document jsonb) with a pg_trgm GIN index on
// name.
func NewPostgresCorpus(pool *pgxpool.Pool) *PostgresCorpus {
	return &PostgresCorpus{pool: pool}
}

// IsHealthy pings the pool.
func (c *PostgresCorpus) IsHealthy(ctx context.Context) bool {
	return c.pool.Ping(ctx) == nil
}

// Upsert writes ent's JSONB document and indexed columns.
func (c *PostgresCorpus) Upsert(ctx context.Context, ent entity.Entity) error {
	doc, err := json.Marshal(ent)
	if err != nil {
		return fmt.Errorf("corpus: marshal entity %s: %w", ent.ID, err)
	}

	const stmt = `
		INSERT INTO sanctioned_entities (id, source, source_id, name, document)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			source = EXCLUDED.source,
			source_id = EXCLUDED.source_id,
			name = EXCLUDED.name,
			document = EXCLUDED.document
	`
	_, err = c.pool.Exec(ctx, stmt, ent.ID, string(ent.Source), ent.SourceID, ent.Name, doc)
	if err != nil {
		return fmt.Errorf("corpus: upsert entity %s: %w", ent.ID, err)
	}
	return nil
}

// Get fetches a single entity by (source, source_id).
func (c *PostgresCorpus) Get(ctx context.Context, source entity.Source, sourceID string) (entity.Entity, error) {
	const stmt = `SELECT document FROM sanctioned_entities WHERE source = $1 AND source_id = $2 LIMIT 1`

	var doc []byte
	err := c.pool.QueryRow(ctx, stmt, string(source), sourceID).Scan(&doc)
	if err == pgx.ErrNoRows {
		return entity.Entity{}, ErrNotFound
	}
	if err != nil {
		return entity.Entity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var ent entity.Entity
	if err := json.Unmarshal(doc, &ent); err != nil {
		return entity.Entity{}, fmt.Errorf("corpus: unmarshal entity: %w", err)
	}
	return ent, nil
}

// ListBySource fetches up to limit entities for a given source.
func (c *PostgresCorpus) ListBySource(ctx context.Context, source entity.Source, limit int) ([]entity.Entity, error) {
	const stmt = `SELECT document FROM sanctioned_entities WHERE source = $1 LIMIT $2`

	rows, err := c.pool.Query(ctx, stmt, string(source), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []entity.Entity
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("corpus: scan entity row: %w", err)
		}
		var ent entity.Entity
		if err := json.Unmarshal(doc, &ent); err != nil {
			return nil, fmt.Errorf("corpus: unmarshal entity: %w", err)
		}
		out = append(out, ent)
	}
	return out, rows.Err()
}

// Shortlist orders candidates by pg_trgm similarity() against query.Name
// and returns up to limit IDs above a fixed floor.
func (c *PostgresCorpus) Shortlist(ctx context.Context, query entity.Entity, limit int) ([]string, error) {
	const stmt = `
		SELECT id FROM sanctioned_entities
		WHERE source = $1 AND similarity(name, $2) > 0.3
		ORDER BY similarity(name, $2) DESC
		LIMIT $3
	`
	rows, err := c.pool.Query(ctx, stmt, string(query.Source), query.Name, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("corpus: scan shortlist row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the underlying connection pool.
func (c *PostgresCorpus) Close() error {
	c.pool.Close()
	return nil
}
