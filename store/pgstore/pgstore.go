// Package pgstore is a Postgres-backed persistence adapter. Collections are
// stored as JSONB documents in a single table, one row per entity, so the
// same duck-typed records flow through it as through the other adapters.
package pgstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/models"
	"github.com/campushub/campushub/store"
)

// NewPool creates a pgx connection pool and verifies connectivity.
func NewPool(ctx context.Context, connString string, maxConns int32) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}
	poolConfig.MaxConnLifetime = time.Hour

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the documents table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection  TEXT        NOT NULL,
			id          TEXT        NOT NULL,
			doc         JSONB       NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (collection, id)
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating documents table: %w", err)
	}
	return nil
}

// Collection is a Store over one collection name in the documents table.
type Collection[E store.Entity] struct {
	pool *pgxpool.Pool
	name string
}

// NewCollection binds an entity type to a collection name.
func NewCollection[E store.Entity](pool *pgxpool.Pool, name string) *Collection[E] {
	return &Collection[E]{pool: pool, name: name}
}

// List returns the full collection in insertion order.
func (c *Collection[E]) List(ctx context.Context) ([]E, error) {
	query := squirrel.Select("doc").
		From("documents").
		Where("collection = ?", c.name).
		OrderBy("created_at", "id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	entities := []E{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		var entity E
		if err := json.Unmarshal(doc, &entity); err != nil {
			return nil, fmt.Errorf("error decoding document: %w", err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return entities, nil
}

// Get retrieves a single entity by id.
func (c *Collection[E]) Get(ctx context.Context, id string) (E, error) {
	var zero E
	query := squirrel.Select("doc").
		From("documents").
		Where("collection = ?", c.name).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return zero, fmt.Errorf("error building SQL: %w", err)
	}

	var doc []byte
	err = c.pool.QueryRow(ctx, sql, args...).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return zero, apperrors.NewNotFoundError("no entity with id " + id + " in " + c.name)
		}
		return zero, fmt.Errorf("error executing query: %w", err)
	}

	var entity E
	if err := json.Unmarshal(doc, &entity); err != nil {
		return zero, fmt.Errorf("error decoding document: %w", err)
	}
	return entity, nil
}

// Create validates the entity, assigns an id when none is set and inserts
// the document.
func (c *Collection[E]) Create(ctx context.Context, entity E) (E, error) {
	var zero E
	if err := store.ValidateEntity(entity); err != nil {
		return zero, err
	}

	if entity.GetID() == "" {
		entity.SetID(models.NewID())
	}
	doc, err := json.Marshal(entity)
	if err != nil {
		return zero, err
	}

	query := squirrel.Insert("documents").
		Columns("collection", "id", "doc").
		Values(c.name, entity.GetID(), doc).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return zero, fmt.Errorf("error building SQL: %w", err)
	}
	if _, err := c.pool.Exec(ctx, sql, args...); err != nil {
		return zero, fmt.Errorf("error executing query: %w", err)
	}
	return entity, nil
}

// Update replaces the stored document with the given id.
func (c *Collection[E]) Update(ctx context.Context, id string, entity E) (E, error) {
	var zero E
	if err := store.ValidateEntity(entity); err != nil {
		return zero, err
	}

	entity.SetID(id)
	doc, err := json.Marshal(entity)
	if err != nil {
		return zero, err
	}

	query := squirrel.Update("documents").
		Set("doc", doc).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("collection = ?", c.name).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return zero, fmt.Errorf("error building SQL: %w", err)
	}
	result, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return zero, fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return zero, apperrors.NewNotFoundError("no entity with id " + id + " in " + c.name)
	}
	return entity, nil
}

// Remove deletes the document with the given id.
func (c *Collection[E]) Remove(ctx context.Context, id string) error {
	query := squirrel.Delete("documents").
		Where("collection = ?", c.name).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	result, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("no entity with id " + id + " in " + c.name)
	}
	return nil
}
