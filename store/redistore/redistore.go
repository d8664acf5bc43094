// Package redistore is a Redis-backed persistence adapter. Each collection
// lives under a single key as one JSON array, mirroring the whole-array
// read-modify-write semantics of the local adapter so the two stay
// interchangeable. Last write wins across concurrent writers.
package redistore

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/models"
	"github.com/campushub/campushub/store"
)

// Collection is a Store over one Redis key.
type Collection[E store.Entity] struct {
	client *redis.Client
	key    string
	logger zerolog.Logger
}

// NewCollection binds an entity type to a Redis key.
func NewCollection[E store.Entity](client *redis.Client, key string, logger zerolog.Logger) *Collection[E] {
	return &Collection[E]{client: client, key: key, logger: logger}
}

func (c *Collection[E]) load(ctx context.Context) ([]E, error) {
	entities := []E{}
	data, err := c.client.Get(ctx, c.key).Result()
	if err != nil {
		if err == redis.Nil {
			return entities, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &entities); err != nil {
		c.logger.Warn().Str("key", c.key).Err(err).
			Msg("Malformed stored collection, treating as empty")
		return []E{}, nil
	}
	return entities, nil
}

func (c *Collection[E]) save(ctx context.Context, entities []E) error {
	data, err := json.Marshal(entities)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, data, 0).Err()
}

// List returns the full collection.
func (c *Collection[E]) List(ctx context.Context) ([]E, error) {
	return c.load(ctx)
}

// Create validates the entity, assigns an id when none is set, appends it
// and writes the array back.
func (c *Collection[E]) Create(ctx context.Context, entity E) (E, error) {
	var zero E
	if err := store.ValidateEntity(entity); err != nil {
		return zero, err
	}

	entities, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	if entity.GetID() == "" {
		entity.SetID(models.NewID())
	}
	if err := c.save(ctx, append(entities, entity)); err != nil {
		return zero, err
	}
	return entity, nil
}

// Update replaces the stored entity with the given id.
func (c *Collection[E]) Update(ctx context.Context, id string, entity E) (E, error) {
	var zero E
	if err := store.ValidateEntity(entity); err != nil {
		return zero, err
	}

	entities, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for i := range entities {
		if entities[i].GetID() == id {
			entity.SetID(id)
			entities[i] = entity
			if err := c.save(ctx, entities); err != nil {
				return zero, err
			}
			return entity, nil
		}
	}
	return zero, apperrors.NewNotFoundError("no entity with id " + id + " in " + c.key)
}

// Remove filters the entity out of the collection.
func (c *Collection[E]) Remove(ctx context.Context, id string) error {
	entities, err := c.load(ctx)
	if err != nil {
		return err
	}
	kept := entities[:0]
	for _, e := range entities {
		if e.GetID() != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entities) {
		return apperrors.NewNotFoundError("no entity with id " + id + " in " + c.key)
	}
	return c.save(ctx, kept)
}
