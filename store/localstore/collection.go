package localstore

import (
	"context"
	"encoding/json"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/store"
)

// Collection is a Store over one JSON-array key of a Storage. The full
// array is read, mutated and written back on every call, mirroring how the
// browser storage system of record behaves.
type Collection[E store.Entity] struct {
	storage *Storage
	key     string
}

// NewCollection binds an entity type to a storage key.
func NewCollection[E store.Entity](storage *Storage, key string) *Collection[E] {
	return &Collection[E]{storage: storage, key: key}
}

// lastID dedupes millisecond ids assigned within the same process. Two
// processes can still collide, matching the documented Date.now caveat.
var lastID atomic.Int64

func nextLocalID() string {
	now := time.Now().UnixMilli()
	for {
		prev := lastID.Load()
		if now <= prev {
			now = prev + 1
		}
		if lastID.CompareAndSwap(prev, now) {
			return strconv.FormatInt(now, 10)
		}
	}
}

func (c *Collection[E]) load() []E {
	c.storage.mu.Lock()
	defer c.storage.mu.Unlock()
	return c.loadLocked()
}

func (c *Collection[E]) loadLocked() []E {
	entities := []E{}
	data := c.storage.readRaw(c.key)
	if data == nil {
		return entities
	}
	if err := json.Unmarshal(data, &entities); err != nil {
		c.storage.logger.Warn().Str("key", c.key).Err(err).
			Msg("Malformed stored collection, treating as empty")
		return []E{}
	}
	return entities
}

func (c *Collection[E]) saveLocked(entities []E) error {
	data, err := json.Marshal(entities)
	if err != nil {
		return err
	}
	return c.storage.writeRaw(c.key, data)
}

// List returns the full collection. A missing or corrupt payload yields an
// empty collection, never an error.
func (c *Collection[E]) List(_ context.Context) ([]E, error) {
	return c.load(), nil
}

// Create validates the entity, assigns a millisecond id when none is set,
// appends it and persists the whole array.
func (c *Collection[E]) Create(_ context.Context, entity E) (E, error) {
	var zero E
	if err := store.ValidateEntity(entity); err != nil {
		return zero, err
	}

	c.storage.mu.Lock()
	defer c.storage.mu.Unlock()

	if entity.GetID() == "" {
		entity.SetID(nextLocalID())
	}
	entities := append(c.loadLocked(), entity)
	if err := c.saveLocked(entities); err != nil {
		return zero, err
	}
	return entity, nil
}

// Update replaces the stored entity with the given id.
func (c *Collection[E]) Update(_ context.Context, id string, entity E) (E, error) {
	var zero E
	if err := store.ValidateEntity(entity); err != nil {
		return zero, err
	}

	c.storage.mu.Lock()
	defer c.storage.mu.Unlock()

	entities := c.loadLocked()
	for i := range entities {
		if entities[i].GetID() == id {
			entity.SetID(id)
			entities[i] = entity
			if err := c.saveLocked(entities); err != nil {
				return zero, err
			}
			return entity, nil
		}
	}
	return zero, apperrors.NewNotFoundError("no entity with id " + id + " in " + c.key)
}

// Remove filters the entity out of the collection and persists the rest.
func (c *Collection[E]) Remove(_ context.Context, id string) error {
	c.storage.mu.Lock()
	defer c.storage.mu.Unlock()

	entities := c.loadLocked()
	kept := entities[:0]
	for _, e := range entities {
		if e.GetID() != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entities) {
		return apperrors.NewNotFoundError("no entity with id " + id + " in " + c.key)
	}
	return c.saveLocked(kept)
}
