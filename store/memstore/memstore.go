// Package memstore is an in-memory persistence adapter used by tests and
// the seeded development server.
package memstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/models"
	"github.com/campushub/campushub/store"
)

// Collection is an in-memory Store. Entities are deep-copied through JSON
// on the way in and out, so callers can't alias stored state.
type Collection[E store.Entity] struct {
	mu       sync.Mutex
	entities []E
}

// NewCollection returns an empty in-memory collection.
func NewCollection[E store.Entity]() *Collection[E] {
	return &Collection[E]{}
}

func clone[E any](in E) (E, error) {
	var out E
	data, err := json.Marshal(in)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(data, &out)
	return out, err
}

// List returns a copy of the full collection in insertion order.
func (c *Collection[E]) List(_ context.Context) ([]E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]E, 0, len(c.entities))
	for _, e := range c.entities {
		copied, err := clone(e)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	return out, nil
}

// Create validates the entity, assigns a server-style id when none is set
// and appends it.
func (c *Collection[E]) Create(_ context.Context, entity E) (E, error) {
	var zero E
	if err := store.ValidateEntity(entity); err != nil {
		return zero, err
	}

	copied, err := clone(entity)
	if err != nil {
		return zero, err
	}
	if copied.GetID() == "" {
		copied.SetID(models.NewID())
	}

	c.mu.Lock()
	c.entities = append(c.entities, copied)
	c.mu.Unlock()
	return copied, nil
}

// Update replaces the stored entity with the given id.
func (c *Collection[E]) Update(_ context.Context, id string, entity E) (E, error) {
	var zero E
	if err := store.ValidateEntity(entity); err != nil {
		return zero, err
	}

	copied, err := clone(entity)
	if err != nil {
		return zero, err
	}
	copied.SetID(id)

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entities {
		if c.entities[i].GetID() == id {
			c.entities[i] = copied
			return copied, nil
		}
	}
	return zero, apperrors.NewNotFoundError("no entity with id " + id)
}

// Remove deletes the entity with the given id.
func (c *Collection[E]) Remove(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.entities {
		if c.entities[i].GetID() == id {
			c.entities = append(c.entities[:i], c.entities[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("no entity with id " + id)
}

// Values is an in-memory key/value store with the same surface as the
// local storage adapter.
type Values struct {
	mu   sync.Mutex
	data map[string]json.RawMessage
}

// NewValues returns an empty key/value store.
func NewValues() *Values {
	return &Values{data: map[string]json.RawMessage{}}
}

// GetValue reads a key into out, reporting whether it was present.
func (v *Values) GetValue(key string, out interface{}) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	raw, ok := v.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, nil
	}
	return true, nil
}

// SetValue serializes and stores a key.
func (v *Values) SetValue(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.data[key] = data
	v.mu.Unlock()
	return nil
}

// DeleteValue removes a key.
func (v *Values) DeleteValue(key string) error {
	v.mu.Lock()
	delete(v.data, key)
	v.mu.Unlock()
	return nil
}
