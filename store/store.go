// Package store defines the persistence adapter contract shared by the
// local, in-memory, Redis, Postgres and HTTP backends. Components never
// touch storage directly; every read and write goes through a Store so
// ordering and serialization stay centrally controlled.
package store

import "context"

// Entity is the minimal contract a stored record must satisfy. Identifiers
// are unique, stable strings assigned at creation, either by the backend or
// by the adapter itself.
type Entity interface {
	GetID() string
	SetID(id string)
}

// Store is a persistence adapter for one collection of entities.
//
// List returns the full unfiltered collection. Create persists a new entity
// and returns it with its assigned id. Update replaces the stored entity
// and returns the result. Remove deletes by id and reports
// apperrors.ErrNotFound when no such entity exists.
type Store[E Entity] interface {
	List(ctx context.Context) ([]E, error)
	Create(ctx context.Context, entity E) (E, error)
	Update(ctx context.Context, id string, entity E) (E, error)
	Remove(ctx context.Context, id string) error
}

// Values is the key/value surface of the local adapter, covering the scalar
// state keys (active tab, dark mode, maintenance window and the like) that
// sit next to the collections.
type Values interface {
	GetValue(key string, out interface{}) (bool, error)
	SetValue(key string, value interface{}) error
	DeleteValue(key string) error
}
