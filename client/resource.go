package client

import (
	"context"
	"net/http"

	"github.com/campushub/campushub/store"
)

// Resource is the typed REST surface of one collection. It satisfies
// store.Store, so list screens can swap it for the local adapters without
// changing the view code. List endpoints return flat arrays; mutation
// endpoints return the mutated resource.
type Resource[E store.Entity] struct {
	client *Client
	base   string
	path   string
}

func (r *Resource[E]) url(suffix string) string {
	return r.base + r.path + suffix
}

// List fetches the full collection.
func (r *Resource[E]) List(ctx context.Context) ([]E, error) {
	var out []E
	if err := r.client.do(ctx, http.MethodGet, r.url(""), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []E{}
	}
	return out, nil
}

// Get fetches one entity by id.
func (r *Resource[E]) Get(ctx context.Context, id string) (E, error) {
	var out E
	err := r.client.do(ctx, http.MethodGet, r.url("/"+id), nil, &out)
	return out, err
}

// Create validates the entity locally, then posts it. Validation failures
// short-circuit before any network call.
func (r *Resource[E]) Create(ctx context.Context, entity E) (E, error) {
	var out E
	if err := store.ValidateEntity(entity); err != nil {
		return out, err
	}
	err := r.client.do(ctx, http.MethodPost, r.url(""), entity, &out)
	return out, err
}

// Update validates, then patches the full object.
func (r *Resource[E]) Update(ctx context.Context, id string, entity E) (E, error) {
	var out E
	if err := store.ValidateEntity(entity); err != nil {
		return out, err
	}
	err := r.client.do(ctx, http.MethodPatch, r.url("/"+id), entity, &out)
	return out, err
}

// Remove deletes one entity by id.
func (r *Resource[E]) Remove(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.url("/"+id), nil, nil)
}
