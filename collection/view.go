package collection

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campushub/campushub/store"
)

// View binds a persistence adapter, the full unfiltered entity set and one
// QueryState into a managed collection screen. All list screens share this
// one implementation, so page clamping and search-resets-page behave the
// same everywhere: the page is re-clamped after every state change.
type View[E store.Entity] struct {
	store    store.Store[E]
	desc     Descriptor[E]
	pageSize int
	logger   zerolog.Logger

	mu            sync.Mutex
	entities      []E
	query         QueryState
	refreshCancel context.CancelFunc
	refreshSeq    uint64
}

// ViewOption configures a View.
type ViewOption[E store.Entity] func(*View[E])

// WithViewLogger sets the logger.
func WithViewLogger[E store.Entity](logger zerolog.Logger) ViewOption[E] {
	return func(v *View[E]) { v.logger = logger }
}

// NewView creates a managed collection view. pageSize is fixed per screen
// and not user-configurable.
func NewView[E store.Entity](st store.Store[E], desc Descriptor[E], pageSize int, opts ...ViewOption[E]) *View[E] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	v := &View[E]{
		store:    st,
		desc:     desc,
		pageSize: pageSize,
		logger:   zerolog.Nop(),
		query:    NewQueryState(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Refresh refetches the full collection from the source of truth. A refresh
// started while a previous one is still in flight cancels the older one, so
// a stale response can never overwrite a newer collection.
func (v *View[E]) Refresh(ctx context.Context) error {
	v.mu.Lock()
	if v.refreshCancel != nil {
		v.refreshCancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	v.refreshCancel = cancel
	v.refreshSeq++
	seq := v.refreshSeq
	v.mu.Unlock()

	entities, err := v.store.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.refreshSeq {
		// superseded by a newer refresh; drop the stale response or error
		v.logger.Debug().Msg("Dropping superseded refresh response")
		return nil
	}
	if err != nil {
		return err
	}
	v.entities = entities
	v.clampLocked()
	return nil
}

// replace installs a refetched collection, used by the dispatcher.
func (v *View[E]) replace(entities []E) {
	v.mu.Lock()
	v.entities = entities
	v.clampLocked()
	v.mu.Unlock()
}

// clampLocked re-clamps the current page against the projected total.
func (v *View[E]) clampLocked() {
	result := Project(v.entities, v.desc, v.query, v.pageSize)
	v.query.Page = result.Page
}

// Page projects the current page.
func (v *View[E]) Page() PageResult[E] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Project(v.entities, v.desc, v.query, v.pageSize)
}

// Query returns a copy of the current query state.
func (v *View[E]) Query() QueryState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query.Clone()
}

// SetSearchTerm updates the search term, resets the page to 1 and re-clamps.
func (v *View[E]) SetSearchTerm(term string) {
	v.mu.Lock()
	v.query.SetSearchTerm(term)
	v.clampLocked()
	v.mu.Unlock()
}

// SetFilter updates one field filter and re-clamps the page.
func (v *View[E]) SetFilter(field, value string) {
	v.mu.Lock()
	v.query.SetFilter(field, value)
	v.clampLocked()
	v.mu.Unlock()
}

// SetSort updates the sort key or toggles the direction.
func (v *View[E]) SetSort(key string) {
	v.mu.Lock()
	v.query.SetSort(key)
	v.mu.Unlock()
}

// SetPage navigates to a page, clamped to [1, totalPages].
func (v *View[E]) SetPage(n int) {
	v.mu.Lock()
	v.query.SetPage(n)
	v.clampLocked()
	v.mu.Unlock()
}

// ResetFilters clears every field filter and re-clamps the page.
func (v *View[E]) ResetFilters() {
	v.mu.Lock()
	v.query.ResetFilters()
	v.clampLocked()
	v.mu.Unlock()
}
