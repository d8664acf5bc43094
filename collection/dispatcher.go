package collection

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/store"
)

// Action is a discrete user-triggered action token.
type Action string

const (
	ActionView     Action = "view"
	ActionEdit     Action = "edit"
	ActionCreate   Action = "create"
	ActionDelete   Action = "delete"
	ActionSuspend  Action = "suspend"
	ActionActivate Action = "activate"
	ActionCancel   Action = "cancel"
)

// destructive reports whether the action changes state in a way that must
// pass through a confirmation step first.
func (a Action) destructive() bool {
	switch a {
	case ActionDelete, ActionSuspend, ActionActivate, ActionCancel:
		return true
	default:
		return false
	}
}

// ConfirmFunc asks the user to confirm a destructive action. Returning
// false dismisses the action with no side effect. There is no timeout.
type ConfirmFunc func(ctx context.Context, action Action, entityID string) (bool, error)

// Notifier surfaces outcomes to the user, the toast analog. Failures are
// never silent.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Dispatcher routes action tokens to confirmation and persistence. Every
// successful mutation is followed by a full refetch of the collection from
// the source of truth; local state is never patched in place, so the view
// cannot diverge from the backend.
type Dispatcher[E store.Entity] struct {
	store      store.Store[E]
	confirm    ConfirmFunc
	notifier   Notifier
	onRefresh  func([]E)
	transforms map[Action]func(E) E
	logger     zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption[E store.Entity] func(*Dispatcher[E])

// WithConfirm installs the confirmation step for destructive actions.
// Without one, destructive actions are dismissed.
func WithConfirm[E store.Entity](confirm ConfirmFunc) DispatcherOption[E] {
	return func(d *Dispatcher[E]) { d.confirm = confirm }
}

// WithNotifier installs the user-facing outcome surface.
func WithNotifier[E store.Entity](notifier Notifier) DispatcherOption[E] {
	return func(d *Dispatcher[E]) { d.notifier = notifier }
}

// WithRefresh installs the sink that receives the refetched collection
// after each successful mutation.
func WithRefresh[E store.Entity](fn func([]E)) DispatcherOption[E] {
	return func(d *Dispatcher[E]) { d.onRefresh = fn }
}

// WithView binds the dispatcher's refetch to a View.
func WithView[E store.Entity](view *View[E]) DispatcherOption[E] {
	return func(d *Dispatcher[E]) { d.onRefresh = view.replace }
}

// WithTransform registers the entity mutation behind a quick action such as
// suspend, activate or cancel. The transformed entity is persisted with a
// full-object update.
func WithTransform[E store.Entity](action Action, fn func(E) E) DispatcherOption[E] {
	return func(d *Dispatcher[E]) { d.transforms[action] = fn }
}

// WithDispatcherLogger sets the logger.
func WithDispatcherLogger[E store.Entity](logger zerolog.Logger) DispatcherOption[E] {
	return func(d *Dispatcher[E]) { d.logger = logger }
}

// NewDispatcher creates a Dispatcher over a persistence adapter.
func NewDispatcher[E store.Entity](st store.Store[E], opts ...DispatcherOption[E]) *Dispatcher[E] {
	d := &Dispatcher[E]{
		store:      st,
		notifier:   nopNotifier{},
		transforms: map[Action]func(E) E{},
		logger:     zerolog.Nop(),
		inFlight:   map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher[E]) begin(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, pending := d.inFlight[key]; pending {
		return false
	}
	d.inFlight[key] = struct{}{}
	return true
}

func (d *Dispatcher[E]) end(key string) {
	d.mu.Lock()
	delete(d.inFlight, key)
	d.mu.Unlock()
}

// Dispatch runs one action against one entity. Destructive actions go
// through the confirmation step first; a dismissed confirmation returns
// apperrors.ErrNotConfirmed and has no side effect. A duplicate submission
// while the same (action, id) mutation is pending returns
// apperrors.ErrMutationInFlight. On failure the collection is left
// unchanged and the error is surfaced through the notifier; the mutation is
// never partially applied.
func (d *Dispatcher[E]) Dispatch(ctx context.Context, action Action, entity E) error {
	if action == ActionView {
		// read-only flow, nothing to persist
		return nil
	}

	key := string(action) + ":" + entity.GetID()
	if !d.begin(key) {
		return apperrors.ErrMutationInFlight
	}
	defer d.end(key)

	if action.destructive() {
		if d.confirm == nil {
			return apperrors.ErrNotConfirmed
		}
		ok, err := d.confirm(ctx, action, entity.GetID())
		if err != nil {
			return err
		}
		if !ok {
			d.logger.Debug().Str("action", string(action)).Str("id", entity.GetID()).
				Msg("Action dismissed at confirmation")
			return apperrors.ErrNotConfirmed
		}
	}

	if err := d.mutate(ctx, action, entity); err != nil {
		d.logger.Error().Err(err).Str("action", string(action)).Str("id", entity.GetID()).
			Msg("Mutation failed")
		d.notifier.Error(fmt.Sprintf("%s failed: %s", action, err))
		return err
	}

	// The refetch starts only after the mutation resolved, so the UI never
	// reports success before the refreshed list reflects it.
	entities, err := d.store.List(ctx)
	if err != nil {
		d.logger.Error().Err(err).Str("action", string(action)).Msg("Refetch after mutation failed")
		d.notifier.Error(fmt.Sprintf("refresh failed: %s", err))
		return err
	}
	if d.onRefresh != nil {
		d.onRefresh(entities)
	}
	d.notifier.Success(fmt.Sprintf("%s succeeded", action))
	return nil
}

func (d *Dispatcher[E]) mutate(ctx context.Context, action Action, entity E) error {
	switch action {
	case ActionCreate:
		_, err := d.store.Create(ctx, entity)
		return err
	case ActionEdit:
		_, err := d.store.Update(ctx, entity.GetID(), entity)
		return err
	case ActionDelete:
		return d.store.Remove(ctx, entity.GetID())
	default:
		transform, ok := d.transforms[action]
		if !ok {
			return fmt.Errorf("no transform registered for action %q", action)
		}
		entity = transform(entity)
		_, err := d.store.Update(ctx, entity.GetID(), entity)
		return err
	}
}
