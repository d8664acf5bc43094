package collection

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/campushub/campushub/apperrors"
)

// item is the entity used by the dispatcher and view tests.
type item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (i *item) GetID() string   { return i.ID }
func (i *item) SetID(id string) { i.ID = id }

func itemDescriptor() Descriptor[*item] {
	return Descriptor[*item]{
		Fields: map[string]func(*item) interface{}{
			"name":   func(i *item) interface{} { return i.Name },
			"status": func(i *item) interface{} { return i.Status },
		},
		SearchFields: []string{"name"},
		FoldFilters:  []string{"status"},
	}
}

// fakeStore records calls and can be made to fail or block.
type fakeStore struct {
	mu        sync.Mutex
	items     []*item
	calls     []string
	failWith  error
	listGate  chan struct{} // when set, List blocks until the gate closes
	listCount int
}

func newFakeStore(items ...*item) *fakeStore {
	return &fakeStore{items: items}
}

func (s *fakeStore) record(call string) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
}

func (s *fakeStore) List(ctx context.Context) ([]*item, error) {
	s.record("list")
	s.mu.Lock()
	gate := s.listGate
	s.listCount++
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *fakeStore) Create(ctx context.Context, entity *item) (*item, error) {
	s.record("create")
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if entity.ID == "" {
		entity.ID = "generated"
	}
	s.items = append(s.items, entity)
	return entity, nil
}

func (s *fakeStore) Update(ctx context.Context, id string, entity *item) (*item, error) {
	s.record("update")
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.items {
		if existing.ID == id {
			s.items[i] = entity
			return entity, nil
		}
	}
	return nil, apperrors.NewNotFoundError("item")
}

func (s *fakeStore) Remove(ctx context.Context, id string) error {
	s.record("remove")
	if s.failWith != nil {
		return s.failWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.items {
		if existing.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("item")
}

// recordingNotifier captures outcome messages.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	n.successes = append(n.successes, msg)
	n.mu.Unlock()
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	n.errors = append(n.errors, msg)
	n.mu.Unlock()
}

func alwaysConfirm(context.Context, Action, string) (bool, error) { return true, nil }
func neverConfirm(context.Context, Action, string) (bool, error)  { return false, nil }

func TestDispatchViewIsReadOnly(t *testing.T) {
	st := newFakeStore(&item{ID: "1"})
	d := NewDispatcher[*item](st)

	if err := d.Dispatch(context.Background(), ActionView, &item{ID: "1"}); err != nil {
		t.Fatalf("view action failed: %v", err)
	}
	if len(st.calls) != 0 {
		t.Fatalf("view action touched the store: %v", st.calls)
	}
}

func TestDispatchDeleteRequiresConfirmation(t *testing.T) {
	st := newFakeStore(&item{ID: "1"})
	d := NewDispatcher[*item](st, WithConfirm[*item](neverConfirm))

	err := d.Dispatch(context.Background(), ActionDelete, &item{ID: "1"})
	if !errors.Is(err, apperrors.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if len(st.calls) != 0 {
		t.Fatalf("dismissed action touched the store: %v", st.calls)
	}
	if len(st.items) != 1 {
		t.Fatalf("dismissed delete removed the entity")
	}
}

func TestDispatchDeleteRefetchesAfterMutation(t *testing.T) {
	st := newFakeStore(&item{ID: "1"}, &item{ID: "2"})
	notifier := &recordingNotifier{}
	var refreshed []*item
	d := NewDispatcher[*item](st,
		WithConfirm[*item](alwaysConfirm),
		WithNotifier[*item](notifier),
		WithRefresh[*item](func(items []*item) { refreshed = items }),
	)

	if err := d.Dispatch(context.Background(), ActionDelete, &item{ID: "1"}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// the refetch must come after the mutation, never before
	if len(st.calls) != 2 || st.calls[0] != "remove" || st.calls[1] != "list" {
		t.Fatalf("unexpected call order: %v", st.calls)
	}
	if len(refreshed) != 1 || refreshed[0].ID != "2" {
		t.Fatalf("refresh sink got stale collection: %v", refreshed)
	}
	if len(notifier.successes) != 1 {
		t.Fatalf("expected one success notification, got %v", notifier.successes)
	}
}

func TestDispatchCreateDoesNotNeedConfirmation(t *testing.T) {
	st := newFakeStore()
	d := NewDispatcher[*item](st) // no confirm func installed

	if err := d.Dispatch(context.Background(), ActionCreate, &item{Name: "new"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(st.items) != 1 {
		t.Fatalf("expected entity created, got %d", len(st.items))
	}
}

func TestDispatchFailureLeavesCollectionUnchanged(t *testing.T) {
	st := newFakeStore(&item{ID: "1"})
	st.failWith = apperrors.ErrServer
	notifier := &recordingNotifier{}
	refreshCalled := false
	d := NewDispatcher[*item](st,
		WithConfirm[*item](alwaysConfirm),
		WithNotifier[*item](notifier),
		WithRefresh[*item](func([]*item) { refreshCalled = true }),
	)

	err := d.Dispatch(context.Background(), ActionDelete, &item{ID: "1"})
	if !errors.Is(err, apperrors.ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
	if len(st.items) != 1 {
		t.Fatalf("failed delete changed the collection")
	}
	if refreshCalled {
		t.Fatalf("failed mutation triggered a refresh")
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("failure was silent; expected one error notification, got %v", notifier.errors)
	}
}

func TestDispatchTransformAction(t *testing.T) {
	st := newFakeStore(&item{ID: "1", Status: "Active"})
	d := NewDispatcher[*item](st,
		WithConfirm[*item](alwaysConfirm),
		WithTransform[*item](ActionSuspend, func(i *item) *item {
			clone := *i
			clone.Status = "Suspended"
			return &clone
		}),
	)

	if err := d.Dispatch(context.Background(), ActionSuspend, &item{ID: "1", Status: "Active"}); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}
	if st.items[0].Status != "Suspended" {
		t.Fatalf("expected persisted status Suspended, got %q", st.items[0].Status)
	}
}

func TestDispatchDuplicateSubmissionIsRejected(t *testing.T) {
	st := newFakeStore(&item{ID: "1"})
	gate := make(chan struct{})
	st.listGate = gate // first dispatch blocks in the refetch
	d := NewDispatcher[*item](st, WithConfirm[*item](alwaysConfirm))

	firstErr := make(chan error, 1)
	go func() {
		firstErr <- d.Dispatch(context.Background(), ActionDelete, &item{ID: "1"})
	}()

	// wait until the first dispatch reaches the blocked refetch
	for {
		st.mu.Lock()
		reached := st.listCount > 0
		st.mu.Unlock()
		if reached {
			break
		}
		runtime.Gosched()
	}

	err := d.Dispatch(context.Background(), ActionDelete, &item{ID: "1"})
	if !errors.Is(err, apperrors.ErrMutationInFlight) {
		t.Fatalf("expected ErrMutationInFlight, got %v", err)
	}

	close(gate)
	if err := <-firstErr; err != nil {
		t.Fatalf("first dispatch failed: %v", err)
	}
	if len(st.items) != 0 {
		t.Fatalf("expected exactly one delete to apply, items left: %d", len(st.items))
	}
}
