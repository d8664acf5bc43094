package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/models"
)

func TestCollectionCRUD(t *testing.T) {
	events := NewCollection[*models.Event]()
	ctx := context.Background()

	created, err := events.Create(ctx, &models.Event{
		Name:     "Go Workshop",
		DateTime: mustTime(t, "2026-09-15T18:00:00Z"),
		Status:   models.EventStatusUpcoming,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}

	created.Location = "B-104"
	updated, err := events.Update(ctx, created.ID, created)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Location != "B-104" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := events.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := events.Remove(ctx, created.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestCollectionPreservesInsertionOrder(t *testing.T) {
	cities := NewCollection[*models.City]()
	ctx := context.Background()

	names := []string{"Istanbul", "Ankara", "Izmir"}
	for _, name := range names {
		if _, err := cities.Create(ctx, &models.City{Name: name}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	listed, err := cities.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i, name := range names {
		if listed[i].Name != name {
			t.Fatalf("insertion order broken: %+v", listed)
		}
	}
}

func TestCollectionDoesNotAliasStoredState(t *testing.T) {
	users := NewCollection[*models.User]()
	ctx := context.Background()

	created, err := users.Create(ctx, &models.User{Name: "Anna", Email: "anna@uni.edu"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// mutating the returned entity must not leak into the store
	created.Name = "changed"
	listed, _ := users.List(ctx)
	if listed[0].Name != "Anna" {
		t.Fatalf("stored state was aliased: %+v", listed[0])
	}

	// mutating a listed entity must not either
	listed[0].Name = "changed again"
	relisted, _ := users.List(ctx)
	if relisted[0].Name != "Anna" {
		t.Fatalf("stored state was aliased via List: %+v", relisted[0])
	}
}

func TestCollectionValidates(t *testing.T) {
	users := NewCollection[*models.User]()
	_, err := users.Create(context.Background(), &models.User{Name: "Anna", Email: "nope"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestValues(t *testing.T) {
	values := NewValues()

	if err := values.SetValue("activeTab", "events"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	var tab string
	found, err := values.GetValue("activeTab", &tab)
	if err != nil || !found || tab != "events" {
		t.Fatalf("get: found=%v tab=%q err=%v", found, tab, err)
	}

	if err := values.DeleteValue("activeTab"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if found, _ := values.GetValue("activeTab", &tab); found {
		t.Fatal("expected value absent after delete")
	}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", value, err)
	}
	return out
}
