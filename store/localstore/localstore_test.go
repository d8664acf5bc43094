package localstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/models"
)

func openTestStorage(t *testing.T, opts ...Option) *Storage {
	t.Helper()
	storage, err := Open(t.TempDir(), opts...)
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	return storage
}

func testUser(name, email string) *models.User {
	return &models.User{Name: name, Email: email, Role: models.RoleUser, Status: models.UserStatusActive}
}

func TestCollectionRoundTrip(t *testing.T) {
	storage := openTestStorage(t)
	users := NewCollection[*models.User](storage, KeyUsers)
	ctx := context.Background()

	created, err := users.Create(ctx, testUser("Anna", "anna@uni.edu"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}

	listed, err := users.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Anna" {
		t.Fatalf("unexpected collection: %+v", listed)
	}

	created.City = "Istanbul"
	updated, err := users.Update(ctx, created.ID, created)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.City != "Istanbul" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := users.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	listed, _ = users.List(ctx)
	if len(listed) != 0 {
		t.Fatalf("expected empty collection after remove, got %d", len(listed))
	}
}

func TestCollectionAssignsDistinctIDs(t *testing.T) {
	storage := openTestStorage(t)
	users := NewCollection[*models.User](storage, KeyUsers)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		created, err := users.Create(ctx, testUser("Anna", "anna@uni.edu"))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if seen[created.ID] {
			t.Fatalf("duplicate id assigned: %q", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestCollectionValidatesOnCreate(t *testing.T) {
	storage := openTestStorage(t)
	users := NewCollection[*models.User](storage, KeyUsers)

	_, err := users.Create(context.Background(), &models.User{Email: "anna@uni.edu"})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing name, got %v", err)
	}

	listed, _ := users.List(context.Background())
	if len(listed) != 0 {
		t.Fatalf("invalid entity was persisted")
	}
}

func TestCollectionUpdateMissingEntity(t *testing.T) {
	storage := openTestStorage(t)
	users := NewCollection[*models.User](storage, KeyUsers)

	_, err := users.Update(context.Background(), "absent", testUser("Anna", "anna@uni.edu"))
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := users.Remove(context.Background(), "absent"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCollectionCorruptPayloadTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	storage, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, KeyUsers+".json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt payload: %v", err)
	}

	users := NewCollection[*models.User](storage, KeyUsers)
	listed, err := users.List(context.Background())
	if err != nil {
		t.Fatalf("list over corrupt payload failed: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty collection, got %d", len(listed))
	}

	// writes recover the key
	if _, err := users.Create(context.Background(), testUser("Anna", "anna@uni.edu")); err != nil {
		t.Fatalf("create over corrupt payload failed: %v", err)
	}
	listed, _ = users.List(context.Background())
	if len(listed) != 1 {
		t.Fatalf("expected recovered collection with 1 entity, got %d", len(listed))
	}
}

func TestQuotaExceeded(t *testing.T) {
	storage := openTestStorage(t, WithQuota(64))
	users := NewCollection[*models.User](storage, KeyUsers)
	ctx := context.Background()

	// each serialized user is well past 64 bytes
	_, err := users.Create(ctx, testUser("Anna", "anna@uni.edu"))
	if !errors.Is(err, apperrors.ErrStorageFull) {
		t.Fatalf("expected ErrStorageFull, got %v", err)
	}

	listed, _ := users.List(ctx)
	if len(listed) != 0 {
		t.Fatalf("over-quota write was persisted")
	}
}

func TestValuesRoundTrip(t *testing.T) {
	storage := openTestStorage(t)

	if err := storage.SetValue(KeyDarkMode, true); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var dark bool
	found, err := storage.GetValue(KeyDarkMode, &dark)
	if err != nil || !found {
		t.Fatalf("get failed: found=%v err=%v", found, err)
	}
	if !dark {
		t.Fatal("expected stored value true")
	}

	if err := storage.DeleteValue(KeyDarkMode); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	found, _ = storage.GetValue(KeyDarkMode, &dark)
	if found {
		t.Fatal("expected value absent after delete")
	}

	// deleting an absent key is a no-op
	if err := storage.DeleteValue(KeyDarkMode); err != nil {
		t.Fatalf("double delete failed: %v", err)
	}
}

func TestValuesMalformedPayloadReportsAbsent(t *testing.T) {
	dir := t.TempDir()
	storage, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, KeyActiveTab+".json"), []byte("{{{"), 0o644); err != nil {
		t.Fatalf("failed to write malformed payload: %v", err)
	}

	var tab string
	found, err := storage.GetValue(KeyActiveTab, &tab)
	if err != nil {
		t.Fatalf("get over malformed payload failed: %v", err)
	}
	if found {
		t.Fatal("expected malformed payload reported as absent")
	}
}
