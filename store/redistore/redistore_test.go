package redistore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/models"
)

// testClient connects to the Redis named by REDIS_ADDR, or skips.
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis integration test")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("failed to reach redis at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCollectionRoundTrip(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	const key = "redistore_test_users"
	client.Del(ctx, key)
	t.Cleanup(func() { client.Del(ctx, key) })

	users := NewCollection[*models.User](client, key, zerolog.Nop())

	created, err := users.Create(ctx, &models.User{Name: "Anna", Email: "anna@uni.edu"})
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
	if _, err := users.Update(ctx, created.ID, created); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if err := users.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := users.Remove(ctx, created.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCollectionMalformedPayloadTreatedAsEmpty(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	const key = "redistore_test_corrupt"
	client.Set(ctx, key, "{not json", 0)
	t.Cleanup(func() { client.Del(ctx, key) })

	users := NewCollection[*models.User](client, key, zerolog.Nop())
	listed, err := users.List(ctx)
	if err != nil {
		t.Fatalf("list over corrupt payload failed: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty collection, got %d", len(listed))
	}
}
