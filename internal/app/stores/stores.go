// Package stores wires the typed collections of the development server to
// one of the interchangeable persistence backends.
package stores

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/campushub/campushub/models"
	"github.com/campushub/campushub/store"
	"github.com/campushub/campushub/store/localstore"
	"github.com/campushub/campushub/store/memstore"
	"github.com/campushub/campushub/store/pgstore"
	"github.com/campushub/campushub/store/redistore"
)

// Stores holds one typed collection per entity, all backed by the same
// adapter.
type Stores struct {
	Users         store.Store[*models.User]
	Events        store.Store[*models.Event]
	Blogs         store.Store[*models.BlogPost]
	StudyGroups   store.Store[*models.StudyGroup]
	Universities  store.Store[*models.University]
	Cities        store.Store[*models.City]
	Notifications store.Store[*models.Notification]
	Bookmarks     store.Store[*models.EventBookmark]
	Activity      store.Store[*models.ActivityEntry]

	// Values is the scalar key surface; only the local and memory backends
	// provide one.
	Values store.Values

	closer func()
}

// Close releases backend resources.
func (s *Stores) Close() {
	if s.closer != nil {
		s.closer()
	}
}

// NewLocal builds file-backed stores under dir.
func NewLocal(dir string, quota int64, logger zerolog.Logger) (*Stores, error) {
	opts := []localstore.Option{localstore.WithLogger(logger)}
	if quota > 0 {
		opts = append(opts, localstore.WithQuota(quota))
	}
	storage, err := localstore.Open(dir, opts...)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Users:         localstore.NewCollection[*models.User](storage, localstore.KeyUsers),
		Events:        localstore.NewCollection[*models.Event](storage, localstore.KeyEvents),
		Blogs:         localstore.NewCollection[*models.BlogPost](storage, localstore.KeyBlogPosts),
		StudyGroups:   localstore.NewCollection[*models.StudyGroup](storage, localstore.KeyStudyGroups),
		Universities:  localstore.NewCollection[*models.University](storage, localstore.KeyUniversities),
		Cities:        localstore.NewCollection[*models.City](storage, localstore.KeyCities),
		Notifications: localstore.NewCollection[*models.Notification](storage, localstore.KeyNotifications),
		Bookmarks:     localstore.NewCollection[*models.EventBookmark](storage, "eventBookmarks"),
		Activity:      localstore.NewCollection[*models.ActivityEntry](storage, "activity"),
		Values:        storage,
	}, nil
}

// NewMemory builds in-memory stores.
func NewMemory() *Stores {
	return &Stores{
		Users:         memstore.NewCollection[*models.User](),
		Events:        memstore.NewCollection[*models.Event](),
		Blogs:         memstore.NewCollection[*models.BlogPost](),
		StudyGroups:   memstore.NewCollection[*models.StudyGroup](),
		Universities:  memstore.NewCollection[*models.University](),
		Cities:        memstore.NewCollection[*models.City](),
		Notifications: memstore.NewCollection[*models.Notification](),
		Bookmarks:     memstore.NewCollection[*models.EventBookmark](),
		Activity:      memstore.NewCollection[*models.ActivityEntry](),
		Values:        memstore.NewValues(),
	}
}

// NewRedis builds Redis-backed stores.
func NewRedis(client *redis.Client, logger zerolog.Logger) *Stores {
	return &Stores{
		Users:         redistore.NewCollection[*models.User](client, localstore.KeyUsers, logger),
		Events:        redistore.NewCollection[*models.Event](client, localstore.KeyEvents, logger),
		Blogs:         redistore.NewCollection[*models.BlogPost](client, localstore.KeyBlogPosts, logger),
		StudyGroups:   redistore.NewCollection[*models.StudyGroup](client, localstore.KeyStudyGroups, logger),
		Universities:  redistore.NewCollection[*models.University](client, localstore.KeyUniversities, logger),
		Cities:        redistore.NewCollection[*models.City](client, localstore.KeyCities, logger),
		Notifications: redistore.NewCollection[*models.Notification](client, localstore.KeyNotifications, logger),
		Bookmarks:     redistore.NewCollection[*models.EventBookmark](client, "eventBookmarks", logger),
		Activity:      redistore.NewCollection[*models.ActivityEntry](client, "activity", logger),
		closer:        func() { _ = client.Close() },
	}
}

// NewPostgres builds Postgres-backed stores over the documents table.
func NewPostgres(pool *pgxpool.Pool) *Stores {
	return &Stores{
		Users:         pgstore.NewCollection[*models.User](pool, localstore.KeyUsers),
		Events:        pgstore.NewCollection[*models.Event](pool, localstore.KeyEvents),
		Blogs:         pgstore.NewCollection[*models.BlogPost](pool, localstore.KeyBlogPosts),
		StudyGroups:   pgstore.NewCollection[*models.StudyGroup](pool, localstore.KeyStudyGroups),
		Universities:  pgstore.NewCollection[*models.University](pool, localstore.KeyUniversities),
		Cities:        pgstore.NewCollection[*models.City](pool, localstore.KeyCities),
		Notifications: pgstore.NewCollection[*models.Notification](pool, localstore.KeyNotifications),
		Bookmarks:     pgstore.NewCollection[*models.EventBookmark](pool, "eventBookmarks"),
		Activity:      pgstore.NewCollection[*models.ActivityEntry](pool, "activity"),
		closer:        pool.Close,
	}
}
