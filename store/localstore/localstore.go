// Package localstore is the browser-storage analog: each key is one JSON
// file in a directory, read and written whole. Calls are synchronous and
// never suspend. Concurrent processes race on read-modify-write with
// last-write-wins semantics; that limitation is inherited deliberately and
// not papered over.
package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campushub/campushub/apperrors"
)

// Well-known storage keys.
const (
	KeyUsers            = "users"
	KeyEvents           = "events"
	KeyStudyGroups      = "studyGroups"
	KeyBlogPosts        = "blogPosts"
	KeyNotifications    = "notifications"
	KeyUniversities     = "universities"
	KeyCities           = "cities"
	KeyBookmarks        = "bookmarkedPosts"
	KeyUserData         = "userData"
	KeyActiveTab        = "activeTab"
	KeyDarkMode         = "darkMode"
	KeyMaintenanceUntil = "maintenanceEndTime"
)

// Storage is a directory of JSON-serialized keys.
type Storage struct {
	dir    string
	quota  int64
	mu     sync.Mutex
	logger zerolog.Logger
}

// Option configures a Storage.
type Option func(*Storage)

// WithQuota caps the serialized size of any single key, in bytes. Writes
// beyond the cap fail with apperrors.ErrStorageFull. Zero means unlimited.
func WithQuota(bytes int64) Option {
	return func(s *Storage) { s.quota = bytes }
}

// WithLogger sets the logger used for parse-failure warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Storage) { s.logger = logger }
}

// Open creates the directory if needed and returns a Storage over it.
func Open(dir string, opts ...Option) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Storage{dir: dir, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// readRaw returns the raw payload for a key, or nil when absent.
func (s *Storage) readRaw(key string) []byte {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil
	}
	return data
}

// writeRaw persists the raw payload for a key, enforcing the quota.
func (s *Storage) writeRaw(key string, data []byte) error {
	if s.quota > 0 && int64(len(data)) > s.quota {
		return apperrors.New(apperrors.ErrStorageFull,
			"serialized payload for key "+key+" exceeds storage quota")
	}
	return os.WriteFile(s.path(key), data, 0o644)
}

// GetValue reads a scalar or object key into out. Absent or malformed
// payloads report found=false rather than failing.
func (s *Storage) GetValue(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.readRaw(key)
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn().Str("key", key).Err(err).Msg("Malformed stored payload, treating as absent")
		return false, nil
	}
	return true, nil
}

// SetValue serializes and persists a scalar or object key.
func (s *Storage) SetValue(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.writeRaw(key, data)
}

// DeleteValue removes a key; deleting an absent key is a no-op.
func (s *Storage) DeleteValue(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
