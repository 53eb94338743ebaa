package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/diogo/glassai/internal/models"
	"github.com/diogo/glassai/internal/storage"
)

// SettingsStore owns the singleton settings object. Updates are shallow
// merges; the full object is persisted on every change. No range validation
// is performed: out-of-range values are stored and applied as supplied.
type SettingsStore struct {
	mu       sync.RWMutex
	kv       storage.KV
	settings models.Settings
}

// NewSettingsStore creates a store, loading persisted settings or falling
// back to defaults on first run (or on a read failure, which is reported as
// a warning).
func NewSettingsStore(kv storage.KV) *SettingsStore {
	s := &SettingsStore{kv: kv, settings: models.DefaultSettings()}

	var loaded models.Settings
	ok, err := storage.GetJSON(context.Background(), kv, storage.KeySettings, &loaded)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
	}
	if ok {
		s.settings = loaded
	}
	return s
}

// Get returns the current settings.
func (s *SettingsStore) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update merges the patch over the current settings and persists the result.
func (s *SettingsStore) Update(patch models.SettingsPatch) models.Settings {
	s.mu.Lock()
	s.settings = patch.Apply(s.settings)
	updated := s.settings
	s.mu.Unlock()

	s.persist(updated)
	return updated
}

// Reset replaces all fields with the defaults and persists them.
func (s *SettingsStore) Reset() models.Settings {
	s.mu.Lock()
	s.settings = models.DefaultSettings()
	updated := s.settings
	s.mu.Unlock()

	s.persist(updated)
	return updated
}

// persist writes the full settings object. Failures are logged and swallowed;
// the in-memory copy keeps serving the running session.
func (s *SettingsStore) persist(settings models.Settings) {
	if err := storage.SetJSON(context.Background(), s.kv, storage.KeySettings, settings); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to persist settings: %v\n", err)
	}
}
