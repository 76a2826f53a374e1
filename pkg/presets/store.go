package presets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/tempus-dev/tempus-go/pkg/duration"
)

// StoreVersion is the current version of the presets file format.
const StoreVersion = 1

// ErrNotFound is returned when a named preset does not exist.
var ErrNotFound = errors.New("preset not found")

// presetsFile is the on-disk JSON shape. Durations are stored as
// ISO 8601 text so the file stays human-editable.
type presetsFile struct {
	// Version is the presets file format version.
	Version int `json:"version"`

	// SavedAt is when the presets were last saved.
	SavedAt time.Time `json:"saved_at"`

	// Presets maps preset names to ISO 8601 duration text.
	Presets map[string]string `json:"presets,omitempty"`
}

// Store manages a named collection of duration presets backed by a
// JSON file. Mutations write through to disk. Store is safe for
// concurrent use.
type Store struct {
	mu      sync.Mutex
	fs      afero.Fs
	path    string
	entries map[string]duration.Duration
}

// NewStore creates a presets store at the given path. The filesystem
// is abstracted so tests can run on afero.NewMemMapFs().
// Call Load before first use to pick up existing presets.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{
		fs:      fs,
		path:    path,
		entries: make(map[string]duration.Duration),
	}
}

// Load reads presets from disk, replacing any in-memory entries.
// A missing file is not an error and yields an empty store.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		s.entries = make(map[string]duration.Duration)
		return nil
	}
	if err != nil {
		return err
	}

	var file presetsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse presets file: %w", err)
	}

	entries := make(map[string]duration.Duration, len(file.Presets))
	for name, text := range file.Presets {
		d, err := duration.Parse(text)
		if err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
		entries[name] = d
	}
	s.entries = entries
	return nil
}

// Save stores a preset under the given name and persists the store.
// An existing preset with the same name is replaced.
func (s *Store) Save(name string, d duration.Duration) error {
	if name == "" {
		return errors.New("preset name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[name] = d
	return s.flushLocked()
}

// Get returns the preset with the given name.
// Returns ErrNotFound if no such preset exists.
func (s *Store) Get(name string) (duration.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.entries[name]
	if !ok {
		return duration.Zero, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return d, nil
}

// Delete removes the preset with the given name and persists the store.
// Returns ErrNotFound if no such preset exists.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(s.entries, name)
	return s.flushLocked()
}

// List returns all preset names in sorted order.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flush persists the current entries to disk.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// flushLocked writes the store to disk. Caller must hold s.mu.
func (s *Store) flushLocked() error {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file := presetsFile{
		Version: StoreVersion,
		SavedAt: time.Now(),
		Presets: make(map[string]string, len(s.entries)),
	}
	for name, d := range s.entries {
		file.Presets[name] = d.String()
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	return afero.WriteFile(s.fs, s.path, data, 0644)
}
