package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/i474232898/weatherdeck/internal/weather"
)

const (
	historyFile   = "search_history.json"
	watchlistFile = "watchlist.json"
	unitFile      = "unit_preference.json"
)

// FileStore keeps each value in a small JSON file under a directory.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// unitPreference is the on-disk shape of the unit setting.
type unitPreference struct {
	Unit string `json:"unit"`
}

func (s *FileStore) LoadHistory() []string {
	var cities []string
	s.loadJSON(historyFile, &cities)
	return cities
}

func (s *FileStore) SaveHistory(cities []string) error {
	return s.saveJSON(historyFile, cities)
}

func (s *FileStore) LoadWatchlist() []string {
	var cities []string
	s.loadJSON(watchlistFile, &cities)
	return cities
}

func (s *FileStore) SaveWatchlist(cities []string) error {
	return s.saveJSON(watchlistFile, cities)
}

func (s *FileStore) LoadUnit() weather.Unit {
	var pref unitPreference
	if !s.loadJSON(unitFile, &pref) {
		return weather.UnitMetric
	}
	return weather.ParseUnit(pref.Unit)
}

func (s *FileStore) SaveUnit(unit weather.Unit) error {
	return s.saveJSON(unitFile, unitPreference{Unit: string(unit)})
}

// loadJSON reads a value from a file, reporting false when the file is
// missing or unreadable so the caller falls back to its default.
func (s *FileStore) loadJSON(name string, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false
	}
	return true
}

func (s *FileStore) saveJSON(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersist, name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersist, name, err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
