package store

import (
	"sync"

	"github.com/i474232898/weatherdeck/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory Store. It backs tests and
// sessions run without a data directory.
type MemoryStore struct {
	mu        sync.RWMutex
	history   []string
	watchlist []string
	unit      weather.Unit
}

// NewMemoryStore creates an empty MemoryStore with the metric default.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{unit: weather.UnitMetric}
}

func (s *MemoryStore) LoadHistory() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyStrings(s.history)
}

func (s *MemoryStore) SaveHistory(cities []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = copyStrings(cities)
	return nil
}

func (s *MemoryStore) LoadWatchlist() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyStrings(s.watchlist)
}

func (s *MemoryStore) SaveWatchlist(cities []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchlist = copyStrings(cities)
	return nil
}

func (s *MemoryStore) LoadUnit() weather.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unit
}

func (s *MemoryStore) SaveUnit(unit weather.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unit = unit
	return nil
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

var _ Store = (*MemoryStore)(nil)
