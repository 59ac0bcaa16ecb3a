// Package viewmodel owns the weather session state the renderer displays:
// the current city's weather and forecast, the watchlist and its last
// refresh result, the search history, and the display unit. All state
// mutation goes through the ViewModel; fetch goroutines only return values.
package viewmodel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/i474232898/weatherdeck/internal/common"
	"github.com/i474232898/weatherdeck/internal/store"
	"github.com/i474232898/weatherdeck/internal/watchlist"
	"github.com/i474232898/weatherdeck/internal/weather"
)

// Phase is the state of the single-city lookup machine.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
)

// HeatAlertThresholdC is the canonical temperature above which the current
// snapshot is flagged for a heat warning.
const HeatAlertThresholdC = 35.0

// ViewModel orchestrates the weather session for a single logical user.
// It is safe for concurrent use.
type ViewModel struct {
	provider weather.Provider
	store    store.Store

	mu          sync.Mutex
	unit        weather.Unit
	phase       Phase
	generation  uint64 // lookup generation; stale completions never publish
	current     *weather.Snapshot
	forecast    []weather.DailySummary
	history     []string
	watch       *watchlist.List
	watchResult watchlist.Result
}

// New builds a ViewModel wired to its collaborators, restoring the unit
// preference, watchlist, and search history from the store.
func New(provider weather.Provider, st store.Store) *ViewModel {
	return &ViewModel{
		provider:    provider,
		store:       st,
		unit:        st.LoadUnit(),
		history:     st.LoadHistory(),
		watch:       watchlist.New(st.LoadWatchlist()...),
		watchResult: watchlist.Result{},
	}
}

// Unit returns the active display unit.
func (vm *ViewModel) Unit() weather.Unit {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.unit
}

// SetUnit switches the display unit. Stored canonical values are untouched;
// the renderer re-derives display values via weather.Convert, so no network
// fetch happens here. The preference is persisted, advisory only.
func (vm *ViewModel) SetUnit(unit weather.Unit) {
	vm.mu.Lock()
	vm.unit = weather.ParseUnit(string(unit))
	unit = vm.unit
	vm.mu.Unlock()

	if err := vm.store.SaveUnit(unit); err != nil {
		logrus.WithError(err).Warn("unit preference not persisted")
	}
}

// Phase returns the current state of the single-city lookup machine.
func (vm *ViewModel) Phase() Phase {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.phase
}

// Current returns the current city's snapshot, if one has been loaded.
func (vm *ViewModel) Current() (weather.Snapshot, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.current == nil {
		return weather.Snapshot{}, false
	}
	return *vm.current, true
}

// Forecast returns the current city's daily summaries.
func (vm *ViewModel) Forecast() []weather.DailySummary {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]weather.DailySummary, len(vm.forecast))
	copy(out, vm.forecast)
	return out
}

// HeatAlert reports whether the current snapshot calls for a heat warning.
func (vm *ViewModel) HeatAlert() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.current != nil && vm.current.TempC > HeatAlertThresholdC
}

// Watchlist returns the watchlist cities in insertion order.
func (vm *ViewModel) Watchlist() []string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.watch.Cities()
}

// WatchlistResult returns the last refresh cycle's outcome per city.
func (vm *ViewModel) WatchlistResult() watchlist.Result {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.watchResult.Clone()
}

// History returns the search history, most recent first.
func (vm *ViewModel) History() []string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]string, len(vm.history))
	copy(out, vm.history)
	return out
}

// SearchHistory returns history entries containing the query,
// case-insensitively; an empty query returns the whole history.
func (vm *ViewModel) SearchHistory(query string) []string {
	query = strings.TrimSpace(query)
	var out []string
	for _, city := range vm.History() {
		if query == "" || common.ContainsFold(city, query) {
			out = append(out, city)
		}
	}
	return out
}

// LoadCity fetches current weather and the 5-day forecast for a city
// concurrently and publishes both together: if either fetch fails the whole
// lookup fails and any previously displayed data is left untouched. A newer
// lookup supersedes an outstanding one; the superseded completion is
// discarded instead of overwriting fresher data.
func (vm *ViewModel) LoadCity(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return weather.ErrInvalidInput
	}

	vm.mu.Lock()
	vm.generation++
	gen := vm.generation
	vm.phase = Loading
	vm.mu.Unlock()

	var (
		wg          sync.WaitGroup
		snap        weather.Snapshot
		samples     []weather.ForecastSample
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		snap, currentErr = vm.provider.FetchCurrent(ctx, city)
	}()
	go func() {
		defer wg.Done()
		samples, forecastErr = vm.provider.FetchForecast(ctx, city)
	}()
	wg.Wait()

	err := currentErr
	if err == nil {
		err = forecastErr
	}

	var summaries []weather.DailySummary
	if err == nil {
		summaries = weather.Aggregate(samples)
	}

	vm.mu.Lock()
	if gen != vm.generation {
		// A newer lookup was issued while this one was in flight.
		vm.mu.Unlock()
		return nil
	}
	if err != nil {
		vm.phase = Failed
		vm.mu.Unlock()
		return fmt.Errorf("load %s: %w", city, err)
	}
	vm.current = &snap
	vm.forecast = summaries
	vm.phase = Loaded
	vm.recordHistory(snap.City)
	history := make([]string, len(vm.history))
	copy(history, vm.history)
	vm.mu.Unlock()

	if err := vm.store.SaveHistory(history); err != nil {
		logrus.WithError(err).Warn("search history not persisted")
	}
	return nil
}

// recordHistory puts the canonical city name at the front of the history,
// deduplicating and capping at store.MaxHistory. Caller holds vm.mu.
func (vm *ViewModel) recordHistory(city string) {
	for i, c := range vm.history {
		if c == city {
			vm.history = append(vm.history[:i], vm.history[i+1:]...)
			break
		}
	}
	vm.history = append([]string{city}, vm.history...)
	if len(vm.history) > store.MaxHistory {
		vm.history = vm.history[:store.MaxHistory]
	}
}

// RemoveFromHistory drops a city from the search history. Idempotent.
func (vm *ViewModel) RemoveFromHistory(city string) {
	vm.mu.Lock()
	removed := false
	for i, c := range vm.history {
		if c == city {
			vm.history = append(vm.history[:i], vm.history[i+1:]...)
			removed = true
			break
		}
	}
	history := make([]string, len(vm.history))
	copy(history, vm.history)
	vm.mu.Unlock()

	if !removed {
		return
	}
	if err := vm.store.SaveHistory(history); err != nil {
		logrus.WithError(err).Warn("search history not persisted")
	}
}

// AddToWatchlist verifies a city with one provider fetch and appends its
// canonical name to the watchlist. A city that cannot be fetched is never
// added; a duplicate (exact match on the canonical name) fails with
// ErrAlreadyWatched.
func (vm *ViewModel) AddToWatchlist(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return weather.ErrInvalidInput
	}

	snap, err := vm.provider.FetchCurrent(ctx, city)
	if err != nil {
		return fmt.Errorf("verify %s: %w", city, err)
	}
	canonical := snap.City

	vm.mu.Lock()
	if !vm.watch.Add(canonical) {
		vm.mu.Unlock()
		return fmt.Errorf("%s: %w", canonical, weather.ErrAlreadyWatched)
	}
	cities := vm.watch.Cities()
	vm.mu.Unlock()

	if err := vm.store.SaveWatchlist(cities); err != nil {
		logrus.WithError(err).Warn("watchlist not persisted")
	}
	return nil
}

// RemoveFromWatchlist removes a city and drops its cached refresh entry.
// Idempotent when the city is absent.
func (vm *ViewModel) RemoveFromWatchlist(city string) {
	vm.mu.Lock()
	removed := vm.watch.Remove(city)
	delete(vm.watchResult, city)
	cities := vm.watch.Cities()
	vm.mu.Unlock()

	if !removed {
		return
	}
	if err := vm.store.SaveWatchlist(cities); err != nil {
		logrus.WithError(err).Warn("watchlist not persisted")
	}
}

// RefreshWatchlist fetches current weather for every watched city
// concurrently and replaces the whole cached result. Per-city failures are
// absorbed into unavailable markers and never fail the cycle.
func (vm *ViewModel) RefreshWatchlist(ctx context.Context) watchlist.Result {
	vm.mu.Lock()
	cities := vm.watch.Cities()
	vm.mu.Unlock()

	result := watchlist.Refresh(ctx, cities, vm.provider.FetchCurrent)

	vm.mu.Lock()
	// Drop entries for cities removed while the refresh was in flight.
	for city := range result {
		if !vm.watch.Contains(city) {
			delete(result, city)
		}
	}
	vm.watchResult = result
	out := result.Clone()
	vm.mu.Unlock()

	return out
}
