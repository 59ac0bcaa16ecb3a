// Package store persists the session's user data: search history, the city
// watchlist, and the temperature unit preference. Persistence is advisory:
// a failed save never rolls back or blocks the in-memory state change it
// followed.
package store

import (
	"errors"

	"github.com/i474232898/weatherdeck/internal/weather"
)

// ErrPersist is returned when saving a value fails. It is never fatal to an
// in-memory operation; callers log it and move on.
var ErrPersist = errors.New("persist failed")

// MaxHistory caps how many search-history entries are kept.
const MaxHistory = 10

// Store is the contract persistence backends must satisfy. Load methods
// return the documented default when nothing has been saved yet: an empty
// history, an empty watchlist, and the metric unit.
type Store interface {
	LoadHistory() []string
	SaveHistory(cities []string) error

	LoadWatchlist() []string
	SaveWatchlist(cities []string) error

	LoadUnit() weather.Unit
	SaveUnit(unit weather.Unit) error
}
