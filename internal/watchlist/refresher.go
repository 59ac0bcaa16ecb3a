package watchlist

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/i474232898/weatherdeck/internal/weather"
)

// FetchFunc fetches current weather for a single city.
type FetchFunc func(ctx context.Context, city string) (weather.Snapshot, error)

// Entry is the settled outcome of one city's fetch: either a snapshot or an
// explicit unavailable marker, never a partially filled snapshot.
type Entry struct {
	Snapshot    weather.Snapshot `json:"snapshot"`
	Unavailable bool             `json:"unavailable"`
}

// Result maps city name to its settled fetch outcome. A refresh always
// produces exactly one entry per requested city.
type Result map[string]Entry

// Clone returns a shallow copy of the result map.
func (r Result) Clone() Result {
	out := make(Result, len(r))
	for city, e := range r {
		out[city] = e
	}
	return out
}

// Refresh issues one concurrent fetch per city and waits for every fetch to
// settle before returning. A failing fetch becomes an unavailable marker for
// that city only; it never aborts or delays the others. An empty city list
// returns an empty result without fetching anything.
func Refresh(ctx context.Context, cities []string, fetchOne FetchFunc) Result {
	result := make(Result, len(cities))
	if len(cities) == 0 {
		return result
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, city := range cities {
		wg.Add(1)
		go func(city string) {
			defer wg.Done()

			snap, err := fetchOne(ctx, city)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				// Log and continue; one unreachable city must not blank
				// out the rest.
				logrus.WithField("city", city).WithError(err).Warn("watchlist fetch failed")
				result[city] = Entry{Unavailable: true}
				return
			}
			result[city] = Entry{Snapshot: snap}
		}(city)
	}

	wg.Wait()
	return result
}
