package weather

import (
	"context"
)

// Provider abstracts the upstream weather data source (e.g. OpenWeatherMap).
// Implementations report unresolvable cities with ErrNotFound and transport
// or provider failures with ErrUnavailable, both matchable via errors.Is.
type Provider interface {
	Name() string
	FetchCurrent(ctx context.Context, city string) (Snapshot, error)
	FetchForecast(ctx context.Context, city string) ([]ForecastSample, error)
}
