package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/weatherdeck/internal/weather"
)

// RateLimitedProvider wraps a weather.Provider with client-side rate
// limiting, keeping the upstream API quota intact when a watchlist refresh
// fans out many requests at once. Current-weather and forecast calls share
// one limiter since they draw on the same quota.
type RateLimitedProvider struct {
	provider weather.Provider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider allows at most rps requests per second with the
// given burst across both fetch kinds.
func NewRateLimitedProvider(provider weather.Provider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [rate limited]", provider.Name()),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.name
}

func (r *RateLimitedProvider) FetchCurrent(ctx context.Context, city string) (weather.Snapshot, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return weather.Snapshot{}, fmt.Errorf("%w: rate limit wait canceled: %v", weather.ErrUnavailable, err)
	}
	return r.provider.FetchCurrent(ctx, city)
}

func (r *RateLimitedProvider) FetchForecast(ctx context.Context, city string) ([]weather.ForecastSample, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait canceled: %v", weather.ErrUnavailable, err)
	}
	return r.provider.FetchForecast(ctx, city)
}

var _ weather.Provider = (*RateLimitedProvider)(nil)
