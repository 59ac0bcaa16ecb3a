// Package providers implements weather.Provider against real upstream APIs,
// with retries, backoff, and circuit breaking around the HTTP calls.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weatherdeck/internal/weather"
)

// OpenWeatherProvider implements weather.Provider for OpenWeatherMap's
// /data/2.5 current-weather and 5-day/3-hour forecast endpoints.
type OpenWeatherProvider struct {
	name        string
	apiKey      string
	currentURL  string
	forecastURL string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherProvider{
		name:        "openweathermap",
		apiKey:      apiKey,
		currentURL:  "https://api.openweathermap.org/data/2.5/weather",
		forecastURL: "https://api.openweathermap.org/data/2.5/forecast",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// conditionEntry is the weather[] element shared by both endpoints.
type conditionEntry struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, city string) (weather.Snapshot, error) {
	resp, err := p.get(ctx, p.currentURL, city)
	if err != nil {
		return weather.Snapshot{}, classify(err)
	}
	defer resp.Body.Close()

	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Clouds struct {
			All float64 `json:"all"`
		} `json:"clouds"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []conditionEntry `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("%w: decode current weather: %v", weather.ErrUnavailable, err)
	}

	snap := weather.Snapshot{
		City:       payload.Name,
		Country:    payload.Sys.Country,
		TempC:      payload.Main.Temp,
		FeelsLikeC: payload.Main.FeelsLike,
		Humidity:   payload.Main.Humidity,
		Pressure:   payload.Main.Pressure,
		Cloudiness: payload.Clouds.All,
		WindSpeed:  payload.Wind.Speed,
	}
	if len(payload.Weather) > 0 {
		snap.Condition = payload.Weather[0].Description
		snap.Icon = payload.Weather[0].Icon
	}
	return snap, nil
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, city string) ([]weather.ForecastSample, error) {
	resp, err := p.get(ctx, p.forecastURL, city)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []conditionEntry `json:"weather"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode forecast: %v", weather.ErrUnavailable, err)
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for _, item := range payload.List {
		s := weather.ForecastSample{
			Timestamp: item.Dt,
			TempC:     item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			s.Condition = item.Weather[0].Description
			s.Icon = item.Weather[0].Icon
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, baseURL, city string) (*http.Response, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("q", city)

		u := fmt.Sprintf("%s?%s", baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	return doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
}

// classify maps transport-level failures onto the provider error contract:
// unresolvable cities keep ErrNotFound, everything else is ErrUnavailable.
func classify(err error) error {
	if errors.Is(err, weather.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", weather.ErrUnavailable, err)
}

var _ weather.Provider = (*OpenWeatherProvider)(nil)
