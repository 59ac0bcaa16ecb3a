package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weatherdeck/internal/store"
	"github.com/i474232898/weatherdeck/internal/viewmodel"
	"github.com/i474232898/weatherdeck/internal/weather"
)

// stubProvider resolves a fixed set of cities.
type stubProvider struct {
	cities map[string]weather.Snapshot
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) FetchCurrent(ctx context.Context, city string) (weather.Snapshot, error) {
	snap, ok := s.cities[city]
	if !ok {
		return weather.Snapshot{}, weather.ErrNotFound
	}
	return snap, nil
}

func (s *stubProvider) FetchForecast(ctx context.Context, city string) ([]weather.ForecastSample, error) {
	if _, ok := s.cities[city]; !ok {
		return nil, weather.ErrNotFound
	}
	return []weather.ForecastSample{
		{Timestamp: 1_700_000_000, TempC: 15, Condition: "clear sky", Icon: "01d"},
	}, nil
}

func newTestApp() *fiber.App {
	provider := &stubProvider{cities: map[string]weather.Snapshot{
		"paris": {City: "Paris", Country: "FR", TempC: 20, FeelsLikeC: 19},
		"Paris": {City: "Paris", Country: "FR", TempC: 20, FeelsLikeC: 19},
	}}
	vm := viewmodel.New(provider, store.NewMemoryStore())

	app := fiber.New()
	RegisterRoutes(app, vm)
	return app
}

func TestWeatherRequiresCityParam(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestWeatherUnknownCity(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=atlantis", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestWeatherLookupAndUnitSwitch(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=paris", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		Current struct {
			City string  `json:"city"`
			Temp float64 `json:"temperature"`
		} `json:"current"`
		Forecast   []json.RawMessage `json:"forecast"`
		UnitSymbol string            `json:"unitSymbol"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Current.City != "Paris" || body.Current.Temp != 20 {
		t.Errorf("current = %+v, want Paris at 20", body.Current)
	}
	if body.UnitSymbol != "°C" {
		t.Errorf("unitSymbol = %q, want °C", body.UnitSymbol)
	}
	if len(body.Forecast) == 0 {
		t.Error("forecast missing from response")
	}

	// Switch to imperial; the same canonical data renders as Fahrenheit.
	put := httptest.NewRequest(http.MethodPut, "/api/v1/unit", bytes.NewBufferString(`{"unit":"imperial"}`))
	put.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(put)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT /unit status = %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=paris", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Current.Temp != 68 {
		t.Errorf("imperial temperature = %v, want 68", body.Current.Temp)
	}
}

func TestUnitValidation(t *testing.T) {
	app := newTestApp()

	put := httptest.NewRequest(http.MethodPut, "/api/v1/unit", bytes.NewBufferString(`{"unit":"kelvin"}`))
	put.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(put)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestWatchlistAddDuplicateConflicts(t *testing.T) {
	app := newTestApp()

	add := func() *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/watchlist", bytes.NewBufferString(`{"city":"paris"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return resp
	}

	if resp := add(); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first add status = %d, want 201", resp.StatusCode)
	}
	if resp := add(); resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate add status = %d, want 409", resp.StatusCode)
	}
}

func TestWatchlistAddUnknownCity(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/watchlist", bytes.NewBufferString(`{"city":"atlantis"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestWatchlistRemoveIsIdempotent(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/watchlist/Nowhere", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, resp.StatusCode)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	app := newTestApp()

	// A successful lookup lands the canonical name in history.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=paris", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body struct {
		Cities []string `json:"cities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Cities) != 1 || body.Cities[0] != "Paris" {
		t.Fatalf("history = %v, want [Paris]", body.Cities)
	}
}
