package httpapi

import (
	"errors"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weatherdeck/internal/viewmodel"
	"github.com/i474232898/weatherdeck/internal/watchlist"
	"github.com/i474232898/weatherdeck/internal/weather"
)

var validate = validator.New()

// snapshotView is a weather snapshot with temperatures expressed in the
// active display unit.
type snapshotView struct {
	City       string  `json:"city"`
	Country    string  `json:"country"`
	Temp       float64 `json:"temperature"`
	FeelsLike  float64 `json:"feelsLike"`
	Humidity   float64 `json:"humidityPercent"`
	Pressure   float64 `json:"pressureHpa"`
	Cloudiness float64 `json:"cloudinessPercent"`
	WindSpeed  float64 `json:"windSpeedMs"`
	Condition  string  `json:"condition"`
	Icon       string  `json:"icon"`
}

func renderSnapshot(s weather.Snapshot, unit weather.Unit) snapshotView {
	return snapshotView{
		City:       s.City,
		Country:    s.Country,
		Temp:       weather.Convert(s.TempC, unit),
		FeelsLike:  weather.Convert(s.FeelsLikeC, unit),
		Humidity:   s.Humidity,
		Pressure:   s.Pressure,
		Cloudiness: s.Cloudiness,
		WindSpeed:  s.WindSpeed,
		Condition:  s.Condition,
		Icon:       s.Icon,
	}
}

// summaryView is a daily forecast rollup in the active display unit.
type summaryView struct {
	Date      string  `json:"date"`
	Weekday   string  `json:"weekday"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Condition string  `json:"condition"`
	Icon      string  `json:"icon"`
}

func renderSummaries(summaries []weather.DailySummary, unit weather.Unit) []summaryView {
	out := make([]summaryView, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, summaryView{
			Date:      s.Date.Format("2006-01-02"),
			Weekday:   s.Weekday,
			High:      weather.Convert(s.HighC, unit),
			Low:       weather.Convert(s.LowC, unit),
			Condition: s.Condition,
			Icon:      s.Icon,
		})
	}
	return out
}

// watchEntryView is one watchlist city's settled refresh outcome, in
// watchlist insertion order.
type watchEntryView struct {
	City        string        `json:"city"`
	Unavailable bool          `json:"unavailable"`
	Snapshot    *snapshotView `json:"snapshot,omitempty"`
}

func renderWatchlist(cities []string, result watchlist.Result, unit weather.Unit) []watchEntryView {
	out := make([]watchEntryView, 0, len(cities))
	for _, city := range cities {
		view := watchEntryView{City: city}
		entry, ok := result[city]
		switch {
		case !ok:
			// Never fetched yet; distinct from an unavailable marker.
			view.Unavailable = false
		case entry.Unavailable:
			view.Unavailable = true
		default:
			snap := renderSnapshot(entry.Snapshot, unit)
			view.Snapshot = &snap
		}
		out = append(out, view)
	}
	return out
}

// statusFromErr maps the core's error kinds onto HTTP statuses.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, weather.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, weather.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, weather.ErrAlreadyWatched):
		return fiber.StatusConflict
	case errors.Is(err, weather.ErrUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// urlDecode unescapes a path parameter; city names may contain spaces.
func urlDecode(s string) (string, error) {
	return url.PathUnescape(s)
}

type cityQuery struct {
	City string `validate:"required"`
}

type unitBody struct {
	Unit string `json:"unit" validate:"required,oneof=metric imperial"`
}

type addCityBody struct {
	City string `json:"city" validate:"required"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. The HTTP
// surface is a renderer over the view model: all state lives there.
func RegisterRoutes(app *fiber.App, vm *viewmodel.ViewModel) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q := cityQuery{City: c.Query("city")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
		}

		if err := vm.LoadCity(c.Context(), q.City); err != nil {
			return fiber.NewError(statusFromErr(err), err.Error())
		}

		unit := vm.Unit()
		snap, _ := vm.Current()
		return c.JSON(fiber.Map{
			"current":    renderSnapshot(snap, unit),
			"forecast":   renderSummaries(vm.Forecast(), unit),
			"unit":       unit,
			"unitSymbol": weather.Symbol(unit),
			"heatAlert":  vm.HeatAlert(),
		})
	})

	v1.Put("/unit", func(c *fiber.Ctx) error {
		var body unitBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "unit must be metric or imperial")
		}

		vm.SetUnit(weather.Unit(body.Unit))
		return c.JSON(fiber.Map{
			"unit":       vm.Unit(),
			"unitSymbol": weather.Symbol(vm.Unit()),
		})
	})

	v1.Get("/watchlist", func(c *fiber.Ctx) error {
		unit := vm.Unit()
		return c.JSON(fiber.Map{
			"cities":  vm.Watchlist(),
			"entries": renderWatchlist(vm.Watchlist(), vm.WatchlistResult(), unit),
		})
	})

	v1.Post("/watchlist", func(c *fiber.Ctx) error {
		var body addCityBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "city is required")
		}

		if err := vm.AddToWatchlist(c.Context(), body.City); err != nil {
			return fiber.NewError(statusFromErr(err), err.Error())
		}
		// Pull fresh data so the new city shows up populated.
		vm.RefreshWatchlist(c.Context())

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"cities": vm.Watchlist(),
		})
	})

	v1.Delete("/watchlist/:city", func(c *fiber.Ctx) error {
		city, err := urlDecode(c.Params("city"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid city name")
		}
		vm.RemoveFromWatchlist(city)
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/watchlist/refresh", func(c *fiber.Ctx) error {
		vm.RefreshWatchlist(c.Context())
		unit := vm.Unit()
		return c.JSON(fiber.Map{
			"refreshedAt": time.Now().UTC(),
			"entries":     renderWatchlist(vm.Watchlist(), vm.WatchlistResult(), unit),
		})
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cities": vm.SearchHistory(c.Query("q")),
		})
	})

	v1.Delete("/history/:city", func(c *fiber.Ctx) error {
		city, err := urlDecode(c.Params("city"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid city name")
		}
		vm.RemoveFromHistory(city)
		return c.SendStatus(fiber.StatusNoContent)
	})
}
