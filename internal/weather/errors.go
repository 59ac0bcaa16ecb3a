package weather

import "errors"

var (
	// ErrInvalidInput is returned when a city name is blank.
	ErrInvalidInput = errors.New("city name must not be blank")

	// ErrNotFound is returned when the provider cannot resolve a city.
	ErrNotFound = errors.New("city not found")

	// ErrUnavailable is returned on transport or provider failure.
	ErrUnavailable = errors.New("weather data unavailable")

	// ErrAlreadyWatched is returned when adding a city that is already on
	// the watchlist.
	ErrAlreadyWatched = errors.New("city already on watchlist")
)
