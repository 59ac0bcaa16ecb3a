package weather

import (
	"time"
)

// Unit selects the temperature scale used for display values.
// Stored temperatures are always canonical Celsius; the unit only affects
// what Convert returns at render time.
type Unit string

const (
	UnitMetric   Unit = "metric"
	UnitImperial Unit = "imperial"
)

// ParseUnit normalizes a unit string, falling back to metric.
func ParseUnit(s string) Unit {
	if Unit(s) == UnitImperial {
		return UnitImperial
	}
	return UnitMetric
}

// Snapshot is a point-in-time weather reading for a single city.
// Immutable once constructed.
type Snapshot struct {
	City       string  `json:"city"`
	Country    string  `json:"country"`
	TempC      float64 `json:"temperatureC"`
	FeelsLikeC float64 `json:"feelsLikeC"`
	Humidity   float64 `json:"humidityPercent"`
	Pressure   float64 `json:"pressureHpa"`
	Cloudiness float64 `json:"cloudinessPercent"`
	WindSpeed  float64 `json:"windSpeedMs"`
	Condition  string  `json:"condition"`
	Icon       string  `json:"icon"`
}

// ForecastSample is one 3-hour-resolution forecast entry as returned by the
// provider. Produced only by providers, consumed only by Aggregate.
type ForecastSample struct {
	Timestamp int64   `json:"timestamp"` // epoch seconds
	TempC     float64 `json:"temperatureC"`
	Condition string  `json:"condition"`
	Icon      string  `json:"icon"`
}

// Time returns the sample's timestamp in the local time zone, which defines
// the calendar-day bucket the sample falls into.
func (s ForecastSample) Time() time.Time {
	return time.Unix(s.Timestamp, 0)
}

// DailySummary is one calendar day's rollup of forecast samples.
// HighC >= LowC always holds for summaries produced by Aggregate.
type DailySummary struct {
	Date      time.Time `json:"date"`
	Weekday   string    `json:"weekday"`
	HighC     float64   `json:"highC"`
	LowC      float64   `json:"lowC"`
	Condition string    `json:"condition"`
	Icon      string    `json:"icon"`
}
