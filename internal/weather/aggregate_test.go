package weather

import (
	"testing"
	"time"
)

// sampleAt builds a ForecastSample on the given local day at the given hour.
func sampleAt(t *testing.T, day, hour int, temp float64, condition, icon string) ForecastSample {
	t.Helper()
	ts := time.Date(2025, time.March, day, hour, 0, 0, 0, time.Local)
	return ForecastSample{
		Timestamp: ts.Unix(),
		TempC:     temp,
		Condition: condition,
		Icon:      icon,
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Fatalf("Aggregate(nil) = %v, want empty", got)
	}
	if got := Aggregate([]ForecastSample{}); len(got) != 0 {
		t.Fatalf("Aggregate(empty) = %v, want empty", got)
	}
}

func TestAggregateTwoDays(t *testing.T) {
	samples := []ForecastSample{
		sampleAt(t, 10, 6, 10, "clear", "01d"),
		sampleAt(t, 10, 12, 14, "clear", "01d"),
		sampleAt(t, 10, 18, 9, "rain", "02d"),
		sampleAt(t, 11, 9, 5, "snow", "13d"),
	}

	got := Aggregate(samples)
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}

	day1 := got[0]
	if day1.HighC != 14 || day1.LowC != 9 {
		t.Errorf("day1 high/low = %v/%v, want 14/9", day1.HighC, day1.LowC)
	}
	if day1.Condition != "clear" || day1.Icon != "01d" {
		t.Errorf("day1 condition/icon = %q/%q, want clear/01d", day1.Condition, day1.Icon)
	}

	day2 := got[1]
	if day2.HighC != 5 || day2.LowC != 5 {
		t.Errorf("day2 high/low = %v/%v, want 5/5", day2.HighC, day2.LowC)
	}
	if day2.Condition != "snow" || day2.Icon != "13d" {
		t.Errorf("day2 condition/icon = %q/%q, want snow/13d", day2.Condition, day2.Icon)
	}

	if !got[0].Date.Before(got[1].Date) {
		t.Errorf("summaries not sorted by date: %v, %v", got[0].Date, got[1].Date)
	}
}

func TestAggregateTieBreaksByFirstEncountered(t *testing.T) {
	// Two conditions with equal counts; "rain" is seen first.
	samples := []ForecastSample{
		sampleAt(t, 10, 0, 8, "rain", "10d"),
		sampleAt(t, 10, 3, 9, "clear", "01d"),
		sampleAt(t, 10, 6, 10, "rain", "01d"),
		sampleAt(t, 10, 9, 11, "clear", "10d"),
	}

	got := Aggregate(samples)
	if len(got) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(got))
	}
	if got[0].Condition != "rain" {
		t.Errorf("condition = %q, want rain (first encountered among tied)", got[0].Condition)
	}
	// Icons tie too; "10d" was first.
	if got[0].Icon != "10d" {
		t.Errorf("icon = %q, want 10d (first encountered among tied)", got[0].Icon)
	}
}

func TestAggregateConditionAndIconChosenIndependently(t *testing.T) {
	// Dominant condition comes from different samples than the dominant icon.
	samples := []ForecastSample{
		sampleAt(t, 10, 0, 8, "cloudy", "04d"),
		sampleAt(t, 10, 3, 9, "cloudy", "03d"),
		sampleAt(t, 10, 6, 10, "rain", "03d"),
	}

	got := Aggregate(samples)
	if len(got) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(got))
	}
	if got[0].Condition != "cloudy" {
		t.Errorf("condition = %q, want cloudy", got[0].Condition)
	}
	if got[0].Icon != "03d" {
		t.Errorf("icon = %q, want 03d", got[0].Icon)
	}
}

func TestAggregateTruncatesToFiveDays(t *testing.T) {
	var samples []ForecastSample
	for day := 1; day <= 7; day++ {
		samples = append(samples, sampleAt(t, day, 12, float64(day), "clear", "01d"))
	}

	got := Aggregate(samples)
	if len(got) != MaxForecastDays {
		t.Fatalf("expected %d summaries, got %d", MaxForecastDays, len(got))
	}
	// First five days, ascending.
	for i, s := range got {
		if s.HighC != float64(i+1) {
			t.Errorf("summary %d has temp %v, want %v", i, s.HighC, float64(i+1))
		}
	}
}

func TestAggregateHighNeverBelowLow(t *testing.T) {
	samples := []ForecastSample{
		sampleAt(t, 10, 0, -3, "snow", "13d"),
		sampleAt(t, 10, 6, 2, "snow", "13d"),
		sampleAt(t, 10, 12, -7.5, "snow", "13n"),
		sampleAt(t, 11, 12, 0, "cloudy", "04d"),
	}

	for _, s := range Aggregate(samples) {
		if s.HighC < s.LowC {
			t.Errorf("day %v: high %v < low %v", s.Date, s.HighC, s.LowC)
		}
	}
}

func TestAggregateWeekdayMatchesDate(t *testing.T) {
	samples := []ForecastSample{sampleAt(t, 10, 12, 20, "clear", "01d")}

	got := Aggregate(samples)
	if len(got) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(got))
	}
	if got[0].Weekday != got[0].Date.Weekday().String() {
		t.Errorf("weekday %q does not match date %v", got[0].Weekday, got[0].Date)
	}
}
