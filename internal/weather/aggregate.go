package weather

import (
	"sort"
	"time"
)

// MaxForecastDays caps how many daily summaries Aggregate returns.
const MaxForecastDays = 5

// tally counts string occurrences while remembering first-encountered order,
// so ties resolve to whichever value appeared first in the input.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(v string) {
	if _, seen := t.counts[v]; !seen {
		t.order = append(t.order, v)
	}
	t.counts[v]++
}

func (t *tally) top() string {
	best := ""
	bestCount := 0
	for _, v := range t.order {
		if t.counts[v] > bestCount {
			bestCount = t.counts[v]
			best = v
		}
	}
	return best
}

type dayBucket struct {
	date       time.Time
	high       float64
	low        float64
	conditions *tally
	icons      *tally
}

// Aggregate groups 3-hour forecast samples into per-day summaries: one entry
// per local calendar day present in the input, sorted by date ascending and
// truncated to MaxForecastDays. High/low are the extremes of the day's
// temperatures; condition and icon are each the day's most frequent value,
// chosen independently. Empty input yields an empty result, never an error.
func Aggregate(samples []ForecastSample) []DailySummary {
	if len(samples) == 0 {
		return nil
	}

	buckets := make(map[string]*dayBucket)
	for _, s := range samples {
		ts := s.Time()
		key := ts.Format("2006-01-02")

		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{
				date:       time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
				high:       s.TempC,
				low:        s.TempC,
				conditions: newTally(),
				icons:      newTally(),
			}
			buckets[key] = b
		}

		if s.TempC > b.high {
			b.high = s.TempC
		}
		if s.TempC < b.low {
			b.low = s.TempC
		}
		b.conditions.add(s.Condition)
		b.icons.add(s.Icon)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) > MaxForecastDays {
		keys = keys[:MaxForecastDays]
	}

	summaries := make([]DailySummary, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		summaries = append(summaries, DailySummary{
			Date:      b.date,
			Weekday:   b.date.Weekday().String(),
			HighC:     b.high,
			LowC:      b.low,
			Condition: b.conditions.top(),
			Icon:      b.icons.top(),
		})
	}

	return summaries
}
