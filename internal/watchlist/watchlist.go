// Package watchlist holds the user-curated list of cities tracked for
// side-by-side comparison, and the concurrent refresh of their weather.
package watchlist

// List is an ordered set of city names. Insertion order is preserved and is
// the display order for comparison, independent of fetch completion order.
// List is not safe for concurrent use; the view model serializes access.
type List struct {
	cities []string
}

// New builds a List from the given cities, silently dropping duplicates.
func New(cities ...string) *List {
	l := &List{}
	for _, c := range cities {
		l.Add(c)
	}
	return l
}

// Add appends a city, or reports false if it is already present.
// Matching is case-sensitive on the exact name.
func (l *List) Add(city string) bool {
	if l.Contains(city) {
		return false
	}
	l.cities = append(l.cities, city)
	return true
}

// Remove deletes a city, reporting whether it was present.
func (l *List) Remove(city string) bool {
	for i, c := range l.cities {
		if c == city {
			l.cities = append(l.cities[:i], l.cities[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether a city is on the list.
func (l *List) Contains(city string) bool {
	for _, c := range l.cities {
		if c == city {
			return true
		}
	}
	return false
}

// Cities returns a copy of the list in insertion order.
func (l *List) Cities() []string {
	out := make([]string, len(l.cities))
	copy(out, l.cities)
	return out
}

// Len returns the number of cities on the list.
func (l *List) Len() int {
	return len(l.cities)
}
