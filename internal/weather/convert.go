package weather

// Convert returns a canonical Celsius temperature expressed in the given
// display unit. Metric values pass through unchanged.
func Convert(tempC float64, unit Unit) float64 {
	if unit == UnitImperial {
		return tempC*9/5 + 32
	}
	return tempC
}

// Symbol returns the degree symbol for a display unit.
func Symbol(unit Unit) string {
	if unit == UnitImperial {
		return "°F"
	}
	return "°C"
}
