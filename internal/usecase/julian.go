package usecase

import (
	"math"
	"time"
)

// Charts before this Julian Day are outside the ephemeris validity range and
// are refused rather than silently clamped. JD 625673.5 is 1 Jan 3000 BC,
// comfortably inside every backend's range.
const minJulianDay = 625673.5

// JulianDay converts a UTC civil time to a Julian Day (UT) using the
// Gregorian-calendar formula from Meeus, Astronomical Algorithms ch. 7.
// Sub-second precision is preserved to microsecond granularity.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	year := t.Year()
	month := int(t.Month())
	day := t.Day()

	hour := float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond()/1000)/3_600_000_000

	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + b - 1524.5 + hour/24
}
