package usecase

import (
	"math"
	"testing"
	"time"
)

func TestJulianDayKnownDate(t *testing.T) {
	dt := time.Date(1977, 9, 5, 17, 24, 0, 0, time.UTC)
	jd := JulianDay(dt)
	if math.Abs(jd-2443392.225) > 0.001 {
		t.Fatalf("jd = %v, want 2443392.225 +/- 0.001", jd)
	}
}

func TestJulianDayJ2000Epoch(t *testing.T) {
	dt := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	jd := JulianDay(dt)
	if math.Abs(jd-2451545.0) > 1e-9 {
		t.Fatalf("jd = %v, want 2451545.0", jd)
	}
}

func TestJulianDayJanuaryMonthShift(t *testing.T) {
	// January and February go through the month+12 branch.
	dt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jd := JulianDay(dt)
	if math.Abs(jd-2460310.5) > 1e-9 {
		t.Fatalf("jd = %v, want 2460310.5", jd)
	}
}

func TestJulianDaySubsecondPrecision(t *testing.T) {
	base := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	plus := base.Add(500 * time.Millisecond)
	diff := JulianDay(plus) - JulianDay(base)
	want := 0.5 / 86400
	if math.Abs(diff-want) > 1e-12 {
		t.Fatalf("half-second advanced jd by %v, want %v", diff, want)
	}
}
