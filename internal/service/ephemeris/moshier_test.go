package ephemeris

import (
	"context"
	"math"
	"testing"

	"TrueArk/internal/domain/models"
)

// Reference epoch: 1977-09-05T17:24:00Z (JD 2443392.225).
const jd1977 = 2443392.225

func TestMoshierSunVirgo1977(t *testing.T) {
	m := NewMoshier()
	lon, speed, err := m.BodyPosition(context.Background(), jd1977, models.Sun)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lon <= 150 || lon >= 180 {
		t.Fatalf("Sun longitude = %v, want (150, 180) i.e. Virgo", lon)
	}
	if speed < 0.9 || speed > 1.1 {
		t.Fatalf("Sun speed = %v deg/day, want about 1", speed)
	}
}

func TestMoshierSunAtJ2000(t *testing.T) {
	m := NewMoshier()
	lon, _, err := m.BodyPosition(context.Background(), 2451545.0, models.Sun)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Geometric solar longitude at the J2000 epoch is a hair over 280 deg.
	if lon < 279 || lon > 282 {
		t.Fatalf("Sun longitude at J2000 = %v, want about 280.5", lon)
	}
}

func TestMoshierMoonSpeed(t *testing.T) {
	m := NewMoshier()
	_, speed, err := m.BodyPosition(context.Background(), jd1977, models.Moon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The Moon covers between roughly 11.8 and 15.4 deg/day.
	if speed < 11 || speed > 16 {
		t.Fatalf("Moon speed = %v deg/day, out of lunar range", speed)
	}
}

func TestMoshierNeptuneRetrogradeNearOpposition(t *testing.T) {
	m := NewMoshier()
	// 2000-07-27, close to Neptune's opposition: an outer planet is
	// retrograde for months around opposition.
	_, speed, err := m.BodyPosition(context.Background(), 2451752.5, models.Neptune)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if speed >= 0 {
		t.Fatalf("Neptune speed = %v near opposition, want negative", speed)
	}
}

func TestMoshierPluto1977(t *testing.T) {
	m := NewMoshier()
	lon, _, err := m.BodyPosition(context.Background(), jd1977, models.Pluto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Pluto sat in the middle of Libra (about 192-194 deg) in late 1977.
	if lon < 185 || lon > 200 {
		t.Fatalf("Pluto longitude = %v, want mid-Libra", lon)
	}
}

func TestMoshierTrueNode1977(t *testing.T) {
	m := NewMoshier()
	lon, _, err := m.BodyPosition(context.Background(), jd1977, models.TrueNode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Mean node was near 17 Libra; the true node oscillates within ~1.7 deg.
	if lon < 185 || lon > 210 {
		t.Fatalf("true node longitude = %v, want Libra region", lon)
	}
}

func TestMoshierAllBodiesFiniteInRange(t *testing.T) {
	m := NewMoshier()
	for _, body := range models.TrackedBodies {
		lon, speed, err := m.BodyPosition(context.Background(), jd1977, body)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", body, err)
		}
		if math.IsNaN(lon) || lon < 0 || lon >= 360 {
			t.Fatalf("%s: longitude %v out of [0, 360)", body, lon)
		}
		if math.IsNaN(speed) {
			t.Fatalf("%s: NaN speed", body)
		}
	}
}

func TestMoshierAngles1977(t *testing.T) {
	m := NewMoshier()
	asc, mc, err := m.Angles(context.Background(), jd1977, 37.82, -79.82)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Late Scorpio / early Sagittarius rising, mid-Virgo culminating.
	if asc < 225 || asc > 255 {
		t.Fatalf("ascendant = %v, want (225, 255)", asc)
	}
	if mc < 150 || mc > 180 {
		t.Fatalf("midheaven = %v, want (150, 180)", mc)
	}
}

func TestMoshierAnglesDeterministic(t *testing.T) {
	m := NewMoshier()
	a1, m1, err := m.Angles(context.Background(), jd1977, 37.82, -79.82)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a2, m2, err := m.Angles(context.Background(), jd1977, 37.82, -79.82)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a1 != a2 || m1 != m2 {
		t.Fatalf("angles not deterministic: (%v, %v) vs (%v, %v)", a1, m1, a2, m2)
	}
}

func TestMoshierModeAndPrecision(t *testing.T) {
	m := NewMoshier()
	if m.Mode() != models.ModeMoshier {
		t.Fatalf("mode = %s, want moshier", m.Mode())
	}
	if m.Precision() != "arcminute" {
		t.Fatalf("precision = %s, want arcminute", m.Precision())
	}
}
