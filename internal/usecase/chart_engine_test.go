package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"TrueArk/internal/domain/models"
)

// stubEphemeris is a deterministic provider for engine tests.
type stubEphemeris struct {
	positions map[models.Body][2]float64 // longitude, speed
	asc, mc   float64
	bodyErr   map[models.Body]error
	anglesErr error
	mode      models.EphemerisMode
	precision string
	calls     int
}

func (s *stubEphemeris) BodyPosition(_ context.Context, _ float64, body models.Body) (float64, float64, error) {
	s.calls++
	if err := s.bodyErr[body]; err != nil {
		return 0, 0, err
	}
	p, ok := s.positions[body]
	if !ok {
		return 0, 0, fmt.Errorf("no stub position for %s", body)
	}
	return p[0], p[1], nil
}

func (s *stubEphemeris) Angles(_ context.Context, _, _, _ float64) (float64, float64, error) {
	if s.anglesErr != nil {
		return 0, 0, s.anglesErr
	}
	return s.asc, s.mc, nil
}

func (s *stubEphemeris) Mode() models.EphemerisMode { return s.mode }
func (s *stubEphemeris) Precision() string          { return s.precision }

func newStubEphemeris() *stubEphemeris {
	return &stubEphemeris{
		positions: map[models.Body][2]float64{
			models.Sun:      {162.93, 0.966},
			models.Moon:     {260.12, 13.18},
			models.Mercury:  {178.40, 1.42},
			models.Venus:    {139.55, 1.21},
			models.Mars:     {98.03, 0.64},
			models.Jupiter:  {95.87, 0.12},
			models.Saturn:   {146.21, 0.08},
			models.Uranus:   {218.66, 0.02},
			models.Neptune:  {253.44, -0.01},
			models.Pluto:    {192.78, 0.03},
			models.TrueNode: {197.91, -0.05},
		},
		asc:       305.25,
		mc:        215.80,
		mode:      models.ModeMoshier,
		precision: "arcminute",
		bodyErr:   map[models.Body]error{},
	}
}

func testInput() models.ChartInput {
	return models.ChartInput{
		DatetimeUTC: "1977-09-05T17:24:00Z",
		Latitude:    37.82,
		Longitude:   -79.82,
		HouseSystem: "W",
		Zodiac:      "tropical",
	}
}

func TestComputeFullChart(t *testing.T) {
	eph := newStubEphemeris()
	engine := NewChartEngine(eph, nil, nil)

	out, err := engine.Compute(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Bodies) != 11 {
		t.Fatalf("%d bodies, want 11", len(out.Bodies))
	}
	for _, body := range models.TrackedBodies {
		if _, ok := out.Bodies[string(body)]; !ok {
			t.Fatalf("missing body %s", body)
		}
	}

	sun := out.Bodies["Sun"]
	if sun.Sign != "Virgo" {
		t.Fatalf("Sun sign = %s, want Virgo", sun.Sign)
	}
	if sun.Longitude <= 150 || sun.Longitude >= 180 {
		t.Fatalf("Sun longitude = %v, want (150, 180)", sun.Longitude)
	}

	if !out.Bodies["Neptune"].Retrograde {
		t.Fatal("Neptune should be retrograde (negative speed)")
	}
	if out.Bodies["Sun"].Retrograde {
		t.Fatal("Sun must never be retrograde here")
	}

	asc := out.Angles[models.AngleAscendant]
	if out.Houses["1"] != asc.Sign {
		t.Fatalf("house 1 = %s, ascendant sign = %s", out.Houses["1"], asc.Sign)
	}
	if len(out.Houses) != 12 {
		t.Fatalf("%d houses, want 12", len(out.Houses))
	}

	if math.Abs(out.Metadata.JulianDay-2443392.225) > 0.001 {
		t.Fatalf("julian day = %v, want 2443392.225", out.Metadata.JulianDay)
	}
}

func TestComputeSurfacesModeUnmodified(t *testing.T) {
	eph := newStubEphemeris()
	eph.mode = models.ModeSwiss
	eph.precision = "arcsecond"
	engine := NewChartEngine(eph, nil, nil)

	out, err := engine.Compute(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Metadata.EphemerisMode != models.ModeSwiss {
		t.Fatalf("mode = %s, want swiss", out.Metadata.EphemerisMode)
	}
	if out.Metadata.Precision != "arcsecond" {
		t.Fatalf("precision = %s, want arcsecond", out.Metadata.Precision)
	}

	// A reduced-precision provider must never be reported as full precision.
	eph.mode = models.ModeMoshier
	eph.precision = "arcminute"
	out, err = engine.Compute(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Metadata.EphemerisMode != models.ModeMoshier || out.Metadata.Precision != "arcminute" {
		t.Fatalf("metadata %+v did not carry the reduced-precision mode", out.Metadata)
	}
}

func TestComputeProviderFailureNamesBody(t *testing.T) {
	eph := newStubEphemeris()
	eph.bodyErr[models.Pluto] = errors.New("ephemeris file out of range")
	engine := NewChartEngine(eph, nil, nil)

	_, err := engine.Compute(context.Background(), testInput())
	var cerr *CalculationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CalculationError, got %v", err)
	}
	if cerr.Subject != "Pluto" {
		t.Fatalf("error names %q, want Pluto", cerr.Subject)
	}
}

func TestComputeNaNAscendantFails(t *testing.T) {
	eph := newStubEphemeris()
	eph.asc = math.NaN()
	engine := NewChartEngine(eph, nil, nil)

	_, err := engine.Compute(context.Background(), testInput())
	var cerr *CalculationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CalculationError, got %v", err)
	}
}

func TestComputeRejectionLaws(t *testing.T) {
	sidereal := "lahiri"
	cases := []struct {
		name string
		in   models.ChartInput
	}{
		{"latitude 91", models.ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Latitude: 91, Longitude: 0}},
		{"longitude 181", models.ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Latitude: 0, Longitude: 181}},
		{"non-ISO timestamp", models.ChartInput{DatetimeUTC: "September 5 1977", Latitude: 0, Longitude: 0}},
		{"non-null ayanamsa", models.ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Ayanamsa: &sidereal}},
		{"other house system", models.ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", HouseSystem: "P"}},
		{"sidereal zodiac", models.ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Zodiac: "sidereal"}},
	}

	for _, c := range cases {
		eph := newStubEphemeris()
		engine := NewChartEngine(eph, nil, nil)
		_, err := engine.Compute(context.Background(), c.in)
		var ierr *InputError
		if !errors.As(err, &ierr) {
			t.Fatalf("%s: expected *InputError, got %v", c.name, err)
		}
		if eph.calls != 0 {
			t.Fatalf("%s: provider was called %d times before validation", c.name, eph.calls)
		}
	}
}

func TestComputeAcceptsExplicitUTCOffset(t *testing.T) {
	eph := newStubEphemeris()
	engine := NewChartEngine(eph, nil, nil)

	in := testInput()
	in.DatetimeUTC = "1977-09-05T17:24:00+00:00"
	zOut, err := engine.Compute(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	offOut, err := engine.Compute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if zOut.Metadata.JulianDay != offOut.Metadata.JulianDay {
		t.Fatalf("Z and +00:00 timestamps disagree: %v vs %v",
			zOut.Metadata.JulianDay, offOut.Metadata.JulianDay)
	}
}
