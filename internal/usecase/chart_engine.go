package usecase

import (
	"context"
	"time"

	"TrueArk/internal/domain/models"
	"TrueArk/internal/domain/repository"
	applogger "TrueArk/pkg/logger"
)

// ChartEngine computes natal charts. It owns no state across calls beyond the
// injected ephemeris provider handle, which is constructed once per process
// and immutable afterward.
type ChartEngine struct {
	eph     repository.Ephemeris
	metrics repository.Metrics
	l       *applogger.Logger
}

func NewChartEngine(eph repository.Ephemeris, metrics repository.Metrics, l *applogger.Logger) *ChartEngine {
	return &ChartEngine{eph: eph, metrics: metrics, l: l}
}

// Mode exposes the provider's precision mode for health reporting.
func (e *ChartEngine) Mode() models.EphemerisMode { return e.eph.Mode() }

// Compute runs the full derivation: input validation, time conversion, one
// provider call per tracked body, angle normalization, Whole Sign house
// derivation, and output validation. Either the complete chart is valid or
// the call fails; there is no partial output.
func (e *ChartEngine) Compute(ctx context.Context, in models.ChartInput) (*models.ChartOutput, error) {
	start := time.Now()

	if err := in.Validate(); err != nil {
		return nil, &InputError{Err: err}
	}

	t, err := models.ParseTimestamp(in.DatetimeUTC)
	if err != nil {
		// Unreachable after Validate; kept so a refactor cannot silently
		// drop the parse.
		return nil, &InputError{Err: err}
	}
	jd := JulianDay(t)
	if jd < minJulianDay {
		return nil, calcErrorf("julian day", "date %s precedes ephemeris validity range", in.DatetimeUTC)
	}

	bodies := make(map[string]models.BodyPosition, len(models.TrackedBodies))
	for _, body := range models.TrackedBodies {
		rawLon, rawSpeed, err := e.eph.BodyPosition(ctx, jd, body)
		if err != nil {
			e.recordError("calculation")
			return nil, &CalculationError{Subject: string(body), Err: err}
		}
		pos, err := NormalizeBody(rawLon, rawSpeed, string(body))
		if err != nil {
			e.recordError("calculation")
			return nil, err
		}
		bodies[string(body)] = pos
	}

	rawAsc, rawMC, err := e.eph.Angles(ctx, jd, in.Latitude, in.Longitude)
	if err != nil {
		e.recordError("calculation")
		return nil, &CalculationError{Subject: "houses", Err: err}
	}
	asc, err := NormalizeAngle(rawAsc, models.AngleAscendant)
	if err != nil {
		e.recordError("calculation")
		return nil, err
	}
	mc, err := NormalizeAngle(rawMC, models.AngleMidheaven)
	if err != nil {
		e.recordError("calculation")
		return nil, err
	}
	angles := map[string]models.AnglePosition{
		models.AngleAscendant: asc,
		models.AngleMidheaven: mc,
	}

	houses := DeriveHouses(models.SignIndex(asc.Sign))

	if err := ValidateOutput(bodies, angles, houses); err != nil {
		e.recordError("invariant")
		if e.l != nil {
			e.l.Error("chart output failed invariant validation", applogger.Error(err))
		}
		return nil, err
	}

	out := &models.ChartOutput{
		Bodies: bodies,
		Angles: angles,
		Houses: houses,
		Metadata: models.ChartMetadata{
			Ephemeris:         "Swiss Ephemeris",
			CalculationMethod: calculationMethod(e.eph.Mode()),
			JulianDay:         round6(jd),
			Precision:         e.eph.Precision(),
			EphemerisMode:     e.eph.Mode(),
		},
	}

	if e.metrics != nil {
		e.metrics.RecordChartComputed(string(e.eph.Mode()))
		e.metrics.RecordLatency("compute_chart", time.Since(start).Seconds())
	}
	return out, nil
}

// Positions computes only the normalized body positions for a moment in time,
// used by the live transit stream.
func (e *ChartEngine) Positions(ctx context.Context, t time.Time) (map[string]models.BodyPosition, error) {
	jd := JulianDay(t.UTC())
	out := make(map[string]models.BodyPosition, len(models.TrackedBodies))
	for _, body := range models.TrackedBodies {
		rawLon, rawSpeed, err := e.eph.BodyPosition(ctx, jd, body)
		if err != nil {
			return nil, &CalculationError{Subject: string(body), Err: err}
		}
		pos, err := NormalizeBody(rawLon, rawSpeed, string(body))
		if err != nil {
			return nil, err
		}
		out[string(body)] = pos
	}
	return out, nil
}

func (e *ChartEngine) recordError(kind string) {
	if e.metrics != nil {
		e.metrics.RecordError(kind)
	}
}

func calculationMethod(mode models.EphemerisMode) string {
	if mode == models.ModeSwiss {
		return "swisseph"
	}
	return "moshier-analytic"
}
