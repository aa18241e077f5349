package repository

import (
	"context"

	"TrueArk/internal/domain/models"
)

// Ephemeris is the external astronomical provider. The engine treats it as an
// opaque capability: raw longitudes may be negative or >= 360 and are
// normalized by the caller, never by the provider.
type Ephemeris interface {
	// BodyPosition returns the raw ecliptic longitude (degrees) and daily
	// angular speed (degrees/day, negative while retrograde) of one body at
	// the given Julian Day (UT).
	BodyPosition(ctx context.Context, jd float64, body models.Body) (longitude, speed float64, err error)

	// Angles returns the raw Ascendant and Midheaven longitudes for a Julian
	// Day and geographic coordinate, under the Whole Sign system.
	Angles(ctx context.Context, jd, latitude, longitude float64) (asc, mc float64, err error)

	// Mode reports which precision path was selected at construction time.
	// It never changes for the lifetime of the provider.
	Mode() models.EphemerisMode

	// Precision is the fixed precision label for the active mode.
	Precision() string
}

// ChartStore persists computed charts and answers filtered listings.
type ChartStore interface {
	Init(ctx context.Context) error // ensure tables
	Insert(ctx context.Context, c *models.StoredChart) error
	GetByID(ctx context.Context, id string) (*models.StoredChart, error)
	List(ctx context.Context, f models.ChartFilter) ([]*models.StoredChart, error)
	Health(ctx context.Context) error
	Close() error
}

// ChartPublisher emits stored-chart events for downstream consumers.
type ChartPublisher interface {
	PublishStored(ctx context.Context, c *models.StoredChart) error
	Close() error
}

// Metrics records chart computation and storage observations.
type Metrics interface {
	RecordChartComputed(mode string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordCacheHit(hit bool)
}
