package models

import (
	"fmt"
	"time"
)

// SupportedHouseSystem is the Whole Sign marker. No other system is accepted.
const SupportedHouseSystem = "W"

// SupportedZodiac is the only zodiac reference frame the engine computes.
const SupportedZodiac = "tropical"

// EphemerisMode reports which precision path the provider is running.
type EphemerisMode string

const (
	// ModeSwiss means full ephemeris data backs every position (arcsecond).
	ModeSwiss EphemerisMode = "swiss"
	// ModeMoshier means the reduced-precision analytic fallback is active.
	ModeMoshier EphemerisMode = "moshier"
)

// ChartInput is the validated request for one chart computation. Immutable
// once Validate has passed.
type ChartInput struct {
	DatetimeUTC string  `json:"datetime_utc"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	HouseSystem string  `json:"house_system"`
	Zodiac      string  `json:"zodiac"`
	Ayanamsa    *string `json:"ayanamsa,omitempty"`
}

// ParseTimestamp parses an ISO-8601 UTC timestamp. A trailing "Z" and an
// explicit zero offset are treated identically; any non-UTC offset is
// rejected because the engine performs no timezone resolution.
func ParseTimestamp(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if _, offset := t.Zone(); offset != 0 {
			return time.Time{}, fmt.Errorf("timestamp %q has a non-UTC offset; input must be UTC", s)
		}
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("timestamp %q is not ISO-8601 (e.g. 1977-09-05T17:24:00Z)", s)
}

// Validate checks every input constraint before any astronomical computation.
func (in *ChartInput) Validate() error {
	if _, err := ParseTimestamp(in.DatetimeUTC); err != nil {
		return fmt.Errorf("datetime_utc: %w", err)
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", in.Latitude)
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", in.Longitude)
	}
	if in.HouseSystem != "" && in.HouseSystem != SupportedHouseSystem {
		return fmt.Errorf("house_system %q unsupported; only %q (Whole Sign)", in.HouseSystem, SupportedHouseSystem)
	}
	if in.Zodiac != "" && in.Zodiac != SupportedZodiac {
		return fmt.Errorf("zodiac %q unsupported; only %q", in.Zodiac, SupportedZodiac)
	}
	if in.Ayanamsa != nil {
		return fmt.Errorf("sidereal zodiac not supported; ayanamsa must be null")
	}
	return nil
}

// BodyPosition is one body's normalized position. Created once, never mutated.
type BodyPosition struct {
	Longitude  float64 `json:"longitude"`
	Sign       string  `json:"sign"`
	Degree     float64 `json:"degree"`
	Retrograde bool    `json:"retrograde"`
}

// AnglePosition is a chart angle (Ascendant, Midheaven); angles carry no
// retrograde concept.
type AnglePosition struct {
	Longitude float64 `json:"longitude"`
	Sign      string  `json:"sign"`
	Degree    float64 `json:"degree"`
}

// ChartMetadata records how a chart was computed.
type ChartMetadata struct {
	Ephemeris         string        `json:"ephemeris"`
	CalculationMethod string        `json:"calculation_method"`
	JulianDay         float64       `json:"julian_day"`
	Precision         string        `json:"precision"`
	EphemerisMode     EphemerisMode `json:"ephemeris_mode"`
}

// ChartOutput is the complete computed chart: all eleven bodies, both angles,
// the full house table, and metadata. Constructed exactly once per successful
// computation.
type ChartOutput struct {
	Bodies   map[string]BodyPosition  `json:"planets"`
	Angles   map[string]AnglePosition `json:"angles"`
	Houses   map[string]string        `json:"houses"`
	Metadata ChartMetadata            `json:"metadata"`
}

// StoredChart is a persisted chart record with optional entity linkage.
type StoredChart struct {
	ID          string                   `json:"id"`
	DatetimeUTC string                   `json:"datetime_utc"`
	Latitude    float64                  `json:"latitude"`
	Longitude   float64                  `json:"longitude"`
	Bodies      map[string]BodyPosition  `json:"planets"`
	Angles      map[string]AnglePosition `json:"angles"`
	Houses      map[string]string        `json:"houses"`
	JulianDay   float64                  `json:"julian_day"`
	Mode        EphemerisMode            `json:"ephemeris_mode"`
	EntityID    string                   `json:"entity_id,omitempty"`
	EntityType  string                   `json:"entity_type,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

// ChartFilter narrows a stored-chart listing.
type ChartFilter struct {
	EntityID   string
	EntityType string
	Limit      int
}
