package usecase

import (
	"math"

	"TrueArk/internal/domain/models"
)

// NormalizeBody maps a provider's raw ecliptic longitude and daily speed to a
// canonical BodyPosition. The raw longitude may be any real number; the
// result longitude is always in [0, 360) and the degree in [0, 30).
func NormalizeBody(rawLongitude, rawSpeed float64, label string) (models.BodyPosition, error) {
	lon, sign, degree, err := normalizeLongitude(rawLongitude, label)
	if err != nil {
		return models.BodyPosition{}, err
	}
	return models.BodyPosition{
		Longitude: lon,
		Sign:      sign,
		Degree:    degree,
		// A speed of exactly zero (a station) is direct, not retrograde.
		Retrograde: rawSpeed < 0,
	}, nil
}

// NormalizeAngle is the angle variant: same reduction and checks, no
// retrograde concept.
func NormalizeAngle(rawLongitude float64, label string) (models.AnglePosition, error) {
	lon, sign, degree, err := normalizeLongitude(rawLongitude, label)
	if err != nil {
		return models.AnglePosition{}, err
	}
	return models.AnglePosition{Longitude: lon, Sign: sign, Degree: degree}, nil
}

func normalizeLongitude(raw float64, label string) (lon float64, sign string, degree float64, err error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, "", 0, calcErrorf(label, "non-finite longitude %v from provider", raw)
	}

	lon = math.Mod(raw, 360)
	if lon < 0 {
		lon += 360
	}

	// Round after range reduction, then re-wrap: a longitude that rounds up
	// to exactly 360.000000 must come back as 0 before sign decomposition so
	// signIndex*30 + degree reproduces the longitude exactly.
	lon = round6(lon)
	if lon >= 360 {
		lon -= 360
	}

	signIndex := int(lon / 30)
	sign = models.ZodiacSigns[signIndex]
	degree = round6(lon - float64(signIndex)*30)
	return lon, sign, degree, nil
}

// round6 rounds to 6 decimal places (sub-arcsecond).
func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
