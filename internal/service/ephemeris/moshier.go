package ephemeris

import (
	"context"
	"fmt"
	"math"

	"TrueArk/internal/domain/models"
)

// Moshier is the built-in reduced-precision backend. It implements Schlyter's
// low-precision planetary theory: Keplerian elements of date plus the main
// lunar and giant-planet perturbation terms, with Pluto from a periodic-term
// fit valid 1900-2100. Longitudes are good to about two arcminutes over
// 1900-2100, which is the documented tolerance for this mode.
//
// All results refer to the ecliptic and equinox of date, as the tropical
// zodiac requires. The backend is stateless and safe for concurrent use.
type Moshier struct{}

func NewMoshier() *Moshier { return &Moshier{} }

func (m *Moshier) Mode() models.EphemerisMode { return models.ModeMoshier }
func (m *Moshier) Precision() string          { return "arcminute" }

// speedStep is the half-interval, in days, of the central difference used
// for daily motion. Small enough to catch stations, large enough to stay
// numerically clean.
const speedStep = 0.05

func (m *Moshier) BodyPosition(_ context.Context, jd float64, body models.Body) (float64, float64, error) {
	lon, err := eclipticLongitude(jd, body)
	if err != nil {
		return 0, 0, err
	}
	before, err := eclipticLongitude(jd-speedStep, body)
	if err != nil {
		return 0, 0, err
	}
	after, err := eclipticLongitude(jd+speedStep, body)
	if err != nil {
		return 0, 0, err
	}
	speed := wrap180(after-before) / (2 * speedStep)
	return lon, speed, nil
}

func (m *Moshier) Angles(_ context.Context, jd, latitude, longitude float64) (float64, float64, error) {
	d := dayNumber(jd)
	eps := obliquity(d)

	// Local sidereal time doubles as the right ascension of the meridian.
	gmst := rev(280.46061837 + 360.98564736629*(jd-2451545.0))
	ramc := rev(gmst + longitude)

	mc := rev(atan2d(sind(ramc), cosd(ramc)*cosd(eps)))
	asc := rev(atan2d(cosd(ramc), -(sind(ramc)*cosd(eps) + tand(latitude)*sind(eps))))
	return asc, mc, nil
}

// dayNumber counts days from the element epoch 2000 Jan 0.0 UT
// (1999-12-31 00:00, JD 2451543.5).
func dayNumber(jd float64) float64 { return jd - 2451543.5 }

func obliquity(d float64) float64 { return 23.4393 - 3.563e-7*d }

func eclipticLongitude(jd float64, body models.Body) (float64, error) {
	d := dayNumber(jd)
	switch body {
	case models.Sun:
		lon, _, _ := sunPosition(d)
		return lon, nil
	case models.Moon:
		return moonLongitude(d), nil
	case models.TrueNode:
		return trueNodeLongitude(d), nil
	case models.Pluto:
		return plutoLongitude(d), nil
	case models.Mercury, models.Venus, models.Mars,
		models.Jupiter, models.Saturn, models.Uranus, models.Neptune:
		return planetLongitude(d, body), nil
	default:
		return 0, fmt.Errorf("unknown body %q", body)
	}
}

// --- Sun ---

// sunPosition returns the Sun's geocentric ecliptic longitude and its
// rectangular coordinates (needed to convert heliocentric planet positions
// to geocentric).
func sunPosition(d float64) (lon, xs, ys float64) {
	w := 282.9404 + 4.70935e-5*d
	e := 0.016709 - 1.151e-9*d
	M := rev(356.0470 + 0.9856002585*d)

	E := M + (180/math.Pi)*e*sind(M)*(1+e*cosd(M))
	x := cosd(E) - e
	y := sind(E) * math.Sqrt(1-e*e)
	r := math.Hypot(x, y)
	v := atan2d(y, x)

	lon = rev(v + w)
	return lon, r * cosd(lon), r * sind(lon)
}

// --- Moon ---

func moonElements(d float64) (N, i, w, a, e, M float64) {
	return rev(125.1228 - 0.0529538083*d),
		5.1454,
		rev(318.0634 + 0.1643573223*d),
		60.2666, // Earth radii; only the direction matters here
		0.054900,
		rev(115.3654 + 13.0649929509*d)
}

func moonLongitude(d float64) float64 {
	N, i, w, a, e, Mm := moonElements(d)

	E := solveKepler(Mm, e)
	x := a * (cosd(E) - e)
	y := a * math.Sqrt(1-e*e) * sind(E)
	r := math.Hypot(x, y)
	v := atan2d(y, x)

	xe := r * (cosd(N)*cosd(v+w) - sind(N)*sind(v+w)*cosd(i))
	ye := r * (sind(N)*cosd(v+w) + cosd(N)*sind(v+w)*cosd(i))
	lon := rev(atan2d(ye, xe))

	// Perturbation arguments.
	Ms := rev(356.0470 + 0.9856002585*d)
	ws := 282.9404 + 4.70935e-5*d
	Ls := rev(Ms + ws)
	Lm := rev(Mm + w + N)
	D := rev(Lm - Ls)
	F := rev(Lm - N)

	lon += -1.274*sind(Mm-2*D) + // evection
		0.658*sind(2*D) + // variation
		-0.186*sind(Ms) + // yearly equation
		-0.059*sind(2*Mm-2*D) +
		-0.057*sind(Mm-2*D+Ms) +
		0.053*sind(Mm+2*D) +
		0.046*sind(2*D-Ms) +
		0.041*sind(Mm-Ms) +
		-0.035*sind(D) + // parallactic equation
		-0.031*sind(Mm+Ms) +
		-0.015*sind(2*F-2*D) +
		0.011*sind(Mm-4*D)

	return rev(lon)
}

// trueNodeLongitude is the mean node corrected by the principal periodic
// terms (Meeus ch. 47); the remaining oscillation is within the mode's
// stated tolerance.
func trueNodeLongitude(d float64) float64 {
	N, _, w, _, _, Mm := moonElements(d)
	Ms := rev(356.0470 + 0.9856002585*d)
	ws := 282.9404 + 4.70935e-5*d
	Ls := rev(Ms + ws)
	Lm := rev(Mm + w + N)
	D := rev(Lm - Ls)
	F := rev(Lm - N)

	node := N +
		-1.4979*sind(2*(D-F)) +
		-0.1500*sind(Ms) +
		-0.1226*sind(2*D) +
		0.1176*sind(2*F) +
		-0.0801*sind(2*(Mm-F))
	return rev(node)
}

// --- Planets ---

func planetElements(d float64, body models.Body) (N, i, w, a, e, M float64) {
	switch body {
	case models.Mercury:
		return rev(48.3313 + 3.24587e-5*d), 7.0047 + 5.00e-8*d,
			rev(29.1241 + 1.01444e-5*d), 0.387098,
			0.205635 + 5.59e-10*d, rev(168.6562 + 4.0923344368*d)
	case models.Venus:
		return rev(76.6799 + 2.46590e-5*d), 3.3946 + 2.75e-8*d,
			rev(54.8910 + 1.38374e-5*d), 0.723330,
			0.006773 - 1.302e-9*d, rev(48.0052 + 1.6021302244*d)
	case models.Mars:
		return rev(49.5574 + 2.11081e-5*d), 1.8497 - 1.78e-8*d,
			rev(286.5016 + 2.92961e-5*d), 1.523688,
			0.093405 + 2.516e-9*d, rev(18.6021 + 0.5240207766*d)
	case models.Jupiter:
		return rev(100.4542 + 2.76854e-5*d), 1.3030 - 1.557e-7*d,
			rev(273.8777 + 1.64505e-5*d), 5.20256,
			0.048498 + 4.469e-9*d, rev(19.8950 + 0.0830853001*d)
	case models.Saturn:
		return rev(113.6634 + 2.38980e-5*d), 2.4886 - 1.081e-7*d,
			rev(339.3939 + 2.97661e-5*d), 9.55475,
			0.055546 - 9.499e-9*d, rev(316.9670 + 0.0334442282*d)
	case models.Uranus:
		return rev(74.0005 + 1.3978e-5*d), 0.7733 + 1.9e-8*d,
			rev(96.6612 + 3.0565e-5*d), 19.18171 - 1.55e-8*d,
			0.047318 + 7.45e-9*d, rev(142.5905 + 0.011725806*d)
	default: // Neptune
		return rev(131.7806 + 3.0173e-5*d), 1.7700 - 2.55e-7*d,
			rev(272.8461 - 6.027e-6*d), 30.05826 + 3.313e-8*d,
			0.008606 + 2.15e-9*d, rev(260.2471 + 0.005995147*d)
	}
}

func planetLongitude(d float64, body models.Body) float64 {
	N, i, w, a, e, M := planetElements(d, body)

	E := solveKepler(M, e)
	x := a * (cosd(E) - e)
	y := a * math.Sqrt(1-e*e) * sind(E)
	r := math.Hypot(x, y)
	v := atan2d(y, x)

	xh := r * (cosd(N)*cosd(v+w) - sind(N)*sind(v+w)*cosd(i))
	yh := r * (sind(N)*cosd(v+w) + cosd(N)*sind(v+w)*cosd(i))
	zh := r * sind(v+w) * sind(i)

	lonecl := rev(atan2d(yh, xh))
	latecl := atan2d(zh, math.Hypot(xh, yh))
	lonecl = rev(lonecl + giantPerturbations(d, body))

	// Back to rectangular with the perturbed longitude, then geocentric.
	xh = r * cosd(lonecl) * cosd(latecl)
	yh = r * sind(lonecl) * cosd(latecl)

	_, xs, ys := sunPosition(d)
	return rev(atan2d(yh+ys, xh+xs))
}

// giantPerturbations are the mutual Jupiter-Saturn-Uranus terms in
// heliocentric longitude; the inner planets need none at this precision.
func giantPerturbations(d float64, body models.Body) float64 {
	Mj := rev(19.8950 + 0.0830853001*d)
	Ms := rev(316.9670 + 0.0334442282*d)
	Mu := rev(142.5905 + 0.011725806*d)

	switch body {
	case models.Jupiter:
		return -0.332*sind(2*Mj-5*Ms-67.6) +
			-0.056*sind(2*Mj-2*Ms+21) +
			0.042*sind(3*Mj-5*Ms+21) +
			-0.036*sind(Mj-2*Ms) +
			0.022*cosd(Mj-Ms) +
			0.023*sind(2*Mj-3*Ms+52) +
			-0.016*sind(Mj-5*Ms-69)
	case models.Saturn:
		return 0.812*sind(2*Mj-5*Ms-67.6) +
			-0.229*cosd(2*Mj-4*Ms-2) +
			0.119*sind(Mj-2*Ms-3) +
			0.046*sind(2*Mj-6*Ms-69) +
			0.014*sind(Mj-3*Ms+32)
	case models.Uranus:
		return 0.040*sind(Ms-2*Mu+6) +
			0.035*sind(Ms-3*Mu+33) +
			-0.015*sind(Mj-Mu+20)
	default:
		return 0
	}
}

// --- Pluto ---

// plutoLongitude uses Schlyter's periodic-term fit, valid 1900-2100.
func plutoLongitude(d float64) float64 {
	S := 50.03 + 0.033459652*d
	P := 238.95 + 0.003968789*d

	lonecl := 238.9508 + 0.00400703*d +
		-19.799*sind(P) + 19.848*cosd(P) +
		0.897*sind(2*P) - 4.956*cosd(2*P) +
		0.610*sind(3*P) + 1.211*cosd(3*P) +
		-0.341*sind(4*P) - 0.190*cosd(4*P) +
		0.128*sind(5*P) - 0.034*cosd(5*P) +
		-0.038*sind(6*P) + 0.031*cosd(6*P) +
		0.020*sind(S-P) - 0.010*cosd(S-P)
	latecl := -3.9082 +
		-5.453*sind(P) - 14.975*cosd(P) +
		0.695*sind(2*P) + 0.845*cosd(2*P) +
		0.256*sind(3*P) - 0.190*cosd(3*P) +
		0.032*sind(4*P) + 0.009*cosd(4*P) +
		-0.008*sind(5*P) - 0.001*cosd(5*P)
	r := 40.72 +
		6.68*sind(P) + 6.90*cosd(P) +
		-1.18*sind(2*P) - 0.03*cosd(2*P) +
		0.15*sind(3*P) - 0.14*cosd(3*P)

	xh := r * cosd(lonecl) * cosd(latecl)
	yh := r * sind(lonecl) * cosd(latecl)

	_, xs, ys := sunPosition(d)
	return rev(atan2d(yh+ys, xh+xs))
}

// --- Numeric helpers (degrees) ---

func solveKepler(M, e float64) float64 {
	E := M + (180/math.Pi)*e*sind(M)*(1+e*cosd(M))
	for iter := 0; iter < 20; iter++ {
		delta := (E - (180/math.Pi)*e*sind(E) - M) / (1 - e*cosd(E))
		E -= delta
		if math.Abs(delta) < 1e-7 {
			break
		}
	}
	return E
}

func sind(x float64) float64 { return math.Sin(x * math.Pi / 180) }
func cosd(x float64) float64 { return math.Cos(x * math.Pi / 180) }
func tand(x float64) float64 { return math.Tan(x * math.Pi / 180) }

func atan2d(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }

// rev reduces an angle to [0, 360).
func rev(x float64) float64 {
	x = math.Mod(x, 360)
	if x < 0 {
		x += 360
	}
	return x
}

// wrap180 reduces an angle difference to (-180, 180].
func wrap180(x float64) float64 {
	x = math.Mod(x+180, 360)
	if x < 0 {
		x += 360
	}
	return x - 180
}
