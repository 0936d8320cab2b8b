// Package kepler is a self-contained, low-precision ephemeris backing the
// ports.Ephemeris capability. Planetary longitudes come from mean Keplerian
// orbital elements (JPL approximate elements, valid 1800–2050) and the Moon
// from a truncated mean-longitude series. Accuracy is on the order of
// arcminutes, which is ample for sign and aspect work; a Swiss
// Ephemeris-backed adapter can replace it behind the same port.
package kepler

import (
	"fmt"
	"math"

	"github.com/NoCoDeer/astrologer-bot/internal/domain"
	"github.com/NoCoDeer/astrologer-bot/internal/ports"
)

const (
	j2000     = 2451545.0
	degToRad  = math.Pi / 180
	radToDeg  = 180 / math.Pi
	keplerTol = 1e-7
)

// elements are mean Keplerian elements at J2000 plus per-century rates:
// semi-major axis (AU), eccentricity, inclination, mean longitude,
// longitude of perihelion, longitude of ascending node (degrees).
type elements struct {
	a, aDot     float64
	e, eDot     float64
	i, iDot     float64
	l, lDot     float64
	pi, piDot   float64
	om, omDot   float64
}

// JPL "Approximate Positions of the Planets" element table, 1800 AD–2050 AD.
var planetElements = map[domain.Body]elements{
	domain.Mercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749, 252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	domain.Venus:   {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890, 181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	domain.Mars:    {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131, -4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	domain.Jupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714, 34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	domain.Saturn:  {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609, 49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
	domain.Uranus:  {19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939, 313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589},
	domain.Neptune: {30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372, -55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664},
	domain.Pluto:   {39.48211675, -0.00031596, 0.24882730, 0.00005170, 17.14001206, 0.00004818, 238.92903833, 145.20780515, 224.06891629, -0.04062942, 110.30393684, -0.01183482},
}

// Earth-Moon barycenter, used for geocentric conversion and the Sun.
var earthElements = elements{1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668, 100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0, 0}

// Provider implements ports.Ephemeris.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

// PositionAt returns the geocentric ecliptic longitude of a body in [0,360).
func (p *Provider) PositionAt(jd float64, body domain.Body) (float64, error) {
	t := (jd - j2000) / 36525

	switch body {
	case domain.Sun:
		ex, ey := heliocentric(earthElements, t)
		return domain.NormalizeDegrees(math.Atan2(-ey, -ex) * radToDeg), nil
	case domain.Moon:
		return moonLongitude(t), nil
	}

	el, ok := planetElements[body]
	if !ok {
		return 0, fmt.Errorf("no orbital elements for body %q", body)
	}

	px, py := heliocentric(el, t)
	ex, ey := heliocentric(earthElements, t)
	return domain.NormalizeDegrees(math.Atan2(py-ey, px-ex) * radToDeg), nil
}

// heliocentric returns a body's heliocentric ecliptic x/y (AU) at T Julian
// centuries from J2000. Ecliptic latitude is carried through the node and
// inclination rotation; only x/y matter for longitude work.
func heliocentric(el elements, t float64) (x, y float64) {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	inc := (el.i + el.iDot*t) * degToRad
	l := el.l + el.lDot*t
	longPeri := el.pi + el.piDot*t
	longNode := el.om + el.omDot*t

	m := domain.NormalizeDegrees(l-longPeri) * degToRad
	argPeri := (longPeri - longNode) * degToRad
	node := longNode * degToRad

	ea := solveKepler(m, e)

	// Position in the orbital plane.
	xp := a * (math.Cos(ea) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ea)

	// Rotate through argument of perihelion, inclination, ascending node.
	cosW, sinW := math.Cos(argPeri), math.Sin(argPeri)
	cosO, sinO := math.Cos(node), math.Sin(node)
	cosI := math.Cos(inc)

	x = (cosW*cosO-sinW*sinO*cosI)*xp + (-sinW*cosO-cosW*sinO*cosI)*yp
	y = (cosW*sinO+sinW*cosO*cosI)*xp + (-sinW*sinO+cosW*cosO*cosI)*yp
	return x, y
}

// solveKepler iterates E - e·sinE = M by Newton's method.
func solveKepler(m, e float64) float64 {
	ea := m
	if e > 0.8 {
		ea = math.Pi
	}
	for iter := 0; iter < 20; iter++ {
		delta := (ea - e*math.Sin(ea) - m) / (1 - e*math.Cos(ea))
		ea -= delta
		if math.Abs(delta) < keplerTol {
			break
		}
	}
	return ea
}

// moonLongitude is the Astronomical Almanac low-precision lunar series,
// good to roughly 0.3°.
func moonLongitude(t float64) float64 {
	sin := func(deg float64) float64 { return math.Sin(deg * degToRad) }
	lambda := 218.32 + 481267.881*t +
		6.29*sin(135.0+477198.87*t) -
		1.27*sin(259.3-413335.36*t) +
		0.66*sin(235.7+890534.22*t) +
		0.21*sin(269.9+954397.74*t) -
		0.19*sin(357.5+35999.05*t) -
		0.11*sin(186.5+966404.03*t)
	return domain.NormalizeDegrees(lambda)
}

// HousesAt computes the Ascendant and Midheaven exactly from the local
// sidereal time and obliquity, then divides each quadrant into three equal
// cusps (Porphyry). A true Placidus solution needs an iterative semi-arc
// solver; Porphyry is the standard fallback when one is unavailable, so the
// system code is accepted but does not change the division.
func (p *Provider) HousesAt(jd, lat, lon float64, system string) (ports.Houses, error) {
	if lat < -90 || lat > 90 {
		return ports.Houses{}, fmt.Errorf("latitude %.4f out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return ports.Houses{}, fmt.Errorf("longitude %.4f out of range", lon)
	}
	// Quadrant systems degenerate at the poles where the ecliptic can be
	// parallel to the horizon.
	if math.Abs(lat) > 89.9 {
		return ports.Houses{}, fmt.Errorf("latitude %.4f too close to the pole for quadrant houses", lat)
	}

	t := (jd - j2000) / 36525
	obliquity := (23.43929111 - 0.0130042*t) * degToRad

	// Greenwich mean sidereal time, in degrees; local by adding east longitude.
	gmst := domain.NormalizeDegrees(280.46061837 + 360.98564736629*(jd-j2000))
	ramc := domain.NormalizeDegrees(gmst+lon) * degToRad

	mc := domain.NormalizeDegrees(math.Atan2(math.Sin(ramc), math.Cos(ramc)*math.Cos(obliquity)) * radToDeg)

	latRad := lat * degToRad
	asc := domain.NormalizeDegrees(math.Atan2(
		-math.Cos(ramc),
		math.Sin(ramc)*math.Cos(obliquity)+math.Tan(latRad)*math.Sin(obliquity),
	) * radToDeg)

	var h ports.Houses
	h.Ascendant = asc
	h.Midheaven = mc

	ic := domain.NormalizeDegrees(mc + 180)
	arcMCAsc := domain.NormalizeDegrees(asc - mc)
	arcAscIC := domain.NormalizeDegrees(ic - asc)

	h.Cusps[0] = asc
	h.Cusps[1] = domain.NormalizeDegrees(asc + arcAscIC/3)
	h.Cusps[2] = domain.NormalizeDegrees(asc + 2*arcAscIC/3)
	h.Cusps[9] = mc
	h.Cusps[10] = domain.NormalizeDegrees(mc + arcMCAsc/3)
	h.Cusps[11] = domain.NormalizeDegrees(mc + 2*arcMCAsc/3)
	for i := 3; i < 9; i++ {
		h.Cusps[i] = domain.NormalizeDegrees(h.Cusps[(i+6)%12] + 180)
	}
	return h, nil
}
