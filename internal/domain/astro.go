package domain

import (
	"fmt"
	"math"
	"time"
)

// Body identifies a tracked celestial body.
type Body string

const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mercury Body = "Mercury"
	Venus   Body = "Venus"
	Mars    Body = "Mars"
	Jupiter Body = "Jupiter"
	Saturn  Body = "Saturn"
	Uranus  Body = "Uranus"
	Neptune Body = "Neptune"
	Pluto   Body = "Pluto"
)

// Bodies lists every tracked body in evaluation order. Aspect pairs are
// formed by walking this slice, so the order is also the pair order.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

// Signs are the twelve 30°-wide zodiac segments, indexed by ⌊longitude/30⌋.
var Signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// HouseLabels are the twelve house keys in cusp order. The two special
// points Ascendant and Midheaven are keyed separately.
var HouseLabels = [12]string{
	"1st House", "2nd House", "3rd House", "4th House", "5th House", "6th House",
	"7th House", "8th House", "9th House", "10th House", "11th House", "12th House",
}

const (
	LabelAscendant = "Ascendant"
	LabelMidheaven = "Midheaven"
)

// DefaultHouseSystem is the house-division system requested from the
// ephemeris when no other system is configured.
const DefaultHouseSystem = "placidus"

// BirthRecord is the transient input to chart computation. The instant must
// be UTC-normalized by the caller; a zero instant is rejected.
type BirthRecord struct {
	Instant   time.Time
	Latitude  float64
	Longitude float64
}

func (b BirthRecord) Validate() error {
	if b.Instant.IsZero() {
		return fmt.Errorf("%w: no birth instant", ErrInvalidBirthData)
	}
	if b.Latitude < -90 || b.Latitude > 90 {
		return fmt.Errorf("%w: latitude %.4f out of range", ErrInvalidBirthData, b.Latitude)
	}
	if b.Longitude < -180 || b.Longitude > 180 {
		return fmt.Errorf("%w: longitude %.4f out of range", ErrInvalidBirthData, b.Longitude)
	}
	return nil
}

// CelestialPosition is a body's place on the ecliptic with the zodiac
// fields derived from the longitude.
type CelestialPosition struct {
	Body      Body    `json:"body"`
	Longitude float64 `json:"longitude"`
	Sign      string  `json:"sign"`
	Degree    float64 `json:"degree"`
	Formatted string  `json:"formatted"`
}

// NewCelestialPosition normalizes the longitude into [0,360) and fills the
// derived sign and degree-in-sign fields.
func NewCelestialPosition(body Body, longitude float64) CelestialPosition {
	lon := NormalizeDegrees(longitude)
	sign := Signs[int(lon/30)]
	degree := math.Mod(lon, 30)
	return CelestialPosition{
		Body:      body,
		Longitude: lon,
		Sign:      sign,
		Degree:    degree,
		Formatted: fmt.Sprintf("%.1f° %s", degree, sign),
	}
}

// HouseCusp is a house boundary (or the Ascendant/Midheaven point) with the
// same derived zodiac fields as a CelestialPosition.
type HouseCusp struct {
	Label     string  `json:"label"`
	Longitude float64 `json:"cusp"`
	Sign      string  `json:"sign"`
	Degree    float64 `json:"degree"`
	Formatted string  `json:"formatted"`
}

func NewHouseCusp(label string, longitude float64) HouseCusp {
	lon := NormalizeDegrees(longitude)
	sign := Signs[int(lon/30)]
	degree := math.Mod(lon, 30)
	return HouseCusp{
		Label:     label,
		Longitude: lon,
		Sign:      sign,
		Degree:    degree,
		Formatted: fmt.Sprintf("%.1f° %s", degree, sign),
	}
}

// NatalChart is the immutable result of a full chart computation. Bodies or
// houses whose ephemeris lookup failed are simply absent from the maps.
type NatalChart struct {
	Birth     BirthRecord                `json:"-"`
	JulianDay float64                    `json:"julian_day"`
	Planets   map[Body]CelestialPosition `json:"planets"`
	Houses    map[string]HouseCusp       `json:"houses"`
	Aspects   []AspectRelation           `json:"aspects"`
}

// NormalizeDegrees wraps an angle into [0,360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// JulianDay converts a UTC-normalized instant to a Julian Day number using
// the standard Gregorian-calendar arithmetic.
func JulianDay(t time.Time) (float64, error) {
	if t.IsZero() {
		return 0, fmt.Errorf("%w: no usable instant", ErrInvalidBirthData)
	}
	t = t.UTC()

	year := t.Year()
	month := int(t.Month())
	day := float64(t.Day()) +
		(float64(t.Hour())+float64(t.Minute())/60+float64(t.Second())/3600)/24

	if month <= 2 {
		year--
		month += 12
	}
	a := year / 100
	b := 2 - a + a/4

	jd := math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		day + float64(b) - 1524.5
	return jd, nil
}
