package ports

import "github.com/NoCoDeer/astrologer-bot/internal/domain"

// Houses is the raw house geometry returned by an ephemeris: twelve cusp
// longitudes in house order plus the two special points.
type Houses struct {
	Cusps     [12]float64
	Ascendant float64
	Midheaven float64
}

// Ephemeris is the injected astronomical capability. Implementations are
// expected to be pure CPU-bound functions returning longitudes in [0,360);
// the engine treats any error as a recoverable per-lookup omission.
type Ephemeris interface {
	// PositionAt returns a body's ecliptic longitude at a Julian Day.
	PositionAt(julianDay float64, body domain.Body) (float64, error)
	// HousesAt returns house cusps for a time and place under the named
	// house system.
	HousesAt(julianDay, latitude, longitude float64, system string) (Houses, error)
}
