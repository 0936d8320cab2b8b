package kepler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoCoDeer/astrologer-bot/internal/adapters/ephemeris/kepler"
	"github.com/NoCoDeer/astrologer-bot/internal/domain"
)

const jdJ2000 = 2451545.0

func TestPositionAt_RangeAndDeterminism(t *testing.T) {
	p := kepler.New()

	for _, jd := range []float64{jdJ2000, 2448045.5, 2460310.5} {
		for _, body := range domain.Bodies {
			lon, err := p.PositionAt(jd, body)
			require.NoError(t, err, "%s at %v", body, jd)
			assert.GreaterOrEqual(t, lon, 0.0, "%s at %v", body, jd)
			assert.Less(t, lon, 360.0, "%s at %v", body, jd)

			again, err := p.PositionAt(jd, body)
			require.NoError(t, err)
			assert.Equal(t, lon, again, "%s not deterministic", body)
		}
	}
}

func TestPositionAt_SunAtJ2000(t *testing.T) {
	p := kepler.New()

	// The Sun stood near 280° Capricorn at the J2000 epoch.
	lon, err := p.PositionAt(jdJ2000, domain.Sun)
	require.NoError(t, err)
	assert.InDelta(t, 280.4, lon, 2.0)
}

func TestPositionAt_BodiesMove(t *testing.T) {
	p := kepler.New()

	// Ten days shift the Sun by roughly 10° and the Moon by far more.
	sun0, err := p.PositionAt(jdJ2000, domain.Sun)
	require.NoError(t, err)
	sun10, err := p.PositionAt(jdJ2000+10, domain.Sun)
	require.NoError(t, err)
	assert.InDelta(t, 10, domain.Separation(sun0, sun10), 1.0)

	moon0, err := p.PositionAt(jdJ2000, domain.Moon)
	require.NoError(t, err)
	moon1, err := p.PositionAt(jdJ2000+1, domain.Moon)
	require.NoError(t, err)
	assert.InDelta(t, 13.2, domain.Separation(moon0, moon1), 2.5)
}

func TestPositionAt_UnknownBody(t *testing.T) {
	p := kepler.New()
	_, err := p.PositionAt(jdJ2000, domain.Body("vulcan"))
	assert.Error(t, err)
}

func TestHousesAt_AnglesAndOpposites(t *testing.T) {
	p := kepler.New()

	h, err := p.HousesAt(jdJ2000, 55.75, 37.62, domain.DefaultHouseSystem)
	require.NoError(t, err)

	assert.Equal(t, h.Cusps[0], h.Ascendant)
	assert.Equal(t, h.Cusps[9], h.Midheaven)

	for i := 0; i < 6; i++ {
		sep := domain.Separation(h.Cusps[i], h.Cusps[i+6])
		assert.InDelta(t, 180, sep, 1e-6, "cusp %d vs %d", i+1, i+7)
	}
	for i, cusp := range h.Cusps {
		assert.GreaterOrEqual(t, cusp, 0.0, "cusp %d", i+1)
		assert.Less(t, cusp, 360.0, "cusp %d", i+1)
	}
}

func TestHousesAt_SystemCodeDoesNotChangeDivision(t *testing.T) {
	p := kepler.New()

	placidus, err := p.HousesAt(jdJ2000, 40.0, -74.0, "placidus")
	require.NoError(t, err)
	porphyry, err := p.HousesAt(jdJ2000, 40.0, -74.0, "porphyry")
	require.NoError(t, err)
	assert.Equal(t, placidus, porphyry)
}

func TestHousesAt_InvalidCoordinates(t *testing.T) {
	p := kepler.New()

	_, err := p.HousesAt(jdJ2000, 91, 0, "placidus")
	assert.Error(t, err)

	_, err = p.HousesAt(jdJ2000, 0, 181, "placidus")
	assert.Error(t, err)

	_, err = p.HousesAt(jdJ2000, 89.95, 0, "placidus")
	assert.Error(t, err, "quadrant houses degenerate at the pole")
}
