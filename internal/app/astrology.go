package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NoCoDeer/astrologer-bot/internal/domain"
	"github.com/NoCoDeer/astrologer-bot/internal/ports"
)

// AstrologyService turns birth data into charts, transits and daily aspects
// using an injected ephemeris. Provider failures degrade individual entries
// to omissions; the computation as a whole never aborts on them.
type AstrologyService struct {
	eph         ports.Ephemeris
	interpreter ports.Interpreter
	houseSystem string
	logger      *slog.Logger
}

// NewAstrologyService wires the chart engine. interpreter may be nil, in
// which case charts are returned uninterpreted.
func NewAstrologyService(eph ports.Ephemeris, interpreter ports.Interpreter, houseSystem string, logger *slog.Logger) *AstrologyService {
	if houseSystem == "" {
		houseSystem = domain.DefaultHouseSystem
	}
	return &AstrologyService{
		eph:         eph,
		interpreter: interpreter,
		houseSystem: houseSystem,
		logger:      logger,
	}
}

// Positions looks up every tracked body at the given Julian Day. A body
// whose lookup fails is omitted and the rest continue.
func (s *AstrologyService) Positions(jd float64) map[domain.Body]domain.CelestialPosition {
	positions := make(map[domain.Body]domain.CelestialPosition, len(domain.Bodies))
	for _, body := range domain.Bodies {
		lon, err := s.eph.PositionAt(jd, body)
		if err != nil {
			s.logger.Warn("position lookup failed, omitting body",
				"body", body, "julian_day", jd, "error", err)
			continue
		}
		positions[body] = domain.NewCelestialPosition(body, lon)
	}
	return positions
}

// Houses returns the twelve cusps plus Ascendant and Midheaven. On provider
// failure the house set is empty rather than an error.
func (s *AstrologyService) Houses(jd, lat, lon float64) map[string]domain.HouseCusp {
	raw, err := s.eph.HousesAt(jd, lat, lon, s.houseSystem)
	if err != nil {
		s.logger.Warn("house computation failed, returning empty houses",
			"julian_day", jd, "system", s.houseSystem, "error", err)
		return map[string]domain.HouseCusp{}
	}

	houses := make(map[string]domain.HouseCusp, 14)
	for i, cusp := range raw.Cusps {
		label := domain.HouseLabels[i]
		houses[label] = domain.NewHouseCusp(label, cusp)
	}
	houses[domain.LabelAscendant] = domain.NewHouseCusp(domain.LabelAscendant, raw.Ascendant)
	houses[domain.LabelMidheaven] = domain.NewHouseCusp(domain.LabelMidheaven, raw.Midheaven)
	return houses
}

// NatalChart orchestrates julian day, positions, houses and aspects into a
// single chart value. Malformed birth data fails fast before any ephemeris
// call.
func (s *AstrologyService) NatalChart(birth domain.BirthRecord) (domain.NatalChart, error) {
	if err := birth.Validate(); err != nil {
		return domain.NatalChart{}, err
	}
	jd, err := domain.JulianDay(birth.Instant)
	if err != nil {
		return domain.NatalChart{}, err
	}

	positions := s.Positions(jd)

	return domain.NatalChart{
		Birth:     birth,
		JulianDay: jd,
		Planets:   positions,
		Houses:    s.Houses(jd, birth.Latitude, birth.Longitude),
		Aspects:   domain.NatalAspects(positions),
	}, nil
}

// ChartReading is a computed chart, optionally interpreted.
type ChartReading struct {
	Chart          domain.NatalChart
	Interpretation *ports.InterpretOutput
}

// NatalChartReading computes the chart and, when an interpreter is wired,
// passes the rendered summary through it. The chart itself is always
// computed first and a nil interpreter just skips the second step.
func (s *AstrologyService) NatalChartReading(ctx context.Context, birth domain.BirthRecord) (ChartReading, error) {
	chart, err := s.NatalChart(birth)
	if err != nil {
		return ChartReading{}, err
	}

	reading := ChartReading{Chart: chart}
	if s.interpreter == nil {
		return reading, nil
	}

	out, err := s.interpreter.Interpret(ctx, ports.InterpretInput{
		Kind:         ports.KindNatalChart,
		ChartSummary: SummarizeChart(chart),
	})
	if err != nil {
		return ChartReading{}, fmt.Errorf("interpret: %w", err)
	}
	reading.Interpretation = &out
	return reading, nil
}

// TransitReport pairs the current sky snapshot with the transit hits it
// makes against a natal chart.
type TransitReport struct {
	At      time.Time                                `json:"date"`
	Current map[domain.Body]domain.CelestialPosition `json:"current_planets"`
	Hits    []domain.TransitAspect                   `json:"transits"`
}

// Transits recomputes current positions for now (reference coordinates 0,0)
// and checks them against the natal positions with tight orbs.
func (s *AstrologyService) Transits(natal map[domain.Body]domain.CelestialPosition, now time.Time) (TransitReport, error) {
	jd, err := domain.JulianDay(now)
	if err != nil {
		return TransitReport{}, err
	}

	current := s.Positions(jd)
	return TransitReport{
		At:      now.UTC(),
		Current: current,
		Hits:    domain.TransitHits(current, natal),
	}, nil
}

// DailyAspects finds aspects exact to within a degree at the date's nominal
// reference instant (midnight UTC, coordinates 0,0).
func (s *AstrologyService) DailyAspects(date time.Time) ([]domain.AspectRelation, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: no date", domain.ErrInvalidBirthData)
	}
	ref := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	jd, err := domain.JulianDay(ref)
	if err != nil {
		return nil, err
	}
	return domain.AspectsBetween(s.Positions(jd), domain.DailyAspectTable), nil
}

// SummarizeChart renders a chart as plain text lines for the interpretation
// prompt and for logging.
func SummarizeChart(chart domain.NatalChart) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Julian Day: %.5f\n\nPlanets:\n", chart.JulianDay)
	for _, body := range domain.Bodies {
		pos, ok := chart.Planets[body]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %s: %s\n", body, pos.Formatted)
	}

	b.WriteString("\nHouses:\n")
	for _, label := range domain.HouseLabels {
		if cusp, ok := chart.Houses[label]; ok {
			fmt.Fprintf(&b, "  %s: %s\n", label, cusp.Formatted)
		}
	}
	for _, label := range []string{domain.LabelAscendant, domain.LabelMidheaven} {
		if cusp, ok := chart.Houses[label]; ok {
			fmt.Fprintf(&b, "  %s: %s\n", label, cusp.Formatted)
		}
	}

	if len(chart.Aspects) > 0 {
		b.WriteString("\nAspects:\n")
		for _, a := range chart.Aspects {
			fmt.Fprintf(&b, "  %s %s %s (orb %.1f°)\n", a.Body1, a.Kind, a.Body2, a.Orb)
		}
	}
	return b.String()
}
