package domain

import "math"

// AspectKind names an angular relationship between two bodies.
type AspectKind string

const (
	Conjunction AspectKind = "Conjunction"
	Opposition  AspectKind = "Opposition"
	Trine       AspectKind = "Trine"
	Square      AspectKind = "Square"
	Sextile     AspectKind = "Sextile"
)

// AspectDef is one row of an aspect table: the ideal angle and the orb
// within which a separation still counts as that aspect.
type AspectDef struct {
	Kind  AspectKind
	Angle float64
	Orb   float64
}

// NatalAspectTable is evaluated top to bottom and the first row whose orb
// contains the separation wins. The order is load-bearing: a pair inside
// two overlapping orbs classifies as the earlier row, not the closer one.
var NatalAspectTable = []AspectDef{
	{Conjunction, 0, 8},
	{Opposition, 180, 8},
	{Trine, 120, 8},
	{Square, 90, 8},
	{Sextile, 60, 6},
}

// TransitAspectTable uses tight ±2° orbs. The rows cannot overlap at that
// width, so first-match equals independent checking.
var TransitAspectTable = []AspectDef{
	{Conjunction, 0, 2},
	{Opposition, 180, 2},
	{Square, 90, 2},
	{Trine, 120, 2},
}

// DailyAspectTable finds aspects exact to within 1° on a given day.
var DailyAspectTable = []AspectDef{
	{Conjunction, 0, 1},
	{Sextile, 60, 1},
	{Square, 90, 1},
	{Trine, 120, 1},
	{Opposition, 180, 1},
}

// AspectRelation records a classified aspect between two bodies.
type AspectRelation struct {
	Body1      Body       `json:"planet1"`
	Body2      Body       `json:"planet2"`
	Kind       AspectKind `json:"aspect"`
	Angle      float64    `json:"angle"`
	Orb        float64    `json:"orb"`
	ExactAngle float64    `json:"exact_angle"`
}

// TransitAspect records a transiting body hitting a natal position.
type TransitAspect struct {
	TransitBody Body       `json:"transit_planet"`
	NatalBody   Body       `json:"natal_planet"`
	Kind        AspectKind `json:"aspect"`
	Orb         float64    `json:"orb"`
}

// Separation returns the angular distance between two ecliptic longitudes,
// always in [0,180].
func Separation(lon1, lon2 float64) float64 {
	d := math.Abs(lon1 - lon2)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Classify returns the first table row whose orb contains the separation.
func Classify(separation float64, table []AspectDef) (AspectDef, bool) {
	for _, def := range table {
		if math.Abs(separation-def.Angle) <= def.Orb {
			return def, true
		}
	}
	return AspectDef{}, false
}

// AspectsBetween walks every unordered pair of bodies present in positions,
// in Bodies order, and records the first matching aspect per pair.
func AspectsBetween(positions map[Body]CelestialPosition, table []AspectDef) []AspectRelation {
	var aspects []AspectRelation
	for i, b1 := range Bodies {
		p1, ok := positions[b1]
		if !ok {
			continue
		}
		for _, b2 := range Bodies[i+1:] {
			p2, ok := positions[b2]
			if !ok {
				continue
			}
			sep := Separation(p1.Longitude, p2.Longitude)
			def, hit := Classify(sep, table)
			if !hit {
				continue
			}
			aspects = append(aspects, AspectRelation{
				Body1:      b1,
				Body2:      b2,
				Kind:       def.Kind,
				Angle:      sep,
				Orb:        math.Abs(sep - def.Angle),
				ExactAngle: def.Angle,
			})
		}
	}
	return aspects
}

// NatalAspects classifies every pair against the natal table.
func NatalAspects(positions map[Body]CelestialPosition) []AspectRelation {
	return AspectsBetween(positions, NatalAspectTable)
}

// TransitHits checks every (transiting, natal) body pair against the tight
// transit table. Unlike natal aspects this is a full cross product, so a
// body can transit its own natal position.
func TransitHits(current, natal map[Body]CelestialPosition) []TransitAspect {
	var hits []TransitAspect
	for _, tb := range Bodies {
		tp, ok := current[tb]
		if !ok {
			continue
		}
		for _, nb := range Bodies {
			np, ok := natal[nb]
			if !ok {
				continue
			}
			sep := Separation(tp.Longitude, np.Longitude)
			def, hit := Classify(sep, TransitAspectTable)
			if !hit {
				continue
			}
			hits = append(hits, TransitAspect{
				TransitBody: tb,
				NatalBody:   nb,
				Kind:        def.Kind,
				Orb:         math.Abs(sep - def.Angle),
			})
		}
	}
	return hits
}
