package aci

import (
	"fmt"
	"math"
)

// ACI 318-19 prescriptive minimums for reinforcement detailing.

// ExposureCondition is an ACI 318-19 Table 20.6.1.3.1 exposure category.
type ExposureCondition string

const (
	CastAgainstEarth     ExposureCondition = "cast_against_earth"
	WeatherExposed       ExposureCondition = "weather_exposed"
	InteriorSlabs        ExposureCondition = "interior_slabs"
	InteriorBeamsColumns ExposureCondition = "interior_beams_columns"
)

// IsValid reports whether the exposure condition is a known variant.
func (e ExposureCondition) IsValid() bool {
	switch e {
	case CastAgainstEarth, WeatherExposed, InteriorSlabs, InteriorBeamsColumns:
		return true
	}
	return false
}

// ParseExposure converts a token into an ExposureCondition.
func ParseExposure(s string) (ExposureCondition, error) {
	e := ExposureCondition(s)
	if !e.IsValid() {
		return "", fmt.Errorf("unknown exposure condition %q", s)
	}
	return e, nil
}

// HookType is a standard hook configuration.
type HookType string

const (
	Hook90         HookType = "90_degree"
	Hook180        HookType = "180_degree"
	Hook135Seismic HookType = "135_degree_seismic"
)

const (
	// DefaultAggregateSizeMM is the assumed maximum aggregate size
	// (1") when the drawing does not state one.
	DefaultAggregateSizeMM = 25.0

	// AbsoluteMinSpacingMM is the 25 mm floor of Section 25.2.1.
	AbsoluteMinSpacingMM = 25.0

	// Bar diameter above which weather-exposed members need the larger
	// cover tier (#6 and up).
	largeBarThresholdMM = 19.1
)

// coverTier holds one row of Table 20.6.1.3.1. A zero smallMM means
// the cover does not depend on bar size.
type coverTier struct {
	allMM   float64
	smallMM float64
}

// ACI 318-19 Table 20.6.1.3.1 - Minimum cover (mm).
// Weather-exposed members use 50.8 (2.0") for #6 and larger and 38.1
// (1.5") for #3-#5; the other exposures do not depend on bar size.
var coverRequirements = map[ExposureCondition]coverTier{
	CastAgainstEarth:     {allMM: 76.2},
	WeatherExposed:       {allMM: 50.8, smallMM: 38.1},
	InteriorBeamsColumns: {allMM: 38.1},
	InteriorSlabs:        {allMM: 19.1},
}

// MinimumCover returns the minimum concrete cover per ACI 318-19
// Table 20.6.1.3.1 for the given bar diameter and exposure.
func MinimumCover(barDiameterMM float64, exposure ExposureCondition) float64 {
	tier := coverRequirements[exposure]
	if tier.smallMM == 0 {
		return tier.allMM
	}
	if barDiameterMM >= largeBarThresholdMM {
		return tier.allMM
	}
	return tier.smallMM
}

// HookExtension returns the straight extension length beyond the bend
// per ACI 318-19 Section 25.3.1. Unrecognized hook types fall back to
// the 90-degree rule.
func HookExtension(barDiameterMM float64, hook HookType) float64 {
	db := barDiameterMM
	switch hook {
	case Hook180:
		return math.Max(4*db, 63.5) // 2.5"
	case Hook135Seismic:
		return math.Max(6*db, 76.2) // 3.0"
	default:
		return 12 * db
	}
}

// BendDiameter returns the minimum inside bend diameter per ACI 318-19
// Table 25.3.2.
func BendDiameter(barDiameterMM float64) float64 {
	db := barDiameterMM
	var factor float64
	switch {
	case db <= 25.4: // #3 through #8
		factor = 6
	case db <= 35.8: // #9, #10, #11
		factor = 8
	default: // #14, #18
		factor = 10
	}
	return factor * db
}

// MinimumSpacing returns the minimum clear bar spacing per ACI 318-19
// Section 25.2.1: max(db, 25mm, 1.33 * aggregate size).
func MinimumSpacing(barDiameterMM, aggregateSizeMM float64) float64 {
	return math.Max(barDiameterMM, math.Max(AbsoluteMinSpacingMM, 1.33*aggregateSizeMM))
}

// ValidateBarFit checks that the prescriptive bar layout physically
// fits within the section at code-minimum clear spacing. A single
// column or single row skips the corresponding axis check.
func ValidateBarFit(sectionWidthMM, sectionDepthMM, barDiameterMM float64,
	barXColumns int, barYMatrix []int, clearCoverMM float64) (bool, string) {

	wEff := sectionWidthMM - 2*clearCoverMM - barDiameterMM
	dEff := sectionDepthMM - 2*clearCoverMM - barDiameterMM
	minSpacing := MinimumSpacing(barDiameterMM, DefaultAggregateSizeMM)

	if barXColumns > 1 {
		xSpacing := wEff / float64(barXColumns-1)
		if xSpacing < minSpacing {
			return false, fmt.Sprintf("Insufficient X-spacing: %.1fmm < minimum %.1fmm",
				xSpacing, minSpacing)
		}
	}

	maxYBars := 0
	for _, n := range barYMatrix {
		if n > maxYBars {
			maxYBars = n
		}
	}
	if maxYBars > 1 {
		ySpacing := dEff / float64(maxYBars-1)
		if ySpacing < minSpacing {
			return false, fmt.Sprintf("Insufficient Y-spacing: %.1fmm < minimum %.1fmm",
				ySpacing, minSpacing)
		}
	}

	return true, ""
}
