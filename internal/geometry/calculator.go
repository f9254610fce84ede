// Package geometry converts an extraction record into explicit 3D
// coordinates for every longitudinal bar and stirrup instance. The
// coordinates are computed mathematically, not through a CAD kernel:
// the 3D model is a disposable visualization, the structured record is
// the asset.
package geometry

import (
	"fmt"

	"github.com/a01110946/extraction-validation-engine/internal/schema"
)

const (
	// DefaultColumnHeightMM is the visualization height used when the
	// caller does not configure one.
	DefaultColumnHeightMM = 3000.0

	// Fallback diameters and cover used when the extraction omits them.
	defaultLongBarDiameterMM = 25.4 // 1"
	defaultStirrupDiameterMM = 12.7 // 1/2"
	defaultClearCoverMM      = 40.0
)

// InputError reports a missing required top-level field on the record
// handed to Generate.
type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s field is missing from extraction data", e.Field)
}

// Point3D is a coordinate in millimeters.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// LongitudinalBar is one vertical bar segment.
type LongitudinalBar struct {
	BarID      int     `json:"bar_id"`
	Start      Point3D `json:"start"`
	End        Point3D `json:"end"`
	DiameterMM float64 `json:"diameter_mm"`
	Type       string  `json:"type"`
}

// Stirrup is one tie instance at a fixed height.
type Stirrup struct {
	StirrupID  string              `json:"stirrup_id"`
	Path       []Point3D           `json:"path"`
	DiameterMM float64             `json:"diameter_mm"`
	Shape      schema.StirrupShape `json:"shape"`
	ZPosition  float64             `json:"z_position"`
	Type       string              `json:"type"`
}

// Section summarizes the envelope the payload was generated for.
type Section struct {
	WidthMM  float64 `json:"width_mm"`
	DepthMM  float64 `json:"depth_mm"`
	HeightMM float64 `json:"height_mm"`
	CoverMM  float64 `json:"cover_mm"`
}

// Payload is the flat, renderer-ready geometry result.
type Payload struct {
	LongitudinalBars []LongitudinalBar `json:"longitudinal_bars"`
	Stirrups         []Stirrup         `json:"stirrups"`
	Section          Section           `json:"section"`
}

// Engine computes reinforcement geometry for a configured column
// height. Engines are stateless apart from the height and safe for
// concurrent use.
type Engine struct {
	ColumnHeightMM float64
}

// NewEngine returns an engine for the given visualization height.
// Non-positive heights fall back to DefaultColumnHeightMM.
func NewEngine(columnHeightMM float64) *Engine {
	if columnHeightMM <= 0 {
		columnHeightMM = DefaultColumnHeightMM
	}
	return &Engine{ColumnHeightMM: columnHeightMM}
}

// linspace returns n values evenly spaced over [start, end], inclusive
// of both ends.
func linspace(start, end float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = end
	return out
}

// PlaceLongitudinal computes bar positions for one group. Columns are
// spread evenly along X between the cover lines; each column stacks
// its bars evenly along Y, except a lone bar which sits at mid-depth.
// Bar ids are dense and sequential even when a column holds zero bars.
func (e *Engine) PlaceLongitudinal(widthMM, depthMM, barDiameterMM float64,
	barXColumns int, barYMatrix []int, clearCoverMM float64) []LongitudinalBar {

	var bars []LongitudinalBar

	xPositions := linspace(
		clearCoverMM+barDiameterMM/2,
		widthMM-clearCoverMM-barDiameterMM/2,
		barXColumns)

	barID := 0
	for col, count := range barYMatrix {
		if count == 0 {
			continue
		}

		var yCoords []float64
		if count > 1 {
			yCoords = linspace(
				clearCoverMM+barDiameterMM/2,
				depthMM-clearCoverMM-barDiameterMM/2,
				count)
		} else {
			yCoords = []float64{depthMM / 2}
		}

		x := xPositions[col]
		for _, y := range yCoords {
			bars = append(bars, LongitudinalBar{
				BarID:      barID,
				Start:      Point3D{X: x, Y: y, Z: 0},
				End:        Point3D{X: x, Y: y, Z: e.ColumnHeightMM},
				DiameterMM: barDiameterMM,
				Type:       "longitudinal",
			})
			barID++
		}
	}

	return bars
}

// MinimumBendRadiusMM is the ACI minimum inside bend radius for a
// stirrup corner (3db). The rectangular path below keeps sharp corners
// for now; this value is what a filleted path would use.
func MinimumBendRadiusMM(barDiameterMM float64) float64 {
	return 3 * barDiameterMM
}

// RectangularStirrupPath returns the closed five-point perimeter of a
// centered rectangular tie at height z, clockwise from bottom-left.
func RectangularStirrupPath(internalWidthMM, internalDepthMM, z float64) []Point3D {
	halfW := internalWidthMM / 2
	halfD := internalDepthMM / 2
	return []Point3D{
		{X: -halfW, Y: -halfD, Z: z},
		{X: halfW, Y: -halfD, Z: z},
		{X: halfW, Y: halfD, Z: z},
		{X: -halfW, Y: halfD, Z: z},
		{X: -halfW, Y: -halfD, Z: z},
	}
}

// ZPositions expands a spacing pattern into tie heights, starting at
// z=0. Numeric quantities advance and record until z would reach the
// total height; the "rest" sentinel repeats its spacing while
// z+spacing stays strictly below the total height and terminates the
// pattern.
func (e *Engine) ZPositions(pattern []schema.SpacingItem, totalHeightMM float64) []float64 {
	if totalHeightMM <= 0 {
		totalHeightMM = e.ColumnHeightMM
	}

	positions := []float64{0.0}
	z := 0.0

	for _, item := range pattern {
		if item.IsRest() {
			for z+item.Spacing < totalHeightMM {
				z += item.Spacing
				positions = append(positions, z)
			}
			break
		}

		count, err := item.Count()
		if err != nil {
			// Malformed quantities are rejected at construction; an
			// unvalidated record just skips the item.
			continue
		}
		for i := 0; i < count; i++ {
			z += item.Spacing
			if z >= totalHeightMM {
				break
			}
			positions = append(positions, z)
		}
	}

	return positions
}

// Generate computes the complete geometry payload for a record. The
// record must carry geometry and longitudinal reinforcement; nil
// entries inside the reinforcement lists are dropped defensively.
func (e *Engine) Generate(rec *schema.ColumnExtraction) (*Payload, error) {
	if rec == nil || rec.Geometry == nil {
		return nil, &InputError{Field: "geometry"}
	}
	if rec.Longitudinal == nil {
		return nil, &InputError{Field: "longitudinal_reinforcement"}
	}
	if rec.Geometry.WidthMM == nil {
		return nil, &InputError{Field: "width_mm"}
	}
	if rec.Geometry.DepthMM == nil {
		return nil, &InputError{Field: "depth_mm"}
	}

	width := *rec.Geometry.WidthMM
	depth := *rec.Geometry.DepthMM

	cover := defaultClearCoverMM
	if rec.ConcreteSpecs != nil && rec.ConcreteSpecs.ClearCoverMM != nil {
		cover = *rec.ConcreteSpecs.ClearCoverMM
	}

	payload := &Payload{
		LongitudinalBars: []LongitudinalBar{},
		Stirrups:         []Stirrup{},
		Section: Section{
			WidthMM:  width,
			DepthMM:  depth,
			HeightMM: e.ColumnHeightMM,
			CoverMM:  cover,
		},
	}

	for _, group := range rec.Longitudinal {
		if group == nil {
			continue
		}
		barDia := defaultLongBarDiameterMM
		if group.BarDiameterMM != nil {
			barDia = *group.BarDiameterMM
		}
		bars := e.PlaceLongitudinal(width, depth, barDia,
			group.BarXColumns, group.BarYMatrix, cover)
		payload.LongitudinalBars = append(payload.LongitudinalBars, bars...)
	}

	for _, group := range rec.Transverse {
		if group == nil || group.StirrupShape != schema.ShapeRectangular {
			continue
		}

		internalW := width - 2*cover
		internalD := depth - 2*cover
		if dims := group.StirrupDimensions; dims != nil {
			if dims.SpanWidthMM != nil {
				internalW = *dims.SpanWidthMM
			}
			if dims.SpanDepthMM != nil {
				internalD = *dims.SpanDepthMM
			}
		}

		stirrupDia := defaultStirrupDiameterMM
		if group.BarDiameterMM != nil {
			stirrupDia = *group.BarDiameterMM
		}

		baseID := group.StirrupID
		if baseID == "" {
			baseID = "stirrup"
		}

		for idx, z := range e.ZPositions(group.SpacingMM, e.ColumnHeightMM) {
			payload.Stirrups = append(payload.Stirrups, Stirrup{
				StirrupID:  fmt.Sprintf("%s_%d", baseID, idx),
				Path:       RectangularStirrupPath(internalW, internalD, z),
				DiameterMM: stirrupDia,
				Shape:      group.StirrupShape,
				ZPosition:  z,
				Type:       "stirrup",
			})
		}
	}

	return payload, nil
}
