package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CrossSectionType enumerates the supported column cross-sections.
type CrossSectionType string

const (
	SectionRectangular CrossSectionType = "rectangular"
	SectionCircular    CrossSectionType = "circular"
	SectionLShaped     CrossSectionType = "L-shaped"
	SectionTShaped     CrossSectionType = "T-shaped"
)

// IsValid reports whether the cross-section type is a known variant.
func (c CrossSectionType) IsValid() bool {
	switch c {
	case SectionRectangular, SectionCircular, SectionLShaped, SectionTShaped:
		return true
	}
	return false
}

// StirrupType enumerates transverse reinforcement roles.
type StirrupType string

const (
	MainStirrup         StirrupType = "main_stirrup"
	IntermediateStirrup StirrupType = "intermediate_stirrup"
	InternalTie         StirrupType = "internal_tie"
	CrossTie            StirrupType = "cross_tie"
)

// IsValid reports whether the stirrup type is a known variant.
func (s StirrupType) IsValid() bool {
	switch s {
	case MainStirrup, IntermediateStirrup, InternalTie, CrossTie:
		return true
	}
	return false
}

// StirrupShape enumerates declared stirrup/tie geometries.
// Only ShapeRectangular is realized in 3D by the geometry engine.
type StirrupShape string

const (
	ShapeRectangular StirrupShape = "rectangular"
	ShapeCircular    StirrupShape = "circular"
	ShapeLShaped     StirrupShape = "L-shaped"
	ShapeUShaped     StirrupShape = "U-shaped"
	ShapeDiamond     StirrupShape = "diamond"
	ShapeCustom      StirrupShape = "custom"
)

// IsValid reports whether the stirrup shape is a known variant.
func (s StirrupShape) IsValid() bool {
	switch s {
	case ShapeRectangular, ShapeCircular, ShapeLShaped, ShapeUShaped, ShapeDiamond, ShapeCustom:
		return true
	}
	return false
}

// RestQuantity is the sentinel quantity meaning "repeat this spacing
// until the member height is consumed".
const RestQuantity = "rest"

// SpacingItem is one entry of a tie spacing pattern, e.g. "10@100"
// becomes {Quantity: "10", Spacing: 100}.
type SpacingItem struct {
	Quantity string  `json:"quantity"`
	Spacing  float64 `json:"spacing"`
}

// IsRest reports whether the item carries the "rest" sentinel.
func (s SpacingItem) IsRest() bool {
	return strings.EqualFold(s.Quantity, RestQuantity)
}

// Count returns the numeric repeat count. It returns an error for the
// "rest" sentinel and for malformed quantities.
func (s SpacingItem) Count() (int, error) {
	if s.IsRest() {
		return 0, fmt.Errorf("quantity is %q, not numeric", RestQuantity)
	}
	n, err := strconv.Atoi(s.Quantity)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("quantity must be %q or a positive integer, got %q", RestQuantity, s.Quantity)
	}
	return n, nil
}

// StirrupDimensions holds the internal clear dimensions a tie encloses.
type StirrupDimensions struct {
	SpanWidthMM *float64 `json:"span_width_mm,omitempty"`
	SpanDepthMM *float64 `json:"span_depth_mm,omitempty"`
}

// TransverseGroup describes one set of stirrups, ties or hoops,
// including the spacing pattern along the column height.
type TransverseGroup struct {
	StirrupID         string             `json:"stirrup_id,omitempty"`
	StirrupType       StirrupType        `json:"stirrup_type"`
	BarDiameterMM     *float64           `json:"bar_diameter_mm,omitempty"`
	StirrupDimensions *StirrupDimensions `json:"stirrup_dimensions,omitempty"`
	StirrupShape      StirrupShape       `json:"stirrup_shape"`
	SpacingMM         []SpacingItem      `json:"spacing_mm"`
	ReferenceCode     string             `json:"reference_code,omitempty"`
	Zone              string             `json:"zone,omitempty"`
}

// CodeDefaults carries auxiliary ACI 318 quantities attached to a bar
// group during healing. Not part of the extraction schema proper.
type CodeDefaults struct {
	HookExtensionMM float64 `json:"hook_extension_mm"`
	BendDiameterMM  float64 `json:"bend_diameter_mm"`
}

// LongitudinalGroup describes one group of main vertical bars using
// prescriptive placement: bars arranged in BarXColumns columns along X,
// with BarYMatrix[i] bars stacked along Y in column i.
type LongitudinalGroup struct {
	BarGroupID    string   `json:"bar_group_id,omitempty"`
	BarDiameterMM *float64 `json:"bar_diameter_mm,omitempty"`
	BarCount      int      `json:"bar_count"`
	ReferenceCode string   `json:"reference_code"`
	Zone          string   `json:"zone,omitempty"`
	BarXColumns   int      `json:"bar_x_columns"`
	BarYMatrix    []int    `json:"bar_y_matrix"`

	// CodeDefaults is populated by the compliance engine, never by
	// extraction.
	CodeDefaults *CodeDefaults `json:"_aci_defaults,omitempty"`
}

// ConcreteSpecs holds concrete material properties. Strength and
// modulus are verbatim drawing text, not parsed quantities.
type ConcreteSpecs struct {
	ConcreteStrength    string   `json:"concrete_strength"`
	ModulusOfElasticity string   `json:"modulus_of_elasticity,omitempty"`
	ClearCoverMM        *float64 `json:"clear_cover_mm,omitempty"`
}

// Geometry holds the cross-section dimensions. Which fields are
// required depends on CrossSectionType; see Validate.
type Geometry struct {
	CrossSectionType CrossSectionType `json:"cross_section_type"`
	WidthMM          *float64         `json:"width_mm,omitempty"`
	DepthMM          *float64         `json:"depth_mm,omitempty"`
	DiameterMM       *float64         `json:"diameter_mm,omitempty"`
}

// ElementIdentification carries drawing metadata for the element.
type ElementIdentification struct {
	TypeOfElement    string `json:"type_of_element"`
	ElementID        string `json:"element_id"`
	LevelReference   string `json:"level_reference,omitempty"`
	SectionReference string `json:"section_reference,omitempty"`
	Scale            string `json:"scale,omitempty"`
}

// ReinforcementLayout is an informational summary; the engines do not
// read it.
type ReinforcementLayout struct {
	TotalVerticalBars    *int   `json:"total_vertical_bars,omitempty"`
	TotalStirrupSets     *int   `json:"total_stirrup_sets,omitempty"`
	ReinforcementPattern string `json:"reinforcement_pattern,omitempty"`
}

// ColumnExtraction is the complete extraction result for one
// reinforced concrete column cross-section.
type ColumnExtraction struct {
	ElementIdentification ElementIdentification `json:"element_identification"`
	Geometry              *Geometry             `json:"geometry"`
	ConcreteSpecs         *ConcreteSpecs        `json:"concrete_specifications,omitempty"`
	Longitudinal          []*LongitudinalGroup  `json:"longitudinal_reinforcement"`
	Transverse            []*TransverseGroup    `json:"transverse_reinforcement,omitempty"`
	Layout                *ReinforcementLayout  `json:"reinforcement_layout,omitempty"`

	// Persistence metadata; ignored by both engines.
	ExtractedAt     time.Time `json:"extracted_at,omitempty"`
	Validated       bool      `json:"validated"`
	ValidationNotes string    `json:"validation_notes,omitempty"`
}
