package schema

import (
	"encoding/json"
	"fmt"
)

// ValidationError reports a structural schema violation. Records that
// fail validation are rejected outright; healing never repairs them.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func violation(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func positive(v *float64) bool {
	return v == nil || *v > 0
}

// Validate checks the cross-section dimension requirements.
func (g *Geometry) Validate() error {
	if !g.CrossSectionType.IsValid() {
		return violation("unknown cross_section_type %q", g.CrossSectionType)
	}
	switch g.CrossSectionType {
	case SectionCircular:
		if g.DiameterMM == nil {
			return violation("diameter_mm required for circular sections")
		}
	default:
		if g.WidthMM == nil || g.DepthMM == nil {
			return violation("width_mm and depth_mm required for %s sections", g.CrossSectionType)
		}
	}
	if !positive(g.WidthMM) || !positive(g.DepthMM) || !positive(g.DiameterMM) {
		return violation("section dimensions must be positive")
	}
	return nil
}

// Validate checks the concrete specification block.
func (c *ConcreteSpecs) Validate() error {
	if c.ConcreteStrength == "" {
		return violation("concrete_strength is required")
	}
	if !positive(c.ClearCoverMM) {
		return violation("clear_cover_mm must be positive")
	}
	return nil
}

// Validate checks the prescriptive bar placement invariants:
// bar_y_matrix length must equal bar_x_columns and its entries must be
// non-negative and sum to bar_count.
func (g *LongitudinalGroup) Validate() error {
	if g.BarCount < 1 {
		return violation("bar_count must be at least 1")
	}
	if g.ReferenceCode == "" {
		return violation("reference_code is required")
	}
	if g.BarXColumns < 1 {
		return violation("bar_x_columns must be at least 1")
	}
	if !positive(g.BarDiameterMM) {
		return violation("bar_diameter_mm must be positive")
	}
	if len(g.BarYMatrix) != g.BarXColumns {
		return violation("bar_y_matrix length (%d) must equal bar_x_columns (%d)",
			len(g.BarYMatrix), g.BarXColumns)
	}
	sum := 0
	for _, n := range g.BarYMatrix {
		if n < 0 {
			return violation("bar_y_matrix entries must be non-negative")
		}
		sum += n
	}
	if sum != g.BarCount {
		return violation("sum of bar_y_matrix (%d) must equal bar_count (%d)", sum, g.BarCount)
	}
	return nil
}

// Validate checks a single spacing pattern entry.
func (s SpacingItem) Validate() error {
	if !s.IsRest() {
		if _, err := s.Count(); err != nil {
			return violation("%v", err)
		}
	}
	if s.Spacing <= 0 {
		return violation("spacing must be positive, got %g", s.Spacing)
	}
	return nil
}

// Validate checks a transverse reinforcement group.
func (t *TransverseGroup) Validate() error {
	if !t.StirrupType.IsValid() {
		return violation("unknown stirrup_type %q", t.StirrupType)
	}
	if !t.StirrupShape.IsValid() {
		return violation("unknown stirrup_shape %q", t.StirrupShape)
	}
	if !positive(t.BarDiameterMM) {
		return violation("stirrup bar_diameter_mm must be positive")
	}
	if t.StirrupDimensions != nil {
		if !positive(t.StirrupDimensions.SpanWidthMM) || !positive(t.StirrupDimensions.SpanDepthMM) {
			return violation("stirrup span dimensions must be positive")
		}
	}
	if len(t.SpacingMM) == 0 {
		return violation("spacing_mm requires at least one entry")
	}
	for i, item := range t.SpacingMM {
		if err := item.Validate(); err != nil {
			return violation("spacing_mm[%d]: %v", i, err)
		}
	}
	return nil
}

// Validate checks the whole record against the construction
// invariants. Optional blocks are validated only when present.
func (c *ColumnExtraction) Validate() error {
	if c.ElementIdentification.ElementID == "" {
		return violation("element_id is required")
	}
	if c.ElementIdentification.TypeOfElement == "" {
		return violation("type_of_element is required")
	}
	if c.Geometry == nil {
		return violation("geometry is required")
	}
	if err := c.Geometry.Validate(); err != nil {
		return err
	}
	if c.ConcreteSpecs != nil {
		if err := c.ConcreteSpecs.Validate(); err != nil {
			return err
		}
	}
	if len(c.Longitudinal) == 0 {
		return violation("at least one longitudinal reinforcement group is required")
	}
	for i, group := range c.Longitudinal {
		if group == nil {
			continue
		}
		if err := group.Validate(); err != nil {
			return violation("longitudinal_reinforcement[%d]: %v", i, err)
		}
	}
	for i, group := range c.Transverse {
		if group == nil {
			continue
		}
		if err := group.Validate(); err != nil {
			return violation("transverse_reinforcement[%d]: %v", i, err)
		}
	}
	return nil
}

// ParseJSON decodes a record and enforces the construction invariants.
// This is the only supported way to build a record from external data.
func ParseJSON(data []byte) (*ColumnExtraction, error) {
	var rec ColumnExtraction
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, violation("malformed extraction JSON: %v", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}
