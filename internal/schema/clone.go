package schema

// Deep copies. Healing edits nested structures, so every level must be
// an independent copy of the caller's record; a top-level copy that
// still shares slices or sub-structs would silently mutate the input.

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Clone returns an independent copy of the geometry block.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	return &Geometry{
		CrossSectionType: g.CrossSectionType,
		WidthMM:          cloneFloat(g.WidthMM),
		DepthMM:          cloneFloat(g.DepthMM),
		DiameterMM:       cloneFloat(g.DiameterMM),
	}
}

// Clone returns an independent copy of the concrete specifications.
func (c *ConcreteSpecs) Clone() *ConcreteSpecs {
	if c == nil {
		return nil
	}
	return &ConcreteSpecs{
		ConcreteStrength:    c.ConcreteStrength,
		ModulusOfElasticity: c.ModulusOfElasticity,
		ClearCoverMM:        cloneFloat(c.ClearCoverMM),
	}
}

// Clone returns an independent copy of the bar group, including the
// placement matrix and any attached code defaults.
func (g *LongitudinalGroup) Clone() *LongitudinalGroup {
	if g == nil {
		return nil
	}
	c := *g
	c.BarDiameterMM = cloneFloat(g.BarDiameterMM)
	if g.BarYMatrix != nil {
		c.BarYMatrix = make([]int, len(g.BarYMatrix))
		copy(c.BarYMatrix, g.BarYMatrix)
	}
	if g.CodeDefaults != nil {
		d := *g.CodeDefaults
		c.CodeDefaults = &d
	}
	return &c
}

// Clone returns an independent copy of the transverse group.
func (t *TransverseGroup) Clone() *TransverseGroup {
	if t == nil {
		return nil
	}
	c := *t
	c.BarDiameterMM = cloneFloat(t.BarDiameterMM)
	if t.StirrupDimensions != nil {
		c.StirrupDimensions = &StirrupDimensions{
			SpanWidthMM: cloneFloat(t.StirrupDimensions.SpanWidthMM),
			SpanDepthMM: cloneFloat(t.StirrupDimensions.SpanDepthMM),
		}
	}
	if t.SpacingMM != nil {
		c.SpacingMM = make([]SpacingItem, len(t.SpacingMM))
		copy(c.SpacingMM, t.SpacingMM)
	}
	return &c
}

// Clone returns an independent copy of the layout summary.
func (l *ReinforcementLayout) Clone() *ReinforcementLayout {
	if l == nil {
		return nil
	}
	return &ReinforcementLayout{
		TotalVerticalBars:    cloneInt(l.TotalVerticalBars),
		TotalStirrupSets:     cloneInt(l.TotalStirrupSets),
		ReinforcementPattern: l.ReinforcementPattern,
	}
}

// Clone returns a fully independent copy of the record. Mutating the
// copy never affects the original at any nesting level.
func (c *ColumnExtraction) Clone() *ColumnExtraction {
	if c == nil {
		return nil
	}
	out := *c
	out.Geometry = c.Geometry.Clone()
	out.ConcreteSpecs = c.ConcreteSpecs.Clone()
	out.Layout = c.Layout.Clone()
	if c.Longitudinal != nil {
		out.Longitudinal = make([]*LongitudinalGroup, len(c.Longitudinal))
		for i, g := range c.Longitudinal {
			out.Longitudinal[i] = g.Clone()
		}
	}
	if c.Transverse != nil {
		out.Transverse = make([]*TransverseGroup, len(c.Transverse))
		for i, g := range c.Transverse {
			out.Transverse[i] = g.Clone()
		}
	}
	return &out
}
