package aci

import (
	"strings"
	"testing"

	"github.com/a01110946/extraction-validation-engine/internal/schema"
)

func fptr(v float64) *float64 { return &v }

func testRecord() *schema.ColumnExtraction {
	return &schema.ColumnExtraction{
		ElementIdentification: schema.ElementIdentification{
			TypeOfElement: "Column",
			ElementID:     "C-02",
		},
		Geometry: &schema.Geometry{
			CrossSectionType: schema.SectionRectangular,
			WidthMM:          fptr(420),
			DepthMM:          fptr(700),
		},
		ConcreteSpecs: &schema.ConcreteSpecs{
			ConcreteStrength: "f'c=280kg/cm2",
		},
		Longitudinal: []*schema.LongitudinalGroup{
			{
				BarDiameterMM: fptr(15.9),
				BarCount:      14,
				ReferenceCode: `14Ø5/8"`,
				BarXColumns:   3,
				BarYMatrix:    []int{6, 2, 6},
			},
		},
	}
}

func TestHeal_InjectsCover(t *testing.T) {
	rec := testRecord()
	healed, corrections := Heal(rec, InteriorBeamsColumns)

	if healed.ConcreteSpecs.ClearCoverMM == nil {
		t.Fatal("clear_cover_mm not injected")
	}
	if got := *healed.ConcreteSpecs.ClearCoverMM; got != 38.1 {
		t.Errorf("injected cover = %g, want 38.1", got)
	}

	found := false
	for _, c := range corrections {
		if strings.Contains(c, "clear_cover_mm=38.1mm") {
			found = true
		}
	}
	if !found {
		t.Errorf("no correction mentions the injected cover: %v", corrections)
	}
}

func TestHeal_ExistingCoverUntouched(t *testing.T) {
	rec := testRecord()
	rec.ConcreteSpecs.ClearCoverMM = fptr(50)

	healed, corrections := Heal(rec, InteriorBeamsColumns)
	if got := *healed.ConcreteSpecs.ClearCoverMM; got != 50 {
		t.Errorf("cover = %g, want 50 (unchanged)", got)
	}
	for _, c := range corrections {
		if strings.Contains(c, "Injected clear_cover_mm") {
			t.Errorf("unexpected cover injection note: %q", c)
		}
	}
}

func TestHeal_AttachesCodeDefaults(t *testing.T) {
	rec := testRecord()
	healed, corrections := Heal(rec, InteriorBeamsColumns)

	defaults := healed.Longitudinal[0].CodeDefaults
	if defaults == nil {
		t.Fatal("code defaults not attached")
	}
	if got, want := defaults.HookExtensionMM, 12*15.9; got != want {
		t.Errorf("hook extension = %g, want %g", got, want)
	}
	if got, want := defaults.BendDiameterMM, 6*15.9; got != want {
		t.Errorf("bend diameter = %g, want %g", got, want)
	}

	found := false
	for _, c := range corrections {
		if strings.HasPrefix(c, "Bar 0: Calculated ACI defaults") {
			found = true
		}
	}
	if !found {
		t.Errorf("no per-group defaults note: %v", corrections)
	}
}

func TestHeal_NoteOrdering(t *testing.T) {
	rec := testRecord()
	_, corrections := Heal(rec, InteriorBeamsColumns)

	// Cover injection first, then per-group defaults, then the fit
	// check verdict.
	if len(corrections) < 3 {
		t.Fatalf("corrections = %v, want at least 3", corrections)
	}
	if !strings.Contains(corrections[0], "Injected clear_cover_mm") {
		t.Errorf("corrections[0] = %q, want cover injection", corrections[0])
	}
	if !strings.Contains(corrections[1], "Bar 0") {
		t.Errorf("corrections[1] = %q, want bar defaults", corrections[1])
	}
	if !strings.Contains(corrections[2], "Bar spacing validation passed") {
		t.Errorf("corrections[2] = %q, want fit check verdict", corrections[2])
	}
}

func TestHeal_FitCheckUsesHealedCover(t *testing.T) {
	// A narrow section that fails the fit check after the code cover
	// is injected; the warning note carries the check message.
	rec := testRecord()
	rec.Geometry.WidthMM = fptr(200)
	rec.Longitudinal[0] = &schema.LongitudinalGroup{
		BarDiameterMM: fptr(25.4),
		BarCount:      6,
		ReferenceCode: "6Ø1\"",
		BarXColumns:   6,
		BarYMatrix:    []int{1, 1, 1, 1, 1, 1},
	}

	_, corrections := Heal(rec, InteriorBeamsColumns)

	found := false
	for _, c := range corrections {
		if strings.Contains(c, "VALIDATION ERROR") && strings.Contains(c, "Insufficient X-spacing") {
			found = true
		}
	}
	if !found {
		t.Errorf("no fit failure warning in %v", corrections)
	}
}

func TestHeal_SkipsStepsWithMissingPreconditions(t *testing.T) {
	t.Run("no concrete specs", func(t *testing.T) {
		rec := testRecord()
		rec.ConcreteSpecs = nil
		healed, corrections := Heal(rec, InteriorBeamsColumns)
		if healed.ConcreteSpecs != nil {
			t.Error("concrete specs materialized out of nothing")
		}
		// Per-group defaults still computed.
		if healed.Longitudinal[0].CodeDefaults == nil {
			t.Error("code defaults missing")
		}
		for _, c := range corrections {
			if strings.Contains(c, "spacing validation") {
				t.Errorf("fit check ran without concrete specs: %q", c)
			}
		}
	})

	t.Run("no bar diameter", func(t *testing.T) {
		rec := testRecord()
		rec.Longitudinal[0].BarDiameterMM = nil
		healed, corrections := Heal(rec, InteriorBeamsColumns)
		if healed.ConcreteSpecs.ClearCoverMM != nil {
			t.Error("cover injected without a bar diameter to size it from")
		}
		if healed.Longitudinal[0].CodeDefaults != nil {
			t.Error("code defaults computed without a diameter")
		}
		if len(corrections) != 0 {
			t.Errorf("corrections = %v, want none", corrections)
		}
	})

	t.Run("circular section skips fit check", func(t *testing.T) {
		rec := testRecord()
		rec.Geometry = &schema.Geometry{
			CrossSectionType: schema.SectionCircular,
			DiameterMM:       fptr(500),
		}
		_, corrections := Heal(rec, InteriorBeamsColumns)
		for _, c := range corrections {
			if strings.Contains(c, "spacing validation") || strings.Contains(c, "VALIDATION ERROR") {
				t.Errorf("fit check ran for circular section: %q", c)
			}
		}
	})
}

func TestHeal_DoesNotMutateInput(t *testing.T) {
	rec := testRecord()
	Heal(rec, InteriorBeamsColumns)

	if rec.ConcreteSpecs.ClearCoverMM != nil {
		t.Error("input record's cover was mutated")
	}
	if rec.Longitudinal[0].CodeDefaults != nil {
		t.Error("input record's bar group was mutated")
	}
}

func TestHeal_WeatherExposedCover(t *testing.T) {
	rec := testRecord()
	rec.Longitudinal[0].BarDiameterMM = fptr(25.4)

	healed, _ := Heal(rec, WeatherExposed)
	if got := *healed.ConcreteSpecs.ClearCoverMM; got != 50.8 {
		t.Errorf("cover = %g, want 50.8 for large bar weather exposed", got)
	}
}

func TestHeal_FlagsUnrenderedStirrupShapes(t *testing.T) {
	rec := testRecord()
	rec.Transverse = []*schema.TransverseGroup{
		{
			StirrupType:  schema.MainStirrup,
			StirrupShape: schema.ShapeRectangular,
			SpacingMM:    []schema.SpacingItem{{Quantity: "rest", Spacing: 150}},
		},
		{
			StirrupType:  schema.CrossTie,
			StirrupShape: schema.ShapeDiamond,
			SpacingMM:    []schema.SpacingItem{{Quantity: "rest", Spacing: 150}},
		},
	}

	_, corrections := Heal(rec, InteriorBeamsColumns)

	found := false
	for _, c := range corrections {
		if strings.Contains(c, "Stirrup 1") && strings.Contains(c, "diamond") {
			found = true
		}
		if strings.Contains(c, "Stirrup 0") {
			t.Errorf("rectangular stirrup flagged: %q", c)
		}
	}
	if !found {
		t.Errorf("diamond stirrup not flagged in %v", corrections)
	}
}
