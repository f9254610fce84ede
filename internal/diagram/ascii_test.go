package diagram

import (
	"strings"
	"testing"

	"github.com/a01110946/extraction-validation-engine/internal/geometry"
	"github.com/a01110946/extraction-validation-engine/internal/schema"
)

func fptr(v float64) *float64 { return &v }

func testPayload(t *testing.T) *geometry.Payload {
	t.Helper()
	rec := &schema.ColumnExtraction{
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
			ClearCoverMM:     fptr(40),
		},
		Longitudinal: []*schema.LongitudinalGroup{
			{
				BarDiameterMM: fptr(15.875),
				BarCount:      14,
				ReferenceCode: "14Ø5/8\"",
				BarXColumns:   3,
				BarYMatrix:    []int{6, 2, 6},
			},
		},
		Transverse: []*schema.TransverseGroup{
			{
				StirrupID:     "E1",
				StirrupType:   schema.MainStirrup,
				BarDiameterMM: fptr(8),
				StirrupShape:  schema.ShapeRectangular,
				SpacingMM:     []schema.SpacingItem{{Quantity: "rest", Spacing: 200}},
			},
		},
	}
	payload, err := geometry.NewEngine(3000).Generate(rec)
	if err != nil {
		t.Fatal(err)
	}
	return payload
}

func TestDrawASCIISection(t *testing.T) {
	out := DrawASCIISection(testPayload(t))

	if !strings.Contains(out, "COLUMN SECTION  420 x 700 mm") {
		t.Errorf("missing dimension header:\n%s", out)
	}
	if got := strings.Count(out, "o"); got < 14 {
		t.Errorf("bar marks = %d, want at least 14:\n%s", got, out)
	}
	if !strings.Contains(out, "longitudinal bars: 14") {
		t.Errorf("missing bar count summary:\n%s", out)
	}
	if !strings.Contains(out, "·") {
		t.Errorf("missing tie perimeter:\n%s", out)
	}
}

func TestDrawASCIISection_NoPlanDimensions(t *testing.T) {
	out := DrawASCIISection(&geometry.Payload{})
	if !strings.Contains(out, "no plan dimensions") {
		t.Errorf("output = %q", out)
	}
}
