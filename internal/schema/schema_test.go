package schema

import (
	"encoding/json"
	"errors"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func validGroup() *LongitudinalGroup {
	return &LongitudinalGroup{
		BarDiameterMM: fptr(15.875),
		BarCount:      14,
		ReferenceCode: `14Ø5/8"`,
		BarXColumns:   3,
		BarYMatrix:    []int{6, 2, 6},
	}
}

func validRecord() *ColumnExtraction {
	return &ColumnExtraction{
		ElementIdentification: ElementIdentification{
			TypeOfElement: "Column",
			ElementID:     "C-02",
		},
		Geometry: &Geometry{
			CrossSectionType: SectionRectangular,
			WidthMM:          fptr(420),
			DepthMM:          fptr(700),
		},
		ConcreteSpecs: &ConcreteSpecs{
			ConcreteStrength: "f'c=280kg/cm2",
			ClearCoverMM:     fptr(40),
		},
		Longitudinal: []*LongitudinalGroup{validGroup()},
		Transverse: []*TransverseGroup{
			{
				StirrupType:   MainStirrup,
				BarDiameterMM: fptr(8),
				StirrupShape:  ShapeRectangular,
				SpacingMM: []SpacingItem{
					{Quantity: "1", Spacing: 50},
					{Quantity: "7", Spacing: 100},
					{Quantity: "rest", Spacing: 250},
				},
			},
		},
	}
}

func TestLongitudinalGroup_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LongitudinalGroup)
		wantErr bool
	}{
		{"valid", func(g *LongitudinalGroup) {}, false},
		{"matrix length mismatch", func(g *LongitudinalGroup) {
			g.BarYMatrix = []int{6, 8}
		}, true},
		{"matrix sum mismatch", func(g *LongitudinalGroup) {
			g.BarYMatrix = []int{6, 2, 5}
		}, true},
		{"negative matrix entry", func(g *LongitudinalGroup) {
			g.BarYMatrix = []int{15, -1, 0}
		}, true},
		{"zero bar count", func(g *LongitudinalGroup) {
			g.BarCount = 0
		}, true},
		{"missing reference code", func(g *LongitudinalGroup) {
			g.ReferenceCode = ""
		}, true},
		{"zero columns", func(g *LongitudinalGroup) {
			g.BarXColumns = 0
		}, true},
		{"zero entry is allowed", func(g *LongitudinalGroup) {
			g.BarYMatrix = []int{7, 0, 7}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGroup()
			tt.mutate(g)
			err := g.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("Validate() error type = %T, want *ValidationError", err)
				}
			}
		})
	}
}

func TestGeometry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		geo     Geometry
		wantErr bool
	}{
		{"rectangular with dims", Geometry{CrossSectionType: SectionRectangular, WidthMM: fptr(420), DepthMM: fptr(700)}, false},
		{"rectangular missing depth", Geometry{CrossSectionType: SectionRectangular, WidthMM: fptr(420)}, true},
		{"circular with diameter", Geometry{CrossSectionType: SectionCircular, DiameterMM: fptr(500)}, false},
		{"circular missing diameter", Geometry{CrossSectionType: SectionCircular}, true},
		{"L-shaped missing dims", Geometry{CrossSectionType: SectionLShaped}, true},
		{"T-shaped with dims", Geometry{CrossSectionType: SectionTShaped, WidthMM: fptr(600), DepthMM: fptr(600)}, false},
		{"unknown type", Geometry{CrossSectionType: "hexagonal", WidthMM: fptr(1), DepthMM: fptr(1)}, true},
		{"non-positive width", Geometry{CrossSectionType: SectionRectangular, WidthMM: fptr(0), DepthMM: fptr(700)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.geo.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSpacingItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    SpacingItem
		wantErr bool
	}{
		{"numeric", SpacingItem{Quantity: "7", Spacing: 100}, false},
		{"rest", SpacingItem{Quantity: "rest", Spacing: 250}, false},
		{"rest uppercase", SpacingItem{Quantity: "REST", Spacing: 250}, false},
		{"zero quantity", SpacingItem{Quantity: "0", Spacing: 100}, true},
		{"negative quantity", SpacingItem{Quantity: "-3", Spacing: 100}, true},
		{"garbage quantity", SpacingItem{Quantity: "many", Spacing: 100}, true},
		{"zero spacing", SpacingItem{Quantity: "1", Spacing: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.item.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestColumnExtraction_Validate(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		if err := validRecord().Validate(); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})

	t.Run("no longitudinal groups", func(t *testing.T) {
		rec := validRecord()
		rec.Longitudinal = nil
		if err := rec.Validate(); err == nil {
			t.Fatal("Validate() = nil, want error")
		}
	})

	t.Run("missing geometry", func(t *testing.T) {
		rec := validRecord()
		rec.Geometry = nil
		if err := rec.Validate(); err == nil {
			t.Fatal("Validate() = nil, want error")
		}
	})

	t.Run("empty transverse list is allowed", func(t *testing.T) {
		rec := validRecord()
		rec.Transverse = nil
		if err := rec.Validate(); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})

	t.Run("bad stirrup type", func(t *testing.T) {
		rec := validRecord()
		rec.Transverse[0].StirrupType = "hoop"
		if err := rec.Validate(); err == nil {
			t.Fatal("Validate() = nil, want error")
		}
	})
}

func TestParseJSON(t *testing.T) {
	rec := validRecord()
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if parsed.ElementIdentification.ElementID != "C-02" {
		t.Errorf("ElementID = %q, want C-02", parsed.ElementIdentification.ElementID)
	}
	if got := len(parsed.Longitudinal); got != 1 {
		t.Errorf("longitudinal groups = %d, want 1", got)
	}

	t.Run("malformed json", func(t *testing.T) {
		if _, err := ParseJSON([]byte(`{`)); err == nil {
			t.Fatal("ParseJSON() = nil, want error")
		}
	})

	t.Run("schema violation", func(t *testing.T) {
		bad := validRecord()
		bad.Longitudinal[0].BarYMatrix = []int{1, 1, 1}
		data, _ := json.Marshal(bad)
		if _, err := ParseJSON(data); err == nil {
			t.Fatal("ParseJSON() = nil, want error")
		}
	})
}

func TestColumnExtraction_Clone(t *testing.T) {
	rec := validRecord()
	clone := rec.Clone()

	// Mutate every nested level of the clone.
	*clone.Geometry.WidthMM = 999
	*clone.ConcreteSpecs.ClearCoverMM = 999
	clone.Longitudinal[0].BarYMatrix[0] = 999
	*clone.Longitudinal[0].BarDiameterMM = 999
	clone.Transverse[0].SpacingMM[0].Spacing = 999
	clone.Longitudinal[0].CodeDefaults = &CodeDefaults{HookExtensionMM: 1}

	if *rec.Geometry.WidthMM != 420 {
		t.Error("clone shares geometry with original")
	}
	if *rec.ConcreteSpecs.ClearCoverMM != 40 {
		t.Error("clone shares concrete specs with original")
	}
	if rec.Longitudinal[0].BarYMatrix[0] != 6 {
		t.Error("clone shares bar_y_matrix with original")
	}
	if *rec.Longitudinal[0].BarDiameterMM != 15.875 {
		t.Error("clone shares bar diameter with original")
	}
	if rec.Transverse[0].SpacingMM[0].Spacing != 50 {
		t.Error("clone shares spacing pattern with original")
	}
	if rec.Longitudinal[0].CodeDefaults != nil {
		t.Error("clone shares code defaults with original")
	}
}
