package aci

import (
	"fmt"

	"github.com/a01110946/extraction-validation-engine/internal/schema"
)

// Heal auto-completes an extraction against ACI 318 mandatory minimums
// and returns the healed record with an ordered list of corrections.
//
// Healing is best-effort and additive: steps whose preconditions are
// unmet are skipped, and a failed fit check produces a warning note,
// never an error. The input record is deep-copied on entry and is
// never mutated.
//
// The bar-fit check deliberately covers only the first longitudinal
// group (the primary cage), matching the published note output.
func Heal(rec *schema.ColumnExtraction, exposure ExposureCondition) (*schema.ColumnExtraction, []string) {
	if !exposure.IsValid() {
		exposure = InteriorBeamsColumns
	}

	corrections := []string{}
	healed := rec.Clone()

	// 1. Inject default cover if missing.
	if healed.ConcreteSpecs != nil && healed.ConcreteSpecs.ClearCoverMM == nil {
		if len(healed.Longitudinal) > 0 &&
			healed.Longitudinal[0] != nil &&
			healed.Longitudinal[0].BarDiameterMM != nil {
			barDia := *healed.Longitudinal[0].BarDiameterMM
			cover := MinimumCover(barDia, exposure)
			healed.ConcreteSpecs.ClearCoverMM = &cover
			corrections = append(corrections, fmt.Sprintf(
				"Injected clear_cover_mm=%.1fmm per ACI 318 %s", cover, exposure))
		}
	}

	// 2. Attach hook and bend defaults to each group with a known
	// diameter.
	for idx, group := range healed.Longitudinal {
		if group == nil || group.BarDiameterMM == nil {
			continue
		}
		barDia := *group.BarDiameterMM
		hookExt := HookExtension(barDia, Hook90)
		bendDia := BendDiameter(barDia)
		group.CodeDefaults = &schema.CodeDefaults{
			HookExtensionMM: hookExt,
			BendDiameterMM:  bendDia,
		}
		corrections = append(corrections, fmt.Sprintf(
			"Bar %d: Calculated ACI defaults (hook=%.1fmm, bend_dia=%.1fmm)",
			idx, hookExt, bendDia))
	}

	// 3. Validate that the primary cage physically fits the section.
	if healed.Geometry != nil && healed.ConcreteSpecs != nil && len(healed.Longitudinal) > 0 {
		geo := healed.Geometry
		first := healed.Longitudinal[0]
		cover := healed.ConcreteSpecs.ClearCoverMM

		if geo.WidthMM != nil && geo.DepthMM != nil && cover != nil &&
			first != nil && first.BarDiameterMM != nil {
			ok, msg := ValidateBarFit(
				*geo.WidthMM, *geo.DepthMM, *first.BarDiameterMM,
				first.BarXColumns, first.BarYMatrix, *cover)
			if !ok {
				corrections = append(corrections, fmt.Sprintf("⚠️ VALIDATION ERROR: %s", msg))
			} else {
				corrections = append(corrections, "✓ Bar spacing validation passed")
			}
		}
	}

	// 4. Surface stirrup shapes the geometry engine will not render,
	// so the no-op is visible to the caller.
	for idx, group := range healed.Transverse {
		if group == nil || group.StirrupShape == schema.ShapeRectangular {
			continue
		}
		corrections = append(corrections, fmt.Sprintf(
			"Stirrup %d: shape %q is accepted but not rendered in 3D geometry",
			idx, group.StirrupShape))
	}

	return healed, corrections
}
