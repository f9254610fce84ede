package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/a01110946/extraction-validation-engine/internal/aci"
)

var (
	validateInput    string
	validateExposure string
	validateOutput   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Heal an extraction against ACI 318-19 mandatory minimums",
	Long: `Validate and auto-complete a column extraction record.

Missing clear cover is injected from ACI 318-19 Table 20.6.1.3.1 for
the chosen exposure condition, hook extensions and bend diameters are
attached to every bar group with a known diameter, and the primary
cage is checked for physical fit at code-minimum spacing.

Exposure conditions:
  cast_against_earth, weather_exposed, interior_slabs,
  interior_beams_columns (default)

Examples:
  # Heal a record and print the corrections
  evengine validate --input column.json

  # Weather-exposed member, write the healed record to a file
  evengine validate -i column.json -e weather_exposed -o healed.json

  # Read from stdin
  cat column.json | evengine validate -i -`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Extraction JSON file, or '-' for stdin [required]")
	validateCmd.Flags().StringVarP(&validateExposure, "exposure", "e", string(aci.InteriorBeamsColumns), "ACI exposure condition")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "Write healed record JSON to this file")

	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	rec, err := loadRecord(validateInput)
	if err != nil {
		return err
	}

	exposure, err := aci.ParseExposure(validateExposure)
	if err != nil {
		return err
	}

	healed, corrections := aci.Heal(rec, exposure)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     EXTRACTION VALIDATION - ACI 318-19")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("ELEMENT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Element ID:\t%s\n", healed.ElementIdentification.ElementID)
	fmt.Fprintf(w, "  Type:\t%s\n", healed.ElementIdentification.TypeOfElement)
	fmt.Fprintf(w, "  Section:\t%s\n", healed.Geometry.CrossSectionType)
	fmt.Fprintf(w, "  Exposure:\t%s\n", exposure)
	w.Flush()
	fmt.Println()

	fmt.Println("CORRECTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	if len(corrections) == 0 {
		fmt.Println("  (none)")
	}
	for _, c := range corrections {
		fmt.Printf("  %s\n", c)
	}
	fmt.Println()

	if validateOutput != "" {
		data, err := json.MarshalIndent(healed, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(validateOutput, data, 0644); err != nil {
			return fmt.Errorf("write healed record: %w", err)
		}
		fmt.Printf("Healed record written to %s\n", validateOutput)
		fmt.Println()
	}

	return nil
}
