package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/a01110946/extraction-validation-engine/internal/diagram"
	"github.com/a01110946/extraction-validation-engine/internal/geometry"
)

var (
	geometryInput   string
	geometryHeight  float64
	geometryOutput  string
	geometryDiagram string
	geometryASCII   bool
)

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Generate 3D reinforcement coordinates from an extraction",
	Long: `Convert an extraction record into explicit 3D coordinates for
every longitudinal bar and stirrup instance.

Longitudinal bars become vertical segments placed by the prescriptive
column/matrix layout; rectangular stirrups are expanded along the
column height according to their spacing pattern.

Examples:
  # Print the geometry payload as JSON
  evengine geometry --input column.json

  # 4.2m storey height, write payload and a PNG section diagram
  evengine geometry -i column.json --height 4200 -o geometry.json --diagram section.png

  # ASCII preview of the cross-section
  evengine geometry -i column.json --ascii`,
	RunE: runGeometry,
}

func init() {
	rootCmd.AddCommand(geometryCmd)

	geometryCmd.Flags().StringVarP(&geometryInput, "input", "i", "", "Extraction JSON file, or '-' for stdin [required]")
	geometryCmd.Flags().Float64Var(&geometryHeight, "height", geometry.DefaultColumnHeightMM, "Column height (mm)")
	geometryCmd.Flags().StringVarP(&geometryOutput, "output", "o", "", "Write geometry payload JSON to this file")
	geometryCmd.Flags().StringVar(&geometryDiagram, "diagram", "", "Export a section diagram (.png, .svg or .pdf)")
	geometryCmd.Flags().BoolVar(&geometryASCII, "ascii", false, "Print an ASCII cross-section preview")

	geometryCmd.MarkFlagRequired("input")
}

func runGeometry(cmd *cobra.Command, args []string) error {
	rec, err := loadRecord(geometryInput)
	if err != nil {
		return err
	}

	engine := geometry.NewEngine(geometryHeight)
	payload, err := engine.Generate(rec)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     REINFORCEMENT GEOMETRY")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Section:\t%.0f x %.0f mm\n", payload.Section.WidthMM, payload.Section.DepthMM)
	fmt.Fprintf(w, "  Height:\t%.0f mm\n", payload.Section.HeightMM)
	fmt.Fprintf(w, "  Clear cover:\t%.1f mm\n", payload.Section.CoverMM)
	fmt.Fprintf(w, "  Longitudinal bars:\t%d\n", len(payload.LongitudinalBars))
	fmt.Fprintf(w, "  Stirrup instances:\t%d\n", len(payload.Stirrups))
	w.Flush()
	fmt.Println()

	if geometryASCII {
		fmt.Println(diagram.DrawASCIISection(payload))
	}

	if geometryDiagram != "" {
		if err := diagram.ExportSectionDiagram(payload, geometryDiagram); err != nil {
			return fmt.Errorf("export diagram: %w", err)
		}
		fmt.Printf("Section diagram written to %s\n", geometryDiagram)
		fmt.Println()
	}

	if geometryOutput != "" {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(geometryOutput, data, 0644); err != nil {
			return fmt.Errorf("write geometry payload: %w", err)
		}
		fmt.Printf("Geometry payload written to %s\n", geometryOutput)
		fmt.Println()
	} else if !geometryASCII && geometryDiagram == "" {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}

	return nil
}
