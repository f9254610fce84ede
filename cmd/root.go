package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/a01110946/extraction-validation-engine/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "evengine",
	Short: "Reinforced Concrete Column Extraction Validation Engine",
	Long: `evengine - Extraction Validation Engine

A tool for validating and visualizing reinforced concrete column
reinforcement extracted from structural drawings.

This tool helps structural engineers:
  - Heal incomplete extractions with ACI 318-19 mandatory defaults
  - Check that longitudinal bars physically fit the section
  - Generate explicit 3D coordinates for bars and stirrups
  - Preview the cross-section as ASCII or an image diagram
  - Serve the validation and geometry engines over HTTP

Cover, hook and bend defaults follow ACI 318-19 provisions.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   evengine v%-46s║\n", version.Version)
		fmt.Println("  ║   Extraction Validation Engine                            ║")
		fmt.Println("  ║   Reinforced Concrete Column Reinforcement                ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Validates column reinforcement extractions against ACI 318-19")
		fmt.Println("  and converts them into renderer-ready 3D geometry.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • ACI 318-19 cover, hook and bend defaults")
		fmt.Println("    • Bar-fit validation at code-minimum spacing")
		fmt.Println("    • Deterministic 3D bar and stirrup coordinates")
		fmt.Println("    • Section diagrams (ASCII, PNG, SVG, PDF)")
		fmt.Println("    • HTTP API with SQLite persistence")
		fmt.Println()
		fmt.Println("  Use 'evengine --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
