package diagram

import (
	"fmt"
	"strings"

	"github.com/a01110946/extraction-validation-engine/internal/geometry"
)

// DrawASCIISection renders a plan view of the column cross-section:
// the concrete outline, the outer tie (inset by the clear cover) and
// every longitudinal bar position from the geometry payload.
func DrawASCIISection(p *geometry.Payload) string {
	var sb strings.Builder

	width := p.Section.WidthMM
	depth := p.Section.DepthMM
	cover := p.Section.CoverMM
	if width <= 0 || depth <= 0 {
		return "(section has no plan dimensions)\n"
	}

	// Character cells are roughly twice as tall as wide; stretch X to
	// keep the section visually proportional.
	widthChars := 48
	heightChars := int(float64(widthChars) / 2 * depth / width)
	if heightChars < 8 {
		heightChars = 8
	}
	if heightChars > 40 {
		heightChars = 40
	}

	grid := make([][]rune, heightChars)
	for r := range grid {
		grid[r] = make([]rune, widthChars)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}

	// Section outline.
	for c := 0; c < widthChars; c++ {
		grid[0][c] = '─'
		grid[heightChars-1][c] = '─'
	}
	for r := 0; r < heightChars; r++ {
		grid[r][0] = '│'
		grid[r][widthChars-1] = '│'
	}
	grid[0][0], grid[0][widthChars-1] = '┌', '┐'
	grid[heightChars-1][0], grid[heightChars-1][widthChars-1] = '└', '┘'

	col := func(x float64) int {
		c := int(x / width * float64(widthChars-1))
		if c < 0 {
			c = 0
		}
		if c > widthChars-1 {
			c = widthChars - 1
		}
		return c
	}
	row := func(y float64) int {
		// Drawing rows grow downward; section Y grows upward.
		r := int((1 - y/depth) * float64(heightChars-1))
		if r < 0 {
			r = 0
		}
		if r > heightChars-1 {
			r = heightChars - 1
		}
		return r
	}

	// Outer tie at cover distance, drawn dashed.
	if len(p.Stirrups) > 0 {
		top, bottom := row(depth-cover), row(cover)
		left, right := col(cover), col(width-cover)
		for c := left; c <= right; c++ {
			if grid[top][c] == ' ' {
				grid[top][c] = '·'
			}
			if grid[bottom][c] == ' ' {
				grid[bottom][c] = '·'
			}
		}
		for r := top; r <= bottom; r++ {
			if grid[r][left] == ' ' {
				grid[r][left] = '·'
			}
			if grid[r][right] == ' ' {
				grid[r][right] = '·'
			}
		}
	}

	// Longitudinal bars.
	for _, bar := range p.LongitudinalBars {
		grid[row(bar.Start.Y)][col(bar.Start.X)] = 'o'
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  COLUMN SECTION  %.0f x %.0f mm\n\n", width, depth))
	for _, line := range grid {
		sb.WriteString("    ")
		sb.WriteString(string(line))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("    o  longitudinal bars: %d\n", len(p.LongitudinalBars)))
	sb.WriteString(fmt.Sprintf("    ·  tie perimeter (cover %.0f mm)\n", cover))
	sb.WriteString(fmt.Sprintf("    stirrup instances over %.0f mm height: %d\n",
		p.Section.HeightMM, len(p.Stirrups)))

	return sb.String()
}
