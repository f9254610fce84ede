package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/a01110946/extraction-validation-engine/internal/geometry"
)

// ExportSectionDiagram exports a plan view of the column cross-section
// to an image file. The format follows the file extension (.png, .svg,
// .pdf); anything else falls back to PNG.
func ExportSectionDiagram(p *geometry.Payload, filename string) error {
	plt := plot.New()
	plt.Title.Text = "Column Section"
	plt.X.Label.Text = "Width (mm)"
	plt.Y.Label.Text = "Depth (mm)"

	width := p.Section.WidthMM
	depth := p.Section.DepthMM

	// Concrete outline.
	outline := plotter.XYs{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: width, Y: depth},
		{X: 0, Y: depth},
		{X: 0, Y: 0},
	}
	outlineLine, err := plotter.NewLine(outline)
	if err != nil {
		return err
	}
	outlineLine.LineStyle.Width = vg.Points(2)
	outlineLine.LineStyle.Color = color.Black
	plt.Add(outlineLine)

	// Ties at the base of the column. Stirrup paths are centered at
	// the origin; shift them into section coordinates.
	drawn := map[string]bool{}
	for _, stirrup := range p.Stirrups {
		if stirrup.ZPosition != 0 {
			continue
		}
		key := fmt.Sprintf("%.1fx%.1f", stirrup.Path[1].X, stirrup.Path[2].Y)
		if drawn[key] {
			continue
		}
		drawn[key] = true

		path := make(plotter.XYs, len(stirrup.Path))
		for i, pt := range stirrup.Path {
			path[i] = plotter.XY{X: pt.X + width/2, Y: pt.Y + depth/2}
		}
		tieLine, err := plotter.NewLine(path)
		if err != nil {
			return err
		}
		tieLine.LineStyle.Width = vg.Points(1.5)
		tieLine.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
		tieLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		plt.Add(tieLine)
	}

	// Longitudinal bars.
	if len(p.LongitudinalBars) > 0 {
		barPts := make(plotter.XYs, len(p.LongitudinalBars))
		for i, bar := range p.LongitudinalBars {
			barPts[i] = plotter.XY{X: bar.Start.X, Y: bar.Start.Y}
		}
		bars, err := plotter.NewScatter(barPts)
		if err != nil {
			return err
		}
		bars.GlyphStyle.Color = color.RGBA{R: 139, G: 69, B: 19, A: 255}
		bars.GlyphStyle.Radius = vg.Points(5)
		bars.GlyphStyle.Shape = draw.CircleGlyph{}
		plt.Add(bars)
	}

	// Annotations.
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: []plotter.XY{
			{X: width / 2, Y: -depth * 0.06},
			{X: width * 1.02, Y: depth / 2},
		},
		Labels: []string{
			fmt.Sprintf("b=%.0fmm", width),
			fmt.Sprintf("h=%.0fmm", depth),
		},
	})
	if err != nil {
		return err
	}
	plt.Add(labels)

	imgWidth := 6 * vg.Inch
	imgHeight := vg.Length(float64(imgWidth) * depth / width)
	if imgHeight > 10*vg.Inch {
		imgHeight = 10 * vg.Inch
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return plt.Save(imgWidth, imgHeight, filename)
	default:
		return plt.Save(imgWidth, imgHeight, filename+".png")
	}
}
