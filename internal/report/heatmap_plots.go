package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/user/nec_apg_go/internal/analysis"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// bandGrid exposes band mean efficiency as a plotter.GridXYZ.
// Columns are bands, rows are series.
type bandGrid struct {
	values [][]float64 // [row][col]
}

func (g bandGrid) Dims() (c, r int) {
	if len(g.values) == 0 {
		return 0, 0
	}
	return len(g.values[0]), len(g.values)
}

func (g bandGrid) Z(c, r int) float64 { return g.values[r][c] }
func (g bandGrid) X(c int) float64    { return float64(c) }
func (g bandGrid) Y(r int) float64    { return float64(r) }

// CreateBandHeatmap renders the mean efficiency of each series in each
// shaded band. Bands the sweep never visits are drawn gray.
func CreateBandHeatmap(results *analysis.AnalysisResults) ([]byte, error) {
	if results == nil || len(results.Summaries) == 0 {
		return nil, fmt.Errorf("no analysis results to plot heatmap")
	}

	numRows := len(results.Summaries)
	numCols := len(analysis.Bands)
	grid := bandGrid{values: make([][]float64, numRows)}
	anyValid := false
	for r, sum := range results.Summaries {
		grid.values[r] = make([]float64, numCols)
		for c := 0; c < numCols; c++ {
			val := math.NaN()
			if c < len(sum.BandMeans) {
				val = sum.BandMeans[c]
			}
			grid.values[r][c] = val
			if !math.IsNaN(val) {
				anyValid = true
			}
		}
	}
	if !anyValid {
		return nil, fmt.Errorf("no series has samples inside a shaded band")
	}

	p := plot.New()
	p.Title.Text = "Mean Radiation Efficiency per Band"
	p.X.Label.Text = "Band"
	p.Y.Label.Text = "Input"

	xTicks := make([]plot.Tick, numCols)
	for i, b := range analysis.Bands {
		xTicks[i] = plot.Tick{Value: float64(i), Label: b.Name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.X.Min = -0.5
	p.X.Max = float64(numCols) - 0.5

	yTicks := make([]plot.Tick, numRows)
	for i, sum := range results.Summaries {
		yTicks[i] = plot.Tick{Value: float64(i), Label: sum.Label}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.Y.Min = -0.5
	p.Y.Max = float64(numRows) - 0.5

	// Red (poor) -> Yellow -> Green (efficient)
	customColors := []color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
		color.RGBA{R: 255, G: 165, B: 0, A: 255},
		color.RGBA{R: 255, G: 255, B: 0, A: 255},
		color.RGBA{R: 0, G: 255, B: 0, A: 255},
		color.RGBA{R: 0, G: 100, B: 0, A: 255},
	}
	hm := plotter.NewHeatMap(grid, customPalette(customColors))
	hm.Min = 0
	hm.Max = 1
	hm.NaN = color.Gray{Y: 200}
	p.Add(hm)

	height := vg.Points(120 + 40*float64(numRows))
	writer, err := p.WriterTo(vg.Points(800), height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create heatmap writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write heatmap to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// customPalette is a fixed list of colors; it implements palette.Palette.
type customPalette []color.Color

func (p customPalette) Colors() []color.Color { return p }

var _ palette.Palette = customPalette(nil)
