package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/user/nec_apg_go/internal/analysis"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var plotColors = []color.Color{
	color.RGBA{R: 255, G: 0, B: 0, A: 255},   // Red
	color.RGBA{G: 160, B: 0, A: 255},         // Green
	color.RGBA{B: 255, A: 255},               // Blue
	color.RGBA{R: 255, G: 165, B: 0, A: 255}, // Orange
	color.RGBA{R: 128, G: 0, B: 128, A: 255}, // Purple
	color.RGBA{G: 128, B: 128, A: 255},       // Teal
}

var (
	bandColor     = color.RGBA{R: 0, G: 0, B: 0, A: 40}
	warcBandColor = color.RGBA{R: 255, G: 0, B: 0, A: 60}
)

// CreateEfficiencyPlot renders every series as APG/2 against MHz, with the
// amateur bands shaded like the gnuplot script does. It returns PNG bytes.
func CreateEfficiencyPlot(results *analysis.AnalysisResults) ([]byte, error) {
	if results == nil || len(results.Series) == 0 {
		return nil, fmt.Errorf("no series to plot")
	}

	p := plot.New()
	p.Title.Text = "AVERAGE POWER GAIN divided by 2 (APG/2) AKA RADIATION EFFICIENCY"
	p.X.Label.Text = "MHz"
	p.Y.Label.Text = "Radiation Efficiency APG/2"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Y.Tick.Marker = plot.ConstantTicks(generateTicks(0, 1, 0.1))

	minF, maxF := math.Inf(1), math.Inf(-1)
	for _, sum := range results.Summaries {
		if sum.NumSamples == 0 {
			continue
		}
		minF = math.Min(minF, sum.MinFrequency)
		maxF = math.Max(maxF, sum.MaxFrequency)
	}
	if math.IsInf(minF, 0) {
		return nil, fmt.Errorf("no samples to plot")
	}
	if minF == maxF {
		minF, maxF = minF-0.5, maxF+0.5
	}
	p.X.Min = minF
	p.X.Max = maxF
	p.X.Tick.Marker = plot.ConstantTicks(generateTicks(minF, maxF, tickStep(maxF-minF)))

	p.Add(plotter.NewGrid())

	for _, b := range analysis.Bands {
		if b.HighMHz < minF || b.LowMHz > maxF {
			continue
		}
		rect, err := plotter.NewPolygon(plotter.XYs{
			{X: math.Max(b.LowMHz, minF), Y: 0}, {X: math.Min(b.HighMHz, maxF), Y: 0},
			{X: math.Min(b.HighMHz, maxF), Y: 1}, {X: math.Max(b.LowMHz, minF), Y: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to shade band %s: %w", b.Name, err)
		}
		rect.Color = bandColor
		if b.WARC {
			rect.Color = warcBandColor
		}
		rect.LineStyle.Width = 0
		p.Add(rect)
	}

	for i, s := range results.Series {
		if len(s.Samples) == 0 {
			continue
		}
		line, err := plotter.NewLine(s)
		if err != nil {
			return nil, fmt.Errorf("failed to create line for %s: %w", s.Label, err)
		}
		line.Color = plotColors[i%len(plotColors)]
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(s.Label, line)
	}

	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-10)

	writer, err := p.WriterTo(vg.Points(800), vg.Points(400), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// tickStep picks a major tick spacing for a frequency span in MHz.
func tickStep(span float64) float64 {
	switch {
	case span <= 40:
		return 1
	case span <= 400:
		return 10
	default:
		return math.Pow(10, math.Floor(math.Log10(span))-1)
	}
}

// generateTicks creates labelled major ticks at multiples of step in [min, max].
func generateTicks(min, max, step float64) []plot.Tick {
	var ticks []plot.Tick
	if step <= 0 {
		return ticks
	}
	for v := math.Ceil(min/step) * step; v <= max+step*1e-9; v += step {
		// snap to the step grid so labels do not drift
		v = math.Round(v/step) * step
		ticks = append(ticks, plot.Tick{Value: v, Label: trimFloat(v)})
	}
	if len(ticks) == 0 {
		ticks = append(ticks, plot.Tick{Value: min, Label: trimFloat(min)}, plot.Tick{Value: max, Label: trimFloat(max)})
	}
	return ticks
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*1e6)/1e6)
}

// WriteImage stores rendered PNG bytes at path in one step.
func WriteImage(path string, png []byte, force bool) error {
	if len(png) == 0 {
		return fmt.Errorf("no image data for %s", path)
	}
	return writeFileAtomic(path, png, force)
}
