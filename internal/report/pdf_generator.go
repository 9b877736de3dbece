package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/nec_apg_go/internal/analysis"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// Image keys understood by BuildPDFReport.
const (
	ImageEfficiency = "efficiency"
	ImageBandHeat   = "band_heatmap"
)

// pdfStyler holds reusable styling and the flowing Y position.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// addTable draws a bordered table; widths are fractions of the content width.
func (s *pdfStyler) addTable(headers []string, widthsRel []float64, rows [][]string) {
	widths := make([]float64, len(widthsRel))
	for i, rel := range widthsRel {
		widths[i] = rel * pdfContentWidth
	}
	drawHeader := func() {
		s.applyStyle("tableHeader")
		x := pdfMargin
		for i, h := range headers {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, h, "1", 0, "C", true, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	drawHeader()
	for _, row := range rows {
		if s.currentY+s.lineHeight > s.pageHeight {
			s.newPage()
			drawHeader()
		}
		s.applyStyle("tableCell")
		x := pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))
	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.Image(imageName, pdfMargin, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height
	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

func formatCell(v float64, prec int) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// renderPDFReport lays out the report and returns the PDF bytes.
func renderPDFReport(results *analysis.AnalysisResults, plotImages map[string][]byte) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)
	styler.writeParagraph(fmt.Sprintf("NEC2 Radiation Efficiency Report (%d Inputs)", len(results.Summaries)), "h1", "C")
	styler.addSpacer(3)
	styler.writeParagraph("Radiation efficiency is the AVERAGE POWER GAIN reported by nec2c divided by 2.", "normal", "L")
	styler.addSpacer(5)

	styler.writeParagraph("Sweep Summary", "h2", "L")
	summaryRows := make([][]string, 0, len(results.Summaries))
	for _, sum := range results.Summaries {
		summaryRows = append(summaryRows, []string{
			sum.Label,
			strconv.Itoa(sum.NumSamples),
			fmt.Sprintf("%s - %s", formatCell(sum.MinFrequency, 3), formatCell(sum.MaxFrequency, 3)),
			formatCell(sum.PeakEfficiency, 3),
			formatCell(sum.PeakFrequency, 3),
			formatCell(sum.MeanEfficiency, 3),
		})
	}
	styler.addTable(
		[]string{"Input", "Samples", "Span (MHz)", "Peak APG/2", "Peak at (MHz)", "Mean APG/2"},
		[]float64{0.35, 0.1, 0.17, 0.12, 0.13, 0.13},
		summaryRows,
	)
	styler.addSpacer(5)

	styler.writeParagraph("Mean APG/2 per Band", "h2", "L")
	bandHeaders := []string{"Input"}
	bandWidths := []float64{0.3}
	for _, b := range analysis.Bands {
		bandHeaders = append(bandHeaders, b.Name)
		bandWidths = append(bandWidths, 0.7/float64(len(analysis.Bands)))
	}
	bandRows := make([][]string, 0, len(results.Summaries))
	for _, sum := range results.Summaries {
		row := []string{sum.Label}
		for _, v := range sum.BandMeans {
			row = append(row, formatCell(v, 3))
		}
		bandRows = append(bandRows, row)
	}
	styler.addTable(bandHeaders, bandWidths, bandRows)
	styler.addSpacer(5)

	styler.writeParagraph("Inputs Ranked by Mean APG/2", "h2", "L")
	if len(results.RankedByMean) > 0 {
		rankRows := make([][]string, 0, len(results.RankedByMean))
		for i, item := range results.RankedByMean {
			rankRows = append(rankRows, []string{strconv.Itoa(i + 1), item.Label, formatCell(item.Value, 4)})
		}
		styler.addTable([]string{"Rank", "Input", "Mean APG/2"}, []float64{0.1, 0.6, 0.3}, rankRows)
	} else {
		styler.writeParagraph("No data for ranking.", "normal", "L")
	}

	for _, pDef := range []struct {
		Key     string
		Title   string
		Caption string
		Aspect  float64
	}{
		{ImageEfficiency, "Radiation Efficiency", "APG/2 against frequency, amateur bands shaded", 0.5},
		{ImageBandHeat, "Band Heatmap", "Mean APG/2 of every input inside each shaded band", 0.4},
	} {
		imgBytes, ok := plotImages[pDef.Key]
		if !ok || len(imgBytes) == 0 {
			continue
		}
		styler.newPage()
		styler.writeParagraph(pDef.Title, "h2", "L")
		w := pdfContentWidth * 0.9
		styler.addImage(imgBytes, pDef.Key, w, w*pDef.Aspect, pDef.Caption)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildPDFReport writes the summary report to filepath in one step.
func BuildPDFReport(filepath string, results *analysis.AnalysisResults, plotImages map[string][]byte, force bool) error {
	if results == nil || len(results.Summaries) == 0 {
		return fmt.Errorf("no analysis results to report")
	}
	data, err := renderPDFReport(results, plotImages)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath, data, force)
}
