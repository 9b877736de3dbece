package analysis

import (
	"math"

	"github.com/user/nec_apg_go/internal/parser"
)

// SeriesSummary holds the statistics of one efficiency sweep.
type SeriesSummary struct {
	Label          string
	NumSamples     int
	MinFrequency   float64
	MaxFrequency   float64
	PeakEfficiency float64
	PeakFrequency  float64
	MeanEfficiency float64
	BandMeans      []float64 // indexed like Bands, NaN when no sample falls in the band
}

// RankedSeriesInfo is used for ranking series by mean efficiency.
type RankedSeriesInfo struct {
	Label string
	Value float64
}

// AnalysisResults holds all results from the analysis.
type AnalysisResults struct {
	Series         []parser.Series
	Summaries      []SeriesSummary
	RankedByMean   []RankedSeriesInfo // descending
	AnalysisErrors []string
}

func NewAnalysisResults() *AnalysisResults {
	return &AnalysisResults{
		Summaries:      make([]SeriesSummary, 0),
		RankedByMean:   make([]RankedSeriesInfo, 0),
		AnalysisErrors: make([]string, 0),
	}
}

func newSeriesSummary(label string) SeriesSummary {
	return SeriesSummary{
		Label:          label,
		MinFrequency:   math.NaN(),
		MaxFrequency:   math.NaN(),
		PeakEfficiency: math.NaN(),
		PeakFrequency:  math.NaN(),
		MeanEfficiency: math.NaN(),
		BandMeans:      make([]float64, len(Bands)),
	}
}
