package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/user/nec_apg_go/internal/parser"
)

// Helper to calculate mean
func calculateMean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// Summarize computes the statistics of a single series.
func Summarize(s parser.Series) SeriesSummary {
	res := newSeriesSummary(s.Label)
	res.NumSamples = len(s.Samples)
	if res.NumSamples == 0 {
		for i := range res.BandMeans {
			res.BandMeans[i] = math.NaN()
		}
		return res
	}

	first := s.Samples[0]
	res.MinFrequency, res.MaxFrequency = first.FrequencyMHz, first.FrequencyMHz
	res.PeakEfficiency, res.PeakFrequency = first.Efficiency, first.FrequencyMHz

	all := make([]float64, 0, len(s.Samples))
	inBand := make([][]float64, len(Bands))
	for _, sm := range s.Samples {
		all = append(all, sm.Efficiency)
		if sm.FrequencyMHz < res.MinFrequency {
			res.MinFrequency = sm.FrequencyMHz
		}
		if sm.FrequencyMHz > res.MaxFrequency {
			res.MaxFrequency = sm.FrequencyMHz
		}
		// first maximum wins
		if sm.Efficiency > res.PeakEfficiency {
			res.PeakEfficiency, res.PeakFrequency = sm.Efficiency, sm.FrequencyMHz
		}
		for i, b := range Bands {
			if b.Contains(sm.FrequencyMHz) {
				inBand[i] = append(inBand[i], sm.Efficiency)
			}
		}
	}
	res.MeanEfficiency = calculateMean(all)
	for i := range Bands {
		res.BandMeans[i] = calculateMean(inBand[i])
	}
	return res
}

// AnalyzeSeries summarizes every series and ranks them by mean efficiency.
func AnalyzeSeries(series []parser.Series) (*AnalysisResults, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no series to analyze")
	}

	results := NewAnalysisResults()
	results.Series = series

	for _, s := range series {
		sum := Summarize(s)
		if sum.NumSamples == 0 {
			results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Series '%s' has no samples.", s.Label))
		}
		results.Summaries = append(results.Summaries, sum)
		if !math.IsNaN(sum.MeanEfficiency) {
			results.RankedByMean = append(results.RankedByMean, RankedSeriesInfo{Label: s.Label, Value: sum.MeanEfficiency})
		}
	}

	sort.SliceStable(results.RankedByMean, func(i, j int) bool {
		return results.RankedByMean[i].Value > results.RankedByMean[j].Value // Descending
	})
	return results, nil
}
