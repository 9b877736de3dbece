package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/nec_apg_go/internal/config"
	"github.com/user/nec_apg_go/internal/parser"
)

func bandIndex(t *testing.T, name string) int {
	t.Helper()
	for i, b := range Bands {
		if b.Name == name {
			return i
		}
	}
	t.Fatalf("no band %s", name)
	return -1
}

func TestSummarize(t *testing.T) {
	s := parser.Series{Label: "dipole.out", Samples: []parser.Sample{
		{FrequencyMHz: 7.0, Efficiency: 0.25},
		{FrequencyMHz: 7.1, Efficiency: 0.75},
		{FrequencyMHz: 7.5, Efficiency: 0.5},
		{FrequencyMHz: 14.2, Efficiency: 0.75},
	}}

	sum := Summarize(s)
	assert.Equal(t, "dipole.out", sum.Label)
	assert.Equal(t, 4, sum.NumSamples)
	assert.Equal(t, 7.0, sum.MinFrequency)
	assert.Equal(t, 14.2, sum.MaxFrequency)
	assert.Equal(t, 0.75, sum.PeakEfficiency)
	assert.Equal(t, 7.1, sum.PeakFrequency, "first maximum wins")
	assert.Equal(t, 0.5625, sum.MeanEfficiency)

	require.Len(t, sum.BandMeans, len(Bands))
	assert.Equal(t, 0.5, sum.BandMeans[bandIndex(t, "40m")])
	assert.Equal(t, 0.75, sum.BandMeans[bandIndex(t, "20m")])
	assert.True(t, math.IsNaN(sum.BandMeans[bandIndex(t, "80m")]))
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(parser.Series{Label: "x"})
	assert.Equal(t, 0, sum.NumSamples)
	assert.True(t, math.IsNaN(sum.MeanEfficiency))
	for _, v := range sum.BandMeans {
		assert.True(t, math.IsNaN(v))
	}
}

func TestAnalyzeSeries_Ranking(t *testing.T) {
	series := []parser.Series{
		{Label: "a", Samples: []parser.Sample{{FrequencyMHz: 3.6, Efficiency: 0.2}}},
		{Label: "b", Samples: []parser.Sample{{FrequencyMHz: 3.6, Efficiency: 0.4}}},
		{Label: "c", Samples: []parser.Sample{{FrequencyMHz: 3.6, Efficiency: 0.2}}},
	}
	res, err := AnalyzeSeries(series)
	require.NoError(t, err)
	require.Len(t, res.Summaries, 3)
	assert.Equal(t, []RankedSeriesInfo{{"b", 0.4}, {"a", 0.2}, {"c", 0.2}}, res.RankedByMean)
	assert.Empty(t, res.AnalysisErrors)

	_, err = AnalyzeSeries(nil)
	assert.Error(t, err)
}

func TestBands_Ordered(t *testing.T) {
	for i, b := range Bands {
		assert.Less(t, b.LowMHz, b.HighMHz, b.Name)
		if i > 0 {
			assert.Less(t, Bands[i-1].HighMHz, b.LowMHz)
		}
	}
	assert.True(t, Bands[0].Contains(2.0))
	assert.False(t, Bands[0].Contains(2.01))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path      string
		inputType string
		want      Kind
	}{
		{"dipole.nec", config.InputAuto, KindDeck},
		{"dir/Dipole.NEC2", config.InputAuto, KindDeck},
		{"yagi.nec2c", config.InputAuto, KindDeck},
		{"dipole.out", config.InputAuto, KindResult},
		{"DIPOLE.OUT", config.InputAuto, KindResult},
		{"whatever.txt", config.InputNEC2, KindDeck},
		{"whatever.nec", config.InputOut, KindResult},
	}
	for _, tt := range tests {
		got, err := Classify(tt.path, tt.inputType)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	var cfgErr *config.ConfigurationError
	_, err := Classify("notes.txt", config.InputAuto)
	assert.True(t, errors.As(err, &cfgErr))
	_, err = Classify(".nec", config.InputAuto)
	assert.True(t, errors.As(err, &cfgErr), "a bare extension is not a deck name")
	_, err = Classify("a.nec", "csv")
	assert.True(t, errors.As(err, &cfgErr))

	assert.Equal(t, "nec2 input file", KindDeck.String())
	assert.Equal(t, "output file", KindResult.String())
}

func TestCollector_KeepsInputOrder(t *testing.T) {
	var c Collector
	for _, label := range []string{"z.out", "a.out", "m.out"} {
		require.NoError(t, c.Add(parser.Series{Label: label, Samples: []parser.Sample{{FrequencyMHz: 1, Efficiency: 0.1}}}))
	}
	require.Equal(t, 3, c.Len())
	var labels []string
	for _, s := range c.Series() {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"z.out", "a.out", "m.out"}, labels)
}

func TestCollector_RejectsEmptySeries(t *testing.T) {
	var c Collector
	err := c.Add(parser.Series{Label: "empty.out"})
	var pErr *parser.ParseError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "empty.out", pErr.Source)
	assert.Equal(t, 0, c.Len())
}
