package report

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/nec_apg_go/internal/analysis"
	"github.com/user/nec_apg_go/internal/parser"
)

func twoSeries() []parser.Series {
	return []parser.Series{
		{Label: "endfed.nec", Samples: []parser.Sample{{FrequencyMHz: 7.1, Efficiency: 0.41}, {FrequencyMHz: 7.2, Efficiency: 0.5}}},
		{Label: "centerfed.out", Samples: []parser.Sample{{FrequencyMHz: 7.1, Efficiency: 0.45}}},
	}
}

func TestWriteGnuplot_Exact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGnuplot(&buf, twoSeries()))

	want := GnuplotPreamble +
		"$data0 << EOD\n" +
		"7.1 0.41\n" +
		"7.2 0.5\n" +
		"EOD\n" +
		"$data1 << EOD\n" +
		"7.1 0.45\n" +
		"EOD\n" +
		"plot '$data0' using 1:2 with lines linewidth 2 title 'endfed.nec', \\\n" +
		"'$data1' using 1:2 with lines linewidth 2 title 'centerfed.out'\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteGnuplot_SingleSeries(t *testing.T) {
	var buf bytes.Buffer
	s := []parser.Series{{Label: "dipole.out", Samples: []parser.Sample{{FrequencyMHz: 3.0, Efficiency: 0.0}}}}
	require.NoError(t, WriteGnuplot(&buf, s))
	assert.True(t, strings.HasSuffix(buf.String(),
		"$data0 << EOD\n3.0 0.0\nEOD\nplot '$data0' using 1:2 with lines linewidth 2 title 'dipole.out'\n"))
}

func TestWriteGnuplot_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, WriteGnuplot(&a, twoSeries()))
	require.NoError(t, WriteGnuplot(&b, twoSeries()))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestWriteGnuplot_QuotesTitle(t *testing.T) {
	var buf bytes.Buffer
	s := []parser.Series{{Label: "bob's loop.out", Samples: []parser.Sample{{FrequencyMHz: 1, Efficiency: 1}}}}
	require.NoError(t, WriteGnuplot(&buf, s))
	assert.Contains(t, buf.String(), "title 'bob''s loop.out'\n")
}

func TestWriteGnuplot_NoSeries(t *testing.T) {
	assert.Error(t, WriteGnuplot(&bytes.Buffer{}, nil))
}

func TestPreamble_MatchesBands(t *testing.T) {
	for _, b := range analysis.Bands {
		rect := "set obj rect from " + formatFloat(b.LowMHz) + ", graph 0 to " + formatFloat(b.HighMHz) + ", graph 1\n"
		assert.Contains(t, GnuplotPreamble, rect, b.Name)
	}
	assert.Contains(t, GnuplotPreamble, "set yrange [0:1]\n")
	assert.Contains(t, GnuplotPreamble, "set ytics 0.05\n")
	assert.Contains(t, GnuplotPreamble, "set xtics 1.0\n")
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{7.1, "7.1"},
		{0.41, "0.41"},
		{30, "30.0"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{-1.5, "-1.5"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1.5e-7, "1.5e-07"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{0.70710678, "0.70710678"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in), "%v", tt.in)
	}

	// constant expressions are exact, the sum has to happen at run time
	a, b := 0.1, 0.2
	assert.Equal(t, "0.30000000000000004", formatFloat(a+b))
}

func TestGenerateGnuplotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apg2.gpi")
	require.NoError(t, GenerateGnuplotFile(path, twoSeries(), false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), GnuplotPreamble))

	err = GenerateGnuplotFile(path, twoSeries()[:1], false)
	var exists *DestinationExistsError
	require.True(t, errors.As(err, &exists), "got %v", err)
	unchanged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, unchanged)

	require.NoError(t, GenerateGnuplotFile(path, twoSeries()[:1], true))
	replaced, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(replaced), "$data1")
}

func TestGenerateGnuplotFile_NothingWrittenOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apg2.gpi")
	require.Error(t, GenerateGnuplotFile(path, nil, true))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCheckDestination(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, CheckDestination(filepath.Join(dir, "new.gpi"), false))

	err := CheckDestination(dir, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a file")

	err = CheckDestination(dir, false)
	var exists *DestinationExistsError
	assert.True(t, errors.As(err, &exists))
}
