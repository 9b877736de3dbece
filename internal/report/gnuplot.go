package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/user/nec_apg_go/internal/parser"
)

// GnuplotPreamble configures the axes and shades the HF amateur bands. The
// rectangles match analysis.Bands; WARC bands are red.
const GnuplotPreamble = `set title 'AVERAGE POWER GAIN divided by 2 (APG/2) AKA RADIATION EFFICIENCY'
set xlabel 'MHz'
set ylabel 'Radiation Efficiency APG/2'
set grid
set yrange [0:1]
set ytics 0.05
set xtics 1.0
set style rect fc lt -1 fs solid 0.2 noborder
set obj rect from 1.81, graph 0 to 2.0, graph 1
set obj rect from 3.5, graph 0 to 3.8, graph 1
set obj rect from 5.3515, graph 0 to 5.3665, graph 1
set obj rect from 7.0, graph 0 to 7.2, graph 1
set style rect fc rgb "red" fs solid 0.3 noborder
set obj rect from 10.1, graph 0 to 10.15, graph 1
set style rect fc lt -1 fs solid 0.2 noborder
set obj rect from 14.0, graph 0 to 14.35, graph 1
set style rect fc rgb "red" fs solid 0.3 noborder
set obj rect from 18.068, graph 0 to 18.168, graph 1
set style rect fc lt -1 fs solid 0.2 noborder
set obj rect from 21.0, graph 0 to 21.45, graph 1
set style rect fc rgb "red" fs solid 0.3 noborder
set obj rect from 24.89, graph 0 to 24.99, graph 1
set style rect fc lt -1 fs solid 0.2 noborder
set obj rect from 28.0, graph 0 to 29.7, graph 1
`

// blockName names the inline data block of the i-th series.
func blockName(i int) string {
	return fmt.Sprintf("$data%d", i)
}

// quoteTitle escapes a label for a single-quoted gnuplot string.
func quoteTitle(label string) string {
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}

// WriteGnuplot writes the preamble, one inline data block per series and a
// single plot statement referencing every block in order.
func WriteGnuplot(w io.Writer, series []parser.Series) error {
	if len(series) == 0 {
		return fmt.Errorf("no series to plot")
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(GnuplotPreamble)
	for i, s := range series {
		fmt.Fprintf(bw, "%s << EOD\n", blockName(i))
		for _, sm := range s.Samples {
			fmt.Fprintf(bw, "%s %s\n", formatFloat(sm.FrequencyMHz), formatFloat(sm.Efficiency))
		}
		bw.WriteString("EOD\n")
	}

	bw.WriteString("plot ")
	for i, s := range series {
		if i > 0 {
			bw.WriteString(", \\\n")
		}
		fmt.Fprintf(bw, "'%s' using 1:2 with lines linewidth 2 title %s", blockName(i), quoteTitle(s.Label))
	}
	bw.WriteString("\n")
	return bw.Flush()
}

// CheckDestination refuses to replace an existing file unless force is set,
// and refuses to replace anything that is not a regular file.
func CheckDestination(path string, force bool) error {
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !force {
		return &DestinationExistsError{Path: path}
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%s is not a file, will only overwrite files", path)
	}
	return nil
}

// DestinationExistsError is returned when an output exists and force is off.
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("%s already exists, force overwrite with -F or provide another name with -g (or move it)", e.Path)
}

// writeFileAtomic replaces path with data in one step so a failed run never
// leaves a truncated file behind.
func writeFileAtomic(path string, data []byte, force bool) error {
	if err := CheckDestination(path, force); err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// GenerateGnuplotFile renders the script in memory and writes it to path.
func GenerateGnuplotFile(path string, series []parser.Series, force bool) error {
	var buf bytes.Buffer
	if err := WriteGnuplot(&buf, series); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes(), force)
}
