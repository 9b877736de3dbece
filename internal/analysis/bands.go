package analysis

// Band is an amateur radio allocation highlighted on the efficiency plot.
type Band struct {
	Name    string
	LowMHz  float64
	HighMHz float64
	WARC    bool // drawn in red
}

// Bands are the HF allocations shaded by the gnuplot preamble, low to high.
var Bands = []Band{
	{Name: "160m", LowMHz: 1.81, HighMHz: 2.0},
	{Name: "80m", LowMHz: 3.5, HighMHz: 3.8},
	{Name: "60m", LowMHz: 5.3515, HighMHz: 5.3665},
	{Name: "40m", LowMHz: 7.0, HighMHz: 7.2},
	{Name: "30m", LowMHz: 10.1, HighMHz: 10.15, WARC: true},
	{Name: "20m", LowMHz: 14.0, HighMHz: 14.35},
	{Name: "17m", LowMHz: 18.068, HighMHz: 18.168, WARC: true},
	{Name: "15m", LowMHz: 21.0, HighMHz: 21.45},
	{Name: "12m", LowMHz: 24.89, HighMHz: 24.99, WARC: true},
	{Name: "10m", LowMHz: 28.0, HighMHz: 29.7},
}

// Contains reports whether f lies inside the band, edges included.
func (b Band) Contains(f float64) bool {
	return f >= b.LowMHz && f <= b.HighMHz
}
