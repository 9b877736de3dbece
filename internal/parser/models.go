package parser

import "fmt"

// Sample is one point of an efficiency sweep.
type Sample struct {
	FrequencyMHz float64
	Efficiency   float64 // AVERAGE POWER GAIN / 2
}

// Series holds every sample parsed from one input file, in report order.
// Label is the file name as given on the command line.
type Series struct {
	Label   string
	Samples []Sample
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.Samples) }

// XY returns sample i as an (x, y) pair; Series implements plotter.XYer.
func (s Series) XY(i int) (float64, float64) {
	return s.Samples[i].FrequencyMHz, s.Samples[i].Efficiency
}

// ParseError reports a nec2c report that does not carry an alternating
// FREQUENCY / AVERAGE POWER GAIN sequence.
type ParseError struct {
	Source string
	Line   int // 0 when the error is not tied to a line
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("unable to parse nec2 output file %s", e.Source)
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	msg += ", " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Failure reasons.
const (
	ReasonFrequencyWithoutGain = "frequency without gain, does not seem to contain AVERAGE POWER GAIN"
	ReasonGainWithoutFrequency = "got AVERAGE POWER GAIN before frequency"
	ReasonEmpty                = "empty dataset, no AVERAGE POWER GAIN found"
	ReasonBadNumber            = "bad numeric value"
)
