package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
)

const numberPattern = `([+-]?\d+(?:\.\d*)?(?:[eE][+-]?\d+)?)`

var (
	frequencyLineRe = regexp.MustCompile(`^\s*FREQUENCY\s*:\s*` + numberPattern + `\s*MHz\s*$`)
	gainLineRe      = regexp.MustCompile(`^\s*AVERAGE POWER GAIN\s*:\s*` + numberPattern + `(?:\s|$)`)
)

type scanState int

const (
	stateIdle        scanState = iota // no frequency waiting for its gain
	stateFreqPending                  // frequency captured
)

type lineKind int

const (
	lineOther lineKind = iota
	lineFrequency
	lineGain
)

// classify returns the kind of a report line and its numeric capture.
func classify(line string) (lineKind, string) {
	if m := frequencyLineRe.FindStringSubmatch(line); m != nil {
		return lineFrequency, m[1]
	}
	if m := gainLineRe.FindStringSubmatch(line); m != nil {
		return lineGain, m[1]
	}
	return lineOther, ""
}

// ParseResults scans a nec2c report and pairs every FREQUENCY line with the
// AVERAGE POWER GAIN line that follows it. Unrelated lines are ignored.
func ParseResults(r io.Reader, label string) (Series, error) {
	series := Series{Label: label}
	state := stateIdle
	var freq float64

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		kind, num := classify(scanner.Text())
		if kind == lineOther {
			continue
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Series{}, &ParseError{Source: label, Line: lineNo, Reason: ReasonBadNumber, Err: err}
		}

		switch {
		case kind == lineFrequency && state == stateIdle:
			freq = v
			state = stateFreqPending
		case kind == lineFrequency && state == stateFreqPending:
			return Series{}, &ParseError{Source: label, Line: lineNo, Reason: ReasonFrequencyWithoutGain}
		case kind == lineGain && state == stateFreqPending:
			series.Samples = append(series.Samples, Sample{FrequencyMHz: freq, Efficiency: v / 2.0})
			state = stateIdle
		case kind == lineGain && state == stateIdle:
			return Series{}, &ParseError{Source: label, Line: lineNo, Reason: ReasonGainWithoutFrequency}
		}
	}
	if err := scanner.Err(); err != nil {
		return Series{}, fmt.Errorf("failed to read %s: %w", label, err)
	}

	if len(series.Samples) == 0 {
		return Series{}, &ParseError{Source: label, Reason: ReasonEmpty}
	}
	return series, nil
}

// ParseResultFile parses the nec2c report at path, labelling the series
// with path as given.
func ParseResultFile(path string) (Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return Series{}, fmt.Errorf("failed to open output file: %w", err)
	}
	defer file.Close()
	return ParseResults(file, path)
}
