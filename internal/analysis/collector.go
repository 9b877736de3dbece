package analysis

import (
	"regexp"

	"github.com/user/nec_apg_go/internal/config"
	"github.com/user/nec_apg_go/internal/parser"
)

// Kind tells how an input file enters the pipeline.
type Kind int

const (
	KindDeck   Kind = iota + 1 // NEC2 deck, run through nec2c first
	KindResult                 // nec2c report, parsed directly
)

func (k Kind) String() string {
	switch k {
	case KindDeck:
		return "nec2 input file"
	case KindResult:
		return "output file"
	}
	return "unknown"
}

var (
	deckNameRe   = regexp.MustCompile(`(?i).+\.(nec|nec2|nec2c)$`)
	resultNameRe = regexp.MustCompile(`(?i).+\.out$`)
)

// Classify decides how path is treated for the given input type.
func Classify(path, inputType string) (Kind, error) {
	switch inputType {
	case config.InputNEC2:
		return KindDeck, nil
	case config.InputOut:
		return KindResult, nil
	case config.InputAuto:
		if deckNameRe.MatchString(path) {
			return KindDeck, nil
		}
		if resultNameRe.MatchString(path) {
			return KindResult, nil
		}
		return 0, config.Errorf("input file", path, "unable to decide treatment, expected .nec, .nec2, .nec2c or .out")
	}
	return 0, config.Errorf("input type", inputType, "must be one of %v", config.ValidInputTypes)
}

// Collector gathers one series per input file, in input order.
type Collector struct {
	series []parser.Series
}

// Add appends s. An empty series is rejected.
func (c *Collector) Add(s parser.Series) error {
	if len(s.Samples) == 0 {
		return &parser.ParseError{Source: s.Label, Reason: parser.ReasonEmpty}
	}
	c.series = append(c.series, s)
	return nil
}

// Series returns the collected series; the order is the plot's legend order.
func (c *Collector) Series() []parser.Series {
	return c.series
}

// Len returns the number of collected series.
func (c *Collector) Len() int { return len(c.series) }
