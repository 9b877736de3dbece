package deck

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Card tags interpreted by the rewriter. Every other card passes through.
const (
	TagRadiationPattern = "RP"
	TagFrequency        = "FR"
)

// CommentPrefix marks the original text of a rewritten card.
const CommentPrefix = "# "

// xndaField is the index of the packed output-mode field of an RP card.
const xndaField = 4

// Deck is an NEC2 input deck, one card per line, trailing whitespace trimmed.
type Deck []string

// Card is a whitespace-split control card.
type Card struct {
	Tag    string
	Fields []string // includes the tag at index 0
}

// ParseCard splits a deck line into its fields.
func ParseCard(line string) Card {
	fields := strings.Fields(line)
	c := Card{Fields: fields}
	if len(fields) > 0 {
		c.Tag = fields[0]
	}
	return c
}

// String joins the fields the way rewritten cards are written out.
func (c Card) String() string {
	return strings.Join(c.Fields, "  ")
}

// Replacement records one rewritten card.
type Replacement struct {
	Line     int // 1-based line number in the original deck
	Tag      string
	Original string
	New      string
}

// MalformedCardError reports a control card lacking a required field.
type MalformedCardError struct {
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *MalformedCardError) Error() string {
	msg := fmt.Sprintf("malformed card at line %d (%q): %s", e.Line, e.Text, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedCardError) Unwrap() error { return e.Err }

// ReadDeck reads every line of r, trimming trailing whitespace.
func ReadDeck(r io.Reader) (Deck, error) {
	var d Deck
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		d = append(d, strings.TrimRight(scanner.Text(), " \t\r\v\f"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}
	return d, nil
}

// Equal reports whether both decks hold the same lines in the same order.
func (d Deck) Equal(other Deck) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i] != other[i] {
			return false
		}
	}
	return true
}

// Bytes serializes the deck with a newline after every line.
func (d Deck) Bytes() []byte {
	var buf bytes.Buffer
	for _, line := range d {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
