package deck

import (
	"math/big"
	"regexp"
	"strconv"
)

var (
	rpCardRe = regexp.MustCompile(`^RP\s`)
	frCardRe = regexp.MustCompile(`^FR\s`)
)

// Rewrite forces every RP card to request AVERAGE POWER GAIN and, when a
// profile is given, replaces every FR card with the profile's card. The
// original text of each rewritten card is kept as a comment line right
// before its replacement. The input deck is not modified.
func Rewrite(d Deck, profile *SweepProfile) (Deck, []Replacement, error) {
	out := make(Deck, 0, len(d))
	var replaced []Replacement

	for i, line := range d {
		var newLine string
		var tag string

		switch {
		case rpCardRe.MatchString(line):
			card := ParseCard(line)
			if len(card.Fields) <= xndaField {
				return nil, nil, &MalformedCardError{Line: i + 1, Text: line, Reason: "too few columns to set AVERAGE POWER GAIN"}
			}
			xnda, ok, err := ForceAveragePowerGain(card.Fields[xndaField])
			if err != nil {
				return nil, nil, &MalformedCardError{Line: i + 1, Text: line, Reason: "XNDA field is not an integer", Err: err}
			}
			if ok {
				card.Fields[xndaField] = xnda
				newLine, tag = card.String(), TagRadiationPattern
			}
		case profile != nil && frCardRe.MatchString(line):
			if line != profile.Card {
				newLine, tag = profile.Card, TagFrequency
			}
		}

		if tag == "" {
			out = append(out, line)
			continue
		}
		out = append(out, CommentPrefix+line, newLine)
		replaced = append(replaced, Replacement{Line: i + 1, Tag: tag, Original: line, New: newLine})
	}
	return out, replaced, nil
}

// ForceAveragePowerGain returns the XNDA value with its units digit set to 1
// and the sign dropped. It reports false when the units digit already
// selects power gain (1) or average power gain (2). Values of any size are
// accepted.
func ForceAveragePowerGain(field string) (string, bool, error) {
	v, ok := new(big.Int).SetString(field, 10)
	if !ok {
		return field, false, &strconv.NumError{Func: "ForceAveragePowerGain", Num: field, Err: strconv.ErrSyntax}
	}
	v.Abs(v)
	digit := new(big.Int).Mod(v, big.NewInt(10)).Int64()
	switch digit {
	case 1, 2:
		return field, false, nil
	}
	v.Sub(v, big.NewInt(digit-1))
	return v.String(), true, nil
}
