package report

import (
	"strconv"
	"strings"
)

// formatFloat renders f as the shortest decimal that parses back to f.
// Positional notation always carries a fractional part ("30.0"); exponent
// notation is used below 1e-4 and from 1e16 up ("1e-05", "1e+16").
func formatFloat(f float64) string {
	e := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expPart, ok := strings.Cut(e, "e")
	if !ok { // Inf, NaN
		return e
	}
	exp, err := strconv.Atoi(expPart)
	if err != nil {
		return e
	}
	if exp < -4 || exp >= 16 {
		return mant + "e" + expPart
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
