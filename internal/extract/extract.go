// internal/extract/extract.go
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches unsigned decimal numbers with an optional fractional
// part. Signs, thousands separators and scientific notation are deliberately
// not recognized.
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Numbers returns every number found in the completion text, in order of
// appearance. An unparseable completion yields an empty slice, not an error.
func Numbers(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			// Cannot happen for strings the pattern accepts.
			continue
		}
		out = append(out, v)
	}
	return out
}

// Outcomes holds the two negotiation quantities read positionally from a
// completion. Either pointer is nil when the completion did not yield enough
// numbers.
type Outcomes struct {
	WillingnessToPay *float64
	Offer            *float64
}

// ReadOutcomes interprets the first extracted number as the willingness to
// pay and the second as the opening offer. Surplus numbers are ignored.
func ReadOutcomes(numbers []float64) Outcomes {
	var out Outcomes
	if len(numbers) > 0 {
		v := numbers[0]
		out.WillingnessToPay = &v
	}
	if len(numbers) > 1 {
		v := numbers[1]
		out.Offer = &v
	}
	return out
}

// StrictNumbers accepts only completions that consist of exactly two numeric
// tokens separated by whitespace, commas or newlines. Prose responses fail
// the strict check even when they contain two extractable numbers.
func StrictNumbers(text string) ([]float64, bool) {
	fields := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ','
	})
	if len(fields) != 2 {
		return nil, false
	}
	out := make([]float64, 0, 2)
	for _, f := range fields {
		if !numberPattern.MatchString(f) || numberPattern.FindString(f) != f {
			return nil, false
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}
