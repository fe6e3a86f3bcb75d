package eval

import (
	"strings"
	"unicode"
)

// Normalize keeps only letters and numbers from any script, lower-cased and
// concatenated without separators. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		lower := unicode.ToLower(r)
		if unicode.IsLetter(lower) || unicode.IsNumber(lower) {
			builder.WriteRune(lower)
		}
	}
	return builder.String()
}
