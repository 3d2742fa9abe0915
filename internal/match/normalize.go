package match

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize converts a label into its canonical comparison form.
// The normalization pipeline:
// 1. Unicode compatibility fold (NFKC), so full-width and other variant forms compare equal.
// 2. Case-fold to upper.
// 3. Strip punctuation: ( ) . , ' ’
// 4. Collapse runs of whitespace to a single space and trim.
//
// Normalize is total and idempotent; the empty string normalizes to itself.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = norm.NFKC.String(s)
	s = strings.ToUpper(s)
	s = stripPunctuation(s)

	return strings.Join(strings.Fields(s), " ")
}

// NormalizeAll normalizes every label, dropping the ones that normalize to empty.
func NormalizeAll(labels []string) []string {
	out := make([]string, 0, len(labels))

	for _, l := range labels {
		if n := Normalize(l); n != "" {
			out = append(out, n)
		}
	}

	return out
}

// isPunctuation returns true for the characters that never carry meaning in a
// geographic label.
func isPunctuation(r rune) bool {
	switch r {
	case '(', ')', '.', ',', '\'', '’':
		return true
	default:
		return false
	}
}

// stripPunctuation removes punctuation runes from a string.
func stripPunctuation(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if !isPunctuation(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
