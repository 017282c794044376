// Package textnorm canonicalizes single lines of OCR text for comparison
// and splits them into core text and edge page numerals. Two lines are the
// same artifact iff their normalized forms are equal.
package textnorm

import "strings"

// glyphReplacer maps OCR-variant punctuation onto canonical ASCII.
var glyphReplacer = strings.NewReplacer(
	"—", "-", // em dash
	"–", "-", // en dash
	"‒", "-", // figure dash
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	" ", " ", // no-break space
)

// Normalize lower-cases a line, collapses whitespace runs to single spaces,
// trims the edges, and maps dash/quote variants to ASCII. It is total and
// idempotent.
func Normalize(line string) string {
	line = glyphReplacer.Replace(line)
	line = strings.ToLower(line)
	return strings.Join(strings.Fields(line), " ")
}
