package textnorm

import "strings"

// LineComponents is the decomposition of one line: the core text with any
// edge numeral stripped, the numeral itself, and the fully normalized form
// of the original line.
type LineComponents struct {
	Core       string // normalized core text, edge numeral removed
	Numeral    string // digits of the stripped edge token, "" if none
	HasNumeral bool
	Leading    bool   // numeral came from the first token
	Normalized string // Normalize(line), numeral included
}

// Decompose splits a line into space-separated tokens of its normalized
// form and strips at most one purely numeric edge token: the first token if
// numeric, else the last. Interior numerals stay part of the core, so
// "chapter 1 of 3 42" yields core "chapter 1 of 3" and numeral "42".
func Decompose(line string) LineComponents {
	norm := Normalize(line)
	lc := LineComponents{Core: norm, Normalized: norm}
	if norm == "" {
		return lc
	}

	tokens := strings.Split(norm, " ")
	switch {
	case IsNumeric(tokens[0]):
		lc.Numeral = tokens[0]
		lc.HasNumeral = true
		lc.Leading = true
		lc.Core = strings.Join(tokens[1:], " ")
	case len(tokens) > 1 && IsNumeric(tokens[len(tokens)-1]):
		lc.Numeral = tokens[len(tokens)-1]
		lc.HasNumeral = true
		lc.Core = strings.Join(tokens[:len(tokens)-1], " ")
	}
	return lc
}

// IsNumeric reports whether s is a non-empty run of ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
