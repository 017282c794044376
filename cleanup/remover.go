// Package cleanup deletes detected artifact lines from rich text, one line
// at a time and never more: the remover targets exactly the identified line
// including its trailing break, leaving surrounding formatting untouched.
package cleanup

import (
	"strings"

	"github.com/jordanlucero/scanclean/richtext"
	"github.com/jordanlucero/scanclean/textnorm"
)

// RemoveLine deletes the first line of t whose normalized form equals the
// normalized target. With stripNumbers set, an edge page numeral is
// stripped from each line before comparing, which is how header lines with
// varying page numbers ("Chapter 1  42") are matched by their core. The
// deleted span includes the trailing line break. A missing match is a
// no-op, not an error; the return reports whether a line was removed.
func RemoveLine(t *richtext.Text, target string, stripNumbers bool) bool {
	// The target is already in normalized (for headers, core) form; the
	// numeral strip applies to the scanned lines, never the target.
	want := textnorm.Normalize(target)
	if want == "" {
		return false
	}

	plain := t.String()
	start := 0 // rune offset of the current line
	for _, line := range strings.Split(plain, "\n") {
		lineLen := len([]rune(line))

		got := textnorm.Normalize(line)
		if stripNumbers {
			got = textnorm.Decompose(line).Core
		}
		if got == want {
			end := start + lineLen
			if end < len([]rune(plain)) {
				end++ // take the trailing newline with the line
			}
			t.DeleteRange(start, end)
			return true
		}
		start += lineLen + 1
	}
	return false
}
