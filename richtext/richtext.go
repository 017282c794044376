// Package richtext provides a minimal attributed-string model: plain text
// carried as an ordered sequence of runs, each with its own formatting.
// Mutations operate on rune offsets into the plain-text projection so that
// deleting a span never disturbs the attributes of the surrounding text.
package richtext

import "strings"

// Attrs describes the formatting applied to one run of text.
type Attrs struct {
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	FontName  string  `json:"font_name,omitempty"`
	FontSize  float64 `json:"font_size,omitempty"`
}

// Run is a contiguous span of text sharing one set of attributes.
type Run struct {
	Text  string `json:"text"`
	Attrs Attrs  `json:"attrs,omitempty"`
}

// Text is an attributed string.
type Text struct {
	Runs []Run `json:"runs"`
}

// Plain returns a Text with a single unattributed run.
func Plain(s string) *Text {
	if s == "" {
		return &Text{}
	}
	return &Text{Runs: []Run{{Text: s}}}
}

// String returns the plain-text projection: run texts concatenated in order.
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Len returns the length of the plain-text projection in runes.
func (t *Text) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, r := range t.Runs {
		n += len([]rune(r.Text))
	}
	return n
}

// Clone returns a deep copy. Mutating the copy never affects the original.
func (t *Text) Clone() *Text {
	if t == nil {
		return nil
	}
	runs := make([]Run, len(t.Runs))
	copy(runs, t.Runs)
	return &Text{Runs: runs}
}

// Append adds a run to the end of the text. Empty runs are ignored.
func (t *Text) Append(text string, attrs Attrs) {
	if text == "" {
		return
	}
	t.Runs = append(t.Runs, Run{Text: text, Attrs: attrs})
}

// DeleteRange removes the rune span [start, end) from the plain-text
// projection. Runs fully inside the span are dropped; runs straddling a
// boundary are trimmed, keeping their attributes. Out-of-range bounds are
// clamped; an empty or inverted span is a no-op.
func (t *Text) DeleteRange(start, end int) {
	if t == nil || len(t.Runs) == 0 {
		return
	}
	if start < 0 {
		start = 0
	}
	if max := t.Len(); end > max {
		end = max
	}
	if start >= end {
		return
	}

	out := t.Runs[:0]
	pos := 0
	for _, r := range t.Runs {
		runes := []rune(r.Text)
		runStart, runEnd := pos, pos+len(runes)
		pos = runEnd

		if runEnd <= start || runStart >= end {
			out = append(out, r)
			continue
		}

		var kept []rune
		if runStart < start {
			kept = append(kept, runes[:start-runStart]...)
		}
		if runEnd > end {
			kept = append(kept, runes[end-runStart:]...)
		}
		if len(kept) > 0 {
			out = append(out, Run{Text: string(kept), Attrs: r.Attrs})
		}
	}
	t.Runs = mergeAdjacent(out)
}

// mergeAdjacent coalesces neighboring runs with identical attributes.
func mergeAdjacent(runs []Run) []Run {
	if len(runs) < 2 {
		return runs
	}
	out := runs[:1]
	for _, r := range runs[1:] {
		last := &out[len(out)-1]
		if r.Attrs == last.Attrs {
			last.Text += r.Text
		} else {
			out = append(out, r)
		}
	}
	return out
}
