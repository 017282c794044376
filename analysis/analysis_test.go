package analysis

import (
	"fmt"
	"testing"

	"github.com/jordanlucero/scanclean/pagecache"
	"github.com/jordanlucero/scanclean/richtext"
)

// cacheOf builds a cache snapshot from (ordinal, text) pairs.
func cacheOf(pages map[int]string) *pagecache.Cache {
	c := &pagecache.Cache{Version: pagecache.FormatVersion}
	max := 0
	for ord := range pages {
		if ord > max {
			max = ord
		}
	}
	for ord := 1; ord <= max; ord++ {
		text, ok := pages[ord]
		if !ok {
			continue
		}
		c.Entries = append(c.Entries, pagecache.Entry{
			Ordinal: ord,
			Text:    richtext.Plain(text),
		})
	}
	return c
}

func TestDetectPageNumbersLastLines(t *testing.T) {
	c := cacheOf(map[int]string{
		1: "The rain fell all week.\nNobody minded much.\n1",
		2: "It kept falling.\nStill nobody minded.\n2",
		3: "Then it stopped.\nEveryone complained.\n3",
	})
	got := DetectPageNumbers(c)
	if len(got) != 3 {
		t.Fatalf("expected 3 detections, got %d: %+v", len(got), got)
	}
	for i, d := range got {
		want := fmt.Sprintf("%d", i+1)
		if d.Ordinal != i+1 || d.Numeral != want {
			t.Errorf("detection %d: ordinal=%d numeral=%q, want %d/%q", i, d.Ordinal, d.Numeral, i+1, want)
		}
		if !d.LastLine {
			t.Errorf("detection %d: expected last-line flag", i)
		}
	}
}

func TestDetectPageNumbersWrapperShapes(t *testing.T) {
	cases := []struct {
		line    string
		numeral string
	}{
		{"Page 12", "12"},
		{"p. 7", "7"},
		{"- 33 -", "33"},
		{"Chapter 1    42", "42"},
		{"9", "9"},
	}
	for _, tc := range cases {
		c := cacheOf(map[int]string{1: "Body text sits here.\nAnd here.\n" + tc.line})
		got := DetectPageNumbers(c)
		if len(got) != 1 {
			t.Errorf("%q: expected 1 detection, got %d", tc.line, len(got))
			continue
		}
		if got[0].Numeral != tc.numeral {
			t.Errorf("%q: numeral = %q, want %q", tc.line, got[0].Numeral, tc.numeral)
		}
		if got[0].Line != tc.line {
			t.Errorf("%q: raw line = %q", tc.line, got[0].Line)
		}
	}
}

func TestDetectPageNumbersRejectsPlainProse(t *testing.T) {
	c := cacheOf(map[int]string{1: "A quiet opening line.\nA quiet closing line."})
	if got := DetectPageNumbers(c); len(got) != 0 {
		t.Fatalf("expected no detections, got %+v", got)
	}
}

func TestDetectPageNumbersSingleLinePageCheckedOnce(t *testing.T) {
	c := cacheOf(map[int]string{1: "\n42\n\n"})
	got := DetectPageNumbers(c)
	if len(got) != 1 {
		t.Fatalf("expected 1 detection for single-line page, got %d", len(got))
	}
	if got[0].LastLine {
		t.Errorf("single-line page reported as last line")
	}
}

func TestDetectPageNumbersFirstAndLast(t *testing.T) {
	c := cacheOf(map[int]string{1: "14\nSome body text.\n- 14 -"})
	got := DetectPageNumbers(c)
	if len(got) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(got))
	}
	if got[0].LastLine || !got[1].LastLine {
		t.Errorf("expected first then last, got %+v", got)
	}
}

func TestDetectSectionHeadersGroupsRun(t *testing.T) {
	pages := map[int]string{
		9:  "Before the section begins.\nPlain prose.",
		16: "After the section ended.\nMore prose.",
	}
	for ord := 10; ord <= 15; ord++ {
		// Body lines vary per page so only the header line recurs.
		pages[ord] = fmt.Sprintf("Chapter Two  %d\nThe story reaches part %d.\nIt keeps moving along %d.", ord+30, ord, ord)
	}
	got := DetectSectionHeaders(cacheOf(pages), Config{})
	if len(got) != 1 {
		t.Fatalf("expected 1 detection, got %d: %+v", len(got), got)
	}
	d := got[0]
	if d.Header != "chapter two" {
		t.Errorf("header = %q, want %q", d.Header, "chapter two")
	}
	if d.RangeStart != 10 || d.RangeEnd != 15 {
		t.Errorf("range = [%d,%d], want [10,15]", d.RangeStart, d.RangeEnd)
	}
	if len(d.AffectedPages) != 6 {
		t.Fatalf("affected = %v, want 6 pages", d.AffectedPages)
	}
	for i, o := range d.AffectedPages {
		if o != 10+i {
			t.Errorf("affected[%d] = %d, want %d", i, o, 10+i)
		}
	}
	if d.Display != "Chapter Two  40" {
		t.Errorf("display = %q, want earliest raw line", d.Display)
	}
}

func TestDetectSectionHeadersAlternating(t *testing.T) {
	pages := map[int]string{}
	for _, ord := range []int{20, 22, 24, 26} {
		pages[ord] = fmt.Sprintf("Chapter Three\nLeft page body, part %d of the tale.", ord)
	}
	for _, ord := range []int{21, 23, 25} {
		pages[ord] = fmt.Sprintf("The Long Road\nRight page body, part %d of the tale.", ord)
	}
	got := DetectSectionHeaders(cacheOf(pages), Config{})
	if len(got) != 2 {
		t.Fatalf("expected 2 detections, got %d: %+v", len(got), got)
	}

	var left, right *SectionHeaderDetection
	for i := range got {
		if got[i].Header == "chapter three" {
			left = &got[i]
		}
		if got[i].Header == "the long road" {
			right = &got[i]
		}
	}
	if left == nil || right == nil {
		t.Fatalf("missing detections: %+v", got)
	}
	if left.RangeStart != 20 || left.RangeEnd != 26 {
		t.Errorf("left range = [%d,%d], want [20,26]", left.RangeStart, left.RangeEnd)
	}
	if right.RangeStart != 21 || right.RangeEnd != 25 {
		t.Errorf("right range = [%d,%d], want [21,25]", right.RangeStart, right.RangeEnd)
	}
	if len(left.AffectedPages) != 4 || len(right.AffectedPages) != 3 {
		t.Errorf("affected sizes %d/%d, want 4/3", len(left.AffectedPages), len(right.AffectedPages))
	}
	for _, o := range left.AffectedPages {
		if right.Contains(o) {
			t.Errorf("page %d claimed by both runs", o)
		}
	}
}

func TestDetectSectionHeadersMinimumRun(t *testing.T) {
	pages := map[int]string{
		5: "Rare Header\nBody alpha.",
		6: "Rare Header\nBody beta.",
		7: "Different opener line.\nBody gamma.",
	}
	if got := DetectSectionHeaders(cacheOf(pages), Config{}); len(got) != 0 {
		t.Fatalf("2-page header should not detect, got %+v", got)
	}
}

func TestDetectSectionHeadersGapSplitsRuns(t *testing.T) {
	pages := map[int]string{}
	for _, ord := range []int{1, 2, 3, 10, 11, 12} {
		pages[ord] = fmt.Sprintf("Recurring Title\nFiller body number %d here.", ord)
	}
	got := DetectSectionHeaders(cacheOf(pages), Config{})
	if len(got) != 2 {
		t.Fatalf("expected gap to split into 2 runs, got %d: %+v", len(got), got)
	}
	if got[0].RangeEnd != 3 || got[1].RangeStart != 10 {
		t.Errorf("run boundaries wrong: %+v", got)
	}
}

func TestDetectSectionHeadersStripsEdgeNumerals(t *testing.T) {
	pages := map[int]string{
		1: "Chapter 1  42\nBody one.",
		2: "Chapter 1  43\nBody two.",
		3: "Chapter 1  44\nBody three.",
	}
	got := DetectSectionHeaders(cacheOf(pages), Config{})
	if len(got) != 1 {
		t.Fatalf("expected 1 detection, got %d: %+v", len(got), got)
	}
	if got[0].Header != "chapter 1" {
		t.Errorf("header = %q, want %q", got[0].Header, "chapter 1")
	}
}
