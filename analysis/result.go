// Package analysis detects recurring OCR artifacts (physical page numbers
// and section running headers) across the pages of a document cache, and
// builds the ranked cleanup options a host presents for them. Detections
// are derived views over one cache snapshot and are never persisted.
package analysis

// Config holds the detection heuristics. The defaults match the shipped
// behavior; they are tunable, not derived.
type Config struct {
	// HeaderScanLines is how many leading non-empty lines of a page are
	// header candidates.
	HeaderScanLines int
	// GapTolerance is the maximum ordinal gap between consecutive pages of
	// one header run. 2 allows alternating left/right-page headers.
	GapTolerance int
	// MinRun is the minimum number of pages carrying a header before it
	// counts as a section.
	MinRun int
}

func DefaultConfig() Config {
	return Config{
		HeaderScanLines: 3,
		GapTolerance:    2,
		MinRun:          3,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.HeaderScanLines <= 0 {
		c.HeaderScanLines = d.HeaderScanLines
	}
	if c.GapTolerance <= 0 {
		c.GapTolerance = d.GapTolerance
	}
	if c.MinRun <= 0 {
		c.MinRun = d.MinRun
	}
	return c
}

// PageNumberDetection is one page-number line found on a page.
type PageNumberDetection struct {
	Ordinal  int    // page carrying the line
	Numeral  string // the numeral found, as written
	Line     string // raw line text
	LastLine bool   // found as the last non-empty line (false: first)
}

// SectionHeaderDetection is one recurring header grouped over a gap-tolerant
// contiguous page range.
type SectionHeaderDetection struct {
	Header        string // normalized core text, edge numeral stripped
	Display       string // raw text of the earliest-seen instance
	RangeStart    int    // inclusive
	RangeEnd      int    // inclusive
	AffectedPages []int  // exact ordinals carrying the header within the range
}

// Contains reports whether the detection's affected pages include ordinal.
func (d SectionHeaderDetection) Contains(ordinal int) bool {
	for _, o := range d.AffectedPages {
		if o == ordinal {
			return true
		}
	}
	return false
}

// Result is the full detection output for one document snapshot.
type Result struct {
	PageNumbers []PageNumberDetection
	Headers     []SectionHeaderDetection
}

// Empty reports whether the run found nothing. Not an error: the host shows
// "no suggestions".
func (r Result) Empty() bool {
	return len(r.PageNumbers) == 0 && len(r.Headers) == 0
}

// PageNumberFor returns the first page-number detection on ordinal, or nil.
func (r Result) PageNumberFor(ordinal int) *PageNumberDetection {
	for i := range r.PageNumbers {
		if r.PageNumbers[i].Ordinal == ordinal {
			return &r.PageNumbers[i]
		}
	}
	return nil
}

// HeaderFor returns the first header detection whose affected pages include
// ordinal, or nil.
func (r Result) HeaderFor(ordinal int) *SectionHeaderDetection {
	for i := range r.Headers {
		if r.Headers[i].Contains(ordinal) {
			return &r.Headers[i]
		}
	}
	return nil
}
