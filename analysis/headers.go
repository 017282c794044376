package analysis

import (
	"sort"

	"github.com/jordanlucero/scanclean/pagecache"
	"github.com/jordanlucero/scanclean/textnorm"
)

// occurrence is one header-candidate sighting: the page it appeared on and
// the raw line as written there.
type occurrence struct {
	ordinal int
	raw     string
}

// DetectSectionHeaders groups repeated normalized header text into
// gap-tolerant contiguous page runs. Each page's first few non-empty lines
// are candidates; an edge page number is stripped before normalizing so
// "Chapter 1  42" and "Chapter 1  43" group under the same core. With gap
// tolerance 2, alternating left/right-page headers each form their own run
// spanning the other's pages.
func DetectSectionHeaders(c *pagecache.Cache, cfg Config) []SectionHeaderDetection {
	cfg = cfg.withDefaults()

	groups := make(map[string][]occurrence)
	var order []string // cores in first-seen order, for stable output

	for i := range c.Entries {
		e := &c.Entries[i]
		lines := nonEmptyLines(e.Text.String())
		if len(lines) > cfg.HeaderScanLines {
			lines = lines[:cfg.HeaderScanLines]
		}
		// Multiple candidate lines on one page are evaluated independently.
		for _, line := range lines {
			lc := textnorm.Decompose(line)
			if lc.Core == "" {
				continue // bare page number, not a header
			}
			if _, seen := groups[lc.Core]; !seen {
				order = append(order, lc.Core)
			}
			groups[lc.Core] = append(groups[lc.Core], occurrence{ordinal: e.Ordinal, raw: line})
		}
	}

	var out []SectionHeaderDetection
	for _, core := range order {
		out = append(out, splitRuns(core, groups[core], cfg)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RangeStart < out[j].RangeStart
	})
	return out
}

// splitRuns breaks one core's occurrence list into maximal runs where
// consecutive pages differ by at most the gap tolerance, and keeps runs
// with enough distinct pages.
func splitRuns(core string, occs []occurrence, cfg Config) []SectionHeaderDetection {
	var out []SectionHeaderDetection

	var run []occurrence
	flush := func() {
		if d, ok := runDetection(core, run, cfg.MinRun); ok {
			out = append(out, d)
		}
		run = nil
	}

	for _, o := range occs {
		if len(run) > 0 && o.ordinal-run[len(run)-1].ordinal > cfg.GapTolerance {
			flush()
		}
		run = append(run, o)
	}
	flush()
	return out
}

func runDetection(core string, run []occurrence, minRun int) (SectionHeaderDetection, bool) {
	if len(run) == 0 {
		return SectionHeaderDetection{}, false
	}
	pages := make([]int, 0, len(run))
	for _, o := range run {
		// Same page may carry the core on two candidate lines; count once.
		if len(pages) == 0 || pages[len(pages)-1] != o.ordinal {
			pages = append(pages, o.ordinal)
		}
	}
	if len(pages) < minRun {
		return SectionHeaderDetection{}, false
	}
	return SectionHeaderDetection{
		Header:        core,
		Display:       run[0].raw,
		RangeStart:    pages[0],
		RangeEnd:      pages[len(pages)-1],
		AffectedPages: pages,
	}, true
}
