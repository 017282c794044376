package analysis

import (
	"regexp"
	"strings"

	"github.com/jordanlucero/scanclean/pagecache"
	"github.com/jordanlucero/scanclean/textnorm"
)

// Wrapper shapes a page number is commonly printed in, matched against the
// normalized line: "page 12", "p. 12", "- 12 -".
var wrapperPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^page (\d+)$`),
	regexp.MustCompile(`^p\. (\d+)$`),
	regexp.MustCompile(`^- (\d+) -$`),
}

// Detect runs both detectors over one cache snapshot.
func Detect(c *pagecache.Cache, cfg Config) Result {
	return Result{
		PageNumbers: DetectPageNumbers(c),
		Headers:     DetectSectionHeaders(c, cfg),
	}
}

// DetectPageNumbers inspects the first and last non-empty line of every
// page for numeral shapes. Numerals are reported wherever the shape
// matches; sequential consistency across pages is deliberately not checked.
func DetectPageNumbers(c *pagecache.Cache) []PageNumberDetection {
	var out []PageNumberDetection
	for i := range c.Entries {
		e := &c.Entries[i]
		lines := nonEmptyLines(e.Text.String())
		if len(lines) == 0 {
			continue
		}

		if num, ok := pageNumeral(lines[0]); ok {
			out = append(out, PageNumberDetection{
				Ordinal: e.Ordinal,
				Numeral: num,
				Line:    lines[0],
			})
		}
		// A single-line page is checked once, not twice.
		if len(lines) > 1 {
			last := lines[len(lines)-1]
			if num, ok := pageNumeral(last); ok {
				out = append(out, PageNumberDetection{
					Ordinal:  e.Ordinal,
					Numeral:  num,
					Line:     last,
					LastLine: true,
				})
			}
		}
	}
	return out
}

// pageNumeral reports whether a line qualifies as a page-number line and
// returns the numeral. Qualifying shapes: the whole line is numeric, a
// wrapper pattern, or a mixed line whose decomposition strips an edge
// numeral off a non-empty core.
func pageNumeral(line string) (string, bool) {
	lc := textnorm.Decompose(line)
	if lc.HasNumeral {
		return lc.Numeral, true
	}
	for _, re := range wrapperPatterns {
		if m := re.FindStringSubmatch(lc.Normalized); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// nonEmptyLines splits plain text into lines, dropping blank ones.
func nonEmptyLines(plain string) []string {
	var out []string
	for _, line := range strings.Split(plain, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
