package analysis

import "fmt"

// OptionKind tags the concrete cleanup operation an option performs.
type OptionKind int

const (
	RemovePageNumber OptionKind = iota
	RemoveHeader
	RemoveHeaderRange
	RemoveAllPageNumbers
	RemoveAllHeaders
)

func (k OptionKind) String() string {
	switch k {
	case RemovePageNumber:
		return "remove-page-number"
	case RemoveHeader:
		return "remove-header"
	case RemoveHeaderRange:
		return "remove-header-range"
	case RemoveAllPageNumbers:
		return "remove-all-page-numbers"
	case RemoveAllHeaders:
		return "remove-all-headers"
	}
	return "unknown"
}

// Target is one (page ordinal, detection) pair an option acts on. Exactly
// one of PageNumber and Header is set, matching the option kind.
type Target struct {
	Ordinal    int
	PageNumber *PageNumberDetection
	Header     *SectionHeaderDetection
}

// CleanupOption is one actionable removal the host can present and invoke.
type CleanupOption struct {
	Kind    OptionKind
	Label   string
	Targets []Target
}

// BuildOptions ranks the actionable options for a detection result relative
// to the page currently being viewed. Kinds with no qualifying detections
// are omitted, never shown disabled.
func BuildOptions(res Result, currentPage int) []CleanupOption {
	var out []CleanupOption

	if pn := res.PageNumberFor(currentPage); pn != nil {
		out = append(out, CleanupOption{
			Kind:    RemovePageNumber,
			Label:   fmt.Sprintf("Remove page number %q from this page", pn.Numeral),
			Targets: []Target{{Ordinal: currentPage, PageNumber: pn}},
		})
	}

	if h := res.HeaderFor(currentPage); h != nil {
		out = append(out, CleanupOption{
			Kind:    RemoveHeader,
			Label:   fmt.Sprintf("Remove header %q from this page", h.Display),
			Targets: []Target{{Ordinal: currentPage, Header: h}},
		})
		if h.RangeEnd > h.RangeStart {
			targets := make([]Target, 0, len(h.AffectedPages))
			for _, o := range h.AffectedPages {
				targets = append(targets, Target{Ordinal: o, Header: h})
			}
			out = append(out, CleanupOption{
				Kind:    RemoveHeaderRange,
				Label:   fmt.Sprintf("Remove header %q from pages %d-%d", h.Display, h.RangeStart, h.RangeEnd),
				Targets: targets,
			})
		}
	}

	if len(res.PageNumbers) > 0 {
		targets := make([]Target, 0, len(res.PageNumbers))
		for i := range res.PageNumbers {
			pn := &res.PageNumbers[i]
			targets = append(targets, Target{Ordinal: pn.Ordinal, PageNumber: pn})
		}
		out = append(out, CleanupOption{
			Kind:    RemoveAllPageNumbers,
			Label:   fmt.Sprintf("Remove all page numbers (%d found)", len(targets)),
			Targets: targets,
		})
	}

	if len(res.Headers) > 0 {
		var targets []Target
		for i := range res.Headers {
			h := &res.Headers[i]
			for _, o := range h.AffectedPages {
				targets = append(targets, Target{Ordinal: o, Header: h})
			}
		}
		out = append(out, CleanupOption{
			Kind:    RemoveAllHeaders,
			Label:   fmt.Sprintf("Remove all headers (%d found)", len(res.Headers)),
			Targets: targets,
		})
	}

	return out
}
