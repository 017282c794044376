package analysis

import (
	"strings"
	"testing"
)

func sampleResult() Result {
	return Result{
		PageNumbers: []PageNumberDetection{
			{Ordinal: 4, Numeral: "4", Line: "4", LastLine: true},
			{Ordinal: 5, Numeral: "5", Line: "5", LastLine: true},
		},
		Headers: []SectionHeaderDetection{
			{
				Header:        "chapter one",
				Display:       "Chapter One",
				RangeStart:    3,
				RangeEnd:      7,
				AffectedPages: []int{3, 5, 7},
			},
		},
	}
}

func kinds(opts []CleanupOption) []OptionKind {
	out := make([]OptionKind, len(opts))
	for i, o := range opts {
		out[i] = o.Kind
	}
	return out
}

func TestBuildOptionsFullRanking(t *testing.T) {
	// Page 5 has both a page number and a header.
	opts := BuildOptions(sampleResult(), 5)
	want := []OptionKind{RemovePageNumber, RemoveHeader, RemoveHeaderRange, RemoveAllPageNumbers, RemoveAllHeaders}
	got := kinds(opts)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank %d: got %v, want %v", i, got[i], want[i])
		}
	}

	if n := len(opts[0].Targets); n != 1 || opts[0].Targets[0].Ordinal != 5 {
		t.Errorf("remove-page-number targets wrong: %+v", opts[0].Targets)
	}
	if n := len(opts[1].Targets); n != 1 || opts[1].Targets[0].Ordinal != 5 {
		t.Errorf("remove-header targets wrong: %+v", opts[1].Targets)
	}
	if n := len(opts[2].Targets); n != 3 {
		t.Errorf("remove-header-range should cover 3 affected pages, got %d", n)
	}
	if n := len(opts[3].Targets); n != 2 {
		t.Errorf("remove-all-page-numbers should cover 2 pages, got %d", n)
	}
}

func TestBuildOptionsOmitsUnavailable(t *testing.T) {
	// Page 1 carries nothing; only document-wide options remain.
	opts := BuildOptions(sampleResult(), 1)
	want := []OptionKind{RemoveAllPageNumbers, RemoveAllHeaders}
	got := kinds(opts)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBuildOptionsEmptyResult(t *testing.T) {
	if opts := BuildOptions(Result{}, 1); len(opts) != 0 {
		t.Fatalf("expected no options, got %v", kinds(opts))
	}
}

func TestBuildOptionsSinglePageHeaderHasNoRangeOption(t *testing.T) {
	res := Result{
		Headers: []SectionHeaderDetection{
			{Header: "lone", Display: "Lone", RangeStart: 2, RangeEnd: 2, AffectedPages: []int{2}},
		},
	}
	got := kinds(BuildOptions(res, 2))
	for _, k := range got {
		if k == RemoveHeaderRange {
			t.Fatalf("range option offered for single-page run: %v", got)
		}
	}
}

func TestBuildOptionsLabels(t *testing.T) {
	opts := BuildOptions(sampleResult(), 5)
	for _, o := range opts {
		if strings.TrimSpace(o.Label) == "" {
			t.Errorf("option %v has empty label", o.Kind)
		}
	}
	if !strings.Contains(opts[1].Label, "Chapter One") {
		t.Errorf("header label should show display text: %q", opts[1].Label)
	}
}
