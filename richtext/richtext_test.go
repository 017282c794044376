package richtext

import "testing"

func sample() *Text {
	t := &Text{}
	t.Append("plain start ", Attrs{})
	t.Append("bold middle", Attrs{Bold: true})
	t.Append(" plain end", Attrs{})
	return t
}

func TestStringAndLen(t *testing.T) {
	rt := sample()
	want := "plain start bold middle plain end"
	if got := rt.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if rt.Len() != len([]rune(want)) {
		t.Errorf("Len() = %d, want %d", rt.Len(), len([]rune(want)))
	}
}

func TestDeleteRangeInsideRun(t *testing.T) {
	rt := sample()
	// Delete "start " from the first run.
	rt.DeleteRange(6, 12)
	if got := rt.String(); got != "plain bold middle plain end" {
		t.Fatalf("got %q", got)
	}
	if len(rt.Runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(rt.Runs))
	}
	if !rt.Runs[1].Attrs.Bold {
		t.Error("bold run lost its attribute")
	}
}

func TestDeleteRangeAcrossRuns(t *testing.T) {
	rt := sample()
	// Delete from inside run 0 through inside run 1.
	rt.DeleteRange(6, 17) // "start bold "
	if got := rt.String(); got != "plain middle plain end" {
		t.Fatalf("got %q", got)
	}
	// The surviving piece of the bold run keeps its formatting.
	found := false
	for _, r := range rt.Runs {
		if r.Attrs.Bold && r.Text == "middle" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a bold %q run, got %+v", "middle", rt.Runs)
	}
}

func TestDeleteRangeWholeRunMergesNeighbors(t *testing.T) {
	rt := sample()
	// Remove the entire bold run; the two plain neighbors merge.
	rt.DeleteRange(12, 23)
	if got := rt.String(); got != "plain start  plain end" {
		t.Fatalf("got %q", got)
	}
	if len(rt.Runs) != 1 {
		t.Errorf("expected merged single run, got %d runs", len(rt.Runs))
	}
}

func TestDeleteRangeClampsAndNoops(t *testing.T) {
	rt := sample()
	before := rt.String()
	rt.DeleteRange(5, 5)
	rt.DeleteRange(9, 3)
	rt.DeleteRange(-10, 0)
	if rt.String() != before {
		t.Fatalf("no-op deletes changed text: %q", rt.String())
	}
	rt.DeleteRange(0, 10_000)
	if rt.String() != "" || rt.Len() != 0 {
		t.Errorf("expected empty text, got %q", rt.String())
	}
}

func TestDeleteRangeUnicode(t *testing.T) {
	rt := Plain("héllo wörld")
	rt.DeleteRange(0, 6) // "héllo " in runes
	if got := rt.String(); got != "wörld" {
		t.Fatalf("got %q", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rt := sample()
	cp := rt.Clone()
	cp.DeleteRange(0, 6)
	if rt.String() != "plain start bold middle plain end" {
		t.Errorf("mutating clone changed original: %q", rt.String())
	}
}
