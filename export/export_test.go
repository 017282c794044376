package export

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jordanlucero/scanclean/doc"
	"github.com/jordanlucero/scanclean/pagecache"
	"github.com/jordanlucero/scanclean/richtext"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func twoPageDoc() *doc.Document {
	d := &doc.Document{ID: "doc-1"}
	d.AppendPages(
		&doc.Page{Text: richtext.Plain("alpha beta")},
		&doc.Page{Text: richtext.Plain("gamma delta epsilon")},
	)
	return d
}

func TestTextFromCache(t *testing.T) {
	ctx := context.Background()
	svc := pagecache.NewService(pagecache.NewMemStore(), testLogger())
	d := twoPageDoc()
	if _, err := svc.Build(ctx, d); err != nil {
		t.Fatalf("Build: %v", err)
	}

	out, stats, err := NewService(svc, testLogger()).Text(ctx, d)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if out != "alpha beta\fgamma delta epsilon" {
		t.Fatalf("got %q", out)
	}
	if stats.Pages != 2 || stats.Words != 5 {
		t.Errorf("stats = %+v, want 2 pages / 5 words", stats)
	}
	wantChars := len([]rune("alpha beta")) + len([]rune("gamma delta epsilon"))
	if stats.Chars != wantChars {
		t.Errorf("chars = %d, want %d", stats.Chars, wantChars)
	}
}

func TestTextFallsBackWithoutCache(t *testing.T) {
	ctx := context.Background()
	svc := pagecache.NewService(pagecache.NewMemStore(), testLogger())
	d := twoPageDoc()
	// No Build: export must read the pages directly.

	out, stats, err := NewService(svc, testLogger()).Text(ctx, d)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(out, "alpha beta") || !strings.Contains(out, "gamma delta epsilon") {
		t.Fatalf("fallback lost content: %q", out)
	}
	if stats.Words != 5 {
		t.Errorf("fallback stats = %+v, want 5 words", stats)
	}
}
