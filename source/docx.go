package source

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/jordanlucero/scanclean/doc"
	"github.com/jordanlucero/scanclean/richtext"
)

// DOCXReader handles .docx files. DOCX carries no fixed pagination, so each
// heading-styled paragraph starts a new page; body paragraphs accumulate
// onto the current page run by run, keeping each run's bold and italic
// formatting.
type DOCXReader struct{}

func (p *DOCXReader) ReadPages(r io.Reader, _ string) ([]*doc.Page, error) {
	// go-docx needs a ReadSeeker+size, so buffer the input.
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	document, err := docx.Parse(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	return docxAssemblePages(document.Document.Body.Items), nil
}

// docxAssemblePages walks body items, splitting pages at heading-styled
// paragraphs.
func docxAssemblePages(items []interface{}) []*doc.Page {
	var pages []*doc.Page
	current := newPageBuilder("")
	flush := func() {
		if !current.empty() {
			pages = append(pages, current.page())
		}
	}

	for _, item := range items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if docxHeadingLevel(para) > 0 {
			title := docxParagraphText(para)
			if title == "" {
				continue
			}
			flush()
			current = newPageBuilder(title)
			current.addBlock(title, boldAttrs)
			continue
		}
		current.addRuns(docxParagraphRuns(para))
	}
	flush()
	return pages
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	for level := 1; level <= 6; level++ {
		if style == fmt.Sprintf("heading%d", level) {
			return level
		}
	}
	return 0
}

// docxParagraphRuns converts a paragraph's runs to rich-text runs, mapping
// run-level bold and italic onto the text attributes.
func docxParagraphRuns(para *docx.Paragraph) []richtext.Run {
	var out []richtext.Run
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
		if buf.Len() == 0 {
			continue
		}
		out = append(out, richtext.Run{Text: buf.String(), Attrs: docxRunAttrs(run)})
	}
	return out
}

func docxRunAttrs(run *docx.Run) richtext.Attrs {
	var a richtext.Attrs
	if rp := run.RunProperties; rp != nil {
		a.Bold = rp.Bold != nil
		a.Italic = rp.Italic != nil
	}
	return a
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, r := range docxParagraphRuns(para) {
		buf.WriteString(r.Text)
	}
	return strings.TrimSpace(buf.String())
}
