// Package source builds a document's ordered page set from common textual
// formats: PDF, DOCX, Markdown, HTML, and plain text. It adapts formats
// that already carry text; no OCR happens here. DOCX and markup headings
// are preserved as bold runs so downstream line removal has formatting to
// keep intact.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jordanlucero/scanclean/doc"
	"github.com/jordanlucero/scanclean/richtext"
)

// Reader turns raw document bytes into ordered pages.
type Reader interface {
	ReadPages(r io.Reader, filename string) ([]*doc.Page, error)
}

// SupportedExtensions lists file extensions this package can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate reader for a filename.
func ForFile(filename string) (Reader, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".txt":
		return &TextReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".pdf":
		return &PDFReader{}, nil
	case ".docx":
		return &DOCXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Load reads pages with the reader matching filename and assembles a
// document around them.
func Load(r io.Reader, id, filename string) (*doc.Document, error) {
	reader, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	pages, err := reader.ReadPages(r, filename)
	if err != nil {
		return nil, err
	}
	d := &doc.Document{
		ID:    id,
		Title: strings.TrimSuffix(filename, filepath.Ext(filename)),
	}
	d.AppendPages(pages...)
	return d, nil
}

var (
	richAttrsNone = richtext.Attrs{}
	boldAttrs     = richtext.Attrs{Bold: true}
)

// pageBuilder accumulates blocks of rich text for one page.
type pageBuilder struct {
	name string
	text *richtext.Text
}

func newPageBuilder(name string) *pageBuilder {
	return &pageBuilder{name: name, text: &richtext.Text{}}
}

// addBlock appends a block, separated from earlier content by a blank line.
func (b *pageBuilder) addBlock(text string, attrs richtext.Attrs) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if len(b.text.Runs) > 0 {
		b.text.Append("\n\n", richtext.Attrs{})
	}
	b.text.Append(text, attrs)
}

// addRuns appends a block of pre-attributed runs, trimming whitespace at the
// block edges only so interior formatting boundaries stay put.
func (b *pageBuilder) addRuns(runs []richtext.Run) {
	for len(runs) > 0 {
		runs[0].Text = strings.TrimLeft(runs[0].Text, " \t\n")
		if runs[0].Text != "" {
			break
		}
		runs = runs[1:]
	}
	for len(runs) > 0 {
		last := len(runs) - 1
		runs[last].Text = strings.TrimRight(runs[last].Text, " \t\n")
		if runs[last].Text != "" {
			break
		}
		runs = runs[:last]
	}
	if len(runs) == 0 {
		return
	}
	if len(b.text.Runs) > 0 {
		b.text.Append("\n\n", richtext.Attrs{})
	}
	for _, r := range runs {
		b.text.Append(r.Text, r.Attrs)
	}
}

func (b *pageBuilder) empty() bool {
	return len(b.text.Runs) == 0
}

func (b *pageBuilder) page() *doc.Page {
	return &doc.Page{Name: b.name, Text: b.text, ModifiedAt: time.Now()}
}
