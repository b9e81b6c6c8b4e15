package app

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/gridtext/internal/core"
	"github.com/dshills/gridtext/internal/highlight"
	"github.com/dshills/gridtext/internal/text"
)

// Document holds the text being paged along with its display metadata.
type Document struct {
	// Path is the file path (empty when read from standard input).
	Path string

	// Title is the display name (filename or "(stdin)").
	Title string

	// Text is the document content after sanitizing and tab expansion.
	Text string

	// Language is the detected language name, empty when the
	// document is shown without highlighting.
	Language string

	spans []text.Span
}

// LoadDocument reads a document from a file, or from standard input
// when path is empty or "-". Tabs are expanded to tabWidth columns.
func LoadDocument(path string, tabWidth int) (*Document, error) {
	if path == "" || path == "-" {
		return ReadDocument(os.Stdin, "(stdin)", tabWidth)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	return newDocument(path, filepath.Base(path), raw, tabWidth), nil
}

// ReadDocument builds a document from a stream.
func ReadDocument(r io.Reader, title string, tabWidth int) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, NewOperationError("read", title, err)
	}
	return newDocument("", title, raw, tabWidth), nil
}

func newDocument(path, title string, raw []byte, tabWidth int) *Document {
	content := strings.ToValidUTF8(string(raw), "�")
	content = expandTabs(content, tabWidth)

	return &Document{
		Path:  path,
		Title: title,
		Text:  content,
	}
}

// Restyle rebuilds the document's spans. With a highlighter the text
// is tokenized and colored over the base style; without one the whole
// document is a single unstyled span.
func (d *Document) Restyle(hl *highlight.Highlighter, base core.Style) {
	if hl == nil {
		d.Language = ""
		d.spans = []text.Span{text.Plain(d.Text)}
		return
	}

	d.Language = hl.Language(d.Text, d.Path)
	d.spans = hl.Spans(d.Text, d.Path, base)
}

// Spans returns the document's styled spans.
func (d *Document) Spans() []text.Span {
	return d.spans
}

// expandTabs replaces tabs with spaces up to the next tab stop.
// Columns are counted in display cells, so wide clusters advance the
// stop position by two.
func expandTabs(s string, tabWidth int) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)

	col := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		switch cluster {
		case "\t":
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case "\n", "\r\n", "\r":
			b.WriteString(cluster)
			col = 0
		default:
			b.WriteString(cluster)
			col += core.ClusterWidth(cluster)
		}
	}
	return b.String()
}
