package text

import (
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/gridtext/internal/core"
)

// GraphemeUnit is one user-perceived character: a grapheme cluster,
// its display width, and its resolved style.
type GraphemeUnit struct {
	Cluster string
	Width   int
	Style   core.Style
}

// IsNewline reports whether the unit ends a logical line.
func (u GraphemeUnit) IsNewline() bool {
	return u.Cluster == "\n" || u.Cluster == "\r\n"
}

// IsWhitespace reports whether the cluster consists of whitespace.
// Newline clusters are whitespace too; callers that care check
// IsNewline first.
func (u GraphemeUnit) IsWhitespace() bool {
	if u.Cluster == "" {
		return false
	}
	for _, r := range u.Cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Stream yields the grapheme units of a span sequence in text order.
// Each span's style is resolved before segmentation, so a cluster
// never straddles a style boundary.
type Stream struct {
	spans []Span
	base  core.Style
	idx   int
	g     *uniseg.Graphemes
	style core.Style
}

// NewStream creates a stream over spans with the given base style.
func NewStream(spans []Span, base core.Style) *Stream {
	return &Stream{spans: spans, base: base}
}

// Next returns the next grapheme unit, or false when the stream is
// exhausted.
func (s *Stream) Next() (GraphemeUnit, bool) {
	for {
		if s.g == nil {
			if s.idx >= len(s.spans) {
				return GraphemeUnit{}, false
			}
			span := s.spans[s.idx]
			s.idx++
			if span.Text == "" {
				continue
			}
			s.style = span.Resolve(s.base)
			s.g = uniseg.NewGraphemes(span.Text)
		}
		if s.g.Next() {
			cluster := s.g.Str()
			return GraphemeUnit{
				Cluster: cluster,
				Width:   core.ClusterWidth(cluster),
				Style:   s.style,
			}, true
		}
		s.g = nil
	}
}
