// Package text provides styled spans and their segmentation into
// grapheme units, the atoms the line composers consume.
package text

import "github.com/dshills/gridtext/internal/core"

// Span is a run of text with one style source. Plain spans inherit
// the base style of the widget drawing them; styled spans carry their
// own. Newlines inside the text separate logical lines.
type Span struct {
	Text  string
	Style core.Style
	// Styled reports whether Style overrides the base style.
	Styled bool
}

// Plain creates a span that inherits the base style.
func Plain(text string) Span {
	return Span{Text: text}
}

// Styled creates a span with an explicit style.
func Styled(text string, style core.Style) Span {
	return Span{Text: text, Style: style, Styled: true}
}

// Resolve returns the effective style of the span under a base style.
func (s Span) Resolve(base core.Style) core.Style {
	if s.Styled {
		return s.Style
	}
	return base
}
