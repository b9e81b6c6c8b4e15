// Package highlight turns source text into styled spans using chroma
// lexers. Token colors layer over the theme's text style so the
// document keeps the theme background.
package highlight

import (
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dshills/gridtext/internal/core"
	"github.com/dshills/gridtext/internal/text"
)

// Highlighter tokenizes source text into styled spans.
type Highlighter struct {
	style *chroma.Style
}

// New creates a highlighter using the named chroma style. Unknown
// names fall back to chroma's default style.
func New(styleName string) *Highlighter {
	return &Highlighter{style: styles.Get(styleName)}
}

// Spans tokenizes src into one span per token, newlines included, in
// document order. Tokens without distinct styling become plain spans
// so they inherit base; styled tokens layer color and attributes on
// top of base. When tokenization fails the whole document is returned
// as a single plain span.
func (h *Highlighter) Spans(src, filename string, base core.Style) []text.Span {
	if src == "" {
		return nil
	}

	lexer := chroma.Coalesce(h.lexer(filename, src))
	tokens, err := chroma.Tokenise(lexer, nil, src)
	if err != nil {
		return []text.Span{text.Plain(src)}
	}

	baseColour := h.style.Get(chroma.Text).Colour

	spans := make([]text.Span, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		if tok.Value == "" {
			continue
		}

		style, styled := h.tokenStyle(tok.Type, baseColour, base)
		if styled {
			spans = append(spans, text.Styled(tok.Value, style))
		} else {
			spans = append(spans, text.Plain(tok.Value))
		}
	}
	return spans
}

// Language reports the lexer name that would highlight the given
// source, or an empty string for plain text.
func (h *Highlighter) Language(src, filename string) string {
	lexer := h.lexer(filename, src)
	if lexer == lexers.Fallback {
		return ""
	}
	return lexer.Config().Name
}

// tokenStyle layers a token's styling over the base style. Tokens
// whose color matches the chroma style's base text color stay plain
// so the theme's own text color shows through.
func (h *Highlighter) tokenStyle(t chroma.TokenType, baseColour chroma.Colour, base core.Style) (core.Style, bool) {
	entry := h.style.Get(t)
	style := base
	styled := false

	if entry.Colour.IsSet() && entry.Colour != baseColour {
		fg := core.ColorFromRGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
		style = style.WithForeground(fg)
		styled = true
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold()
		styled = true
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic()
		styled = true
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline()
		styled = true
	}
	return style, styled
}

// lexer picks a lexer by filename, then by content analysis.
func (h *Highlighter) lexer(filename, src string) chroma.Lexer {
	if filename != "" {
		if l := lexers.Match(filepath.Base(filename)); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(src); l != nil {
		return l
	}
	return lexers.Fallback
}
