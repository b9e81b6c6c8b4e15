package widget

import (
	"github.com/dshills/gridtext/internal/compose"
	"github.com/dshills/gridtext/internal/core"
	"github.com/dshills/gridtext/internal/scroll"
	"github.com/dshills/gridtext/internal/text"
)

// Paragraph renders styled text spans inside an optional block, with
// truncation or word-wrap, horizontal alignment, and scrolling. It is
// a value: configure with the With methods and call Draw. Draw keeps
// no state between calls.
type Paragraph struct {
	Spans  []text.Span
	Style  core.Style
	Align  Alignment
	Wrap   bool
	Scroll scroll.State
	Block  *Block

	// OverflowStyle paints the filler rune on rows scrolled past
	// the content.
	OverflowStyle core.Style
}

// NewParagraph creates a paragraph over the given spans.
func NewParagraph(spans ...text.Span) Paragraph {
	return Paragraph{
		Spans:         spans,
		Style:         core.DefaultStyle(),
		OverflowStyle: core.DefaultStyle(),
	}
}

// WithStyle returns a paragraph with the given base style. Plain
// spans inherit it and it fills the text area background.
func (p Paragraph) WithStyle(style core.Style) Paragraph {
	p.Style = style
	return p
}

// WithAlignment returns a paragraph with the given line alignment.
func (p Paragraph) WithAlignment(align Alignment) Paragraph {
	p.Align = align
	return p
}

// WithWrap returns a paragraph that word-wraps instead of truncating.
func (p Paragraph) WithWrap(wrap bool) Paragraph {
	p.Wrap = wrap
	return p
}

// WithScroll returns a paragraph with the given scroll state.
func (p Paragraph) WithScroll(st scroll.State) Paragraph {
	p.Scroll = st
	return p
}

// WithOverflowStyle returns a paragraph with the given style for
// overflow filler rows.
func (p Paragraph) WithOverflowStyle(style core.Style) Paragraph {
	p.OverflowStyle = style
	return p
}

// WithBlock returns a paragraph decorated by the given block.
func (p Paragraph) WithBlock(b Block) Paragraph {
	p.Block = &b
	return p
}

// Draw paints the paragraph into area on s. The block, if any, is
// drawn even when no room is left for text.
func (p Paragraph) Draw(area core.ScreenRect, s Surface) {
	textArea := area
	if p.Block != nil {
		p.Block.Draw(area, s)
		textArea = p.Block.Inner(area)
	}
	if textArea.Height() < 1 {
		return
	}

	p.fillBackground(textArea, s)

	stream := text.NewStream(p.Spans, p.Style)
	var lc compose.LineComposer
	if p.Wrap {
		lc = compose.NewWordWrapper(stream, textArea.Width())
	} else {
		lc = compose.NewTruncator(stream, textArea.Width())
	}

	first, next := scroll.Window(lc, textArea.Height(), p.Scroll)

	index := 0
	for y := 0; y < textArea.Height(); y++ {
		if y < -first {
			s.SetCell(textArea.Left, textArea.Top+y,
				core.NewStyledCell(p.Scroll.OverflowRune, p.OverflowStyle))
			continue
		}
		for {
			line, ok := next()
			if !ok {
				break
			}
			index++
			if index-1 >= first {
				p.paintLine(line, textArea, y, s)
				break
			}
		}
	}
}

// fillBackground paints the base style across the text area.
func (p Paragraph) fillBackground(area core.ScreenRect, s Surface) {
	for y := area.Top; y < area.Bottom; y++ {
		for x := area.Left; x < area.Right; x++ {
			s.SetCell(x, y, core.EmptyCell().WithStyle(p.Style))
		}
	}
}

// paintLine writes one composed line at the given text-area row,
// offset by the alignment. Units never spill past the right edge.
func (p Paragraph) paintLine(line compose.Line, area core.ScreenRect, y int, s Surface) {
	x := area.Left + LineOffset(line.Width, area.Width(), p.Align)
	for _, u := range line.Units {
		if x >= area.Right || x+u.Width > area.Right {
			break
		}
		s.SetCell(x, area.Top+y, core.Cell{
			Symbol: u.Cluster,
			Width:  u.Width,
			Style:  u.Style,
		})
		x += u.Width
	}
}
