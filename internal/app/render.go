package app

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/gridtext/internal/core"
	"github.com/dshills/gridtext/internal/scroll"
	"github.com/dshills/gridtext/internal/widget"
)

// render repaints the document and the status line and flushes the
// result to the terminal.
func (app *App) render() {
	app.mu.RLock()
	defer app.mu.RUnlock()

	w, h := app.backend.Size()
	if w < 1 || h < 1 {
		return
	}

	statusArea := core.RectFromSize(h-1, 0, 1, w)
	docArea := core.RectFromSize(0, 0, h-1, w)

	if !docArea.IsEmpty() {
		p := widget.NewParagraph(app.doc.Spans()...).
			WithStyle(app.theme.Text).
			WithAlignment(app.view.align).
			WithWrap(app.view.wrap).
			WithScroll(scroll.State{
				Offset:       app.view.offset,
				Anchor:       app.view.anchor,
				OverflowRune: app.view.overflow,
			}).
			WithOverflowStyle(app.theme.Overflow)
		if app.opts.Border {
			p = p.WithBlock(app.block())
		}
		p.Draw(docArea, app.backend)
	}

	app.drawStatus(statusArea)

	app.backend.Show()
}

// block builds the border block around the document text.
func (app *App) block() widget.Block {
	return widget.NewBlock().
		WithTitle(app.doc.Title).
		WithTitleStyle(app.theme.Title).
		WithBorders(widget.BorderAll).
		WithBorderStyle(app.theme.Border)
}

// drawStatus paints the status line: title and language on the left,
// view indicators and position on the right.
func (app *App) drawStatus(area core.ScreenRect) {
	if area.IsEmpty() {
		return
	}

	app.backend.Fill(area, core.NewStyledCell(' ', app.theme.Status))

	left := app.doc.Title
	if app.doc.Language != "" {
		left += "  " + app.doc.Language
	}
	leftEnd := app.backend.SetString(area.Left+1, area.Top, left, app.theme.Status)

	right := app.statusRight()
	x := area.Right - runewidth.StringWidth(right) - 1
	if x > leftEnd+1 {
		app.backend.SetString(x, area.Top, right, app.theme.Status)
	}
}

// statusRight composes the right side of the status line.
func (app *App) statusRight() string {
	area := app.contentArea()
	total := app.lineCount(area.Width())

	parts := make([]string, 0, 4)
	if app.view.wrap {
		parts = append(parts, "wrap")
	}
	if app.view.align != widget.AlignLeft {
		parts = append(parts, app.view.align.String())
	}
	if app.view.anchor == scroll.Bottom {
		parts = append(parts, "tail")
	}
	parts = append(parts, positionLabel(app.view.offset, app.view.anchor, area.Height(), total))

	return strings.Join(parts, "  ")
}

// positionLabel describes the visible window within the document, in
// the manner of a pager: ALL, TOP, END or a percentage through the
// content.
func positionLabel(offset int, anchor scroll.Anchor, height, total int) string {
	if total <= height {
		return "ALL"
	}

	first := offset
	if anchor == scroll.Bottom {
		first = total - height - offset
	}
	last := first + height

	switch {
	case first <= 0:
		return "TOP"
	case last >= total:
		return "END"
	default:
		return fmt.Sprintf("%d%%", last*100/total)
	}
}
