package app

import (
	"errors"

	"github.com/dshills/gridtext/internal/backend"
	"github.com/dshills/gridtext/internal/compose"
	"github.com/dshills/gridtext/internal/core"
	"github.com/dshills/gridtext/internal/scroll"
	"github.com/dshills/gridtext/internal/text"
	"github.com/dshills/gridtext/internal/widget"
)

// wheelStep is the number of display lines a mouse wheel tick moves.
const wheelStep = 3

// eventLoop is the main application loop. It blocks on the backend's
// event queue and repaints after every handled event.
func (app *App) eventLoop() error {
	app.render()

	for {
		select {
		case <-app.done:
			return nil
		default:
		}

		ev := app.backend.PollEvent()

		select {
		case <-app.done:
			return nil
		default:
		}

		if err := app.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}

		app.render()
	}
}

// handleEvent routes a backend event to its handler.
// Returns ErrQuit when the application should exit.
func (app *App) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventMouse:
		app.handleMouse(ev)
	case backend.EventResize:
		app.clampOffset()
	case backend.EventWake:
		// Posted by background work such as theme reloads; the
		// render after handling picks up the new state.
	}
	return nil
}

func (app *App) handleKey(ev backend.Event) error {
	if ev.Key == backend.KeyRune {
		return app.handleRune(ev.Rune)
	}

	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyUp:
		app.scrollBy(-1)
	case backend.KeyDown, backend.KeyEnter:
		app.scrollBy(1)
	case backend.KeyPageUp, backend.KeyCtrlB:
		app.scrollBy(-app.pageSize())
	case backend.KeyPageDown, backend.KeyCtrlF:
		app.scrollBy(app.pageSize())
	case backend.KeyCtrlU:
		app.scrollBy(-app.halfPage())
	case backend.KeyCtrlD:
		app.scrollBy(app.halfPage())
	case backend.KeyHome:
		app.scrollToStart()
	case backend.KeyEnd:
		app.scrollToEnd()
	}
	return nil
}

func (app *App) handleRune(r rune) error {
	switch r {
	case 'q':
		return ErrQuit
	case 'k':
		app.scrollBy(-1)
	case 'j':
		app.scrollBy(1)
	case ' ':
		app.scrollBy(app.pageSize())
	case 'g':
		app.scrollToStart()
	case 'G':
		app.scrollToEnd()
	case 'w':
		app.toggleWrap()
	case 'a':
		app.cycleAlignment()
	case 'b':
		app.toggleAnchor()
	}
	return nil
}

func (app *App) handleMouse(ev backend.Event) {
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		app.scrollBy(-wheelStep)
	case backend.MouseWheelDown:
		app.scrollBy(wheelStep)
	}
}

// pageSize returns the height of the text area in display lines.
func (app *App) pageSize() int {
	app.mu.RLock()
	defer app.mu.RUnlock()

	h := app.contentArea().Height()
	if h < 1 {
		return 1
	}
	return h
}

// halfPage returns half the text area height, rounded up.
func (app *App) halfPage() int {
	app.mu.RLock()
	defer app.mu.RUnlock()

	h := (app.contentArea().Height() + 1) / 2
	if h < 1 {
		return 1
	}
	return h
}

// scrollBy moves the view by delta display lines, positive toward the
// end of the document regardless of the anchor.
func (app *App) scrollBy(delta int) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.view.anchor == scroll.Bottom {
		delta = -delta
	}
	app.view.offset += delta
	app.clampOffsetLocked()
}

// scrollToStart jumps to the beginning of the document.
func (app *App) scrollToStart() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.view.anchor == scroll.Bottom {
		app.view.offset = app.maxOffset()
	} else {
		app.view.offset = 0
	}
}

// scrollToEnd jumps to the end of the document.
func (app *App) scrollToEnd() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.view.anchor == scroll.Bottom {
		app.view.offset = 0
	} else {
		app.view.offset = app.maxOffset()
	}
}

// toggleWrap switches between word wrapping and truncation.
func (app *App) toggleWrap() {
	app.mu.Lock()
	defer app.mu.Unlock()

	app.view.wrap = !app.view.wrap
	app.clampOffsetLocked()
}

// cycleAlignment advances left, center, right and back.
func (app *App) cycleAlignment() {
	app.mu.Lock()
	defer app.mu.Unlock()

	switch app.view.align {
	case widget.AlignLeft:
		app.view.align = widget.AlignCenter
	case widget.AlignCenter:
		app.view.align = widget.AlignRight
	default:
		app.view.align = widget.AlignLeft
	}
}

// toggleAnchor flips the window anchor, re-expressing the offset from
// the other end so the visible window stays put.
func (app *App) toggleAnchor() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.view.anchor == scroll.Top {
		app.view.anchor = scroll.Bottom
	} else {
		app.view.anchor = scroll.Top
	}

	area := app.contentArea()
	total := app.lineCount(area.Width())
	app.view.offset = total - area.Height() - app.view.offset
	app.clampOffsetLocked()
}

// clampOffset bounds the scroll offset to the composed document.
func (app *App) clampOffset() {
	app.mu.Lock()
	defer app.mu.Unlock()

	app.clampOffsetLocked()
}

func (app *App) clampOffsetLocked() {
	maxOff := app.maxOffset()
	if app.view.offset > maxOff {
		app.view.offset = maxOff
	}
	if app.view.offset < 0 {
		app.view.offset = 0
	}
}

// maxOffset returns the largest useful scroll offset for the current
// geometry. Callers must hold mu.
func (app *App) maxOffset() int {
	area := app.contentArea()
	total := app.lineCount(area.Width())

	maxOff := total - area.Height()
	if maxOff < 0 {
		maxOff = 0
	}
	// A bottom-anchored view with a filler rune may scroll past the
	// first line, showing filler rows above the content.
	if app.view.overflow != 0 && app.view.anchor == scroll.Bottom && total > 0 && total-1 > maxOff {
		maxOff = total - 1
	}
	return maxOff
}

// contentArea returns the rectangle the document text occupies, inside
// the border when one is drawn and above the status line. Callers must
// hold mu.
func (app *App) contentArea() core.ScreenRect {
	w, h := app.backend.Size()
	if w < 1 || h < 2 {
		return core.ScreenRect{}
	}

	area := core.RectFromSize(0, 0, h-1, w)
	if app.opts.Border {
		return app.block().Inner(area)
	}
	return area
}

// lineCount composes the document at the given width and returns the
// number of display lines. Callers must hold mu.
func (app *App) lineCount(width int) int {
	if width < 1 {
		return 0
	}

	stream := text.NewStream(app.doc.Spans(), app.theme.Text)
	var lc compose.LineComposer
	if app.view.wrap {
		lc = compose.NewWordWrapper(stream, width)
	} else {
		lc = compose.NewTruncator(stream, width)
	}

	n := 0
	for {
		if _, ok := lc.NextLine(); !ok {
			break
		}
		n++
	}
	return n
}
